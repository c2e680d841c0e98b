package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/softdesk/api/internal/access"
	"github.com/softdesk/api/internal/models"
	"github.com/softdesk/api/internal/repository"
	appErr "github.com/softdesk/api/pkg/errors"
	"github.com/softdesk/api/pkg/logger"
)

type CreateIssueInput struct {
	Name        string
	Description string
	Tag         models.IssueTag
	State       *models.IssueState
	Priority    models.IssuePriority
	Assignee    *uuid.UUID
}

type UpdateIssueInput struct {
	Name        *string
	Description *string
	Tag         *models.IssueTag
	State       *models.IssueState
	Priority    *models.IssuePriority
	Assignee    *uuid.UUID
}

type IssueService interface {
	// Create is contributor-only. The caller becomes the author; the
	// assignee defaults to the caller when omitted.
	Create(ctx context.Context, callerID uuid.UUID, project *models.Project, in *CreateIssueInput) (*models.Issue, error)
	List(ctx context.Context, callerID uuid.UUID, project *models.Project) ([]models.Issue, error)
	Get(ctx context.Context, callerID uuid.UUID, project *models.Project, issue *models.Issue) (*models.Issue, error)
	Update(ctx context.Context, callerID uuid.UUID, project *models.Project, issue *models.Issue, in *UpdateIssueInput) (*models.Issue, error)
	Delete(ctx context.Context, callerID uuid.UUID, project *models.Project, issue *models.Issue) error
}

type issueService struct {
	issues repository.IssueRepository
	users  repository.UserRepository
	log    *zap.Logger
}

func NewIssueService(issues repository.IssueRepository, users repository.UserRepository) IssueService {
	return &issueService{issues: issues, users: users, log: logger.Named("issues")}
}

var _ IssueService = (*issueService)(nil)

func (s *issueService) Create(ctx context.Context, callerID uuid.UUID, project *models.Project, in *CreateIssueInput) (*models.Issue, error) {
	if err := access.ProjectContributor(callerID, project); err != nil {
		return nil, err
	}

	// Duplicate check over the fields actually supplied; absent fields are
	// wildcards rather than "must be empty".
	filter := repository.IssueDuplicateFilter{
		Name:     &in.Name,
		Tag:      &in.Tag,
		Priority: &in.Priority,
		State:    in.State,
	}
	dup, err := s.issues.ExistsDuplicate(ctx, project.ID, filter)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, appErr.Invalid("this issue already exists")
	}

	assignee := callerID
	if in.Assignee != nil {
		var u models.User
		if err := s.users.GetByID(ctx, *in.Assignee, &u); err != nil {
			if appErr.IsCode(err, appErr.CodeNotFound) {
				return nil, appErr.Invalid("assignee does not exist")
			}
			return nil, err
		}
		assignee = u.ID
	}

	state := models.IssueStateTodo
	if in.State != nil {
		state = *in.State
	}

	issue := &models.Issue{
		Name:        in.Name,
		Description: in.Description,
		Tag:         in.Tag,
		State:       state,
		Priority:    in.Priority,
		ProjectID:   project.ID,
		AuthorID:    callerID,
		AssigneeID:  assignee,
	}
	if err := s.issues.Create(ctx, issue); err != nil {
		return nil, err
	}

	s.log.Info("issue created", zap.String("issue_id", issue.ID.String()), zap.String("project_id", project.ID.String()))
	return issue, nil
}

func (s *issueService) List(ctx context.Context, callerID uuid.UUID, project *models.Project) ([]models.Issue, error) {
	if err := access.ProjectContributor(callerID, project); err != nil {
		return nil, err
	}
	return s.issues.ListByProject(ctx, project.ID)
}

func (s *issueService) Get(ctx context.Context, callerID uuid.UUID, project *models.Project, issue *models.Issue) (*models.Issue, error) {
	if err := access.Require(
		access.ProjectContributor(callerID, project),
		access.AuthorOrReadOnly(callerID, issue.AuthorID, false),
	); err != nil {
		return nil, err
	}
	return issue, nil
}

func (s *issueService) Update(ctx context.Context, callerID uuid.UUID, project *models.Project, issue *models.Issue, in *UpdateIssueInput) (*models.Issue, error) {
	if err := access.Require(
		access.ProjectContributor(callerID, project),
		access.AuthorOrReadOnly(callerID, issue.AuthorID, true),
	); err != nil {
		return nil, err
	}

	if in.Name != nil {
		issue.Name = *in.Name
	}
	if in.Description != nil {
		issue.Description = *in.Description
	}
	if in.Tag != nil {
		issue.Tag = *in.Tag
	}
	if in.State != nil {
		// State transitions are unconstrained.
		issue.State = *in.State
	}
	if in.Priority != nil {
		issue.Priority = *in.Priority
	}
	if in.Assignee != nil {
		var u models.User
		if err := s.users.GetByID(ctx, *in.Assignee, &u); err != nil {
			if appErr.IsCode(err, appErr.CodeNotFound) {
				return nil, appErr.Invalid("assignee does not exist")
			}
			return nil, err
		}
		issue.AssigneeID = u.ID
	}

	// The duplicate predicate compares the full resulting tuple rather than
	// the supplied fields alone; a partial update carrying just a state must
	// not collide with unrelated issues that happen to share it.
	filter := repository.IssueDuplicateFilter{
		Name:      &issue.Name,
		Tag:       &issue.Tag,
		State:     &issue.State,
		Priority:  &issue.Priority,
		ExcludeID: issue.ID,
	}
	dup, err := s.issues.ExistsDuplicate(ctx, project.ID, filter)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, appErr.Invalid("this issue already exists")
	}

	if err := s.issues.Update(ctx, issue); err != nil {
		return nil, err
	}
	return issue, nil
}

func (s *issueService) Delete(ctx context.Context, callerID uuid.UUID, project *models.Project, issue *models.Issue) error {
	if err := access.Require(
		access.ProjectContributor(callerID, project),
		access.AuthorOrReadOnly(callerID, issue.AuthorID, true),
	); err != nil {
		return err
	}
	// Comments go with the issue via the cascade FK.
	if err := s.issues.Delete(ctx, issue.ID); err != nil {
		return err
	}
	s.log.Info("issue deleted", zap.String("issue_id", issue.ID.String()), zap.String("project_id", project.ID.String()))
	return nil
}
