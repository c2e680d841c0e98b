package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/softdesk/api/internal/access"
	"github.com/softdesk/api/internal/models"
	"github.com/softdesk/api/internal/repository"
	appErr "github.com/softdesk/api/pkg/errors"
	"github.com/softdesk/api/pkg/logger"
)

type CreateCommentInput struct {
	Name        string
	Description string
}

type UpdateCommentInput struct {
	Name        *string
	Description *string
}

type CommentService interface {
	// Create is contributor-only, resolved through the issue's parent
	// project. The issue_url link is computed here once and stored.
	Create(ctx context.Context, callerID uuid.UUID, project *models.Project, issue *models.Issue, in *CreateCommentInput) (*models.Comment, error)
	List(ctx context.Context, callerID uuid.UUID, project *models.Project, issue *models.Issue) ([]models.Comment, error)
	Get(ctx context.Context, callerID uuid.UUID, project *models.Project, issue *models.Issue, commentID uuid.UUID) (*models.Comment, error)
	Update(ctx context.Context, callerID uuid.UUID, project *models.Project, issue *models.Issue, commentID uuid.UUID, in *UpdateCommentInput) (*models.Comment, error)
	Delete(ctx context.Context, callerID uuid.UUID, project *models.Project, issue *models.Issue, commentID uuid.UUID) error
}

type commentService struct {
	comments repository.CommentRepository
	baseURL  string
	log      *zap.Logger
}

func NewCommentService(comments repository.CommentRepository, baseURL string) CommentService {
	return &commentService{comments: comments, baseURL: baseURL, log: logger.Named("comments")}
}

var _ CommentService = (*commentService)(nil)

// IssueURL builds the denormalized link stored on a comment at creation.
func IssueURL(baseURL string, projectID, issueID uuid.UUID) string {
	return fmt.Sprintf("%s/api/v1/projects/%s/issues/%s", baseURL, projectID, issueID)
}

// resolve loads a comment addressed under the scoped issue. A comment that
// exists but hangs off a different issue is treated as absent.
func (s *commentService) resolve(ctx context.Context, issue *models.Issue, commentID uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	if err := s.comments.GetByID(ctx, commentID, &comment); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return nil, appErr.NotFound("comment not found")
		}
		return nil, err
	}
	if comment.IssueID != issue.ID {
		return nil, appErr.NotFound("comment not found")
	}
	return &comment, nil
}

func (s *commentService) Create(ctx context.Context, callerID uuid.UUID, project *models.Project, issue *models.Issue, in *CreateCommentInput) (*models.Comment, error) {
	if err := access.ProjectContributor(callerID, project); err != nil {
		return nil, err
	}

	dup, err := s.comments.ExistsByName(ctx, issue.ID, in.Name, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, appErr.Invalid("a comment with this name already exists")
	}

	comment := &models.Comment{
		Name:        in.Name,
		Description: in.Description,
		IssueID:     issue.ID,
		AuthorID:    callerID,
		IssueURL:    IssueURL(s.baseURL, project.ID, issue.ID),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.log.Info("comment created", zap.String("comment_id", comment.ID.String()), zap.String("issue_id", issue.ID.String()))
	return comment, nil
}

func (s *commentService) List(ctx context.Context, callerID uuid.UUID, project *models.Project, issue *models.Issue) ([]models.Comment, error) {
	if err := access.ProjectContributor(callerID, project); err != nil {
		return nil, err
	}
	return s.comments.ListByIssue(ctx, issue.ID)
}

func (s *commentService) Get(ctx context.Context, callerID uuid.UUID, project *models.Project, issue *models.Issue, commentID uuid.UUID) (*models.Comment, error) {
	if err := access.ProjectContributor(callerID, project); err != nil {
		return nil, err
	}
	return s.resolve(ctx, issue, commentID)
}

func (s *commentService) Update(ctx context.Context, callerID uuid.UUID, project *models.Project, issue *models.Issue, commentID uuid.UUID, in *UpdateCommentInput) (*models.Comment, error) {
	if err := access.ProjectContributor(callerID, project); err != nil {
		return nil, err
	}
	comment, err := s.resolve(ctx, issue, commentID)
	if err != nil {
		return nil, err
	}
	if err := access.AuthorOrReadOnly(callerID, comment.AuthorID, true); err != nil {
		return nil, err
	}

	if in.Name != nil && *in.Name != comment.Name {
		dup, err := s.comments.ExistsByName(ctx, comment.IssueID, *in.Name, comment.ID)
		if err != nil {
			return nil, err
		}
		if dup {
			return nil, appErr.Invalid("a comment with this name already exists")
		}
		comment.Name = *in.Name
	}
	if in.Description != nil {
		comment.Description = *in.Description
	}

	// issue_url stays as computed at creation; it is never rebuilt.
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, callerID uuid.UUID, project *models.Project, issue *models.Issue, commentID uuid.UUID) error {
	if err := access.ProjectContributor(callerID, project); err != nil {
		return err
	}
	comment, err := s.resolve(ctx, issue, commentID)
	if err != nil {
		return err
	}
	if err := access.AuthorOrReadOnly(callerID, comment.AuthorID, true); err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, comment.ID); err != nil {
		return err
	}
	s.log.Info("comment deleted", zap.String("comment_id", comment.ID.String()))
	return nil
}
