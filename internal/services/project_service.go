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

type CreateProjectInput struct {
	Name        string
	Description string
	Type        models.ProjectType
}

type UpdateProjectInput struct {
	Name        *string
	Description *string
	Type        *models.ProjectType
}

type ProjectService interface {
	// Create makes the caller the author and the initial contributor in one
	// transaction. Rejects a (name, type) pair the caller can already see.
	Create(ctx context.Context, callerID uuid.UUID, in *CreateProjectInput) (*models.Project, error)
	// List returns only projects the caller belongs to, oldest first.
	List(ctx context.Context, callerID uuid.UUID) ([]models.Project, error)
	Get(ctx context.Context, callerID uuid.UUID, project *models.Project) (*models.Project, error)
	Update(ctx context.Context, callerID uuid.UUID, project *models.Project, in *UpdateProjectInput) (*models.Project, error)
	Delete(ctx context.Context, callerID uuid.UUID, project *models.Project) error

	// Contributor membership management, author-only for mutation.
	ListContributors(ctx context.Context, callerID uuid.UUID, project *models.Project) ([]models.User, error)
	GetContributor(ctx context.Context, callerID uuid.UUID, project *models.Project, userID uuid.UUID) (*models.User, error)
	AddContributor(ctx context.Context, callerID uuid.UUID, project *models.Project, userID uuid.UUID) error
	RemoveContributor(ctx context.Context, callerID uuid.UUID, project *models.Project, userID uuid.UUID) error
}

type projectService struct {
	projects repository.ProjectRepository
	users    repository.UserRepository
	log      *zap.Logger
}

func NewProjectService(projects repository.ProjectRepository, users repository.UserRepository) ProjectService {
	return &projectService{projects: projects, users: users, log: logger.Named("projects")}
}

var _ ProjectService = (*projectService)(nil)

func (s *projectService) Create(ctx context.Context, callerID uuid.UUID, in *CreateProjectInput) (*models.Project, error) {
	dup, err := s.projects.ExistsVisibleNameType(ctx, callerID, in.Name, in.Type, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, appErr.Invalid("a project with this name and type already exists")
	}

	p := &models.Project{
		Name:        in.Name,
		Description: in.Description,
		Type:        in.Type,
		AuthorID:    callerID,
	}
	if err := s.projects.CreateWithAuthor(ctx, p); err != nil {
		return nil, err
	}

	// Reload so the contributor set reflects the committed membership.
	var created models.Project
	if err := s.projects.GetWithContributors(ctx, p.ID, &created); err != nil {
		return nil, err
	}

	s.log.Info("project created", zap.String("project_id", created.ID.String()), zap.String("author_id", callerID.String()))
	return &created, nil
}

func (s *projectService) List(ctx context.Context, callerID uuid.UUID) ([]models.Project, error) {
	return s.projects.ListByContributor(ctx, callerID)
}

func (s *projectService) Get(ctx context.Context, callerID uuid.UUID, project *models.Project) (*models.Project, error) {
	if err := access.ProjectContributor(callerID, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) Update(ctx context.Context, callerID uuid.UUID, project *models.Project, in *UpdateProjectInput) (*models.Project, error) {
	if err := access.Require(
		access.ProjectContributor(callerID, project),
		access.AuthorOrReadOnly(callerID, project.AuthorID, true),
	); err != nil {
		return nil, err
	}

	name := project.Name
	ptype := project.Type
	if in.Name != nil {
		name = *in.Name
	}
	if in.Type != nil {
		ptype = *in.Type
	}
	if name != project.Name || ptype != project.Type {
		dup, err := s.projects.ExistsVisibleNameType(ctx, callerID, name, ptype, project.ID)
		if err != nil {
			return nil, err
		}
		if dup {
			return nil, appErr.Invalid("a project with this name and type already exists")
		}
	}

	project.Name = name
	project.Type = ptype
	if in.Description != nil {
		project.Description = *in.Description
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) Delete(ctx context.Context, callerID uuid.UUID, project *models.Project) error {
	if err := access.Require(
		access.ProjectContributor(callerID, project),
		access.AuthorOrReadOnly(callerID, project.AuthorID, true),
	); err != nil {
		return err
	}
	// Issues and their comments go with the project via the cascade FKs.
	if err := s.projects.Delete(ctx, project.ID); err != nil {
		return err
	}
	s.log.Info("project deleted", zap.String("project_id", project.ID.String()))
	return nil
}

func (s *projectService) ListContributors(ctx context.Context, callerID uuid.UUID, project *models.Project) ([]models.User, error) {
	if err := access.ProjectContributor(callerID, project); err != nil {
		return nil, err
	}
	return s.projects.ListContributors(ctx, project.ID)
}

func (s *projectService) GetContributor(ctx context.Context, callerID uuid.UUID, project *models.Project, userID uuid.UUID) (*models.User, error) {
	if err := access.ProjectContributor(callerID, project); err != nil {
		return nil, err
	}
	if !project.HasContributor(userID) {
		return nil, appErr.NotFound("contributor not found")
	}
	var user models.User
	if err := s.users.GetByID(ctx, userID, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *projectService) AddContributor(ctx context.Context, callerID uuid.UUID, project *models.Project, userID uuid.UUID) error {
	if err := access.ProjectAuthorOnly(callerID, project); err != nil {
		return err
	}

	var user models.User
	if err := s.users.GetByID(ctx, userID, &user); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return appErr.Invalid("this user does not exist")
		}
		return err
	}
	if user.IsSuperuser {
		return appErr.Invalid("a superuser cannot be added as a contributor")
	}
	if project.HasContributor(userID) {
		return appErr.Invalid("this user is already a contributor of this project")
	}

	if err := s.projects.AddContributor(ctx, project.ID, userID); err != nil {
		return err
	}
	s.log.Info("contributor added", zap.String("project_id", project.ID.String()), zap.String("user_id", userID.String()))
	return nil
}

func (s *projectService) RemoveContributor(ctx context.Context, callerID uuid.UUID, project *models.Project, userID uuid.UUID) error {
	if err := access.ProjectAuthorOnly(callerID, project); err != nil {
		return err
	}
	if userID == project.AuthorID {
		return appErr.Invalid("the project author cannot be removed from contributors")
	}
	if !project.HasContributor(userID) {
		return appErr.NotFound("contributor not found")
	}

	// Removes only the membership edge; the user record stays untouched.
	if err := s.projects.RemoveContributor(ctx, project.ID, userID); err != nil {
		return err
	}
	s.log.Info("contributor removed", zap.String("project_id", project.ID.String()), zap.String("user_id", userID.String()))
	return nil
}
