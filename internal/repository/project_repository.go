package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/softdesk/api/internal/models"
	appErr "github.com/softdesk/api/pkg/errors"
)

type ProjectRepository interface {
	BaseRepository[models.Project]
	// GetWithContributors loads a project with its contributor set preloaded.
	GetWithContributors(ctx context.Context, id uuid.UUID, dest *models.Project) error
	// CreateWithAuthor commits the project and its author's contributor
	// membership in one transaction. There is never a committed project
	// without its author in the contributor set.
	CreateWithAuthor(ctx context.Context, p *models.Project) error
	// ListByContributor returns the projects the user belongs to, oldest first.
	ListByContributor(ctx context.Context, userID uuid.UUID) ([]models.Project, error)
	// ExistsVisibleNameType reports whether a project with the same name and
	// type already exists among projects the user can see. excludeID skips a
	// record when checking during update.
	ExistsVisibleNameType(ctx context.Context, userID uuid.UUID, name string, ptype models.ProjectType, excludeID uuid.UUID) (bool, error)
	AddContributor(ctx context.Context, projectID, userID uuid.UUID) error
	RemoveContributor(ctx context.Context, projectID, userID uuid.UUID) error
	// ListContributors returns the project's contributors by registration date.
	ListContributors(ctx context.Context, projectID uuid.UUID) ([]models.User, error)
}

type projectRepository struct {
	BaseRepository[models.Project]
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{BaseRepository: NewBaseRepository[models.Project](db), db: db}
}

func (r *projectRepository) GetWithContributors(ctx context.Context, id uuid.UUID, dest *models.Project) error {
	err := r.db.WithContext(ctx).Preload("Contributors").First(dest, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.NotFound("project not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get project failed")
	}
	return nil
}

func (r *projectRepository) CreateWithAuthor(ctx context.Context, p *models.Project) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		return tx.Model(p).Association("Contributors").Append(&models.User{ID: p.AuthorID})
	})
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "create project failed")
	}
	return nil
}

func (r *projectRepository) ListByContributor(ctx context.Context, userID uuid.UUID) ([]models.Project, error) {
	var out []models.Project
	err := r.db.WithContext(ctx).
		Joins("JOIN project_contributors pc ON pc.project_id = projects.id").
		Where("pc.user_id = ?", userID).
		Preload("Contributors").
		Order("projects.created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list projects by contributor failed")
	}
	return out, nil
}

func (r *projectRepository) ExistsVisibleNameType(ctx context.Context, userID uuid.UUID, name string, ptype models.ProjectType, excludeID uuid.UUID) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Project{}).
		Joins("JOIN project_contributors pc ON pc.project_id = projects.id").
		Where("pc.user_id = ? AND projects.name = ? AND projects.type = ?", userID, name, ptype)
	if excludeID != uuid.Nil {
		q = q.Where("projects.id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, appErr.Wrap(err, appErr.CodeInternal, "duplicate project check failed")
	}
	return count > 0, nil
}

func (r *projectRepository) AddContributor(ctx context.Context, projectID, userID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Model(&models.Project{ID: projectID}).
		Association("Contributors").
		Append(&models.User{ID: userID})
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "add contributor failed")
	}
	return nil
}

func (r *projectRepository) RemoveContributor(ctx context.Context, projectID, userID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Model(&models.Project{ID: projectID}).
		Association("Contributors").
		Delete(&models.User{ID: userID})
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "remove contributor failed")
	}
	return nil
}

func (r *projectRepository) ListContributors(ctx context.Context, projectID uuid.UUID) ([]models.User, error) {
	var out []models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN project_contributors pc ON pc.user_id = users.id").
		Where("pc.project_id = ?", projectID).
		Order("users.created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list contributors failed")
	}
	return out, nil
}
