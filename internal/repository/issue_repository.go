package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/softdesk/api/internal/models"
	appErr "github.com/softdesk/api/pkg/errors"
)

// IssueDuplicateFilter narrows the duplicate check to the fields actually
// supplied by a request. Nil fields act as wildcards, not as "must be empty".
type IssueDuplicateFilter struct {
	Name      *string
	Tag       *models.IssueTag
	State     *models.IssueState
	Priority  *models.IssuePriority
	ExcludeID uuid.UUID
}

type IssueRepository interface {
	BaseRepository[models.Issue]
	// ListByProject returns the project's issues, oldest first.
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Issue, error)
	// ExistsDuplicate reports whether another issue in the project matches
	// every non-nil field of the filter.
	ExistsDuplicate(ctx context.Context, projectID uuid.UUID, f IssueDuplicateFilter) (bool, error)
}

type issueRepository struct {
	BaseRepository[models.Issue]
	db *gorm.DB
}

func NewIssueRepository(db *gorm.DB) IssueRepository {
	return &issueRepository{BaseRepository: NewBaseRepository[models.Issue](db), db: db}
}

func (r *issueRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Issue, error) {
	var out []models.Issue
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list issues by project failed")
	}
	return out, nil
}

func (r *issueRepository) ExistsDuplicate(ctx context.Context, projectID uuid.UUID, f IssueDuplicateFilter) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.Issue{}).Where("project_id = ?", projectID)
	if f.Name != nil {
		q = q.Where("name = ?", *f.Name)
	}
	if f.Tag != nil {
		q = q.Where("tag = ?", *f.Tag)
	}
	if f.State != nil {
		q = q.Where("state = ?", *f.State)
	}
	if f.Priority != nil {
		q = q.Where("priority = ?", *f.Priority)
	}
	if f.ExcludeID != uuid.Nil {
		q = q.Where("id <> ?", f.ExcludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, appErr.Wrap(err, appErr.CodeInternal, "duplicate issue check failed")
	}
	return count > 0, nil
}
