package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/softdesk/api/internal/models"
	appErr "github.com/softdesk/api/pkg/errors"
)

type CommentRepository interface {
	BaseRepository[models.Comment]
	// ListByIssue returns the issue's comments, oldest first.
	ListByIssue(ctx context.Context, issueID uuid.UUID) ([]models.Comment, error)
	// ExistsByName reports whether another comment under the issue already
	// carries the given name.
	ExistsByName(ctx context.Context, issueID uuid.UUID, name string, excludeID uuid.UUID) (bool, error)
}

type commentRepository struct {
	BaseRepository[models.Comment]
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{BaseRepository: NewBaseRepository[models.Comment](db), db: db}
}

func (r *commentRepository) ListByIssue(ctx context.Context, issueID uuid.UUID) ([]models.Comment, error) {
	var out []models.Comment
	err := r.db.WithContext(ctx).
		Where("issue_id = ?", issueID).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list comments by issue failed")
	}
	return out, nil
}

func (r *commentRepository) ExistsByName(ctx context.Context, issueID uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("issue_id = ? AND name = ?", issueID, name)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, appErr.Wrap(err, appErr.CodeInternal, "duplicate comment check failed")
	}
	return count > 0, nil
}
