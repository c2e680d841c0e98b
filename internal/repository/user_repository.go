package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/softdesk/api/internal/models"
	appErr "github.com/softdesk/api/pkg/errors"
)

type UserRepository interface {
	BaseRepository[models.User]
	GetByUsername(ctx context.Context, username string, dest *models.User) error
	List(ctx context.Context) ([]models.User, error)
}

type userRepository struct {
	BaseRepository[models.User]
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{BaseRepository: NewBaseRepository[models.User](db), db: db}
}

func (r *userRepository) GetByUsername(ctx context.Context, username string, dest *models.User) error {
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.NotFound("user not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get user by username failed")
	}
	return nil
}

// List returns all users ordered by registration date.
func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list users failed")
	}
	return out, nil
}
