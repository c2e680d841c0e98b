package services

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/softdesk/api/internal/access"
	"github.com/softdesk/api/internal/models"
	"github.com/softdesk/api/internal/repository"
	appErr "github.com/softdesk/api/pkg/errors"
)

type UpdateUserInput struct {
	Email            *string
	Password         *string
	Age              *int
	ContactConsent   *bool
	DataShareConsent *bool
}

type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	// Get enforces the self-account-only rule.
	Get(ctx context.Context, callerID, targetID uuid.UUID) (*models.User, error)
	// Update enforces the self-account-only rule and re-hashes the password
	// whenever one is supplied.
	Update(ctx context.Context, callerID, targetID uuid.UUID, in *UpdateUserInput) (*models.User, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

var _ UserService = (*userService)(nil)

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *userService) Get(ctx context.Context, callerID, targetID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.users.GetByID(ctx, targetID, &user); err != nil {
		return nil, err
	}
	if err := access.SelfOnly(callerID, user.ID); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) Update(ctx context.Context, callerID, targetID uuid.UUID, in *UpdateUserInput) (*models.User, error) {
	var user models.User
	if err := s.users.GetByID(ctx, targetID, &user); err != nil {
		return nil, err
	}
	if err := access.SelfOnly(callerID, user.ID); err != nil {
		return nil, err
	}

	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Age != nil {
		if *in.Age < models.MinimumAge {
			return nil, appErr.Invalid("age must be 16 or older")
		}
		user.Age = *in.Age
	}
	if in.ContactConsent != nil {
		user.ContactConsent = *in.ContactConsent
	}
	if in.DataShareConsent != nil {
		user.DataShareConsent = *in.DataShareConsent
	}
	if in.Password != nil {
		ph, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, appErr.Wrap(err, appErr.CodeInternal, "hash password failed")
		}
		user.PasswordHash = string(ph)
	}

	if err := s.users.Update(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
