package models

import (
	"time"

	"github.com/google/uuid"
)

// MinimumAge is the youngest a user may be at registration.
const MinimumAge = 16

// User represents a registered account. Users are referenced by projects,
// issues and comments but are never deleted through this API.
type User struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Username         string    `gorm:"uniqueIndex;not null" json:"username" validate:"required"`
	Email            string    `gorm:"uniqueIndex;not null" json:"email" validate:"required,email"`
	PasswordHash     string    `gorm:"not null" json:"-"`
	Age              int       `gorm:"not null" json:"age" validate:"required,gte=16"`
	ContactConsent   bool      `gorm:"not null;default:false" json:"contact_consent"`
	DataShareConsent bool      `gorm:"not null;default:false" json:"data_share_consent"`
	IsSuperuser      bool      `gorm:"not null;default:false" json:"is_superuser"`
	CreatedAt        time.Time `json:"date_joined"`
	UpdatedAt        time.Time `json:"-"`
}
