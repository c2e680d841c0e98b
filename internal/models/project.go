package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectType tags a project with the kind of work it covers.
type ProjectType string

const (
	ProjectTypeBackend  ProjectType = "backend"
	ProjectTypeFrontend ProjectType = "frontend"
	ProjectTypeIOS      ProjectType = "ios"
	ProjectTypeAndroid  ProjectType = "android"
)

// Project groups issues under an author and a set of contributors.
// The author is immutable after creation and is always a contributor.
// Deleting a project cascades to its issues and their comments.
type Project struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string      `gorm:"not null" json:"name" validate:"required"`
	Description string      `gorm:"type:text" json:"description"`
	Type        ProjectType `gorm:"type:varchar(16);not null" json:"type" validate:"required,oneof=backend frontend ios android"`
	AuthorID    uuid.UUID   `gorm:"type:uuid;index;not null" json:"author"`
	Author      User        `gorm:"foreignKey:AuthorID" json:"-"`
	// Membership edge; the join table carries ON DELETE CASCADE on the
	// project side so removing a project never touches the users.
	Contributors []User    `gorm:"many2many:project_contributors;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time `json:"created_time"`
	UpdatedAt    time.Time `json:"updated_time"`
}

// HasContributor reports whether the given user is in the contributor set.
func (p *Project) HasContributor(userID uuid.UUID) bool {
	for i := range p.Contributors {
		if p.Contributors[i].ID == userID {
			return true
		}
	}
	return false
}
