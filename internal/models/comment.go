package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment belongs to exactly one issue. Names are unique within an issue.
// IssueURL is computed once at creation from the project/issue path and
// stored denormalized; it is never recomputed.
type Comment struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"not null" json:"name" validate:"required"`
	Description string    `gorm:"type:text" json:"description"`
	IssueID     uuid.UUID `gorm:"type:uuid;index;not null" json:"issue"`
	Issue       Issue     `gorm:"foreignKey:IssueID;constraint:OnDelete:CASCADE" json:"-"`
	AuthorID    uuid.UUID `gorm:"type:uuid;index;not null" json:"author"`
	Author      User      `gorm:"foreignKey:AuthorID" json:"-"`
	IssueURL    string    `gorm:"not null" json:"issue_url"`
	CreatedAt   time.Time `json:"created_time"`
}
