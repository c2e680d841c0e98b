package models

import (
	"time"

	"github.com/google/uuid"
)

// IssueTag classifies an issue.
type IssueTag string

const (
	IssueTagBug     IssueTag = "bug"
	IssueTagFeature IssueTag = "feature"
	IssueTagTask    IssueTag = "task"
)

// IssueState tracks progress. Transitions are unconstrained; the issue
// author may set any state at any time.
type IssueState string

const (
	IssueStateTodo       IssueState = "todo"
	IssueStateInProgress IssueState = "in_progress"
	IssueStateCompleted  IssueState = "completed"
)

// IssuePriority ranks urgency.
type IssuePriority string

const (
	IssuePriorityLow    IssuePriority = "low"
	IssuePriorityMedium IssuePriority = "medium"
	IssuePriorityHigh   IssuePriority = "high"
)

// Issue belongs to exactly one project. The assignee defaults to the
// author when not supplied at creation. Deleting an issue cascades to
// its comments.
type Issue struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string        `gorm:"not null" json:"name" validate:"required"`
	Description string        `gorm:"type:text" json:"description"`
	Tag         IssueTag      `gorm:"type:varchar(16);not null" json:"tag" validate:"required,oneof=bug feature task"`
	State       IssueState    `gorm:"type:varchar(16);not null;default:todo" json:"state" validate:"omitempty,oneof=todo in_progress completed"`
	Priority    IssuePriority `gorm:"type:varchar(16);not null" json:"priority" validate:"required,oneof=low medium high"`
	ProjectID   uuid.UUID     `gorm:"type:uuid;index;not null" json:"project"`
	Project     Project       `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
	AuthorID    uuid.UUID     `gorm:"type:uuid;index;not null" json:"author"`
	Author      User          `gorm:"foreignKey:AuthorID" json:"-"`
	AssigneeID  uuid.UUID     `gorm:"type:uuid;index;not null" json:"assignee"`
	Assignee    User          `gorm:"foreignKey:AssigneeID" json:"-"`
	CreatedAt   time.Time     `json:"created_time"`
}
