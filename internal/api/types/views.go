// Per-operation representations of each entity. List and retrieve expose
// different field sets, so each view is an explicit struct built by its own
// constructor rather than a single struct with conditional fields.
package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/softdesk/api/internal/models"
)

// UserSummary is the list view of a user.
type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	URL      string    `json:"url"`
}

// UserDetail is the retrieve view of a user. The credential never appears.
type UserDetail struct {
	ID               uuid.UUID `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	Age              int       `json:"age"`
	ContactConsent   bool      `json:"contact_consent"`
	DataShareConsent bool      `json:"data_share_consent"`
	IsSuperuser      bool      `json:"is_superuser"`
	DateJoined       time.Time `json:"date_joined"`
}

// ContributorDetail is the retrieve view of a project contributor.
type ContributorDetail struct {
	ID               uuid.UUID `json:"id"`
	Username         string    `json:"username"`
	Age              int       `json:"age"`
	ContactConsent   bool      `json:"contact_consent"`
	DataShareConsent bool      `json:"data_share_consent"`
}

// ProjectSummary is the list view of a project.
type ProjectSummary struct {
	ID           uuid.UUID          `json:"id"`
	Name         string             `json:"name"`
	Type         models.ProjectType `json:"type"`
	Author       uuid.UUID          `json:"author"`
	Contributors []uuid.UUID        `json:"contributors"`
	URL          string             `json:"url"`
}

// ProjectDetail is the retrieve view of a project.
type ProjectDetail struct {
	ID           uuid.UUID          `json:"id"`
	Name         string             `json:"name"`
	Type         models.ProjectType `json:"type"`
	Description  string             `json:"description"`
	Author       uuid.UUID          `json:"author"`
	Contributors []uuid.UUID        `json:"contributors"`
	CreatedTime  time.Time          `json:"created_time"`
}

// IssueSummary is the list view of an issue.
type IssueSummary struct {
	ID          uuid.UUID            `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Tag         models.IssueTag      `json:"tag"`
	State       models.IssueState    `json:"state"`
	Priority    models.IssuePriority `json:"priority"`
	Author      uuid.UUID            `json:"author"`
}

// IssueDetail is the retrieve view of an issue.
type IssueDetail struct {
	ID          uuid.UUID            `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Tag         models.IssueTag      `json:"tag"`
	State       models.IssueState    `json:"state"`
	Priority    models.IssuePriority `json:"priority"`
	CreatedTime time.Time            `json:"created_time"`
	Author      uuid.UUID            `json:"author"`
	Assignee    uuid.UUID            `json:"assignee"`
	Project     uuid.UUID            `json:"project"`
}

// CommentSummary is the list view of a comment.
type CommentSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Author      uuid.UUID `json:"author"`
}

// CommentDetail is the retrieve view of a comment.
type CommentDetail struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedTime time.Time `json:"created_time"`
	Author      uuid.UUID `json:"author"`
	Issue       uuid.UUID `json:"issue"`
	IssueURL    string    `json:"issue_url"`
}

func NewUserSummary(u *models.User) UserSummary {
	return UserSummary{
		ID:       u.ID,
		Username: u.Username,
		URL:      fmt.Sprintf("/api/v1/users/%s", u.ID),
	}
}

func NewUserDetail(u *models.User) UserDetail {
	return UserDetail{
		ID:               u.ID,
		Username:         u.Username,
		Email:            u.Email,
		Age:              u.Age,
		ContactConsent:   u.ContactConsent,
		DataShareConsent: u.DataShareConsent,
		IsSuperuser:      u.IsSuperuser,
		DateJoined:       u.CreatedAt,
	}
}

func NewContributorDetail(u *models.User) ContributorDetail {
	return ContributorDetail{
		ID:               u.ID,
		Username:         u.Username,
		Age:              u.Age,
		ContactConsent:   u.ContactConsent,
		DataShareConsent: u.DataShareConsent,
	}
}

func contributorIDs(p *models.Project) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.Contributors))
	for i := range p.Contributors {
		ids = append(ids, p.Contributors[i].ID)
	}
	return ids
}

func NewProjectSummary(p *models.Project) ProjectSummary {
	return ProjectSummary{
		ID:           p.ID,
		Name:         p.Name,
		Type:         p.Type,
		Author:       p.AuthorID,
		Contributors: contributorIDs(p),
		URL:          fmt.Sprintf("/api/v1/projects/%s", p.ID),
	}
}

func NewProjectDetail(p *models.Project) ProjectDetail {
	return ProjectDetail{
		ID:           p.ID,
		Name:         p.Name,
		Type:         p.Type,
		Description:  p.Description,
		Author:       p.AuthorID,
		Contributors: contributorIDs(p),
		CreatedTime:  p.CreatedAt,
	}
}

func NewIssueSummary(i *models.Issue) IssueSummary {
	return IssueSummary{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Tag:         i.Tag,
		State:       i.State,
		Priority:    i.Priority,
		Author:      i.AuthorID,
	}
}

func NewIssueDetail(i *models.Issue) IssueDetail {
	return IssueDetail{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Tag:         i.Tag,
		State:       i.State,
		Priority:    i.Priority,
		CreatedTime: i.CreatedAt,
		Author:      i.AuthorID,
		Assignee:    i.AssigneeID,
		Project:     i.ProjectID,
	}
}

func NewCommentSummary(c *models.Comment) CommentSummary {
	return CommentSummary{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Author:      c.AuthorID,
	}
}

func NewCommentDetail(c *models.Comment) CommentDetail {
	return CommentDetail{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedTime: c.CreatedAt,
		Author:      c.AuthorID,
		Issue:       c.IssueID,
		IssueURL:    c.IssueURL,
	}
}
