package types

// Request bodies with their validation rules. Pointer fields on update
// requests distinguish "absent" from "zero" for partial updates.

type SignupRequest struct {
	Username         string `json:"username" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=8"`
	Age              int    `json:"age" validate:"required"`
	ContactConsent   bool   `json:"contact_consent"`
	DataShareConsent bool   `json:"data_share_consent"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type UpdateUserRequest struct {
	Email            *string `json:"email" validate:"omitempty,email"`
	Password         *string `json:"password" validate:"omitempty,min=8"`
	Age              *int    `json:"age"`
	ContactConsent   *bool   `json:"contact_consent"`
	DataShareConsent *bool   `json:"data_share_consent"`
}

type CreateProjectRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Type        string `json:"type" validate:"required,oneof=backend frontend ios android"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Type        *string `json:"type" validate:"omitempty,oneof=backend frontend ios android"`
}

type AddContributorRequest struct {
	User string `json:"user" validate:"required,uuid"`
}

type CreateIssueRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Tag         string  `json:"tag" validate:"required,oneof=bug feature task"`
	State       *string `json:"state" validate:"omitempty,oneof=todo in_progress completed"`
	Priority    string  `json:"priority" validate:"required,oneof=low medium high"`
	Assignee    *string `json:"assignee" validate:"omitempty,uuid"`
}

type UpdateIssueRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Tag         *string `json:"tag" validate:"omitempty,oneof=bug feature task"`
	State       *string `json:"state" validate:"omitempty,oneof=todo in_progress completed"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=low medium high"`
	Assignee    *string `json:"assignee" validate:"omitempty,uuid"`
}

type CreateCommentRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type UpdateCommentRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}
