// Package access holds the permission predicates for the nested-ownership
// model: project -> issue -> comment, with author and contributor roles.
// Every predicate is a pure function over the caller and an already-resolved
// resource; it returns nil to allow or a forbidden error carrying the fixed
// reason for that rule. Denial is always explicit, never a silent filter.
package access

import (
	"github.com/google/uuid"

	"github.com/softdesk/api/internal/models"
	appErr "github.com/softdesk/api/pkg/errors"
)

// Fixed denial reasons, one per rule.
const (
	ReasonNotObjectAuthor  = "you must be the author to modify or delete this object"
	ReasonNotProjectAuthor = "only the project author can add or remove contributors"
	ReasonNotContributor   = "you must be a contributor of this project to access this resource"
	ReasonNotSelf          = "you can only view or modify your own account"
)

// ProjectAuthorOnly allows only the project's author.
func ProjectAuthorOnly(callerID uuid.UUID, p *models.Project) error {
	if p.AuthorID != callerID {
		return appErr.Forbidden(ReasonNotProjectAuthor)
	}
	return nil
}

// ProjectContributor allows any user in the project's contributor set.
// The project must have been resolved with contributors loaded.
func ProjectContributor(callerID uuid.UUID, p *models.Project) error {
	if !p.HasContributor(callerID) {
		return appErr.Forbidden(ReasonNotContributor)
	}
	return nil
}

// AuthorOrReadOnly allows reads for anyone; writes only for the object's
// author. authorID is the author of the addressed project, issue or comment.
func AuthorOrReadOnly(callerID, authorID uuid.UUID, write bool) error {
	if !write {
		return nil
	}
	if authorID != callerID {
		return appErr.Forbidden(ReasonNotObjectAuthor)
	}
	return nil
}

// SelfOnly allows a user to act only on their own account.
func SelfOnly(callerID, targetID uuid.UUID) error {
	if callerID != targetID {
		return appErr.Forbidden(ReasonNotSelf)
	}
	return nil
}

// Require composes checks with logical AND: the first denial wins and is
// returned verbatim.
func Require(checks ...error) error {
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}
