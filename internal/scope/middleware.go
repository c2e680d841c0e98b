package scope

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/softdesk/api/internal/api/types"
	"github.com/softdesk/api/internal/models"
	"github.com/softdesk/api/internal/repository"
	appErr "github.com/softdesk/api/pkg/errors"
)

// ResolveProject loads the project addressed by the {projectID} path segment,
// contributors included, and stores it on the request context. A missing or
// malformed id ends the request with NotFound.
func ResolveProject(projects repository.ProjectRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(chi.URLParam(r, "projectID"))
			if err != nil {
				types.WriteError(w, appErr.NotFound("project not found"))
				return
			}
			var p models.Project
			if err := projects.GetWithContributors(r.Context(), id, &p); err != nil {
				types.WriteError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithProject(r.Context(), &p)))
		})
	}
}

// ResolveIssue loads the issue addressed by the {issueID} path segment. It
// must run inside ResolveProject; an issue that exists but belongs to a
// different project is treated as absent.
func ResolveIssue(issues repository.IssueRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			project := Project(r.Context())
			if project == nil {
				types.WriteError(w, appErr.NotFound("project not found"))
				return
			}
			id, err := uuid.Parse(chi.URLParam(r, "issueID"))
			if err != nil {
				types.WriteError(w, appErr.NotFound("issue not found"))
				return
			}
			var i models.Issue
			if err := issues.GetByID(r.Context(), id, &i); err != nil {
				if appErr.IsCode(err, appErr.CodeNotFound) {
					err = appErr.NotFound("issue not found")
				}
				types.WriteError(w, err)
				return
			}
			if i.ProjectID != project.ID {
				types.WriteError(w, appErr.NotFound("issue not found"))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIssue(r.Context(), &i)))
		})
	}
}
