// Package scope resolves the parent resources addressed by a request's path
// (project, optionally issue) exactly once at request entry and threads them
// through the request context. Downstream permission checks and mutations
// read the same resolved record; nothing re-fetches mid-request.
package scope

import (
	"context"

	"github.com/softdesk/api/internal/models"
)

type ctxKey int

const (
	projectKey ctxKey = iota
	issueKey
)

// WithProject stores the resolved parent project on the context.
func WithProject(ctx context.Context, p *models.Project) context.Context {
	return context.WithValue(ctx, projectKey, p)
}

// Project returns the resolved parent project, or nil when the route has no
// project segment.
func Project(ctx context.Context) *models.Project {
	p, _ := ctx.Value(projectKey).(*models.Project)
	return p
}

// WithIssue stores the resolved parent issue on the context.
func WithIssue(ctx context.Context, i *models.Issue) context.Context {
	return context.WithValue(ctx, issueKey, i)
}

// Issue returns the resolved parent issue, or nil when the route has no
// issue segment.
func Issue(ctx context.Context) *models.Issue {
	i, _ := ctx.Value(issueKey).(*models.Issue)
	return i
}
