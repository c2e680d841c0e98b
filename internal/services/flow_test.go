package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/softdesk/api/internal/models"
	appErr "github.com/softdesk/api/pkg/errors"
)

// Exercises a full lifecycle across services sharing one store: two users
// register, collaborate on a project, and the issue author keeps exclusive
// control over their issue until it is deleted along with its comments.
func TestCollaborationLifecycle(t *testing.T) {
	s := newFakeStore()
	auth := NewAuthService(&fakeUserRepo{s: s}, []byte(testSecret), 15*time.Minute, 24*time.Hour)
	pr := &fakeProjectRepo{s: s}
	projects := NewProjectService(pr, &fakeUserRepo{s: s})
	issues := NewIssueService(&fakeIssueRepo{s: s}, &fakeUserRepo{s: s})
	comments := NewCommentService(&fakeCommentRepo{s: s}, testBaseURL)
	ctx := context.Background()

	reload := func(t *testing.T, p *models.Project) *models.Project {
		t.Helper()
		var out models.Project
		require.NoError(t, pr.GetWithContributors(ctx, p.ID, &out))
		return &out
	}

	alice, err := auth.Register(ctx, &RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "password123", Age: 30,
	})
	require.NoError(t, err)
	bob, err := auth.Register(ctx, &RegisterInput{
		Username: "bob", Email: "bob@example.com", Password: "password123", Age: 22,
	})
	require.NoError(t, err)

	p, err := projects.Create(ctx, alice.ID, &CreateProjectInput{Name: "tracker", Type: models.ProjectTypeBackend})
	require.NoError(t, err)
	require.NoError(t, projects.AddContributor(ctx, alice.ID, reload(t, p), bob.ID))
	p = reload(t, p)

	issue, err := issues.Create(ctx, bob.ID, p, &CreateIssueInput{
		Name: "login broken", Tag: models.IssueTagBug, Priority: models.IssuePriorityHigh,
	})
	require.NoError(t, err)
	require.Equal(t, bob.ID, issue.AuthorID)
	require.Equal(t, bob.ID, issue.AssigneeID)

	c, err := comments.Create(ctx, alice.ID, p, issue, &CreateCommentInput{Name: "triage", Description: "repro confirmed"})
	require.NoError(t, err)

	// the project author is still only a reader of bob's issue
	err = issues.Delete(ctx, alice.ID, p, issue)
	require.True(t, appErr.IsCode(err, appErr.CodeForbidden))

	require.NoError(t, issues.Delete(ctx, bob.ID, p, issue))

	listed, err := issues.List(ctx, alice.ID, p)
	require.NoError(t, err)
	require.Empty(t, listed)
	_, ok := s.comments[c.ID]
	require.False(t, ok)
}
