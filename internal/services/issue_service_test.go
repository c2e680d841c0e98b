package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/softdesk/api/internal/models"
	appErr "github.com/softdesk/api/pkg/errors"
)

type issueFixture struct {
	*projectFixture
	issues IssueService
}

func newIssueFixture() *issueFixture {
	pf := newProjectFixture()
	return &issueFixture{
		projectFixture: pf,
		issues:         NewIssueService(&fakeIssueRepo{s: pf.store}, &fakeUserRepo{s: pf.store}),
	}
}

func TestIssueCreateDefaultsAssigneeToAuthor(t *testing.T) {
	f := newIssueFixture()
	alice := f.user("alice")
	ctx := context.Background()

	p, err := f.svc.Create(ctx, alice.ID, &CreateProjectInput{Name: "api", Type: models.ProjectTypeBackend})
	require.NoError(t, err)

	issue, err := f.issues.Create(ctx, alice.ID, f.scoped(t, p.ID), &CreateIssueInput{
		Name: "crash", Tag: models.IssueTagBug, Priority: models.IssuePriorityHigh,
	})
	require.NoError(t, err)
	require.Equal(t, alice.ID, issue.AuthorID)
	require.Equal(t, alice.ID, issue.AssigneeID)
	require.Equal(t, models.IssueStateTodo, issue.State)
}

func TestIssueCreateExplicitAssignee(t *testing.T) {
	f := newIssueFixture()
	alice := f.user("alice")
	bob := f.user("bob")
	ctx := context.Background()

	p, err := f.svc.Create(ctx, alice.ID, &CreateProjectInput{Name: "api", Type: models.ProjectTypeBackend})
	require.NoError(t, err)
	require.NoError(t, f.svc.AddContributor(ctx, alice.ID, f.scoped(t, p.ID), bob.ID))

	issue, err := f.issues.Create(ctx, alice.ID, f.scoped(t, p.ID), &CreateIssueInput{
		Name: "crash", Tag: models.IssueTagBug, Priority: models.IssuePriorityHigh, Assignee: &bob.ID,
	})
	require.NoError(t, err)
	require.Equal(t, alice.ID, issue.AuthorID)
	require.Equal(t, bob.ID, issue.AssigneeID)
}

func TestIssueCreateContributorOnly(t *testing.T) {
	f := newIssueFixture()
	alice := f.user("alice")
	mallory := f.user("mallory")
	ctx := context.Background()

	p, err := f.svc.Create(ctx, alice.ID, &CreateProjectInput{Name: "api", Type: models.ProjectTypeBackend})
	require.NoError(t, err)

	_, err = f.issues.Create(ctx, mallory.ID, f.scoped(t, p.ID), &CreateIssueInput{
		Name: "crash", Tag: models.IssueTagBug, Priority: models.IssuePriorityHigh,
	})
	require.True(t, appErr.IsCode(err, appErr.CodeForbidden))

	_, err = f.issues.List(ctx, mallory.ID, f.scoped(t, p.ID))
	require.True(t, appErr.IsCode(err, appErr.CodeForbidden))
}

func TestIssueDuplicateCheckOnCreate(t *testing.T) {
	f := newIssueFixture()
	alice := f.user("alice")
	ctx := context.Background()

	p, err := f.svc.Create(ctx, alice.ID, &CreateProjectInput{Name: "api", Type: models.ProjectTypeBackend})
	require.NoError(t, err)
	sp := f.scoped(t, p.ID)

	_, err = f.issues.Create(ctx, alice.ID, sp, &CreateIssueInput{
		Name: "crash", Tag: models.IssueTagBug, Priority: models.IssuePriorityHigh,
	})
	require.NoError(t, err)

	// identical supplied fields: rejected
	_, err = f.issues.Create(ctx, alice.ID, sp, &CreateIssueInput{
		Name: "crash", Tag: models.IssueTagBug, Priority: models.IssuePriorityHigh,
	})
	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))

	// different priority: allowed
	_, err = f.issues.Create(ctx, alice.ID, sp, &CreateIssueInput{
		Name: "crash", Tag: models.IssueTagBug, Priority: models.IssuePriorityLow,
	})
	require.NoError(t, err)
}

func TestIssueUpdateAuthorOnly(t *testing.T) {
	f := newIssueFixture()
	alice := f.user("alice")
	bob := f.user("bob")
	ctx := context.Background()

	p, err := f.svc.Create(ctx, alice.ID, &CreateProjectInput{Name: "api", Type: models.ProjectTypeBackend})
	require.NoError(t, err)
	require.NoError(t, f.svc.AddContributor(ctx, alice.ID, f.scoped(t, p.ID), bob.ID))
	sp := f.scoped(t, p.ID)

	issue, err := f.issues.Create(ctx, bob.ID, sp, &CreateIssueInput{
		Name: "crash", Tag: models.IssueTagBug, Priority: models.IssuePriorityHigh,
	})
	require.NoError(t, err)

	// contributor can read
	got, err := f.issues.Get(ctx, alice.ID, sp, issue)
	require.NoError(t, err)
	require.Equal(t, issue.ID, got.ID)

	// but only the issue author can write
	done := models.IssueStateCompleted
	_, err = f.issues.Update(ctx, alice.ID, sp, issue, &UpdateIssueInput{State: &done})
	require.True(t, appErr.IsCode(err, appErr.CodeForbidden))
	err = f.issues.Delete(ctx, alice.ID, sp, issue)
	require.True(t, appErr.IsCode(err, appErr.CodeForbidden))

	// any state is settable by the author, in any order
	updated, err := f.issues.Update(ctx, bob.ID, sp, issue, &UpdateIssueInput{State: &done})
	require.NoError(t, err)
	require.Equal(t, models.IssueStateCompleted, updated.State)
	todo := models.IssueStateTodo
	updated, err = f.issues.Update(ctx, bob.ID, sp, updated, &UpdateIssueInput{State: &todo})
	require.NoError(t, err)
	require.Equal(t, models.IssueStateTodo, updated.State)
}

func TestIssueUpdateDuplicateComparesFullTuple(t *testing.T) {
	f := newIssueFixture()
	alice := f.user("alice")
	ctx := context.Background()

	p, err := f.svc.Create(ctx, alice.ID, &CreateProjectInput{Name: "api", Type: models.ProjectTypeBackend})
	require.NoError(t, err)
	sp := f.scoped(t, p.ID)

	_, err = f.issues.Create(ctx, alice.ID, sp, &CreateIssueInput{
		Name: "crash", Tag: models.IssueTagBug, Priority: models.IssuePriorityHigh,
	})
	require.NoError(t, err)
	other, err := f.issues.Create(ctx, alice.ID, sp, &CreateIssueInput{
		Name: "slow query", Tag: models.IssueTagTask, Priority: models.IssuePriorityLow,
	})
	require.NoError(t, err)

	// a state-only update must not collide with unrelated issues sharing
	// that state
	inProgress := models.IssueStateInProgress
	_, err = f.issues.Update(ctx, alice.ID, sp, other, &UpdateIssueInput{State: &inProgress})
	require.NoError(t, err)

	// renaming onto an existing full tuple is rejected
	name := "crash"
	tag := models.IssueTagBug
	prio := models.IssuePriorityHigh
	todo := models.IssueStateTodo
	_, err = f.issues.Update(ctx, alice.ID, sp, other, &UpdateIssueInput{
		Name: &name, Tag: &tag, Priority: &prio, State: &todo,
	})
	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))
}

func TestIssueDeleteCascadesComments(t *testing.T) {
	f := newIssueFixture()
	alice := f.user("alice")
	ctx := context.Background()

	p, err := f.svc.Create(ctx, alice.ID, &CreateProjectInput{Name: "api", Type: models.ProjectTypeBackend})
	require.NoError(t, err)
	sp := f.scoped(t, p.ID)

	issue, err := f.issues.Create(ctx, alice.ID, sp, &CreateIssueInput{
		Name: "crash", Tag: models.IssueTagBug, Priority: models.IssuePriorityHigh,
	})
	require.NoError(t, err)

	commentRepo := &fakeCommentRepo{s: f.store}
	require.NoError(t, commentRepo.Create(ctx, &models.Comment{Name: "repro", IssueID: issue.ID, AuthorID: alice.ID}))

	require.NoError(t, f.issues.Delete(ctx, alice.ID, sp, issue))
	require.Empty(t, f.store.comments)
}
