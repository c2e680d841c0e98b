package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/softdesk/api/internal/models"
	appErr "github.com/softdesk/api/pkg/errors"
)

type projectFixture struct {
	svc   ProjectService
	store *fakeStore
	repo  *fakeProjectRepo
}

func newProjectFixture() *projectFixture {
	s := newFakeStore()
	pr := &fakeProjectRepo{s: s}
	return &projectFixture{
		svc:   NewProjectService(pr, &fakeUserRepo{s: s}),
		store: s,
		repo:  pr,
	}
}

func (f *projectFixture) user(username string) *models.User {
	return f.store.addUser(&models.User{Username: username, Email: username + "@example.com", Age: 25})
}

func (f *projectFixture) superuser(username string) *models.User {
	return f.store.addUser(&models.User{Username: username, Email: username + "@example.com", Age: 40, IsSuperuser: true})
}

func (f *projectFixture) scoped(t *testing.T, id uuid.UUID) *models.Project {
	t.Helper()
	var p models.Project
	require.NoError(t, f.repo.GetWithContributors(context.Background(), id, &p))
	return &p
}

func TestCreateProjectAuthorBecomesContributor(t *testing.T) {
	f := newProjectFixture()
	alice := f.user("alice")

	p, err := f.svc.Create(context.Background(), alice.ID, &CreateProjectInput{
		Name: "api", Type: models.ProjectTypeBackend,
	})
	require.NoError(t, err)
	require.Equal(t, alice.ID, p.AuthorID)
	require.True(t, p.HasContributor(alice.ID))
}

func TestCreateProjectDuplicateNameType(t *testing.T) {
	f := newProjectFixture()
	alice := f.user("alice")
	bob := f.user("bob")
	ctx := context.Background()

	_, err := f.svc.Create(ctx, alice.ID, &CreateProjectInput{Name: "api", Type: models.ProjectTypeBackend})
	require.NoError(t, err)

	// same pair visible to alice: rejected
	_, err = f.svc.Create(ctx, alice.ID, &CreateProjectInput{Name: "api", Type: models.ProjectTypeBackend})
	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))

	// same name, different type: allowed
	_, err = f.svc.Create(ctx, alice.ID, &CreateProjectInput{Name: "api", Type: models.ProjectTypeFrontend})
	require.NoError(t, err)

	// bob cannot see alice's project, so the same pair is fine for him
	_, err = f.svc.Create(ctx, bob.ID, &CreateProjectInput{Name: "api", Type: models.ProjectTypeBackend})
	require.NoError(t, err)
}

func TestListProjectsScopedToContributorship(t *testing.T) {
	f := newProjectFixture()
	alice := f.user("alice")
	bob := f.user("bob")
	ctx := context.Background()

	first, err := f.svc.Create(ctx, alice.ID, &CreateProjectInput{Name: "one", Type: models.ProjectTypeBackend})
	require.NoError(t, err)
	second, err := f.svc.Create(ctx, alice.ID, &CreateProjectInput{Name: "two", Type: models.ProjectTypeBackend})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, bob.ID, &CreateProjectInput{Name: "theirs", Type: models.ProjectTypeIOS})
	require.NoError(t, err)

	got, err := f.svc.List(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// creation time ascending
	require.Equal(t, first.ID, got[0].ID)
	require.Equal(t, second.ID, got[1].ID)
}

func TestContributorAddPermissions(t *testing.T) {
	f := newProjectFixture()
	alice := f.user("alice")
	bob := f.user("bob")
	carol := f.user("carol")
	ctx := context.Background()

	p, err := f.svc.Create(ctx, alice.ID, &CreateProjectInput{Name: "api", Type: models.ProjectTypeBackend})
	require.NoError(t, err)

	require.NoError(t, f.svc.AddContributor(ctx, alice.ID, f.scoped(t, p.ID), bob.ID))

	// a non-author contributor may not manage membership
	err = f.svc.AddContributor(ctx, bob.ID, f.scoped(t, p.ID), carol.ID)
	require.True(t, appErr.IsCode(err, appErr.CodeForbidden))
	err = f.svc.RemoveContributor(ctx, bob.ID, f.scoped(t, p.ID), bob.ID)
	require.True(t, appErr.IsCode(err, appErr.CodeForbidden))
}

func TestContributorAddValidation(t *testing.T) {
	f := newProjectFixture()
	alice := f.user("alice")
	bob := f.user("bob")
	root := f.superuser("root")
	ctx := context.Background()

	p, err := f.svc.Create(ctx, alice.ID, &CreateProjectInput{Name: "api", Type: models.ProjectTypeBackend})
	require.NoError(t, err)

	// nonexistent target
	err = f.svc.AddContributor(ctx, alice.ID, f.scoped(t, p.ID), uuid.New())
	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))

	// superuser target
	err = f.svc.AddContributor(ctx, alice.ID, f.scoped(t, p.ID), root.ID)
	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))

	// double add
	require.NoError(t, f.svc.AddContributor(ctx, alice.ID, f.scoped(t, p.ID), bob.ID))
	err = f.svc.AddContributor(ctx, alice.ID, f.scoped(t, p.ID), bob.ID)
	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))
}

func TestContributorRemove(t *testing.T) {
	f := newProjectFixture()
	alice := f.user("alice")
	bob := f.user("bob")
	ctx := context.Background()

	p, err := f.svc.Create(ctx, alice.ID, &CreateProjectInput{Name: "api", Type: models.ProjectTypeBackend})
	require.NoError(t, err)
	require.NoError(t, f.svc.AddContributor(ctx, alice.ID, f.scoped(t, p.ID), bob.ID))

	// the author cannot be removed through the membership edge
	err = f.svc.RemoveContributor(ctx, alice.ID, f.scoped(t, p.ID), alice.ID)
	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))

	require.NoError(t, f.svc.RemoveContributor(ctx, alice.ID, f.scoped(t, p.ID), bob.ID))
	require.False(t, f.scoped(t, p.ID).HasContributor(bob.ID))

	// removing the edge never deletes the user record
	require.NotNil(t, f.store.users[bob.ID])

	// already gone
	err = f.svc.RemoveContributor(ctx, alice.ID, f.scoped(t, p.ID), bob.ID)
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}

func TestProjectMutationAuthorOnly(t *testing.T) {
	f := newProjectFixture()
	alice := f.user("alice")
	bob := f.user("bob")
	ctx := context.Background()

	p, err := f.svc.Create(ctx, alice.ID, &CreateProjectInput{Name: "api", Type: models.ProjectTypeBackend})
	require.NoError(t, err)
	require.NoError(t, f.svc.AddContributor(ctx, alice.ID, f.scoped(t, p.ID), bob.ID))

	newName := "renamed"
	_, err = f.svc.Update(ctx, bob.ID, f.scoped(t, p.ID), &UpdateProjectInput{Name: &newName})
	require.True(t, appErr.IsCode(err, appErr.CodeForbidden))

	err = f.svc.Delete(ctx, bob.ID, f.scoped(t, p.ID))
	require.True(t, appErr.IsCode(err, appErr.CodeForbidden))

	_, err = f.svc.Update(ctx, alice.ID, f.scoped(t, p.ID), &UpdateProjectInput{Name: &newName})
	require.NoError(t, err)
	require.NoError(t, f.svc.Delete(ctx, alice.ID, f.scoped(t, p.ID)))
}

func TestProjectDeleteCascades(t *testing.T) {
	f := newProjectFixture()
	alice := f.user("alice")
	ctx := context.Background()

	p, err := f.svc.Create(ctx, alice.ID, &CreateProjectInput{Name: "api", Type: models.ProjectTypeBackend})
	require.NoError(t, err)

	issueRepo := &fakeIssueRepo{s: f.store}
	commentRepo := &fakeCommentRepo{s: f.store}
	issue := &models.Issue{Name: "crash", Tag: models.IssueTagBug, State: models.IssueStateTodo, Priority: models.IssuePriorityHigh, ProjectID: p.ID, AuthorID: alice.ID, AssigneeID: alice.ID}
	require.NoError(t, issueRepo.Create(ctx, issue))
	require.NoError(t, commentRepo.Create(ctx, &models.Comment{Name: "repro", IssueID: issue.ID, AuthorID: alice.ID}))

	require.NoError(t, f.svc.Delete(ctx, alice.ID, f.scoped(t, p.ID)))
	require.Empty(t, f.store.issues)
	require.Empty(t, f.store.comments)
}
