package access

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/softdesk/api/internal/models"
	appErr "github.com/softdesk/api/pkg/errors"
)

func newProject(author uuid.UUID, contributors ...uuid.UUID) *models.Project {
	p := &models.Project{ID: uuid.New(), AuthorID: author}
	for _, id := range contributors {
		p.Contributors = append(p.Contributors, models.User{ID: id})
	}
	return p
}

func TestProjectAuthorOnly(t *testing.T) {
	author := uuid.New()
	other := uuid.New()
	p := newProject(author, author, other)

	require.NoError(t, ProjectAuthorOnly(author, p))

	err := ProjectAuthorOnly(other, p)
	require.Error(t, err)
	require.True(t, appErr.IsCode(err, appErr.CodeForbidden))
	require.Contains(t, err.Error(), ReasonNotProjectAuthor)
}

func TestProjectContributor(t *testing.T) {
	author := uuid.New()
	member := uuid.New()
	outsider := uuid.New()
	p := newProject(author, author, member)

	require.NoError(t, ProjectContributor(author, p))
	require.NoError(t, ProjectContributor(member, p))

	err := ProjectContributor(outsider, p)
	require.True(t, appErr.IsCode(err, appErr.CodeForbidden))
}

func TestAuthorOrReadOnly(t *testing.T) {
	author := uuid.New()
	reader := uuid.New()

	// reads pass for everyone
	require.NoError(t, AuthorOrReadOnly(reader, author, false))
	require.NoError(t, AuthorOrReadOnly(author, author, false))

	// writes pass only for the author
	require.NoError(t, AuthorOrReadOnly(author, author, true))
	err := AuthorOrReadOnly(reader, author, true)
	require.True(t, appErr.IsCode(err, appErr.CodeForbidden))
	require.Contains(t, err.Error(), ReasonNotObjectAuthor)
}

func TestSelfOnly(t *testing.T) {
	me := uuid.New()
	them := uuid.New()

	require.NoError(t, SelfOnly(me, me))
	err := SelfOnly(me, them)
	require.True(t, appErr.IsCode(err, appErr.CodeForbidden))
}

func TestRequireAllMustPass(t *testing.T) {
	author := uuid.New()
	member := uuid.New()
	p := newProject(author, author, member)

	// contributor but not author: composition denies the write
	err := Require(
		ProjectContributor(member, p),
		AuthorOrReadOnly(member, author, true),
	)
	require.True(t, appErr.IsCode(err, appErr.CodeForbidden))
	require.Contains(t, err.Error(), ReasonNotObjectAuthor)

	// author passes both
	require.NoError(t, Require(
		ProjectContributor(author, p),
		AuthorOrReadOnly(author, author, true),
	))

	// first denial wins
	outsider := uuid.New()
	err = Require(
		ProjectContributor(outsider, p),
		AuthorOrReadOnly(outsider, author, true),
	)
	require.Contains(t, err.Error(), ReasonNotContributor)
}
