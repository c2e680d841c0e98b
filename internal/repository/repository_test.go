package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/softdesk/api/internal/models"
	appErr "github.com/softdesk/api/pkg/errors"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

func TestBaseRepositoryGetByID(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewBaseRepository[models.User](gdb)
	id := uuid.New()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
			WithArgs(id, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(id, "alice"))

		var u models.User
		require.NoError(t, repo.GetByID(context.Background(), id, &u))
		require.Equal(t, "alice", u.Username)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row maps to not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
			WithArgs(id, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username"}))

		var u models.User
		err := repo.GetByID(context.Background(), id, &u)
		require.True(t, appErr.IsCode(err, appErr.CodeNotFound))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBaseRepositoryDeleteMissing(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewBaseRepository[models.Comment](gdb)
	id := uuid.New()

	mock.ExpectExec(`DELETE FROM "comments" WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), id)
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIssueExistsDuplicateClauseComposition(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewIssueRepository(gdb)
	projectID := uuid.New()
	ctx := context.Background()

	t.Run("nil fields stay out of the query", func(t *testing.T) {
		name := "crash"
		mock.ExpectQuery(`SELECT count\(\*\) FROM "issues" WHERE project_id = \$1 AND name = \$2`).
			WithArgs(projectID, name).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		dup, err := repo.ExistsDuplicate(ctx, projectID, IssueDuplicateFilter{Name: &name})
		require.NoError(t, err)
		require.True(t, dup)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exclusion adds an id clause", func(t *testing.T) {
		name := "crash"
		tag := models.IssueTagBug
		excluded := uuid.New()
		mock.ExpectQuery(`SELECT count\(\*\) FROM "issues" WHERE project_id = \$1 AND name = \$2 AND tag = \$3 AND id <> \$4`).
			WithArgs(projectID, name, tag, excluded).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		dup, err := repo.ExistsDuplicate(ctx, projectID, IssueDuplicateFilter{
			Name: &name, Tag: &tag, ExcludeID: excluded,
		})
		require.NoError(t, err)
		require.False(t, dup)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCommentExistsByName(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewCommentRepository(gdb)
	issueID := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "comments" WHERE issue_id = \$1 AND name = \$2`).
		WithArgs(issueID, "repro").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	dup, err := repo.ExistsByName(context.Background(), issueID, "repro", uuid.Nil)
	require.NoError(t, err)
	require.True(t, dup)
	require.NoError(t, mock.ExpectationsWereMet())
}
