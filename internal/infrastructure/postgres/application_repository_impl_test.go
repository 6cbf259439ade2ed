package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/customtee/platform-api/internal/domain/entity"
	"github.com/customtee/platform-api/internal/domain/repository"
	"github.com/customtee/platform-api/internal/listing"
)

func applicationRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "user_id", "status", "notes", "created_at", "updated_at"})
}

func TestApplicationUpsert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewApplicationRepository(mock)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO freelancer_applications (user_id, status, notes)")).
		WithArgs("u1", "portfolio attached").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "status", "notes", "created_at", "updated_at", "inserted"}).
			AddRow("app-1", "u1", entity.StatusPending, "portfolio attached", now, now, true))

	app, created, err := repo.Upsert(context.Background(), "u1", "portfolio attached")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "app-1", app.ID)
	assert.Equal(t, entity.StatusPending, app.Status)
	assert.Equal(t, "portfolio attached", app.Notes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationUpsertReportsResetOnConflict(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewApplicationRepository(mock)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO freelancer_applications (user_id, status, notes)")).
		WithArgs("u1", "second try").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "status", "notes", "created_at", "updated_at", "inserted"}).
			AddRow("app-1", "u1", entity.StatusPending, "second try", now, now, false))

	app, created, err := repo.Upsert(context.Background(), "u1", "second try")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "app-1", app.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationGetByUserIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewApplicationRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM freelancer_applications WHERE user_id = $1")).
		WithArgs("nobody").
		WillReturnError(pgx.ErrNoRows)

	_, err = repo.GetByUserID(context.Background(), "nobody")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveAndPromoteCommitsBothWrites(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewApplicationRepository(mock)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE freelancer_applications SET status = 'APPROVED', updated_at = now()")).
		WithArgs("app-1").
		WillReturnRows(applicationRows().
			AddRow("app-1", "u1", entity.StatusApproved, "", now, now))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET role = $1, updated_at = now() WHERE id = $2")).
		WithArgs(entity.RoleFreelancer, "u1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	app, err := repo.ApproveAndPromote(context.Background(), "app-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusApproved, app.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveAndPromoteRollsBackOnMissingRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewApplicationRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE freelancer_applications SET status = 'APPROVED', updated_at = now()")).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err = repo.ApproveAndPromote(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveAndPromoteRollsBackOnPromoteFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewApplicationRepository(mock)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE freelancer_applications SET status = 'APPROVED', updated_at = now()")).
		WithArgs("app-1").
		WillReturnRows(applicationRows().
			AddRow("app-1", "u1", entity.StatusApproved, "", now, now))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET role = $1, updated_at = now() WHERE id = $2")).
		WithArgs(entity.RoleFreelancer, "u1").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err = repo.ApproveAndPromote(context.Background(), "app-1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationListBuildsFilters(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewApplicationRepository(mock)
	now := time.Now()

	filter := repository.ApplicationFilter{
		Status: entity.StatusPending,
		Search: "ann",
		Sort:   listing.Sort{By: "createdAt", Dir: "desc"},
		Page:   listing.Page{Number: 2, Size: 1},
	}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM freelancer_applications a JOIN users u ON u.id = a.user_id WHERE 1=1 AND a.status = $1")).
		WithArgs(entity.StatusPending, "%ann%").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

	mock.ExpectQuery(`ORDER BY a\.created_at DESC LIMIT \$3 OFFSET \$4`).
		WithArgs(entity.StatusPending, "%ann%", 1, 1).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "user_id", "status", "notes", "created_at", "updated_at",
			"uid", "email", "username", "first_name", "last_name",
		}).AddRow("app-2", "u2", entity.StatusPending, "", now, now,
			"u2", "ann@example.com", "ann", "Ann", "Lee"))

	apps, total, err := repo.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, apps, 1)
	assert.Equal(t, "app-2", apps[0].ID)
	assert.Equal(t, "ann", apps[0].User.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountByStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewApplicationRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM freelancer_applications WHERE status = $1")).
		WithArgs(entity.StatusApproved).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))

	n, err := repo.CountByStatus(context.Background(), entity.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
