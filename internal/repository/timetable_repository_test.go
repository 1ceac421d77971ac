package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entu-dev/timetable-api/internal/models"
)

func newTimetableRepoMock(t *testing.T) (*TimetableRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewTimetableRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestTimetableRepositoryCreate(t *testing.T) {
	repo, mock := newTimetableRepoMock(t)

	record := &models.SavedTimetable{
		ID:           "tt-1",
		UserID:       "user-1",
		Name:         "AI 시간표 1",
		Semester:     "2025-2학기",
		TotalCredits: 17,
		Courses:      types.JSONText(`[]`),
		Benefits:     types.JSONText(`[]`),
		CreatedAt:    time.Unix(0, 0),
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO saved_timetables")).
		WithArgs(record.ID, record.UserID, record.Name, record.Semester, record.TotalCredits, record.Courses, record.Benefits, record.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Create(context.Background(), record))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryListByUser(t *testing.T) {
	repo, mock := newTimetableRepoMock(t)

	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "semester", "total_credits", "courses", "benefits", "created_at"}).
		AddRow("tt-2", "user-1", "AI 시간표 2", "2025-2학기", 16, []byte(`[]`), []byte(`[]`), time.Unix(0, 0)).
		AddRow("tt-1", "user-1", "AI 시간표 1", "2025-2학기", 17, []byte(`[]`), []byte(`[]`), time.Unix(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("FROM saved_timetables WHERE user_id = $1 ORDER BY created_at DESC")).
		WithArgs("user-1").
		WillReturnRows(rows)

	timetables, err := repo.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, timetables, 2)
	assert.Equal(t, "tt-2", timetables[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryDeleteNotFound(t *testing.T) {
	repo, mock := newTimetableRepoMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM saved_timetables WHERE id = $1 AND user_id = $2")).
		WithArgs("missing", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing", "user-1")
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
