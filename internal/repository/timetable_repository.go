package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/entu-dev/timetable-api/internal/models"
)

// TimetableRepository persists saved timetables.
type TimetableRepository struct {
	db *sqlx.DB
}

// NewTimetableRepository creates a new repository instance.
func NewTimetableRepository(db *sqlx.DB) *TimetableRepository {
	return &TimetableRepository{db: db}
}

const timetableColumns = "id, user_id, name, semester, total_credits, courses, benefits, created_at"

// Create stores a saved timetable.
func (r *TimetableRepository) Create(ctx context.Context, timetable *models.SavedTimetable) error {
	const query = `INSERT INTO saved_timetables (id, user_id, name, semester, total_credits, courses, benefits, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := r.db.ExecContext(ctx, query,
		timetable.ID, timetable.UserID, timetable.Name, timetable.Semester,
		timetable.TotalCredits, timetable.Courses, timetable.Benefits, timetable.CreatedAt,
	); err != nil {
		return fmt.Errorf("create saved timetable: %w", err)
	}
	return nil
}

// ListByUser returns a user's saved timetables, newest first.
func (r *TimetableRepository) ListByUser(ctx context.Context, userID string) ([]models.SavedTimetable, error) {
	var timetables []models.SavedTimetable
	query := fmt.Sprintf("SELECT %s FROM saved_timetables WHERE user_id = $1 ORDER BY created_at DESC", timetableColumns)
	if err := r.db.SelectContext(ctx, &timetables, query, userID); err != nil {
		return nil, fmt.Errorf("list saved timetables: %w", err)
	}
	return timetables, nil
}

// FindByID loads one saved timetable.
func (r *TimetableRepository) FindByID(ctx context.Context, id string) (*models.SavedTimetable, error) {
	var timetable models.SavedTimetable
	query := fmt.Sprintf("SELECT %s FROM saved_timetables WHERE id = $1", timetableColumns)
	if err := r.db.GetContext(ctx, &timetable, query, id); err != nil {
		return nil, err
	}
	return &timetable, nil
}

// Delete removes a saved timetable owned by the user.
func (r *TimetableRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM saved_timetables WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("delete saved timetable: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete saved timetable: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("saved timetable %s not found", id)
	}
	return nil
}
