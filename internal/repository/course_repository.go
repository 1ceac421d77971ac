package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/entu-dev/timetable-api/internal/models"
)

// CourseRepository handles persistence for the course catalog.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository creates a new repository instance.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

const courseColumns = "id, grade, code, name, section, area, professor, room, time_text, credits, tracks, created_at, updated_at"

// ListAll returns the full catalog in import order.
func (r *CourseRepository) ListAll(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	query := fmt.Sprintf("SELECT %s FROM courses ORDER BY created_at, code", courseColumns)
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	return courses, nil
}

// List returns catalog entries matching filters with pagination metadata.
func (r *CourseRepository) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error) {
	base := "FROM courses WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Area != "" {
		conditions = append(conditions, fmt.Sprintf("area = $%d", len(args)+1))
		args = append(args, filter.Area)
	}
	if filter.Grade != "" {
		conditions = append(conditions, fmt.Sprintf("grade = $%d", len(args)+1))
		args = append(args, filter.Grade)
	}
	if filter.Track != "" {
		conditions = append(conditions, fmt.Sprintf("tracks LIKE $%d", len(args)+1))
		args = append(args, "%"+filter.Track+"%")
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(code) LIKE $%d OR LOWER(name) LIKE $%d OR LOWER(professor) LIKE $%d)", len(args)+1, len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]bool{
		"code":       true,
		"name":       true,
		"area":       true,
		"grade":      true,
		"created_at": true,
	}
	if !allowedSorts[sortBy] {
		sortBy = "code"
	}

	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", courseColumns, base, sortBy, order, size, offset)
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}

	return courses, total, nil
}

// ReplaceAll swaps the catalog for a freshly imported one in a single
// transaction, so readers never observe a half-imported sheet.
func (r *CourseRepository) ReplaceAll(ctx context.Context, courses []models.Course) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin catalog import: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM courses"); err != nil {
		return fmt.Errorf("clear catalog: %w", err)
	}

	now := time.Now().UTC()
	const insert = `INSERT INTO courses (id, grade, code, name, section, area, professor, room, time_text, credits, tracks, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	for i := range courses {
		course := &courses[i]
		if course.ID == "" {
			course.ID = uuid.NewString()
		}
		course.CreatedAt = now
		course.UpdatedAt = now
		if _, err = tx.ExecContext(ctx, insert,
			course.ID, course.Grade, course.Code, course.Name, course.Section,
			course.Area, course.Professor, course.Room, course.TimeText,
			course.CreditRaw, course.TrackRaw, course.CreatedAt, course.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert course %s: %w", course.Code, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit catalog import: %w", err)
	}
	return nil
}
