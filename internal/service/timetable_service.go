package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"github.com/entu-dev/timetable-api/internal/dto"
	"github.com/entu-dev/timetable-api/internal/models"
	appErrors "github.com/entu-dev/timetable-api/pkg/errors"
	"github.com/entu-dev/timetable-api/pkg/export"
)

type savedTimetableRepository interface {
	Create(ctx context.Context, timetable *models.SavedTimetable) error
	ListByUser(ctx context.Context, userID string) ([]models.SavedTimetable, error)
	FindByID(ctx context.Context, id string) (*models.SavedTimetable, error)
	Delete(ctx context.Context, id, userID string) error
}

// TimetableService owns the persistence hand-off: a generated candidate the
// student chose is copied into storage with a timestamp and semester label.
// The stored record is a new entity; the generated one is never mutated.
type TimetableService struct {
	repo      savedTimetableRepository
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	semester  string
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTimetableService wires the saved-timetable dependencies.
func NewTimetableService(repo savedTimetableRepository, semester string, validate *validator.Validate, logger *zap.Logger) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if semester == "" {
		semester = "2025-2학기"
	}
	return &TimetableService{
		repo:      repo,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		semester:  semester,
		validator: validate,
		logger:    logger,
	}
}

// Save persists a chosen candidate for the user.
func (s *TimetableService) Save(ctx context.Context, userID string, req dto.SaveTimetableRequest) (*models.SavedTimetable, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid save payload")
	}

	coursesJSON, err := json.Marshal(req.Courses)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode courses")
	}
	benefitsJSON, err := json.Marshal(req.Benefits)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode benefits")
	}

	semester := req.Semester
	if semester == "" {
		semester = s.semester
	}

	record := &models.SavedTimetable{
		ID:           uuid.NewString(),
		UserID:       userID,
		Name:         req.Name,
		Semester:     semester,
		TotalCredits: req.TotalCredits,
		Courses:      types.JSONText(coursesJSON),
		Benefits:     types.JSONText(benefitsJSON),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save timetable")
	}

	s.logger.Info("timetable saved", zap.String("id", record.ID), zap.String("user", userID), zap.Int("credits", record.TotalCredits))
	return record, nil
}

// List returns the user's saved timetables.
func (s *TimetableService) List(ctx context.Context, userID string) ([]models.SavedTimetable, error) {
	timetables, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list timetables")
	}
	return timetables, nil
}

// Get loads one saved timetable, enforcing ownership.
func (s *TimetableService) Get(ctx context.Context, userID, id string) (*models.SavedTimetable, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "timetable not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable")
	}
	if record.UserID != userID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "timetable belongs to another user")
	}
	return record, nil
}

// Delete removes one of the user's saved timetables.
func (s *TimetableService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete timetable")
	}
	return nil
}

// ExportFormat selects the rendering for a stored timetable.
type ExportFormat string

const (
	ExportCSV ExportFormat = "csv"
	ExportPDF ExportFormat = "pdf"
)

// ExportResult is a rendered timetable ready to stream.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// Export renders a saved timetable as CSV or PDF.
func (s *TimetableService) Export(ctx context.Context, userID, id string, format ExportFormat) (*ExportResult, error) {
	record, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	var courses []models.Course
	if err := json.Unmarshal(record.Courses, &courses); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode stored courses")
	}

	dataset := export.Dataset{
		Headers: []string{"code", "name", "area", "professor", "room", "time", "credits"},
		Rows:    make([]map[string]string, 0, len(courses)),
	}
	for _, c := range courses {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"code":      c.Code,
			"name":      c.Name,
			"area":      c.Area,
			"professor": c.Professor,
			"room":      c.Room,
			"time":      c.TimeText,
			"credits":   c.CreditRaw,
		})
	}

	base := strings.ReplaceAll(record.Name, " ", "_")
	switch format {
	case ExportCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{Content: content, ContentType: "text/csv", Filename: base + ".csv"}, nil
	case ExportPDF:
		content, err := s.pdf.Render(dataset, record.Name)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{Content: content, ContentType: "application/pdf", Filename: base + ".pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}
