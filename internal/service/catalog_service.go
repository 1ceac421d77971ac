package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/entu-dev/timetable-api/internal/dto"
	"github.com/entu-dev/timetable-api/internal/models"
	appErrors "github.com/entu-dev/timetable-api/pkg/errors"
)

// CatalogHeaders is the canonical column order of the registrar's sheet,
// matching the ordinals in models.CourseFromRow.
var CatalogHeaders = []string{"학년", "과목코드", "과목명", "분반", "영역", "교수명", "강의실", "시간", "학점", "트랙"}

const catalogCacheKey = "catalog:snapshot"

type catalogCourseRepository interface {
	ListAll(ctx context.Context) ([]models.Course, error)
	List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error)
	ReplaceAll(ctx context.Context, courses []models.Course) error
}

type snapshotCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// CatalogService owns the course catalog: browsing, positional import, and
// the read-only snapshot generation runs against.
type CatalogService struct {
	courses  catalogCourseRepository
	cache    snapshotCache
	cacheTTL time.Duration
	logger   *zap.Logger
	metrics  *MetricsService
}

// NewCatalogService wires the catalog dependencies. cache and metrics may be
// nil.
func NewCatalogService(courses catalogCourseRepository, cache snapshotCache, cacheTTL time.Duration, logger *zap.Logger, metrics *MetricsService) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &CatalogService{courses: courses, cache: cache, cacheTTL: cacheTTL, logger: logger, metrics: metrics}
}

// Snapshot returns the in-memory catalog the generator consumes. Cache
// problems fall through to the database; database problems degrade to an
// unsuccessful snapshot so generation yields zero candidates instead of
// failing.
func (s *CatalogService) Snapshot(ctx context.Context) (*models.CatalogSnapshot, error) {
	if s.cache != nil {
		var cached models.CatalogSnapshot
		err := s.cache.Get(ctx, catalogCacheKey, &cached)
		if err == nil && cached.Success {
			s.metrics.RecordCacheOperation(true)
			return &cached, nil
		}
		s.metrics.RecordCacheOperation(false)
		if err != nil && !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("catalog cache read failed", zap.Error(err))
		}
	}

	courses, err := s.courses.ListAll(ctx)
	if err != nil {
		s.logger.Error("catalog load failed", zap.Error(err))
		return &models.CatalogSnapshot{Success: false}, nil
	}

	snapshot := &models.CatalogSnapshot{
		Success: true,
		Courses: courses,
		Headers: CatalogHeaders,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, catalogCacheKey, snapshot, s.cacheTTL); err != nil {
			s.logger.Warn("catalog cache write failed", zap.Error(err))
		}
	}
	return snapshot, nil
}

// List returns catalog entries for the browsing page.
func (s *CatalogService) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, *models.Pagination, error) {
	courses, total, err := s.courses.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	return courses, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Import replaces the catalog from positional sheet rows. Rows with no data
// at all are skipped, mirroring how the sheet is read.
func (s *CatalogService) Import(ctx context.Context, req dto.ImportCoursesRequest) (*dto.ImportCoursesResponse, error) {
	if len(req.Rows) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "rows must contain at least one entry")
	}

	courses := make([]models.Course, 0, len(req.Rows))
	skipped := 0
	for _, row := range req.Rows {
		course := models.CourseFromRow(row)
		if course.Empty() {
			skipped++
			continue
		}
		courses = append(courses, course)
	}

	if err := s.courses.ReplaceAll(ctx, courses); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to import catalog")
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, catalogCacheKey); err != nil {
			s.logger.Warn("catalog cache invalidation failed", zap.Error(err))
		}
	}

	s.logger.Info("catalog imported", zap.Int("courses", len(courses)), zap.Int("skipped", skipped))
	return &dto.ImportCoursesResponse{Imported: len(courses), Skipped: skipped}, nil
}
