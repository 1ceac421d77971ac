package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/entu-dev/timetable-api/internal/dto"
	"github.com/entu-dev/timetable-api/internal/models"
	appErrors "github.com/entu-dev/timetable-api/pkg/errors"
)

type catalogSource interface {
	Snapshot(ctx context.Context) (*models.CatalogSnapshot, error)
}

// AreaProfile is one diversification strategy: an ordered area walk giving
// each attempt its own pedagogical shape. New strategies slot in here without
// touching the assembly loop.
type AreaProfile struct {
	Name  string
	Order []string
}

// DefaultAreaProfiles returns the three stock strategies.
func DefaultAreaProfiles() []AreaProfile {
	return []AreaProfile{
		{Name: "트랙 전공 집중형", Order: []string{models.AreaEL, models.AreaEF, models.AreaMN, models.AreaGE, models.AreaMS, models.AreaVC, models.AreaESP}},
		{Name: "균형 잡힌 교양형", Order: []string{models.AreaGE, models.AreaMS, models.AreaVC, models.AreaEF, models.AreaEL, models.AreaMN, models.AreaESP}},
		{Name: "실용 중심형", Order: []string{models.AreaMS, models.AreaEF, models.AreaGE, models.AreaEL, models.AreaVC, models.AreaMN, models.AreaESP}},
	}
}

// TimetableGeneratorService assembles conflict-free candidate schedules from
// the catalog snapshot. Generation is pure computation over the snapshot;
// every attempt owns its own selection state and re-invocation starts from
// scratch.
type TimetableGeneratorService struct {
	catalog   catalogSource
	profiles  []AreaProfile
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
}

// NewTimetableGeneratorService wires the generator.
func NewTimetableGeneratorService(catalog catalogSource, profiles []AreaProfile, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService) *TimetableGeneratorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(profiles) == 0 {
		profiles = DefaultAreaProfiles()
	}
	return &TimetableGeneratorService{
		catalog:   catalog,
		profiles:  profiles,
		validator: validate,
		logger:    logger,
		metrics:   metrics,
	}
}

// Generate runs one attempt per configured profile and returns the finished
// candidates in attempt order. A failed or empty catalog yields zero
// candidates, never an error.
func (s *TimetableGeneratorService) Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generation payload")
	}

	grade := parseGradeLabel(req.Grade)
	if grade == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unrecognized grade %q", req.Grade))
	}

	profile := studentProfile{
		Grade:    grade,
		ESPLevel: req.ESPLevel,
		MNLevel:  req.MNLevel,
		Track:    req.Track,
		Range:    resolveCreditRange(req.Credits, grade),
	}

	snapshot, err := s.catalog.Snapshot(ctx)
	if err != nil || snapshot == nil || !snapshot.Success || len(snapshot.Courses) == 0 {
		if err != nil {
			s.logger.Warn("catalog unavailable, returning zero candidates", zap.Error(err))
		}
		return &dto.GenerateTimetableResponse{
			Timetables:  []models.GeneratedTimetable{},
			CreditRange: profile.Range,
		}, nil
	}

	diagnostics := collectParseDiagnostics(snapshot.Courses)
	timetables := make([]models.GeneratedTimetable, 0, len(s.profiles))
	for attempt, areaProfile := range s.profiles {
		candidate := s.buildCandidate(snapshot.Courses, profile, areaProfile, attempt+1)
		timetables = append(timetables, candidate)
		s.logger.Debug("candidate assembled",
			zap.Int("attempt", attempt+1),
			zap.String("strategy", areaProfile.Name),
			zap.Int("courses", len(candidate.Courses)),
			zap.Int("credits", candidate.TotalCredits),
		)
	}

	if s.metrics != nil {
		s.metrics.ObserveGeneration(grade, req.Track, len(timetables))
	}

	return &dto.GenerateTimetableResponse{
		Timetables:  timetables,
		CreditRange: profile.Range,
		Diagnostics: diagnostics,
	}, nil
}

// selectionState is the working set of one attempt: chosen courses, running
// credit total, and an identity set so the same listing is never added twice.
type selectionState struct {
	courses []models.Course
	credits int
	picked  map[string]struct{}
}

func newSelectionState() *selectionState {
	return &selectionState{picked: make(map[string]struct{})}
}

func courseKey(c models.Course) string {
	if c.ID != "" {
		return c.ID
	}
	return c.Code + "|" + c.Name + "|" + c.Section + "|" + c.TimeText
}

func (st *selectionState) contains(c models.Course) bool {
	_, ok := st.picked[courseKey(c)]
	return ok
}

func (st *selectionState) add(c models.Course) {
	st.picked[courseKey(c)] = struct{}{}
	st.courses = append(st.courses, c)
	st.credits += c.Credits()
}

// admissible bundles the checks every addition must pass.
func (st *selectionState) admissible(c models.Course) bool {
	return !st.contains(c) &&
		!isDuplicateName(c, st.courses) &&
		!hasTimeConflict(c, st.courses)
}

func (st *selectionState) areaCredits(areas ...string) int {
	total := 0
	for _, c := range st.courses {
		for _, a := range areas {
			if c.Area == a {
				total += c.Credits()
				break
			}
		}
	}
	return total
}

// buildCandidate runs one full attempt: mandatory resolution, the priority
// walk, and the top-up pass. Under-credit results are emitted as-is.
func (s *TimetableGeneratorService) buildCandidate(catalog []models.Course, p studentProfile, profile AreaProfile, attempt int) models.GeneratedTimetable {
	state := newSelectionState()

	for _, course := range mandatoryCourses(catalog, p) {
		if state.admissible(course) {
			state.add(course)
		}
	}

	if state.credits < p.Range.Target {
		s.walkAreaPriorities(catalog, p, profile, state)
	}
	if state.credits < p.Range.Min {
		s.topUp(catalog, p, state)
	}

	return models.GeneratedTimetable{
		ID:           attempt,
		Name:         fmt.Sprintf("AI 시간표 %d", attempt),
		Courses:      state.courses,
		TotalCredits: state.credits,
		Benefits:     characterizeSchedule(state.courses, p),
	}
}

// areaSatisfied encodes the per-grade caps that exclude an area from further
// additions once the mandatory set covered it.
func areaSatisfied(p studentProfile, area string, state *selectionState) bool {
	// Language and seminar slots are questionnaire-driven; the mandatory
	// resolver is their only source, so a 수료 student never picks them up
	// here and nobody gets a second section.
	if area == models.AreaESP || area == models.AreaMN {
		return true
	}
	switch p.Grade {
	case 2:
		// The grade-2 foundational requirement is exactly one 4-credit course.
		if area == models.AreaEF && state.areaCredits(models.AreaEF) >= 4 {
			return true
		}
	case 3:
		if area == models.AreaEL && p.Range.Target < 20 && state.areaCredits(models.AreaEL) >= 8 {
			return true
		}
		if (area == models.AreaEN || area == models.AreaHASS) &&
			state.areaCredits(models.AreaEN, models.AreaHASS) >= 4 {
			return true
		}
		// EF only opens up for third-years on the heaviest load.
		if area == models.AreaEF && p.Range.Target < 20 {
			return true
		}
	case 4:
		// EF is not part of the fourth-year curriculum.
		if area == models.AreaEF {
			return true
		}
	}
	return false
}

// walkAreaPriorities fills the remaining credit budget area by area in the
// strategy's order, stopping at the attempt target.
func (s *TimetableGeneratorService) walkAreaPriorities(catalog []models.Course, p studentProfile, profile AreaProfile, state *selectionState) {
	for _, area := range profile.Order {
		if state.credits >= p.Range.Target {
			return
		}
		if areaSatisfied(p, area, state) {
			continue
		}

		for _, course := range s.areaCandidates(catalog, p, area, state) {
			// The pool was filtered before the first addition; earlier picks
			// from it can conflict with or duplicate the current course.
			if !state.admissible(course) {
				continue
			}
			credits := course.Credits()
			if state.credits+credits > p.Range.Max {
				continue
			}
			state.add(course)
			if state.credits >= p.Range.Target {
				break
			}
		}
	}
}

// areaCandidates selects the eligible, non-conflicting pool for one area.
// Track electives additionally get the hard track filter and a grade window.
func (s *TimetableGeneratorService) areaCandidates(catalog []models.Course, p studentProfile, area string, state *selectionState) []models.Course {
	var pool []models.Course
	for _, course := range catalog {
		if course.Area != area || course.Credits() <= 0 {
			continue
		}
		if !isEligibleGrade(course, p.Grade) || !state.admissible(course) {
			continue
		}
		pool = append(pool, course)
	}

	if area != models.AreaEL {
		return pool
	}

	pool = trackElectives(p.Track, pool)
	filtered := pool[:0]
	for _, course := range pool {
		if p.Grade <= 3 {
			if course.Grade == strconv.Itoa(p.Grade) {
				filtered = append(filtered, course)
			}
		} else if course.Grade == "3" || course.Grade == "4" {
			filtered = append(filtered, course)
		}
	}
	return filtered
}

// topUp scans the whole catalog for anything admissible once the priority
// walk left the total under the minimum. The per-grade exclusions still hold.
func (s *TimetableGeneratorService) topUp(catalog []models.Course, p studentProfile, state *selectionState) {
	for _, course := range catalog {
		if state.credits >= p.Range.Min {
			return
		}
		if course.Credits() <= 0 || areaSatisfied(p, course.Area, state) {
			continue
		}
		if !isEligibleGrade(course, p.Grade) || !state.admissible(course) {
			continue
		}
		if state.credits+course.Credits() > p.Range.Max {
			continue
		}
		state.add(course)
	}
}

const diagnosticSampleLimit = 5

// collectParseDiagnostics walks the catalog once and reports segments the
// time parser had to drop, so data-quality problems are visible without
// breaking generation.
func collectParseDiagnostics(catalog []models.Course) dto.ParseDiagnostics {
	var diag dto.ParseDiagnostics
	for _, course := range catalog {
		_, unparsed := ParseTimeSlots(course.TimeText)
		diag.UnparsedSegments += len(unparsed)
		for _, segment := range unparsed {
			if len(diag.Samples) < diagnosticSampleLimit {
				diag.Samples = append(diag.Samples, segment)
			}
		}
	}
	return diag
}
