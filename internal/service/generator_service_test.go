package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entu-dev/timetable-api/internal/dto"
	"github.com/entu-dev/timetable-api/internal/models"
)

type stubCatalog struct {
	snapshot *models.CatalogSnapshot
	err      error
}

func (s *stubCatalog) Snapshot(ctx context.Context) (*models.CatalogSnapshot, error) {
	return s.snapshot, s.err
}

func freshmanCatalog() []models.Course {
	return []models.Course{
		{ID: "c1", Code: "RC1001", Name: "RC 오리엔테이션", Area: models.AreaRC, Grade: "1", CreditRaw: "2", TimeText: "월 09:00-10:00"},
		{ID: "c2", Code: "ES1001", Name: "ESP Foundation 1", Area: models.AreaESP, Grade: "1", CreditRaw: "0", TimeText: "화 09:00-10:00"},
		{ID: "c3", Code: "MN1001", Name: "Strategic Learning and Leadership", Area: models.AreaMN, Grade: "1", CreditRaw: "1", TimeText: "수 09:00-10:00"},
		{ID: "c4", Code: "VC1001", Name: "창의와 가치", Area: models.AreaVC, Grade: "1", CreditRaw: "2", TimeText: "목 09:00-10:00"},
		{ID: "c5", Code: "EF1001", Name: "Data Literacy", Area: models.AreaEF, Grade: "1", CreditRaw: "4", TimeText: "월 13:00-15:00"},
		{ID: "c6", Code: "EF1002", Name: "Calculus", Area: models.AreaEF, Grade: "1", CreditRaw: "4", TimeText: "화 13:00-15:00"},
		{ID: "c7", Code: "GE1001", Name: "글쓰기의 기초", Area: models.AreaGE, Grade: "1", CreditRaw: "4", TimeText: "수 13:00-15:00"},
		{ID: "c8", Code: "GE1002", Name: "과학기술과 사회", Area: models.AreaGE, Grade: "1", CreditRaw: "4", TimeText: "수 13:00-15:00"},
	}
}

func freshmanRequest() dto.GenerateTimetableRequest {
	return dto.GenerateTimetableRequest{
		Grade:    "1학년",
		ESPLevel: "Foundation 1",
		MNLevel:  "Strategic Learning and Leadership",
		Credits:  CreditBand16,
		Track:    TrackNone,
	}
}

func TestGenerateFreshmanFixedCurriculum(t *testing.T) {
	catalog := &stubCatalog{snapshot: &models.CatalogSnapshot{Success: true, Courses: freshmanCatalog()}}
	svc := NewTimetableGeneratorService(catalog, nil, nil, nil, nil)

	resp, err := svc.Generate(context.Background(), freshmanRequest())
	require.NoError(t, err)

	// First-years are pinned to 17 credits no matter the requested band.
	assert.Equal(t, models.CreditRange{Min: 17, Max: 17, Target: 17}, resp.CreditRange)
	require.Len(t, resp.Timetables, 3)

	for _, tt := range resp.Timetables {
		assert.Equal(t, 17, tt.TotalCredits, "candidate %s", tt.Name)
		assertNoConflictsOrDuplicates(t, tt.Courses)
	}
	assert.Equal(t, "AI 시간표 1", resp.Timetables[0].Name)
	assert.Equal(t, "AI 시간표 3", resp.Timetables[2].Name)
}

func TestGenerateCatalogFailureYieldsZeroCandidates(t *testing.T) {
	for _, catalog := range []*stubCatalog{
		{err: errors.New("db down")},
		{snapshot: &models.CatalogSnapshot{Success: false}},
		{snapshot: &models.CatalogSnapshot{Success: true}},
	} {
		svc := NewTimetableGeneratorService(catalog, nil, nil, nil, nil)
		resp, err := svc.Generate(context.Background(), freshmanRequest())
		require.NoError(t, err)
		assert.Empty(t, resp.Timetables)
	}
}

func TestGenerateRejectsUnknownGrade(t *testing.T) {
	svc := NewTimetableGeneratorService(&stubCatalog{}, nil, nil, nil, nil)
	req := freshmanRequest()
	req.Grade = "편입생"

	_, err := svc.Generate(context.Background(), req)
	require.Error(t, err)
}

func TestGenerateRejectsMissingFields(t *testing.T) {
	svc := NewTimetableGeneratorService(&stubCatalog{}, nil, nil, nil, nil)

	_, err := svc.Generate(context.Background(), dto.GenerateTimetableRequest{Grade: "1학년"})
	require.Error(t, err)
}

func TestGenerateReportsParseDiagnostics(t *testing.T) {
	courses := freshmanCatalog()
	courses = append(courses, models.Course{
		ID: "c9", Code: "GE1003", Name: "특강", Area: models.AreaGE, Grade: "1",
		CreditRaw: "1", TimeText: "격주 토요일",
	})
	catalog := &stubCatalog{snapshot: &models.CatalogSnapshot{Success: true, Courses: courses}}
	svc := NewTimetableGeneratorService(catalog, nil, nil, nil, nil)

	resp, err := svc.Generate(context.Background(), freshmanRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Diagnostics.UnparsedSegments)
	require.Len(t, resp.Diagnostics.Samples, 1)
	assert.Equal(t, "격주 토요일", resp.Diagnostics.Samples[0])
}

func TestGenerateGrade3HardTrackFilter(t *testing.T) {
	courses := []models.Course{
		{ID: "e1", Code: "ES3001", Name: "Advanced Writing", Area: models.AreaESP, CreditRaw: "1", TimeText: "금 09:00-10:00"},
		{ID: "e2", Code: "EL3001", Name: "수소 연료전지", Area: models.AreaEL, Grade: "3", TrackRaw: "수소 에너지", CreditRaw: "4", TimeText: "월 09:00-11:00"},
		{ID: "e3", Code: "EL3002", Name: "수소 저장 기술", Area: models.AreaEL, Grade: "3", TrackRaw: "수소 에너지", CreditRaw: "4", TimeText: "화 09:00-11:00"},
		{ID: "e4", Code: "EL3003", Name: "핵융합 개론", Area: models.AreaEL, Grade: "3", TrackRaw: "핵융합", CreditRaw: "4", TimeText: "수 09:00-11:00"},
		{ID: "e5", Code: "EN3001", Name: "공학과 사회", Area: models.AreaEN, Grade: "3", CreditRaw: "2", TimeText: "목 09:00-10:00"},
		{ID: "e6", Code: "GE3001", Name: "경제학 입문", Area: models.AreaGE, Grade: "3", CreditRaw: "3", TimeText: "금 13:00-15:00"},
		{ID: "e7", Code: "MS3001", Name: "기술 경영", Area: models.AreaMS, Grade: "3", CreditRaw: "3", TimeText: "월 13:00-15:00"},
	}
	catalog := &stubCatalog{snapshot: &models.CatalogSnapshot{Success: true, Courses: courses}}
	svc := NewTimetableGeneratorService(catalog, nil, nil, nil, nil)

	resp, err := svc.Generate(context.Background(), dto.GenerateTimetableRequest{
		Grade:    "3학년",
		ESPLevel: "Advanced Writing",
		MNLevel:  LevelCompleted,
		Credits:  CreditBand12,
		Track:    "수소 에너지",
	})
	require.NoError(t, err)
	require.Len(t, resp.Timetables, 3)

	// Electives from another track never appear once a track is chosen.
	for _, tt := range resp.Timetables {
		for _, c := range tt.Courses {
			if c.Area == models.AreaEL {
				assert.True(t, c.HasTrack("수소 에너지"), "course %s leaked into track schedule", c.Name)
			}
		}
		assertNoConflictsOrDuplicates(t, tt.Courses)
	}
}

func TestGeneratePriorityWalkSkipsConflictingAreaPicks(t *testing.T) {
	// Both courses clear the area pool's up-front filter; only a re-check at
	// add time keeps the second one out.
	courses := []models.Course{
		{ID: "g1", Code: "GE2001", Name: "세계사의 이해", Area: models.AreaGE, Grade: "공통", CreditRaw: "3", TimeText: "월 09:00-12:00"},
		{ID: "g2", Code: "GE2002", Name: "현대 물리학 개론", Area: models.AreaGE, Grade: "공통", CreditRaw: "3", TimeText: "월 10:00-13:00"},
	}
	catalog := &stubCatalog{snapshot: &models.CatalogSnapshot{Success: true, Courses: courses}}
	svc := NewTimetableGeneratorService(catalog, nil, nil, nil, nil)

	resp, err := svc.Generate(context.Background(), dto.GenerateTimetableRequest{
		Grade:    "2학년",
		ESPLevel: LevelCompleted,
		MNLevel:  LevelCompleted,
		Credits:  CreditBand12,
		Track:    TrackNone,
	})
	require.NoError(t, err)
	require.Len(t, resp.Timetables, 3)

	for _, tt := range resp.Timetables {
		require.Len(t, tt.Courses, 1, "candidate %s admitted overlapping courses", tt.Name)
		assertNoConflictsOrDuplicates(t, tt.Courses)
	}
}

func TestGeneratePriorityWalkSkipsDuplicateSections(t *testing.T) {
	courses := []models.Course{
		{ID: "g1", Code: "GE2003", Name: "문화와 예술 (A분반)", Area: models.AreaGE, Grade: "공통", CreditRaw: "3", TimeText: "월 09:00-10:30"},
		{ID: "g2", Code: "GE2004", Name: "문화와 예술 (B분반)", Area: models.AreaGE, Grade: "공통", CreditRaw: "3", TimeText: "화 09:00-10:30"},
	}
	catalog := &stubCatalog{snapshot: &models.CatalogSnapshot{Success: true, Courses: courses}}
	svc := NewTimetableGeneratorService(catalog, nil, nil, nil, nil)

	resp, err := svc.Generate(context.Background(), dto.GenerateTimetableRequest{
		Grade:    "2학년",
		ESPLevel: LevelCompleted,
		MNLevel:  LevelCompleted,
		Credits:  CreditBand12,
		Track:    TrackNone,
	})
	require.NoError(t, err)
	require.Len(t, resp.Timetables, 3)

	for _, tt := range resp.Timetables {
		require.Len(t, tt.Courses, 1, "candidate %s admitted two sections of one course", tt.Name)
		assertNoConflictsOrDuplicates(t, tt.Courses)
	}
}

func TestGenerateGrade2CompletedLevelsWithTrackQuota(t *testing.T) {
	courses := []models.Course{
		{ID: "s1", Code: "ES2001", Name: "Inter. Writing", Area: models.AreaESP, Grade: "2", CreditRaw: "1", TimeText: "금 09:00-10:00"},
		{ID: "s2", Code: "MN2001", Name: "Systems and Society", Area: models.AreaMN, Grade: "2", CreditRaw: "1", TimeText: "금 10:00-11:00"},
		{ID: "s3", Code: "EL2001", Name: "수소 경제 개론", Area: models.AreaEL, Grade: "2", TrackRaw: "수소 에너지", CreditRaw: "4", TimeText: "월 09:00-11:00"},
		{ID: "s4", Code: "EL2002", Name: "연료전지 기초", Area: models.AreaEL, Grade: "2", TrackRaw: "수소 에너지", CreditRaw: "4", TimeText: "화 09:00-11:00"},
		{ID: "s5", Code: "EL2003", Name: "핵융합 기초", Area: models.AreaEL, Grade: "2", TrackRaw: "핵융합", CreditRaw: "4", TimeText: "수 09:00-11:00"},
		{ID: "s6", Code: "EF2007", Name: "확률과 통계", Area: models.AreaEF, Grade: "2", CreditRaw: "4", TimeText: "수 13:00-15:00"},
		{ID: "s7", Code: "GE2005", Name: "동아시아 문화사", Area: models.AreaGE, Grade: "공통", CreditRaw: "4", TimeText: "목 13:00-15:00"},
	}
	catalog := &stubCatalog{snapshot: &models.CatalogSnapshot{Success: true, Courses: courses}}
	svc := NewTimetableGeneratorService(catalog, nil, nil, nil, nil)

	resp, err := svc.Generate(context.Background(), dto.GenerateTimetableRequest{
		Grade:    "2학년",
		ESPLevel: LevelCompleted,
		MNLevel:  LevelCompleted,
		Credits:  CreditBand16,
		Track:    "수소 에너지",
	})
	require.NoError(t, err)
	assert.Equal(t, models.CreditRange{Min: 16, Max: 17, Target: 16}, resp.CreditRange)
	require.Len(t, resp.Timetables, 3)

	for _, tt := range resp.Timetables {
		assert.GreaterOrEqual(t, tt.TotalCredits, 16, "candidate %s", tt.Name)
		assert.LessOrEqual(t, tt.TotalCredits, 17, "candidate %s", tt.Name)

		trackCredits := 0
		for _, c := range tt.Courses {
			// Completed language and seminar levels leave no ESP/MN slots.
			assert.NotEqual(t, models.AreaESP, c.Area, "candidate %s picked %s", tt.Name, c.Name)
			assert.NotEqual(t, models.AreaMN, c.Area, "candidate %s picked %s", tt.Name, c.Name)
			if c.Area == models.AreaEL {
				assert.True(t, c.HasTrack("수소 에너지"), "course %s leaked into track schedule", c.Name)
				trackCredits += c.Credits()
			}
		}
		assert.Equal(t, 8, trackCredits, "candidate %s", tt.Name)
		assertNoConflictsOrDuplicates(t, tt.Courses)
	}
}

func assertNoConflictsOrDuplicates(t *testing.T, courses []models.Course) {
	t.Helper()
	for i, c := range courses {
		others := append(append([]models.Course{}, courses[:i]...), courses[i+1:]...)
		assert.False(t, hasTimeConflict(c, others), "conflict involving %s", c.Name)
		assert.False(t, isDuplicateName(c, others), "duplicate involving %s", c.Name)
	}
}
