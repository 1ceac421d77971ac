package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/entu-dev/timetable-api/internal/models"
)

func courseAt(name, timeText string) models.Course {
	return models.Course{Name: name, TimeText: timeText, CreditRaw: "3"}
}

func TestHasTimeConflictOverlap(t *testing.T) {
	selected := []models.Course{courseAt("선형대수학", "월 09:00-10:30")}
	assert.True(t, hasTimeConflict(courseAt("물리학", "월 10:00-11:30"), selected))
}

func TestHasTimeConflictTouchingIntervals(t *testing.T) {
	selected := []models.Course{courseAt("선형대수학", "월 09:00-10:30")}
	assert.False(t, hasTimeConflict(courseAt("물리학", "월 10:30-12:00"), selected))
}

func TestHasTimeConflictDifferentDays(t *testing.T) {
	selected := []models.Course{courseAt("선형대수학", "월 09:00-10:30")}
	assert.False(t, hasTimeConflict(courseAt("물리학", "화 09:00-10:30"), selected))
}

func TestHasTimeConflictClusterDays(t *testing.T) {
	selected := []models.Course{courseAt("데이터구조", "화목 13:00-15:00")}
	assert.True(t, hasTimeConflict(courseAt("회로이론", "목 14:00-16:00"), selected))
}

func TestHasTimeConflictUndeterminedNeverConflicts(t *testing.T) {
	selected := []models.Course{courseAt("선형대수학", "월 09:00-10:30")}
	assert.False(t, hasTimeConflict(courseAt("세미나", "시간 미정"), selected))
}

func TestNormalizeCourseName(t *testing.T) {
	assert.Equal(t, "미적분학", normalizeCourseName("미적분학 (A분반)"))
	assert.Equal(t, "미적분학", normalizeCourseName("미적분학 (영강)"))
	assert.Equal(t, "공학 설계", normalizeCourseName("공학   설계"))
}

func TestIsDuplicateNameAcrossSections(t *testing.T) {
	selected := []models.Course{{Name: "미적분학 (A분반)"}}
	assert.True(t, isDuplicateName(models.Course{Name: "미적분학 (B분반)"}, selected))
	assert.False(t, isDuplicateName(models.Course{Name: "공업수학"}, selected))
}

func TestIsEligibleGradeAreaGates(t *testing.T) {
	vc := models.Course{Area: models.AreaVC, Grade: "1"}
	assert.True(t, isEligibleGrade(vc, 1))
	assert.False(t, isEligibleGrade(vc, 2))

	en := models.Course{Area: models.AreaEN, Grade: "3"}
	assert.False(t, isEligibleGrade(en, 2))
	assert.True(t, isEligibleGrade(en, 3))
	hass := models.Course{Area: models.AreaHASS, Grade: "4"}
	assert.True(t, isEligibleGrade(hass, 4))
}

func TestIsEligibleGradeDeclaredForms(t *testing.T) {
	assert.True(t, isEligibleGrade(models.Course{Area: models.AreaGE, Grade: "2"}, 2))
	assert.True(t, isEligibleGrade(models.Course{Area: models.AreaGE, Grade: "2학년"}, 2))
	assert.True(t, isEligibleGrade(models.Course{Area: models.AreaGE, Grade: "공통"}, 4))
	assert.True(t, isEligibleGrade(models.Course{Area: models.AreaGE, Grade: ""}, 3))
	assert.False(t, isEligibleGrade(models.Course{Area: models.AreaGE, Grade: "3"}, 2))
}

func TestResolveCreditRangeFirstYearFixed(t *testing.T) {
	for _, band := range []string{CreditBand12, CreditBand16, CreditBand20, CreditBand24, "아무거나"} {
		r := resolveCreditRange(band, 1)
		assert.Equal(t, models.CreditRange{Min: 17, Max: 17, Target: 17}, r, "band=%s", band)
	}
}

func TestResolveCreditRangeBands(t *testing.T) {
	assert.Equal(t, models.CreditRange{Min: 12, Max: 13, Target: 12}, resolveCreditRange(CreditBand12, 2))
	assert.Equal(t, models.CreditRange{Min: 16, Max: 17, Target: 16}, resolveCreditRange(CreditBand16, 3))
	assert.Equal(t, models.CreditRange{Min: 20, Max: 21, Target: 21}, resolveCreditRange(CreditBand20, 4))
	assert.Equal(t, models.CreditRange{Min: 24, Max: 28, Target: 26}, resolveCreditRange(CreditBand24, 4))
	assert.Equal(t, models.CreditRange{Min: 24, Max: 28, Target: 24}, resolveCreditRange(CreditBand24, 2))
}

func TestResolveCreditRangeUnknownBandDefaults(t *testing.T) {
	assert.Equal(t, models.CreditRange{Min: 16, Max: 17, Target: 16}, resolveCreditRange("18학점", 2))
}

func TestParseGradeLabel(t *testing.T) {
	assert.Equal(t, 3, parseGradeLabel("3학년"))
	assert.Equal(t, 3, parseGradeLabel("3"))
	assert.Equal(t, 1, parseGradeLabel(" 1학년 "))
	assert.Equal(t, 0, parseGradeLabel("5학년"))
	assert.Equal(t, 0, parseGradeLabel("신입생"))
}
