package service

import (
	"strconv"
	"strings"

	"github.com/entu-dev/timetable-api/internal/models"
)

// LevelCompleted is the questionnaire sentinel for an already finished
// language or seminar requirement; the slot is skipped entirely.
const LevelCompleted = "수료"

// TrackNone means the student declined to pick a specialization track.
const TrackNone = "선택안함"

// Level-name → course-code lookups. A level missing from the map simply
// yields no course for that slot.
var espCourseCodes = map[string]string{
	"Foundation 1":      "ES1001",
	"Foundation 2":      "ES1002",
	"Inter. Speaking":   "ES2002",
	"Inter. Writing":    "ES2001",
	"Advanced Speaking": "ES3002",
	"Advanced Writing":  "ES3001",
}

var mnCourseCodes = map[string]string{
	"Strategic Learning and Leadership": "MN1001",
	"Systems and Society":               "MN2001",
}

// Alternative foundational codes for the grade-2 requirement; the first one
// present in the catalog wins.
var grade2FoundationCodes = []string{"EF2007", "EF2008", "EF2039"}

// studentProfile is the parsed questionnaire the engine works with.
type studentProfile struct {
	Grade    int
	ESPLevel string
	MNLevel  string
	Track    string
	Range    models.CreditRange
}

// trackElectives applies the hard track filter: once a concrete track is
// chosen, only electives listing that exact name (comma-split, trimmed)
// remain. Electives with no track affiliation are excluded outright.
func trackElectives(track string, electives []models.Course) []models.Course {
	if track == "" || track == TrackNone {
		return electives
	}
	matched := make([]models.Course, 0, len(electives))
	for _, c := range electives {
		if c.HasTrack(track) {
			matched = append(matched, c)
		}
	}
	return matched
}

// gradeDeclares matches the loose grade forms the catalog uses ("2", "2학년",
// or a field merely containing the digit).
func gradeDeclares(course models.Course, grade int) bool {
	g := strconv.Itoa(grade)
	declared := strings.TrimSpace(course.Grade)
	return declared == g || declared == g+"학년" || strings.Contains(declared, g)
}

// electivesForGrades collects EL-area offerings declared for any of the given
// grades, track-filtered.
func electivesForGrades(catalog []models.Course, track string, grades ...int) []models.Course {
	var electives []models.Course
	for _, c := range catalog {
		if c.Area != models.AreaEL {
			continue
		}
		for _, g := range grades {
			if gradeDeclares(c, g) {
				electives = append(electives, c)
				break
			}
		}
	}
	return trackElectives(track, electives)
}

func findByCode(catalog []models.Course, code string) (models.Course, bool) {
	for _, c := range catalog {
		if c.Code == code {
			return c, true
		}
	}
	return models.Course{}, false
}

func findFirst(catalog []models.Course, match func(models.Course) bool) (models.Course, bool) {
	for _, c := range catalog {
		if match(c) {
			return c, true
		}
	}
	return models.Course{}, false
}

// appendESPRequirement resolves the language slot shared by grades 2-4.
func appendESPRequirement(mandatory []models.Course, catalog []models.Course, level string) []models.Course {
	if level == LevelCompleted {
		return mandatory
	}
	code, ok := espCourseCodes[level]
	if !ok {
		return mandatory
	}
	if course, found := findByCode(catalog, code); found {
		mandatory = append(mandatory, course)
	}
	return mandatory
}

// appendTrackElectiveQuota adds electives until the credit quota is met or
// the pool runs out.
func appendTrackElectiveQuota(mandatory []models.Course, electives []models.Course, quota int) []models.Course {
	credits := 0
	for _, c := range electives {
		if credits >= quota {
			break
		}
		mandatory = append(mandatory, c)
		credits += c.Credits()
	}
	return mandatory
}

// mandatoryCourses resolves the fixed per-grade curriculum. Every slot is
// best-effort: a requirement whose course is absent from the catalog is
// omitted silently rather than failing generation.
func mandatoryCourses(catalog []models.Course, p studentProfile) []models.Course {
	var mandatory []models.Course

	switch p.Grade {
	case 1:
		// Fixed 17-credit bundle: RC orientation, zero-credit ESP foundation,
		// MN1001 seminar, one VC elective, and the two EF skills courses.
		if c, ok := findFirst(catalog, func(c models.Course) bool {
			return c.Area == models.AreaRC || strings.Contains(c.Code, "RC")
		}); ok {
			mandatory = append(mandatory, c)
		}
		if c, ok := findFirst(catalog, func(c models.Course) bool {
			return strings.Contains(c.Name, "ESP Foundation 1") || strings.Contains(c.Code, "ESP Foundation 1")
		}); ok {
			mandatory = append(mandatory, c)
		}
		if c, ok := findByCode(catalog, "MN1001"); ok {
			mandatory = append(mandatory, c)
		}
		if c, ok := findFirst(catalog, func(c models.Course) bool { return c.Area == models.AreaVC }); ok {
			mandatory = append(mandatory, c)
		}
		if c, ok := findFirst(catalog, func(c models.Course) bool {
			return strings.Contains(c.Name, "Data Literacy") || strings.Contains(c.Name, "Data")
		}); ok {
			mandatory = append(mandatory, c)
		}
		if c, ok := findFirst(catalog, func(c models.Course) bool {
			return strings.Contains(c.Name, "Calculus") || strings.Contains(c.Name, "calculus")
		}); ok {
			mandatory = append(mandatory, c)
		}

	case 2:
		mandatory = appendESPRequirement(mandatory, catalog, p.ESPLevel)
		if p.MNLevel != LevelCompleted {
			if code, ok := mnCourseCodes[p.MNLevel]; ok {
				if c, found := findByCode(catalog, code); found {
					mandatory = append(mandatory, c)
				}
			}
		}
		mandatory = appendTrackElectiveQuota(mandatory, electivesForGrades(catalog, p.Track, 2), 8)
		for _, code := range grade2FoundationCodes {
			if c, ok := findByCode(catalog, code); ok {
				mandatory = append(mandatory, c)
				break
			}
		}

	case 3:
		mandatory = appendESPRequirement(mandatory, catalog, p.ESPLevel)
		if c, ok := findFirst(catalog, func(c models.Course) bool {
			return strings.Contains(c.Name, "IR1") || strings.Contains(c.Code, "IR1") ||
				strings.Contains(c.Name, "Individual Research 1")
		}); ok {
			mandatory = append(mandatory, c)
		}
		mandatory = appendTrackElectiveQuota(mandatory, electivesForGrades(catalog, p.Track, 3), 8)
		// One humanities course, EN preferred over HASS.
		if c, ok := findFirst(catalog, func(c models.Course) bool { return c.Area == models.AreaEN }); ok {
			mandatory = append(mandatory, c)
		} else if c, ok := findFirst(catalog, func(c models.Course) bool { return c.Area == models.AreaHASS }); ok {
			mandatory = append(mandatory, c)
		}

	case 4:
		// Fourth-years are past the MN sequence entirely.
		mandatory = appendESPRequirement(mandatory, catalog, p.ESPLevel)
		if c, ok := findFirst(catalog, func(c models.Course) bool {
			return c.Area == models.AreaCAPS || strings.Contains(c.Code, "CAPS") ||
				strings.Contains(c.Name, "CAPS") || strings.Contains(c.Name, "Capstone")
		}); ok {
			mandatory = append(mandatory, c)
		}
		mandatory = appendTrackElectiveQuota(mandatory, electivesForGrades(catalog, p.Track, 3, 4), 8)
	}

	return mandatory
}
