package service

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/entu-dev/timetable-api/internal/models"
)

// Credit band labels offered by the questionnaire.
const (
	CreditBand12 = "12-13학점"
	CreditBand16 = "16-17학점"
	CreditBand20 = "20-21학점"
	CreditBand24 = "24학점 이상"
)

// hasTimeConflict reports whether the candidate overlaps any already selected
// course on the same day. Intervals are half-open: a course starting exactly
// when another ends does not conflict. Courses with no parseable intervals
// never conflict (time undetermined).
func hasTimeConflict(candidate models.Course, selected []models.Course) bool {
	newSlots, _ := ParseTimeSlots(candidate.TimeText)
	if len(newSlots) == 0 {
		return false
	}

	for _, chosen := range selected {
		chosenSlots, _ := ParseTimeSlots(chosen.TimeText)
		for _, ns := range newSlots {
			for _, cs := range chosenSlots {
				if ns.Day != cs.Day {
					continue
				}
				if ns.StartTime < cs.EndTime && ns.EndTime > cs.StartTime {
					return true
				}
			}
		}
	}
	return false
}

var (
	trailingParenPattern = regexp.MustCompile(`\s*\([^)]*\)$`)
	sectionParenPattern  = regexp.MustCompile(`\s*\([^)]*분반\)`)
	whitespacePattern    = regexp.MustCompile(`\s+`)
)

// normalizeCourseName strips section/room parentheticals so the same lecture
// listed under two sections compares equal.
func normalizeCourseName(name string) string {
	name = trailingParenPattern.ReplaceAllString(name, "")
	name = sectionParenPattern.ReplaceAllString(name, "")
	name = whitespacePattern.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// isDuplicateName reports whether the candidate's normalized name collides
// with any already selected course.
func isDuplicateName(candidate models.Course, selected []models.Course) bool {
	name := normalizeCourseName(candidate.Name)
	for _, chosen := range selected {
		if normalizeCourseName(chosen.Name) == name {
			return true
		}
	}
	return false
}

// isEligibleGrade decides whether a student of the given grade may enroll.
// Area gates come first and override the course's own declared grade; a
// course with no declared grade (or a common marker) is open to everyone;
// otherwise the declared grade must match. No implicit allow.
func isEligibleGrade(course models.Course, studentGrade int) bool {
	switch course.Area {
	case models.AreaVC, models.AreaRC:
		if studentGrade != 1 {
			return false
		}
	case models.AreaEN, models.AreaHASS:
		if studentGrade != 3 && studentGrade != 4 {
			return false
		}
	}

	declared := strings.TrimSpace(course.Grade)
	if declared == "" || declared == "공통" || strings.EqualFold(declared, "common") {
		return true
	}

	gradeStr := strconv.Itoa(studentGrade)
	if n, err := strconv.Atoi(declared); err == nil && n == studentGrade {
		return true
	}
	if declared == gradeStr || declared == gradeStr+"학년" || strings.Contains(declared, gradeStr) {
		return true
	}
	return false
}

// resolveCreditRange maps a requested band and grade into concrete bounds.
// First-years are locked to the prescribed 17-credit curriculum regardless of
// the requested band. Grade 4 targets the top of each band; everyone else the
// bottom. An unrecognized band falls back to 16-17.
func resolveCreditRange(band string, grade int) models.CreditRange {
	if grade == 1 {
		return models.CreditRange{Min: 17, Max: 17, Target: 17}
	}

	pick := func(low, high int) int {
		if grade == 4 {
			return high
		}
		return low
	}

	switch band {
	case CreditBand12:
		return models.CreditRange{Min: 12, Max: 13, Target: pick(12, 13)}
	case CreditBand16:
		return models.CreditRange{Min: 16, Max: 17, Target: pick(16, 17)}
	case CreditBand20:
		return models.CreditRange{Min: 20, Max: 21, Target: pick(20, 21)}
	case CreditBand24:
		return models.CreditRange{Min: 24, Max: 28, Target: pick(24, 26)}
	default:
		return models.CreditRange{Min: 16, Max: 17, Target: pick(16, 17)}
	}
}

// parseGradeLabel accepts both "3학년" and "3".
func parseGradeLabel(label string) int {
	label = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(label), "학년"))
	n, err := strconv.Atoi(label)
	if err != nil || n < 1 || n > 4 {
		return 0
	}
	return n
}
