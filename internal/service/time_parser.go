package service

import (
	"regexp"
	"strings"

	"github.com/entu-dev/timetable-api/internal/models"
)

// Catalog time strings come in two shapes: a labeled day ("월요일 09:30-11:00",
// "월 09:30-11:00") and a compressed day cluster ("화목 13:00-15:00") where each
// character is a separate weekday sharing the range. Multiple meetings may be
// joined with "/" or ",".
var (
	labeledTimePattern = regexp.MustCompile(`(월요일|화요일|수요일|목요일|금요일|토요일|일요일|월|화|수|목|금|토|일)\s*(\d{1,2})[:：](\d{2})\s*[-~]\s*(\d{1,2})[:：](\d{2})`)
	clusterTimePattern = regexp.MustCompile(`([월화수목금토일]{2,})\s*(\d{1,2})[:：](\d{2})\s*[-~]\s*(\d{1,2})[:：](\d{2})`)
	segmentSplitter    = regexp.MustCompile(`[/,]`)
)

// timeUndetermined marks catalog rows with no scheduled meeting.
const timeUndetermined = "시간 미정"

// ParseTimeSlots converts a raw catalog time string into meeting intervals.
// Malformed segments are dropped, not failed on: the catalog is uncontrolled
// data, so the parser is lenient and reports what it could not read via the
// second return value instead of erroring.
func ParseTimeSlots(raw string) ([]models.TimeInterval, []string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "-" || trimmed == timeUndetermined {
		return nil, nil
	}

	var intervals []models.TimeInterval
	var unparsed []string

	for _, segment := range segmentSplitter.Split(trimmed, -1) {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		// The cluster shape must win over the labeled shape: the labeled
		// pattern would otherwise read only the last day of "화목".
		if matches := clusterTimePattern.FindAllStringSubmatch(segment, -1); len(matches) > 0 {
			for _, m := range matches {
				start := padHour(m[2]) + ":" + m[3]
				end := padHour(m[4]) + ":" + m[5]
				for _, day := range strings.Split(m[1], "") {
					intervals = append(intervals, models.TimeInterval{Day: day, StartTime: start, EndTime: end})
				}
			}
			continue
		}

		if matches := labeledTimePattern.FindAllStringSubmatch(segment, -1); len(matches) > 0 {
			for _, m := range matches {
				day := strings.TrimSuffix(m[1], "요일")
				intervals = append(intervals, models.TimeInterval{
					Day:       day,
					StartTime: padHour(m[2]) + ":" + m[3],
					EndTime:   padHour(m[4]) + ":" + m[5],
				})
			}
			continue
		}

		unparsed = append(unparsed, segment)
	}

	return intervals, unparsed
}

// padHour normalizes "9" to "09" so interval times compare lexically.
func padHour(h string) string {
	if len(h) == 1 {
		return "0" + h
	}
	return h
}
