package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/entu-dev/timetable-api/internal/models"
)

// weekdayOrder is the Monday-Friday window the characterizer looks at;
// weekend meetings exist in the catalog but do not feed the daily heuristics.
var weekdayOrder = []string{"월", "화", "수", "목", "금"}

type timeWindow struct {
	start string
	end   string
}

// characterizeSchedule inspects a finished candidate's daily time layout and
// returns the descriptions of every heuristic it satisfies. Heuristics are
// independent; a schedule can earn several or none.
func characterizeSchedule(courses []models.Course, p studentProfile) []string {
	daily := make(map[string][]timeWindow, len(weekdayOrder))
	for _, day := range weekdayOrder {
		daily[day] = nil
	}

	for _, course := range courses {
		slots, _ := ParseTimeSlots(course.TimeText)
		for _, slot := range slots {
			if _, ok := daily[slot.Day]; ok {
				daily[slot.Day] = append(daily[slot.Day], timeWindow{start: slot.StartTime, end: slot.EndTime})
			}
		}
	}
	for day := range daily {
		windows := daily[day]
		sort.Slice(windows, func(i, j int) bool { return windows[i].start < windows[j].start })
	}

	var benefits []string

	if !anyWindow(daily, func(w timeWindow) bool { return startHour(w) < 11 }) {
		benefits = append(benefits, "🛏️ 아침에 일어나기 힘든 학생들을 위한 시간표!")
	}

	lunchOverlap := func(w timeWindow) bool {
		sh := startHour(w)
		eh, em := endHourMinute(w)
		return (sh >= 11 && sh < 13) || (eh > 11 && (eh < 13 || (eh == 13 && em == 0)))
	}
	if !anyWindow(daily, lunchOverlap) {
		benefits = append(benefits, "🍽️ 매일 학식을 챙겨먹을 수 있어요!")
	}

	var freeDays, activeDays []string
	for _, day := range weekdayOrder {
		if len(daily[day]) == 0 {
			freeDays = append(freeDays, day)
		} else {
			activeDays = append(activeDays, day)
		}
	}
	if len(freeDays) > 0 {
		benefits = append(benefits, fmt.Sprintf("📅 %s요일 완전 공강!", strings.Join(freeDays, ", ")))
	}

	if hasBackToBack(daily) {
		benefits = append(benefits, "⚡ 연강으로 효율적인 시간 활용!")
	}

	afternoonOnly := true
	for _, windows := range daily {
		for _, w := range windows {
			if startHour(w) < 13 {
				afternoonOnly = false
			}
		}
	}
	if afternoonOnly && len(freeDays) == 0 {
		benefits = append(benefits, "🌅 오후에만 수업이 있어 여유로운 오전!")
	}

	if anyWindow(daily, func(w timeWindow) bool { return startHour(w) >= 18 }) {
		benefits = append(benefits, "🌙 저녁 수업 포함 - 야간 학습 스타일!")
	}

	if len(activeDays) <= 3 {
		benefits = append(benefits, fmt.Sprintf("📚 주 %d일만 등교하면 OK!", len(activeDays)))
	}

	if evenSpread(daily, activeDays) {
		benefits = append(benefits, "⚖️ 요일별 수업량이 고르게 분산!")
	}

	if p.Track != "" && p.Track != TrackNone {
		trackCredits := 0
		for _, course := range courses {
			if course.Area == models.AreaEL && course.HasTrack(p.Track) {
				trackCredits += course.Credits()
			}
		}
		if trackCredits >= 8 {
			benefits = append(benefits, fmt.Sprintf("🎯 %s 트랙 집중 편성!", p.Track))
		}
	}

	total := 0
	for _, course := range courses {
		total += course.Credits()
	}
	if total == p.Range.Target {
		benefits = append(benefits, "💯 목표 학점에 딱 맞는 구성!")
	} else if p.Range.Contains(total) {
		benefits = append(benefits, "✅ 적정 학점 범위 내 완벽 구성!")
	}

	return benefits
}

func anyWindow(daily map[string][]timeWindow, match func(timeWindow) bool) bool {
	for _, windows := range daily {
		for _, w := range windows {
			if match(w) {
				return true
			}
		}
	}
	return false
}

// hasBackToBack detects an end time meeting the next start exactly.
func hasBackToBack(daily map[string][]timeWindow) bool {
	for _, windows := range daily {
		for i := 0; i+1 < len(windows); i++ {
			if windows[i].end == windows[i+1].start {
				return true
			}
		}
	}
	return false
}

// evenSpread holds when the busiest and lightest days differ by at most one
// class across at least four active days.
func evenSpread(daily map[string][]timeWindow, activeDays []string) bool {
	if len(activeDays) < 4 {
		return false
	}
	maxCount := 0
	minCount := -1
	for _, day := range weekdayOrder {
		count := len(daily[day])
		if count > maxCount {
			maxCount = count
		}
		if count > 0 && (minCount == -1 || count < minCount) {
			minCount = count
		}
	}
	return minCount != -1 && maxCount-minCount <= 1
}

func startHour(w timeWindow) int {
	h, _ := strconv.Atoi(strings.SplitN(w.start, ":", 2)[0])
	return h
}

func endHourMinute(w timeWindow) (int, int) {
	parts := strings.SplitN(w.end, ":", 2)
	h, _ := strconv.Atoi(parts[0])
	m := 0
	if len(parts) > 1 {
		m, _ = strconv.Atoi(parts[1])
	}
	return h, m
}
