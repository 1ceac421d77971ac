package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/entu-dev/timetable-api/internal/models"
)

func profileWithRange(min, max, target int) studentProfile {
	return studentProfile{Grade: 2, Track: TrackNone, Range: models.CreditRange{Min: min, Max: max, Target: target}}
}

func TestCharacterizeLateRiserSchedule(t *testing.T) {
	courses := []models.Course{
		{Name: "A", CreditRaw: "3", TimeText: "월 13:00-15:00"},
		{Name: "B", CreditRaw: "3", TimeText: "화 14:00-16:00"},
	}
	benefits := characterizeSchedule(courses, profileWithRange(12, 13, 12))
	assert.Contains(t, benefits, "🛏️ 아침에 일어나기 힘든 학생들을 위한 시간표!")
}

func TestCharacterizeLunchFriendlySchedule(t *testing.T) {
	courses := []models.Course{
		{Name: "A", CreditRaw: "3", TimeText: "월 09:00-10:30"},
		{Name: "B", CreditRaw: "3", TimeText: "화 14:00-16:00"},
	}
	benefits := characterizeSchedule(courses, profileWithRange(12, 13, 12))
	assert.Contains(t, benefits, "🍽️ 매일 학식을 챙겨먹을 수 있어요!")
}

func TestCharacterizeFreeDays(t *testing.T) {
	courses := []models.Course{
		{Name: "A", CreditRaw: "3", TimeText: "월 09:00-10:30"},
		{Name: "B", CreditRaw: "3", TimeText: "화 09:00-10:30"},
		{Name: "C", CreditRaw: "3", TimeText: "수 09:00-10:30"},
	}
	benefits := characterizeSchedule(courses, profileWithRange(12, 13, 12))
	assert.Contains(t, benefits, "📅 목, 금요일 완전 공강!")
	assert.Contains(t, benefits, "📚 주 3일만 등교하면 OK!")
}

func TestCharacterizeBackToBack(t *testing.T) {
	courses := []models.Course{
		{Name: "A", CreditRaw: "3", TimeText: "월 09:00-10:30"},
		{Name: "B", CreditRaw: "3", TimeText: "월 10:30-12:00"},
	}
	benefits := characterizeSchedule(courses, profileWithRange(12, 13, 12))
	assert.Contains(t, benefits, "⚡ 연강으로 효율적인 시간 활용!")
}

func TestCharacterizeEveningClasses(t *testing.T) {
	courses := []models.Course{
		{Name: "A", CreditRaw: "3", TimeText: "월 18:00-20:00"},
	}
	benefits := characterizeSchedule(courses, profileWithRange(12, 13, 12))
	assert.Contains(t, benefits, "🌙 저녁 수업 포함 - 야간 학습 스타일!")
}

func TestCharacterizeAfternoonOnlyRequiresFullWeek(t *testing.T) {
	fullWeek := []models.Course{
		{Name: "A", CreditRaw: "3", TimeText: "월 13:00-15:00"},
		{Name: "B", CreditRaw: "3", TimeText: "화 13:00-15:00"},
		{Name: "C", CreditRaw: "3", TimeText: "수 13:00-15:00"},
		{Name: "D", CreditRaw: "3", TimeText: "목 13:00-15:00"},
		{Name: "E", CreditRaw: "3", TimeText: "금 13:00-15:00"},
	}
	benefits := characterizeSchedule(fullWeek, profileWithRange(12, 13, 12))
	assert.Contains(t, benefits, "🌅 오후에만 수업이 있어 여유로운 오전!")

	fourDays := fullWeek[:4]
	benefits = characterizeSchedule(fourDays, profileWithRange(12, 13, 12))
	assert.NotContains(t, benefits, "🌅 오후에만 수업이 있어 여유로운 오전!")
}

func TestCharacterizeTrackFocus(t *testing.T) {
	p := studentProfile{Grade: 3, Track: "수소 에너지", Range: models.CreditRange{Min: 12, Max: 13, Target: 12}}
	courses := []models.Course{
		{Name: "수소 연료전지", Area: models.AreaEL, TrackRaw: "수소 에너지", CreditRaw: "4", TimeText: "월 09:00-11:00"},
		{Name: "수소 저장 기술", Area: models.AreaEL, TrackRaw: "수소 에너지", CreditRaw: "4", TimeText: "화 09:00-11:00"},
	}
	benefits := characterizeSchedule(courses, p)
	assert.Contains(t, benefits, "🎯 수소 에너지 트랙 집중 편성!")
}

func TestCharacterizeCreditFit(t *testing.T) {
	courses := []models.Course{
		{Name: "A", CreditRaw: "6", TimeText: "월 09:00-11:00"},
		{Name: "B", CreditRaw: "6", TimeText: "화 09:00-11:00"},
	}
	benefits := characterizeSchedule(courses, profileWithRange(12, 13, 12))
	assert.Contains(t, benefits, "💯 목표 학점에 딱 맞는 구성!")

	benefits = characterizeSchedule(courses, profileWithRange(12, 13, 13))
	assert.Contains(t, benefits, "✅ 적정 학점 범위 내 완벽 구성!")
	assert.NotContains(t, benefits, "💯 목표 학점에 딱 맞는 구성!")
}
