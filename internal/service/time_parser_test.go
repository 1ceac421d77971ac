package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entu-dev/timetable-api/internal/models"
)

func TestParseTimeSlotsLabeledDay(t *testing.T) {
	slots, unparsed := ParseTimeSlots("월요일 09:30-11:00")
	require.Len(t, slots, 1)
	assert.Empty(t, unparsed)
	assert.Equal(t, models.TimeInterval{Day: "월", StartTime: "09:30", EndTime: "11:00"}, slots[0])
}

func TestParseTimeSlotsShortDayLabel(t *testing.T) {
	slots, unparsed := ParseTimeSlots("금 15:00-16:30")
	require.Len(t, slots, 1)
	assert.Empty(t, unparsed)
	assert.Equal(t, "금", slots[0].Day)
	assert.Equal(t, "15:00", slots[0].StartTime)
}

func TestParseTimeSlotsDayClusterExpands(t *testing.T) {
	slots, unparsed := ParseTimeSlots("화목 13:00-15:00")
	require.Len(t, slots, 2)
	assert.Empty(t, unparsed)
	assert.Equal(t, models.TimeInterval{Day: "화", StartTime: "13:00", EndTime: "15:00"}, slots[0])
	assert.Equal(t, models.TimeInterval{Day: "목", StartTime: "13:00", EndTime: "15:00"}, slots[1])
}

func TestParseTimeSlotsMultipleSegments(t *testing.T) {
	slots, unparsed := ParseTimeSlots("월 09:00-10:30 / 수 14:00-15:30")
	require.Len(t, slots, 2)
	assert.Empty(t, unparsed)
	assert.Equal(t, "월", slots[0].Day)
	assert.Equal(t, "수", slots[1].Day)
}

func TestParseTimeSlotsCommaSeparator(t *testing.T) {
	slots, _ := ParseTimeSlots("화 10:00-11:00, 목 10:00-11:00")
	require.Len(t, slots, 2)
}

func TestParseTimeSlotsFullwidthColonAndTilde(t *testing.T) {
	slots, unparsed := ParseTimeSlots("수 09：00~10：30")
	require.Len(t, slots, 1)
	assert.Empty(t, unparsed)
	assert.Equal(t, "09:00", slots[0].StartTime)
	assert.Equal(t, "10:30", slots[0].EndTime)
}

func TestParseTimeSlotsPadsSingleDigitHour(t *testing.T) {
	slots, _ := ParseTimeSlots("월 9:30-11:00")
	require.Len(t, slots, 1)
	assert.Equal(t, "09:30", slots[0].StartTime)
}

func TestParseTimeSlotsUndetermined(t *testing.T) {
	for _, raw := range []string{"", "-", "시간 미정", "  "} {
		slots, unparsed := ParseTimeSlots(raw)
		assert.Empty(t, slots, "raw=%q", raw)
		assert.Empty(t, unparsed, "raw=%q", raw)
	}
}

func TestParseTimeSlotsReportsUnparsedSegments(t *testing.T) {
	slots, unparsed := ParseTimeSlots("월 09:00-10:30 / 격주 수업")
	require.Len(t, slots, 1)
	require.Len(t, unparsed, 1)
	assert.Equal(t, "격주 수업", unparsed[0])
}
