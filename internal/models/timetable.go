package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// TimeInterval is one parsed meeting window. Day is a single-character
// Korean weekday (월..일); times are zero-padded "HH:MM" so they compare
// lexically.
type TimeInterval struct {
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// CreditRange bounds one generation attempt. Invariant: Min <= Target <= Max.
type CreditRange struct {
	Min    int `json:"min"`
	Max    int `json:"max"`
	Target int `json:"target"`
}

// Contains reports whether total lies inside the window.
func (r CreditRange) Contains(total int) bool {
	return total >= r.Min && total <= r.Max
}

// GeneratedTimetable is one finished candidate. Immutable once emitted;
// saving copies it into a SavedTimetable rather than mutating it.
type GeneratedTimetable struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Courses      []Course `json:"courses"`
	TotalCredits int      `json:"totalCredits"`
	Benefits     []string `json:"benefits"`
}

// SavedTimetable is the persisted copy of a chosen candidate, with the
// timestamp and semester label appended at save time.
type SavedTimetable struct {
	ID           string         `db:"id" json:"id"`
	UserID       string         `db:"user_id" json:"user_id"`
	Name         string         `db:"name" json:"name"`
	Semester     string         `db:"semester" json:"semester"`
	TotalCredits int            `db:"total_credits" json:"total_credits"`
	Courses      types.JSONText `db:"courses" json:"courses"`
	Benefits     types.JSONText `db:"benefits" json:"benefits"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}
