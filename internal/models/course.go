package models

import (
	"strconv"
	"strings"
	"time"
)

// Catalog column ordinals. The registrar's sheet is positional; this is the
// single place where the ordinal convention is spelled out. Rows are mapped
// into named fields at the ingestion boundary and nowhere else.
const (
	ColGrade = iota
	ColCode
	ColName
	ColSection
	ColArea
	ColProfessor
	ColRoom
	ColTime
	ColCredits
	ColTracks
	catalogColumns
)

// Area codes used for eligibility gates and priority grouping.
const (
	AreaRC   = "RC"   // residential college orientation, first-years
	AreaVC   = "VC"   // value/creativity electives, first-years
	AreaESP  = "ESP"  // English for specific purposes
	AreaMN   = "MN"   // leadership seminar sequence
	AreaEF   = "EF"   // engineering foundations
	AreaEL   = "EL"   // track electives
	AreaGE   = "GE"   // general education
	AreaMS   = "MS"   // management/applied skills
	AreaEN   = "EN"   // engineering humanities, upper years
	AreaHASS = "HASS" // humanities and social sciences, upper years
	AreaCAPS = "CAPS" // capstone
)

// Course is one catalog offering. Any field may be empty; consumers treat
// empty as "not stated" rather than failing.
type Course struct {
	ID        string `db:"id" json:"id"`
	Grade     string `db:"grade" json:"grade"`
	Code      string `db:"code" json:"code"`
	Name      string `db:"name" json:"name"`
	Section   string `db:"section" json:"section"`
	Area      string `db:"area" json:"area"`
	Professor string `db:"professor" json:"professor"`
	Room      string `db:"room" json:"room"`
	TimeText  string `db:"time_text" json:"time_text"`
	CreditRaw string `db:"credits" json:"credits"`
	TrackRaw  string `db:"tracks" json:"tracks"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CourseFromRow maps a positional catalog row into named fields. Short rows
// yield empty fields, never an error.
func CourseFromRow(row []string) Course {
	cell := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	return Course{
		Grade:     cell(ColGrade),
		Code:      cell(ColCode),
		Name:      cell(ColName),
		Section:   cell(ColSection),
		Area:      cell(ColArea),
		Professor: cell(ColProfessor),
		Room:      cell(ColRoom),
		TimeText:  cell(ColTime),
		CreditRaw: cell(ColCredits),
		TrackRaw:  cell(ColTracks),
	}
}

// Empty reports whether no cell carried data.
func (c Course) Empty() bool {
	return c.Grade == "" && c.Code == "" && c.Name == "" && c.Area == "" &&
		c.Professor == "" && c.Room == "" && c.TimeText == "" &&
		c.CreditRaw == "" && c.TrackRaw == ""
}

// Credits coerces the string-encoded credit count, defaulting to 0.
func (c Course) Credits() int {
	n, err := strconv.Atoi(strings.TrimSpace(c.CreditRaw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// TrackList splits the comma-joined track affiliation into trimmed names.
func (c Course) TrackList() []string {
	if strings.TrimSpace(c.TrackRaw) == "" {
		return nil
	}
	parts := strings.Split(c.TrackRaw, ",")
	tracks := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tracks = append(tracks, t)
		}
	}
	return tracks
}

// HasTrack reports whether the course lists the exact track name.
func (c Course) HasTrack(track string) bool {
	track = strings.TrimSpace(track)
	for _, t := range c.TrackList() {
		if t == track {
			return true
		}
	}
	return false
}

// CourseFilter captures filtering criteria for catalog browsing.
type CourseFilter struct {
	Area      string
	Grade     string
	Track     string
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// CatalogSnapshot is the in-memory catalog the generator works on. Success
// false or an empty course list both degrade to zero candidates downstream.
type CatalogSnapshot struct {
	Success bool     `json:"success"`
	Courses []Course `json:"courses"`
	Headers []string `json:"headers"`
}
