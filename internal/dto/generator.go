package dto

import "github.com/entu-dev/timetable-api/internal/models"

// GenerateTimetableRequest carries the five questionnaire answers driving
// generation. Unrecognized level or track strings are legal and simply skip
// the corresponding optional requirement.
type GenerateTimetableRequest struct {
	Grade    string `json:"grade" validate:"required"`
	ESPLevel string `json:"espLevel" validate:"required"`
	MNLevel  string `json:"mnLevel" validate:"required"`
	Credits  string `json:"credits" validate:"required"`
	Track    string `json:"track" validate:"required"`
}

// ParseDiagnostics surfaces catalog data-quality issues observed while
// generating, without failing the request.
type ParseDiagnostics struct {
	UnparsedSegments int      `json:"unparsedSegments"`
	Samples          []string `json:"samples,omitempty"`
}

// GenerateTimetableResponse returns the three candidates in attempt order.
type GenerateTimetableResponse struct {
	Timetables  []models.GeneratedTimetable `json:"timetables"`
	CreditRange models.CreditRange          `json:"creditRange"`
	Diagnostics ParseDiagnostics            `json:"diagnostics"`
}

// SaveTimetableRequest copies a chosen candidate into persisted storage.
type SaveTimetableRequest struct {
	Name         string          `json:"name" validate:"required"`
	Semester     string          `json:"semester"`
	TotalCredits int             `json:"totalCredits" validate:"min=0"`
	Courses      []models.Course `json:"courses" validate:"required,min=1"`
	Benefits     []string        `json:"benefits"`
}
