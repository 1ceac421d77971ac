package dto

// ImportCoursesRequest carries positional catalog rows exactly as they appear
// in the registrar's sheet. Header row excluded; cells beyond the known
// ordinals are ignored.
type ImportCoursesRequest struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows" validate:"required,min=1"`
}

// ImportCoursesResponse summarises an import run.
type ImportCoursesResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}
