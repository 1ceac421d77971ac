package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/entu-dev/timetable-api/internal/dto"
	"github.com/entu-dev/timetable-api/internal/models"
	"github.com/entu-dev/timetable-api/internal/service"
	appErrors "github.com/entu-dev/timetable-api/pkg/errors"
	"github.com/entu-dev/timetable-api/pkg/response"
)

// CourseHandler exposes the course catalog over HTTP.
type CourseHandler struct {
	service *service.CatalogService
}

// NewCourseHandler creates a new handler.
func NewCourseHandler(svc *service.CatalogService) *CourseHandler {
	return &CourseHandler{service: svc}
}

// List godoc
// @Summary List catalog courses
// @Description Browse the course catalog with optional filters
// @Tags Courses
// @Produce json
// @Param area query string false "Area code filter"
// @Param grade query string false "Grade filter"
// @Param track query string false "Track filter"
// @Param search query string false "Name or professor search"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	filter := models.CourseFilter{
		Area:      c.Query("area"),
		Grade:     c.Query("grade"),
		Track:     c.Query("track"),
		Search:    c.Query("search"),
		Page:      queryInt(c, "page", 1),
		PageSize:  queryInt(c, "page_size", 20),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	courses, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, courses, pagination)
}

// Import godoc
// @Summary Import course catalog
// @Description Replace the catalog from positional sheet rows (admin only)
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body dto.ImportCoursesRequest true "Catalog rows"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /courses/import [post]
func (h *CourseHandler) Import(c *gin.Context) {
	var req dto.ImportCoursesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid import payload"))
		return
	}

	res, err := h.service.Import(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, nil)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
