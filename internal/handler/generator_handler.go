package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/entu-dev/timetable-api/internal/dto"
	"github.com/entu-dev/timetable-api/internal/service"
	appErrors "github.com/entu-dev/timetable-api/pkg/errors"
	"github.com/entu-dev/timetable-api/pkg/response"
)

// GeneratorHandler exposes timetable generation over HTTP.
type GeneratorHandler struct {
	service *service.TimetableGeneratorService
}

// NewGeneratorHandler creates a new handler.
func NewGeneratorHandler(svc *service.TimetableGeneratorService) *GeneratorHandler {
	return &GeneratorHandler{service: svc}
}

// Generate godoc
// @Summary Generate candidate timetables
// @Description Build up to three candidate timetables from the questionnaire answers
// @Tags Timetables
// @Accept json
// @Produce json
// @Param payload body dto.GenerateTimetableRequest true "Questionnaire answers"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /timetables/generate [post]
func (h *GeneratorHandler) Generate(c *gin.Context) {
	var req dto.GenerateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generation payload"))
		return
	}

	res, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, nil)
}
