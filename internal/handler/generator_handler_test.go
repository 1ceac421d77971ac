package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/entu-dev/timetable-api/internal/models"
	"github.com/entu-dev/timetable-api/internal/service"
)

type catalogStub struct {
	snapshot *models.CatalogSnapshot
}

func (s *catalogStub) Snapshot(ctx context.Context) (*models.CatalogSnapshot, error) {
	return s.snapshot, nil
}

func newGeneratorHandlerFixture(snapshot *models.CatalogSnapshot) *GeneratorHandler {
	svc := service.NewTimetableGeneratorService(&catalogStub{snapshot: snapshot}, nil, nil, nil, nil)
	return NewGeneratorHandler(svc)
}

func generatePayload() []byte {
	payload, _ := json.Marshal(map[string]string{
		"grade":    "1학년",
		"espLevel": "Foundation 1",
		"mnLevel":  "Strategic Learning and Leadership",
		"credits":  "16-17학점",
		"track":    "선택안함",
	})
	return payload
}

func TestGeneratorHandlerGenerateSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newGeneratorHandlerFixture(&models.CatalogSnapshot{
		Success: true,
		Courses: []models.Course{
			{ID: "c1", Code: "MN1001", Name: "Strategic Learning and Leadership", Area: models.AreaMN, Grade: "1", CreditRaw: "1", TimeText: "수 09:00-10:00"},
			{ID: "c2", Code: "GE1001", Name: "글쓰기의 기초", Area: models.AreaGE, Grade: "1", CreditRaw: "4", TimeText: "수 13:00-15:00"},
		},
	})

	req, _ := http.NewRequest(http.MethodPost, "/timetables/generate", bytes.NewReader(generatePayload()))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Generate(c)

	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data struct {
			Timetables  []models.GeneratedTimetable `json:"timetables"`
			CreditRange models.CreditRange          `json:"creditRange"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Timetables, 3)
	require.Equal(t, 17, envelope.Data.CreditRange.Target)
}

func TestGeneratorHandlerGenerateDegradedCatalog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newGeneratorHandlerFixture(&models.CatalogSnapshot{Success: false})

	req, _ := http.NewRequest(http.MethodPost, "/timetables/generate", bytes.NewReader(generatePayload()))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Generate(c)

	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data struct {
			Timetables []models.GeneratedTimetable `json:"timetables"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Empty(t, envelope.Data.Timetables)
}

func TestGeneratorHandlerGenerateMalformedPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newGeneratorHandlerFixture(&models.CatalogSnapshot{Success: true})

	req, _ := http.NewRequest(http.MethodPost, "/timetables/generate", bytes.NewReader([]byte(`{"grade":`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Generate(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGeneratorHandlerGenerateMissingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newGeneratorHandlerFixture(&models.CatalogSnapshot{Success: true})

	req, _ := http.NewRequest(http.MethodPost, "/timetables/generate", bytes.NewReader([]byte(`{"grade":"2학년"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Generate(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
