package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mvcastillo/healthoffice-backend/internal/common/apperr"
	common "github.com/mvcastillo/healthoffice-backend/internal/common/models"
	"github.com/mvcastillo/healthoffice-backend/internal/queue/services"
	"github.com/mvcastillo/healthoffice-backend/ws"
)

type QueueController struct {
	Service *services.QueueService
	Hub     *ws.Hub
}

func NewQueueController(service *services.QueueService, hub *ws.Hub) *QueueController {
	return &QueueController{Service: service, Hub: hub}
}

func statusFor(err error) int {
	switch {
	case apperr.IsValidation(err):
		return http.StatusBadRequest
	case apperr.IsConflict(err):
		return http.StatusConflict
	case apperr.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// EnqueueHandler mints a ticket and puts the patient in line.
func (qc *QueueController) EnqueueHandler(c echo.Context) error {
	var req struct {
		PatientID     int64  `json:"patient_id"`
		StationType   string `json:"station_type"`
		StationNumber int    `json:"station_number"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}
	if req.PatientID <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "patient_id must be provided",
			"data":    nil,
		})
	}

	entry, err := qc.Service.Enqueue(common.StationType(req.StationType), req.StationNumber, req.PatientID, time.Now())
	if err != nil {
		code := statusFor(err)
		return c.JSON(code, map[string]interface{}{
			"status":  code,
			"message": err.Error(),
			"data":    nil,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "patient queued",
		"data":    entry,
	})
}

// CallNextHandler advances the queue and announces the call to displays.
func (qc *QueueController) CallNextHandler(c echo.Context) error {
	stationType := c.QueryParam("station_type")
	numberStr := c.QueryParam("station_number")
	number, err := strconv.Atoi(numberStr)
	if err != nil || number < 1 {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "station_number must be a positive number",
			"data":    nil,
		})
	}
	date := c.QueryParam("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	called, err := qc.Service.CallNext(common.StationType(stationType), number, date, time.Now())
	if err != nil {
		code := statusFor(err)
		return c.JSON(code, map[string]interface{}{
			"status":  code,
			"message": err.Error(),
			"data":    nil,
		})
	}

	qc.Hub.BroadcastJSON(called)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "patient called",
		"data":    called,
	})
}

// CompleteHandler finishes the current consultation for an entry.
func (qc *QueueController) CompleteHandler(c echo.Context) error {
	return qc.transition(c, qc.Service.Complete, "queue entry completed")
}

// SkipHandler skips a waiting patient who did not show up when called.
func (qc *QueueController) SkipHandler(c echo.Context) error {
	return qc.transition(c, qc.Service.Skip, "queue entry skipped")
}

func (qc *QueueController) transition(c echo.Context, fn func(int64) error, okMsg string) error {
	idStr := c.QueryParam("entry_id")
	entryID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || entryID <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "entry_id must be a positive number",
			"data":    nil,
		})
	}

	if err := fn(entryID); err != nil {
		code := statusFor(err)
		return c.JSON(code, map[string]interface{}{
			"status":  code,
			"message": err.Error(),
			"data":    nil,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": okMsg,
		"data":    nil,
	})
}
