package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mvcastillo/healthoffice-backend/internal/common/apperr"
	"github.com/mvcastillo/healthoffice-backend/internal/occupancy/services"
)

type OccupancyController struct {
	Service *services.OccupancyService
}

func NewOccupancyController(service *services.OccupancyService) *OccupancyController {
	return &OccupancyController{Service: service}
}

// SnapshotHandler serves the polled dashboard feed. date defaults to
// today. An empty data array means "no stations configured" and is not an
// error condition for clients.
func (oc *OccupancyController) SnapshotHandler(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	snaps, err := oc.Service.Snapshot(date, time.Now())
	if err != nil {
		code := http.StatusInternalServerError
		if apperr.IsValidation(err) {
			code = http.StatusBadRequest
		}
		return c.JSON(code, map[string]interface{}{
			"status":  code,
			"message": err.Error(),
			"data":    nil,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "occupancy snapshot",
		"data":    snaps,
	})
}
