package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mvcastillo/healthoffice-backend/internal/assignment/services"
	"github.com/mvcastillo/healthoffice-backend/internal/common/apperr"
	"github.com/mvcastillo/healthoffice-backend/internal/common/middlewares"
	common "github.com/mvcastillo/healthoffice-backend/internal/common/models"
	"github.com/mvcastillo/healthoffice-backend/pkg/utils"
)

type AssignmentController struct {
	Service *services.AssignmentService
}

func NewAssignmentController(service *services.AssignmentService) *AssignmentController {
	return &AssignmentController{Service: service}
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

// AssignHandler books an employee onto a station slot. The acting
// employee comes from the JWT.
func (ac *AssignmentController) AssignHandler(c echo.Context) error {
	var req struct {
		EmployeeID    int64  `json:"employee_id"`
		StationType   string `json:"station_type"`
		StationNumber int    `json:"station_number"`
		Date          string `json:"date"`        // "2006-01-02"
		ShiftStart    string `json:"shift_start"` // "15:04:05"
		ShiftEnd      string `json:"shift_end"`   // "15:04:05"
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}
	if req.EmployeeID <= 0 || req.StationType == "" || req.Date == "" || req.ShiftStart == "" || req.ShiftEnd == "" {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "employee_id, station_type, date, shift_start and shift_end are required",
			"data":    nil,
		})
	}

	claims, ok := c.Get(string(middlewares.ContextKeyClaims)).(*utils.Claims)
	if !ok || claims == nil {
		return c.JSON(http.StatusUnauthorized, map[string]interface{}{
			"status":  http.StatusUnauthorized,
			"message": "invalid or missing token claims",
			"data":    nil,
		})
	}

	id, err := ac.Service.Assign(
		req.EmployeeID,
		common.StationType(req.StationType),
		req.StationNumber,
		req.Date, req.ShiftStart, req.ShiftEnd,
		claims.EmployeeID,
	)
	if err != nil {
		code := statusFor(err)
		msg := err.Error()
		if apperr.IsConflict(err) {
			msg = "that station/date is already assigned: " + msg
		}
		return c.JSON(code, map[string]interface{}{
			"status":  code,
			"message": msg,
			"data":    nil,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "assignment created",
		"data": map[string]interface{}{
			"assignment_id": id,
		},
	})
}

// UnassignHandler ends the matching active assignment; repeating it is a
// no-op, not an error.
func (ac *AssignmentController) UnassignHandler(c echo.Context) error {
	var req struct {
		EmployeeID    int64  `json:"employee_id"`
		StationType   string `json:"station_type"`
		StationNumber int    `json:"station_number"`
		Date          string `json:"date"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}

	err := ac.Service.Unassign(req.EmployeeID, common.StationType(req.StationType), req.StationNumber, req.Date)
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
		"message": "assignment ended",
		"data":    nil,
	})
}

// ListForDateHandler returns the day's assignments for display.
func (ac *AssignmentController) ListForDateHandler(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "date must be provided",
			"data":    nil,
		})
	}

	list, err := ac.Service.ListForDate(date)
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
		"message": "assignments retrieved successfully",
		"data":    list,
	})
}
