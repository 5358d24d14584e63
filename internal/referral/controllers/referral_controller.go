package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mvcastillo/healthoffice-backend/internal/common/apperr"
	"github.com/mvcastillo/healthoffice-backend/internal/common/middlewares"
	"github.com/mvcastillo/healthoffice-backend/internal/referral/models"
	"github.com/mvcastillo/healthoffice-backend/internal/referral/services"
	"github.com/mvcastillo/healthoffice-backend/pkg/utils"
)

type ReferralController struct {
	Service *services.ReferralService
}

func NewReferralController(service *services.ReferralService) *ReferralController {
	return &ReferralController{Service: service}
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

// CreateHandler issues a referral; the issuing employee comes from the JWT.
func (rc *ReferralController) CreateHandler(c echo.Context) error {
	var req struct {
		PatientID   int64  `json:"patient_id"`
		Destination string `json:"destination"`
		Reason      string `json:"reason"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "invalid request payload: " + err.Error(),
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

	id, err := rc.Service.Create(req.PatientID, claims.EmployeeID, req.Destination, req.Reason)
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
		"message": "referral created",
		"data": map[string]interface{}{
			"referral_id": id,
		},
	})
}

// ActionHandler fires a named status action (activate, accept, complete,
// cancel, void, reactivate) against a referral.
func (rc *ReferralController) ActionHandler(c echo.Context) error {
	idStr := c.QueryParam("referral_id")
	referralID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || referralID <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "referral_id must be a positive number",
			"data":    nil,
		})
	}

	var req struct {
		Action string `json:"action"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}

	if err := rc.Service.Apply(referralID, req.Action); err != nil {
		code := statusFor(err)
		return c.JSON(code, map[string]interface{}{
			"status":  code,
			"message": err.Error(),
			"data":    nil,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "referral " + req.Action + " applied",
		"data":    nil,
	})
}

// ListHandler returns referrals filtered by status (default pending).
func (rc *ReferralController) ListHandler(c echo.Context) error {
	status := c.QueryParam("status")
	if status == "" {
		status = string(models.ReferralPending)
	}

	list, err := rc.Service.ListByStatus(models.ReferralStatus(status))
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
		"message": "referrals retrieved successfully",
		"data":    list,
	})
}
