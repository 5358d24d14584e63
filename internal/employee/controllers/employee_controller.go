package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mvcastillo/healthoffice-backend/internal/common/apperr"
	"github.com/mvcastillo/healthoffice-backend/internal/employee/services"
)

type EmployeeController struct {
	Service *services.EmployeeService
}

func NewEmployeeController(service *services.EmployeeService) *EmployeeController {
	return &EmployeeController{Service: service}
}

// Login verifies username/password and returns a bearer token.
func (ec *EmployeeController) Login(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "username and password are required",
			"data":    nil,
		})
	}

	token, emp, err := ec.Service.Login(req.Username, req.Password)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]interface{}{
			"status":  http.StatusUnauthorized,
			"message": "login failed: invalid credentials",
			"data":    nil,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "login successful",
		"data": map[string]interface{}{
			"token":       token,
			"employee_id": emp.ID,
			"name":        emp.DisplayName(),
			"role":        emp.Role,
		},
	})
}

// ListHandler returns the active roster.
func (ec *EmployeeController) ListHandler(c echo.Context) error {
	list, err := ec.Service.ListActive()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "failed to retrieve employees: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "employees retrieved successfully",
		"data":    list,
	})
}

// ResetPasswordHandler sets a new password for an employee.
func (ec *EmployeeController) ResetPasswordHandler(c echo.Context) error {
	idStr := c.QueryParam("employee_id")
	employeeID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || employeeID <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "employee_id must be a positive number",
			"data":    nil,
		})
	}

	var req struct {
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}

	if err := ec.Service.ResetPassword(employeeID, req.Password); err != nil {
		code := http.StatusInternalServerError
		switch {
		case apperr.IsValidation(err):
			code = http.StatusBadRequest
		case apperr.IsNotFound(err):
			code = http.StatusNotFound
		}
		return c.JSON(code, map[string]interface{}{
			"status":  code,
			"message": err.Error(),
			"data":    nil,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "password updated",
		"data":    nil,
	})
}
