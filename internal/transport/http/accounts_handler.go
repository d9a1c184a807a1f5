package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campuscore/campus-backend/internal/repository/ports"
	"github.com/campuscore/campus-backend/internal/service"
	"github.com/campuscore/campus-backend/internal/util"
)

type AccountsHandler struct {
	accounts *service.AccountsService
}

func RegisterAccounts(e *echo.Echo, jwt *util.JWTManager, accounts *service.AccountsService) {
	handler := &AccountsHandler{accounts: accounts}
	group := e.Group("/api/accounts", RequireAuth(jwt), RequireAdmin())
	group.POST("/students", handler.createStudent)
	group.GET("/students", handler.listStudents)
	group.POST("/faculty", handler.createFaculty)
	group.GET("/faculty", handler.listFaculty)
}

func (h *AccountsHandler) createStudent(c echo.Context) error {
	var req struct {
		Name         string  `json:"name" validate:"required"`
		Email        string  `json:"email" validate:"required,email"`
		Phone        *string `json:"phone"`
		DepartmentID *int64  `json:"department_id"`
		ClassID      *int64  `json:"class_id"`
		Password     string  `json:"password" validate:"required,min=8"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errJSON("invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	student, err := h.accounts.CreateStudent(c.Request().Context(), service.StudentCreateInput{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		DepartmentID: req.DepartmentID,
		ClassID:      req.ClassID,
		Password:     req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrConflict) {
			return c.JSON(http.StatusConflict, errJSON("email already registered"))
		}
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusCreated, student)
}

func (h *AccountsHandler) listStudents(c echo.Context) error {
	filter := ports.StudentFilter{
		DepartmentID: queryInt64(c, "department_id"),
		ClassID:      queryInt64(c, "class_id"),
	}
	students, err := h.accounts.ListStudents(c.Request().Context(), filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusOK, listJSON(students))
}

func (h *AccountsHandler) createFaculty(c echo.Context) error {
	var req struct {
		Name         string  `json:"name" validate:"required"`
		Email        string  `json:"email" validate:"required,email"`
		Phone        *string `json:"phone"`
		DepartmentID *int64  `json:"department_id"`
		Password     string  `json:"password" validate:"required,min=8"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errJSON("invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	member, err := h.accounts.CreateFaculty(c.Request().Context(), service.FacultyCreateInput{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		DepartmentID: req.DepartmentID,
		Password:     req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrConflict) {
			return c.JSON(http.StatusConflict, errJSON("email already registered"))
		}
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusCreated, member)
}

func (h *AccountsHandler) listFaculty(c echo.Context) error {
	members, err := h.accounts.ListFaculty(c.Request().Context(), queryInt64(c, "department_id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusOK, listJSON(members))
}
