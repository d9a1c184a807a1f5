package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campuscore/campus-backend/internal/domain"
	"github.com/campuscore/campus-backend/internal/service"
	"github.com/campuscore/campus-backend/internal/util"
)

type AdminsHandler struct {
	admins *service.AdminService
}

func RegisterAdmins(e *echo.Echo, jwt *util.JWTManager, admins *service.AdminService) {
	handler := &AdminsHandler{admins: admins}
	group := e.Group("/api/admins", RequireAuth(jwt), RequireSuperAdmin())
	group.GET("", handler.list)
	group.POST("", handler.create)
	group.PUT("/:id", handler.update)
	group.PUT("/:id/status", handler.setStatus)
}

func (h *AdminsHandler) list(c echo.Context) error {
	admins, err := h.admins.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusOK, listJSON(admins))
}

func (h *AdminsHandler) create(c echo.Context) error {
	var req struct {
		Name     string  `json:"name" validate:"required"`
		Email    string  `json:"email" validate:"required,email"`
		Phone    *string `json:"phone"`
		Address  *string `json:"address"`
		Password string  `json:"password" validate:"required,min=8"`
		Role     string  `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errJSON("invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	admin, err := h.admins.Create(c.Request().Context(), service.AdminCreateInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConflict):
			return c.JSON(http.StatusConflict, errJSON("email already registered"))
		case errors.Is(err, service.ErrForbidden):
			return c.JSON(http.StatusBadRequest, errJSON("invalid role"))
		}
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusCreated, admin)
}

func (h *AdminsHandler) update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, errJSON("invalid admin id"))
	}
	var req struct {
		Name    *string `json:"name"`
		Phone   *string `json:"phone"`
		Address *string `json:"address"`
		Role    *string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errJSON("invalid payload"))
	}

	admin, err := h.admins.Update(c.Request().Context(), id, domain.AdminUpdate{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Role:    req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, errJSON("admin not found"))
		case errors.Is(err, service.ErrForbidden):
			return c.JSON(http.StatusBadRequest, errJSON("invalid role"))
		}
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusOK, admin)
}

func (h *AdminsHandler) setStatus(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, errJSON("invalid admin id"))
	}
	var req struct {
		Status string `json:"status" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errJSON("invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	admin, err := h.admins.SetStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, errJSON("admin not found"))
		case errors.Is(err, service.ErrForbidden):
			return c.JSON(http.StatusBadRequest, errJSON("invalid status"))
		}
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusOK, admin)
}
