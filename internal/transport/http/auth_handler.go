package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campuscore/campus-backend/internal/service"
)

func RegisterAuth(e *echo.Echo, auth *service.AuthService) {
	e.POST("/api/admin/auth/login", func(c echo.Context) error {
		var req struct {
			Email    string `json:"email" validate:"required,email"`
			Password string `json:"password" validate:"required"`
		}
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, errJSON("email and password required"))
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, errJSON("email and password required"))
		}

		session, err := auth.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				return c.JSON(http.StatusUnauthorized, errJSON("Invalid credentials"))
			}
			return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
		}
		return c.JSON(http.StatusOK, session)
	})
}
