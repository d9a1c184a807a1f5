package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campuscore/campus-backend/internal/service"
)

type MFAHandler struct {
	mfa *service.MFAService
}

func RegisterMFA(e *echo.Echo, mfa *service.MFAService) {
	handler := &MFAHandler{mfa: mfa}
	group := e.Group("/api/mfa")
	group.POST("/initiate", handler.initiate)
	group.POST("/verify", handler.verify)
}

func (h *MFAHandler) initiate(c echo.Context) error {
	var req struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errJSON("username and password required"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errJSON("username and password required"))
	}

	result, err := h.mfa.Initiate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, errJSON("Invalid credentials"))
		}
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"mfa_required": true,
		"mfa_token":    result.Token,
		"expires_in":   result.ExpiresIn,
		"user":         result.Identity,
	})
}

func (h *MFAHandler) verify(c echo.Context) error {
	var req struct {
		MFAToken string `json:"mfa_token" validate:"required"`
		OTP      string `json:"otp" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errJSON("mfa_token and otp required"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errJSON("mfa_token and otp required"))
	}

	result, err := h.mfa.Verify(c.Request().Context(), req.MFAToken, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSession):
			return c.JSON(http.StatusBadRequest, errJSON("Invalid or expired MFA session"))
		case errors.Is(err, service.ErrTooManyAttempts):
			return c.JSON(http.StatusTooManyRequests, errJSON("Too many attempts. Session locked."))
		case errors.Is(err, service.ErrOTPExpired):
			return c.JSON(http.StatusBadRequest, errJSON("OTP expired. Please login again."))
		case errors.Is(err, service.ErrOTPAlreadyUsed):
			return c.JSON(http.StatusBadRequest, errJSON("OTP already used. Please login again."))
		case errors.Is(err, service.ErrInvalidOTP):
			return c.JSON(http.StatusUnauthorized, errJSON("Invalid OTP"))
		}
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"ok":         true,
		"token":      result.SessionToken,
		"expires_at": result.ExpiresAt,
		"user":       result.Identity,
	})
}
