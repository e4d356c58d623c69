package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/study-service/internal/api/dto"
	"github.com/spec-kit/study-service/internal/auth"
	"github.com/spec-kit/study-service/internal/pin"
	apperrors "github.com/spec-kit/study-service/pkg/util"
)

// PairingHandler exposes the device-pairing PIN exchange.
type PairingHandler struct {
	pins *pin.Service
}

// NewPairingHandler constructs handler.
func NewPairingHandler(pins *pin.Service) *PairingHandler {
	return &PairingHandler{pins: pins}
}

// RequestPin handles POST /auth/pin/request. The caller is the
// already-authenticated device; it relays the PIN out of band.
func (h *PairingHandler) RequestPin(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	pinCode, expiresAt, err := h.pins.RequestPin(c.Context(), principal.SubjectID)
	if err != nil {
		return mapPairingError(err)
	}

	return c.JSON(fiber.Map{
		"data": dto.PinResponse{Pin: pinCode, ExpiresAt: expiresAt},
	})
}

// LoginWithPin handles POST /auth/pin/login from the second device.
func (h *PairingHandler) LoginWithPin(c *fiber.Ctx) error {
	var req dto.PinLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Pin == "" {
		return apperrors.NewValidationError("pin required", nil)
	}

	token, expiresAt, err := h.pins.LoginWithPin(c.Context(), req.Pin)
	if err != nil {
		return mapPairingError(err)
	}

	return c.JSON(fiber.Map{
		"data": dto.AuthResponse{AccessToken: token, TokenType: "bearer", ExpiresAt: expiresAt},
	})
}

func mapPairingError(err error) error {
	switch {
	case errors.Is(err, pin.ErrUserNotFound):
		return apperrors.NewNotFound("user", nil)
	case errors.Is(err, pin.ErrPinNotFound):
		return apperrors.NewNotFound("pin", nil)
	case errors.Is(err, pin.ErrPinExpired):
		return apperrors.NewGone("pin expired")
	case errors.Is(err, pin.ErrAllocationExhausted):
		return apperrors.NewServiceUnavailable("pin allocation exhausted")
	default:
		return err
	}
}
