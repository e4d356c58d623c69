package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/study-service/internal/api/dto"
	"github.com/spec-kit/study-service/internal/auth"
	"github.com/spec-kit/study-service/internal/service"
	apperrors "github.com/spec-kit/study-service/pkg/util"
)

// StudiesHandler exposes the study session and focus data endpoints.
type StudiesHandler struct {
	studies *service.StudyService
}

// NewStudiesHandler constructs handler.
func NewStudiesHandler(studies *service.StudyService) *StudiesHandler {
	return &StudiesHandler{studies: studies}
}

// StartSession handles POST /study/session/start.
func (h *StudiesHandler) StartSession(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.StartSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	session, err := h.studies.StartSession(c.Context(), principal.SubjectID, req.Subject, req.StartTime)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewSessionResponse(session)})
}

// EndSession handles POST /study/session/end.
func (h *StudiesHandler) EndSession(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CompleteSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	session, err := h.studies.CompleteSession(c.Context(), principal.SubjectID, req.SessionID, req.EndTime, req.AvgFocus)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSessionResponse(session)})
}

// RecordData handles POST /study/data.
func (h *StudiesHandler) RecordData(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.RecordDataRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	data, err := h.studies.RecordData(c.Context(), principal.SubjectID, req.SessionID, req.PpgValue, req.FocusScore, req.Time)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewDataResponse(data)})
}

// ListSessions handles GET /study/session.
func (h *StudiesHandler) ListSessions(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	page := c.QueryInt("page", 1)
	perPage := c.QueryInt("items_per_page", 10)

	total, sessions, err := h.studies.ListSessions(c.Context(), principal.SubjectID, page, perPage)
	if err != nil {
		return err
	}

	resp := dto.SessionsPageResponse{TotalCount: total, Page: page, Sessions: make([]dto.SessionResponse, 0, len(sessions))}
	for _, session := range sessions {
		resp.Sessions = append(resp.Sessions, dto.NewSessionResponse(session))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// ListSessionData handles GET /study/data/:session_id.
func (h *StudiesHandler) ListSessionData(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	sessionID := c.Params("session_id")
	datas, err := h.studies.ListSessionData(c.Context(), principal.SubjectID, sessionID)
	if err != nil {
		return err
	}

	resp := dto.SessionDataResponse{SessionID: sessionID, Data: make([]dto.DataResponse, 0, len(datas))}
	for _, data := range datas {
		resp.Data = append(resp.Data, dto.NewDataResponse(data))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// DeleteSession handles DELETE /study/session/:session_id.
func (h *StudiesHandler) DeleteSession(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.studies.DeleteSession(c.Context(), principal.SubjectID, c.Params("session_id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
