package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/widget-service/internal/services"
	"github.com/SAP-F-2025/widget-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	BaseHandler
	sessions SessionManager
}

func NewSessionHandler(sessions SessionManager, logger utils.Logger) *SessionHandler {
	return &SessionHandler{
		BaseHandler: NewBaseHandler(logger),
		sessions:    sessions,
	}
}

type ResetSessionRequest struct {
	Content string `json:"content"`
}

// CreateSession mounts a widget
// @Summary Create widget session
// @Tags sessions
// @Accept json
// @Produce json
// @Param session body services.CreateSessionRequest true "Widget type, content and learner identity"
// @Success 201 {object} SuccessResponse{data=services.SessionView}
// @Failure 400 {object} ErrorResponse
// @Router /sessions [post]
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req services.CreateSessionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.UserID = resolveUserID(c, req.UserID)

	h.LogRequest(c, "Creating widget session", "widget_type", req.WidgetType, "widget_id", req.WidgetID)

	view, err := h.sessions.Create(c.Request.Context(), &req)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Session created", view)
}

// GetSession returns the current snapshot
// @Summary Get widget session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SuccessResponse{data=services.SessionView}
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	view, err := h.sessions.Get(c.Request.Context(), id)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Session retrieved", view)
}

// ApplyAction feeds one learner event to the session's state machine.
// @Router /sessions/{id}/actions [post]
func (h *SessionHandler) ApplyAction(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req services.ActionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.LogDebug(c, "Applying action", "session_id", id, "action", req.Type)

	result, err := h.sessions.Apply(c.Request.Context(), id, &req)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Action applied", result)
}

// ResetSession replaces the session's content and starts over.
func (h *SessionHandler) ResetSession(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req ResetSessionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "Resetting widget session", "session_id", id)

	view, err := h.sessions.Reset(c.Request.Context(), id, req.Content)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Session reset", view)
}

// CompleteSession reports the result to the host and returns the marker query.
// @Summary Complete widget session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SuccessResponse{data=models.CompletionResponse}
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /sessions/{id}/complete [post]
func (h *SessionHandler) CompleteSession(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Completing widget session", "session_id", id)

	resp, err := h.sessions.Complete(c.Request.Context(), id)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	if !resp.Reported {
		h.LogWarn(c, "Completion not delivered to host", "session_id", id)
	}

	h.RespondWithSuccess(c, http.StatusOK, "Session completed", resp)
}

func (h *SessionHandler) CloseSession(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	if err := h.sessions.Close(c.Request.Context(), id); err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
