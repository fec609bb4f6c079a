package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/widget-service/internal/models"
	"github.com/SAP-F-2025/widget-service/internal/repositories"
	"github.com/SAP-F-2025/widget-service/internal/services"
	"github.com/SAP-F-2025/widget-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type EvaluationHandler struct {
	BaseHandler
	evaluator AnswerEvaluator
}

func NewEvaluationHandler(evaluator AnswerEvaluator, logger utils.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		BaseHandler: NewBaseHandler(logger),
		evaluator:   evaluator,
	}
}

type SkippableResponse struct {
	Skippable bool `json:"skippable"`
}

// Evaluate judges a free-text answer against the reference answer
// @Summary Evaluate answer
// @Description Asks the AI evaluator whether the learner's answer is acceptable
// @Tags evaluations
// @Accept json
// @Produce json
// @Param request body models.EvaluationRequest true "Question, answers and lesson context"
// @Success 200 {object} SuccessResponse{data=models.EvaluationResult}
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /evaluations [post]
func (h *EvaluationHandler) Evaluate(c *gin.Context) {
	var req models.EvaluationRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.UserID = resolveUserID(c, req.UserID)
	if req.Tenant == "" {
		req.Tenant = services.DefaultTenant
	}

	h.LogRequest(c, "Evaluating answer", "widget_id", req.WidgetID, "lesson_id", req.LessonID)

	result, err := h.evaluator.Evaluate(c.Request.Context(), req)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Answer evaluated", result)
}

// IsSkippable tells whether the learner already completed this widget.
// @Router /evaluations/skippable [get]
func (h *EvaluationHandler) IsSkippable(c *gin.Context) {
	key := repositories.HistoryKey{
		Tenant:   c.DefaultQuery("tenant", services.DefaultTenant),
		UserID:   resolveUserID(c, c.Query("userId")),
		LessonID: c.Query("lessonId"),
		WidgetID: c.Query("widgetId"),
	}
	if key.WidgetID == "" {
		h.RespondWithServiceError(c, services.NewValidationError("widgetId", "widgetId is required", ""))
		return
	}

	skippable, err := h.evaluator.IsSkippable(c.Request.Context(), key)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "History checked", SkippableResponse{Skippable: skippable})
}
