package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/widget-service/internal/content"
	"github.com/SAP-F-2025/widget-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type WidgetHandler struct {
	BaseHandler
	loader ContentDecoder
}

func NewWidgetHandler(loader ContentDecoder, logger utils.Logger) *WidgetHandler {
	return &WidgetHandler{
		BaseHandler: NewBaseHandler(logger),
		loader:      loader,
	}
}

// GetContent decodes the content query parameter for a widget type.
// Undecodable content is not an error: the response carries the sample and
// status "fallback_used".
// @Router /widgets/{type}/content [get]
func (h *WidgetHandler) GetContent(c *gin.Context) {
	kind, ok := ParseWidgetTypeParam(c, "type")
	if !ok {
		return
	}

	result := h.loader.DecodeWithSentences(kind, c.Query("content"), c.Query("sentences"))
	if result.FallbackUsed() {
		h.LogDebug(c, "Serving sample content", "widget_type", kind, "reason", result.Reason)
	}

	h.RespondWithSuccess(c, http.StatusOK, "Content decoded", result)
}

// GetSample returns the built-in content of a widget type.
func (h *WidgetHandler) GetSample(c *gin.Context) {
	kind, ok := ParseWidgetTypeParam(c, "type")
	if !ok {
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Sample content", content.Sample(kind))
}
