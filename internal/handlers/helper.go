package handlers

import (
	"net/http"
	"strings"

	"github.com/SAP-F-2025/widget-service/internal/models"
	"github.com/gin-gonic/gin"
)

func ParseStringIDParam(c *gin.Context, param string) string {
	idStr := strings.TrimSpace(c.Param(param))
	if idStr == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "ID cannot be empty",
			Code:    CodeValidation,
		})
		return ""
	}
	return idStr
}

// ParseWidgetTypeParam answers 400 for anything but the six widget kinds.
func ParseWidgetTypeParam(c *gin.Context, param string) (models.WidgetType, bool) {
	kind := models.WidgetType(strings.ToLower(strings.TrimSpace(c.Param(param))))
	if !kind.IsValid() {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid widget type",
			Details: models.AllWidgetTypes,
			Code:    CodeValidation,
		})
		return "", false
	}
	return kind, true
}

// resolveUserID prefers the authenticated identity over a caller supplied id.
func resolveUserID(c *gin.Context, supplied string) string {
	if id := c.GetString(userIDKey); id != "" {
		return id
	}
	return supplied
}
