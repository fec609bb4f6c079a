package handlers

import (
	"errors"
	"net/http"

	apperrors "github.com/SAP-F-2025/widget-service/internal/errors"
	"github.com/SAP-F-2025/widget-service/internal/services"
	"github.com/SAP-F-2025/widget-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// ===== COMMON RESPONSE STRUCTURES =====

type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Code    string      `json:"code,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

const (
	CodeValidation   = "VALIDATION_FAILED"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeBusinessRule = "BUSINESS_RULE"
	CodeUpstream     = "UPSTREAM_FAILED"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeInternal     = "INTERNAL_ERROR"
)

// ===== BASE HANDLER STRUCT =====

// BaseHandler carries the request-scoped logging helpers every handler shares.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) log(c *gin.Context) utils.Logger {
	return utils.GetLoggerFromContext(c, h.logger)
}

func (h *BaseHandler) requestFields(c *gin.Context, extra []interface{}) []interface{} {
	fields := []interface{}{
		"request_id", utils.GetRequestID(c),
		"user_id", c.GetString(userIDKey),
	}
	return append(fields, extra...)
}

func (h *BaseHandler) LogRequest(c *gin.Context, message string, additionalFields ...interface{}) {
	h.log(c).Info(message, h.requestFields(c, additionalFields)...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, message string, additionalFields ...interface{}) {
	h.log(c).LogError(err, message, h.requestFields(c, additionalFields)...)
}

func (h *BaseHandler) LogWarn(c *gin.Context, message string, additionalFields ...interface{}) {
	h.log(c).Warn(message, h.requestFields(c, additionalFields)...)
}

func (h *BaseHandler) LogDebug(c *gin.Context, message string, additionalFields ...interface{}) {
	h.log(c).Debug(message, h.requestFields(c, additionalFields)...)
}

// RespondWithError sends a consistent error response and logs it. Server
// side failures log at error level, client mistakes at warn.
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, code, message string, err error, details ...interface{}) {
	resp := ErrorResponse{Message: message, Code: code}
	if len(details) > 0 {
		resp.Details = details[0]
	}

	if err != nil && statusCode >= http.StatusInternalServerError {
		h.LogError(c, err, message, "status_code", statusCode)
	} else {
		h.LogWarn(c, message, "status_code", statusCode, "error", err)
	}

	c.AbortWithStatusJSON(statusCode, resp)
}

func (h *BaseHandler) RespondWithSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, SuccessResponse{Message: message, Data: data})
}

// RespondWithServiceError maps service errors onto HTTP statuses.
func (h *BaseHandler) RespondWithServiceError(c *gin.Context, err error) {
	status, code, message, details := mapServiceError(err)
	h.RespondWithError(c, status, code, message, err, details)
}

func mapServiceError(err error) (int, string, string, interface{}) {
	var validationErrors apperrors.ValidationErrors
	if errors.As(err, &validationErrors) {
		return http.StatusBadRequest, CodeValidation, "Validation failed", validationErrors
	}
	var validationError *apperrors.ValidationError
	if errors.As(err, &validationError) {
		return http.StatusBadRequest, CodeValidation, "Validation failed", apperrors.ValidationErrors{*validationError}
	}

	var businessRuleError *services.BusinessRuleError
	if errors.As(err, &businessRuleError) {
		return http.StatusUnprocessableEntity, CodeBusinessRule, businessRuleError.Message, map[string]interface{}{
			"rule":    businessRuleError.Rule,
			"context": businessRuleError.Context,
		}
	}

	switch {
	case services.IsNotFound(err):
		return http.StatusNotFound, CodeNotFound, "Resource not found", err.Error()
	case services.IsValidation(err):
		return http.StatusBadRequest, CodeValidation, "Invalid request", err.Error()
	case services.IsConflict(err):
		return http.StatusConflict, CodeConflict, "Widget state does not allow this action", err.Error()
	case services.IsBusinessRule(err):
		return http.StatusUnprocessableEntity, CodeBusinessRule, err.Error(), nil
	case services.IsUnauthorized(err):
		return http.StatusUnauthorized, CodeUnauthorized, "Unauthorized", nil
	case services.IsUpstream(err):
		return http.StatusBadGateway, CodeUpstream, err.Error(), nil
	}
	return http.StatusInternalServerError, CodeInternal, "Internal server error", nil
}

// bindJSON decodes the body into req; on failure it answers 400 and returns false.
func (h *BaseHandler) bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "Invalid request payload", err, err.Error())
		return false
	}
	return true
}
