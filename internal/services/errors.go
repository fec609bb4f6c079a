package services

import (
	"errors"
	"fmt"

	apperrors "github.com/SAP-F-2025/widget-service/internal/errors"
	"github.com/SAP-F-2025/widget-service/internal/repositories"
	"github.com/SAP-F-2025/widget-service/internal/widgets"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrBadRequest       = errors.New("bad request")
	ErrConflict         = errors.New("resource conflict")

	// Session errors
	ErrSessionNotFound   = errors.New("session not found")
	ErrSessionClosed     = errors.New("session is closed")
	ErrUnknownAction     = errors.New("unknown action for widget")
	ErrInvalidWidgetType = errors.New("invalid widget type")
	ErrWidgetLocked      = errors.New("widget is locked")
	ErrAlreadyValidated  = errors.New("widget already validated")
	ErrNotFinished       = errors.New("widget cannot be finished yet")

	// AI errors
	ErrEvaluationFailed  = errors.New("answer evaluation failed")
	ErrSpeechUnavailable = errors.New("failed to generate audio")

	// Import errors
	ErrUnsupportedFile = errors.New("unsupported file format")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

type BusinessRuleError struct {
	Rule    string                 `json:"rule"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (bre *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule violation (%s): %s", bre.Rule, bre.Message)
}

// ===== ERROR HELPERS =====

func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

func NewBusinessRuleError(rule, message string, context map[string]interface{}) *BusinessRuleError {
	return &BusinessRuleError{
		Rule:    rule,
		Message: message,
		Context: context,
	}
}

// translateWidgetError lifts state machine sentinels into service errors.
func translateWidgetError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, widgets.ErrLocked), errors.Is(err, widgets.ErrPending):
		return fmt.Errorf("%w: %v", ErrWidgetLocked, err)
	case errors.Is(err, widgets.ErrAlreadyValidated):
		return ErrAlreadyValidated
	case errors.Is(err, widgets.ErrClosed):
		return ErrSessionClosed
	case errors.Is(err, widgets.ErrUnknownItem):
		return NewValidationError("item_id", err.Error(), nil)
	case errors.Is(err, widgets.ErrEmptyInput):
		return NewValidationError("answer", err.Error(), "")
	case errors.Is(err, widgets.ErrNotInteractive):
		return NewBusinessRuleError("not_interactive", err.Error(), nil)
	}
	return err
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, repositories.ErrNotFound)
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrBadRequest) ||
		errors.Is(err, ErrUnknownAction) ||
		errors.Is(err, ErrInvalidWidgetType) ||
		errors.Is(err, ErrUnsupportedFile) {
		return true
	}
	var ve apperrors.ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *apperrors.ValidationError
	return errors.As(err, &single)
}

// IsBusinessRule checks if error represents a business rule violation
func IsBusinessRule(err error) bool {
	var bre *BusinessRuleError
	return errors.As(err, &bre) || errors.Is(err, ErrNotFinished)
}

// IsConflict checks if error represents a state conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrWidgetLocked) ||
		errors.Is(err, ErrAlreadyValidated) ||
		errors.Is(err, ErrSessionClosed)
}

// IsUpstream reports failures of the AI provider.
func IsUpstream(err error) bool {
	return errors.Is(err, ErrEvaluationFailed) || errors.Is(err, ErrSpeechUnavailable)
}
