package repositories

import (
	"errors"
	"time"

	"github.com/SAP-F-2025/widget-service/internal/models"
)

var ErrNotFound = errors.New("record not found")

// ===== SHARED FILTER STRUCTS =====

type EvaluationLogFilters struct {
	UserID   string                    `json:"user_id"`
	LessonID string                    `json:"lesson_id"`
	WidgetID string                    `json:"widget_id"`
	Outcome  *models.EvaluationOutcome `json:"outcome"`
	DateFrom *time.Time                `json:"date_from"`
	DateTo   *time.Time                `json:"date_to"`
	Limit    int                       `json:"limit"`
	Offset   int                       `json:"offset"`
}

// HistoryKey identifies a learner's widget inside a lesson
type HistoryKey struct {
	Tenant   string `json:"tenant"`
	UserID   string `json:"user_id"`
	LessonID string `json:"lesson_id"`
	WidgetID string `json:"widget_id"`
}
