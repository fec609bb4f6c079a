package repositories

import (
	"context"

	"github.com/SAP-F-2025/widget-service/internal/models"
)

// EvaluationLogRepository stores the audit trail of AI evaluation attempts
type EvaluationLogRepository interface {
	Create(ctx context.Context, log *models.EvaluationLog) error
	GetByID(ctx context.Context, id string) (*models.EvaluationLog, error)
	List(ctx context.Context, filters EvaluationLogFilters) ([]*models.EvaluationLog, int64, error)
}

// WidgetHistoryRepository stores one row per learner and completed widget
type WidgetHistoryRepository interface {
	// Upsert inserts the row or, when the learner already finished the widget,
	// overwrites the marks and bumps the attempt counter.
	Upsert(ctx context.Context, history *models.WidgetHistory) error
	Get(ctx context.Context, key HistoryKey) (*models.WidgetHistory, error)
	Exists(ctx context.Context, key HistoryKey) (bool, error)
	ListByLesson(ctx context.Context, tenant, userID, lessonID string) ([]*models.WidgetHistory, error)
}
