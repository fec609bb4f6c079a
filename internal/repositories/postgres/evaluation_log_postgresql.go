package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/widget-service/internal/models"
	"github.com/SAP-F-2025/widget-service/internal/repositories"
)

const defaultListLimit = 50

type EvaluationLogPostgreSQL struct {
	db *gorm.DB
}

func NewEvaluationLogPostgreSQL(db *gorm.DB) repositories.EvaluationLogRepository {
	return &EvaluationLogPostgreSQL{db: db}
}

func (e EvaluationLogPostgreSQL) Create(ctx context.Context, log *models.EvaluationLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	return e.db.WithContext(ctx).Create(log).Error
}

func (e EvaluationLogPostgreSQL) GetByID(ctx context.Context, id string) (*models.EvaluationLog, error) {
	var log models.EvaluationLog
	if err := e.db.WithContext(ctx).First(&log, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

func (e EvaluationLogPostgreSQL) List(ctx context.Context, filters repositories.EvaluationLogFilters) ([]*models.EvaluationLog, int64, error) {
	var logs []*models.EvaluationLog
	var total int64

	// apply filter first
	query := e.db.WithContext(ctx).Model(&models.EvaluationLog{})
	query = e.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if err := query.Order("created_at DESC").Order("try_index DESC").
		Limit(limit).Offset(filters.Offset).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

func (e EvaluationLogPostgreSQL) applyFilters(query *gorm.DB, filters repositories.EvaluationLogFilters) *gorm.DB {
	if filters.UserID != "" {
		query = query.Where("user_id = ?", filters.UserID)
	}
	if filters.LessonID != "" {
		query = query.Where("lesson_id = ?", filters.LessonID)
	}
	if filters.WidgetID != "" {
		query = query.Where("widget_id = ?", filters.WidgetID)
	}
	if filters.Outcome != nil {
		query = query.Where("outcome = ?", *filters.Outcome)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}
	return query
}
