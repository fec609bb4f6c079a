package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SAP-F-2025/widget-service/internal/models"
	"github.com/SAP-F-2025/widget-service/internal/repositories"
)

type WidgetHistoryPostgreSQL struct {
	db *gorm.DB
}

func NewWidgetHistoryPostgreSQL(db *gorm.DB) repositories.WidgetHistoryRepository {
	return &WidgetHistoryPostgreSQL{db: db}
}

func (w WidgetHistoryPostgreSQL) Upsert(ctx context.Context, history *models.WidgetHistory) error {
	if history.Attempts == 0 {
		history.Attempts = 1
	}
	return w.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tenant"}, {Name: "user_id"}, {Name: "lesson_id"}, {Name: "widget_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"widget_type":    history.WidgetType,
			"quiz_type":      history.QuizType,
			"total_marks":    history.TotalMarks,
			"obtained_marks": history.ObtainedMarks,
			"passing_marks":  history.PassingMarks,
			"status":         history.Status,
			"time_spent_ms":  history.TimeSpentMs,
			"metadata":       history.Metadata,
			"attempts":       gorm.Expr("widget_histories.attempts + 1"),
			"updated_at":     gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(history).Error
}

func (w WidgetHistoryPostgreSQL) Get(ctx context.Context, key repositories.HistoryKey) (*models.WidgetHistory, error) {
	var history models.WidgetHistory
	if err := w.byKey(ctx, key).First(&history).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &history, nil
}

func (w WidgetHistoryPostgreSQL) Exists(ctx context.Context, key repositories.HistoryKey) (bool, error) {
	var count int64
	if err := w.byKey(ctx, key).Model(&models.WidgetHistory{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (w WidgetHistoryPostgreSQL) ListByLesson(ctx context.Context, tenant, userID, lessonID string) ([]*models.WidgetHistory, error) {
	var histories []*models.WidgetHistory
	if err := w.db.WithContext(ctx).
		Where("tenant = ? AND user_id = ? AND lesson_id = ?", tenant, userID, lessonID).
		Order("created_at ASC").
		Find(&histories).Error; err != nil {
		return nil, err
	}
	return histories, nil
}

func (w WidgetHistoryPostgreSQL) byKey(ctx context.Context, key repositories.HistoryKey) *gorm.DB {
	return w.db.WithContext(ctx).Where("tenant = ? AND user_id = ? AND lesson_id = ? AND widget_id = ?",
		key.Tenant, key.UserID, key.LessonID, key.WidgetID)
}
