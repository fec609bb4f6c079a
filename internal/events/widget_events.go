package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/SAP-F-2025/widget-service/internal/models"
)

type EventType string

const (
	EventWidgetCompleted EventType = "widget.completed"
)

const (
	EventSource  = "widget-service"
	EventVersion = "1.0"
)

// WidgetEvent is the envelope the host bridge receives.
type WidgetEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      WidgetCompletedData    `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// WidgetCompletedData mirrors the lesson-history payload of a finished widget.
type WidgetCompletedData struct {
	WidgetID      string            `json:"widgetId"`
	UserID        string            `json:"userId,omitempty"`
	LessonID      string            `json:"lessonId,omitempty"`
	Tenant        string            `json:"tenant,omitempty"`
	WidgetType    models.WidgetType `json:"widgetType"`
	QuizType      models.QuizType   `json:"quizType"`
	TotalMarks    float64           `json:"totalMarks"`
	ObtainedMarks float64           `json:"obtainedMarks"`
	PassingMarks  float64           `json:"passingMarks"`
	Status        string            `json:"status"`
	TimeSpentMs   int64             `json:"timeSpent"`
	Incorrect     *int              `json:"incorrect,omitempty"`
}

// NewWidgetCompletedEvent wraps result in a fresh envelope.
func NewWidgetCompletedEvent(result models.WidgetResult, at time.Time) *WidgetEvent {
	return &WidgetEvent{
		ID:        uuid.NewString(),
		Type:      EventWidgetCompleted,
		Timestamp: at.UTC(),
		Source:    EventSource,
		Version:   EventVersion,
		Data: WidgetCompletedData{
			WidgetID:      result.WidgetID,
			UserID:        result.UserID,
			LessonID:      result.LessonID,
			Tenant:        result.Tenant,
			WidgetType:    result.WidgetType,
			QuizType:      result.QuizType,
			TotalMarks:    result.TotalMarks,
			ObtainedMarks: result.ObtainedMarks,
			PassingMarks:  result.PassingMarks,
			Status:        string(result.Status()),
			TimeSpentMs:   result.TimeSpent.Milliseconds(),
			Incorrect:     result.Incorrect,
		},
	}
}
