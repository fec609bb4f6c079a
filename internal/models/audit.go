package models

import (
	"time"

	"gorm.io/datatypes"
)

type EvaluationOutcome string

const (
	EvaluationAccepted EvaluationOutcome = "accepted"
	EvaluationFeedback EvaluationOutcome = "feedback"
	EvaluationFailed   EvaluationOutcome = "failed"
)

// EvaluationLog is one AI evaluation attempt, successful or not.
type EvaluationLog struct {
	ID       string `json:"id" gorm:"primaryKey;size:36"`
	TryIndex int    `json:"try_index" gorm:"not null"`

	// Actor
	UserID   string `json:"user_id" gorm:"size:255;index"`
	Tenant   string `json:"tenant" gorm:"size:100;index"`
	LessonID string `json:"lesson_id" gorm:"size:255;index"`
	WidgetID string `json:"widget_id" gorm:"size:255;index"`

	// Request
	Model   string            `json:"model" gorm:"size:100"`
	Prompt  string            `json:"prompt" gorm:"type:text"`
	Request datatypes.JSON    `json:"request" gorm:"type:jsonb"`
	Outcome EvaluationOutcome `json:"outcome" gorm:"size:20;index"`

	AIResponse  string `json:"ai_response" gorm:"type:text"`
	Error       string `json:"error" gorm:"type:text"`
	TimeTakenMs int64  `json:"time_taken_ms"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (EvaluationLog) TableName() string {
	return "evaluation_logs"
}

// WidgetHistory is one completed widget per learner.
type WidgetHistory struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	Tenant        string        `json:"tenant" gorm:"size:100;uniqueIndex:idx_widget_history_key"`
	UserID        string        `json:"user_id" gorm:"size:255;not null;uniqueIndex:idx_widget_history_key"`
	LessonID      string        `json:"lesson_id" gorm:"size:255;uniqueIndex:idx_widget_history_key"`
	WidgetID      string        `json:"widget_id" gorm:"size:255;not null;uniqueIndex:idx_widget_history_key"`
	WidgetType    WidgetType    `json:"widget_type" gorm:"size:20;not null"`
	QuizType      QuizType      `json:"quiz_type" gorm:"size:20"`
	Level         string        `json:"level" gorm:"size:20;default:beginner"`
	TotalMarks    float64       `json:"total_marks"`
	ObtainedMarks float64       `json:"obtained_marks"`
	PassingMarks  float64       `json:"passing_marks"`
	Status        HistoryStatus `json:"status" gorm:"size:10;index"`
	TimeSpentMs   int64         `json:"time_spent_ms"`
	Attempts      int           `json:"attempts" gorm:"default:1"`

	Metadata datatypes.JSON `json:"metadata" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (WidgetHistory) TableName() string {
	return "widget_histories"
}
