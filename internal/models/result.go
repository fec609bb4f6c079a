package models

import "time"

type HistoryStatus string

const (
	HistoryPass HistoryStatus = "pass"
	HistoryFail HistoryStatus = "fail"
)

// WidgetResult is what a widget reports to the host when the learner finishes it.
type WidgetResult struct {
	WidgetID      string        `json:"widget_id" validate:"required"`
	UserID        string        `json:"user_id"`
	LessonID      string        `json:"lesson_id"`
	Tenant        string        `json:"tenant"`
	WidgetType    WidgetType    `json:"widget_type" validate:"required,widget_type"`
	QuizType      QuizType      `json:"quiz_type"`
	TotalMarks    float64       `json:"total_marks" validate:"gte=0"`
	ObtainedMarks float64       `json:"obtained_marks" validate:"gte=0"`
	PassingMarks  float64       `json:"passing_marks"`
	Passed        bool          `json:"passed"`
	TimeSpent     time.Duration `json:"time_spent"`
	// Incorrect is the wrong-attempt counter; only the match widget uses it.
	Incorrect *int `json:"incorrect,omitempty"`
}

func (r WidgetResult) Status() HistoryStatus {
	if r.Passed {
		return HistoryPass
	}
	return HistoryFail
}

type CompletionResponse struct {
	Result WidgetResult `json:"result"`
	Marker string       `json:"marker"`
	// Reported is false when the host bridge could not be reached.
	Reported bool `json:"reported"`
}
