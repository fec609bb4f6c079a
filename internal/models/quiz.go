package models

type FeedbackType string

const (
	FeedbackCorrect   FeedbackType = "correct"
	FeedbackIncorrect FeedbackType = "incorrect"
	FeedbackError     FeedbackType = "error"
)

// QuizContent is immutable once loaded.
type QuizContent struct {
	Question string `json:"question" validate:"required,not_blank"`
	Answer   string `json:"answer" validate:"required,not_blank"`
	Subject  string `json:"subject"`
	Lesson   string `json:"lesson"`
}

type EvaluationResult struct {
	Type     FeedbackType `json:"type"`
	Feedback string       `json:"feedback"`
}

type QuizSnapshot struct {
	Question     string       `json:"question"`
	Subject      string       `json:"subject"`
	Lesson       string       `json:"lesson"`
	Answer       string       `json:"answer"`
	Pending      bool         `json:"pending"`
	Progress     float64      `json:"progress"`
	Feedback     string       `json:"feedback,omitempty"`
	FeedbackType FeedbackType `json:"feedbackType,omitempty"`
	TryCount     int          `json:"tryCount"`
	Skippable    bool         `json:"skippable"`
	CanFinish    bool         `json:"canFinish"`
}

// EvaluationRequest is everything the AI evaluator needs to judge one answer.
type EvaluationRequest struct {
	UserID          string `json:"user_id"`
	LessonID        string `json:"lesson_id"`
	WidgetID        string `json:"widget_id"`
	Tenant          string `json:"tenant"`
	Subject         string `json:"subject"`
	Lesson          string `json:"lesson"`
	Question        string `json:"question" validate:"required,not_blank"`
	UserAnswer      string `json:"user_answer" validate:"required,not_blank"`
	ReferenceAnswer string `json:"reference_answer" validate:"required,not_blank"`
}
