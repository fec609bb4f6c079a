package models

import "time"

type WidgetType string

const (
	WidgetDrag  WidgetType = "drag"
	WidgetMark  WidgetType = "mark"
	WidgetMatch WidgetType = "match"
	WidgetSort  WidgetType = "sort"
	WidgetSpell WidgetType = "spell"
	WidgetQuiz  WidgetType = "quiz"
)

// AllWidgetTypes lists the widget kinds in a stable order.
var AllWidgetTypes = []WidgetType{
	WidgetDrag,
	WidgetMark,
	WidgetMatch,
	WidgetSort,
	WidgetSpell,
	WidgetQuiz,
}

func (t WidgetType) IsValid() bool {
	for _, known := range AllWidgetTypes {
		if known == t {
			return true
		}
	}
	return false
}

// QuizType is the widget tag carried in lesson history reports.
type QuizType string

const (
	QuizTypeDrag  QuizType = "DRAG"
	QuizTypeMark  QuizType = "MARK"
	QuizTypeMatch QuizType = "MATCH"
	QuizTypeSort  QuizType = "SORT"
	QuizTypeSpell QuizType = "SPELL"
	QuizTypeAI    QuizType = "AI"
)

func (t WidgetType) QuizType() QuizType {
	switch t {
	case WidgetDrag:
		return QuizTypeDrag
	case WidgetMark:
		return QuizTypeMark
	case WidgetMatch:
		return QuizTypeMatch
	case WidgetSort:
		return QuizTypeSort
	case WidgetSpell:
		return QuizTypeSpell
	case WidgetQuiz:
		return QuizTypeAI
	default:
		return QuizType(t)
	}
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Score is a correct/total pair as shown to the learner.
type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// SessionMeta identifies who is interacting with which widget.
type SessionMeta struct {
	WidgetID  string    `json:"widgetId"`
	UserID    string    `json:"userId"`
	LessonID  string    `json:"lessonId"`
	Tenant    string    `json:"tenant"`
	StartedAt time.Time `json:"startedAt"`
}
