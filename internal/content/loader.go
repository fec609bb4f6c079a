package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/widget-service/internal/models"
	"github.com/SAP-F-2025/widget-service/internal/validator"
	"github.com/xeipuuv/gojsonschema"
)

type Status string

var errSentences = errors.New("sentences: need at least two entries")

const (
	StatusValid        Status = "valid"
	StatusFallbackUsed Status = "fallback_used"
)

const (
	ReasonAbsent  = "absent"
	ReasonSchema  = "schema"
	ReasonDecode  = "decode"
	ReasonInvalid = "invalid"
	ReasonUnknown = "unknown_widget"
)

// Result is the outcome of decoding one content payload. Value is always a
// usable pointer to the typed content: either the decoded payload or the
// widget's built-in sample.
type Result struct {
	Kind   models.WidgetType `json:"kind"`
	Status Status            `json:"status"`
	Value  interface{}       `json:"value"`
	Reason string            `json:"reason,omitempty"`
	Detail string            `json:"detail,omitempty"`
}

func (r Result) FallbackUsed() bool {
	return r.Status == StatusFallbackUsed
}

// Loader turns the raw content query parameter into typed widget content.
type Loader struct {
	schemas   map[models.WidgetType]*gojsonschema.Schema
	validator *validator.ContentValidator
	logger    *slog.Logger
}

func NewLoader(v *validator.Validator, logger *slog.Logger) (*Loader, error) {
	schemas, err := compileSchemas()
	if err != nil {
		return nil, err
	}
	return &Loader{
		schemas:   schemas,
		validator: v.Content(),
		logger:    logger,
	}, nil
}

// Decode never fails: anything that does not yield valid content for kind
// degrades to the built-in sample.
func (l *Loader) Decode(kind models.WidgetType, raw string) Result {
	if !kind.IsValid() {
		return Result{Kind: kind, Status: StatusFallbackUsed, Reason: ReasonUnknown}
	}
	if strings.TrimSpace(raw) == "" {
		return l.fallback(kind, ReasonAbsent, nil)
	}

	if err := checkSchema(l.schemas[kind], []byte(raw)); err != nil {
		return l.fallback(kind, ReasonSchema, err)
	}

	value := newContent(kind)
	if err := json.Unmarshal([]byte(raw), value); err != nil {
		return l.fallback(kind, ReasonDecode, err)
	}

	ApplyDefaults(kind, value)

	if err := l.validator.ValidateContent(kind, value); err != nil {
		return l.fallback(kind, ReasonInvalid, err)
	}

	return Result{Kind: kind, Status: StatusValid, Value: value}
}

// DecodeWithSentences is Decode plus the legacy sort input: when a sort
// widget has no content, the sentences parameter is parsed into a list under
// the default prompt.
func (l *Loader) DecodeWithSentences(kind models.WidgetType, raw, sentences string) Result {
	if kind != models.WidgetSort || strings.TrimSpace(raw) != "" || strings.TrimSpace(sentences) == "" {
		return l.Decode(kind, raw)
	}

	list, ok := ParseSentences(sentences)
	if !ok {
		return l.fallback(kind, ReasonInvalid, errSentences)
	}

	value := &models.SortContent{Prompt: DefaultSortPrompt, Sentences: list}
	if err := l.validator.ValidateContent(kind, value); err != nil {
		return l.fallback(kind, ReasonInvalid, err)
	}
	return Result{Kind: kind, Status: StatusValid, Value: value}
}

func (l *Loader) fallback(kind models.WidgetType, reason string, err error) Result {
	res := Result{Kind: kind, Status: StatusFallbackUsed, Value: Sample(kind), Reason: reason}
	if err != nil {
		res.Detail = err.Error()
	}
	l.logger.Debug("Content fallback used",
		"widget_type", kind,
		"reason", reason,
		"detail", res.Detail)
	return res
}

func newContent(kind models.WidgetType) interface{} {
	switch kind {
	case models.WidgetDrag:
		return &models.DragContent{}
	case models.WidgetMark:
		return &models.MarkContent{}
	case models.WidgetMatch:
		return &models.MatchContent{}
	case models.WidgetSort:
		return &models.SortContent{}
	case models.WidgetSpell:
		return &models.SpellContent{}
	case models.WidgetQuiz:
		return &models.QuizContent{}
	default:
		return nil
	}
}

// ApplyDefaults fills optional display fields left blank in value from the
// widget sample.
func ApplyDefaults(kind models.WidgetType, value interface{}) {
	switch c := value.(type) {
	case *models.MarkContent:
		if strings.TrimSpace(c.Prompt) == "" {
			c.Prompt = DefaultMarkPrompt
		}
	case *models.MatchContent:
		if strings.TrimSpace(c.Prompt) == "" {
			c.Prompt = DefaultMatchPrompt
		}
	case *models.SortContent:
		if strings.TrimSpace(c.Prompt) == "" {
			c.Prompt = DefaultSortPrompt
		}
	case *models.QuizContent:
		if strings.TrimSpace(c.Subject) == "" {
			c.Subject = DefaultSubject
		}
		if strings.TrimSpace(c.Lesson) == "" {
			c.Lesson = DefaultLesson
		}
	}
}

func (l *Loader) DecodeDrag(raw string) (*models.DragContent, Result) {
	res := l.Decode(models.WidgetDrag, raw)
	return res.Value.(*models.DragContent), res
}

func (l *Loader) DecodeMark(raw string) (*models.MarkContent, Result) {
	res := l.Decode(models.WidgetMark, raw)
	return res.Value.(*models.MarkContent), res
}

func (l *Loader) DecodeMatch(raw string) (*models.MatchContent, Result) {
	res := l.Decode(models.WidgetMatch, raw)
	return res.Value.(*models.MatchContent), res
}

func (l *Loader) DecodeSort(raw string) (*models.SortContent, Result) {
	res := l.Decode(models.WidgetSort, raw)
	return res.Value.(*models.SortContent), res
}

func (l *Loader) DecodeSpell(raw string) (*models.SpellContent, Result) {
	res := l.Decode(models.WidgetSpell, raw)
	return res.Value.(*models.SpellContent), res
}

func (l *Loader) DecodeQuiz(raw string) (*models.QuizContent, Result) {
	res := l.Decode(models.WidgetQuiz, raw)
	return res.Value.(*models.QuizContent), res
}

// Encode renders content back into its query-parameter form.
func Encode(value interface{}) (string, error) {
	b, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("failed to encode content: %w", err)
	}
	return string(b), nil
}
