package validator

import (
	"fmt"

	"github.com/SAP-F-2025/widget-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// ContentValidator handles widget-content validation
type ContentValidator struct {
	validate *validator.Validate
}

// NewContentValidator creates a content validator sharing the given struct validator
func NewContentValidator(validate *validator.Validate) *ContentValidator {
	return &ContentValidator{validate: validate}
}

// ValidateContent validates decoded content based on widget type
func (v *ContentValidator) ValidateContent(kind models.WidgetType, content interface{}) error {
	if content == nil {
		return fmt.Errorf("content cannot be nil")
	}

	switch kind {
	case models.WidgetDrag:
		return v.validateDragContent(content)
	case models.WidgetMark:
		return v.validateMarkContent(content)
	case models.WidgetMatch:
		return v.validateMatchContent(content)
	case models.WidgetSort:
		return v.validateSortContent(content)
	case models.WidgetSpell:
		return v.validateSpellContent(content)
	case models.WidgetQuiz:
		return v.validateQuizContent(content)
	default:
		return fmt.Errorf("unsupported widget type: %s", kind)
	}
}

func (v *ContentValidator) structErr(err error) error {
	if err == nil {
		return nil
	}
	if errs := ToValidationErrors(err); len(errs) > 0 {
		return errs
	}
	return err
}

func (v *ContentValidator) validateDragContent(content interface{}) error {
	c, ok := content.(*models.DragContent)
	if !ok {
		return fmt.Errorf("invalid drag content: %T", content)
	}
	return v.structErr(v.validate.Struct(c))
}

func (v *ContentValidator) validateMarkContent(content interface{}) error {
	c, ok := content.(*models.MarkContent)
	if !ok {
		return fmt.Errorf("invalid mark content: %T", content)
	}
	return v.structErr(v.validate.Struct(c))
}

func (v *ContentValidator) validateMatchContent(content interface{}) error {
	c, ok := content.(*models.MatchContent)
	if !ok {
		return fmt.Errorf("invalid match content: %T", content)
	}
	return v.structErr(v.validate.Struct(c))
}

func (v *ContentValidator) validateSortContent(content interface{}) error {
	c, ok := content.(*models.SortContent)
	if !ok {
		return fmt.Errorf("invalid sort content: %T", content)
	}
	return v.structErr(v.validate.Struct(c))
}

func (v *ContentValidator) validateSpellContent(content interface{}) error {
	c, ok := content.(*models.SpellContent)
	if !ok {
		return fmt.Errorf("invalid spell content: %T", content)
	}
	return v.structErr(v.validate.Struct(c))
}

func (v *ContentValidator) validateQuizContent(content interface{}) error {
	c, ok := content.(*models.QuizContent)
	if !ok {
		return fmt.Errorf("invalid quiz content: %T", content)
	}
	return v.structErr(v.validate.Struct(c))
}
