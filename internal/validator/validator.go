package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/SAP-F-2025/widget-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator combines struct tag validation with per-widget content rules.
type Validator struct {
	structValidator  *validator.Validate
	contentValidator *ContentValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()

	registerCustomValidators(structValidator)

	v := &Validator{structValidator: structValidator}
	v.contentValidator = NewContentValidator(structValidator)
	return v
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Validate validates struct tags and converts failures to ValidationErrors.
func (v *Validator) Validate(s interface{}) error {
	if err := v.ValidateStruct(s); err != nil {
		if errs := ToValidationErrors(err); len(errs) > 0 {
			return errs
		}
		return err
	}
	return nil
}

// Content returns the widget content validator
func (v *Validator) Content() *ContentValidator {
	return v.contentValidator
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("widget_type", validateWidgetType)
	validate.RegisterValidation("not_blank", validateNotBlank)

	// Referential rules of drag content need the whole struct.
	validate.RegisterStructValidation(validateDragContent, models.DragContent{})

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateWidgetType(fl validator.FieldLevel) bool {
	return models.WidgetType(fl.Field().String()).IsValid()
}

func validateNotBlank(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return true
	}
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateDragContent(sl validator.StructLevel) {
	content, ok := sl.Current().Interface().(models.DragContent)
	if !ok {
		return
	}

	zoneIDs := make(map[string]bool, len(content.Dropzones))
	for i, dz := range content.Dropzones {
		if zoneIDs[dz.ID] {
			sl.ReportError(dz.ID, fmt.Sprintf("dropzones[%d].id", i), "ID", "unique_ids", "")
		}
		zoneIDs[dz.ID] = true
	}

	itemIDs := make(map[string]bool, len(content.Draggables))
	for i, item := range content.Draggables {
		if itemIDs[item.ID] {
			sl.ReportError(item.ID, fmt.Sprintf("draggables[%d].id", i), "ID", "unique_ids", "")
		}
		itemIDs[item.ID] = true

		if item.CorrectDropzoneID != "" && !zoneIDs[item.CorrectDropzoneID] {
			sl.ReportError(item.CorrectDropzoneID, fmt.Sprintf("draggables[%d].correctDropzoneId", i), "CorrectDropzoneID", "dropzone_ref", "")
		}
	}
}
