package content

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/widget-service/internal/models"
	"github.com/xeipuuv/gojsonschema"
)

// Structural schemas. Semantic rules (blank strings, dropzone references,
// unique ids) are left to the validator.
var schemaSources = map[models.WidgetType]string{
	models.WidgetDrag: `{
		"type": "object",
		"required": ["dropzones", "draggables"],
		"properties": {
			"image": {"type": "string"},
			"imageFit": {
				"type": "object",
				"required": ["x", "y", "width", "height"],
				"properties": {
					"x": {"type": "number"},
					"y": {"type": "number"},
					"width": {"type": "number"},
					"height": {"type": "number"},
					"scaleX": {"type": "number"},
					"scaleY": {"type": "number"},
					"rotation": {"type": "number"}
				}
			},
			"dropzones": {
				"type": "array",
				"minItems": 1,
				"items": {
					"type": "object",
					"required": ["id", "x", "y", "width", "height"],
					"properties": {
						"id": {"type": "string"},
						"x": {"type": "number"},
						"y": {"type": "number"},
						"width": {"type": "number"},
						"height": {"type": "number"},
						"label": {"type": "string"}
					}
				}
			},
			"draggables": {
				"type": "array",
				"minItems": 1,
				"items": {
					"type": "object",
					"required": ["id", "width", "height", "initialX", "initialY"],
					"properties": {
						"id": {"type": "string"},
						"text": {"type": "string"},
						"image": {"type": "string"},
						"width": {"type": "number"},
						"height": {"type": "number"},
						"initialX": {"type": "number"},
						"initialY": {"type": "number"},
						"correctDropzoneId": {"type": "string"}
					}
				}
			}
		}
	}`,
	models.WidgetMark: `{
		"type": "object",
		"required": ["paragraph"],
		"properties": {
			"prompt": {"type": "string"},
			"paragraph": {"type": "string"}
		}
	}`,
	models.WidgetMatch: `{
		"type": "object",
		"required": ["pairs"],
		"properties": {
			"prompt": {"type": "string"},
			"pairs": {
				"type": "array",
				"minItems": 1,
				"items": {
					"type": "object",
					"required": ["left", "right"],
					"properties": {
						"left": {"type": "string"},
						"right": {"type": "string"}
					}
				}
			}
		}
	}`,
	models.WidgetSort: `{
		"type": "object",
		"required": ["sentences"],
		"properties": {
			"prompt": {"type": "string"},
			"sentences": {"type": "array", "minItems": 2, "items": {"type": "string"}}
		}
	}`,
	models.WidgetSpell: `{
		"type": "object",
		"required": ["sentence"],
		"properties": {
			"sentence": {"type": "string"}
		}
	}`,
	models.WidgetQuiz: `{
		"type": "object",
		"required": ["question", "answer"],
		"properties": {
			"question": {"type": "string"},
			"answer": {"type": "string"},
			"subject": {"type": "string"},
			"lesson": {"type": "string"}
		}
	}`,
}

func compileSchemas() (map[models.WidgetType]*gojsonschema.Schema, error) {
	schemas := make(map[models.WidgetType]*gojsonschema.Schema, len(schemaSources))
	for kind, src := range schemaSources {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
		if err != nil {
			return nil, fmt.Errorf("failed to compile %s schema: %w", kind, err)
		}
		schemas[kind] = schema
	}
	return schemas, nil
}

func checkSchema(schema *gojsonschema.Schema, raw []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("malformed json: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema mismatch: %s", strings.Join(msgs, "; "))
}
