package models

import (
	"encoding/json"
	"time"
)

type ImportValidationError struct {
	Row     int    `json:"row"`
	Column  string `json:"column"`
	Message string `json:"message"`
	Value   string `json:"value"`
	Code    string `json:"code"`
}

// ImportedWidget is one authoring row turned into ready-to-embed content.
type ImportedWidget struct {
	Row        int             `json:"row"`
	WidgetType WidgetType      `json:"widget_type"`
	WidgetID   string          `json:"widget_id"`
	Content    json.RawMessage `json:"content"`
	Query      string          `json:"query"`
}

type ImportSummary struct {
	TotalRows      int                     `json:"total_rows"`
	ProcessedRows  int                     `json:"processed_rows"`
	SuccessCount   int                     `json:"success_count"`
	ErrorCount     int                     `json:"error_count"`
	Widgets        []ImportedWidget        `json:"widgets"`
	Errors         []ImportValidationError `json:"errors"`
	ProcessingTime time.Duration           `json:"processing_time"`
}
