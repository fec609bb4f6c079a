package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/widget-service/internal/content"
	"github.com/SAP-F-2025/widget-service/internal/models"
)

// Import columns, in template order.
const (
	ColWidgetType = "widget_type"
	ColWidgetID   = "widget_id"
	ColPrompt     = "prompt"
	ColPayload    = "payload"
	ColAnswer     = "answer"
	ColSubject    = "subject"
	ColLesson     = "lesson"
)

var importColumns = []string{ColWidgetType, ColWidgetID, ColPrompt, ColPayload, ColAnswer, ColSubject, ColLesson}

const templateSheet = "Widgets"

// ImportService turns authoring spreadsheets into widget content query strings
type ImportService struct {
	loader *content.Loader
	logger *slog.Logger
}

func NewImportService(loader *content.Loader, logger *slog.Logger) *ImportService {
	return &ImportService{
		loader: loader,
		logger: logger.With("component", "import"),
	}
}

func (s *ImportService) ImportFromFile(ctx context.Context, reader io.Reader, filename string) (*models.ImportSummary, error) {
	s.logger.Info("Starting content import", "filename", filename)

	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".csv":
		return s.ImportFromCSV(ctx, reader)
	case ".xlsx":
		return s.ImportFromExcel(ctx, reader)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFile, ext)
	}
}

func (s *ImportService) ImportFromCSV(ctx context.Context, reader io.Reader) (*models.ImportSummary, error) {
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, NewValidationError("file", fmt.Sprintf("failed to read CSV: %v", err), nil)
	}
	return s.importRows(ctx, records, "CSV")
}

func (s *ImportService) ImportFromExcel(ctx context.Context, reader io.Reader) (*models.ImportSummary, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, NewValidationError("file", fmt.Sprintf("failed to open Excel file: %v", err), nil)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, NewValidationError("file", "Excel file has no sheets", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel rows: %w", err)
	}
	return s.importRows(ctx, rows, "Excel")
}

func (s *ImportService) importRows(ctx context.Context, rows [][]string, source string) (*models.ImportSummary, error) {
	start := time.Now()

	if len(rows) < 2 {
		return nil, NewValidationError("file", "file must have header row and at least one data row", len(rows))
	}

	headerMap := make(map[string]int)
	for i, header := range rows[0] {
		headerMap[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, col := range []string{ColWidgetType, ColPayload} {
		if _, exists := headerMap[col]; !exists {
			return nil, NewValidationError("headers", fmt.Sprintf("missing required column: %s", col), col)
		}
	}

	summary := &models.ImportSummary{TotalRows: len(rows) - 1}

	for i, row := range rows[1:] {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		rowNum := i + 2
		widget, rowErrors := s.parseRow(row, headerMap, rowNum)
		if len(rowErrors) > 0 {
			summary.Errors = append(summary.Errors, rowErrors...)
			summary.ErrorCount++
		} else {
			summary.Widgets = append(summary.Widgets, *widget)
			summary.SuccessCount++
		}
		summary.ProcessedRows++
	}
	summary.ProcessingTime = time.Since(start)

	s.logger.Info(source+" import completed",
		"total_rows", summary.TotalRows,
		"success_count", summary.SuccessCount,
		"error_count", summary.ErrorCount)

	return summary, nil
}

func cell(row []string, headerMap map[string]int, col string) string {
	idx, ok := headerMap[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func (s *ImportService) parseRow(row []string, headerMap map[string]int, rowNum int) (*models.ImportedWidget, []models.ImportValidationError) {
	rowErr := func(col, msg, value, code string) []models.ImportValidationError {
		return []models.ImportValidationError{{Row: rowNum, Column: col, Message: msg, Value: value, Code: code}}
	}

	kind := models.WidgetType(strings.ToLower(cell(row, headerMap, ColWidgetType)))
	if !kind.IsValid() {
		return nil, rowErr(ColWidgetType, "unknown widget type", string(kind), "INVALID_WIDGET_TYPE")
	}

	payload := cell(row, headerMap, ColPayload)
	value, err := buildContent(kind, payload, row, headerMap)
	if err != nil {
		return nil, rowErr(ColPayload, err.Error(), payload, "INVALID_PAYLOAD")
	}

	raw, err := content.Encode(value)
	if err != nil {
		return nil, rowErr(ColPayload, err.Error(), payload, "ENCODE_FAILED")
	}

	// the same loader the widget uses decides whether the content is usable
	loaded := s.loader.Decode(kind, raw)
	if loaded.FallbackUsed() {
		return nil, rowErr(ColPayload, fmt.Sprintf("content rejected (%s): %s", loaded.Reason, loaded.Detail), payload, "INVALID_CONTENT")
	}

	canonical, err := content.Encode(loaded.Value)
	if err != nil {
		return nil, rowErr(ColPayload, err.Error(), payload, "ENCODE_FAILED")
	}

	widgetID := cell(row, headerMap, ColWidgetID)
	if widgetID == "" {
		widgetID = content.DefaultWidgetID
	}

	q := url.Values{}
	q.Set("content", canonical)
	q.Set("widgetId", widgetID)

	return &models.ImportedWidget{
		Row:        rowNum,
		WidgetType: kind,
		WidgetID:   widgetID,
		Content:    json.RawMessage(canonical),
		Query:      q.Encode(),
	}, nil
}

func buildContent(kind models.WidgetType, payload string, row []string, headerMap map[string]int) (interface{}, error) {
	prompt := cell(row, headerMap, ColPrompt)

	switch kind {
	case models.WidgetDrag:
		var drag models.DragContent
		if err := json.Unmarshal([]byte(payload), &drag); err != nil {
			return nil, fmt.Errorf("drag payload must be JSON: %v", err)
		}
		return &drag, nil
	case models.WidgetMark:
		return &models.MarkContent{Prompt: prompt, Paragraph: payload}, nil
	case models.WidgetMatch:
		pairs, err := parsePairs(payload)
		if err != nil {
			return nil, err
		}
		return &models.MatchContent{Prompt: prompt, Pairs: pairs}, nil
	case models.WidgetSort:
		return &models.SortContent{Prompt: prompt, Sentences: parseSortPayload(payload)}, nil
	case models.WidgetSpell:
		return &models.SpellContent{Sentence: payload}, nil
	default:
		return &models.QuizContent{
			Question: payload,
			Answer:   cell(row, headerMap, ColAnswer),
			Subject:  cell(row, headerMap, ColSubject),
			Lesson:   cell(row, headerMap, ColLesson),
		}, nil
	}
}

// parsePairs reads "left:right,left:right".
func parsePairs(payload string) ([]models.MatchPair, error) {
	var pairs []models.MatchPair
	for _, part := range strings.Split(payload, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		left, right, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("pair %q must be written as left:right", part)
		}
		pairs = append(pairs, models.MatchPair{Left: strings.TrimSpace(left), Right: strings.TrimSpace(right)})
	}
	return pairs, nil
}

func parseSortPayload(payload string) []string {
	if strings.HasPrefix(strings.TrimSpace(payload), "[") {
		if sentences, ok := content.ParseSentences(payload); ok {
			return sentences
		}
		return nil
	}
	var out []string
	for _, part := range strings.Split(payload, "|") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ExportTemplate builds an xlsx workbook with the import header and one
// example row per widget type, filled from the built-in samples.
func (s *ImportService) ExportTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), templateSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	for i, header := range importColumns {
		cellName, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(templateSheet, cellName, header); err != nil {
			return nil, err
		}
	}

	for r, row := range templateRows() {
		for c, value := range row {
			cellName, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(templateSheet, cellName, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func templateRows() [][]string {
	drag, _ := content.Encode(content.SampleDrag())
	mark := content.SampleMark()
	spell := content.SampleSpell()
	quiz := content.SampleQuiz()
	sorted := content.SampleSort()

	match := content.SampleMatch()
	pairs := make([]string, len(match.Pairs))
	for i, p := range match.Pairs {
		pairs[i] = p.Left + ":" + p.Right
	}

	return [][]string{
		{string(models.WidgetDrag), "", "", drag, "", "", ""},
		{string(models.WidgetMark), "", mark.Prompt, mark.Paragraph, "", "", ""},
		{string(models.WidgetMatch), "", match.Prompt, strings.Join(pairs, ","), "", "", ""},
		{string(models.WidgetSort), "", sorted.Prompt, strings.Join(sorted.Sentences, "|"), "", "", ""},
		{string(models.WidgetSpell), "", "", spell.Sentence, "", "", ""},
		{string(models.WidgetQuiz), "", "", quiz.Question, quiz.Answer, quiz.Subject, quiz.Lesson},
	}
}
