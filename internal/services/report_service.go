package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"gorm.io/datatypes"

	"github.com/SAP-F-2025/widget-service/internal/events"
	"github.com/SAP-F-2025/widget-service/internal/models"
	"github.com/SAP-F-2025/widget-service/internal/repositories"
	"github.com/SAP-F-2025/widget-service/internal/validator"
	"github.com/SAP-F-2025/widget-service/internal/verify"
)

const completionMarker = "success"

// AppendCompletionMarker adds the "finished" flag the host watches for to query.
// A non-nil incorrect count is carried as the flag's value.
func AppendCompletionMarker(query string, incorrect *int) string {
	marker := "&" + completionMarker
	if incorrect != nil {
		marker += "=" + strconv.Itoa(*incorrect)
	}
	if query == "" {
		return "?" + marker[1:]
	}
	return query + marker
}

type ReportService struct {
	bridge    events.HostBridge
	history   repositories.WidgetHistoryRepository
	validator *validator.Validator
	logger    *ServiceLogger
	now       func() time.Time
}

func NewReportService(bridge events.HostBridge, history repositories.WidgetHistoryRepository, validator *validator.Validator, logger *slog.Logger) *ReportService {
	return &ReportService{
		bridge:    bridge,
		history:   history,
		validator: validator,
		logger:    NewServiceLogger(logger, LogConfig{Service: "widget-service", Component: "report"}),
		now:       time.Now,
	}
}

// Finalize fills the derived fields of result: passing marks, pass flag, report tag.
func Finalize(result models.WidgetResult) models.WidgetResult {
	result.PassingMarks = verify.PassingMarks(result.TotalMarks)
	result.Passed = verify.Passed(result.ObtainedMarks, result.TotalMarks)
	if result.QuizType == "" {
		result.QuizType = result.WidgetType.QuizType()
	}
	return result
}

// Report hands a finished widget to the host and returns the completion marker.
// Delivery is fire-and-forget for the learner: bridge and history failures are
// logged and reflected in Reported, never returned.
func (s *ReportService) Report(ctx context.Context, result models.WidgetResult, query string) (resp *models.CompletionResponse, err error) {
	op := s.logger.WithOperation(ctx, "report_widget", result.UserID)
	defer func() { op.LogResult(result.WidgetID, string(result.WidgetType), err) }()

	if err := s.validator.Validate(result); err != nil {
		return nil, err
	}
	result = Finalize(result)

	reported := true
	event := events.NewWidgetCompletedEvent(result, s.now())
	if err := s.bridge.Report(ctx, event); err != nil {
		reported = false
		s.logger.Logger().ErrorContext(ctx, "Failed to report widget result",
			"widget_id", result.WidgetID, "event_id", event.ID, "error", err)
	}

	s.recordHistory(ctx, result)

	return &models.CompletionResponse{
		Result:   result,
		Marker:   AppendCompletionMarker(query, result.Incorrect),
		Reported: reported,
	}, nil
}

func (s *ReportService) recordHistory(ctx context.Context, result models.WidgetResult) {
	if s.history == nil || result.UserID == "" {
		return
	}

	meta, _ := json.Marshal(map[string]interface{}{
		"timeSpent":   strconv.FormatFloat(result.TimeSpent.Seconds(), 'f', 2, 64),
		"incorrect":   result.Incorrect,
		"isReattempt": false,
	})
	row := &models.WidgetHistory{
		Tenant:        result.Tenant,
		UserID:        result.UserID,
		LessonID:      result.LessonID,
		WidgetID:      result.WidgetID,
		WidgetType:    result.WidgetType,
		QuizType:      result.QuizType,
		Level:         "beginner",
		TotalMarks:    result.TotalMarks,
		ObtainedMarks: result.ObtainedMarks,
		PassingMarks:  result.PassingMarks,
		Status:        result.Status(),
		TimeSpentMs:   result.TimeSpent.Milliseconds(),
		Metadata:      datatypes.JSON(meta),
	}
	if err := s.history.Upsert(context.WithoutCancel(ctx), row); err != nil {
		s.logger.Logger().ErrorContext(ctx, "Failed to record widget history",
			"widget_id", result.WidgetID, "user_id", result.UserID, "error", err)
	}
}
