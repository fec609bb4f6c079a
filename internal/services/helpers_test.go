package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/widget-service/internal/content"
	"github.com/SAP-F-2025/widget-service/internal/models"
	"github.com/SAP-F-2025/widget-service/internal/repositories"
	"github.com/SAP-F-2025/widget-service/internal/validator"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testLoader(t *testing.T) (*content.Loader, *validator.Validator) {
	t.Helper()
	v := validator.New()
	loader, err := content.NewLoader(v, testLogger())
	require.NoError(t, err)
	return loader, v
}

// MockEvaluationLogRepository is a mock implementation of EvaluationLogRepository
type MockEvaluationLogRepository struct {
	mock.Mock
}

func (m *MockEvaluationLogRepository) Create(ctx context.Context, log *models.EvaluationLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockEvaluationLogRepository) GetByID(ctx context.Context, id string) (*models.EvaluationLog, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*models.EvaluationLog), args.Error(1)
}

func (m *MockEvaluationLogRepository) List(ctx context.Context, filters repositories.EvaluationLogFilters) ([]*models.EvaluationLog, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.EvaluationLog), args.Get(1).(int64), args.Error(2)
}

// MockWidgetHistoryRepository is a mock implementation of WidgetHistoryRepository
type MockWidgetHistoryRepository struct {
	mock.Mock
}

func (m *MockWidgetHistoryRepository) Upsert(ctx context.Context, history *models.WidgetHistory) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}

func (m *MockWidgetHistoryRepository) Get(ctx context.Context, key repositories.HistoryKey) (*models.WidgetHistory, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(*models.WidgetHistory), args.Error(1)
}

func (m *MockWidgetHistoryRepository) Exists(ctx context.Context, key repositories.HistoryKey) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockWidgetHistoryRepository) ListByLesson(ctx context.Context, tenant, userID, lessonID string) ([]*models.WidgetHistory, error) {
	args := m.Called(ctx, tenant, userID, lessonID)
	return args.Get(0).([]*models.WidgetHistory), args.Error(1)
}

// scriptedAI answers GenerateText from a queue of replies and errors.
type scriptedAI struct {
	mu      sync.Mutex
	replies []string
	errs    []error
	prompts []string
}

func (s *scriptedAI) GenerateText(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := len(s.prompts)
	s.prompts = append(s.prompts, prompt)
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.replies) {
		return s.replies[i], nil
	}
	return "", io.ErrUnexpectedEOF
}

func (s *scriptedAI) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}
