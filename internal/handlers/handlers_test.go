package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SAP-F-2025/widget-service/internal/content"
	"github.com/SAP-F-2025/widget-service/internal/models"
	"github.com/SAP-F-2025/widget-service/internal/repositories"
	"github.com/SAP-F-2025/widget-service/internal/services"
	"github.com/SAP-F-2025/widget-service/internal/speech"
	"github.com/SAP-F-2025/widget-service/internal/utils"
	"github.com/SAP-F-2025/widget-service/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ===== MOCKS =====

type MockSessionManager struct{ mock.Mock }

func (m *MockSessionManager) Create(ctx context.Context, req *services.CreateSessionRequest) (*services.SessionView, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SessionView), args.Error(1)
}

func (m *MockSessionManager) Get(ctx context.Context, id string) (*services.SessionView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SessionView), args.Error(1)
}

func (m *MockSessionManager) Apply(ctx context.Context, id string, action *services.ActionRequest) (*services.ActionResult, error) {
	args := m.Called(ctx, id, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ActionResult), args.Error(1)
}

func (m *MockSessionManager) Reset(ctx context.Context, id string, raw string) (*services.SessionView, error) {
	args := m.Called(ctx, id, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SessionView), args.Error(1)
}

func (m *MockSessionManager) Complete(ctx context.Context, id string) (*models.CompletionResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CompletionResponse), args.Error(1)
}

func (m *MockSessionManager) Close(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockEvaluator struct{ mock.Mock }

func (m *MockEvaluator) Evaluate(ctx context.Context, req models.EvaluationRequest) (models.EvaluationResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.EvaluationResult), args.Error(1)
}

func (m *MockEvaluator) IsSkippable(ctx context.Context, key repositories.HistoryKey) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

type MockSpeech struct{ mock.Mock }

func (m *MockSpeech) Generate(ctx context.Context, text string) (*models.SpeechAudio, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SpeechAudio), args.Error(1)
}

type MockImporter struct{ mock.Mock }

func (m *MockImporter) ImportFromFile(ctx context.Context, reader io.Reader, filename string) (*models.ImportSummary, error) {
	data, _ := io.ReadAll(reader)
	args := m.Called(ctx, string(data), filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ImportSummary), args.Error(1)
}

func (m *MockImporter) ExportTemplate() ([]byte, error) {
	args := m.Called()
	return args.Get(0).([]byte), args.Error(1)
}

type staticIdentity map[string]string

func (s staticIdentity) UserID(token string) (string, error) {
	if id, ok := s[token]; ok {
		return id, nil
	}
	return "", errors.New("token rejected")
}

// ===== FIXTURE =====

type fixture struct {
	router    *gin.Engine
	sessions  *MockSessionManager
	evaluator *MockEvaluator
	speech    *MockSpeech
	importer  *MockImporter
}

func newFixture(t *testing.T, identity IdentityParser) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	v := validator.New()
	loader, err := content.NewLoader(v, logger)
	require.NoError(t, err)

	f := &fixture{
		sessions:  new(MockSessionManager),
		evaluator: new(MockEvaluator),
		speech:    new(MockSpeech),
		importer:  new(MockImporter),
	}

	hm := NewHandlerManager(Dependencies{
		Loader:    loader,
		Sessions:  f.sessions,
		Evaluator: f.evaluator,
		Speech:    f.speech,
		Importer:  f.importer,
		Identity:  identity,
		Validator: v,
		Logger:    utils.NewSlogLogger(logger),
	})

	f.router = gin.New()
	f.router.Use(utils.ContextLogger(utils.NewSlogLogger(logger)))
	hm.SetupRoutes(f.router)
	return f
}

func (f *fixture) do(method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	var resp struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NoError(t, json.Unmarshal(resp.Data, dest))
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// ===== TESTS =====

func TestHealthCheck(t *testing.T) {
	f := newFixture(t, nil)

	w := f.do(http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "widget-service")
	assert.NotEmpty(t, w.Header().Get(utils.RequestIDHeader))
}

func TestWidgetHandler_GetContent(t *testing.T) {
	f := newFixture(t, nil)

	t.Run("valid content", func(t *testing.T) {
		w := f.do(http.MethodGet, `/api/v1/widgets/spell/content?content=%7B%22sentence%22%3A%22hello%20there%22%7D`, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var res struct {
			Status content.Status       `json:"status"`
			Value  models.SpellContent `json:"value"`
		}
		decodeData(t, w, &res)
		assert.Equal(t, content.StatusValid, res.Status)
		assert.Equal(t, "hello there", res.Value.Sentence)
	})

	t.Run("absent content falls back", func(t *testing.T) {
		w := f.do(http.MethodGet, "/api/v1/widgets/quiz/content", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var res struct {
			Status content.Status `json:"status"`
			Reason string         `json:"reason"`
		}
		decodeData(t, w, &res)
		assert.Equal(t, content.StatusFallbackUsed, res.Status)
		assert.Equal(t, content.ReasonAbsent, res.Reason)
	})

	t.Run("legacy sentences for sort", func(t *testing.T) {
		w := f.do(http.MethodGet, "/api/v1/widgets/sort/content?sentences=first%2C%20second%2C%20third", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var res struct {
			Status content.Status     `json:"status"`
			Value  models.SortContent `json:"value"`
		}
		decodeData(t, w, &res)
		assert.Equal(t, content.StatusValid, res.Status)
		assert.Equal(t, content.DefaultSortPrompt, res.Value.Prompt)
		assert.Equal(t, []string{"first", "second", "third"}, res.Value.Sentences)
	})

	t.Run("unknown widget type", func(t *testing.T) {
		w := f.do(http.MethodGet, "/api/v1/widgets/crossword/content", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, CodeValidation, decodeError(t, w).Code)
	})
}

func TestSessionHandler_CreateSession(t *testing.T) {
	t.Run("created without auth", func(t *testing.T) {
		f := newFixture(t, nil)
		view := &services.SessionView{ID: "s-1", WidgetType: models.WidgetSort}
		f.sessions.On("Create", mock.Anything, mock.MatchedBy(func(r *services.CreateSessionRequest) bool {
			return r.WidgetType == models.WidgetSort && r.UserID == "learner-1"
		})).Return(view, nil)

		w := f.do(http.MethodPost, "/api/v1/sessions", map[string]interface{}{
			"widget_type": "sort",
			"user_id":     "learner-1",
		})

		require.Equal(t, http.StatusCreated, w.Code)
		var got services.SessionView
		decodeData(t, w, &got)
		assert.Equal(t, "s-1", got.ID)
		f.sessions.AssertExpectations(t)
	})

	t.Run("token identity overrides body", func(t *testing.T) {
		f := newFixture(t, staticIdentity{"good": "token-user"})
		f.sessions.On("Create", mock.Anything, mock.MatchedBy(func(r *services.CreateSessionRequest) bool {
			return r.UserID == "token-user"
		})).Return(&services.SessionView{ID: "s-2"}, nil)

		w := f.do(http.MethodPost, "/api/v1/sessions", map[string]interface{}{
			"widget_type": "mark",
			"user_id":     "spoofed",
		}, "Authorization", "Bearer good")

		assert.Equal(t, http.StatusCreated, w.Code)
		f.sessions.AssertExpectations(t)
	})

	t.Run("missing token rejected", func(t *testing.T) {
		f := newFixture(t, staticIdentity{"good": "token-user"})

		w := f.do(http.MethodPost, "/api/v1/sessions", map[string]interface{}{"widget_type": "mark"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		f.sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("invalid token rejected", func(t *testing.T) {
		f := newFixture(t, staticIdentity{"good": "token-user"})

		w := f.do(http.MethodPost, "/api/v1/sessions", map[string]interface{}{"widget_type": "mark"},
			"Authorization", "Bearer bad")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, CodeUnauthorized, decodeError(t, w).Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		f := newFixture(t, nil)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSessionHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", services.ErrSessionNotFound, http.StatusNotFound, CodeNotFound},
		{"locked", services.ErrWidgetLocked, http.StatusConflict, CodeConflict},
		{"already validated", services.ErrAlreadyValidated, http.StatusConflict, CodeConflict},
		{"unknown action", services.ErrUnknownAction, http.StatusBadRequest, CodeValidation},
		{"field error", services.NewValidationError("item_id", "unknown item", "x"), http.StatusBadRequest, CodeValidation},
		{"business rule", services.NewBusinessRuleError("not_interactive", "widget is checked", nil), http.StatusUnprocessableEntity, CodeBusinessRule},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			f.sessions.On("Apply", mock.Anything, "s-1", mock.Anything).Return(nil, tt.err)

			w := f.do(http.MethodPost, "/api/v1/sessions/s-1/actions", map[string]interface{}{
				"type":    "drop",
				"item_id": "x",
			})

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decodeError(t, w).Code)
		})
	}
}

func TestSessionHandler_Lifecycle(t *testing.T) {
	f := newFixture(t, nil)
	f.sessions.On("Get", mock.Anything, "s-1").Return(&services.SessionView{ID: "s-1", Finished: true}, nil)
	f.sessions.On("Reset", mock.Anything, "s-1", `{"sentence":"new"}`).Return(&services.SessionView{ID: "s-1"}, nil)
	f.sessions.On("Complete", mock.Anything, "s-1").Return(&models.CompletionResponse{
		Marker:   "content=x&success",
		Reported: true,
	}, nil)
	f.sessions.On("Complete", mock.Anything, "s-2").Return(nil, services.ErrNotFinished)
	f.sessions.On("Close", mock.Anything, "s-1").Return(nil)

	w := f.do(http.MethodGet, "/api/v1/sessions/s-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodPost, "/api/v1/sessions/s-1/reset", map[string]string{"content": `{"sentence":"new"}`})
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodPost, "/api/v1/sessions/s-1/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var done models.CompletionResponse
	decodeData(t, w, &done)
	assert.Equal(t, "content=x&success", done.Marker)

	w = f.do(http.MethodPost, "/api/v1/sessions/s-2/complete", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = f.do(http.MethodDelete, "/api/v1/sessions/s-1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	f.sessions.AssertExpectations(t)
}

func TestRequestContext_CarriesRequestID(t *testing.T) {
	f := newFixture(t, nil)
	withRequestID := mock.MatchedBy(func(ctx context.Context) bool {
		return services.RequestIDFromContext(ctx) == "req-42"
	})
	f.sessions.On("Get", withRequestID, "s-1").Return(&services.SessionView{ID: "s-1"}, nil)

	w := f.do(http.MethodGet, "/api/v1/sessions/s-1", nil, utils.RequestIDHeader, "req-42")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-42", w.Header().Get(utils.RequestIDHeader))
	f.sessions.AssertExpectations(t)
}

func TestVerifyHandler(t *testing.T) {
	f := newFixture(t, nil)

	t.Run("spell", func(t *testing.T) {
		w := f.do(http.MethodPost, "/api/v1/verify/spell", VerifySpellRequest{Reference: "Hello there.", Input: "hello there"})
		require.Equal(t, http.StatusOK, w.Code)

		var res models.SpellResult
		decodeData(t, w, &res)
		assert.True(t, res.IsCorrect)
		assert.Equal(t, 100.0, res.Accuracy)
	})

	t.Run("spell requires input", func(t *testing.T) {
		w := f.do(http.MethodPost, "/api/v1/verify/spell", VerifySpellRequest{Reference: "Hello", Input: "  "})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("mark", func(t *testing.T) {
		w := f.do(http.MethodPost, "/api/v1/verify/mark", VerifyMarkRequest{Paragraph: "the *cat* sat", Selected: []int{1}})
		require.Equal(t, http.StatusOK, w.Code)

		var res models.MarkResult
		decodeData(t, w, &res)
		assert.True(t, res.AllCorrect)
		assert.Equal(t, models.Score{Correct: 1, Total: 1}, res.Score)
	})

	t.Run("mark rejects unknown token", func(t *testing.T) {
		w := f.do(http.MethodPost, "/api/v1/verify/mark", VerifyMarkRequest{Paragraph: "the *cat* sat", Selected: []int{7}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("sort", func(t *testing.T) {
		w := f.do(http.MethodPost, "/api/v1/verify/sort", VerifySortRequest{
			Sentences:   []string{"one", "two", "three"},
			Arrangement: []int{0, 2, 1},
		})
		require.Equal(t, http.StatusOK, w.Code)

		var res models.SortResult
		decodeData(t, w, &res)
		assert.Equal(t, []bool{true, false, false}, res.Results)
		assert.False(t, res.AllCorrect)
	})

	t.Run("sort rejects non permutation", func(t *testing.T) {
		w := f.do(http.MethodPost, "/api/v1/verify/sort", VerifySortRequest{
			Sentences:   []string{"one", "two"},
			Arrangement: []int{1, 1},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("drag", func(t *testing.T) {
		body := map[string]interface{}{
			"content": json.RawMessage(`{
				"dropzones": [{"id": "z", "x": 100, "y": 100, "width": 50, "height": 50}],
				"draggables": [
					{"id": "a", "width": 10, "height": 10, "initialX": 0, "initialY": 0, "correctDropzoneId": "z"},
					{"id": "b", "width": 10, "height": 10, "initialX": 0, "initialY": 0, "correctDropzoneId": "z"}
				]
			}`),
			"positions": map[string]models.Point{"a": {X: 110, Y: 110}},
		}
		w := f.do(http.MethodPost, "/api/v1/verify/drag", body)
		require.Equal(t, http.StatusOK, w.Code)

		var res models.DragResult
		decodeData(t, w, &res)
		assert.True(t, res.Results["a"])
		assert.False(t, res.Results["b"])
		assert.Equal(t, models.Score{Correct: 1, Total: 2}, res.Score)
	})

	t.Run("drag rejects fallback content", func(t *testing.T) {
		w := f.do(http.MethodPost, "/api/v1/verify/drag", map[string]interface{}{
			"content": json.RawMessage(`{"dropzones": []}`),
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEvaluationHandler(t *testing.T) {
	t.Run("evaluates", func(t *testing.T) {
		f := newFixture(t, nil)
		f.evaluator.On("Evaluate", mock.Anything, mock.MatchedBy(func(r models.EvaluationRequest) bool {
			return r.Tenant == services.DefaultTenant && r.UserAnswer == "Paris"
		})).Return(models.EvaluationResult{Type: models.FeedbackCorrect, Feedback: "well done"}, nil)

		w := f.do(http.MethodPost, "/api/v1/evaluations", models.EvaluationRequest{
			Question:        "Capital of France?",
			UserAnswer:      "Paris",
			ReferenceAnswer: "Paris",
		})

		require.Equal(t, http.StatusOK, w.Code)
		var res models.EvaluationResult
		decodeData(t, w, &res)
		assert.Equal(t, models.FeedbackCorrect, res.Type)
	})

	t.Run("upstream failure", func(t *testing.T) {
		f := newFixture(t, nil)
		f.evaluator.On("Evaluate", mock.Anything, mock.Anything).
			Return(models.EvaluationResult{}, services.ErrEvaluationFailed)

		w := f.do(http.MethodPost, "/api/v1/evaluations", models.EvaluationRequest{Question: "q", UserAnswer: "a", ReferenceAnswer: "r"})

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, CodeUpstream, decodeError(t, w).Code)
	})

	t.Run("skippable", func(t *testing.T) {
		f := newFixture(t, nil)
		f.evaluator.On("IsSkippable", mock.Anything, repositories.HistoryKey{
			Tenant: services.DefaultTenant, UserID: "u", LessonID: "l", WidgetID: "w",
		}).Return(true, nil)

		w := f.do(http.MethodGet, "/api/v1/evaluations/skippable?userId=u&lessonId=l&widgetId=w", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var res SkippableResponse
		decodeData(t, w, &res)
		assert.True(t, res.Skippable)
	})

	t.Run("skippable needs widget id", func(t *testing.T) {
		f := newFixture(t, nil)

		w := f.do(http.MethodGet, "/api/v1/evaluations/skippable?userId=u", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		f.evaluator.AssertNotCalled(t, "IsSkippable", mock.Anything, mock.Anything)
	})
}

func TestSpeechHandler(t *testing.T) {
	pcm := make([]byte, speech.SampleRate*speech.BytesPerSample)

	t.Run("raw pcm", func(t *testing.T) {
		f := newFixture(t, nil)
		f.speech.On("Generate", mock.Anything, "hello").Return(&models.SpeechAudio{Audio: pcm, Hash: "abc", Cached: true}, nil)

		w := f.do(http.MethodPost, "/api/v1/speech", SpeechRequest{Text: "hello"})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, speech.ContentType, w.Header().Get("Content-Type"))
		assert.Equal(t, "abc", w.Header().Get(HeaderAudioHash))
		assert.Equal(t, "true", w.Header().Get(HeaderAudioCached))
		assert.Equal(t, "1.00", w.Header().Get(HeaderAudioDuration))
		assert.Len(t, w.Body.Bytes(), len(pcm))
	})

	t.Run("json details", func(t *testing.T) {
		f := newFixture(t, nil)
		f.speech.On("Generate", mock.Anything, "hello").Return(&models.SpeechAudio{Audio: pcm, Hash: "abc"}, nil)

		w := f.do(http.MethodPost, "/api/v1/speech", SpeechRequest{Text: "hello"}, "Accept", "application/json")

		require.Equal(t, http.StatusOK, w.Code)
		var res SpeechDetails
		decodeData(t, w, &res)
		assert.Equal(t, "abc", res.Hash)
		assert.Len(t, res.Waveform, speech.WaveformBars)
		assert.Equal(t, pcm, res.Audio)
	})

	t.Run("generation failure", func(t *testing.T) {
		f := newFixture(t, nil)
		f.speech.On("Generate", mock.Anything, "hello").Return(nil, services.ErrSpeechUnavailable)

		w := f.do(http.MethodPost, "/api/v1/speech", SpeechRequest{Text: "hello"})

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("text required", func(t *testing.T) {
		f := newFixture(t, nil)

		w := f.do(http.MethodPost, "/api/v1/speech", map[string]string{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestImportHandler(t *testing.T) {
	upload := func(f *fixture, filename, data string) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, _ := mw.CreateFormFile("file", filename)
		_, _ = part.Write([]byte(data))
		_ = mw.Close()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/contents/import", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)
		return w
	}

	t.Run("imports upload", func(t *testing.T) {
		f := newFixture(t, nil)
		csvData := "widget_type,payload\nspell,hello there\n"
		f.importer.On("ImportFromFile", mock.Anything, csvData, "widgets.csv").
			Return(&models.ImportSummary{TotalRows: 1, SuccessCount: 1}, nil)

		w := upload(f, "widgets.csv", csvData)

		require.Equal(t, http.StatusOK, w.Code)
		var res models.ImportSummary
		decodeData(t, w, &res)
		assert.Equal(t, 1, res.SuccessCount)
	})

	t.Run("unsupported file", func(t *testing.T) {
		f := newFixture(t, nil)
		f.importer.On("ImportFromFile", mock.Anything, "x", "widgets.txt").Return(nil, services.ErrUnsupportedFile)

		w := upload(f, "widgets.txt", "x")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing file", func(t *testing.T) {
		f := newFixture(t, nil)

		w := f.do(http.MethodPost, "/api/v1/contents/import", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("template", func(t *testing.T) {
		f := newFixture(t, nil)
		f.importer.On("ExportTemplate").Return([]byte("xlsx"), nil)

		w := f.do(http.MethodGet, "/api/v1/contents/template", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "widget-import-template.xlsx")
	})
}
