package services

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/widget-service/internal/models"
	"github.com/SAP-F-2025/widget-service/internal/repositories"
	"github.com/SAP-F-2025/widget-service/internal/validator"
)

func evaluationRequest() models.EvaluationRequest {
	return models.EvaluationRequest{
		UserID:          "u-1",
		LessonID:        "l-1",
		WidgetID:        "w-1",
		Tenant:          "ankido",
		Subject:         "الفيزياء",
		Lesson:          "المتسعات",
		Question:        "ما هي الوظيفة الأساسية للمتسعة؟",
		UserAnswer:      "تخزين الشحنة",
		ReferenceAnswer: "تخزين الشحنات الكهربائية",
	}
}

func newEvaluationService(ai TextGenerator, logs *MockEvaluationLogRepository, history *MockWidgetHistoryRepository) *EvaluationService {
	return NewEvaluationService(ai, logs, history, validator.New(),
		EvaluationConfig{Model: "gemini-2.5-flash", MaxAttempts: 3},
		rand.New(rand.NewSource(1)), testLogger())
}

func TestBuildEvaluationPrompt(t *testing.T) {
	prompt := BuildEvaluationPrompt(evaluationRequest())

	assert.True(t, strings.HasPrefix(prompt, "You are an AI assistant designed to verify student answers for a الفيزياء lecture."))
	assert.Contains(t, prompt, "The student watched a lecture on المتسعات for Iraqi high school students.")
	assert.Contains(t, prompt, "Here is the student's answer:\nتخزين الشحنة\n")
	assert.True(t, strings.HasSuffix(prompt, "(do not show this to the student):\nتخزين الشحنات الكهربائية"))
}

func TestEvaluate_AcceptedAddsPraiseAndReference(t *testing.T) {
	ai := &scriptedAI{replies: []string{" Acceptable\n"}}
	logs := new(MockEvaluationLogRepository)
	logs.On("Create", mock.Anything, mock.MatchedBy(func(l *models.EvaluationLog) bool {
		return l.Outcome == models.EvaluationAccepted && l.TryIndex == 0 && l.WidgetID == "w-1"
	})).Return(nil).Once()

	svc := newEvaluationService(ai, logs, nil)
	res, err := svc.Evaluate(context.Background(), evaluationRequest())
	require.NoError(t, err)

	assert.Equal(t, models.FeedbackCorrect, res.Type)
	assert.True(t, strings.HasSuffix(res.Feedback, "تخزين الشحنات الكهربائية"))
	prefixed := false
	for _, p := range praisePrefixes {
		if strings.HasPrefix(res.Feedback, p) {
			prefixed = true
		}
	}
	assert.True(t, prefixed, res.Feedback)
	logs.AssertExpectations(t)
}

func TestEvaluate_OtherReplyIsFeedback(t *testing.T) {
	ai := &scriptedAI{replies: []string{"الجواب ناقص، راجع تعريف المتسعة"}}
	logs := new(MockEvaluationLogRepository)
	logs.On("Create", mock.Anything, mock.Anything).Return(nil)

	res, err := newEvaluationService(ai, logs, nil).Evaluate(context.Background(), evaluationRequest())
	require.NoError(t, err)
	assert.Equal(t, models.FeedbackIncorrect, res.Type)
	assert.Equal(t, "الجواب ناقص، راجع تعريف المتسعة", res.Feedback)
}

func TestEvaluate_RetriesAndAuditsEveryAttempt(t *testing.T) {
	boom := errors.New("503 overloaded")
	ai := &scriptedAI{errs: []error{boom, boom}, replies: []string{"", "", "Acceptable"}}
	logs := new(MockEvaluationLogRepository)
	logs.On("Create", mock.Anything, mock.MatchedBy(func(l *models.EvaluationLog) bool {
		return l.Outcome == models.EvaluationFailed && l.Error == boom.Error()
	})).Return(nil).Twice()
	logs.On("Create", mock.Anything, mock.MatchedBy(func(l *models.EvaluationLog) bool {
		return l.Outcome == models.EvaluationAccepted && l.TryIndex == 2
	})).Return(nil).Once()

	res, err := newEvaluationService(ai, logs, nil).Evaluate(context.Background(), evaluationRequest())
	require.NoError(t, err)
	assert.Equal(t, models.FeedbackCorrect, res.Type)
	assert.Equal(t, 3, ai.calls())
	logs.AssertExpectations(t)
}

func TestEvaluate_GivesUpAfterMaxAttempts(t *testing.T) {
	boom := errors.New("timeout")
	ai := &scriptedAI{errs: []error{boom, boom, boom}}
	logs := new(MockEvaluationLogRepository)
	logs.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	_, err := newEvaluationService(ai, logs, nil).Evaluate(context.Background(), evaluationRequest())
	assert.ErrorIs(t, err, ErrEvaluationFailed)
	assert.True(t, IsUpstream(err))
	assert.Equal(t, 3, ai.calls())
	logs.AssertNumberOfCalls(t, "Create", 3)
}

func TestEvaluate_RejectsBlankAnswer(t *testing.T) {
	ai := &scriptedAI{}
	req := evaluationRequest()
	req.UserAnswer = "   "

	_, err := newEvaluationService(ai, new(MockEvaluationLogRepository), nil).Evaluate(context.Background(), req)
	assert.True(t, IsValidation(err))
	assert.Equal(t, 0, ai.calls())
}

func TestIsSkippable(t *testing.T) {
	key := repositories.HistoryKey{Tenant: "ankido", UserID: "u-1", LessonID: "l-1", WidgetID: "w-1"}
	history := new(MockWidgetHistoryRepository)
	history.On("Exists", mock.Anything, key).Return(true, nil).Once()

	svc := newEvaluationService(&scriptedAI{}, nil, history)
	ok, err := svc.IsSkippable(context.Background(), key)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsSkippable(context.Background(), repositories.HistoryKey{})
	require.NoError(t, err)
	assert.False(t, ok)
	history.AssertExpectations(t)
}
