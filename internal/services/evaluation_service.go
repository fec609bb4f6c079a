package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/SAP-F-2025/widget-service/internal/models"
	"github.com/SAP-F-2025/widget-service/internal/repositories"
	"github.com/SAP-F-2025/widget-service/internal/validator"
)

// acceptedVerdict is the exact reply the model gives for a correct answer.
const acceptedVerdict = "Acceptable"

var praisePrefixes = []string{"صحيح!! ", "ممتاز!! ", "بالضبط!! ", "احسنت!! "}

const evaluationPromptTemplate = `You are an AI assistant designed to verify student answers for a %[1]s lecture.
The student watched a lecture on %[2]s for Iraqi high school students.
I will provide you with a question and the student's typed answer.
Your task is to:
1.  **Assess the correctness** of the student's answer based on the provided model/ideal answer.
2.  If the answer is **correct/acceptable**, simply respond with "Acceptable".
3.  If the answer is **incorrect/unacceptable**, provide a polite and helpful response for the student. This response should:
    *   Clearly indicate that the answer needs review or is incomplete/incorrect.
    *   Explain *why* the answer is incorrect or insufficient, referencing the relevant concept from the lecture, *without directly giving away the correct answer*.
    *   Ensure the language of the response is appropriate for an Iraqi high school student (casual Iraqi Arabic).
    *   If the answer is only partially correct, remind the student to type the full correct answer in a single reply.
    *   If the response is asking for help, provide a hint to help the student get unstuck.

Your reply doesn't need to have any greetings like "hello" or "good luck".

Here is the question the student was asked:
%[3]s

Here is the student's answer:
%[4]s

Here is the model/ideal answer for reference (do not show this to the student):
%[5]s`

// BuildEvaluationPrompt renders the grading instructions for one answer.
func BuildEvaluationPrompt(req models.EvaluationRequest) string {
	return fmt.Sprintf(evaluationPromptTemplate, req.Subject, req.Lesson, req.Question, req.UserAnswer, req.ReferenceAnswer)
}

// TextGenerator is the AI capability the evaluator needs.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type EvaluationConfig struct {
	Model       string
	MaxAttempts int
}

type EvaluationService struct {
	ai        TextGenerator
	logs      repositories.EvaluationLogRepository
	history   repositories.WidgetHistoryRepository
	validator *validator.Validator
	config    EvaluationConfig
	logger    *ServiceLogger

	rndMu sync.Mutex
	rnd   *rand.Rand
	now   func() time.Time
}

func NewEvaluationService(
	ai TextGenerator,
	logs repositories.EvaluationLogRepository,
	history repositories.WidgetHistoryRepository,
	validator *validator.Validator,
	config EvaluationConfig,
	rnd *rand.Rand,
	logger *slog.Logger,
) *EvaluationService {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 3
	}
	return &EvaluationService{
		ai:        ai,
		logs:      logs,
		history:   history,
		validator: validator,
		config:    config,
		rnd:       rnd,
		now:       time.Now,
		logger:    NewServiceLogger(logger, LogConfig{Service: "widget-service", Component: "evaluation"}),
	}
}

// Evaluate asks the model to judge req.UserAnswer, retrying failed calls.
func (s *EvaluationService) Evaluate(ctx context.Context, req models.EvaluationRequest) (result models.EvaluationResult, err error) {
	op := s.logger.WithOperation(ctx, "evaluate_answer", req.UserID)
	defer func() { op.LogResult(req.WidgetID, "quiz", err) }()

	if err := s.validator.Validate(req); err != nil {
		return models.EvaluationResult{}, err
	}

	prompt := BuildEvaluationPrompt(req)
	payload, _ := json.Marshal(req)

	var lastErr error
	for try := 0; try < s.config.MaxAttempts; try++ {
		if ctx.Err() != nil {
			lastErr = ctx.Err()
			break
		}

		start := s.now()
		reply, callErr := s.ai.GenerateText(ctx, prompt)
		elapsed := s.now().Sub(start)

		entry := &models.EvaluationLog{
			ID:          uuid.NewString(),
			TryIndex:    try,
			UserID:      req.UserID,
			Tenant:      req.Tenant,
			LessonID:    req.LessonID,
			WidgetID:    req.WidgetID,
			Model:       s.config.Model,
			Prompt:      prompt,
			Request:     datatypes.JSON(payload),
			TimeTakenMs: elapsed.Milliseconds(),
			CreatedAt:   s.now(),
		}

		if callErr != nil {
			lastErr = callErr
			entry.Outcome = models.EvaluationFailed
			entry.Error = callErr.Error()
			s.audit(ctx, entry)
			s.logger.Logger().WarnContext(ctx, "AI evaluation attempt failed",
				"attempt", try, "widget_id", req.WidgetID, "duration", elapsed, "error", callErr)
			continue
		}

		result = s.interpret(reply, req.ReferenceAnswer)
		entry.AIResponse = reply
		entry.Outcome = models.EvaluationFeedback
		if result.Type == models.FeedbackCorrect {
			entry.Outcome = models.EvaluationAccepted
		}
		s.audit(ctx, entry)
		return result, nil
	}

	return models.EvaluationResult{}, fmt.Errorf("%w after %d attempts: %v", ErrEvaluationFailed, s.config.MaxAttempts, lastErr)
}

func (s *EvaluationService) interpret(reply, reference string) models.EvaluationResult {
	if strings.TrimSpace(reply) == acceptedVerdict {
		return models.EvaluationResult{
			Type:     models.FeedbackCorrect,
			Feedback: s.praise() + reference,
		}
	}
	return models.EvaluationResult{Type: models.FeedbackIncorrect, Feedback: reply}
}

func (s *EvaluationService) praise() string {
	s.rndMu.Lock()
	defer s.rndMu.Unlock()
	return praisePrefixes[s.rnd.Intn(len(praisePrefixes))]
}

// audit failures never reach the learner.
func (s *EvaluationService) audit(ctx context.Context, entry *models.EvaluationLog) {
	if s.logs == nil {
		return
	}
	if err := s.logs.Create(context.WithoutCancel(ctx), entry); err != nil {
		s.logger.Logger().ErrorContext(ctx, "Failed to store evaluation log",
			"widget_id", entry.WidgetID, "attempt", entry.TryIndex, "error", err)
	}
}

// IsSkippable reports whether the learner already finished this widget once.
func (s *EvaluationService) IsSkippable(ctx context.Context, key repositories.HistoryKey) (bool, error) {
	if s.history == nil || key.UserID == "" {
		return false, nil
	}
	ok, err := s.history.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to look up widget history: %w", err)
	}
	return ok, nil
}
