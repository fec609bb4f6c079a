package widgets

import (
	"context"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/SAP-F-2025/widget-service/internal/models"
	"k8s.io/utils/clock"
)

const (
	QuizFullMark    = 5.0
	QuizMaxTries    = 3
	ProgressTick    = 500 * time.Millisecond
	ProgressSpan    = 10 * time.Second
	ProgressCeiling = 90.0
	// LoadingTimeout unlocks the input even if the evaluation has not returned.
	LoadingTimeout = 5 * time.Second

	// RetryMessage is shown to the learner when evaluation failed for good.
	RetryMessage = "اسف صار خطأ بتدقيق الاجابة، بلا زحمة جرب مرة ثانية"
)

// Evaluator judges a free-text answer.
type Evaluator interface {
	Evaluate(ctx context.Context, req models.EvaluationRequest) (models.EvaluationResult, error)
}

type QuizSession struct {
	mu        sync.Mutex
	clock     Clock
	rnd       *rand.Rand
	evaluator Evaluator
	content   *models.QuizContent
	meta      models.SessionMeta

	answer       string
	pending      bool
	progress     float64
	feedback     string
	feedbackType models.FeedbackType
	tryCount     int
	skippable    bool

	generation int
	timers     []clock.Timer
	cancel     context.CancelFunc
	closed     bool
}

func NewQuizSession(content *models.QuizContent, meta models.SessionMeta, evaluator Evaluator, rnd *rand.Rand, clk Clock) *QuizSession {
	return &QuizSession{
		clock:     clk,
		rnd:       rnd,
		evaluator: evaluator,
		content:   content,
		meta:      meta,
	}
}

func (q *QuizSession) Kind() models.WidgetType { return models.WidgetQuiz }

func (q *QuizSession) SetSkippable(skippable bool) {
	q.mu.Lock()
	q.skippable = skippable
	q.mu.Unlock()
}

// Submit starts evaluating answer in the background. The returned channel
// closes when that evaluation has settled.
func (q *QuizSession) Submit(ctx context.Context, answer string) (<-chan struct{}, error) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil, ErrClosed
	}
	if q.pending {
		q.mu.Unlock()
		return nil, ErrPending
	}
	if q.feedbackType == models.FeedbackCorrect {
		q.mu.Unlock()
		return nil, ErrAlreadyValidated
	}
	if strings.TrimSpace(answer) == "" {
		q.mu.Unlock()
		return nil, ErrEmptyInput
	}

	q.generation++
	gen := q.generation
	q.answer = answer
	q.pending = true
	q.progress = 0
	q.feedback = ""
	q.feedbackType = ""

	if q.cancel != nil {
		q.cancel()
	}
	evalCtx, cancel := context.WithCancel(ctx)
	q.cancel = cancel

	stale := q.timers
	q.timers = nil

	req := models.EvaluationRequest{
		UserID:          q.meta.UserID,
		LessonID:        q.meta.LessonID,
		WidgetID:        q.meta.WidgetID,
		Tenant:          q.meta.Tenant,
		Subject:         q.content.Subject,
		Lesson:          q.content.Lesson,
		Question:        q.content.Question,
		UserAnswer:      answer,
		ReferenceAnswer: q.content.Answer,
	}
	q.mu.Unlock()

	stopTimers(stale)
	q.schedule(gen)

	done := make(chan struct{})
	go func() {
		defer close(done)
		res, err := q.evaluator.Evaluate(evalCtx, req)
		q.settle(gen, res, err)
	}()

	return done, nil
}

// schedule registers the progress ticks and the loading timeout of one submission.
func (q *QuizSession) schedule(gen int) {
	timers := make([]clock.Timer, 0, int(ProgressSpan/ProgressTick)+1)
	for d := ProgressTick; d < ProgressSpan; d += ProgressTick {
		timers = append(timers, q.clock.AfterFunc(d, func() { q.tick(gen) }))
	}
	timers = append(timers, q.clock.AfterFunc(ProgressSpan, func() { q.fillProgress(gen) }))
	timers = append(timers, q.clock.AfterFunc(LoadingTimeout, func() { q.unlock(gen) }))

	q.mu.Lock()
	if q.closed || q.generation != gen {
		q.mu.Unlock()
		stopTimers(timers)
		return
	}
	q.timers = append(q.timers, timers...)
	q.mu.Unlock()
}

func (q *QuizSession) current(gen int) bool {
	return !q.closed && q.generation == gen
}

func (q *QuizSession) tick(gen int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.current(gen) || q.feedbackType != "" {
		return
	}
	maxIncrement := 100 * float64(time.Second) / float64(ProgressSpan)
	increment := q.rnd.Float64()*(maxIncrement*0.75) + maxIncrement*0.25
	q.progress = math.Min(q.progress+increment, ProgressCeiling)
}

func (q *QuizSession) fillProgress(gen int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.current(gen) {
		q.progress = 100
	}
}

func (q *QuizSession) unlock(gen int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.current(gen) {
		q.pending = false
	}
}

func (q *QuizSession) settle(gen int, res models.EvaluationResult, err error) {
	q.mu.Lock()
	if !q.current(gen) {
		q.mu.Unlock()
		return
	}

	if err != nil {
		q.feedback = RetryMessage
		q.feedbackType = models.FeedbackError
	} else {
		q.feedback = res.Feedback
		q.feedbackType = res.Type
	}
	q.tryCount++
	q.pending = false
	q.progress = 100

	timers := q.timers
	q.timers = nil
	q.mu.Unlock()

	stopTimers(timers)
}

// CanFinish reports whether the learner may leave the widget.
func (q *QuizSession) CanFinish() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.canFinishLocked()
}

func (q *QuizSession) canFinishLocked() bool {
	return q.feedbackType == models.FeedbackCorrect || q.tryCount >= QuizMaxTries || q.skippable
}

// ObtainedMarks decays with every try: 5, 3, 2, 0 for a correct answer on
// the first to fourth try.
func ObtainedMarks(correct bool, tryCount int) float64 {
	if !correct {
		return 0
	}
	return math.Max(0, math.Round(QuizFullMark*float64(4-tryCount)/3))
}

func (q *QuizSession) Snapshot() interface{} {
	q.mu.Lock()
	defer q.mu.Unlock()

	return models.QuizSnapshot{
		Question:     q.content.Question,
		Subject:      q.content.Subject,
		Lesson:       q.content.Lesson,
		Answer:       q.answer,
		Pending:      q.pending,
		Progress:     q.progress,
		Feedback:     q.feedback,
		FeedbackType: q.feedbackType,
		TryCount:     q.tryCount,
		Skippable:    q.skippable,
		CanFinish:    q.canFinishLocked(),
	}
}

func (q *QuizSession) Marks() Marks {
	q.mu.Lock()
	defer q.mu.Unlock()

	return Marks{
		Total:    QuizFullMark,
		Obtained: ObtainedMarks(q.feedbackType == models.FeedbackCorrect, q.tryCount),
		Finished: q.canFinishLocked(),
	}
}

// Close drops any pending evaluation; its result will be ignored.
func (q *QuizSession) Close() {
	q.mu.Lock()
	q.closed = true
	timers := q.timers
	q.timers = nil
	cancel := q.cancel
	q.mu.Unlock()

	stopTimers(timers)
	if cancel != nil {
		cancel()
	}
}
