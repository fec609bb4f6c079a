package services

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SAP-F-2025/widget-service/internal/content"
	"github.com/SAP-F-2025/widget-service/internal/models"
	"github.com/SAP-F-2025/widget-service/internal/repositories"
	"github.com/SAP-F-2025/widget-service/internal/validator"
	"github.com/SAP-F-2025/widget-service/internal/widgets"
)

const DefaultTenant = "ankido"

type ActionType string

const (
	ActionDrop      ActionType = "drop"
	ActionToggle    ActionType = "toggle"
	ActionClick     ActionType = "click"
	ActionMove      ActionType = "move"
	ActionMoveIndex ActionType = "move_index"
	ActionValidate  ActionType = "validate"
	ActionRetry     ActionType = "retry"
	ActionSubmit    ActionType = "submit"
)

type CreateSessionRequest struct {
	WidgetType models.WidgetType `json:"widget_type" validate:"required,widget_type"`
	// Content is the raw JSON the host passed in the widget URL.
	Content string `json:"content"`
	// Sentences is the legacy sort input, used when Content is blank.
	Sentences string `json:"sentences"`
	Query     string `json:"query"`
	WidgetID  string `json:"widget_id"`
	UserID    string `json:"user_id"`
	LessonID  string `json:"lesson_id"`
	Tenant    string `json:"tenant"`
	Seed      *int64 `json:"seed,omitempty"`
}

type ActionRequest struct {
	Type    ActionType `json:"type" validate:"required,oneof=drop toggle click move move_index validate retry submit"`
	ItemID  string     `json:"item_id"`
	OverID  string     `json:"over_id"`
	X       float64    `json:"x"`
	Y       float64    `json:"y"`
	TokenID *int       `json:"token_id"`
	From    *int       `json:"from"`
	To      *int       `json:"to"`
	Answer  string     `json:"answer"`
	// Wait blocks a quiz submit until the evaluation settles.
	Wait bool `json:"wait"`
}

type SessionView struct {
	ID             string             `json:"id"`
	WidgetType     models.WidgetType  `json:"widget_type"`
	Meta           models.SessionMeta `json:"meta"`
	ContentStatus  content.Status     `json:"content_status"`
	FallbackReason string             `json:"fallback_reason,omitempty"`
	State          interface{}        `json:"state"`
	TotalMarks     float64            `json:"total_marks"`
	ObtainedMarks  float64            `json:"obtained_marks"`
	Finished       bool               `json:"finished"`
	Completed      bool               `json:"completed"`
}

type ActionResult struct {
	Outcome interface{} `json:"outcome,omitempty"`
	Session SessionView `json:"session"`
}

// SkipChecker answers whether a learner may skip a widget.
type SkipChecker interface {
	IsSkippable(ctx context.Context, key repositories.HistoryKey) (bool, error)
}

type session struct {
	mu         sync.Mutex
	id         string
	kind       models.WidgetType
	meta       models.SessionMeta
	query      string
	loaded     content.Result
	widget     widgets.Widget
	lastActive time.Time
	completed  *models.CompletionResponse
	closed     bool
}

type SessionConfig struct {
	IdleTTL time.Duration
}

// SessionService hosts the interaction state machines, one per mounted widget.
type SessionService struct {
	mu       sync.RWMutex
	sessions map[string]*session

	loader    *content.Loader
	validator *validator.Validator
	evaluator widgets.Evaluator
	audio     widgets.AudioSource
	skip      SkipChecker
	reporter  *ReportService
	clock     widgets.Clock
	config    SessionConfig
	seed      func() int64
	logger    *ServiceLogger
}

func NewSessionService(
	loader *content.Loader,
	validator *validator.Validator,
	evaluator widgets.Evaluator,
	audio widgets.AudioSource,
	skip SkipChecker,
	reporter *ReportService,
	clk widgets.Clock,
	config SessionConfig,
	logger *slog.Logger,
) *SessionService {
	if config.IdleTTL <= 0 {
		config.IdleTTL = 30 * time.Minute
	}
	return &SessionService{
		sessions:  make(map[string]*session),
		loader:    loader,
		validator: validator,
		evaluator: evaluator,
		audio:     audio,
		skip:      skip,
		reporter:  reporter,
		clock:     clk,
		config:    config,
		seed:      func() int64 { return time.Now().UnixNano() },
		logger:    NewServiceLogger(logger, LogConfig{Service: "widget-service", Component: "session"}),
	}
}

func (s *SessionService) Create(ctx context.Context, req *CreateSessionRequest) (view *SessionView, err error) {
	op := s.logger.WithOperation(ctx, "create_session", req.UserID)
	defer func() {
		id := ""
		if view != nil {
			id = view.ID
		}
		op.LogResult(id, string(req.WidgetType), err)
	}()

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	meta := models.SessionMeta{
		WidgetID:  req.WidgetID,
		UserID:    req.UserID,
		LessonID:  req.LessonID,
		Tenant:    req.Tenant,
		StartedAt: s.clock.Now(),
	}
	if meta.WidgetID == "" {
		meta.WidgetID = content.DefaultWidgetID
	}
	if meta.Tenant == "" {
		meta.Tenant = DefaultTenant
	}

	seed := s.seed()
	if req.Seed != nil {
		seed = *req.Seed
	}

	sess := &session{
		id:    uuid.NewString(),
		kind:  req.WidgetType,
		meta:  meta,
		query: req.Query,
	}
	sess.loaded = s.loader.DecodeWithSentences(req.WidgetType, req.Content, req.Sentences)
	sess.widget = s.build(ctx, sess.kind, sess.loaded.Value, meta, rand.New(rand.NewSource(seed)))
	sess.lastActive = meta.StartedAt

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	v := s.view(sess)
	return &v, nil
}

// build mounts the machine for kind. Spell starts its audio fetch and quiz
// looks up whether it may be skipped.
func (s *SessionService) build(ctx context.Context, kind models.WidgetType, value interface{}, meta models.SessionMeta, rnd *rand.Rand) widgets.Widget {
	switch kind {
	case models.WidgetDrag:
		return widgets.NewDragBoard(value.(*models.DragContent), rnd)
	case models.WidgetMark:
		return widgets.NewMarkBoard(value.(*models.MarkContent))
	case models.WidgetMatch:
		return widgets.NewMatchBoard(value.(*models.MatchContent), rnd, s.clock)
	case models.WidgetSort:
		return widgets.NewSortBoard(value.(*models.SortContent), rnd)
	case models.WidgetSpell:
		sp := widgets.NewSpellSession(value.(*models.SpellContent), s.audio)
		sp.Start(context.Background())
		return sp
	default:
		q := widgets.NewQuizSession(value.(*models.QuizContent), meta, s.evaluator, rnd, s.clock)
		if s.skip != nil {
			skippable, err := s.skip.IsSkippable(ctx, repositories.HistoryKey{
				Tenant: meta.Tenant, UserID: meta.UserID, LessonID: meta.LessonID, WidgetID: meta.WidgetID,
			})
			if err != nil {
				s.logger.Logger().WarnContext(ctx, "Skippable lookup failed", "widget_id", meta.WidgetID, "error", err)
			}
			q.SetSkippable(skippable)
		}
		return q
	}
}

func (s *SessionService) lookup(id string) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *SessionService) Get(ctx context.Context, id string) (*SessionView, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	v := s.view(sess)
	return &v, nil
}

// Apply feeds one learner event to the session's machine.
func (s *SessionService) Apply(ctx context.Context, id string, action *ActionRequest) (result *ActionResult, err error) {
	op := s.logger.WithOperation(ctx, "apply_"+string(action.Type), "")
	defer func() { op.LogResult(id, "session", err) }()

	if err := s.validator.Validate(action); err != nil {
		return nil, err
	}
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	w := sess.widget
	sess.lastActive = s.clock.Now()
	sess.mu.Unlock()

	outcome, err := s.dispatch(ctx, w, action)
	if err != nil {
		return nil, translateWidgetError(err)
	}
	return &ActionResult{Outcome: outcome, Session: s.view(sess)}, nil
}

func (s *SessionService) dispatch(ctx context.Context, w widgets.Widget, action *ActionRequest) (interface{}, error) {
	switch m := w.(type) {
	case *widgets.DragBoard:
		switch action.Type {
		case ActionDrop:
			return m.Drop(action.ItemID, models.Point{X: action.X, Y: action.Y})
		case ActionValidate:
			return m.Validate()
		}
	case *widgets.MarkBoard:
		switch action.Type {
		case ActionToggle:
			if action.TokenID == nil {
				return nil, NewValidationError("token_id", "token_id is required", nil)
			}
			return m.Toggle(*action.TokenID)
		case ActionValidate:
			return m.Validate()
		case ActionRetry:
			return nil, m.Retry()
		}
	case *widgets.MatchBoard:
		if action.Type == ActionClick {
			return m.Click(action.ItemID)
		}
	case *widgets.SortBoard:
		switch action.Type {
		case ActionMove:
			return nil, m.Move(action.ItemID, action.OverID)
		case ActionMoveIndex:
			if action.From == nil || action.To == nil {
				return nil, NewValidationError("from", "from and to are required", nil)
			}
			return nil, m.MoveIndex(*action.From, *action.To)
		case ActionValidate:
			return m.Validate()
		case ActionRetry:
			return nil, m.Retry()
		}
	case *widgets.SpellSession:
		switch action.Type {
		case ActionSubmit:
			return m.Submit(action.Answer)
		case ActionRetry:
			return nil, m.Retry()
		}
	case *widgets.QuizSession:
		if action.Type == ActionSubmit {
			// the evaluation outlives the request that started it
			done, err := m.Submit(context.WithoutCancel(ctx), action.Answer)
			if err != nil {
				return nil, err
			}
			if action.Wait {
				select {
				case <-done:
				case <-ctx.Done():
				}
			}
			return nil, nil
		}
	}
	return nil, ErrUnknownAction
}

// Reset replaces the session's content and re-initialises its machine.
func (s *SessionService) Reset(ctx context.Context, id string, raw string) (*SessionView, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	meta := sess.meta
	sess.mu.Unlock()

	loaded := s.loader.Decode(sess.kind, raw)
	next := s.build(ctx, sess.kind, loaded.Value, meta, rand.New(rand.NewSource(s.seed())))

	sess.mu.Lock()
	if sess.closed {
		sess.mu.Unlock()
		next.Close()
		return nil, ErrSessionNotFound
	}
	old := sess.widget
	sess.widget = next
	sess.loaded = loaded
	sess.completed = nil
	sess.meta.StartedAt = s.clock.Now()
	sess.lastActive = sess.meta.StartedAt
	sess.mu.Unlock()

	old.Close()

	v := s.view(sess)
	return &v, nil
}

// Complete reports the finished widget and returns the completion marker.
// Completing twice returns the first report.
func (s *SessionService) Complete(ctx context.Context, id string) (*models.CompletionResponse, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.completed != nil {
		done := *sess.completed
		sess.mu.Unlock()
		return &done, nil
	}
	w, meta, query := sess.widget, sess.meta, sess.query
	sess.mu.Unlock()

	marks := w.Marks()
	if !marks.Finished {
		return nil, ErrNotFinished
	}

	resp, err := s.reporter.Report(ctx, models.WidgetResult{
		WidgetID:      meta.WidgetID,
		UserID:        meta.UserID,
		LessonID:      meta.LessonID,
		Tenant:        meta.Tenant,
		WidgetType:    sess.kind,
		TotalMarks:    marks.Total,
		ObtainedMarks: marks.Obtained,
		TimeSpent:     s.clock.Since(meta.StartedAt),
		Incorrect:     marks.Incorrect,
	}, query)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	sess.completed = resp
	sess.mu.Unlock()
	return resp, nil
}

// Close unmounts the session. Pending timers and fetches are cancelled.
func (s *SessionService) Close(ctx context.Context, id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	sess.mu.Lock()
	w := sess.widget
	sess.closed = true
	sess.mu.Unlock()
	w.Close()
	return nil
}

// SweepIdle closes sessions untouched for longer than the idle TTL.
func (s *SessionService) SweepIdle(now time.Time) int {
	var stale []*session

	s.mu.Lock()
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := now.Sub(sess.lastActive) > s.config.IdleTTL
		sess.mu.Unlock()
		if idle {
			stale = append(stale, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range stale {
		sess.mu.Lock()
		w := sess.widget
		sess.closed = true
		sess.mu.Unlock()
		w.Close()
	}
	if len(stale) > 0 {
		s.logger.Logger().Info("Swept idle sessions", "count", len(stale))
	}
	return len(stale)
}

// RunSweeper calls SweepIdle every interval until ctx is done.
func (s *SessionService) RunSweeper(ctx context.Context, interval time.Duration) {
	timer := s.clock.NewTimer(interval)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C():
			s.SweepIdle(s.clock.Now())
			timer.Reset(interval)
		}
	}
}

func (s *SessionService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *SessionService) view(sess *session) SessionView {
	sess.mu.Lock()
	w := sess.widget
	v := SessionView{
		ID:             sess.id,
		WidgetType:     sess.kind,
		Meta:           sess.meta,
		ContentStatus:  sess.loaded.Status,
		FallbackReason: sess.loaded.Reason,
		Completed:      sess.completed != nil,
	}
	sess.mu.Unlock()

	marks := w.Marks()
	v.State = w.Snapshot()
	v.TotalMarks = marks.Total
	v.ObtainedMarks = marks.Obtained
	v.Finished = marks.Finished
	return v
}
