package widgets

import (
	"sync"

	"github.com/SAP-F-2025/widget-service/internal/models"
	"github.com/SAP-F-2025/widget-service/internal/verify"
)

type MarkBoard struct {
	mu      sync.Mutex
	content *models.MarkContent
	tokens  []models.WordToken
	result  *models.MarkResult
	closed  bool
}

func NewMarkBoard(content *models.MarkContent) *MarkBoard {
	return &MarkBoard{
		content: content,
		tokens:  verify.ParseParagraph(content.Paragraph),
	}
}

func (b *MarkBoard) Kind() models.WidgetType { return models.WidgetMark }

// Toggle flips a token between idle and selected.
func (b *MarkBoard) Toggle(tokenID int) (models.TokenState, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return "", ErrClosed
	}
	if b.result != nil {
		return "", ErrLocked
	}
	if tokenID < 0 || tokenID >= len(b.tokens) {
		return "", ErrUnknownItem
	}

	tok := &b.tokens[tokenID]
	if tok.State == models.TokenSelected {
		tok.State = models.TokenIdle
	} else {
		tok.State = models.TokenSelected
	}
	return tok.State, nil
}

func (b *MarkBoard) Validate() (models.MarkResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return models.MarkResult{}, ErrClosed
	}
	if b.result != nil {
		return models.MarkResult{}, ErrAlreadyValidated
	}

	res := verify.ScoreTokens(b.tokens)
	b.tokens = res.Tokens
	b.result = &res
	return res, nil
}

// Retry starts over from the freshly parsed paragraph.
func (b *MarkBoard) Retry() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}
	b.tokens = verify.ParseParagraph(b.content.Paragraph)
	b.result = nil
	return nil
}

func (b *MarkBoard) Snapshot() interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()

	snap := models.MarkSnapshot{
		Prompt:  b.content.Prompt,
		Tokens:  append([]models.WordToken(nil), b.tokens...),
		Checked: b.result != nil,
	}
	for _, tok := range b.tokens {
		if tok.State == models.TokenSelected {
			snap.SelectedCount++
		}
		if tok.IsCorrect {
			snap.CorrectTotal++
		}
	}
	if b.result != nil {
		score := b.result.Score
		snap.Score = &score
		snap.AllCorrect = b.result.AllCorrect
	}
	return snap
}

// Marks counts correct picks less wrong picks, out of the required tokens.
func (b *MarkBoard) Marks() Marks {
	b.mu.Lock()
	defer b.mu.Unlock()

	m := Marks{}
	for _, tok := range b.tokens {
		if tok.IsCorrect {
			m.Total++
		}
	}
	if b.result == nil {
		return m
	}

	wrong := 0
	for _, tok := range b.result.Tokens {
		if tok.State == models.TokenIncorrect {
			wrong++
		}
	}
	if obtained := b.result.Score.Correct - wrong; obtained > 0 {
		m.Obtained = float64(obtained)
	}
	m.Finished = true
	return m
}

func (b *MarkBoard) Close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
}
