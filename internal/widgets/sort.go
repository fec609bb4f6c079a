package widgets

import (
	"math/rand"
	"sync"

	"github.com/SAP-F-2025/widget-service/internal/models"
	"github.com/SAP-F-2025/widget-service/internal/verify"
)

type SortBoard struct {
	mu        sync.Mutex
	prompt    string
	canonical []models.SortItem
	items     []models.SortItem
	rnd       *rand.Rand
	result    *models.SortResult
	closed    bool
}

// NewSortBoard lays the sentences out in a shuffled, never canonical, order.
func NewSortBoard(content *models.SortContent, rnd *rand.Rand) *SortBoard {
	canonical := verify.BuildSortItems(content.Sentences)
	return &SortBoard{
		prompt:    content.Prompt,
		canonical: canonical,
		items:     verify.ShuffleNonIdentity(rnd, canonical),
		rnd:       rnd,
	}
}

func (b *SortBoard) Kind() models.WidgetType { return models.WidgetSort }

// Move drops activeID over overID. Dropping on itself or an unknown target is a no-op.
func (b *SortBoard) Move(activeID, overID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.interactive(); err != nil {
		return err
	}

	from := b.indexOf(activeID)
	if from < 0 {
		return ErrUnknownItem
	}
	to := b.indexOf(overID)
	if to < 0 || to == from {
		return nil
	}

	b.items = verify.ArrayMove(b.items, from, to)
	return nil
}

// MoveIndex is the keyboard variant of Move.
func (b *SortBoard) MoveIndex(from, to int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.interactive(); err != nil {
		return err
	}
	if from < 0 || from >= len(b.items) || to < 0 || to >= len(b.items) {
		return ErrUnknownItem
	}

	b.items = verify.ArrayMove(b.items, from, to)
	return nil
}

func (b *SortBoard) interactive() error {
	if b.closed {
		return ErrClosed
	}
	if b.result != nil {
		return ErrLocked
	}
	return nil
}

func (b *SortBoard) indexOf(id string) int {
	for i, item := range b.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (b *SortBoard) Validate() (models.SortResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return models.SortResult{}, ErrClosed
	}
	if b.result != nil {
		return models.SortResult{}, ErrAlreadyValidated
	}

	res := verify.CheckOrder(b.items)
	b.result = &res
	return res, nil
}

// Retry reshuffles and clears the previous check.
func (b *SortBoard) Retry() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}
	b.items = verify.ShuffleNonIdentity(b.rnd, b.canonical)
	b.result = nil
	return nil
}

func (b *SortBoard) Snapshot() interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()

	snap := models.SortSnapshot{
		Prompt:  b.prompt,
		Items:   append([]models.SortItem(nil), b.items...),
		Checked: b.result != nil,
	}
	if b.result != nil {
		res := *b.result
		res.Results = append([]bool(nil), b.result.Results...)
		snap.Result = &res
	}
	return snap
}

func (b *SortBoard) Marks() Marks {
	b.mu.Lock()
	defer b.mu.Unlock()

	m := Marks{Total: float64(len(b.items))}
	if b.result != nil {
		m.Obtained = float64(b.result.CorrectCount)
		m.Finished = true
	}
	return m
}

func (b *SortBoard) Close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
}
