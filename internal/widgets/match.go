package widgets

import (
	"math/rand"
	"sync"
	"time"

	"github.com/SAP-F-2025/widget-service/internal/models"
	"github.com/SAP-F-2025/widget-service/internal/verify"
	"k8s.io/utils/clock"
)

// MismatchRevertDelay is how long a wrong pair stays marked incorrect.
const MismatchRevertDelay = 1500 * time.Millisecond

type MatchBoard struct {
	mu        sync.Mutex
	clock     Clock
	prompt    string
	left      []models.MatchWordItem
	right     []models.MatchWordItem
	selected  string
	completed map[string]bool
	incorrect int
	timers    []clock.Timer
	closed    bool
}

// NewMatchBoard builds both columns and shuffles each independently.
func NewMatchBoard(content *models.MatchContent, rnd *rand.Rand, clk Clock) *MatchBoard {
	left, right := verify.BuildMatchItems(content.Pairs)
	return &MatchBoard{
		clock:     clk,
		prompt:    content.Prompt,
		left:      verify.Shuffle(rnd, left),
		right:     verify.Shuffle(rnd, right),
		completed: make(map[string]bool, len(content.Pairs)),
	}
}

func (b *MatchBoard) Kind() models.WidgetType { return models.WidgetMatch }

func (b *MatchBoard) find(id string) *models.MatchWordItem {
	for i := range b.left {
		if b.left[i].ID == id {
			return &b.left[i]
		}
	}
	for i := range b.right {
		if b.right[i].ID == id {
			return &b.right[i]
		}
	}
	return nil
}

// Click applies one click on itemID.
func (b *MatchBoard) Click(itemID string) (models.MatchOutcome, error) {
	b.mu.Lock()

	if b.closed {
		b.mu.Unlock()
		return "", ErrClosed
	}

	word := b.find(itemID)
	if word == nil {
		b.mu.Unlock()
		return "", ErrUnknownItem
	}
	if b.completed[word.PairID] || word.State == models.MatchIncorrect {
		b.mu.Unlock()
		return "", ErrNotInteractive
	}

	if b.selected == "" {
		word.State = models.MatchSelected
		b.selected = word.ID
		b.mu.Unlock()
		return models.OutcomeSelected, nil
	}

	if b.selected == word.ID {
		word.State = models.MatchIdle
		b.selected = ""
		b.mu.Unlock()
		return models.OutcomeDeselected, nil
	}

	current := b.find(b.selected)
	if current.Column == word.Column {
		current.State = models.MatchIdle
		word.State = models.MatchSelected
		b.selected = word.ID
		b.mu.Unlock()
		return models.OutcomeSwitched, nil
	}

	b.selected = ""
	if verify.IsPair(*current, *word) {
		current.State = models.MatchCorrect
		word.State = models.MatchCorrect
		b.completed[word.PairID] = true
		b.mu.Unlock()
		return models.OutcomeMatched, nil
	}

	current.State = models.MatchIncorrect
	word.State = models.MatchIncorrect
	b.incorrect++
	ids := [2]string{current.ID, word.ID}
	b.mu.Unlock()

	// Scheduled outside the lock: a fake clock runs callbacks while holding its own.
	timer := b.clock.AfterFunc(MismatchRevertDelay, func() { b.revert(ids) })

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		timer.Stop()
	} else {
		b.timers = append(b.timers, timer)
		b.mu.Unlock()
	}
	return models.OutcomeMismatched, nil
}

// revert puts items that are still incorrect back to idle.
func (b *MatchBoard) revert(ids [2]string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	for _, id := range ids {
		if w := b.find(id); w != nil && w.State == models.MatchIncorrect {
			w.State = models.MatchIdle
		}
	}
}

func (b *MatchBoard) Complete() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.completeLocked()
}

func (b *MatchBoard) completeLocked() bool {
	return len(b.left) > 0 && len(b.completed) == len(b.left)
}

// Score is max(0, pairs - wrong attempts).
func (b *MatchBoard) Score() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return verify.MatchScore(len(b.left), b.incorrect)
}

func (b *MatchBoard) IncorrectCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.incorrect
}

func (b *MatchBoard) Snapshot() interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()

	return models.MatchSnapshot{
		Prompt:         b.prompt,
		Left:           append([]models.MatchWordItem(nil), b.left...),
		Right:          append([]models.MatchWordItem(nil), b.right...),
		SelectedID:     b.selected,
		CompletedPairs: len(b.completed),
		TotalPairs:     len(b.left),
		IncorrectCount: b.incorrect,
		Complete:       b.completeLocked(),
	}
}

func (b *MatchBoard) Marks() Marks {
	b.mu.Lock()
	defer b.mu.Unlock()

	incorrect := b.incorrect
	return Marks{
		Total:     float64(len(b.left)),
		Obtained:  float64(verify.MatchScore(len(b.left), b.incorrect)),
		Finished:  b.completeLocked(),
		Incorrect: &incorrect,
	}
}

func (b *MatchBoard) Close() {
	b.mu.Lock()
	b.closed = true
	timers := b.timers
	b.timers = nil
	b.mu.Unlock()

	stopTimers(timers)
}
