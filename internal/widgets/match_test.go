package widgets

import (
	"math/rand"
	"strconv"
	"testing"
	"time"

	"github.com/SAP-F-2025/widget-service/internal/content"
	"github.com/SAP-F-2025/widget-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"
)

func newMatchBoard(t *testing.T, pairs ...models.MatchPair) (*MatchBoard, *testingclock.FakeClock) {
	t.Helper()
	clk := testingclock.NewFakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	board := NewMatchBoard(&models.MatchContent{Prompt: "p", Pairs: pairs}, rand.New(rand.NewSource(42)), clk)
	return board, clk
}

func itemState(t *testing.T, b *MatchBoard, id string) models.MatchState {
	t.Helper()
	snap := b.Snapshot().(models.MatchSnapshot)
	for _, w := range append(snap.Left, snap.Right...) {
		if w.ID == id {
			return w.State
		}
	}
	t.Fatalf("item %s not found", id)
	return ""
}

func TestMatchBoard_MismatchRevertsAfterDelay(t *testing.T) {
	board, clk := newMatchBoard(t,
		models.MatchPair{Left: "apple", Right: "تفاحة"},
		models.MatchPair{Left: "book", Right: "كتاب"},
	)

	out, err := board.Click("left-0")
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeSelected, out)

	out, err = board.Click("right-1")
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeMismatched, out)

	assert.Equal(t, models.MatchIncorrect, itemState(t, board, "left-0"))
	assert.Equal(t, models.MatchIncorrect, itemState(t, board, "right-1"))
	assert.Equal(t, 1, board.IncorrectCount())

	_, err = board.Click("left-0")
	assert.ErrorIs(t, err, ErrNotInteractive)

	clk.Step(MismatchRevertDelay - time.Millisecond)
	assert.Equal(t, models.MatchIncorrect, itemState(t, board, "left-0"))

	clk.Step(time.Millisecond)
	assert.Equal(t, models.MatchIdle, itemState(t, board, "left-0"))
	assert.Equal(t, models.MatchIdle, itemState(t, board, "right-1"))
	assert.Equal(t, 1, board.IncorrectCount())
	assert.False(t, clk.HasWaiters())
}

func TestMatchBoard_SelectionRules(t *testing.T) {
	board, _ := newMatchBoard(t,
		models.MatchPair{Left: "apple", Right: "تفاحة"},
		models.MatchPair{Left: "book", Right: "كتاب"},
	)

	out, err := board.Click("left-0")
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeSelected, out)

	out, err = board.Click("left-0")
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeDeselected, out)
	assert.Equal(t, models.MatchIdle, itemState(t, board, "left-0"))

	_, err = board.Click("left-0")
	require.NoError(t, err)
	out, err = board.Click("left-1")
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeSwitched, out)
	assert.Equal(t, models.MatchIdle, itemState(t, board, "left-0"))
	assert.Equal(t, models.MatchSelected, itemState(t, board, "left-1"))

	out, err = board.Click("right-1")
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeMatched, out)
	assert.Equal(t, models.MatchCorrect, itemState(t, board, "left-1"))
	assert.Equal(t, models.MatchCorrect, itemState(t, board, "right-1"))

	_, err = board.Click("right-1")
	assert.ErrorIs(t, err, ErrNotInteractive)

	_, err = board.Click("middle-0")
	assert.ErrorIs(t, err, ErrUnknownItem)
}

func TestMatchBoard_CompleteAndScore(t *testing.T) {
	c := content.SampleMatch()
	clk := testingclock.NewFakeClock(time.Now())
	board := NewMatchBoard(c, rand.New(rand.NewSource(9)), clk)

	// one wrong attempt first
	_, err := board.Click("right-0")
	require.NoError(t, err)
	_, err = board.Click("left-4")
	require.NoError(t, err)
	clk.Step(MismatchRevertDelay)

	for i := range c.Pairs {
		assert.False(t, board.Complete())
		_, err := board.Click("right-" + strconv.Itoa(i))
		require.NoError(t, err)
		out, err := board.Click("left-" + strconv.Itoa(i))
		require.NoError(t, err)
		assert.Equal(t, models.OutcomeMatched, out)
	}

	assert.True(t, board.Complete())
	assert.Equal(t, 4, board.Score())

	m := board.Marks()
	require.NotNil(t, m.Incorrect)
	assert.Equal(t, 1, *m.Incorrect)
	assert.Equal(t, 5.0, m.Total)
	assert.Equal(t, 4.0, m.Obtained)
	assert.True(t, m.Finished)

	snap := board.Snapshot().(models.MatchSnapshot)
	assert.Equal(t, 5, snap.CompletedPairs)
	assert.LessOrEqual(t, snap.CompletedPairs, snap.TotalPairs)
}

func TestMatchBoard_ColumnsHoldEachPairOnce(t *testing.T) {
	board, _ := newMatchBoard(t, content.SampleMatch().Pairs...)
	snap := board.Snapshot().(models.MatchSnapshot)

	for _, column := range [][]models.MatchWordItem{snap.Left, snap.Right} {
		seen := map[string]int{}
		for _, w := range column {
			seen[w.PairID]++
		}
		assert.Len(t, seen, 5)
		for _, n := range seen {
			assert.Equal(t, 1, n)
		}
	}
}

func TestMatchBoard_CloseCancelsRevert(t *testing.T) {
	board, clk := newMatchBoard(t,
		models.MatchPair{Left: "apple", Right: "تفاحة"},
		models.MatchPair{Left: "book", Right: "كتاب"},
	)

	_, err := board.Click("left-0")
	require.NoError(t, err)
	_, err = board.Click("right-1")
	require.NoError(t, err)
	require.True(t, clk.HasWaiters())

	board.Close()
	assert.False(t, clk.HasWaiters())

	clk.Step(MismatchRevertDelay)
	assert.Equal(t, models.MatchIncorrect, itemState(t, board, "left-0"))

	_, err = board.Click("left-1")
	assert.ErrorIs(t, err, ErrClosed)
}
