package widgets

import (
	"math/rand"
	"testing"

	"github.com/SAP-F-2025/widget-service/internal/content"
	"github.com/SAP-F-2025/widget-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sortIDs(b *SortBoard) []string {
	snap := b.Snapshot().(models.SortSnapshot)
	ids := make([]string, len(snap.Items))
	for i, item := range snap.Items {
		ids[i] = item.ID
	}
	return ids
}

// arrange reorders the board into the given id order using keyboard moves.
func arrange(t *testing.T, b *SortBoard, order ...string) {
	t.Helper()
	for target, id := range order {
		for from, cur := range sortIDs(b) {
			if cur == id {
				require.NoError(t, b.MoveIndex(from, target))
				break
			}
		}
	}
	require.Equal(t, order, sortIDs(b))
}

func TestSortBoard_NeverStartsCanonical(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	c := &models.SortContent{Sentences: []string{"a", "b"}}

	for i := 0; i < 200; i++ {
		b := NewSortBoard(c, rnd)
		assert.Equal(t, []string{"item-1", "item-0"}, sortIDs(b))
	}
}

func TestSortBoard_SwappedPairVector(t *testing.T) {
	b := NewSortBoard(content.SampleSort(), rand.New(rand.NewSource(5)))

	arrange(t, b, "item-0", "item-3", "item-2", "item-1", "item-4")

	res, err := b.Validate()
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true, false, true}, res.Results)
	assert.Equal(t, 3, res.CorrectCount)
	assert.False(t, res.AllCorrect)
	assert.Equal(t, Marks{Total: 5, Obtained: 3, Finished: true}, b.Marks())
}

func TestSortBoard_AdjacentSwap(t *testing.T) {
	b := NewSortBoard(content.SampleSort(), rand.New(rand.NewSource(5)))

	arrange(t, b, "item-0", "item-2", "item-1", "item-3", "item-4")

	res, err := b.Validate()
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, false, true, true}, res.Results)
}

func TestSortBoard_MoveAndLock(t *testing.T) {
	b := NewSortBoard(content.SampleSort(), rand.New(rand.NewSource(5)))
	arrange(t, b, "item-4", "item-3", "item-2", "item-1", "item-0")

	require.NoError(t, b.Move("item-0", "item-4"))
	assert.Equal(t, []string{"item-0", "item-4", "item-3", "item-2", "item-1"}, sortIDs(b))

	// dropping on itself or nowhere changes nothing
	require.NoError(t, b.Move("item-3", "item-3"))
	require.NoError(t, b.Move("item-3", "missing"))
	assert.Equal(t, []string{"item-0", "item-4", "item-3", "item-2", "item-1"}, sortIDs(b))

	assert.ErrorIs(t, b.Move("missing", "item-0"), ErrUnknownItem)
	assert.ErrorIs(t, b.MoveIndex(0, 7), ErrUnknownItem)

	arrange(t, b, "item-0", "item-1", "item-2", "item-3", "item-4")
	res, err := b.Validate()
	require.NoError(t, err)
	assert.True(t, res.AllCorrect)

	assert.ErrorIs(t, b.Move("item-0", "item-1"), ErrLocked)
	_, err = b.Validate()
	assert.ErrorIs(t, err, ErrAlreadyValidated)

	require.NoError(t, b.Retry())
	snap := b.Snapshot().(models.SortSnapshot)
	assert.False(t, snap.Checked)
	assert.NotEqual(t, []string{"item-0", "item-1", "item-2", "item-3", "item-4"}, sortIDs(b))

	b.Close()
	assert.ErrorIs(t, b.Retry(), ErrClosed)
}
