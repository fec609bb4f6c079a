package verify

import (
	"math/rand"
	"strconv"

	"github.com/SAP-F-2025/widget-service/internal/models"
)

// Shuffle returns a Fisher-Yates permutation of items. The input is not modified.
func Shuffle[T any](rnd *rand.Rand, items []T) []T {
	out := append([]T(nil), items...)
	for i := len(out) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// ShuffleNonIdentity shuffles sort items and retries while the result is
// still in canonical order. Lists shorter than two are returned as is.
func ShuffleNonIdentity(rnd *rand.Rand, items []models.SortItem) []models.SortItem {
	if len(items) < 2 {
		return append([]models.SortItem(nil), items...)
	}
	for {
		out := Shuffle(rnd, items)
		if !inCanonicalOrder(out) {
			return out
		}
	}
}

func inCanonicalOrder(items []models.SortItem) bool {
	for i, item := range items {
		if item.CorrectIndex != i {
			return false
		}
	}
	return true
}

// ArrayMove removes the element at from and inserts it at to.
func ArrayMove[T any](items []T, from, to int) []T {
	out := append([]T(nil), items...)
	if from < 0 || from >= len(out) || to < 0 || to >= len(out) || from == to {
		return out
	}
	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]T{moved}, out[to:]...)...)
	return out
}

// CheckOrder compares each item's position with its canonical index.
func CheckOrder(items []models.SortItem) models.SortResult {
	results := make([]bool, len(items))
	correct := 0
	for i, item := range items {
		results[i] = item.CorrectIndex == i
		if results[i] {
			correct++
		}
	}
	return models.SortResult{
		Results:      results,
		CorrectCount: correct,
		AllCorrect:   correct == len(items),
	}
}

// BuildSortItems turns canonical sentences into items, in canonical order.
func BuildSortItems(sentences []string) []models.SortItem {
	items := make([]models.SortItem, len(sentences))
	for i, s := range sentences {
		items[i] = models.SortItem{ID: sortItemID(i), Text: s, CorrectIndex: i}
	}
	return items
}

func sortItemID(i int) string {
	return "item-" + strconv.Itoa(i)
}
