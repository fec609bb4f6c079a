package verify

import (
	"strconv"

	"github.com/SAP-F-2025/widget-service/internal/models"
)

// BuildMatchItems creates one left and one right item per pair, in pair order.
func BuildMatchItems(pairs []models.MatchPair) (left, right []models.MatchWordItem) {
	left = make([]models.MatchWordItem, 0, len(pairs))
	right = make([]models.MatchWordItem, 0, len(pairs))

	for i, pair := range pairs {
		pairID := strconv.Itoa(i)
		left = append(left, models.MatchWordItem{
			ID:     "left-" + pairID,
			Text:   pair.Left,
			PairID: pairID,
			Column: models.ColumnLeft,
			State:  models.MatchIdle,
		})
		right = append(right, models.MatchWordItem{
			ID:     "right-" + pairID,
			Text:   pair.Right,
			PairID: pairID,
			Column: models.ColumnRight,
			State:  models.MatchIdle,
		})
	}

	return left, right
}

// IsPair reports whether a and b sit in opposite columns and share a pair id.
func IsPair(a, b models.MatchWordItem) bool {
	return a.Column != b.Column && a.PairID == b.PairID
}

// MatchScore is the number of pairs minus wrong attempts, never negative.
func MatchScore(totalPairs, incorrect int) int {
	if score := totalPairs - incorrect; score > 0 {
		return score
	}
	return 0
}
