package verify

import (
	"math"
	"strings"
	"unicode"

	"github.com/SAP-F-2025/widget-service/internal/models"
)

// PassThreshold is the minimum dictation accuracy, in percent, that passes.
const PassThreshold = 90.0

// Normalize lowercases text, drops everything but letters, numbers and
// whitespace, and collapses whitespace runs to single spaces.
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(strings.TrimSpace(text)) {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// CompareSpelling aligns the words of reference and input by position.
// There is no re-alignment after an insertion or deletion.
func CompareSpelling(reference, input string) models.SpellResult {
	ref := strings.Fields(Normalize(reference))
	got := strings.Fields(Normalize(input))

	n := len(ref)
	if len(got) > n {
		n = len(got)
	}

	comparison := make([]models.SpellComparisonEntry, 0, n)
	correct := 0
	for i := 0; i < n; i++ {
		switch {
		case i >= len(ref):
			comparison = append(comparison, models.SpellComparisonEntry{Word: got[i], Expected: models.SpellExtraWord})
		case i >= len(got):
			comparison = append(comparison, models.SpellComparisonEntry{Word: models.SpellMissingWord, Expected: ref[i]})
		case got[i] == ref[i]:
			comparison = append(comparison, models.SpellComparisonEntry{Word: got[i], Correct: true})
			correct++
		default:
			comparison = append(comparison, models.SpellComparisonEntry{Word: got[i], Expected: ref[i]})
		}
	}

	accuracy := 0.0
	if len(ref) > 0 {
		accuracy = float64(correct) / float64(len(ref)) * 100
	}

	return models.SpellResult{
		IsCorrect:  accuracy >= PassThreshold,
		Accuracy:   accuracy,
		Comparison: comparison,
	}
}

// RoundAccuracy rounds an accuracy to two decimals for display.
func RoundAccuracy(accuracy float64) float64 {
	return math.Round(accuracy*100) / 100
}

// Passed applies the shared pass mark: at least half of the total.
func Passed(obtained, total float64) bool {
	return obtained >= total/2
}

// PassingMarks is the mark needed to pass out of total.
func PassingMarks(total float64) float64 {
	return total / 2
}
