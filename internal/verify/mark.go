package verify

import (
	"regexp"
	"strings"

	"github.com/SAP-F-2025/widget-service/internal/models"
)

var markedToken = regexp.MustCompile(`^\*(.+)\*$`)

// ParseParagraph splits text on whitespace. A token written as *word* is a
// required answer stored without its asterisks; stray asterisks are removed
// from every other token. Other punctuation is kept as written.
func ParseParagraph(text string) []models.WordToken {
	words := strings.Fields(text)
	tokens := make([]models.WordToken, 0, len(words))

	for i, word := range words {
		token := models.WordToken{ID: i, State: models.TokenIdle}
		if m := markedToken.FindStringSubmatch(word); m != nil {
			token.Text = m[1]
			token.IsCorrect = true
		} else {
			token.Text = strings.ReplaceAll(word, "*", "")
		}
		tokens = append(tokens, token)
	}

	return tokens
}

// ScoreTokens resolves the final state of every token from the learner's
// selection and counts correctly selected answers.
func ScoreTokens(tokens []models.WordToken) models.MarkResult {
	out := make([]models.WordToken, len(tokens))
	score := models.Score{}
	wrong := false

	for i, token := range tokens {
		selected := token.State == models.TokenSelected
		switch {
		case token.IsCorrect && selected:
			token.State = models.TokenCorrect
			score.Correct++
		case token.IsCorrect:
			token.State = models.TokenMissed
		case selected:
			token.State = models.TokenIncorrect
			wrong = true
		default:
			token.State = models.TokenIdle
		}
		if token.IsCorrect {
			score.Total++
		}
		out[i] = token
	}

	return models.MarkResult{
		Tokens:     out,
		Score:      score,
		AllCorrect: score.Correct == score.Total && !wrong,
	}
}
