package models

type MatchState string

const (
	MatchIdle      MatchState = "idle"
	MatchSelected  MatchState = "selected"
	MatchCorrect   MatchState = "correct"
	MatchIncorrect MatchState = "incorrect"
)

type Column string

const (
	ColumnLeft  Column = "left"
	ColumnRight Column = "right"
)

type MatchPair struct {
	Left  string `json:"left" validate:"required,not_blank"`
	Right string `json:"right" validate:"required,not_blank"`
}

type MatchContent struct {
	Prompt string      `json:"prompt"`
	Pairs  []MatchPair `json:"pairs" validate:"required,min=1,dive"`
}

type MatchWordItem struct {
	ID     string     `json:"id"`
	Text   string     `json:"text"`
	PairID string     `json:"pairId"`
	Column Column     `json:"column"`
	State  MatchState `json:"state"`
}

// MatchOutcome describes what a single click did.
type MatchOutcome string

const (
	OutcomeSelected   MatchOutcome = "selected"
	OutcomeDeselected MatchOutcome = "deselected"
	OutcomeSwitched   MatchOutcome = "switched"
	OutcomeMatched    MatchOutcome = "matched"
	OutcomeMismatched MatchOutcome = "mismatched"
)

type MatchSnapshot struct {
	Prompt         string          `json:"prompt"`
	Left           []MatchWordItem `json:"left"`
	Right          []MatchWordItem `json:"right"`
	SelectedID     string          `json:"selectedId,omitempty"`
	CompletedPairs int             `json:"completedPairs"`
	TotalPairs     int             `json:"totalPairs"`
	IncorrectCount int             `json:"incorrectCount"`
	Complete       bool            `json:"complete"`
}
