package models

type TokenState string

const (
	TokenIdle      TokenState = "idle"
	TokenSelected  TokenState = "selected"
	TokenCorrect   TokenState = "correct"
	TokenIncorrect TokenState = "incorrect"
	TokenMissed    TokenState = "missed"
)

// WordToken is one whitespace-delimited word of a mark-the-word paragraph.
type WordToken struct {
	ID        int        `json:"id"`
	Text      string     `json:"text"`
	IsCorrect bool       `json:"isCorrect"`
	State     TokenState `json:"state"`
}

type MarkContent struct {
	Prompt    string `json:"prompt"`
	Paragraph string `json:"paragraph" validate:"required,not_blank"`
}

type MarkResult struct {
	Tokens     []WordToken `json:"tokens"`
	Score      Score       `json:"score"`
	AllCorrect bool        `json:"allCorrect"`
}

type MarkSnapshot struct {
	Prompt        string      `json:"prompt"`
	Tokens        []WordToken `json:"tokens"`
	SelectedCount int         `json:"selectedCount"`
	CorrectTotal  int         `json:"correctTotal"`
	Checked       bool        `json:"checked"`
	Score         *Score      `json:"score,omitempty"`
	AllCorrect    bool        `json:"allCorrect"`
}
