package models

type SortItem struct {
	ID           string `json:"id"`
	Text         string `json:"text"`
	CorrectIndex int    `json:"correctIndex"`
}

type SortContent struct {
	Prompt    string   `json:"prompt"`
	Sentences []string `json:"sentences" validate:"required,min=2,dive,not_blank"`
}

type SortResult struct {
	Results      []bool `json:"results"`
	CorrectCount int    `json:"correctCount"`
	AllCorrect   bool   `json:"allCorrect"`
}

type SortSnapshot struct {
	Prompt  string      `json:"prompt"`
	Items   []SortItem  `json:"items"`
	Checked bool        `json:"checked"`
	Result  *SortResult `json:"result,omitempty"`
}
