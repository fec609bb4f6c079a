package models

const (
	SpellMissingWord = "(missing)"
	SpellExtraWord   = "(extra)"
)

// SpellComparisonEntry is one aligned position of a dictation check.
type SpellComparisonEntry struct {
	Word     string `json:"word"`
	Correct  bool   `json:"correct"`
	Expected string `json:"expected,omitempty"`
}

type SpellResult struct {
	IsCorrect  bool                   `json:"isCorrect"`
	Accuracy   float64                `json:"accuracy"`
	Comparison []SpellComparisonEntry `json:"comparison"`
}

type SpellContent struct {
	Sentence string `json:"sentence" validate:"required,not_blank"`
}

type AudioState string

const (
	AudioLoading AudioState = "loading"
	AudioReady   AudioState = "ready"
	AudioError   AudioState = "error"
)

type SpellSnapshot struct {
	Sentence      string       `json:"sentence"`
	Direction     string       `json:"direction"`
	AudioState    AudioState   `json:"audioState"`
	AudioError    string       `json:"audioError,omitempty"`
	AudioHash     string       `json:"audioHash,omitempty"`
	AudioDuration float64      `json:"audioDuration,omitempty"`
	Waveform      []float64    `json:"waveform,omitempty"`
	Input         string       `json:"input"`
	Result        *SpellResult `json:"result,omitempty"`
	CanSubmit     bool         `json:"canSubmit"`
}

// SpeechAudio is generated (or cached) dictation audio.
type SpeechAudio struct {
	Audio  []byte `json:"-"`
	Hash   string `json:"hash"`
	Cached bool   `json:"cached"`
}
