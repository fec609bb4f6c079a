package widgets

import (
	"context"
	"strings"
	"sync"
	"unicode"

	"github.com/SAP-F-2025/widget-service/internal/models"
	"github.com/SAP-F-2025/widget-service/internal/speech"
	"github.com/SAP-F-2025/widget-service/internal/verify"
)

// AudioSource produces the dictation audio for a sentence.
type AudioSource interface {
	Generate(ctx context.Context, text string) (*models.SpeechAudio, error)
}

type SpellSession struct {
	mu       sync.Mutex
	sentence string
	source   AudioSource

	audioState models.AudioState
	audioErr   string
	audio      *models.SpeechAudio
	cancel     context.CancelFunc
	loaded     chan struct{}

	input  string
	result *models.SpellResult
	closed bool
}

func NewSpellSession(content *models.SpellContent, source AudioSource) *SpellSession {
	return &SpellSession{
		sentence:   content.Sentence,
		source:     source,
		audioState: models.AudioLoading,
		loaded:     make(chan struct{}),
	}
}

func (s *SpellSession) Kind() models.WidgetType { return models.WidgetSpell }

// Start fetches the audio in the background. The returned channel closes
// once the fetch has settled, whether or not its outcome was applied.
func (s *SpellSession) Start(ctx context.Context) <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return s.loaded
	}
	if s.closed {
		s.cancel = func() {}
		close(s.loaded)
		return s.loaded
	}

	fetchCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	go func() {
		defer close(s.loaded)
		audio, err := s.source.Generate(fetchCtx, s.sentence)
		s.applyAudio(audio, err)
	}()

	return s.loaded
}

func (s *SpellSession) applyAudio(audio *models.SpeechAudio, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if err != nil {
		s.audioState = models.AudioError
		s.audioErr = err.Error()
		return
	}
	s.audio = audio
	s.audioState = models.AudioReady
}

// Submit checks the learner's transcription.
func (s *SpellSession) Submit(input string) (models.SpellResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return models.SpellResult{}, ErrClosed
	}
	if s.result != nil && s.result.IsCorrect {
		return models.SpellResult{}, ErrLocked
	}
	if strings.TrimSpace(input) == "" {
		return models.SpellResult{}, ErrEmptyInput
	}

	res := verify.CompareSpelling(s.sentence, input)
	s.input = input
	s.result = &res
	return res, nil
}

// Retry clears the last result and the typed input.
func (s *SpellSession) Retry() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	s.result = nil
	s.input = ""
	return nil
}

func (s *SpellSession) Snapshot() interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := models.SpellSnapshot{
		Sentence:   s.sentence,
		Direction:  TextDirection(s.sentence),
		AudioState: s.audioState,
		AudioError: s.audioErr,
		Input:      s.input,
		CanSubmit:  !s.closed && (s.result == nil || !s.result.IsCorrect),
	}
	if s.audio != nil {
		snap.AudioHash = s.audio.Hash
		snap.AudioDuration = speech.Duration(s.audio.Audio).Seconds()
		snap.Waveform = speech.Waveform(s.audio.Audio, speech.WaveformBars)
	}
	if s.result != nil {
		res := *s.result
		res.Comparison = append([]models.SpellComparisonEntry(nil), s.result.Comparison...)
		snap.Result = &res
	}
	return snap
}

// Marks scores correct word positions against the reference length.
func (s *SpellSession) Marks() Marks {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := Marks{Total: float64(len(strings.Fields(verify.Normalize(s.sentence))))}
	if s.result != nil {
		for _, entry := range s.result.Comparison {
			if entry.Correct {
				m.Obtained++
			}
		}
		m.Finished = true
	}
	return m
}

// Close cancels an audio fetch still in flight.
func (s *SpellSession) Close() {
	s.mu.Lock()
	s.closed = true
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// TextDirection is "ltr" when Latin letters make up more than half of the
// non-space characters, otherwise "rtl".
func TextDirection(text string) string {
	latin, total := 0, 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			latin++
		}
	}
	if float64(latin) > float64(total)*0.5 {
		return "ltr"
	}
	return "rtl"
}
