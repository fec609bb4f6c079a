package handlers

import (
	"net/http"
	"strconv"

	"github.com/SAP-F-2025/widget-service/internal/speech"
	"github.com/SAP-F-2025/widget-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const (
	HeaderAudioHash     = "X-Audio-Hash"
	HeaderAudioCached   = "X-Audio-Cached"
	HeaderAudioDuration = "X-Audio-Duration"
)

type SpeechHandler struct {
	BaseHandler
	speech SpeechSource
}

func NewSpeechHandler(speech SpeechSource, logger utils.Logger) *SpeechHandler {
	return &SpeechHandler{
		BaseHandler: NewBaseHandler(logger),
		speech:      speech,
	}
}

type SpeechRequest struct {
	Text string `json:"text" binding:"required"`
}

// SpeechDetails is the JSON form of generated audio.
type SpeechDetails struct {
	Hash     string    `json:"hash"`
	Cached   bool      `json:"cached"`
	Duration float64   `json:"duration"`
	Waveform []float64 `json:"waveform"`
	Audio    []byte    `json:"audio"`
}

// Generate answers raw PCM by default, or JSON with the audio base64 encoded
// and the waveform bars when the client accepts application/json.
func (h *SpeechHandler) Generate(c *gin.Context) {
	var req SpeechRequest
	if !h.bindJSON(c, &req) {
		return
	}

	audio, err := h.speech.Generate(c.Request.Context(), req.Text)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	duration := speech.Duration(audio.Audio).Seconds()
	c.Header(HeaderAudioHash, audio.Hash)
	c.Header(HeaderAudioCached, strconv.FormatBool(audio.Cached))
	c.Header(HeaderAudioDuration, strconv.FormatFloat(duration, 'f', 2, 64))

	if c.NegotiateFormat(speech.ContentType, gin.MIMEJSON) == gin.MIMEJSON {
		h.RespondWithSuccess(c, http.StatusOK, "Speech generated", SpeechDetails{
			Hash:     audio.Hash,
			Cached:   audio.Cached,
			Duration: duration,
			Waveform: speech.Waveform(audio.Audio, speech.WaveformBars),
			Audio:    audio.Audio,
		})
		return
	}

	c.Data(http.StatusOK, speech.ContentType, audio.Audio)
}
