package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL     = "https://generativelanguage.googleapis.com"
	DefaultTextModel   = "gemini-2.5-flash"
	DefaultSpeechModel = "gemini-2.5-flash-preview-tts"
	DefaultVoice       = "Kore"
)

var ErrEmptyResponse = errors.New("ai: empty response")

// HTTPError is a non-2xx answer from the API.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("ai: http %d: %s", e.StatusCode, e.Body)
}

type Config struct {
	APIKey      string
	BaseURL     string
	TextModel   string
	SpeechModel string
	Voice       string
	Timeout     time.Duration
}

// Client talks to the Gemini generateContent REST endpoint.
type Client struct {
	apiKey      string
	baseURL     string
	textModel   string
	speechModel string
	voice       string
	httpClient  *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("ai: missing api key")
	}
	c := &Client{
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimRight(orDefault(cfg.BaseURL, DefaultBaseURL), "/"),
		textModel:   orDefault(cfg.TextModel, DefaultTextModel),
		speechModel: orDefault(cfg.SpeechModel, DefaultSpeechModel),
		voice:       orDefault(cfg.Voice, DefaultVoice),
		httpClient:  &http.Client{Timeout: cfg.Timeout},
	}
	if c.httpClient.Timeout <= 0 {
		c.httpClient.Timeout = 60 * time.Second
	}
	return c, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}

func (c *Client) TextModel() string { return c.textModel }

// ---- wire types ----

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType,omitempty"`
	Data     string `json:"data"`
}

type contentBlock struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type prebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

type voiceConfig struct {
	PrebuiltVoiceConfig prebuiltVoiceConfig `json:"prebuiltVoiceConfig"`
}

type speechConfig struct {
	VoiceConfig voiceConfig `json:"voiceConfig"`
}

type generationConfig struct {
	ResponseModalities []string      `json:"responseModalities,omitempty"`
	SpeechConfig       *speechConfig `json:"speechConfig,omitempty"`
}

type generateRequest struct {
	Contents         []contentBlock    `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content contentBlock `json:"content"`
	} `json:"candidates"`
}

// GenerateText sends prompt as a single user turn and returns the concatenated text parts.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	req := generateRequest{Contents: []contentBlock{{Parts: []part{{Text: prompt}}}}}

	var out generateResponse
	if err := c.generate(ctx, c.textModel, req, &out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 {
		return "", ErrEmptyResponse
	}

	var b strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	if b.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return b.String(), nil
}

// GenerateSpeech returns raw PCM (s16le, 24 kHz, mono) for text.
func (c *Client) GenerateSpeech(ctx context.Context, text string) ([]byte, error) {
	req := generateRequest{
		Contents: []contentBlock{{Parts: []part{{Text: text}}}},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &speechConfig{
				VoiceConfig: voiceConfig{PrebuiltVoiceConfig: prebuiltVoiceConfig{VoiceName: c.voice}},
			},
		},
	}

	var out generateResponse
	if err := c.generate(ctx, c.speechModel, req, &out); err != nil {
		return nil, err
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return nil, ErrEmptyResponse
	}
	data := out.Candidates[0].Content.Parts[0].InlineData
	if data == nil || data.Data == "" {
		return nil, ErrEmptyResponse
	}

	audio, err := base64.StdEncoding.DecodeString(data.Data)
	if err != nil {
		return nil, fmt.Errorf("ai: decode audio: %w", err)
	}
	return audio, nil
}

func (c *Client) generate(ctx context.Context, model string, body generateRequest, out *generateResponse) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("ai: decode error: %w", err)
	}
	return nil
}
