package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/SAP-F-2025/widget-service/internal/cache"
	"github.com/SAP-F-2025/widget-service/internal/models"
	"github.com/SAP-F-2025/widget-service/internal/verify"
)

const DefaultAudioPrefix = "audio/"

// SpeechGenerator is the TTS capability.
type SpeechGenerator interface {
	GenerateSpeech(ctx context.Context, text string) ([]byte, error)
}

type SpeechService struct {
	tts    SpeechGenerator
	store  cache.AudioStore
	prefix string
	group  singleflight.Group
	logger *slog.Logger
}

func NewSpeechService(tts SpeechGenerator, store cache.AudioStore, prefix string, logger *slog.Logger) *SpeechService {
	if store == nil {
		store = cache.NopAudioStore{}
	}
	if prefix == "" {
		prefix = DefaultAudioPrefix
	}
	return &SpeechService{
		tts:    tts,
		store:  store,
		prefix: prefix,
		logger: logger.With("component", "speech"),
	}
}

// HashText is the cache identity of a sentence: hex SHA-256 of its normalized form.
func HashText(text string) string {
	sum := sha256.Sum256([]byte(verify.Normalize(text)))
	return hex.EncodeToString(sum[:])
}

func (s *SpeechService) ObjectKey(hash string) string {
	return s.prefix + hash + ".raw"
}

// Generate returns PCM audio for text, from the store when possible.
func (s *SpeechService) Generate(ctx context.Context, text string) (*models.SpeechAudio, error) {
	if strings.TrimSpace(text) == "" {
		return nil, NewValidationError("text", "text is required", text)
	}

	hash := HashText(text)
	ch := s.group.DoChan(hash, func() (interface{}, error) {
		// shared by every waiter, so one caller leaving must not cancel it
		return s.generate(context.WithoutCancel(ctx), text, hash)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		audio := *res.Val.(*models.SpeechAudio)
		return &audio, nil
	}
}

func (s *SpeechService) generate(ctx context.Context, text, hash string) (*models.SpeechAudio, error) {
	key := s.ObjectKey(hash)

	data, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "Audio cache read failed", "hash", hash, "error", err)
	}
	if ok {
		s.logger.DebugContext(ctx, "Audio cache hit", "hash", hash)
		return &models.SpeechAudio{Audio: data, Hash: hash, Cached: true}, nil
	}

	pcm, err := s.tts.GenerateSpeech(ctx, text)
	if err != nil {
		s.logger.ErrorContext(ctx, "Speech generation failed", "hash", hash, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrSpeechUnavailable, err)
	}
	if len(pcm) == 0 {
		return nil, ErrSpeechUnavailable
	}

	if err := s.store.Put(ctx, key, pcm); err != nil {
		s.logger.WarnContext(ctx, "Audio cache write failed", "hash", hash, "error", err)
	}

	s.logger.InfoContext(ctx, "Speech generated", "hash", hash, "bytes", len(pcm))
	return &models.SpeechAudio{Audio: pcm, Hash: hash}, nil
}
