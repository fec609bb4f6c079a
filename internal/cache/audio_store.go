package cache

import (
	"context"
	"errors"
	"time"
)

// AudioStore keeps generated speech keyed by object key (audio/<hash>.raw).
type AudioStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, data []byte) error
}

type cacheAudioStore struct {
	cache CacheService
	ttl   time.Duration
}

// NewAudioStore stores audio in the JSON cache; ttl 0 keeps entries forever.
func NewAudioStore(cache CacheService, ttl time.Duration) AudioStore {
	return &cacheAudioStore{cache: cache, ttl: ttl}
}

func (s *cacheAudioStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := s.cache.Get(ctx, key, &data)
	if errors.Is(err, ErrCacheMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if len(data) == 0 {
		return nil, false, nil
	}
	return data, true, nil
}

func (s *cacheAudioStore) Put(ctx context.Context, key string, data []byte) error {
	return s.cache.Set(ctx, key, data, s.ttl)
}

// NopAudioStore never hits and drops writes.
type NopAudioStore struct{}

func (NopAudioStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NopAudioStore) Put(context.Context, string, []byte) error         { return nil }
