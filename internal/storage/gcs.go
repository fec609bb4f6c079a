package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

const audioContentType = "audio/raw"

type GCSConfig struct {
	Bucket          string
	CredentialsFile string
	// EmulatorHost points the client at a fake-gcs-server style emulator.
	EmulatorHost string
	Timeout      time.Duration
}

// GCSAudioStore keeps generated speech objects in a Cloud Storage bucket.
type GCSAudioStore struct {
	client  *gcs.Client
	bucket  string
	timeout time.Duration
	logger  *slog.Logger
}

func NewGCSAudioStore(ctx context.Context, cfg GCSConfig, logger *slog.Logger) (*GCSAudioStore, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("storage: missing bucket name")
	}

	var opts []option.ClientOption
	if host := strings.TrimRight(strings.TrimSpace(cfg.EmulatorHost), "/"); host != "" {
		_ = os.Setenv("STORAGE_EMULATOR_HOST", host)
		opts = append(opts, option.WithoutAuthentication())
	} else {
		if cfg.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
		}
		opts = append(opts, option.WithScopes(gcs.ScopeReadWrite))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage: create client: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	logger.Info("Audio object storage initialized", "bucket", cfg.Bucket, "emulator", cfg.EmulatorHost != "")
	return &GCSAudioStore{client: client, bucket: cfg.Bucket, timeout: timeout, logger: logger}, nil
}

func (s *GCSAudioStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	r, err := s.client.Bucket(s.bucket).Object(key).NewReader(ctx)
	if isNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage: open %s: %w", key, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, false, fmt.Errorf("storage: read %s: %w", key, err)
	}
	return data, len(data) > 0, nil
}

func (s *GCSAudioStore) Put(ctx context.Context, key string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = audioContentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("storage: write %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("storage: close writer %s: %w", key, err)
	}
	return nil
}

func (s *GCSAudioStore) Close() error {
	return s.client.Close()
}

func isNotExist(err error) bool {
	return errors.Is(err, gcs.ErrObjectNotExist) || errors.Is(err, gcs.ErrBucketNotExist)
}
