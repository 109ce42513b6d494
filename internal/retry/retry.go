package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/ArthurDelaporte/Loopz-Back/internal/logs"
)

type Config struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

func DefaultConfig() Config {
	return Config{
		MaxRetries:      2,
		InitialInterval: 300 * time.Millisecond,
		MaxInterval:     2 * time.Second,
		Multiplier:      2,
	}
}

// Permanent arrête les tentatives pour err
func Permanent(err error) error {
	return backoff.Permanent(err)
}

func Do(ctx context.Context, operationName string, operation func() error, cfg Config) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = cfg.InitialInterval
	bo.MaxInterval = cfg.MaxInterval
	bo.Multiplier = cfg.Multiplier
	bo.Reset()

	retryable := backoff.WithMaxRetries(bo, cfg.MaxRetries)
	retryableWithContext := backoff.WithContext(retryable, ctx)

	notify := func(err error, t time.Duration) {
		logs.LogJSON("WARN", "Operation failed, retrying", map[string]interface{}{
			"operation":       operationName,
			"error":           err.Error(),
			"next_attempt_in": t.Round(time.Millisecond).String(),
		})
	}

	return backoff.RetryNotify(operation, retryableWithContext, notify)
}
