package fileio

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/zoro11031/filelab/internal/common"
	"github.com/zoro11031/filelab/internal/system"
)

// RetryPolicy bounds how often a read is attempted
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first one
	MaxAttempts int
	// Delay is the fixed pause between attempts
	Delay time.Duration
	// IsTransient decides which errors are retried; nil uses common.IsTransient
	IsTransient func(error) bool
	// OnRetry, if set, is called after each failed attempt that will be retried
	OnRetry func(attempt int, err error, wait time.Duration)
}

// DefaultRetryPolicy returns three attempts one second apart
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Delay:       time.Second,
		IsTransient: common.IsTransient,
	}
}

// Validate checks the policy bounds
func (p RetryPolicy) Validate() error {
	if p.MaxAttempts < 1 {
		return errors.Errorf("max attempts must be at least 1, got %d", p.MaxAttempts)
	}
	if p.Delay < 0 {
		return errors.Errorf("retry delay cannot be negative, got %s", p.Delay)
	}
	return nil
}

// ReadWithRetry reads path as text, retrying transient failures with a fixed
// pause until policy.MaxAttempts attempts were made. It returns the content and
// the number of attempts. When every attempt failed transiently the error is
// an Exhausted FileError wrapping the last failure; permanent errors are
// returned after the attempt that produced them.
func ReadWithRetry(ctx context.Context, fs system.FileSystemManager, path string, policy RetryPolicy) (string, int, error) {
	if err := policy.Validate(); err != nil {
		return "", 0, err
	}

	isTransient := policy.IsTransient
	if isTransient == nil {
		isTransient = common.IsTransient
	}

	logger := zerolog.Ctx(ctx)

	var (
		content  string
		attempts int
		lastErr  error
	)

	operation := func() error {
		attempts++
		text, err := ReadText(fs, path)
		if err == nil {
			content = text
			return nil
		}
		lastErr = err
		if !isTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		logger.Warn().
			Err(err).
			Str("path", path).
			Int("attempt", attempts).
			Int("max_attempts", policy.MaxAttempts).
			Dur("retry_in", wait).
			Msg("transient read failure")
		if policy.OnRetry != nil {
			policy.OnRetry(attempts, err, wait)
		}
	}

	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(policy.Delay), uint64(policy.MaxAttempts-1)),
		ctx,
	)

	err := backoff.RetryNotify(operation, b, notify)
	switch {
	case err == nil:
		logger.Debug().Str("path", path).Int("attempts", attempts).Msg("file read")
		return content, attempts, nil

	case ctx.Err() != nil && errors.Is(err, ctx.Err()):
		return "", attempts, errors.Errorf("reading %s: %w", path, err)

	case lastErr != nil && isTransient(lastErr):
		logger.Error().Err(lastErr).Str("path", path).Int("attempts", attempts).Msg("read retries exhausted")
		return "", attempts, &common.FileError{
			Kind:     common.KindExhausted,
			Op:       "read",
			Path:     path,
			Attempts: attempts,
			Err:      lastErr,
		}

	default:
		return "", attempts, err
	}
}
