// Package retry runs idempotent operations with bounded exponential backoff.
package retry

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"net/http"
	"time"
)

const (
	DefaultMaxRetries = 0
	DefaultBaseWait   = 1 * time.Second
	DefaultMaxWait    = 30 * time.Second
)

// Func is an operation that can be retried.
type Func func(ctx context.Context) error

// Options control how Do retries.
type Options struct {
	// MaxRetries is the number of additional attempts after the first one.
	MaxRetries int
	BaseWait   time.Duration
	MaxWait    time.Duration
	// OnRetry is called before each retry with the attempt number (1-based)
	// and the error that caused it.
	OnRetry func(attempt int, err error)
}

type Option func(*Options)

func WithMaxRetries(n int) Option {
	return func(o *Options) {
		o.MaxRetries = n
	}
}

func WithBaseWait(d time.Duration) Option {
	return func(o *Options) {
		o.BaseWait = d
	}
}

func WithMaxWait(d time.Duration) Option {
	return func(o *Options) {
		o.MaxWait = d
	}
}

func WithOnRetry(fn func(attempt int, err error)) Option {
	return func(o *Options) {
		o.OnRetry = fn
	}
}

// Do calls f until it succeeds, returns an error that is not recoverable,
// the retry budget is spent, or ctx is done. Only errors marked with
// NewRecoverableError are retried.
func Do(ctx context.Context, f Func, opts ...Option) error {
	o := Options{
		MaxRetries: DefaultMaxRetries,
		BaseWait:   DefaultBaseWait,
		MaxWait:    DefaultMaxWait,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}

	var lastErr error
	for attempt := 0; attempt <= o.MaxRetries; attempt++ {
		if attempt > 0 {
			if o.OnRetry != nil {
				o.OnRetry(attempt, lastErr)
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(Backoff(attempt, o.BaseWait, o.MaxWait)):
			}
		}
		err := f(ctx)
		if err == nil {
			return nil
		}
		lastErr = err
		if !IsRecoverable(err) {
			break
		}
	}
	return Unwrap(lastErr)
}

// Backoff returns the wait before the given retry attempt: exponential in
// the attempt number with up to 10% jitter, capped at maxWait.
func Backoff(attempt int, base, maxWait time.Duration) time.Duration {
	if attempt < 1 {
		return 0
	}
	backoff := time.Duration(float64(base) * math.Pow(2, float64(attempt-1)))
	if maxWait > 0 && backoff > maxWait {
		backoff = maxWait
	}
	jitter := time.Duration(rand.Float64() * float64(backoff) * 0.1)
	return backoff + jitter
}

// ShouldRetry determines if the given status code should trigger a retry
func ShouldRetry(statusCode int) bool {
	switch statusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// RecoverableError marks an error as safe to retry.
type RecoverableError struct {
	Err error
}

func (e *RecoverableError) Error() string {
	return e.Err.Error()
}

func (e *RecoverableError) Unwrap() error {
	return e.Err
}

// NewRecoverableError wraps err so that Do retries it.
func NewRecoverableError(err error) error {
	if err == nil {
		return nil
	}
	return &RecoverableError{Err: err}
}

// IsRecoverable reports whether err was marked with NewRecoverableError.
func IsRecoverable(err error) bool {
	var re *RecoverableError
	return errors.As(err, &re)
}

// Unwrap strips a RecoverableError marker, returning the original error.
func Unwrap(err error) error {
	var re *RecoverableError
	if errors.As(err, &re) {
		return re.Err
	}
	return err
}
