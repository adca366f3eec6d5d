package logomotion

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// PollConfig controls how a video operation is waited on.
type PollConfig struct {
	// InitialDelay is waited once after submission, before polling starts
	InitialDelay time.Duration

	// Interval is waited before every status fetch
	Interval time.Duration

	// MaxAttempts caps the number of status fetches. Zero means no cap.
	MaxAttempts int

	// Timeout caps the total time spent polling. Zero means no deadline.
	// When both MaxAttempts and Timeout are zero the defaults apply to both.
	Timeout time.Duration
}

// DefaultPollConfig returns the production polling schedule.
func DefaultPollConfig() PollConfig {
	return PollConfig{
		InitialDelay: 5 * time.Second,
		Interval:     5 * time.Second,
		MaxAttempts:  120,
		Timeout:      15 * time.Minute,
	}
}

// bounded returns cfg with the default bounds filled in if it has none.
func (cfg PollConfig) bounded() PollConfig {
	if cfg.MaxAttempts == 0 && cfg.Timeout == 0 {
		def := DefaultPollConfig()
		cfg.MaxAttempts = def.MaxAttempts
		cfg.Timeout = def.Timeout
	}
	return cfg
}

type sleepFunc func(ctx context.Context, d time.Duration) error

type fetchFunc func(ctx context.Context, op *VideoOperation) (*VideoOperation, error)

// pollOperation waits for op to report Done. Status fetches run strictly one
// after another. It returns the final operation and the number of fetches made.
func pollOperation(
	ctx context.Context,
	cfg PollConfig,
	op *VideoOperation,
	sleep sleepFunc,
	fetch fetchFunc,
	logger *slog.Logger) (*VideoOperation, int, error) {

	if op.Done {
		return op, 0, nil
	}
	cfg = cfg.bounded()

	start := time.Now()
	pollCtx := ctx
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		pollCtx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	attempts := 0
	timedOut := func(err error) error {
		if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
			return &PollTimeoutError{Operation: op.Name, Attempts: attempts, Elapsed: time.Since(start)}
		}
		return err
	}

	if err := sleep(pollCtx, cfg.InitialDelay); err != nil {
		return nil, attempts, timedOut(err)
	}

	current := op
	for {
		if cfg.MaxAttempts > 0 && attempts >= cfg.MaxAttempts {
			return nil, attempts, &PollTimeoutError{Operation: op.Name, Attempts: attempts, Elapsed: time.Since(start)}
		}

		if err := sleep(pollCtx, cfg.Interval); err != nil {
			return nil, attempts, timedOut(err)
		}

		next, err := fetch(pollCtx, current)
		attempts++
		if err != nil {
			return nil, attempts, timedOut(err)
		}
		current = next

		logger.Debug("video generation status",
			"operation", current.Name,
			"attempt", attempts,
			"done", current.Done,
			"metadata", current.Metadata,
		)

		if current.Done {
			return current, attempts, nil
		}
	}
}
