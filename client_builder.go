package logomotion

import (
	"log/slog"
	"time"
)

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithLogger sets a structured logger for the client.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithCredentialGate sets the gate consulted before every video request.
func WithCredentialGate(gate CredentialGate) ClientOption {
	return func(c *Client) {
		c.gate = gate
	}
}

// WithBlobStore sets where materialized videos are kept.
func WithBlobStore(store BlobStore) ClientOption {
	return func(c *Client) {
		c.blobs = store
	}
}

// WithPollConfig sets the video polling schedule.
func WithPollConfig(cfg PollConfig) ClientOption {
	return func(c *Client) {
		c.poll = cfg
	}
}

// WithSettleDelay sets the wait after the credential picker returns.
func WithSettleDelay(d time.Duration) ClientOption {
	return func(c *Client) {
		c.settleDelay = d
	}
}

// WithMetrics records generation outcomes into m.
func WithMetrics(m *Metrics) ClientOption {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithImageModel overrides the provider's default image model.
func WithImageModel(model Model) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.imageModel = model
		}
	}
}

// WithVideoModel overrides the provider's default video model.
func WithVideoModel(model Model) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.videoModel = model
		}
	}
}

// WithWaitOnRateLimit makes the client wait up to maxWait for a free request
// slot instead of failing with a RateLimitError. Zero means no limit.
func WithWaitOnRateLimit(maxWait time.Duration) ClientOption {
	return func(c *Client) {
		c.waitOnRateLimit = true
		c.maxRateLimitWait = maxWait
	}
}

// WithConfig applies every setting from cfg.
func WithConfig(cfg Config) ClientOption {
	return func(c *Client) {
		WithImageModel(cfg.ImageModel)(c)
		WithVideoModel(cfg.VideoModel)(c)
		c.poll = cfg.Poll
		c.settleDelay = cfg.SettleDelay
		c.blobs = NewMemoryBlobStore(cfg.BlobTTL)
		if cfg.WaitOnRateLimit {
			WithWaitOnRateLimit(cfg.MaxRateLimitWait)(c)
		}
	}
}

// withSleep replaces the delay function. Tests use it to observe waits.
func withSleep(sleep sleepFunc) ClientOption {
	return func(c *Client) {
		c.sleep = sleep
	}
}
