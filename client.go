package logomotion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mhpenta/logomotion/ratelimiter"
)

// VideoMIMEType is the container format of materialized videos.
const VideoMIMEType = "video/mp4"

// Client generates logos and animates them through a Provider.
// It never retries; every failure is returned to the caller as is.
type Client struct {
	provider Provider
	gate     CredentialGate
	blobs    BlobStore

	imageModel Model
	videoModel Model

	poll        PollConfig
	settleDelay time.Duration
	sleep       sleepFunc

	limiters         ratelimiter.Registry
	waitOnRateLimit  bool
	maxRateLimitWait time.Duration

	logger  *slog.Logger
	metrics *Metrics
}

// NewClient creates a Client backed by provider.
//
// Example:
//
//	gen, err := gemini.New(ctx, &gemini.Config{Credentials: keys})
//	if err != nil {
//	    return err
//	}
//	client := logomotion.NewClient(gen, logomotion.WithCredentialGate(keys))
func NewClient(provider Provider, opts ...ClientOption) *Client {
	models := provider.Models()
	c := &Client{
		provider:    provider,
		blobs:       NewMemoryBlobStore(DefaultBlobTTL),
		imageModel:  defaultModel(models, ModelKindImage),
		videoModel:  defaultModel(models, ModelKindVideo),
		poll:        DefaultPollConfig(),
		settleDelay: DefaultSettleDelay,
		sleep:       sleepContext,
		limiters:    ratelimiter.NewRegistry(),
		logger:      slog.Default(),
	}

	for _, info := range models {
		if info.RateLimits.RequestsPerMinute > 0 {
			c.limiters.Set(info.APIModelName, ratelimiter.New(
				info.RateLimits.RequestsPerMinute,
				info.RateLimits.RequestsPerDay,
			))
		}
	}

	for _, opt := range opts {
		opt(c)
	}

	// Overrides may use a model's public name.
	if info, ok := findModel(models, c.imageModel); ok {
		c.imageModel = Model(info.APIModelName)
	}
	if info, ok := findModel(models, c.videoModel); ok {
		c.videoModel = Model(info.APIModelName)
	}
	return c
}

// SetRateLimiter sets a custom rate limiter for a model. A nil limiter removes limiting.
func (c *Client) SetRateLimiter(model Model, limiter ratelimiter.Limiter) *Client {
	c.limiters.Set(string(model), limiter)
	return c
}

// Blobs returns the store that video handles resolve against.
func (c *Client) Blobs() BlobStore {
	return c.blobs
}

// Models returns the provider's model definitions.
func (c *Client) Models() []ModelInfo {
	return c.provider.Models()
}

// Close releases provider resources.
func (c *Client) Close() error {
	return c.provider.Close()
}

// GenerateImage creates one square logo for prompt in the given style.
func (c *Client) GenerateImage(ctx context.Context, prompt string, style Style) (*GeneratedImage, error) {
	if err := ValidatePrompt(prompt); err != nil {
		return nil, err
	}
	if err := ValidateStyle(style); err != nil {
		return nil, err
	}

	model := c.imageModel
	if err := c.checkCapabilities(model, AspectRatio1x1.String(), ""); err != nil {
		return nil, err
	}
	start := time.Now()

	c.logger.Debug("starting logo generation",
		"model", string(model),
		"style", string(style),
		"prompt_length", len(prompt),
	)

	img, err := c.generateImage(ctx, model, prompt, style)
	duration := time.Since(start)
	c.metrics.observe(ModelKindImage, err, duration)

	if err != nil {
		c.logger.Error("logo generation failed",
			"model", string(model),
			"duration_ms", duration.Milliseconds(),
			"error", err.Error(),
		)
		return nil, err
	}

	c.logger.Info("logo generation completed",
		"model", string(model),
		"duration_ms", duration.Milliseconds(),
		"image_bytes", len(img.Data),
	)
	return img, nil
}

func (c *Client) generateImage(ctx context.Context, model Model, prompt string, style Style) (*GeneratedImage, error) {
	if err := c.checkRateLimit(ctx, model); err != nil {
		return nil, err
	}

	req := &ImageRequest{
		Model:          model,
		Prompt:         LogoPrompt(prompt, style),
		NumberOfImages: 1,
		MIMEType:       LogoMIMEType,
		AspectRatio:    AspectRatio1x1,
	}

	result, err := c.provider.GenerateImages(ctx, req)
	if err != nil {
		return nil, asTransportError("generate image", err)
	}

	if result == nil || len(result.Images) == 0 || len(result.Images[0].Data) == 0 {
		if result != nil && result.FilteredReason != "" {
			return nil, fmt.Errorf("no image data returned: %w (%s)", ErrEmptyResult, result.FilteredReason)
		}
		return nil, fmt.Errorf("no image data returned: %w", ErrEmptyResult)
	}

	img := result.Images[0]
	if img.MIMEType == "" {
		img.MIMEType = req.MIMEType
	}
	img.Prompt = req.Prompt
	return &img, nil
}

// AnimateImage turns a previously generated image into a short video.
// A blank prompt is replaced by DefaultMotionPrompt. The returned handle
// resolves through Blobs().
func (c *Client) AnimateImage(ctx context.Context, source InputImage, prompt string, aspectRatio VideoAspectRatio) (*GeneratedVideo, error) {
	if err := ValidateInputImage(source); err != nil {
		return nil, err
	}
	if err := ValidateVideoAspectRatio(aspectRatio); err != nil {
		return nil, err
	}

	model := c.videoModel
	if err := c.checkCapabilities(model, aspectRatio.String(), VideoResolution720p); err != nil {
		return nil, err
	}
	start := time.Now()

	c.logger.Debug("starting logo animation",
		"model", string(model),
		"aspect_ratio", string(aspectRatio),
		"image_size", len(source.Data),
	)

	video, err := c.animateImage(ctx, model, source, MotionPrompt(prompt), aspectRatio)
	duration := time.Since(start)
	c.metrics.observe(ModelKindVideo, err, duration)

	if err != nil {
		c.logger.Error("logo animation failed",
			"model", string(model),
			"duration_ms", duration.Milliseconds(),
			"error", err.Error(),
		)
		return nil, err
	}

	video.Duration = duration
	c.logger.Info("logo animation completed",
		"model", string(model),
		"duration_ms", duration.Milliseconds(),
		"poll_attempts", video.PollAttempts,
		"video_bytes", video.Handle.Size,
	)
	return video, nil
}

func (c *Client) animateImage(ctx context.Context, model Model, source InputImage, prompt string, aspectRatio VideoAspectRatio) (*GeneratedVideo, error) {
	if err := ensureCredential(ctx, c.gate, c.settleDelay); err != nil {
		c.logger.Warn("credential gate not satisfied", "error", err.Error())
		return nil, err
	}

	if err := c.checkRateLimit(ctx, model); err != nil {
		return nil, err
	}

	req := &VideoRequest{
		Model:          model,
		Prompt:         prompt,
		Image:          source,
		NumberOfVideos: 1,
		Resolution:     VideoResolution720p,
		AspectRatio:    aspectRatio,
	}

	op, err := c.provider.SubmitVideo(ctx, req)
	if err != nil {
		return nil, asTransportError("submit video", err)
	}
	if op == nil {
		return nil, fmt.Errorf("submit video: %w", ErrEmptyResult)
	}

	c.logger.Debug("video operation submitted", "operation", op.Name)

	fetch := func(ctx context.Context, op *VideoOperation) (*VideoOperation, error) {
		next, err := c.provider.GetVideoOperation(ctx, op)
		if err != nil {
			return nil, asTransportError("poll video", err)
		}
		if next == nil {
			return nil, fmt.Errorf("poll video: %w", ErrEmptyResult)
		}
		return next, nil
	}

	final, attempts, err := pollOperation(ctx, c.poll, op, c.sleep, fetch, c.logger)
	c.metrics.observePolls(attempts)
	if err != nil {
		return nil, err
	}

	if final.Error != "" {
		return nil, &OperationError{Operation: final.Name, Message: final.Error}
	}
	if final.VideoURI == "" {
		return nil, fmt.Errorf("video generation completed but no URI was returned: %w", ErrEmptyResult)
	}

	data, err := c.provider.DownloadVideo(ctx, final.VideoURI)
	if err != nil {
		return nil, asTransportError("download video", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("download video: %w", ErrEmptyResult)
	}

	ref, err := c.blobs.Put(ctx, data, VideoMIMEType)
	if err != nil {
		return nil, err
	}

	return &GeneratedVideo{
		Handle: VideoHandle{
			Reference: ref,
			SourceURI: final.VideoURI,
			MIMEType:  VideoMIMEType,
			Size:      len(data),
		},
		Prompt:       prompt,
		AspectRatio:  aspectRatio,
		PollAttempts: attempts,
	}, nil
}

// checkCapabilities rejects a request the model is known not to accept.
// Models the provider does not describe are not checked.
func (c *Client) checkCapabilities(model Model, aspectRatio string, resolution VideoResolution) error {
	info, ok := findModel(c.provider.Models(), model)
	if !ok {
		return nil
	}
	return info.Capabilities.check(aspectRatio, resolution)
}

// checkRateLimit takes a request slot for model, optionally waiting for one.
func (c *Client) checkRateLimit(ctx context.Context, model Model) error {
	limiter := c.limiters.Get(string(model))
	if limiter == nil {
		return nil
	}

	if c.waitOnRateLimit {
		if err := limiter.WaitAndAcquire(ctx, c.maxRateLimitWait); err != nil {
			return &RateLimitError{
				RetryAfter: limiter.TimeUntilAvailable(),
				LimitType:  "requests",
				Model:      string(model),
				Err:        err,
			}
		}
		return nil
	}

	if !limiter.TryAcquire() {
		c.logger.Warn("rate limit hit", "model", string(model))
		return &RateLimitError{
			RetryAfter: limiter.TimeUntilAvailable(),
			LimitType:  "requests",
			Model:      string(model),
		}
	}
	return nil
}

// asTransportError classifies a provider failure. Rate limits, transport
// errors and context errors pass through; anything else becomes a TransportError.
func asTransportError(op string, err error) error {
	if IsRateLimitError(err) || IsTransportError(err) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &TransportError{Op: op, Err: err}
}
