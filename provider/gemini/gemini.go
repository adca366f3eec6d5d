// Package gemini provides a logomotion.Provider implementation using Google's Gemini API.
//
// Images come from Imagen and videos from Veo via the official Go SDK:
// https://github.com/googleapis/go-genai
//
// Video generation returns a long-running operation. This package only
// submits and re-fetches it; the polling schedule lives in logomotion.Client.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/mhpenta/logomotion"
	"google.golang.org/genai"
)

// KeySource supplies the API key for each request. logomotion.KeyStore
// implements it, so a key picked at runtime is used for the next call.
type KeySource interface {
	APIKey() string
}

type staticKey string

func (k staticKey) APIKey() string { return string(k) }

// Config configures the Gemini provider.
type Config struct {
	// APIKey is used when Credentials is nil. If both are empty the SDK
	// falls back to the GOOGLE_API_KEY or GEMINI_API_KEY env vars.
	APIKey string

	// Credentials, when set, is consulted on every request
	Credentials KeySource

	// HTTPClient downloads finished videos. Defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// Generator implements logomotion.Provider using Google's Gemini API.
type Generator struct {
	creds      KeySource
	httpClient *http.Client

	client    *genai.Client
	clientKey string
	mu        sync.Mutex
}

// Ensure Generator implements the interface.
var _ logomotion.Provider = (*Generator)(nil)

// New creates a Generator. When a key is already available the genai client is
// built here; otherwise it is built on the first request, after the
// credential gate has had a chance to select one.
func New(ctx context.Context, config *Config) (*Generator, error) {
	if config == nil {
		config = &Config{}
	}

	g := &Generator{
		creds:      config.Credentials,
		httpClient: config.HTTPClient,
	}
	if g.creds == nil {
		g.creds = staticKey(config.APIKey)
	}
	if g.httpClient == nil {
		g.httpClient = http.DefaultClient
	}

	if g.creds.APIKey() != "" {
		if _, err := g.genaiClient(ctx); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// NewWithAPIKey creates a generator with a fixed API key.
func NewWithAPIKey(ctx context.Context, apiKey string) (*Generator, error) {
	return New(ctx, &Config{APIKey: apiKey})
}

// genaiClient returns a client for the current key, rebuilding it when the key changed.
func (g *Generator) genaiClient(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := g.creds.APIKey()
	if g.client != nil && key == g.clientKey {
		return g.client, nil
	}

	clientCfg := &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
	}
	if key != "" {
		clientCfg.APIKey = key
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	g.client = client
	g.clientKey = key
	return client, nil
}

// GenerateImages requests images from Imagen.
func (g *Generator) GenerateImages(ctx context.Context, req *logomotion.ImageRequest) (*logomotion.ImageResult, error) {
	client, err := g.genaiClient(ctx)
	if err != nil {
		return nil, err
	}

	model := resolveModel(req.Model, APIModelImagen4)
	resp, err := client.Models.GenerateImages(ctx, model, req.Prompt, buildImageConfig(req))
	if err != nil {
		return nil, mapError("generate image", err, model)
	}
	return parseImageResponse(resp, req.MIMEType), nil
}

// SubmitVideo starts a Veo job seeded with the source image.
func (g *Generator) SubmitVideo(ctx context.Context, req *logomotion.VideoRequest) (*logomotion.VideoOperation, error) {
	client, err := g.genaiClient(ctx)
	if err != nil {
		return nil, err
	}

	model := resolveModel(req.Model, APIModelVeo31Fast)
	image := &genai.Image{
		ImageBytes: req.Image.Data,
		MIMEType:   req.Image.MIMEType,
	}

	op, err := client.Models.GenerateVideos(ctx, model, req.Prompt, image, buildVideoConfig(req))
	if err != nil {
		return nil, mapError("submit video", err, model)
	}
	return convertOperation(op), nil
}

// GetVideoOperation re-fetches a Veo job by name.
func (g *Generator) GetVideoOperation(ctx context.Context, op *logomotion.VideoOperation) (*logomotion.VideoOperation, error) {
	client, err := g.genaiClient(ctx)
	if err != nil {
		return nil, err
	}

	latest, err := client.Operations.GetVideosOperation(ctx, &genai.GenerateVideosOperation{Name: op.Name}, nil)
	if err != nil {
		return nil, mapError("poll video", err, op.Name)
	}
	return convertOperation(latest), nil
}

// DownloadVideo fetches a generated video. The retrieval URI requires the API
// key as the "key" query parameter, which Files.Download does not send.
func (g *Generator) DownloadVideo(ctx context.Context, uri string) ([]byte, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, &logomotion.TransportError{Op: "download video", Err: fmt.Errorf("invalid video URI: %w", err)}
	}
	if key := g.creds.APIKey(); key != "" {
		q := u.Query()
		q.Set("key", key)
		u.RawQuery = q.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &logomotion.TransportError{Op: "download video", Err: err}
	}

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, &logomotion.TransportError{Op: "download video", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &logomotion.TransportError{
			Op:         "download video",
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("failed to download video: %s", resp.Status),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &logomotion.TransportError{Op: "download video", Err: err}
	}
	return data, nil
}

// Models returns the model definitions supported by this provider.
func (g *Generator) Models() []logomotion.ModelInfo {
	return []logomotion.ModelInfo{
		Imagen4Info,
		Veo31FastInfo,
	}
}

// Close releases any resources held by the generator.
func (g *Generator) Close() error {
	// The genai.Client doesn't require explicit closing in the current SDK
	return nil
}

func resolveModel(model logomotion.Model, fallback string) string {
	if model != "" {
		return string(model)
	}
	return fallback
}

func buildImageConfig(req *logomotion.ImageRequest) *genai.GenerateImagesConfig {
	n := req.NumberOfImages
	if n <= 0 {
		n = 1
	}
	return &genai.GenerateImagesConfig{
		NumberOfImages: int32(n),
		OutputMIMEType: req.MIMEType,
		AspectRatio:    req.AspectRatio.String(),
	}
}

func buildVideoConfig(req *logomotion.VideoRequest) *genai.GenerateVideosConfig {
	n := req.NumberOfVideos
	if n <= 0 {
		n = 1
	}
	return &genai.GenerateVideosConfig{
		NumberOfVideos: int32(n),
		AspectRatio:    req.AspectRatio.String(),
		Resolution:     req.Resolution.String(),
	}
}

// parseImageResponse converts the Imagen response, skipping entries without bytes.
func parseImageResponse(resp *genai.GenerateImagesResponse, requestedMIME string) *logomotion.ImageResult {
	result := &logomotion.ImageResult{}
	if resp == nil {
		return result
	}

	for _, gi := range resp.GeneratedImages {
		if gi == nil {
			continue
		}
		if gi.RAIFilteredReason != "" && result.FilteredReason == "" {
			result.FilteredReason = gi.RAIFilteredReason
		}
		if gi.Image == nil || len(gi.Image.ImageBytes) == 0 {
			continue
		}
		mime := gi.Image.MIMEType
		if mime == "" {
			mime = requestedMIME
		}
		result.Images = append(result.Images, logomotion.GeneratedImage{
			Data:           gi.Image.ImageBytes,
			MIMEType:       mime,
			EnhancedPrompt: gi.EnhancedPrompt,
		})
	}
	return result
}

// convertOperation maps a Veo operation to the provider-neutral handle.
func convertOperation(op *genai.GenerateVideosOperation) *logomotion.VideoOperation {
	if op == nil {
		return nil
	}

	out := &logomotion.VideoOperation{
		Name:     op.Name,
		Done:     op.Done,
		Metadata: op.Metadata,
	}

	if len(op.Error) > 0 {
		if msg, ok := op.Error["message"].(string); ok && msg != "" {
			out.Error = msg
		} else {
			out.Error = fmt.Sprint(op.Error)
		}
	}

	if op.Response != nil {
		for _, gv := range op.Response.GeneratedVideos {
			if gv != nil && gv.Video != nil && gv.Video.URI != "" {
				out.VideoURI = gv.Video.URI
				break
			}
		}
		if out.VideoURI == "" && out.Error == "" && len(op.Response.RAIMediaFilteredReasons) > 0 {
			out.Error = "filtered: " + strings.Join(op.Response.RAIMediaFilteredReasons, "; ")
		}
	}
	return out
}

// mapError wraps a Gemini API failure. A 429 becomes a RateLimitError;
// everything else is a TransportError carrying the HTTP status when known.
func mapError(op string, err error, model string) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return &logomotion.TransportError{Op: op, Err: err}
	}

	if apiErr.Code == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED" {
		return &logomotion.RateLimitError{
			RetryAfter: 60 * time.Second, // Default; API doesn't reliably provide Retry-After
			LimitType:  "requests",
			Model:      model,
			Err:        err,
		}
	}

	return &logomotion.TransportError{Op: op, StatusCode: apiErr.Code, Err: err}
}
