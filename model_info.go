package logomotion

import (
	"fmt"
	"slices"
)

// Provider name constants.
const (
	ProviderGeminiAPI = "gemini"
)

// ModelKind tells whether a model produces images or videos.
type ModelKind string

const (
	ModelKindImage ModelKind = "image"
	ModelKindVideo ModelKind = "video"
)

// RateLimits defines rate limiting parameters for a model.
type RateLimits struct {
	RequestsPerMinute int // 0 = unlimited
	RequestsPerDay    int // 0 = unlimited
}

// ModelCapabilities describes what a model accepts. Empty lists accept anything.
type ModelCapabilities struct {
	SupportedAspectRatios []string
	SupportedResolutions  []VideoResolution // video only
}

// check reports whether the model accepts aspectRatio and, when set, resolution.
func (c ModelCapabilities) check(aspectRatio string, resolution VideoResolution) error {
	if len(c.SupportedAspectRatios) > 0 && !slices.Contains(c.SupportedAspectRatios, aspectRatio) {
		return fmt.Errorf("%w: %s not supported by model", ErrInvalidAspectRatio, aspectRatio)
	}
	if resolution != "" && len(c.SupportedResolutions) > 0 && !slices.Contains(c.SupportedResolutions, resolution) {
		return fmt.Errorf("%w: %s not supported by model", ErrUnsupportedResolution, resolution)
	}
	return nil
}

// ModelInfo contains complete metadata for a model.
type ModelInfo struct {
	// Identity
	Name         string // Public model name (e.g., "imagen-4")
	Provider     string // Which provider serves this model
	APIModelName string // Actual API name (e.g., "imagen-4.0-generate-001")
	Kind         ModelKind

	Capabilities ModelCapabilities

	RateLimits RateLimits
}

// defaultModel returns the API name of the first model of the given kind.
func defaultModel(models []ModelInfo, kind ModelKind) Model {
	for _, m := range models {
		if m.Kind == kind {
			return Model(m.APIModelName)
		}
	}
	return ""
}

// findModel looks up a model by API name or public name.
func findModel(models []ModelInfo, model Model) (ModelInfo, bool) {
	for _, m := range models {
		if m.APIModelName == string(model) || m.Name == string(model) {
			return m, true
		}
	}
	return ModelInfo{}, false
}
