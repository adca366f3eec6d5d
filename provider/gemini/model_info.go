package gemini

import "github.com/mhpenta/logomotion"

// Model name constants - the actual API model names.
const (
	// APIModelImagen4 is the Imagen 4 text-to-image model
	APIModelImagen4 = "imagen-4.0-generate-001"

	// APIModelVeo31Fast is the Veo 3.1 fast image-to-video preview model
	APIModelVeo31Fast = "veo-3.1-fast-generate-preview"
)

// Imagen4Info is the model info for Imagen 4.
var Imagen4Info = logomotion.ModelInfo{
	Name:         "imagen-4",
	Provider:     logomotion.ProviderGeminiAPI,
	APIModelName: APIModelImagen4,
	Kind:         logomotion.ModelKindImage,

	Capabilities: logomotion.ModelCapabilities{
		SupportedAspectRatios: []string{"1:1", "3:4", "4:3", "9:16", "16:9"},
	},

	// Tier 1 limits as published for the Gemini API.
	RateLimits: logomotion.RateLimits{
		RequestsPerMinute: 10,
		RequestsPerDay:    70,
	},
}

// Veo31FastInfo is the model info for Veo 3.1 fast.
//
// Video jobs are long-running: a request returns an operation that has to be
// polled, typically for one to three minutes.
var Veo31FastInfo = logomotion.ModelInfo{
	Name:         "veo-3.1-fast",
	Provider:     logomotion.ProviderGeminiAPI,
	APIModelName: APIModelVeo31Fast,
	Kind:         logomotion.ModelKindVideo,

	Capabilities: logomotion.ModelCapabilities{
		SupportedAspectRatios: []string{"16:9", "9:16"},
		SupportedResolutions: []logomotion.VideoResolution{
			logomotion.VideoResolution720p,
			logomotion.VideoResolution1080p,
		},
	},

	RateLimits: logomotion.RateLimits{
		RequestsPerMinute: 2,
		RequestsPerDay:    10,
	},
}
