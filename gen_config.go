package logomotion

import "strings"

// Model represents a specific generation model by its API name.
type Model string

// String returns the model identifier.
func (m Model) String() string {
	return string(m)
}

// Style is one of the preset logo style labels.
type Style string

const (
	StyleMinimalistVector  Style = "Minimalist Vector"
	Style3DGlossy          Style = "3D Glossy"
	StyleAbstractGeometric Style = "Abstract Geometric"
	StyleVintageBadge      Style = "Vintage Badge"
	StyleNeonCyberpunk     Style = "Neon Cyberpunk"
	StyleHandDrawnSketch   Style = "Hand Drawn Sketch"
)

// Styles lists the presets in display order. The first is the default.
var Styles = []Style{
	StyleMinimalistVector,
	Style3DGlossy,
	StyleAbstractGeometric,
	StyleVintageBadge,
	StyleNeonCyberpunk,
	StyleHandDrawnSketch,
}

// String returns the style label.
func (s Style) String() string {
	return string(s)
}

// AspectRatio represents the aspect ratio sent with an image request.
type AspectRatio string

const (
	AspectRatio1x1 AspectRatio = "1:1"
)

// String returns the string representation for API calls.
func (a AspectRatio) String() string {
	return string(a)
}

// VideoAspectRatio is the target aspect ratio of an animation.
type VideoAspectRatio string

const (
	VideoAspectRatio16x9 VideoAspectRatio = "16:9"
	VideoAspectRatio9x16 VideoAspectRatio = "9:16"
)

// String returns the string representation for API calls.
func (a VideoAspectRatio) String() string {
	return string(a)
}

// VideoResolution is the output resolution tier of a video.
type VideoResolution string

const (
	VideoResolution720p  VideoResolution = "720p"
	VideoResolution1080p VideoResolution = "1080p"
)

// String returns the string representation for API calls.
func (r VideoResolution) String() string {
	return string(r)
}

const (
	// LogoMIMEType is the raster format requested for logos.
	LogoMIMEType = "image/jpeg"

	// DefaultMotionPrompt is used when an animation is requested without a prompt.
	DefaultMotionPrompt = "Cinematic camera movement, bringing the logo to life"
)

// ImageRequest is the provider-level request for a single logo image.
type ImageRequest struct {
	Model          Model
	Prompt         string
	NumberOfImages int
	MIMEType       string
	AspectRatio    AspectRatio
}

// VideoRequest is the provider-level request to animate an image.
type VideoRequest struct {
	Model          Model
	Prompt         string
	Image          InputImage
	NumberOfVideos int
	Resolution     VideoResolution
	AspectRatio    VideoAspectRatio
}

// InputImage represents an image input for animation.
type InputImage struct {
	// Data is the raw image bytes
	Data []byte

	// MIMEType of the image (e.g., "image/jpeg", "image/png")
	MIMEType string
}

// LogoPrompt embeds the concept and style into the prompt sent to the image model.
func LogoPrompt(concept string, style Style) string {
	var b strings.Builder
	b.WriteString("Design a professional, high-quality logo. Concept: ")
	b.WriteString(concept)
	b.WriteString(". Style: ")
	b.WriteString(style.String())
	b.WriteString(". Ensure a clean background, suitable for vectorization logic (though this is raster). High contrast, distinct shapes.")
	return b.String()
}

// MotionPrompt returns prompt, or DefaultMotionPrompt when prompt is blank.
func MotionPrompt(prompt string) string {
	if strings.TrimSpace(prompt) == "" {
		return DefaultMotionPrompt
	}
	return prompt
}
