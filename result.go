package logomotion

import "time"

// GeneratedImage is a single generated logo.
type GeneratedImage struct {
	// Data contains the raw image bytes
	Data []byte

	// MIMEType of the generated image
	MIMEType string

	// Prompt is the enriched prompt that was sent to the model
	Prompt string

	// EnhancedPrompt is the prompt after any model rewriting, if reported
	EnhancedPrompt string
}

// Input returns the image as an animation source.
func (g *GeneratedImage) Input() InputImage {
	return InputImage{Data: g.Data, MIMEType: g.MIMEType}
}

// ImageResult holds what the provider returned for an ImageRequest.
type ImageResult struct {
	Images []GeneratedImage

	// FilteredReason is set when the backend withheld output for safety reasons
	FilteredReason string
}

// VideoOperation is the handle of an in-flight video generation job.
type VideoOperation struct {
	// Name identifies the operation on the backend
	Name string

	// Done reports whether the job has finished
	Done bool

	// Metadata is the raw progress metadata reported by the backend
	Metadata map[string]any

	// VideoURI is the retrieval URI of the first generated video, once done
	VideoURI string

	// Error is the backend failure message for a finished, failed job
	Error string
}

// VideoHandle is a locally addressable reference to materialized video bytes.
type VideoHandle struct {
	// Reference resolves the bytes through a BlobStore
	Reference string

	// SourceURI is the backend retrieval URI the bytes were fetched from
	SourceURI string

	MIMEType string
	Size     int
}

// GeneratedVideo is the result of a completed animation.
type GeneratedVideo struct {
	Handle VideoHandle

	// Prompt is the motion prompt that was sent to the model
	Prompt string

	AspectRatio VideoAspectRatio

	// PollAttempts is the number of status fetches performed
	PollAttempts int

	Duration time.Duration
}
