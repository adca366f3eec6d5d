package logomotion

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validation errors
var (
	ErrEmptyPrompt        = errors.New("prompt cannot be empty")
	ErrInvalidStyle       = errors.New("unknown logo style")
	ErrInvalidAspectRatio = errors.New("unsupported video aspect ratio")
	ErrEmptyImageData     = errors.New("image data cannot be empty")
	ErrInvalidMIMEType    = errors.New("invalid or unsupported MIME type")
	ErrImageTooLarge      = errors.New("image data exceeds maximum size")

	ErrUnsupportedResolution = errors.New("unsupported video resolution")
)

// MaxImageSize is the maximum allowed source image size in bytes (20MB)
const MaxImageSize = 20 * 1024 * 1024

// ValidMIMETypes contains the supported source image MIME types
var ValidMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// ValidatePrompt validates a logo concept prompt.
func ValidatePrompt(prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return ErrEmptyPrompt
	}
	return nil
}

// ValidateStyle checks the style is one of the presets.
func ValidateStyle(style Style) error {
	for _, s := range Styles {
		if s == style {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidStyle, style)
}

// ValidateVideoAspectRatio checks the aspect ratio is supported for animation.
func ValidateVideoAspectRatio(ar VideoAspectRatio) error {
	switch ar {
	case VideoAspectRatio16x9, VideoAspectRatio9x16:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidAspectRatio, ar)
	}
}

// ValidateInputImage validates an animation source image.
func ValidateInputImage(img InputImage) error {
	if len(img.Data) == 0 {
		return ErrEmptyImageData
	}

	if len(img.Data) > MaxImageSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrImageTooLarge, len(img.Data), MaxImageSize)
	}

	if img.MIMEType == "" {
		return fmt.Errorf("%w: MIME type is required", ErrInvalidMIMEType)
	}

	if !ValidMIMETypes[img.MIMEType] {
		return fmt.Errorf("%w: %s", ErrInvalidMIMEType, img.MIMEType)
	}

	return nil
}

// MIMETypeFromPath guesses a source image MIME type from its file extension.
// It returns "" for extensions ValidateInputImage would reject.
func MIMETypeFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	default:
		return ""
	}
}

// ExtensionFromMIME returns a file extension for a generated asset.
func ExtensionFromMIME(mime string) string {
	switch mime {
	case "image/png":
		return "png"
	case "image/jpeg":
		return "jpg"
	case "image/webp":
		return "webp"
	case VideoMIMEType:
		return "mp4"
	default:
		return "bin"
	}
}
