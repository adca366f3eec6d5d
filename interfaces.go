package logomotion

import "context"

// Provider is the backend interface for image and video generation.
// Implement this interface to add support for new models or providers.
type Provider interface {
	// GenerateImages requests images for a prompt.
	GenerateImages(ctx context.Context, req *ImageRequest) (*ImageResult, error)

	// SubmitVideo starts a long-running video job and returns its handle.
	SubmitVideo(ctx context.Context, req *VideoRequest) (*VideoOperation, error)

	// GetVideoOperation re-fetches an operation's status by handle.
	GetVideoOperation(ctx context.Context, op *VideoOperation) (*VideoOperation, error)

	// DownloadVideo fetches the bytes behind a video retrieval URI.
	DownloadVideo(ctx context.Context, uri string) ([]byte, error)

	// Models returns the models served by this provider.
	// The first image model and the first video model are the defaults.
	Models() []ModelInfo

	// Close releases any resources held by the provider.
	Close() error
}

// CredentialGate ensures a usable API credential is selected before a video
// request. OpenCredentialPicker may block on user interaction and returns
// once the user completes or cancels.
type CredentialGate interface {
	HasSelectedCredential(ctx context.Context) (bool, error)
	OpenCredentialPicker(ctx context.Context) error
}

// BlobStore holds materialized media and hands out local references to it.
type BlobStore interface {
	// Put stores data and returns a reference that resolves to it.
	Put(ctx context.Context, data []byte, mimeType string) (string, error)

	// Get resolves a reference.
	Get(ctx context.Context, ref string) (data []byte, mimeType string, err error)

	// Revoke releases a reference. Revoking an unknown reference is a no-op.
	Revoke(ctx context.Context, ref string)
}
