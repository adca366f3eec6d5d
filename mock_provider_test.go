package logomotion

import (
	"context"
)

// MockProvider is a mock implementation of Provider.
type MockProvider struct {
	GenerateImagesFunc    func(ctx context.Context, req *ImageRequest) (*ImageResult, error)
	SubmitVideoFunc       func(ctx context.Context, req *VideoRequest) (*VideoOperation, error)
	GetVideoOperationFunc func(ctx context.Context, op *VideoOperation) (*VideoOperation, error)
	DownloadVideoFunc     func(ctx context.Context, uri string) ([]byte, error)
	ModelsFunc            func() []ModelInfo
	CloseFunc             func() error
}

func (m *MockProvider) GenerateImages(ctx context.Context, req *ImageRequest) (*ImageResult, error) {
	if m.GenerateImagesFunc != nil {
		return m.GenerateImagesFunc(ctx, req)
	}
	return &ImageResult{}, nil
}

func (m *MockProvider) SubmitVideo(ctx context.Context, req *VideoRequest) (*VideoOperation, error) {
	if m.SubmitVideoFunc != nil {
		return m.SubmitVideoFunc(ctx, req)
	}
	return &VideoOperation{Name: "operations/mock"}, nil
}

func (m *MockProvider) GetVideoOperation(ctx context.Context, op *VideoOperation) (*VideoOperation, error) {
	if m.GetVideoOperationFunc != nil {
		return m.GetVideoOperationFunc(ctx, op)
	}
	return &VideoOperation{Name: op.Name, Done: true, VideoURI: "https://example.com/video"}, nil
}

func (m *MockProvider) DownloadVideo(ctx context.Context, uri string) ([]byte, error) {
	if m.DownloadVideoFunc != nil {
		return m.DownloadVideoFunc(ctx, uri)
	}
	return []byte("mp4"), nil
}

func (m *MockProvider) Models() []ModelInfo {
	if m.ModelsFunc != nil {
		return m.ModelsFunc()
	}
	return []ModelInfo{
		{Name: "image", APIModelName: "image-model", Kind: ModelKindImage},
		{Name: "video", APIModelName: "video-model", Kind: ModelKindVideo},
	}
}

func (m *MockProvider) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// fakeGate is a CredentialGate with scripted answers.
type fakeGate struct {
	selected   bool
	pickResult bool // selection after the picker runs
	pickErr    error
	opened     int
}

func (g *fakeGate) HasSelectedCredential(ctx context.Context) (bool, error) {
	return g.selected, nil
}

func (g *fakeGate) OpenCredentialPicker(ctx context.Context) error {
	g.opened++
	if g.pickErr != nil {
		return g.pickErr
	}
	g.selected = g.pickResult
	return nil
}
