package gemini

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mhpenta/logomotion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestDownloadVideo_AppendsKey(t *testing.T) {
	var gotKey, gotAlt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		gotAlt = r.URL.Query().Get("alt")
		w.Header().Set("Content-Type", "video/mp4")
		_, _ = w.Write([]byte("mp4-bytes"))
	}))
	defer srv.Close()

	g := &Generator{creds: staticKey("secret"), httpClient: srv.Client()}

	data, err := g.DownloadVideo(context.Background(), srv.URL+"/files/abc:download?alt=media")
	require.NoError(t, err)
	assert.Equal(t, []byte("mp4-bytes"), data)
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "media", gotAlt, "existing query parameters must be kept")
}

func TestDownloadVideo_NonOKIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	g := &Generator{creds: staticKey("secret"), httpClient: srv.Client()}

	_, err := g.DownloadVideo(context.Background(), srv.URL+"/video")
	require.Error(t, err)

	var tErr *logomotion.TransportError
	require.True(t, errors.As(err, &tErr))
	assert.Equal(t, http.StatusForbidden, tErr.StatusCode)
	assert.Equal(t, "download video", tErr.Op)
}

func TestConvertOperation(t *testing.T) {
	tests := []struct {
		name    string
		op      *genai.GenerateVideosOperation
		wantURI string
		wantErr string
		done    bool
	}{
		{
			name: "pending",
			op:   &genai.GenerateVideosOperation{Name: "operations/1"},
		},
		{
			name: "done with video",
			op: &genai.GenerateVideosOperation{
				Name: "operations/1",
				Done: true,
				Response: &genai.GenerateVideosResponse{
					GeneratedVideos: []*genai.GeneratedVideo{
						{Video: &genai.Video{URI: "https://example.com/v?alt=media"}},
					},
				},
			},
			wantURI: "https://example.com/v?alt=media",
			done:    true,
		},
		{
			name: "done with error",
			op: &genai.GenerateVideosOperation{
				Name:  "operations/1",
				Done:  true,
				Error: map[string]any{"code": 3, "message": "image rejected"},
			},
			wantErr: "image rejected",
			done:    true,
		},
		{
			name: "done but filtered",
			op: &genai.GenerateVideosOperation{
				Name: "operations/1",
				Done: true,
				Response: &genai.GenerateVideosResponse{
					RAIMediaFilteredCount:   1,
					RAIMediaFilteredReasons: []string{"celebrity likeness"},
				},
			},
			wantErr: "filtered: celebrity likeness",
			done:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convertOperation(tt.op)
			require.NotNil(t, got)
			assert.Equal(t, "operations/1", got.Name)
			assert.Equal(t, tt.done, got.Done)
			assert.Equal(t, tt.wantURI, got.VideoURI)
			assert.Equal(t, tt.wantErr, got.Error)
		})
	}

	assert.Nil(t, convertOperation(nil))
}

func TestParseImageResponse(t *testing.T) {
	resp := &genai.GenerateImagesResponse{
		GeneratedImages: []*genai.GeneratedImage{
			{RAIFilteredReason: "unsafe"},
			{Image: &genai.Image{ImageBytes: []byte("jpeg")}, EnhancedPrompt: "a lion"},
		},
	}

	result := parseImageResponse(resp, "image/jpeg")
	require.Len(t, result.Images, 1)
	assert.Equal(t, []byte("jpeg"), result.Images[0].Data)
	assert.Equal(t, "image/jpeg", result.Images[0].MIMEType)
	assert.Equal(t, "a lion", result.Images[0].EnhancedPrompt)
	assert.Equal(t, "unsafe", result.FilteredReason)

	assert.Empty(t, parseImageResponse(nil, "image/jpeg").Images)
}

func TestBuildConfigs(t *testing.T) {
	img := buildImageConfig(&logomotion.ImageRequest{
		MIMEType:    logomotion.LogoMIMEType,
		AspectRatio: logomotion.AspectRatio1x1,
	})
	assert.Equal(t, int32(1), img.NumberOfImages)
	assert.Equal(t, "image/jpeg", img.OutputMIMEType)
	assert.Equal(t, "1:1", img.AspectRatio)

	vid := buildVideoConfig(&logomotion.VideoRequest{
		NumberOfVideos: 1,
		Resolution:     logomotion.VideoResolution720p,
		AspectRatio:    logomotion.VideoAspectRatio9x16,
	})
	assert.Equal(t, int32(1), vid.NumberOfVideos)
	assert.Equal(t, "720p", vid.Resolution)
	assert.Equal(t, "9:16", vid.AspectRatio)
}

func TestMapError(t *testing.T) {
	rl := mapError("generate image", genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED"}, APIModelImagen4)
	assert.True(t, logomotion.IsRateLimitError(rl))

	var tErr *logomotion.TransportError
	other := mapError("submit video", genai.APIError{Code: 500, Message: "internal"}, APIModelVeo31Fast)
	require.True(t, errors.As(other, &tErr))
	assert.Equal(t, 500, tErr.StatusCode)

	plain := mapError("poll video", errors.New("connection reset"), "operations/1")
	assert.True(t, logomotion.IsTransportError(plain))

	assert.ErrorIs(t, mapError("poll video", context.Canceled, "operations/1"), context.Canceled)
}

func TestModels(t *testing.T) {
	g := &Generator{creds: staticKey("")}
	models := g.Models()
	require.Len(t, models, 2)
	assert.Equal(t, logomotion.ModelKindImage, models[0].Kind)
	assert.Equal(t, logomotion.ModelKindVideo, models[1].Kind)
}
