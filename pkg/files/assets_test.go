package files

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airwave-qa/wavetest/pkg/wait"
)

func TestCreateTestAssets(t *testing.T) {
	dir := t.TempDir()

	assets, err := CreateTestAssets(dir)
	require.NoError(t, err)
	require.Len(t, assets, 6)

	for _, a := range assets {
		info, err := os.Stat(a.Path)
		require.NoError(t, err, "asset %s should exist", a.Name)
		assert.Positive(t, info.Size(), "asset %s should be non-empty", a.Name)
		assert.Equal(t, filepath.Join(dir, a.Name), a.Path)
	}
}

func TestCreateTestAssets_Restartable(t *testing.T) {
	dir := t.TempDir()

	first, err := CreateTestAssets(dir)
	require.NoError(t, err)
	second, err := CreateTestAssets(dir)
	require.NoError(t, err)

	// same deterministic set of paths on every call
	require.Equal(t, first, second)

	for _, a := range second {
		data, err := os.ReadFile(a.Path)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	}
}

func TestCreateTestAssets_SniffedContentTypes(t *testing.T) {
	dir := t.TempDir()
	assets, err := CreateTestAssets(dir)
	require.NoError(t, err)

	// declared type must match what standard content sniffing detects,
	// so server-side type checks accept the fixtures as real files
	expected := map[string]string{
		"test-image.jpg":    "image/jpeg",
		"test-image.png":    "image/png",
		"test-video.mp4":    "video/mp4",
		"test-audio.mp3":    "audio/mpeg",
		"test-document.pdf": "application/pdf",
		"test-notes.txt":    "text/plain; charset=utf-8",
	}

	for _, a := range assets {
		want, ok := expected[a.Name]
		require.True(t, ok, "unexpected asset %s", a.Name)

		data, err := os.ReadFile(a.Path)
		require.NoError(t, err)
		assert.Equal(t, want, http.DetectContentType(data), "sniffed type for %s", a.Name)
	}
}

func TestAssetByName(t *testing.T) {
	dir := t.TempDir()
	assets, err := CreateTestAssets(dir)
	require.NoError(t, err)

	a, ok := AssetByName(assets, "test-image.jpg")
	require.True(t, ok)
	assert.Equal(t, "image/jpeg", a.MIME)

	_, ok = AssetByName(assets, "nope.bin")
	assert.False(t, ok)
}

func TestUploadTimeoutError(t *testing.T) {
	err := &UploadTimeoutError{Elapsed: 10 * time.Second}
	assert.Equal(t, "upload did not complete within 10s", err.Error())

	var te *wait.TimeoutError
	require.ErrorAs(t, error(err), &te)
	assert.Equal(t, "upload complete", te.Op)
}

func TestMimeForName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"test-image.jpg", "image/jpeg"},
		{"custom-photo.JPEG", "image/jpeg"},
		{"clip.mp4", "video/mp4"},
		{"track.mp3", "audio/mpeg"},
		{"brief.pdf", "application/pdf"},
		{"readme.txt", "text/plain"},
		{"blob.bin", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mimeForName(tt.name))
		})
	}
}
