//go:build e2e

package e2e

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airwave-qa/wavetest/pkg/files"
	"github.com/airwave-qa/wavetest/pkg/harness"
)

// fixtures generates the deterministic asset set into a per-test temp dir
// and returns name -> disk path.
func fixtures(t *testing.T) map[string]string {
	t.Helper()
	assets, err := files.CreateTestAssets(t.TempDir())
	require.NoError(t, err)

	byName := make(map[string]string, len(assets))
	for _, a := range assets {
		byName[a.Name] = a.Path
	}
	return byName
}

func TestUploadJourney(t *testing.T) {
	fix := fixtures(t)
	f := h.NewFixture(t, harness.PreAuthenticated())

	require.NoError(t, f.Assets.Open())
	require.NoError(t, f.Assets.OpenUploadModal())

	require.NoError(t, f.Files.UploadFile(fix["test-image.jpg"], ""))
	require.NoError(t, f.Files.WaitForUploadComplete())
	require.NoError(t, f.Files.VerifyFileUploaded("test-image.jpg"))
}

func TestUploadMultipleFiles(t *testing.T) {
	fix := fixtures(t)
	f := h.NewFixture(t, harness.PreAuthenticated())

	require.NoError(t, f.Assets.Open())
	require.NoError(t, f.Assets.OpenUploadModal())

	paths := []string{fix["test-video.mp4"], fix["test-document.pdf"], fix["test-notes.txt"]}
	require.NoError(t, f.Files.UploadMultipleFiles(paths))
	require.NoError(t, f.Files.WaitForUploadComplete())

	for _, name := range []string{"test-video.mp4", "test-document.pdf", "test-notes.txt"} {
		require.NoError(t, f.Files.VerifyFileUploaded(name))
	}
}

func TestDragAndDropUpload(t *testing.T) {
	fix := fixtures(t)
	f := h.NewFixture(t, harness.PreAuthenticated())

	require.NoError(t, f.Assets.Open())
	// the dropzone lives inside the modal, so it has to be open first
	require.NoError(t, f.Assets.OpenUploadModal())

	require.NoError(t, f.Files.DragAndDropFile(fix["test-image.png"], `[data-testid="upload-dropzone"]`))
	require.NoError(t, f.Files.WaitForUploadComplete())
	require.NoError(t, f.Files.VerifyFileUploaded("test-image.png"))
}

func TestAssetSearch(t *testing.T) {
	fix := fixtures(t)
	f := h.NewFixture(t, harness.PreAuthenticated())

	require.NoError(t, f.Assets.Open())
	require.NoError(t, f.Assets.OpenUploadModal())
	require.NoError(t, f.Files.UploadFile(fix["test-audio.mp3"], ""))
	require.NoError(t, f.Files.WaitForUploadComplete())
	require.NoError(t, f.Files.VerifyFileUploaded("test-audio.mp3"))

	// narrow the grid down to the one uploaded card
	require.NoError(t, f.Assets.Search("test-audio"))

	visibleTexts := func() []string {
		cards := f.Assets.Cards()
		count, err := cards.Count()
		if err != nil {
			return nil
		}
		var texts []string
		for i := 0; i < count; i++ {
			if v, vErr := cards.Nth(i).IsVisible(); vErr == nil && v {
				if text, tErr := cards.Nth(i).TextContent(); tErr == nil {
					texts = append(texts, text)
				}
			}
		}
		return texts
	}

	require.Eventually(t, func() bool {
		return len(visibleTexts()) == 1
	}, 10*time.Second, 100*time.Millisecond, "search should leave a single visible card")
	assert.Contains(t, visibleTexts()[0], "test-audio")
}
