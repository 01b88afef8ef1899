package files

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/airwave-qa/wavetest/pkg/wait"
)

// selectors for the upload surface, data-testid primary with CSS fallbacks.
const (
	fileInput      = `[data-testid="file-input"], input[type="file"]`
	uploadModal    = `[data-testid="upload-modal"]`
	successToast   = `[data-testid="upload-success-toast"], .toast-success`
	uploadProgress = `[data-testid="upload-progress"], .upload-progress`
	assetGrid      = `[data-testid="asset-grid"]`
	assetCard      = `[data-testid="asset-card"]`
)

// Options configures an upload Helper. Zero timeouts fall back to the
// wait package defaults.
type Options struct {
	Timeout  time.Duration
	Interval time.Duration
}

// Helper drives upload interactions on a single page.
type Helper struct {
	page playwright.Page
	opts Options
}

// New creates a file helper for the given page.
func New(page playwright.Page, opts Options) *Helper {
	return &Helper{page: page, opts: opts}
}

// UploadFile clicks the trigger to open the upload UI and sets the file
// input to path. Returns once the UI acknowledges the selection, which may
// be before the network upload finishes.
func (h *Helper) UploadFile(path, triggerSelector string) error {
	if triggerSelector != "" {
		if err := h.page.Locator(triggerSelector).First().Click(); err != nil {
			return fmt.Errorf("click upload trigger: %w", err)
		}
	}
	if err := h.page.Locator(fileInput).First().SetInputFiles([]string{path}); err != nil {
		return fmt.Errorf("set input files: %w", err)
	}
	return nil
}

// UploadMultipleFiles sets all paths on the file input in a single
// operation, exercising the bulk-upload path.
func (h *Helper) UploadMultipleFiles(paths []string) error {
	if len(paths) == 0 {
		return errors.New("no files to upload")
	}
	if err := h.page.Locator(fileInput).First().SetInputFiles(paths); err != nil {
		return fmt.Errorf("set input files: %w", err)
	}
	return nil
}

// DragAndDropFile synthesizes a dragenter/dragover/drop sequence with a
// DataTransfer payload carrying the file at path. Used for dropzone-only
// upload UIs that do not expose a native file input.
func (h *Helper) DragAndDropFile(path, dropzoneSelector string) error {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path produced by CreateTestAssets
	if err != nil {
		return fmt.Errorf("read fixture file: %w", err)
	}

	arg := map[string]any{
		"selector": dropzoneSelector,
		"name":     filepath.Base(path),
		"mime":     mimeForName(filepath.Base(path)),
		"b64":      base64.StdEncoding.EncodeToString(data),
	}

	// the whole sequence runs in one evaluation so the DataTransfer object
	// survives between the synthesized events
	script := `({selector, name, mime, b64}) => {
		const target = document.querySelector(selector);
		if (!target) throw new Error('dropzone not found: ' + selector);
		const bytes = Uint8Array.from(atob(b64), c => c.charCodeAt(0));
		const file = new File([bytes], name, {type: mime});
		const dt = new DataTransfer();
		dt.items.add(file);
		for (const type of ['dragenter', 'dragover', 'drop']) {
			const ev = new DragEvent(type, {bubbles: true, cancelable: true});
			Object.defineProperty(ev, 'dataTransfer', {value: dt});
			target.dispatchEvent(ev);
		}
	}`

	if _, err := h.page.Evaluate(script, arg); err != nil {
		return fmt.Errorf("dispatch drop events: %w", err)
	}
	return nil
}

// WaitForUploadComplete polls for a completion signal: the upload modal
// closing, a success toast appearing, or the progress bar disappearing.
// Returns *UploadTimeoutError when none of them shows up in time.
func (h *Helper) WaitForUploadComplete() error {
	err := wait.Until("upload complete", h.opts.Timeout, h.opts.Interval, func() bool {
		if visible, err := h.page.Locator(successToast).First().IsVisible(); err == nil && visible {
			return true
		}
		// no progress bar and no open modal means the upload UI settled
		modalVisible, mErr := h.page.Locator(uploadModal).First().IsVisible()
		progressVisible, pErr := h.page.Locator(uploadProgress).First().IsVisible()
		return mErr == nil && pErr == nil && !modalVisible && !progressVisible
	})
	if err != nil {
		var te *wait.TimeoutError
		if errors.As(err, &te) {
			return &UploadTimeoutError{Elapsed: te.Elapsed}
		}
		return err
	}
	return nil
}

// VerifyFileUploaded polls the asset grid until a card carrying name shows
// up, confirming the upload landed in the asset list.
func (h *Helper) VerifyFileUploaded(name string) error {
	err := wait.Until("asset "+name+" in grid", h.opts.Timeout, h.opts.Interval, func() bool {
		cards := h.page.Locator(assetGrid).Locator(assetCard)
		count, err := cards.Count()
		if err != nil {
			return false
		}
		for i := 0; i < count; i++ {
			text, err := cards.Nth(i).TextContent()
			if err != nil {
				continue
			}
			if strings.Contains(text, name) {
				return true
			}
		}
		return false
	})
	if err != nil {
		return fmt.Errorf("verify upload of %s: %w", name, err)
	}
	return nil
}

// mimeForName maps a fixture file name to its declared content type,
// falling back to octet-stream for unknown extensions.
func mimeForName(name string) string {
	for _, fa := range fixtureAssets {
		if fa.name == name {
			return fa.mime
		}
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".mp4":
		return "video/mp4"
	case ".mp3":
		return "audio/mpeg"
	case ".pdf":
		return "application/pdf"
	case ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
