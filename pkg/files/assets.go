// Package files owns test-fixture file creation and the upload interaction
// surface: single and multi file inputs, drag-and-drop synthesis for
// dropzone-only UIs, and post-upload verification.
package files

import (
	"fmt"
	"os"
	"path/filepath"
)

// Asset describes one generated fixture file.
type Asset struct {
	Name string // deterministic file name, e.g. test-image.jpg
	MIME string // declared content type
	Path string // absolute path on disk
}

// fixture file contents. Minimal but valid per content sniffing rules, so
// the application (and any server-side type check) accepts them as real
// files of the declared type.
var fixtureAssets = []struct {
	name string
	mime string
	data []byte
}{
	{
		name: "test-image.jpg",
		mime: "image/jpeg",
		// SOI + JFIF APP0 marker, then EOI
		data: []byte{
			0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00,
			0x01, 0x01, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00,
			0xff, 0xd9,
		},
	},
	{
		name: "test-image.png",
		mime: "image/png",
		// signature + 1x1 IHDR + empty IDAT + IEND
		data: []byte{
			0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a,
			0x00, 0x00, 0x00, 0x0d, 'I', 'H', 'D', 'R',
			0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
			0x08, 0x02, 0x00, 0x00, 0x00, 0x90, 0x77, 0x53, 0xde,
			0x00, 0x00, 0x00, 0x00, 'I', 'D', 'A', 'T',
			0x35, 0xaf, 0x06, 0x1e,
			0x00, 0x00, 0x00, 0x00, 'I', 'E', 'N', 'D',
			0xae, 0x42, 0x60, 0x82,
		},
	},
	{
		name: "test-video.mp4",
		mime: "video/mp4",
		// ftyp box with mp42 major brand
		data: []byte{
			0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p',
			'm', 'p', '4', '2', 0x00, 0x00, 0x00, 0x00,
			'm', 'p', '4', '2', 'i', 's', 'o', 'm',
		},
	},
	{
		name: "test-audio.mp3",
		mime: "audio/mpeg",
		// empty ID3v2.3 tag followed by one frame sync word
		data: []byte{
			'I', 'D', '3', 0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
			0xff, 0xfb, 0x90, 0x00,
		},
	},
	{
		name: "test-document.pdf",
		mime: "application/pdf",
		data: []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n"),
	},
	{
		name: "test-notes.txt",
		mime: "text/plain",
		data: []byte("wavetest fixture document\ngenerated for upload journeys\n"),
	},
}

// CreateTestAssets writes the fixture set into dir and returns the assets
// in a stable order. Restartable: repeated calls overwrite the same
// deterministically named files with identical content.
func CreateTestAssets(dir string) ([]Asset, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create assets dir: %w", err)
	}

	assets := make([]Asset, 0, len(fixtureAssets))
	for _, fa := range fixtureAssets {
		path := filepath.Join(dir, fa.name)
		if err := os.WriteFile(path, fa.data, 0o600); err != nil {
			return nil, fmt.Errorf("write %s: %w", fa.name, err)
		}
		assets = append(assets, Asset{Name: fa.name, MIME: fa.mime, Path: path})
	}
	return assets, nil
}

// AssetByName returns the asset with the given file name from a generated set.
func AssetByName(assets []Asset, name string) (Asset, bool) {
	for _, a := range assets {
		if a.Name == name {
			return a, true
		}
	}
	return Asset{}, false
}
