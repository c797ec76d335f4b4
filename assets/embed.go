package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

//go:embed *.png
var assetsFS embed.FS

var (
	cacheMu sync.Mutex
	cache   = map[string]*ebiten.Image{}
)

// LoadImage returns the sheet at path, decoded once and cached. A file on
// disk (as given, or under assets/) wins over the embedded copy so sheets
// can be edited while the viewer runs.
func LoadImage(path string) (*ebiten.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("assets: empty image path")
	}
	cacheMu.Lock()
	defer cacheMu.Unlock()
	if img, ok := cache[path]; ok {
		return img, nil
	}
	img, err := decodeImage(path)
	if err != nil {
		return nil, err
	}
	cache[path] = img
	return img, nil
}

// Forget drops a cached sheet so the next LoadImage reads it again.
func Forget(path string) {
	cacheMu.Lock()
	delete(cache, path)
	cacheMu.Unlock()
}

// ImageSize reads only the header of the sheet at path.
func ImageSize(path string) (width, height int, err error) {
	b, err := readDiskOrEmbedded(path)
	if err != nil {
		return 0, 0, err
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(b))
	if err != nil {
		return 0, 0, fmt.Errorf("assets: decode %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}

func decodeImage(path string) (*ebiten.Image, error) {
	b, err := readDiskOrEmbedded(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", path, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

func readDiskOrEmbedded(path string) ([]byte, error) {
	for _, p := range []string{path, filepath.Join("assets", path)} {
		if b, err := os.ReadFile(p); err == nil {
			return b, nil
		}
	}
	b, err := assetsFS.ReadFile(cleanAssetPath(path))
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", path, err)
	}
	return b, nil
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
		return s[idx+len("/assets/"):]
	}
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		return after
	}
	return s
}
