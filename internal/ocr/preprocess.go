package ocr

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// Preprocess converts a receipt photo into a high-contrast grayscale PNG.
// Phone captures arrive with color casts and uneven lighting that cost the
// recognizer accuracy on thin thermal-paper glyphs.
//
// Returns (outPath, cleanup, err). Call cleanup() to remove the temp file.
func Preprocess(path string) (string, func(), error) {
	src, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return "", nil, fmt.Errorf("open image: %w", err)
	}

	img := imaging.Grayscale(src)
	img = imaging.AdjustContrast(img, 20)
	img = imaging.Sharpen(img, 0.8)

	tmpDir, err := os.MkdirTemp("", "ss-ocr-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }

	out := filepath.Join(tmpDir, "receipt.png")
	if err := imaging.Save(img, out); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("save preprocessed image: %w", err)
	}
	return out, cleanup, nil
}
