package cmd

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"

	_ "image/jpeg"
	_ "image/png"
)

// Inspect prints the dimensions of an image, to aid manual selection of
// region coordinates. Only the header is read, not the full pixel data.
func Inspect(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("input file %q not found", path)
		}
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return fmt.Errorf("failed to read image header: %w", err)
	}

	fmt.Printf("Image dimensions: %dx%d (width x height)\n", cfg.Width, cfg.Height)
	return nil
}
