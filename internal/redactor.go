package internal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rm-hull/screenshot-redactor/internal/imaging"
)

// Redactor applies a validated configuration's region stages to images.
// Each invocation is independent; regions within one image are processed
// strictly sequentially so that overlapping regions observe earlier writes.
type Redactor struct {
	cfg    *Config
	stages []imaging.PipelineStage
}

func NewRedactor(cfg *Config) (*Redactor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	stages, err := cfg.Stages()
	if err != nil {
		return nil, err
	}
	return &Redactor{cfg: cfg, stages: stages}, nil
}

// Process decodes an image from r, redacts every configured region in
// order, and encodes the result to w. An empty outputFormat keeps the
// decoded input format.
func (rd *Redactor) Process(r io.Reader, w io.Writer, outputFormat string) error {
	img, err := imaging.NewFromReader(r)
	if err != nil {
		return err
	}

	if err := img.Pipeline(rd.stages...); err != nil {
		return err
	}

	if outputFormat == "" {
		outputFormat = img.Format
	}
	return img.Write(w, outputFormat, rd.cfg.Quality)
}

// ProcessFile redacts the image at inputPath and writes the result to
// outputPath, going through a temporary file in the destination directory
// so a failed run never leaves a partial output behind. The input file is
// not modified. Returns the output path on success.
func (rd *Redactor) ProcessFile(inputPath, outputPath string) (string, error) {
	inFile, err := os.Open(inputPath)
	if err != nil {
		return "", fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() {
		_ = inFile.Close()
	}()

	tmpFile, err := os.CreateTemp(filepath.Dir(outputPath), "redact-*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	cleanupTemp := true
	defer func() {
		_ = tmpFile.Close()
		if cleanupTemp {
			_ = os.Remove(tmpFile.Name())
		}
	}()

	// The output format follows the output extension, falling back to
	// whatever format the input decoded as.
	if err := rd.Process(inFile, tmpFile, imaging.FormatForPath(outputPath, "")); err != nil {
		return "", err
	}

	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temporary file before rename: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), outputPath); err != nil {
		return "", fmt.Errorf("failed to rename temporary file: %w", err)
	}

	cleanupTemp = false // Successfully renamed, don't delete
	return outputPath, nil
}
