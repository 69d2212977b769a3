package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/rm-hull/screenshot-redactor/internal"
)

// Redact loads the region configuration, applies any flag overrides, and
// redacts the input image into the output file.
func Redact(configPath, inputPath, outputPath string, blockSize, quality int, verbose bool) error {
	if verbose {
		internal.ShowVersion()
		internal.UserInfo()
		internal.EnvironmentVars()
	}

	cfg, err := internal.LoadConfig(configPath)
	if err != nil {
		return err
	}

	if inputPath != "" {
		cfg.Input = inputPath
	}
	if outputPath != "" {
		cfg.Output = outputPath
	}
	if blockSize > 0 {
		cfg.BlockSize = blockSize
	}
	if quality >= 0 {
		cfg.Quality = quality
	}

	redactor, err := internal.NewRedactor(cfg)
	if err != nil {
		return err
	}

	written, err := redactor.ProcessFile(cfg.Input, cfg.Output)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("input file %q not found", cfg.Input)
	}
	if err != nil {
		return fmt.Errorf("failed to process image: %w", err)
	}

	log.Printf("Successfully processed image: %s", written)
	return nil
}
