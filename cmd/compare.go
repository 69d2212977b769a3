package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/rm-hull/screenshot-redactor/internal/imaging"
)

// Compare writes an animated PNG that alternates between the original and
// redacted images, as a quick visual check that the configured regions
// cover everything they should.
func Compare(originalPath, redactedPath, outputPath string, frameDelay float64) error {
	apngBytes, err := imaging.Animate([]string{originalPath, redactedPath}, frameDelay)
	if err != nil {
		return fmt.Errorf("failed to build comparison animation: %w", err)
	}

	if err := os.WriteFile(outputPath, apngBytes, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	log.Printf("Comparison animation written to %s", outputPath)
	return nil
}
