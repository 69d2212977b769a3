package stage

import (
	"fmt"
	"image"

	"github.com/rm-hull/screenshot-redactor/internal/imaging"
)

// checkRegion rejects degenerate or out-of-bounds rectangles rather than
// clamping them, so that configuration mistakes fail loudly instead of
// silently redacting the wrong area.
func checkRegion(r, bounds image.Rectangle) error {
	if r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y {
		return fmt.Errorf("%w: degenerate rectangle %v", imaging.ErrInvalidRegion, r)
	}
	if !r.In(bounds) {
		return fmt.Errorf("%w: rectangle %v outside image bounds %v", imaging.ErrInvalidRegion, r, bounds)
	}
	return nil
}
