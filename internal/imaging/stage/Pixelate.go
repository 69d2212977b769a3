package stage

import (
	"fmt"
	"image"

	"github.com/rm-hull/screenshot-redactor/internal/imaging"
	"golang.org/x/image/draw"
)

type PixelateStage struct {
	Region    image.Rectangle
	BlockSize int
}

// Process replaces the region with a blocky, resolution-reduced version of
// itself: the region is resampled down by BlockSize and straight back up,
// both with nearest-neighbour interpolation, so each block carries a single
// unblended pixel value from the source. Deliberately no averaging - the
// hard block edges are what makes the redaction obvious.
// Pixels outside the region are left untouched.
func (s *PixelateStage) Process(p *imaging.Image) error {
	if err := checkRegion(s.Region, p.Bounds); err != nil {
		return err
	}
	if s.BlockSize < 1 {
		return fmt.Errorf("block size must be at least 1, got %d", s.BlockSize)
	}

	width := s.Region.Dx()
	height := s.Region.Dy()

	// A region smaller than the block collapses to a single tile rather
	// than producing a zero-sized intermediate image.
	reduced := image.NewNRGBA(image.Rect(0, 0,
		max(1, width/s.BlockSize),
		max(1, height/s.BlockSize),
	))

	draw.NearestNeighbor.Scale(reduced, reduced.Bounds(), p.Img, s.Region, draw.Src, nil)
	draw.NearestNeighbor.Scale(p.Img, s.Region, reduced, reduced.Bounds(), draw.Src, nil)
	return nil
}
