package stage

import (
	"image"
	"image/draw"

	"github.com/anthonynsimon/bild/blur"
	"github.com/rm-hull/screenshot-redactor/internal/imaging"
)

type BlurStage struct {
	Region image.Rectangle
	Sigma  float64
}

// Process applies a Gaussian blur to the region using the specified Sigma value
// Higher Sigma values result in a more pronounced blur effect. Note that the
// blur kernel is clamped at the region edge, so content outside the region
// never bleeds in (and nothing outside the region is modified).
func (s *BlurStage) Process(p *imaging.Image) error {
	if err := checkRegion(s.Region, p.Bounds); err != nil {
		return err
	}

	sub := image.NewNRGBA(image.Rect(0, 0, s.Region.Dx(), s.Region.Dy()))
	draw.Draw(sub, sub.Bounds(), p.Img, s.Region.Min, draw.Src)

	blurred := blur.Gaussian(sub, s.Sigma)

	draw.Draw(p.Img, s.Region, blurred, image.Point{}, draw.Src)
	return nil
}
