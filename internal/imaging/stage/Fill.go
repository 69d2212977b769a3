package stage

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/rm-hull/screenshot-redactor/internal/imaging"
)

type FillStage struct {
	Region image.Rectangle
	Color  color.NRGBA
}

// Process paints the region with a single solid colour, the bluntest of the
// redaction styles: nothing of the original content survives.
func (s *FillStage) Process(p *imaging.Image) error {
	if err := checkRegion(s.Region, p.Bounds); err != nil {
		return err
	}
	draw.Draw(p.Img, s.Region, image.NewUniform(s.Color), image.Point{}, draw.Src)
	return nil
}
