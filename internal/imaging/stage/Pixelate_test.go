package stage

import (
	"image"
	"image/color"
	"testing"

	"github.com/rm-hull/screenshot-redactor/internal/imaging"
	"github.com/stretchr/testify/assert"
)

// newTestImage builds an opaque gradient where (almost) every pixel has a
// distinct colour, so resampling mistakes show up as value mismatches.
func newTestImage(width, height int) *imaging.Image {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x % 251),
				G: uint8(y % 239),
				B: uint8((x*7 + y*13) % 241),
				A: 255,
			})
		}
	}
	return &imaging.Image{
		Img:    img,
		Bounds: img.Bounds(),
		Format: "png",
	}
}

func clonePixels(p *imaging.Image) []uint8 {
	return append([]uint8(nil), p.Img.Pix...)
}

func TestPixelateStage(t *testing.T) {
	region := image.Rect(16, 8, 80, 56)

	t.Run("pixels outside the region are untouched", func(t *testing.T) {
		p := newTestImage(100, 70)
		before := clonePixels(p)

		err := (&PixelateStage{Region: region, BlockSize: 8}).Process(p)
		assert.NoError(t, err)

		for y := 0; y < 70; y++ {
			for x := 0; x < 100; x++ {
				if image.Pt(x, y).In(region) {
					continue
				}
				i := p.Img.PixOffset(x, y)
				assert.Equal(t, before[i:i+4], []uint8(p.Img.Pix[i:i+4]),
					"pixel (%d,%d) outside the region changed", x, y)
			}
		}
	})

	t.Run("pixelation is idempotent", func(t *testing.T) {
		p := newTestImage(100, 70)
		s := &PixelateStage{Region: region, BlockSize: 8}

		assert.NoError(t, s.Process(p))
		once := clonePixels(p)

		assert.NoError(t, s.Process(p))
		assert.Equal(t, once, []uint8(p.Img.Pix))
	})

	t.Run("every pixel inside the region comes from the source region", func(t *testing.T) {
		p := newTestImage(100, 70)

		sourceColors := map[color.NRGBA]bool{}
		for y := region.Min.Y; y < region.Max.Y; y++ {
			for x := region.Min.X; x < region.Max.X; x++ {
				sourceColors[p.Img.NRGBAAt(x, y)] = true
			}
		}

		err := (&PixelateStage{Region: region, BlockSize: 8}).Process(p)
		assert.NoError(t, err)

		for y := region.Min.Y; y < region.Max.Y; y++ {
			for x := region.Min.X; x < region.Max.X; x++ {
				assert.True(t, sourceColors[p.Img.NRGBAAt(x, y)],
					"pixel (%d,%d) holds a colour not present in the source region", x, y)
			}
		}
	})

	t.Run("distinct colours are bounded by the reduced grid", func(t *testing.T) {
		p := newTestImage(100, 70)
		blockSize := 8

		err := (&PixelateStage{Region: region, BlockSize: blockSize}).Process(p)
		assert.NoError(t, err)

		distinct := map[color.NRGBA]bool{}
		for y := region.Min.Y; y < region.Max.Y; y++ {
			for x := region.Min.X; x < region.Max.X; x++ {
				distinct[p.Img.NRGBAAt(x, y)] = true
			}
		}

		maxTiles := (region.Dx() / blockSize) * (region.Dy() / blockSize)
		assert.LessOrEqual(t, len(distinct), maxTiles)
	})

	t.Run("region smaller than the block collapses to a single colour", func(t *testing.T) {
		p := newTestImage(40, 40)
		small := image.Rect(5, 5, 15, 13)

		err := (&PixelateStage{Region: small, BlockSize: 15}).Process(p)
		assert.NoError(t, err)

		first := p.Img.NRGBAAt(small.Min.X, small.Min.Y)
		for y := small.Min.Y; y < small.Max.Y; y++ {
			for x := small.Min.X; x < small.Max.X; x++ {
				assert.Equal(t, first, p.Img.NRGBAAt(x, y))
			}
		}
	})

	t.Run("block size of one leaves the image unchanged", func(t *testing.T) {
		p := newTestImage(100, 70)
		before := clonePixels(p)

		err := (&PixelateStage{Region: region, BlockSize: 1}).Process(p)
		assert.NoError(t, err)
		assert.Equal(t, before, []uint8(p.Img.Pix))
	})

	t.Run("zero block size is rejected", func(t *testing.T) {
		p := newTestImage(100, 70)
		err := (&PixelateStage{Region: region, BlockSize: 0}).Process(p)
		assert.ErrorContains(t, err, "block size must be at least 1")
	})

	t.Run("degenerate rectangle is rejected", func(t *testing.T) {
		p := newTestImage(100, 70)
		before := clonePixels(p)

		degenerate := image.Rectangle{
			Min: image.Point{X: 20, Y: 10},
			Max: image.Point{X: 20, Y: 50},
		}
		err := (&PixelateStage{Region: degenerate, BlockSize: 8}).Process(p)
		assert.ErrorIs(t, err, imaging.ErrInvalidRegion)
		assert.Equal(t, before, []uint8(p.Img.Pix), "failed stage must not modify the buffer")
	})

	t.Run("out-of-bounds rectangle is rejected, not clamped", func(t *testing.T) {
		p := newTestImage(100, 70)
		err := (&PixelateStage{Region: image.Rect(50, 50, 120, 90), BlockSize: 8}).Process(p)
		assert.ErrorIs(t, err, imaging.ErrInvalidRegion)
	})
}
