package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"
)

var (
	// ErrInvalidRegion indicates a degenerate or out-of-bounds redaction region.
	ErrInvalidRegion = errors.New("invalid region")
	// ErrDecode indicates the input could not be parsed as a supported image format.
	ErrDecode = errors.New("decode error")
	// ErrEncode indicates the output image could not be written.
	ErrEncode = errors.New("encode error")
)

// Image is a decoded image held in an NRGBA buffer so that pipeline stages
// can mutate pixels in place. The buffer is owned exclusively by the caller
// for the duration of one run.
type Image struct {
	Img    *image.NRGBA
	Bounds image.Rectangle
	Format string
}

type PipelineStage interface {
	Process(img *Image) error
}

func NewFromReader(r io.Reader) (*Image, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	bounds := src.Bounds()
	img := image.NewNRGBA(bounds)
	draw.Draw(img, bounds, src, bounds.Min, draw.Src)
	return &Image{
		Img:    img,
		Bounds: bounds,
		Format: format,
	}, nil
}

// FormatForPath maps a filename extension to an encoder format name,
// returning fallback when the extension is not recognised.
func FormatForPath(path, fallback string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".png":
		return "png"
	default:
		return fallback
	}
}

// Write encodes the image in the given format. Quality is on the usual
// 0-100 scale and applies to JPEG output only; PNG is lossless.
func (p *Image) Write(w io.Writer, format string, quality int) error {
	var err error
	switch format {
	case "jpeg":
		err = jpeg.Encode(w, p.Img, &jpeg.Options{Quality: quality})
	case "png":
		err = png.Encode(w, p.Img)
	default:
		return fmt.Errorf("%w: unsupported format %q", ErrEncode, format)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return nil
}

func (p *Image) Pipeline(stages ...PipelineStage) error {
	for _, stage := range stages {
		if err := stage.Process(p); err != nil {
			return err
		}
	}
	return nil
}
