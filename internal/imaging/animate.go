package imaging

import (
	"bytes"
	"fmt"
	"image"
	"os"

	"github.com/kettek/apng"
)

// Animate builds a looping animated PNG from the given image files, showing
// each frame for frameDelay seconds.
func Animate(files []string, frameDelay float64) ([]byte, error) {

	a := apng.APNG{
		Frames:    make([]apng.Frame, len(files)),
		LoopCount: 0,
	}

	for i, fname := range files {
		f, err := os.Open(fname)
		if err != nil {
			return nil, err
		}

		img, _, err := image.Decode(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("%w: %s: %v", ErrDecode, fname, err)
		}

		if err := f.Close(); err != nil {
			return nil, err
		}

		a.Frames[i] = apng.Frame{
			Image:            img,
			DelayNumerator:   uint16(frameDelay * 1000),
			DelayDenominator: 1000,
		}
	}

	var buf bytes.Buffer
	if err := apng.Encode(&buf, a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	return buf.Bytes(), nil
}
