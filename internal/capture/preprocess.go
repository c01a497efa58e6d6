package capture

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // registered so PNG uploads decode

	xdraw "golang.org/x/image/draw"

	"github.com/julianstephens/intake/internal/constants"
)

// Preprocess bounds an acquired image for transmission using the
// application defaults. It must run before every analysis call regardless
// of where the image came from.
func Preprocess(raw []byte) ([]byte, error) {
	return Resize(raw, constants.MaxImageDimension, constants.JPEGQuality)
}

// Resize decodes an encoded image, scales its longer edge down to maxDim
// preserving aspect ratio (never upscaling), and re-encodes it as JPEG at
// the given quality. The aggressive downscale trades estimate precision
// for a much faster analysis round trip.
func Resize(raw []byte, maxDim, quality int) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("image has empty bounds %dx%d", w, h)
	}

	tw, th := scaled(w, h, maxDim)
	out := src
	if tw != w || th != h {
		dst := image.NewRGBA(image.Rect(0, 0, tw, th))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
		out = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// scaled returns target dimensions with the longer edge capped at maxDim.
func scaled(w, h, maxDim int) (int, int) {
	longer := w
	if h > w {
		longer = h
	}
	if longer <= maxDim {
		return w, h
	}
	if w >= h {
		return maxDim, int(float64(h) * float64(maxDim) / float64(w))
	}
	return int(float64(w) * float64(maxDim) / float64(h)), maxDim
}
