// Package imaging normalizes uploaded item photos before they are stored.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	_ "image/png" // registers the PNG decoder
	"io"
	"net/http"

	"golang.org/x/image/draw"
)

const (
	// MaxDimension is the largest width or height kept after normalization.
	MaxDimension = 1024
	// MaxInputBytes caps the raw upload size accepted by Normalize.
	MaxInputBytes = 5 << 20
	// JPEGQuality is the re-encode quality.
	JPEGQuality = 85
	// ContentType of every normalized image.
	ContentType = "image/jpeg"
)

var (
	// ErrUnsupportedFormat is returned when the sniffed type is neither JPEG nor PNG.
	ErrUnsupportedFormat = errors.New("imaging: unsupported image format")
	// ErrTooLarge is returned when the input exceeds MaxInputBytes.
	ErrTooLarge = errors.New("imaging: image too large")
)

var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Image is a normalized JPEG ready for upload.
type Image struct {
	Data   []byte
	Width  int
	Height int
}

// ContentType returns the MIME type of the encoded data.
func (i *Image) ContentType() string { return ContentType }

// Normalize sniffs r's content (ignoring any client-declared type), decodes
// JPEG or PNG, flattens transparency onto white, downscales to fit within
// MaxDimension and re-encodes as JPEG.
func Normalize(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxInputBytes+1))
	if err != nil {
		return nil, fmt.Errorf("imaging: read: %w", err)
	}
	if len(data) > MaxInputBytes {
		return nil, ErrTooLarge
	}

	if detected := http.DetectContentType(data); !allowedMIME[detected] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, detected)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUnsupportedFormat, err)
	}

	dst := fit(src, MaxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("imaging: encode: %w", err)
	}
	b := dst.Bounds()
	return &Image{Data: buf.Bytes(), Width: b.Dx(), Height: b.Dy()}, nil
}

// fit draws src onto a white canvas no larger than maxDim on either side,
// preserving aspect ratio. Catmull-Rom is used when scaling down.
func fit(src image.Image, maxDim int) *image.RGBA {
	sb := src.Bounds()
	w, h := sb.Dx(), sb.Dy()
	if w > maxDim || h > maxDim {
		if w >= h {
			h = max(1, h*maxDim/w)
			w = maxDim
		} else {
			w = max(1, w*maxDim/h)
			h = maxDim
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	if w == sb.Dx() && h == sb.Dy() {
		draw.Draw(dst, dst.Bounds(), src, sb.Min, draw.Over)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, sb, draw.Over, nil)
	return dst
}
