package libio

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DecodeImage reads an image file into RGBA with row 0 at the bottom, the
// layout GL expects for texture uploads.
func DecodeImage(p string) (*image.RGBA, error) {
	file, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	if fi, err := file.Stat(); err != nil {
		return nil, err
	} else if fi.IsDir() {
		return nil, fmt.Errorf("%v is a directory: %w", p, os.ErrNotExist)
	}

	raw, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %v: %w", p, err)
	}
	if raw.Bounds().Empty() {
		return nil, fmt.Errorf("decode %v: empty %v image", p, format)
	}

	bounds := raw.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), raw, bounds.Min, draw.Src)
	FlipV(rgba)
	return rgba, nil
}

// FlipV mirrors img vertically in place.
func FlipV(img *image.RGBA) {
	h := img.Rect.Dy()
	row := make([]byte, img.Stride)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bottom := img.Pix[(h-1-y)*img.Stride : (h-y)*img.Stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
}
