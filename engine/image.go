package engine

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/asticode/go-astiav"
)

// ToImage returns the picture of the frame as a Go image.
func ToImage(f *astiav.Frame) (image.Image, error) {
	img, err := f.Data().GuessImageFormat()
	if err != nil {
		return nil, fmt.Errorf("unable to guess the image format: %w", err)
	}
	if err := f.Data().ToImage(img); err != nil {
		return nil, fmt.Errorf("unable to convert the frame into Go's format: %w", err)
	}
	return img, nil
}

// FromImage writes the image into the frame, converting it to the image
// type native to the pixel format of the frame if needed.
func FromImage(f *astiav.Frame, img image.Image) error {
	if err := f.MakeWritable(); err != nil {
		return fmt.Errorf("unable to make the frame writable: %w", err)
	}

	native, err := f.Data().GuessImageFormat()
	if err != nil {
		return fmt.Errorf("unable to guess the image format: %w", err)
	}
	if _, ok := native.(*image.NRGBA); ok {
		if _, ok := img.(*image.NRGBA); !ok {
			converted := image.NewNRGBA(img.Bounds())
			draw.Draw(converted, converted.Bounds(), img, img.Bounds().Min, draw.Src)
			img = converted
		}
	}

	if err := f.Data().FromImage(img); err != nil {
		return fmt.Errorf("unable to set the image to the frame: %w", err)
	}
	return nil
}
