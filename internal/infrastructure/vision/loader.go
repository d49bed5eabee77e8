//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"fmt"
	"image/color"

	"github.com/disintegration/imaging"

	"shipseg/internal/domain/entity"
	"shipseg/internal/infrastructure/storage"
)

// Loader decodes images with the pure Go decoders registered by imaging
// (PNG, JPEG, GIF, TIFF, BMP). Build with -tags gocv to use OpenCV instead.
type Loader struct{}

// NewLoader creates an image loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load decodes the image at path into planar RGB. Alpha is dropped.
// Single-channel images are a FormatError, as under OpenCV.
func (l *Loader) Load(ctx context.Context, path string) (entity.Image, error) {
	if err := ctx.Err(); err != nil {
		return entity.Image{}, err
	}
	if err := storage.AssertFileExists(path); err != nil {
		return entity.Image{}, err
	}

	src, err := imaging.Open(path)
	if err != nil {
		return entity.Image{}, fmt.Errorf("decode %q: %w", path, err)
	}

	switch src.ColorModel() {
	case color.GrayModel, color.Gray16Model, color.AlphaModel, color.Alpha16Model:
		b := src.Bounds()
		return entity.Image{}, &entity.FormatError{
			Dims:   []int{b.Dy(), b.Dx(), 1},
			Reason: "expected exactly three color channels",
		}
	}

	// Clone normalizes any color model to 8-bit NRGBA with a tight stride.
	nrgba := imaging.Clone(src)
	w, h := nrgba.Rect.Dx(), nrgba.Rect.Dy()

	rgb := make([]uint8, 0, w*h*entity.Channels)
	for i := 0; i < len(nrgba.Pix); i += 4 {
		rgb = append(rgb, nrgba.Pix[i], nrgba.Pix[i+1], nrgba.Pix[i+2])
	}

	return entity.NewImage([]int{h, w, entity.Channels}, rgb)
}
