//go:build gocv
// +build gocv

package vision

import (
	"context"
	"fmt"

	"gocv.io/x/gocv"

	"shipseg/internal/domain/entity"
	"shipseg/internal/infrastructure/storage"
)

// Loader decodes images with OpenCV.
type Loader struct{}

// NewLoader creates an image loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the image at path unchanged and converts it to planar RGB.
func (l *Loader) Load(ctx context.Context, path string) (entity.Image, error) {
	if err := ctx.Err(); err != nil {
		return entity.Image{}, err
	}
	if err := storage.AssertFileExists(path); err != nil {
		return entity.Image{}, err
	}

	mat := gocv.IMRead(path, gocv.IMReadUnchanged)
	defer mat.Close()
	if mat.Empty() {
		return entity.Image{}, fmt.Errorf("decode %q: failed to decode image", path)
	}

	dims := []int{mat.Rows(), mat.Cols(), mat.Channels()}

	// OpenCV keeps BGR(A); drop alpha and swap to RGB.
	rgb := gocv.NewMat()
	defer rgb.Close()
	switch mat.Channels() {
	case 3:
		gocv.CvtColor(mat, &rgb, gocv.ColorBGRToRGB)
	case 4:
		gocv.CvtColor(mat, &rgb, gocv.ColorBGRAToRGB)
	default:
		return entity.Image{}, &entity.FormatError{Dims: dims, Reason: "expected exactly three color channels"}
	}

	if rgb.Type() != gocv.MatTypeCV8UC3 {
		u8 := gocv.NewMat()
		defer u8.Close()
		rgb.ConvertTo(&u8, gocv.MatTypeCV8UC3)
		return entity.NewImage([]int{u8.Rows(), u8.Cols(), entity.Channels}, u8.ToBytes())
	}

	return entity.NewImage([]int{rgb.Rows(), rgb.Cols(), entity.Channels}, rgb.ToBytes())
}
