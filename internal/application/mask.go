package app

import (
	"fmt"

	"shipseg/internal/domain/entity"
)

// MaskService turns annotations into binary masks.
type MaskService struct{}

func NewMaskService() *MaskService {
	return &MaskService{}
}

// Rasterize paints every box of ann into a new width x height mask. Boxes
// may be relative or absolute. A box that does not fit the image is an
// error; nothing is clipped.
func (s *MaskService) Rasterize(width, height int, ann entity.ImageAnnotation) (*entity.Mask, error) {
	if width <= 0 || height <= 0 {
		return nil, &entity.ValidationError{Reason: fmt.Sprintf("image size %dx%d", width, height)}
	}

	mask := entity.NewMask(width, height)
	for i, box := range ann.CornerBoxes() {
		abs := box.ToAbsolute(width, height)
		if err := abs.Validate(); err != nil {
			return nil, fmt.Errorf("box %d: %w", i, err)
		}
		if abs.MinX < 0 || abs.MinY < 0 || abs.MaxX > float64(width) || abs.MaxY > float64(height) {
			return nil, &entity.BoundsError{Box: abs, Width: width, Height: height}
		}
		// A normalized box crossing the right or bottom edge is not relative
		// and keeps its fractions; painting it would silently drop it.
		if !abs.IsWhole() {
			return nil, fmt.Errorf("box %d: %w", i, &entity.ValidationError{
				Reason: fmt.Sprintf("extents of %v are not whole pixels", abs),
			})
		}

		mask.Fill(abs.Rect(), entity.Foreground)
	}

	return mask, nil
}

// CreateMask rasterizes ann at the size of img.
func (s *MaskService) CreateMask(img entity.Image, ann entity.ImageAnnotation) (*entity.Mask, error) {
	return s.Rasterize(img.Width, img.Height, ann)
}

// MaskFromText parses the annotation text of img and rasterizes it.
func (s *MaskService) MaskFromText(img entity.Image, text string) (*entity.Mask, error) {
	ann, err := entity.ParseImageAnnotation(text)
	if err != nil {
		return nil, err
	}
	return s.CreateMask(img, ann)
}
