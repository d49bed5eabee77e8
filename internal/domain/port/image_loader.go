package port

import (
	"context"

	"shipseg/internal/domain/entity"
)

// ImageLoader decodes image files into planar RGB images.
type ImageLoader interface {
	// Load returns *entity.NotFoundError when the file is missing and
	// *entity.FormatError when it is not a three-channel image.
	Load(ctx context.Context, path string) (entity.Image, error)
}
