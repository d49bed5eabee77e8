package port

import (
	"context"

	"shipseg/internal/domain/entity"
)

// MaskWriter persists generated masks.
type MaskWriter interface {
	Write(ctx context.Context, item entity.DatasetItem, mask *entity.Mask) error
}
