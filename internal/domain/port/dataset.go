package port

import (
	"context"

	"shipseg/internal/domain/entity"
)

// Dataset lists the images of a dataset and reads their annotations.
type Dataset interface {
	// Items returns every image of the dataset.
	Items(ctx context.Context) ([]entity.DatasetItem, error)

	// ReadAnnotation returns the raw annotation text of an item
	ReadAnnotation(ctx context.Context, item entity.DatasetItem) (string, error)
}
