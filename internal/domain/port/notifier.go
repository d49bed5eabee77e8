package port

import (
	"context"

	"shipseg/internal/domain/entity"
)

// Notifier reports the outcome of a batch run.
type Notifier interface {
	Notify(ctx context.Context, report entity.BatchReport) error
}
