package container

import (
	app "shipseg/internal/application"
	"shipseg/internal/domain/port"
)

type Container struct {
	MaskService  *app.MaskService
	BatchService *app.BatchService
}

// New wires the services. notifier may be nil.
func New(dataset port.Dataset, loader port.ImageLoader, writer port.MaskWriter, notifier port.Notifier, workers int) *Container {
	maskService := app.NewMaskService()
	batchService := app.NewBatchService(dataset, loader, writer, maskService, notifier)
	batchService.Workers = workers

	return &Container{
		MaskService:  maskService,
		BatchService: batchService,
	}
}
