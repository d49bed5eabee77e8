package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"sync"
	"time"

	"shipseg/internal/domain/entity"
	"shipseg/internal/domain/port"
)

// BatchService creates the masks of a whole dataset.
type BatchService struct {
	dataset  port.Dataset
	loader   port.ImageLoader
	writer   port.MaskWriter
	masks    *MaskService
	notifier port.Notifier

	Workers       int // Concurrent images; <= 0 means runtime.NumCPU().
	ProgressEvery int // Log progress every n items; <= 0 disables it.
}

// NewBatchService creates a batch driver. notifier may be nil.
func NewBatchService(dataset port.Dataset, loader port.ImageLoader, writer port.MaskWriter,
	masks *MaskService, notifier port.Notifier) *BatchService {
	return &BatchService{
		dataset:       dataset,
		loader:        loader,
		writer:        writer,
		masks:         masks,
		notifier:      notifier,
		ProgressEvery: 100,
	}
}

type itemResult struct {
	item entity.DatasetItem
	err  error
}

// Run processes every item of the dataset. Items with missing files are
// skipped, other failures are recorded; neither stops the run. A cancelled
// context stops the run and returns the partial report with ctx.Err().
func (s *BatchService) Run(ctx context.Context) (entity.BatchReport, error) {
	start := time.Now()

	items, err := s.dataset.Items(ctx)
	if err != nil {
		return entity.BatchReport{}, fmt.Errorf("list dataset: %w", err)
	}
	log.Printf("Creating masks for %d images", len(items))

	numWorkers := s.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if len(items) < numWorkers {
		numWorkers = len(items)
	}

	workQueue := make(chan entity.DatasetItem, 2*numWorkers)
	results := make(chan itemResult, 2*numWorkers)

	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func() {
			defer wg.Done()
			for item := range workQueue {
				results <- itemResult{item: item, err: s.ProcessItem(ctx, item)}
			}
		}()
	}

	// Collect results in a single goroutine so the report needs no lock.
	report := entity.BatchReport{Total: len(items)}
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		done := 0
		for r := range results {
			s.record(&report, r)
			done++
			if s.ProgressEvery > 0 && done%s.ProgressEvery == 0 {
				log.Printf("Processed %d/%d images", done, len(items))
			}
		}
	}()

	// Feed the work queue until done or cancelled.
	var runErr error
feed:
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
			break feed
		case workQueue <- item:
		}
	}
	close(workQueue)

	wg.Wait()
	close(results)
	<-collected

	report.Elapsed = time.Since(start)
	log.Printf("Mask generation finished: %s", report)

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, report); err != nil {
			log.Printf("Failed to send batch report: %v", err)
		}
	}

	return report, runErr
}

func (s *BatchService) record(report *entity.BatchReport, r itemResult) {
	var notFound *entity.NotFoundError
	switch {
	case r.err == nil:
		report.Created++
	case errors.As(r.err, &notFound):
		report.Skipped++
		log.Printf("Could not create the mask for %q due to missing files: %v", r.item.Name, r.err)
	default:
		report.Failed++
		report.Failures = append(report.Failures, entity.ItemFailure{Name: r.item.Name, Err: r.err})
		log.Printf("Could not create the mask for %q: %v", r.item.Name, r.err)
	}
}

// ProcessItem creates and writes the mask of a single item.
func (s *BatchService) ProcessItem(ctx context.Context, item entity.DatasetItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	text, err := s.dataset.ReadAnnotation(ctx, item)
	if err != nil {
		return err
	}

	img, err := s.loader.Load(ctx, item.ImagePath)
	if err != nil {
		return err
	}

	mask, err := s.masks.MaskFromText(img, text)
	if err != nil {
		return err
	}

	if err := s.writer.Write(ctx, item, mask); err != nil {
		return fmt.Errorf("write mask: %w", err)
	}
	return nil
}
