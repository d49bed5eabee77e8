package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"shipseg/internal/domain/entity"
	"shipseg/internal/infrastructure/storage"
)

type fakeDataset struct {
	items       []entity.DatasetItem
	annotations map[string]string // Missing key means missing label file.
}

func (d *fakeDataset) Items(ctx context.Context) ([]entity.DatasetItem, error) {
	return d.items, nil
}

func (d *fakeDataset) ReadAnnotation(ctx context.Context, item entity.DatasetItem) (string, error) {
	text, ok := d.annotations[item.Name]
	if !ok {
		return "", &entity.NotFoundError{Path: item.AnnotationPath}
	}
	return text, nil
}

type fakeLoader struct {
	width, height int
	missing       map[string]bool
}

func (l *fakeLoader) Load(ctx context.Context, path string) (entity.Image, error) {
	if l.missing[path] {
		return entity.Image{}, &entity.NotFoundError{Path: path}
	}
	return entity.NewImage([]int{entity.Channels, l.height, l.width},
		make([]uint8, entity.Channels*l.width*l.height))
}

type recordingNotifier struct {
	mu      sync.Mutex
	reports []entity.BatchReport
}

func (n *recordingNotifier) Notify(ctx context.Context, report entity.BatchReport) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reports = append(n.reports, report)
	return nil
}

func item(name string) entity.DatasetItem {
	return entity.DatasetItem{
		Name:           name,
		ImagePath:      "images/" + name + ".png",
		AnnotationPath: "labels/" + name + ".txt",
	}
}

func TestBatchService_Run(t *testing.T) {
	dataset := &fakeDataset{
		items: []entity.DatasetItem{item("s1"), item("s2"), item("s3"), item("s4"), item("s5")},
		annotations: map[string]string{
			"s1": "0 0.5 0.5 0.2 0.4\n",
			"s2": "",
			"s3": "0 0.5 0.5\n",
			"s5": "0 0.5 0.5 0.2 0.4\n",
		},
	}
	loader := &fakeLoader{width: 100, height: 50, missing: map[string]bool{"images/s5.png": true}}
	store := storage.NewMemoryMaskStore()
	notifier := &recordingNotifier{}

	svc := NewBatchService(dataset, loader, store, NewMaskService(), notifier)
	svc.Workers = 3

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 5, report.Total)
	require.Equal(t, 2, report.Created)
	require.Equal(t, 2, report.Skipped)
	require.Equal(t, 1, report.Failed)
	require.Len(t, report.Failures, 1)
	require.Equal(t, "s3", report.Failures[0].Name)

	var perr *entity.ParseError
	require.ErrorAs(t, report.Failures[0].Err, &perr)

	m, ok := store.Get("s1")
	require.True(t, ok)
	require.Equal(t, 400, m.CountNonZero())

	m, ok = store.Get("s2")
	require.True(t, ok)
	require.Zero(t, m.CountNonZero())

	_, ok = store.Get("s4")
	require.False(t, ok)

	require.Len(t, notifier.reports, 1)
	require.Equal(t, report.Created, notifier.reports[0].Created)
}

func TestBatchService_ManyItems(t *testing.T) {
	dataset := &fakeDataset{annotations: map[string]string{}}
	for i := 0; i < 250; i++ {
		name := fmt.Sprintf("s%04d", i)
		dataset.items = append(dataset.items, item(name))
		dataset.annotations[name] = "0 0.25 0.25 0.2 0.2\n0 0.75 0.75 0.2 0.2\n"
	}
	store := storage.NewMemoryMaskStore()

	svc := NewBatchService(dataset, &fakeLoader{width: 100, height: 100}, store, NewMaskService(), nil)
	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 250, report.Created)
	require.Equal(t, 250, store.Len())

	m, ok := store.Get("s0123")
	require.True(t, ok)
	require.Equal(t, 800, m.CountNonZero())
}

func TestBatchService_Empty(t *testing.T) {
	svc := NewBatchService(&fakeDataset{}, &fakeLoader{}, storage.NewMemoryMaskStore(), NewMaskService(), nil)
	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Zero(t, report.Total)
}

func TestBatchService_Cancelled(t *testing.T) {
	dataset := &fakeDataset{
		items:       []entity.DatasetItem{item("s1"), item("s2")},
		annotations: map[string]string{"s1": "", "s2": ""},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewBatchService(dataset, &fakeLoader{width: 10, height: 10}, storage.NewMemoryMaskStore(), NewMaskService(), nil)
	report, err := svc.Run(ctx)
	require.True(t, errors.Is(err, context.Canceled))
	require.Zero(t, report.Created)
}

func TestBatchService_ProcessItemBoundsError(t *testing.T) {
	dataset := &fakeDataset{annotations: map[string]string{"s1": "0 120 25 20 10\n"}}
	svc := NewBatchService(dataset, &fakeLoader{width: 100, height: 50}, storage.NewMemoryMaskStore(), NewMaskService(), nil)

	err := svc.ProcessItem(context.Background(), item("s1"))
	var berr *entity.BoundsError
	require.ErrorAs(t, err, &berr)
}
