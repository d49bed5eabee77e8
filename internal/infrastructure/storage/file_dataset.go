package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"shipseg/internal/domain/entity"
	"shipseg/internal/domain/port"
)

const (
	ImagesDir = "images"
	LabelsDir = "labels"
	MasksDir  = "masks"

	labelExt = ".txt"
)

// FileDataset is a MASATI style dataset directory:
//
//	<root>/images/<name><ImageExt>
//	<root>/labels/<name>.txt
type FileDataset struct {
	Root     string
	ImageExt string // Extension of image files, including the dot.
}

// NewFileDataset creates a dataset rooted at root. An empty imageExt means
// ".png".
func NewFileDataset(root, imageExt string) *FileDataset {
	if imageExt == "" {
		imageExt = ".png"
	}
	if !strings.HasPrefix(imageExt, ".") {
		imageExt = "." + imageExt
	}
	return &FileDataset{Root: root, ImageExt: imageExt}
}

// Items lists every image in the images directory, sorted by name.
func (d *FileDataset) Items(ctx context.Context) ([]entity.DatasetItem, error) {
	imageDir := filepath.Join(d.Root, ImagesDir)
	entries, err := os.ReadDir(imageDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &entity.NotFoundError{Path: imageDir}
		}
		return nil, fmt.Errorf("cannot read directory %q: %w", imageDir, err)
	}

	items := make([]entity.DatasetItem, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		// Must be a regular file or a symlink and have the image extension.
		if (!e.Type().IsRegular() && e.Type()&fs.ModeSymlink == 0) ||
			!strings.EqualFold(filepath.Ext(name), d.ImageExt) {
			continue
		}

		stem := strings.TrimSuffix(name, filepath.Ext(name))
		items = append(items, entity.DatasetItem{
			Name:           stem,
			ImagePath:      filepath.Join(imageDir, name),
			AnnotationPath: filepath.Join(d.Root, LabelsDir, stem+labelExt),
		})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

// ReadAnnotation reads the label file of item.
func (d *FileDataset) ReadAnnotation(ctx context.Context, item entity.DatasetItem) (string, error) {
	if err := AssertFileExists(item.AnnotationPath); err != nil {
		return "", err
	}

	data, err := os.ReadFile(item.AnnotationPath)
	if err != nil {
		return "", fmt.Errorf("cannot read file %q: %w", item.AnnotationPath, err)
	}
	return string(data), nil
}

// AssertFileExists returns *entity.NotFoundError unless path is an existing
// regular file.
func AssertFileExists(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &entity.NotFoundError{Path: path}
		}
		return fmt.Errorf("cannot access %q: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return &entity.NotFoundError{Path: path}
	}
	return nil
}

var _ port.Dataset = (*FileDataset)(nil)
