package entity

import (
	"fmt"
	"time"
)

// DatasetItem is one image of the dataset together with its label file.
type DatasetItem struct {
	Name           string // File stem shared by the image, label and mask.
	ImagePath      string
	AnnotationPath string
}

// ItemFailure records why a mask could not be created.
type ItemFailure struct {
	Name string
	Err  error
}

// BatchReport summarizes a mask generation run.
type BatchReport struct {
	Total    int
	Created  int
	Skipped  int // Missing image or annotation file.
	Failed   int
	Failures []ItemFailure
	Elapsed  time.Duration
}

func (r BatchReport) String() string {
	return fmt.Sprintf("%d images: %d masks created, %d skipped, %d failed in %s",
		r.Total, r.Created, r.Skipped, r.Failed, r.Elapsed.Round(time.Millisecond))
}
