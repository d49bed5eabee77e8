package entity

import (
	"errors"
	"fmt"
	"os"
)

// ErrNoBox is returned for a blank annotation record ("no detections").
var ErrNoBox = errors.New("no box in annotation record")

// ParseError describes an annotation line that is not a valid record.
type ParseError struct {
	Line string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed annotation line %q: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// FormatError describes a pixel buffer with an unsupported shape.
type FormatError struct {
	Dims   []int
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unsupported image format %v: %s", e.Dims, e.Reason)
}

// NotFoundError is returned when an image or annotation file is missing.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not find the file: %q", e.Path)
}

// Is lets errors.Is(err, os.ErrNotExist) match.
func (e *NotFoundError) Is(target error) bool {
	return target == os.ErrNotExist
}

// BoundsError describes an absolute box that does not fit in the image.
type BoundsError struct {
	Box    CornerBox
	Width  int
	Height int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("box %v exceeds image extent %dx%d", e.Box, e.Width, e.Height)
}

// ValidationError describes geometry that can never be rasterized.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid geometry: " + e.Reason
}
