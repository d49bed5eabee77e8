package entity

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"
)

// Box is the capability shared by both box forms. T is the concrete box
// type, so conversions keep their shape.
type Box[T any] interface {
	Class() int
	IsRelative() bool
	IsAbsolute() bool
	ToRelative(imgWidth, imgHeight int) T
	ToAbsolute(imgWidth, imgHeight int) T
}

var (
	_ Box[CornerBox] = CornerBox{}
	_ Box[CenterBox] = CenterBox{}
)

// inUnit reports whether every value lies in [0, 1]. A box whose
// coordinates are all 0 or 1 passes, even if it was meant in pixels.
func inUnit(values ...float64) bool {
	for _, v := range values {
		if v < 0 || v > 1 {
			return false
		}
	}
	return true
}

// finite reports whether no value is NaN or infinite.
func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// scale multiplies v by size and truncates toward zero.
func scale(v float64, size int) float64 {
	return math.Trunc(float64(v * float64(size)))
}

// CornerBox is a box given by its extents on each axis.
type CornerBox struct {
	ClassID int
	MinX    float64
	MaxX    float64
	MinY    float64
	MaxY    float64
}

func (b CornerBox) Class() int { return b.ClassID }

// IsRelative reports whether all four extents lie in [0, 1].
func (b CornerBox) IsRelative() bool {
	return inUnit(b.MinX, b.MaxX, b.MinY, b.MaxY)
}

func (b CornerBox) IsAbsolute() bool { return !b.IsRelative() }

// ToAbsolute returns the box in pixel units. An absolute box is returned
// unchanged.
func (b CornerBox) ToAbsolute(imgWidth, imgHeight int) CornerBox {
	if b.IsAbsolute() {
		return b
	}
	return CornerBox{
		ClassID: b.ClassID,
		MinX:    scale(b.MinX, imgWidth),
		MaxX:    scale(b.MaxX, imgWidth),
		MinY:    scale(b.MinY, imgHeight),
		MaxY:    scale(b.MaxY, imgHeight),
	}
}

// ToRelative returns the box normalized by the image size. A relative box
// is returned unchanged.
func (b CornerBox) ToRelative(imgWidth, imgHeight int) CornerBox {
	if b.IsRelative() {
		return b
	}
	w, h := float64(imgWidth), float64(imgHeight)
	return CornerBox{
		ClassID: b.ClassID,
		MinX:    b.MinX / w,
		MaxX:    b.MaxX / w,
		MinY:    b.MinY / h,
		MaxY:    b.MaxY / h,
	}
}

// ToCenterForm converts the box to center form. Scale is not checked.
func (b CornerBox) ToCenterForm() CenterBox {
	return CenterBox{
		ClassID: b.ClassID,
		CenterX: (b.MinX + b.MaxX) / 2,
		CenterY: (b.MinY + b.MaxY) / 2,
		Width:   b.MaxX - b.MinX,
		Height:  b.MaxY - b.MinY,
	}
}

// Validate checks that the extents are finite and ordered.
func (b CornerBox) Validate() error {
	if !finite(b.MinX, b.MaxX, b.MinY, b.MaxY) {
		return &ValidationError{Reason: fmt.Sprintf("non-finite extents %v", b)}
	}
	if b.MinX > b.MaxX {
		return &ValidationError{Reason: fmt.Sprintf("min_x %g > max_x %g", b.MinX, b.MaxX)}
	}
	if b.MinY > b.MaxY {
		return &ValidationError{Reason: fmt.Sprintf("min_y %g > max_y %g", b.MinY, b.MaxY)}
	}
	return nil
}

// Rect returns the half-open pixel rectangle of an absolute box.
func (b CornerBox) Rect() image.Rectangle {
	return image.Rectangle{
		Min: image.Pt(int(b.MinX), int(b.MinY)),
		Max: image.Pt(int(b.MaxX), int(b.MaxY)),
	}
}

// IsWhole reports whether every extent is an integer pixel coordinate.
func (b CornerBox) IsWhole() bool {
	for _, v := range []float64{b.MinX, b.MaxX, b.MinY, b.MaxY} {
		if math.Trunc(v) != v {
			return false
		}
	}
	return true
}

func (b CornerBox) String() string {
	return fmt.Sprintf("{class=%d x=[%g,%g] y=[%g,%g]}", b.ClassID, b.MinX, b.MaxX, b.MinY, b.MaxY)
}

// CenterBox is a box given by its center and size, as in YOLO labels.
type CenterBox struct {
	ClassID int
	CenterX float64
	CenterY float64
	Width   float64
	Height  float64
}

func (b CenterBox) Class() int { return b.ClassID }

// IsRelative reports whether the center and size all lie in [0, 1].
func (b CenterBox) IsRelative() bool {
	return inUnit(b.CenterX, b.CenterY, b.Width, b.Height)
}

func (b CenterBox) IsAbsolute() bool { return !b.IsRelative() }

// ToAbsolute returns the box in pixel units. An absolute box is returned
// unchanged.
func (b CenterBox) ToAbsolute(imgWidth, imgHeight int) CenterBox {
	if b.IsAbsolute() {
		return b
	}
	return CenterBox{
		ClassID: b.ClassID,
		CenterX: scale(b.CenterX, imgWidth),
		CenterY: scale(b.CenterY, imgHeight),
		Width:   scale(b.Width, imgWidth),
		Height:  scale(b.Height, imgHeight),
	}
}

// ToRelative returns the box normalized by the image size. A relative box
// is returned unchanged.
func (b CenterBox) ToRelative(imgWidth, imgHeight int) CenterBox {
	if b.IsRelative() {
		return b
	}
	w, h := float64(imgWidth), float64(imgHeight)
	return CenterBox{
		ClassID: b.ClassID,
		CenterX: b.CenterX / w,
		CenterY: b.CenterY / h,
		Width:   b.Width / w,
		Height:  b.Height / h,
	}
}

// ToCornerForm converts the box to corner form. Scale is not checked.
func (b CenterBox) ToCornerForm() CornerBox {
	return CornerBox{
		ClassID: b.ClassID,
		MinX:    b.CenterX - b.Width/2,
		MaxX:    b.CenterX + b.Width/2,
		MinY:    b.CenterY - b.Height/2,
		MaxY:    b.CenterY + b.Height/2,
	}
}

// Validate checks that the fields are finite and the size is not negative.
func (b CenterBox) Validate() error {
	if !finite(b.CenterX, b.CenterY, b.Width, b.Height) {
		return &ValidationError{Reason: fmt.Sprintf("non-finite fields [%s]", b.String())}
	}
	if b.Width < 0 || b.Height < 0 {
		return &ValidationError{Reason: fmt.Sprintf("negative size %gx%g", b.Width, b.Height)}
	}
	return nil
}

// String renders the box as an annotation record.
func (b CenterBox) String() string {
	return fmt.Sprintf("%d %g %g %g %g", b.ClassID, b.CenterX, b.CenterY, b.Width, b.Height)
}

// ParseCenterBox parses a "class_id cx cy w h" record. A blank line yields
// ErrNoBox.
func ParseCenterBox(line string) (CenterBox, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return CenterBox{}, ErrNoBox
	}
	if len(tokens) != 5 {
		return CenterBox{}, &ParseError{
			Line: line,
			Err:  fmt.Errorf("expected 5 fields, got %d", len(tokens)),
		}
	}

	classID, err := strconv.Atoi(tokens[0])
	if err != nil {
		return CenterBox{}, &ParseError{Line: line, Err: err}
	}

	var values [4]float64
	for i := range values {
		values[i], err = strconv.ParseFloat(tokens[i+1], 64)
		if err != nil {
			return CenterBox{}, &ParseError{Line: line, Err: err}
		}
		if !finite(values[i]) {
			return CenterBox{}, &ParseError{
				Line: line,
				Err:  fmt.Errorf("field %d is not a finite number: %q", i+1, tokens[i+1]),
			}
		}
	}

	return CenterBox{
		ClassID: classID,
		CenterX: values[0],
		CenterY: values[1],
		Width:   values[2],
		Height:  values[3],
	}, nil
}
