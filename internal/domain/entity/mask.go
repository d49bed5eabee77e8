package entity

import "image"

// Mask pixel values.
const (
	Background uint8 = 0
	Foreground uint8 = 255
)

// Mask is a single-channel 8-bit buffer, row-major.
type Mask struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewMask allocates an all-background mask.
func NewMask(width, height int) *Mask {
	return &Mask{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// At returns the value at column x, row y.
func (m *Mask) At(x, y int) uint8 {
	return m.Pix[y*m.Width+x]
}

// Fill sets every pixel of r to v. r must lie inside the mask.
func (m *Mask) Fill(r image.Rectangle, v uint8) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := m.Pix[y*m.Width+r.Min.X : y*m.Width+r.Max.X]
		for i := range row {
			row[i] = v
		}
	}
}

// CountNonZero returns the number of foreground pixels.
func (m *Mask) CountNonZero() int {
	n := 0
	for _, v := range m.Pix {
		if v != Background {
			n++
		}
	}
	return n
}

// Bytes returns the raw buffer, without any header.
func (m *Mask) Bytes() []uint8 { return m.Pix }

// Gray views the mask as an image.Gray sharing its buffer.
func (m *Mask) Gray() *image.Gray {
	return &image.Gray{
		Pix:    m.Pix,
		Stride: m.Width,
		Rect:   image.Rect(0, 0, m.Width, m.Height),
	}
}
