package entity

import (
	"errors"
	"strings"
)

// ImageAnnotation holds the boxes of one image in file order.
type ImageAnnotation struct {
	boxes []CenterBox
}

// NewImageAnnotation creates an annotation from a copy of boxes.
func NewImageAnnotation(boxes ...CenterBox) ImageAnnotation {
	return ImageAnnotation{boxes: append([]CenterBox(nil), boxes...)}
}

// ParseImageAnnotation parses records separated by line breaks.
func ParseImageAnnotation(text string) (ImageAnnotation, error) {
	return ParseImageAnnotationLines(strings.Split(text, "\n"))
}

// ParseImageAnnotationLines parses one record per line. Blank lines are
// skipped; the first malformed line aborts parsing.
func ParseImageAnnotationLines(lines []string) (ImageAnnotation, error) {
	boxes := make([]CenterBox, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		box, err := ParseCenterBox(line)
		if errors.Is(err, ErrNoBox) {
			continue
		}
		if err != nil {
			return ImageAnnotation{}, err
		}
		boxes = append(boxes, box)
	}

	return ImageAnnotation{boxes: boxes}, nil
}

// Len returns the number of boxes.
func (a ImageAnnotation) Len() int { return len(a.boxes) }

// CenterBoxes returns a copy of the stored boxes.
func (a ImageAnnotation) CenterBoxes() []CenterBox {
	return append([]CenterBox(nil), a.boxes...)
}

// CornerBoxes converts every box to corner form, in order. Not cached.
func (a ImageAnnotation) CornerBoxes() []CornerBox {
	out := make([]CornerBox, len(a.boxes))
	for i, b := range a.boxes {
		out[i] = b.ToCornerForm()
	}
	return out
}
