package entity

// Channels is the number of color channels an input image must have.
const Channels = 3

// Image is a decoded RGB image in channel-first (planar) order.
type Image struct {
	Width  int
	Height int
	Pix    []uint8 // Channels*Height*Width bytes, plane by plane.
}

// NewImage validates a pixel buffer of shape dims and returns it as a
// planar image. Channel-last buffers (H, W, 3) are transposed; channel-first
// buffers (3, H, W) are copied. The result never aliases pix.
func NewImage(dims []int, pix []uint8) (Image, error) {
	if len(dims) > 3 {
		return Image{}, &FormatError{Dims: dims, Reason: "more than three dimensions"}
	}
	if len(dims) < 3 {
		return Image{}, &FormatError{Dims: dims, Reason: "fewer than three dimensions"}
	}

	size := 1
	for _, d := range dims {
		if d <= 0 {
			return Image{}, &FormatError{Dims: dims, Reason: "empty dimension"}
		}
		size *= d
	}
	if size != len(pix) {
		return Image{}, &FormatError{Dims: dims, Reason: "buffer length does not match shape"}
	}

	// Channel-last wins when both the first and last axes are 3.
	switch {
	case dims[2] == Channels:
		h, w := dims[0], dims[1]
		planar := make([]uint8, len(pix))
		plane := h * w
		for i := 0; i < plane; i++ {
			for c := 0; c < Channels; c++ {
				planar[c*plane+i] = pix[i*Channels+c]
			}
		}
		return Image{Width: w, Height: h, Pix: planar}, nil

	case dims[0] == Channels:
		return Image{Width: dims[2], Height: dims[1], Pix: append([]uint8(nil), pix...)}, nil
	}

	return Image{}, &FormatError{Dims: dims, Reason: "expected exactly three color channels"}
}

// Plane returns channel c of the image.
func (img Image) Plane(c int) []uint8 {
	plane := img.Width * img.Height
	return img.Pix[c*plane : (c+1)*plane]
}
