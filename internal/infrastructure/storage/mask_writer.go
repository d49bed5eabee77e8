package storage

import (
	"context"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"

	"shipseg/internal/domain/entity"
	"shipseg/internal/domain/port"
)

// MaskFormat selects how masks are encoded on disk.
type MaskFormat string

const (
	FormatBinary MaskFormat = "bin"  // Raw H*W bytes, no header.
	FormatTIFF   MaskFormat = "tiff" // 8-bit grayscale TIFF, deflate compressed.
	FormatPNG    MaskFormat = "png"  // 8-bit grayscale PNG.
)

// ParseMaskFormat validates a format name. Empty means FormatBinary.
func ParseMaskFormat(s string) (MaskFormat, error) {
	switch strings.ToLower(s) {
	case "", "bin", "raw":
		return FormatBinary, nil
	case "tiff", "tif":
		return FormatTIFF, nil
	case "png":
		return FormatPNG, nil
	}
	return "", fmt.Errorf("unsupported mask format %q", s)
}

// Ext returns the file extension used for the format.
func (f MaskFormat) Ext() string {
	switch f {
	case FormatTIFF:
		return ".tif"
	case FormatPNG:
		return ".png"
	}
	return ".bin"
}

// FileMaskWriter writes one mask file per item into Dir.
type FileMaskWriter struct {
	Dir    string
	Format MaskFormat
}

// NewFileMaskWriter creates dir if needed.
func NewFileMaskWriter(dir string, format MaskFormat) (*FileMaskWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create mask directory: %w", err)
	}
	return &FileMaskWriter{Dir: dir, Format: format}, nil
}

// Path returns the mask file path of item.
func (w *FileMaskWriter) Path(item entity.DatasetItem) string {
	return filepath.Join(w.Dir, item.Name+w.Format.Ext())
}

// Write encodes mask to the item's mask file.
func (w *FileMaskWriter) Write(ctx context.Context, item entity.DatasetItem, mask *entity.Mask) (err error) {
	f, err := os.Create(w.Path(item))
	if err != nil {
		return err
	}
	defer closeWithErrCheck(f, &err)

	return EncodeMask(f, mask, w.Format)
}

// EncodeMask writes mask to out in the given format.
func EncodeMask(out io.Writer, mask *entity.Mask, format MaskFormat) error {
	switch format {
	case FormatTIFF:
		return tiff.Encode(out, mask.Gray(), &tiff.Options{Compression: tiff.Deflate})
	case FormatPNG:
		return png.Encode(out, mask.Gray())
	case FormatBinary, "":
		_, err := out.Write(mask.Bytes())
		return err
	}
	return fmt.Errorf("unsupported mask format %q", format)
}

// closeWithErrCheck calls c.Close(). If it returns an error, and (*e == nil), e is set to that
// error.
func closeWithErrCheck(c io.Closer, e *error) {
	err := c.Close()
	if err != nil && *e == nil {
		*e = err
	}
}

var _ port.MaskWriter = (*FileMaskWriter)(nil)
