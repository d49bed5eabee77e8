package storage

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/tiff"

	"shipseg/internal/domain/entity"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func testMask() *entity.Mask {
	m := entity.NewMask(5, 4)
	m.Fill(image.Rect(1, 1, 3, 4), entity.Foreground)
	return m
}

func TestFileDataset_Items(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ImagesDir, "b0002.png"), "x")
	writeFile(t, filepath.Join(root, ImagesDir, "a0001.png"), "x")
	writeFile(t, filepath.Join(root, ImagesDir, "notes.txt"), "x")
	require.NoError(t, os.MkdirAll(filepath.Join(root, ImagesDir, "sub.png"), 0o755))

	items, err := NewFileDataset(root, "").Items(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "a0001", items[0].Name)
	require.Equal(t, filepath.Join(root, ImagesDir, "a0001.png"), items[0].ImagePath)
	require.Equal(t, filepath.Join(root, LabelsDir, "a0001.txt"), items[0].AnnotationPath)
	require.Equal(t, "b0002", items[1].Name)
}

func TestFileDataset_ItemsMissingDir(t *testing.T) {
	_, err := NewFileDataset(t.TempDir(), "png").Items(context.Background())
	var nf *entity.NotFoundError
	require.ErrorAs(t, err, &nf)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileDataset_ReadAnnotation(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, LabelsDir, "s1.txt"), "0 0.5 0.5 0.2 0.4\n")
	d := NewFileDataset(root, ".png")

	text, err := d.ReadAnnotation(context.Background(), entity.DatasetItem{
		Name:           "s1",
		AnnotationPath: filepath.Join(root, LabelsDir, "s1.txt"),
	})
	require.NoError(t, err)
	require.Equal(t, "0 0.5 0.5 0.2 0.4\n", text)

	_, err = d.ReadAnnotation(context.Background(), entity.DatasetItem{
		Name:           "s2",
		AnnotationPath: filepath.Join(root, LabelsDir, "s2.txt"),
	})
	var nf *entity.NotFoundError
	require.ErrorAs(t, err, &nf)
	require.Equal(t, filepath.Join(root, LabelsDir, "s2.txt"), nf.Path)

	// A directory is not an annotation file.
	_, err = d.ReadAnnotation(context.Background(), entity.DatasetItem{AnnotationPath: root})
	require.ErrorAs(t, err, &nf)
}

func TestParseMaskFormat(t *testing.T) {
	cases := map[string]MaskFormat{
		"":     FormatBinary,
		"bin":  FormatBinary,
		"TIFF": FormatTIFF,
		"tif":  FormatTIFF,
		"png":  FormatPNG,
	}
	for in, want := range cases {
		got, err := ParseMaskFormat(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got)
	}

	_, err := ParseMaskFormat("jpeg")
	require.Error(t, err)
}

func TestFileMaskWriter_Binary(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "masks")
	w, err := NewFileMaskWriter(dir, FormatBinary)
	require.NoError(t, err)

	mask := testMask()
	item := entity.DatasetItem{Name: "s1"}
	require.NoError(t, w.Write(context.Background(), item, mask))

	data, err := os.ReadFile(filepath.Join(dir, "s1.bin"))
	require.NoError(t, err)
	require.Equal(t, mask.Pix, data)
	require.Len(t, data, 20)
}

func TestFileMaskWriter_TIFF(t *testing.T) {
	w, err := NewFileMaskWriter(t.TempDir(), FormatTIFF)
	require.NoError(t, err)

	mask := testMask()
	item := entity.DatasetItem{Name: "s1"}
	require.NoError(t, w.Write(context.Background(), item, mask))

	f, err := os.Open(w.Path(item))
	require.NoError(t, err)
	defer f.Close()

	img, err := tiff.Decode(f)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 5, 4), img.Bounds())
	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			r, _, _, _ := img.At(x, y).RGBA()
			require.Equal(t, uint32(mask.At(x, y))*0x101, r, "x=%d y=%d", x, y)
		}
	}
}

func TestEncodeMask_PNG(t *testing.T) {
	mask := testMask()
	var buf bytes.Buffer
	require.NoError(t, EncodeMask(&buf, mask, FormatPNG))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	gray, ok := img.(*image.Gray)
	require.True(t, ok)
	require.Equal(t, mask.Pix, gray.Pix)
}

func TestMemoryMaskStore(t *testing.T) {
	store := NewMemoryMaskStore()
	mask := testMask()
	require.NoError(t, store.Write(context.Background(), entity.DatasetItem{Name: "a"}, mask))

	mask.Pix[0] = entity.Foreground
	got, ok := store.Get("a")
	require.True(t, ok)
	require.Equal(t, entity.Background, got.Pix[0])
	require.Equal(t, 1, store.Len())

	_, ok = store.Get("b")
	require.False(t, ok)
}
