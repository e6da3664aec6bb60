package vkc

import (
	"image"
	"image/png"
	"os"

	_ "image/jpeg"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// LocalImage is a decoded image held in host memory as tightly packed RGBA8, ready to be
// uploaded to an image created with vk.FormatR8g8b8a8Unorm.
type LocalImage struct {
	img *image.RGBA
}

// NewLocalImage wraps pixels of an RGBA8 image of the given size
func NewLocalImage(width, height int, pix []byte) (*LocalImage, error) {
	if width <= 0 || height <= 0 || len(pix) != width*height*4 {
		return nil, errors.Wrapf(ErrInvalidSize, "%d bytes for a %dx%d image", len(pix), width, height)
	}
	m := &image.RGBA{Pix: pix, Stride: width * 4, Rect: image.Rect(0, 0, width, height)}
	return &LocalImage{m}, nil
}

func (l *LocalImage) Bytes() []byte {
	return l.img.Pix
}

func (l *LocalImage) Width() int {
	return l.img.Rect.Dx()
}

func (l *LocalImage) Height() int {
	return l.img.Rect.Dy()
}

// LoadImageFromDisk decodes a PNG, JPEG, BMP or TIFF file and converts it to RGBA8
func LoadImageFromDisk(file string) (*LocalImage, error) {
	imageFile, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	defer imageFile.Close()

	src, _, err := image.Decode(imageFile)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", file)
	}

	b := src.Bounds()
	m := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(m, m.Bounds(), src, b.Min, draw.Src)

	return &LocalImage{m}, nil
}

// SaveRGBA writes RGBA8 pixels of the given size to file as a PNG
func SaveRGBA(file string, width, height int, pix []byte) error {
	l, err := NewLocalImage(width, height, pix)
	if err != nil {
		return err
	}
	return l.Save(file)
}

// Save writes the image to file as a PNG
func (l *LocalImage) Save(file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if err := png.Encode(f, l.img); err != nil {
		f.Close()
		return errors.Wrapf(err, "encoding %s", file)
	}
	return f.Close()
}
