// Package imageio loads halftone source images from disk, in the background
// or through a native file dialog.
package imageio

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/ncruces/zenity"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrNoImage is returned when no file was chosen.
var ErrNoImage = errors.New("no image selected")

// Patterns are the file types offered by the dialog.
var Patterns = []string{"*.png", "*.jpg", "*.jpeg", "*.gif", "*.webp", "*.bmp"}

// Load decodes the image at path.
func Load(path string) (image.Image, error) {
	if path == "" {
		return nil, ErrNoImage
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open image")
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	if img.Bounds().Empty() {
		return nil, errors.Errorf("%s: empty %s image", path, format)
	}
	return img, nil
}

// Select asks the user for an image file. A cancelled dialog yields
// ErrNoImage.
func Select() (string, error) {
	path, err := zenity.SelectFile(
		zenity.Title("Open Halftone Source"),
		zenity.FileFilters{{
			Name:     "Images",
			Patterns: Patterns,
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", ErrNoImage
		}
		return "", errors.Wrap(err, "file dialog")
	}
	return path, nil
}
