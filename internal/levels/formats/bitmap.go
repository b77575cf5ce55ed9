package formats

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/bmp"
)

// BitmapExtensions returns the supported room bitmap extensions.
func BitmapExtensions() []string {
	return []string{".png", ".bmp"}
}

// DecodeBitmap decodes a room bitmap. ext selects the codec and is
// matched case-insensitively.
func DecodeBitmap(r io.Reader, ext string) (image.Image, error) {
	switch strings.ToLower(ext) {
	case ".png":
		return png.Decode(r)
	case ".bmp":
		return bmp.Decode(r)
	default:
		return nil, fmt.Errorf("unsupported bitmap extension: %s", ext)
	}
}
