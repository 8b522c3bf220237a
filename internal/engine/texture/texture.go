// Package texture loads images from disk into RGBA textures.
package texture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/tiff" // TIFF decoder registration
)

// Texture is decoded image data plus a version counter. The renderer keeps a
// GPU copy and re-uploads it whenever the version changes.
type Texture struct {
	Path  string
	Image *image.RGBA

	version uint64
}

// Load reads and decodes the image at path.
func Load(path string) (*Texture, error) {
	img, err := Decode(path)
	if err != nil {
		return nil, err
	}
	return &Texture{Path: path, Image: img, version: 1}, nil
}

// Decode reads an image file and converts it to RGBA.
func Decode(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading texture: %w", err)
	}
	return DecodeBytes(data, filepath.Ext(path))
}

// DecodeBytes decodes image data. TGA has no magic number and is picked by
// ext; other formats are sniffed from the content.
func DecodeBytes(data []byte, ext string) (*image.RGBA, error) {
	var (
		rgba   *image.RGBA
		format string
	)
	if strings.EqualFold(ext, ".tga") {
		img, err := DecodeTGA(data)
		if err != nil {
			return nil, fmt.Errorf("decoding TGA: %w", err)
		}
		rgba, format = img, "image/x-tga"
	} else {
		kind, _ := filetype.Image(data)
		if kind == filetype.Unknown {
			return nil, fmt.Errorf("decoding image: unrecognised %q data (%d bytes)", ext, len(data))
		}
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", kind.MIME.Value, err)
		}
		rgba, format = ImageToRGBA(img), kind.MIME.Value
	}

	if rgba.Bounds().Empty() {
		return nil, fmt.Errorf("decoding %s: empty image", format)
	}
	return rgba, nil
}

// Replace swaps in new texel data and bumps the version.
func (t *Texture) Replace(img *image.RGBA) {
	t.Image = img
	t.version++
}

// Version increases every time the texel data changes.
func (t *Texture) Version() uint64 {
	return t.version
}

// Size returns the image dimensions.
func (t *Texture) Size() (width, height int) {
	if t.Image == nil {
		return 0, 0
	}
	b := t.Image.Bounds()
	return b.Dx(), b.Dy()
}
