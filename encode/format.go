package encode

import (
	"image"
	"io"
	"path"
)

var Formats = map[string]Format{
	"gif": GIFFormat{},
	"jpg": JPGFormat{},
	"png": PNGFormat{},
}

func DetectFormat(filename string) (Format, bool) {
	ext := path.Ext(filename)
	if len(ext) == 0 {
		return nil, false
	}
	for _, f := range Formats {
		for _, e := range f.Extensions() {
			if e == ext[1:] {
				return f, true
			}
		}
	}
	return nil, false
}

type Format interface {
	// Extensions returns all file extensions excluding '.' that this format is
	// commonly encoded into.
	Extensions() []string

	// Encode encodes a single image to the specfied io.Writer.
	Encode(w io.Writer, img image.Image) error
}
