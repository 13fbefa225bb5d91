package encode

import (
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
)

type PNGFormat struct{}

func (f PNGFormat) Extensions() []string {
	return []string{"png"}
}

func (f PNGFormat) Encode(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

type JPGFormat struct{}

func (f JPGFormat) Extensions() []string {
	return []string{"jpg", "jpeg"}
}

func (f JPGFormat) Encode(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, img, nil)
}

type GIFFormat struct{}

func (f GIFFormat) Extensions() []string {
	return []string{"gif"}
}

func (f GIFFormat) Encode(w io.Writer, img image.Image) error {
	frame := image.NewPaletted(img.Bounds(), palette.Plan9)
	draw.Draw(frame, img.Bounds(), img, image.Point{X: 0, Y: 0}, draw.Over)
	return gif.Encode(w, frame, nil)
}
