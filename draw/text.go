package draw

import (
	"fmt"
	"image"
	"image/color"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Text draws s using face, with pt as the top-left corner of the text. It returns the point
// where text following s would start.
func Text(dst Image, pt image.Point, s string, face font.Face, c color.Color) image.Point {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(pt.X, pt.Y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
	return image.Pt(d.Dot.X.Ceil(), pt.Y)
}

// TextWidth is the width of s in pixels when drawn with face.
func TextWidth(s string, face font.Face) int {
	return font.MeasureString(face, s).Ceil()
}

// TrueType parses a TrueType font and returns a face at size points. Glyph coverage is
// thresholded by the target color model, so small sizes with full hinting work best.
func TrueType(data []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("draw: invalid TrueType font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}
