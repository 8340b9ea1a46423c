package pixel

import (
	"fmt"
	"image"
	"image/color"
	"slices"

	"github.com/BeatGlow/flipdot/draw"
)

type Image interface {
	draw.Image

	// Clear the image.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// Buffer holds the pixel values of an image.
type Buffer struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between horizontally adjacent pixels.
	Stride int
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Buffer) Clear() {
	for i := range p.Pix {
		p.Pix[i] = 0x00
	}
}

// Bytes returns a copy of the pixel data.
func (p *Buffer) Bytes() []byte {
	return slices.Clone(p.Pix)
}

func makeBuffer(w, h, stride, size int) Buffer {
	return Buffer{
		Rect:   image.Rect(0, 0, w, h),
		Pix:    make([]byte, size),
		Stride: stride,
	}
}

// MonoColumnImage is a 1-bit per pixel monochrome image stored column by column.
//
// Every column occupies Stride bytes. Bit 0 of the first byte of a column is the top pixel,
// bit 7 of the last byte the bottom one. Unused bits in the last byte of a column are
// always zero. This is the page memory layout of flip-dot sign controllers.
type MonoColumnImage struct {
	Buffer
}

// NewMonoColumnImage returns an image of w×h pixels, all Off. It panics if either dimension
// is not positive.
func NewMonoColumnImage(w, h int) *MonoColumnImage {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("pixel: invalid image size %dx%d", w, h))
	}
	stride := (h + 7) / 8 // round up to whole bytes
	return &MonoColumnImage{
		Buffer: makeBuffer(w, h, stride, stride*w),
	}
}

func (p *MonoColumnImage) ColorModel() color.Model {
	return MonoModel
}

// PixOffset returns the index of the byte holding pixel (x, y).
func (p *MonoColumnImage) PixOffset(x, y int) int {
	return x*p.Stride + y/8
}

func (p *MonoColumnImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}

	bit := byte(1) << uint(y&7)
	if p.Pix[p.PixOffset(x, y)]&bit != 0 {
		return On
	}
	return Off
}

func (p *MonoColumnImage) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}

	var (
		pos = p.PixOffset(x, y)
		bit = byte(1) << uint(y&7)
	)
	if monoModel(c).(Mono).On {
		p.Pix[pos] |= bit
	} else {
		p.Pix[pos] &^= bit
	}
}

func (p *MonoColumnImage) Fill(c color.Color) {
	if !monoModel(c).(Mono).On {
		p.Clear()
		return
	}

	column := p.litColumn()
	for i := 0; i < len(p.Pix); i += p.Stride {
		copy(p.Pix[i:], column)
	}
}

// Uniform reports whether all pixels have the same state, and which state that is.
func (p *MonoColumnImage) Uniform() (on, ok bool) {
	switch {
	case p.equalColumns(make([]byte, p.Stride)):
		return false, true
	case p.equalColumns(p.litColumn()):
		return true, true
	default:
		return false, false
	}
}

// litColumn is the byte pattern of a column with all pixels On.
func (p *MonoColumnImage) litColumn() []byte {
	column := make([]byte, p.Stride)
	for i := range column {
		column[i] = 0xff
	}
	if rem := p.Rect.Dy() & 7; rem != 0 {
		column[p.Stride-1] = byte(1)<<uint(rem) - 1
	}
	return column
}

func (p *MonoColumnImage) equalColumns(column []byte) bool {
	for i := 0; i < len(p.Pix); i += p.Stride {
		if !slices.Equal(p.Pix[i:i+p.Stride], column) {
			return false
		}
	}
	return true
}

// Interface checks.
var (
	_ Image = (*MonoColumnImage)(nil)
)
