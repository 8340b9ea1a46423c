package flipdot

import (
	"fmt"
	"image"
	"log"
	"slices"
	"strings"

	"github.com/BeatGlow/flipdot/pixel"
)

// VirtualPort is the port name of an in-memory sign.
const VirtualPort = "virtual"

// VirtualSign is an in-memory sign, it keeps the last page shown.
type VirtualSign struct {
	address  Address
	signType SignType
	size     image.Point
	stride   int
	page     []byte
	pages    int
	closed   bool
}

// OpenVirtual returns an in-memory sign with the given address and type. The type must
// be supported.
func OpenVirtual(address Address, t SignType) *VirtualSign {
	size, _ := t.Size()
	stride := (size.Y + 7) / 8
	return &VirtualSign{
		address:  address,
		signType: t,
		size:     size,
		stride:   stride,
		page:     make([]byte, stride*size.X),
	}
}

func (s *VirtualSign) String() string {
	return fmt.Sprintf("virtual sign %d", s.address)
}

// SendPage stores and shows the page.
func (s *VirtualSign) SendPage(page []byte) error {
	if s.closed {
		return ErrClosed
	}
	if len(page) != len(s.page) {
		return fmt.Errorf("flipdot: page of %d bytes, %s needs %d", len(page), s.signType, len(s.page))
	}
	s.show(slices.Clone(page))
	return nil
}

// ClearPage sets all dots of the sign to on, or off.
func (s *VirtualSign) ClearPage(on bool) error {
	if s.closed {
		return ErrClosed
	}
	p := pixel.NewMonoColumnImage(s.size.X, s.size.Y)
	p.Fill(pixel.Mono{On: on})
	s.show(p.Pix)
	return nil
}

func (s *VirtualSign) show(page []byte) {
	s.page = page
	s.pages++
	if debug {
		log.Printf("flipdot: %s shows page %d:\n%s", s, s.pages, s.render())
	}
}

// Page returns a copy of the page shown.
func (s *VirtualSign) Page() []byte {
	return slices.Clone(s.page)
}

// Pages returns the number of pages shown.
func (s *VirtualSign) Pages() int {
	return s.pages
}

// Lit reports if the dot at (x, y) is showing its lit side.
func (s *VirtualSign) Lit(x, y int) bool {
	if !(image.Point{x, y}).In(image.Rectangle{Max: s.size}) {
		return false
	}
	return s.page[x*s.stride+y/8]&(1<<uint(y%8)) != 0
}

func (s *VirtualSign) Close() error {
	s.closed = true
	return nil
}

func (s *VirtualSign) render() string {
	var b strings.Builder
	for y := 0; y < s.size.Y; y++ {
		for x := 0; x < s.size.X; x++ {
			if s.Lit(x, y) {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

var _ PageClearer = (*VirtualSign)(nil)
