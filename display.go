// Package flipdot draws on flip-dot signs connected to an RS-485 sign bus.
//
// A [Display] holds one page of pixels in memory. Drawing only changes that page; nothing
// is sent to the sign until [Display.Flush] is called, so many draw calls end up as one
// physical update. The page is kept after a flush, so a frame can be built up over several
// flushes.
//
// Display implements [image/draw.Image], so it works with the shape and text helpers in the
// draw subpackage as well as anything else that targets [image/draw.Image].
package flipdot

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"strings"

	"periph.io/x/conn/v3/display"

	"github.com/BeatGlow/flipdot/draw"
	"github.com/BeatGlow/flipdot/pixel"
)

var debug bool

func init() {
	debug = os.Getenv("FLIPDOT_DEBUG") != ""
}

// SetDebug enables or disables debug logging.
func SetDebug(v bool) {
	debug = v
}

// Errors
var (
	ErrUnsupportedSign = errors.New("flipdot: unsupported sign type")
	ErrInvalidAddress  = errors.New("flipdot: invalid sign address")
	ErrClosed          = errors.New("flipdot: display is closed")
)

// ConnectionError is returned when the connection to the sign could not be opened.
type ConnectionError struct {
	Port string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("flipdot: connect to %s: %v", e.Port, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// TransmissionError is returned when a page could not be sent to the sign. The page in
// memory is unchanged, the flush can be retried.
type TransmissionError struct {
	Sign string
	Err  error
}

func (e *TransmissionError) Error() string {
	return fmt.Sprintf("flipdot: transmit to %s: %v", e.Sign, e.Err)
}

func (e *TransmissionError) Unwrap() error {
	return e.Err
}

// Config is the sign configuration.
type Config struct {
	// Port is the serial port of the sign bus, or VirtualPort for an in-memory sign.
	Port string

	// Address of the sign on the bus.
	Address Address

	// Type of the sign.
	Type SignType

	// Serial bus settings, nil uses DefaultSerialConfig.
	Serial *SerialConfig
}

// Pixel is a colored point.
type Pixel struct {
	image.Point
	Color color.Color
}

// Display is a flip-dot sign with its page buffer. A Display is not safe for concurrent use.
type Display struct {
	page     *pixel.MonoColumnImage
	conn     Conn
	signType SignType
	closed   bool
}

// Open the sign described by config. The sign type is checked before the port is opened.
func Open(config *Config) (*Display, error) {
	if _, ok := config.Type.Size(); !ok {
		return nil, fmt.Errorf("%w %s", ErrUnsupportedSign, config.Type)
	}
	if config.Address == 0 {
		return nil, ErrInvalidAddress
	}

	var (
		c   Conn
		err error
	)
	if strings.EqualFold(config.Port, VirtualPort) {
		c = OpenVirtual(config.Address, config.Type)
	} else {
		c, err = OpenSerial(config.Port, config.Address, config.Type, config.Serial)
	}
	if err != nil {
		return nil, &ConnectionError{Port: config.Port, Err: err}
	}

	return New(c, config.Type)
}

// New returns a Display for an open connection to a sign of type t. The Display takes
// ownership of the connection.
func New(c Conn, t SignType) (*Display, error) {
	size, ok := t.Size()
	if !ok {
		return nil, fmt.Errorf("%w %s", ErrUnsupportedSign, t)
	}

	if debug {
		log.Printf("flipdot: %s %s on %s", t, size, c)
	}
	return &Display{
		page:     pixel.NewMonoColumnImage(size.X, size.Y),
		conn:     c,
		signType: t,
	}, nil
}

func (d *Display) String() string {
	size := d.page.Bounds().Size()
	return fmt.Sprintf("%s flip-dot sign %dx%d on %s", d.signType, size.X, size.Y, d.conn)
}

// Type of the sign.
func (d *Display) Type() SignType {
	return d.signType
}

// Bounds of the sign, with the origin in the top-left corner.
func (d *Display) Bounds() image.Rectangle {
	return d.page.Bounds()
}

// ColorModel converts to pixel.Mono.
func (d *Display) ColorModel() color.Model {
	return d.page.ColorModel()
}

// At returns the color of the pixel at (x, y) in the page.
func (d *Display) At(x, y int) color.Color {
	return d.page.At(x, y)
}

// Set the pixel at (x, y). Pixels outside of the sign are ignored.
func (d *Display) Set(x, y int, c color.Color) {
	d.page.Set(x, y, c)
}

// DrawPixels sets all pixels. Pixels outside of the sign are ignored.
func (d *Display) DrawPixels(pixels ...Pixel) {
	for _, p := range pixels {
		d.page.Set(p.X, p.Y, p.Color)
	}
}

// Clear sets all pixels to c. Call Flush to show the result.
func (d *Display) Clear(c color.Color) {
	d.page.Fill(c)
}

// Flush sends the page to the sign. The page itself is left as is.
func (d *Display) Flush() error {
	if d.closed {
		return &TransmissionError{Sign: d.conn.String(), Err: ErrClosed}
	}

	if on, ok := d.page.Uniform(); ok {
		if clearer, ok := d.conn.(PageClearer); ok {
			if debug {
				log.Printf("flipdot: clear %s to %s", d.conn, pixel.Mono{On: on})
			}
			if err := clearer.ClearPage(on); err != nil {
				return &TransmissionError{Sign: d.conn.String(), Err: err}
			}
			return nil
		}
	}

	page := d.page.Bytes()
	if debug {
		log.Printf("flipdot: send %d bytes page to %s", len(page), d.conn)
	}
	if err := d.conn.SendPage(page); err != nil {
		return &TransmissionError{Sign: d.conn.String(), Err: err}
	}
	return nil
}

// Draw copies src onto the page, like [draw.Draw] with [draw.Src], and flushes the page.
func (d *Display) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	draw.Draw(d, r, src, sp, draw.Src)
	return d.Flush()
}

// Halt flips all dots off.
func (d *Display) Halt() error {
	d.Clear(pixel.Off)
	return d.Flush()
}

// Close the connection to the sign. Closing a closed Display does nothing.
func (d *Display) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	return d.conn.Close()
}

// Interface checks.
var (
	_ draw.Image     = (*Display)(nil)
	_ display.Drawer = (*Display)(nil)
	_ fmt.Stringer   = (*Display)(nil)
)
