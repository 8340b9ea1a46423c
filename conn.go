package flipdot

import (
	"fmt"
	"io"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"

	"github.com/BeatGlow/flipdot/conn"
)

// Conn is the connection to a single sign.
type Conn interface {
	String() string

	// Close the connection.
	Close() error

	// SendPage transmits a page of pixel data, in the layout of pixel.MonoColumnImage,
	// and shows it.
	SendPage(page []byte) error
}

// PageClearer is implemented by connections that can set all dots of a sign without
// sending a full page.
type PageClearer interface {
	ClearPage(on bool) error
}

// SerialConfig describes the sign bus serial link.
type SerialConfig struct {
	// Baud rate of the bus.
	Baud physic.Frequency

	// RS485 enables the kernel RS-485 mode of the UART (Linux only).
	RS485 bool

	// TxEnable is the driver enable pin of the RS-485 transceiver, if it is not
	// controlled by the UART.
	TxEnable gpio.PinOut
}

// DefaultSerialConfig are the default configuration values.
var DefaultSerialConfig = SerialConfig{
	Baud: 19200 * physic.Hertz,
}

// OpenSerial opens the sign with address and type t on the sign bus at port.
func OpenSerial(port string, address Address, t SignType, config *SerialConfig) (Conn, error) {
	if _, ok := t.Size(); !ok {
		return nil, fmt.Errorf("%w %s", ErrUnsupportedSign, t)
	}
	if address == 0 {
		return nil, ErrInvalidAddress
	}

	c := DefaultSerialConfig
	if config != nil {
		c = *config
		if c.Baud == 0 {
			c.Baud = DefaultSerialConfig.Baud
		}
	}

	if c.RS485 {
		if err := conn.EnableRS485(port); err != nil {
			return nil, fmt.Errorf("flipdot: enable RS-485 on %s: %w", port, err)
		}
	}

	s, err := conn.OpenSerial(port, c.Baud)
	if err != nil {
		return nil, err
	}
	if err = s.SetTxEnable(c.TxEnable); err != nil {
		_ = s.Close()
		return nil, err
	}

	return newSerialConn(s, address, t), nil
}

type serialConn struct {
	port       io.WriteCloser
	address    Address
	signType   SignType
	configured bool
}

func newSerialConn(port io.WriteCloser, address Address, t SignType) *serialConn {
	return &serialConn{
		port:     port,
		address:  address,
		signType: t,
	}
}

func (c *serialConn) String() string {
	return fmt.Sprintf("sign %d on %v", c.address, c.port)
}

func (c *serialConn) Close() error {
	return c.port.Close()
}

// SendPage configures the sign on first use, loads the page and shows it.
func (c *serialConn) SendPage(page []byte) error {
	b := c.appendConfig(nil)
	b = appendRequest(b, c.address, opReceivePixels)
	b = appendData(b, page)
	b = appendRequest(b, c.address, opShowLoadedPage)
	return c.write(b)
}

// ClearPage flips all dots to on, or off.
func (c *serialConn) ClearPage(on bool) error {
	var state byte
	if on {
		state = 1
	}
	return c.write(appendRequest(c.appendConfig(nil), c.address, opClearPage, state))
}

// appendConfig adds the sign configuration if the sign has not been configured yet.
func (c *serialConn) appendConfig(b []byte) []byte {
	if c.configured {
		return b
	}
	size, _ := c.signType.Size()
	b = appendRequest(b, c.address, opReceiveConfig)
	return appendData(b, []byte{byte(c.signType), byte(size.X), byte(size.Y)})
}

func (c *serialConn) write(b []byte) error {
	if _, err := c.port.Write(b); err != nil {
		return err
	}
	c.configured = true
	return nil
}
