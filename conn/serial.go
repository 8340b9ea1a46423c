package conn

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// ErrNotSupported is returned for features the platform lacks.
var ErrNotSupported = errors.New("conn: not supported on this platform")

// Bits on the wire per byte: start bit, 8 data bits, stop bit.
const bitsPerByte = 10

// Serial is a write-only serial port, typically connected to an RS-485 transceiver.
type Serial struct {
	name     string
	port     io.WriteCloser
	baud     physic.Frequency
	txEnable gpio.PinOut
	sleep    func(time.Duration)
}

// OpenSerial opens the named serial port at baud, 8N1.
func OpenSerial(name string, baud physic.Frequency) (*Serial, error) {
	if baud < physic.Hertz {
		return nil, fmt.Errorf("conn: invalid baud rate %s", baud)
	}

	port, err := serial.OpenPort(&serial.Config{
		Name:        name,
		Baud:        int(baud / physic.Hertz),
		Size:        8,
		Parity:      serial.ParityNone,
		StopBits:    serial.Stop1,
		ReadTimeout: time.Second,
	})
	if err != nil {
		return nil, err
	}

	return NewSerial(name, port, baud), nil
}

// NewSerial uses an already opened port.
func NewSerial(name string, port io.WriteCloser, baud physic.Frequency) *Serial {
	return &Serial{
		name:  name,
		port:  port,
		baud:  baud,
		sleep: time.Sleep,
	}
}

func (s *Serial) String() string {
	return fmt.Sprintf("serial port %s at %d baud", s.name, s.baud/physic.Hertz)
}

// SetTxEnable configures a GPIO that drives the driver enable (DE) input of a half-duplex
// RS-485 transceiver. The pin is High while a write is on the wire and Low otherwise.
func (s *Serial) SetTxEnable(pin gpio.PinOut) error {
	if pin == nil || pin == gpio.INVALID {
		s.txEnable = nil
		return nil
	}
	if err := pin.Out(gpio.Low); err != nil {
		return err
	}
	s.txEnable = pin
	return nil
}

// Write p to the port. With a TX enable pin the call returns once the last byte has been
// shifted out, so the transceiver is not released mid-frame.
func (s *Serial) Write(p []byte) (n int, err error) {
	if s.txEnable == nil {
		return s.port.Write(p)
	}

	if err = s.txEnable.Out(gpio.High); err != nil {
		return 0, err
	}
	n, err = s.port.Write(p)
	s.sleep(s.TransmitTime(n))
	if lowErr := s.txEnable.Out(gpio.Low); err == nil {
		err = lowErr
	}
	return n, err
}

// TransmitTime is the time it takes to shift n bytes out at the port's baud rate.
func (s *Serial) TransmitTime(n int) time.Duration {
	return time.Duration(n*bitsPerByte) * s.baud.Period()
}

func (s *Serial) Close() error {
	if s.txEnable != nil {
		_ = s.txEnable.Out(gpio.Low)
	}
	return s.port.Close()
}
