package conn

import (
	"os"
	"syscall"

	"github.com/BeatGlow/flipdot/internal/ioctl"
)

// Definitions from <linux/serial.h>
const (
	tiocsRS485 = 0x542f

	serRS485Enabled   = 1 << 0
	serRS485RTSOnSend = 1 << 1
)

type serialRS485 struct {
	Flags              uint32
	DelayRTSBeforeSend uint32
	DelayRTSAfterSend  uint32
	_                  [5]uint32
}

// EnableRS485 switches the named UART into kernel RS-485 mode, where the driver asserts RTS
// while sending. Not every UART driver supports this; a TX enable pin is the alternative.
func EnableRS485(name string) error {
	f, err := os.OpenFile(name, os.O_RDWR|syscall.O_NOCTTY|syscall.O_NONBLOCK, 0)
	if err != nil {
		return err
	}
	defer f.Close()

	config := serialRS485{
		Flags: serRS485Enabled | serRS485RTSOnSend,
	}
	return ioctl.Do(f.Fd(), tiocsRS485, &config)
}
