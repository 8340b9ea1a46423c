//go:build !linux

package conn

// EnableRS485 is only available on Linux.
func EnableRS485(_ string) error {
	return ErrNotSupported
}
