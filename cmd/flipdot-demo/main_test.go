package main

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BeatGlow/flipdot"
)

func newTestConfig(port string, address uint) *viper.Viper {
	v := viper.New()
	v.Set("port", port)
	v.Set("address", address)
	v.Set("type", flipdot.Max3000Side90x7.String())
	v.Set("baud", 19200)
	v.Set("delay", 0)
	return v
}

func TestSignAddress(t *testing.T) {
	tests := []struct {
		Value uint
		Want  flipdot.Address
		Fail  bool
	}{
		{1, 1, false},
		{3, 3, false},
		{255, 255, false},
		{0, 0, true},
		{256, 0, true},
		{259, 0, true},
	}
	for _, test := range tests {
		got, err := signAddress(test.Value)
		if test.Fail {
			assert.Error(t, err, "address %d", test.Value)
			continue
		}
		require.NoError(t, err, "address %d", test.Value)
		assert.Equal(t, test.Want, got)
	}
}

func TestRunVirtual(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(newTestConfig(flipdot.VirtualPort, 3), &out))
	assert.Contains(t, out.String(), "using sign: max3000-side-90x7 flip-dot sign 90x7 on virtual sign 3")
	assert.Contains(t, out.String(), "showing all dots off")
}

func TestRunAddressOutOfRange(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run(newTestConfig(flipdot.VirtualPort, 259), &out))
	assert.Empty(t, out.String(), "no sign must be opened")
}

func TestRunConnectionError(t *testing.T) {
	var out bytes.Buffer
	err := run(newTestConfig("/dev/this-port-does-not-exist", 3), &out)

	var connErr *flipdot.ConnectionError
	assert.ErrorAs(t, err, &connErr)
}

func TestRunUnknownSignType(t *testing.T) {
	v := newTestConfig(flipdot.VirtualPort, 3)
	v.Set("type", "max3000-side-91x7")
	assert.ErrorIs(t, run(v, new(bytes.Buffer)), flipdot.ErrUnsupportedSign)
}
