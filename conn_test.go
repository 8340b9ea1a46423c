package flipdot

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPort struct {
	bytes.Buffer
	writes int
	err    error
	closed bool
}

func (p *testPort) Write(b []byte) (int, error) {
	p.writes++
	if p.err != nil {
		return 0, p.err
	}
	return p.Buffer.Write(b)
}

func (p *testPort) Close() error {
	p.closed = true
	return nil
}

func (p *testPort) String() string { return "test port" }

const (
	configRequest = ":01000302A159\r\n"
	pixelsRequest = ":01000302A258\r\n"
	showRequest   = ":01000302A951\r\n"
	endRecord     = ":00000001FF\r\n"
)

func TestSerialConnSendPage(t *testing.T) {
	var (
		port = new(testPort)
		c    = newSerialConn(port, 3, Max3000Side90x7)
	)
	assert.Equal(t, "sign 3 on test port", c.String())

	require.NoError(t, c.SendPage(make([]byte, 90)))
	assert.Equal(t, 1, port.writes, "a page must be sent in a single write")

	out := port.Buffer.String()
	assert.True(t, strings.HasPrefix(out, configRequest+":03000000035A0799\r\n"+endRecord+pixelsRequest), out)
	assert.True(t, strings.HasSuffix(out, endRecord+showRequest), out)
	assert.Equal(t, 6, strings.Count(out, ":1000")+strings.Count(out, ":0A00"), "page data records")

	port.Reset()
	require.NoError(t, c.SendPage(make([]byte, 90)))
	out = port.Buffer.String()
	assert.NotContains(t, out, configRequest, "sign must be configured once")
	assert.True(t, strings.HasPrefix(out, pixelsRequest), out)
}

func TestSerialConnSendPageError(t *testing.T) {
	var (
		fail = errors.New("write failed")
		port = &testPort{err: fail}
		c    = newSerialConn(port, 3, Max3000Side90x7)
	)
	assert.ErrorIs(t, c.SendPage(make([]byte, 90)), fail)
	assert.False(t, c.configured)

	port.err = nil
	require.NoError(t, c.SendPage(make([]byte, 90)))
	assert.True(t, strings.HasPrefix(port.Buffer.String(), configRequest))
}

func TestSerialConnClearPage(t *testing.T) {
	var (
		port = new(testPort)
		c    = newSerialConn(port, 3, Max3000Side90x7)
	)
	require.NoError(t, c.ClearPage(true))
	assert.Equal(t, configRequest+":03000000035A0799\r\n"+endRecord+":02000302AA014E\r\n", port.Buffer.String())

	port.Reset()
	require.NoError(t, c.ClearPage(false))
	assert.Equal(t, ":02000302AA004F\r\n", port.Buffer.String())
}

func TestSerialConnClose(t *testing.T) {
	port := new(testPort)
	require.NoError(t, newSerialConn(port, 3, Max3000Side90x7).Close())
	assert.True(t, port.closed)
}

func TestOpenSerialInvalid(t *testing.T) {
	_, err := OpenSerial("/dev/ttyTEST", 3, 0, nil)
	assert.ErrorIs(t, err, ErrUnsupportedSign)

	_, err = OpenSerial("/dev/ttyTEST", 0, Max3000Side90x7, nil)
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestOpenSerialMissingPort(t *testing.T) {
	_, err := OpenSerial("/dev/this-port-does-not-exist", 3, Max3000Side90x7, &SerialConfig{})
	assert.Error(t, err)
}
