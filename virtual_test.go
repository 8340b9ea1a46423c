package flipdot

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BeatGlow/flipdot/draw"
	"github.com/BeatGlow/flipdot/pixel"
)

func TestVirtualSign(t *testing.T) {
	s := OpenVirtual(7, Max3000Rear23x10)
	assert.Equal(t, "virtual sign 7", s.String())
	assert.Equal(t, make([]byte, 46), s.Page())
	assert.Equal(t, 0, s.Pages())

	page := make([]byte, 46)
	page[2*2+1] = 0x02 // (2, 9)
	require.NoError(t, s.SendPage(page))
	assert.Equal(t, 1, s.Pages())
	assert.True(t, s.Lit(2, 9))
	assert.False(t, s.Lit(2, 8))
	assert.False(t, s.Lit(-1, 0))
	assert.False(t, s.Lit(23, 0))

	page[2*2+1] = 0
	assert.True(t, s.Lit(2, 9), "sign must keep its own copy of the page")
}

func TestVirtualSignInvalidPage(t *testing.T) {
	s := OpenVirtual(7, Max3000Rear23x10)
	assert.Error(t, s.SendPage(make([]byte, 45)))
	assert.Equal(t, 0, s.Pages())
}

func TestVirtualSignClearPage(t *testing.T) {
	s := OpenVirtual(1, Max3000Side90x7)
	require.NoError(t, s.ClearPage(true))
	for x := 0; x < 90; x++ {
		for y := 0; y < 7; y++ {
			require.True(t, s.Lit(x, y), "(%d, %d)", x, y)
		}
	}
	assert.Equal(t, byte(0x7f), s.Page()[0])

	require.NoError(t, s.ClearPage(false))
	assert.Equal(t, make([]byte, 90), s.Page())
	assert.Equal(t, 2, s.Pages())
}

func TestVirtualSignClosed(t *testing.T) {
	s := OpenVirtual(1, Max3000Side90x7)
	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.SendPage(make([]byte, 90)), ErrClosed)
	assert.ErrorIs(t, s.ClearPage(true), ErrClosed)
}

func TestVirtualSignRender(t *testing.T) {
	s := OpenVirtual(1, Max3000Rear23x10)
	p := pixel.NewMonoColumnImage(23, 10)
	draw.HorizontalLine(p, 0, 0, 3, pixel.On)
	require.NoError(t, s.SendPage(p.Bytes()))

	lines := s.render()
	assert.Equal(t, "###....................\n", lines[:24])
	assert.Len(t, lines, 24*10)
}

func TestDisplayVirtual(t *testing.T) {
	d, err := Open(&Config{Port: VirtualPort, Address: 3, Type: Max3000Side90x7})
	require.NoError(t, err)
	sign := d.conn.(*VirtualSign)

	draw.Circle(d, image.Pt(3, 3), 3, pixel.On)
	require.NoError(t, d.Flush())
	assert.True(t, sign.Lit(0, 3))
	assert.True(t, sign.Lit(6, 3))
	assert.False(t, sign.Lit(3, 3))

	d.Clear(pixel.On)
	require.NoError(t, d.Flush())
	assert.True(t, sign.Lit(3, 3))
	assert.Equal(t, 2, sign.Pages())

	require.NoError(t, d.Close())
	assert.Error(t, d.Flush())
}
