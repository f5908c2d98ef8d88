package scancodes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowAlignment(t *testing.T) {
	assert.EqualValues(t, '1', Translate(0x02))
	assert.EqualValues(t, '0', Translate(0x0b))
	assert.EqualValues(t, 'q', Translate(0x10))
	assert.EqualValues(t, 'w', Translate(0x11))
	assert.EqualValues(t, 'p', Translate(0x19))
	assert.EqualValues(t, 'a', Translate(0x1e))
	assert.EqualValues(t, 'l', Translate(0x26))
	assert.EqualValues(t, 'z', Translate(0x2c))
	assert.EqualValues(t, 'm', Translate(0x32))
	assert.EqualValues(t, '\n', Translate(0x1c))
	assert.EqualValues(t, ' ', Translate(0x39))
}

func TestUnknownOutsideRows(t *testing.T) {
	mapped := map[byte]bool{0x1c: true, 0x39: true}
	for _, r := range rows {
		for i := 0; i < len(r.chars); i++ {
			mapped[r.base+byte(i)] = true
		}
	}
	for code := 0; code < 256; code++ {
		got := Translate(byte(code))
		if mapped[byte(code)&^ReleaseMask] {
			assert.NotEqualValues(t, Unknown, got, "code 0x%02x", code)
		} else {
			assert.EqualValues(t, Unknown, got, "code 0x%02x", code)
		}
	}
}

func TestReleaseBitStripped(t *testing.T) {
	for code := 0; code < 128; code++ {
		assert.Equal(t, Translate(byte(code)), Translate(byte(code)|ReleaseMask))
	}
	assert.True(t, IsRelease(0x11|ReleaseMask))
	assert.False(t, IsRelease(0x11))
}

func TestForChar(t *testing.T) {
	require.EqualValues(t, 0x11, ForChar('w'))
	require.EqualValues(t, 0x1f, ForChar('s'))
	require.EqualValues(t, 0x1e, ForChar('a'))
	require.EqualValues(t, 0x20, ForChar('d'))
	require.EqualValues(t, 0x16, ForChar('u'))
	require.EqualValues(t, 0x25, ForChar('k'))
	require.Zero(t, ForChar('!'))

	// ForChar and Translate agree on every row character.
	for _, r := range rows {
		for i := 0; i < len(r.chars); i++ {
			assert.Equal(t, r.chars[i], Translate(ForChar(r.chars[i])))
		}
	}
}
