package device

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControlMap(t *testing.T) {
	c, _ := newTest(t)
	n := c.Control([]byte("0 ujhk"))
	assert.Equal(t, 6, n)
	assert.Equal(t, Mapping{Up: 'u', Down: 'j', Left: 'h', Right: 'k', Speed: 10}, c.Mapping())
}

func TestControlMapKeepsSpeed(t *testing.T) {
	c, _ := newTest(t)
	c.Control([]byte("1 25"))
	c.Control([]byte("0 ijkl"))
	assert.EqualValues(t, 25, c.Mapping().Speed)
}

func TestControlSpeed(t *testing.T) {
	c, _ := newTest(t)
	c.Control([]byte("1 50"))
	assert.EqualValues(t, 50, c.Mapping().Speed)

	c.Control([]byte("1 -3"))
	assert.EqualValues(t, -3, c.Mapping().Speed)
}

func TestControlSpeedNotNumeric(t *testing.T) {
	c, _ := newTest(t)
	n := c.Control([]byte("1 fast"))
	assert.Equal(t, 6, n)
	assert.EqualValues(t, 10, c.Mapping().Speed, "bad speed is discarded silently")
}

func TestControlUnknownCommand(t *testing.T) {
	c, _ := newTest(t)
	n := c.Control([]byte("9 wsad"))
	assert.Equal(t, 6, n)
	assert.Equal(t, DefaultMapping(), c.Mapping())
}

func TestControlShortPayload(t *testing.T) {
	c, _ := newTest(t)
	assert.Equal(t, 0, c.Control(nil))
	assert.Equal(t, 1, c.Control([]byte("0")))
	assert.Equal(t, 4, c.Control([]byte("0 ab")))
	assert.Equal(t, DefaultMapping(), c.Mapping())
}

func TestControlTruncatesAtBufSize(t *testing.T) {
	c, _ := newTest(t)
	payload := append([]byte("0 wsad"), bytes.Repeat([]byte{'x'}, 200)...)
	n := c.Control(payload)
	require.Equal(t, ControlBufSize, n)
	m := c.Mapping()
	assert.Equal(t, Mapping{Up: 'w', Down: 's', Left: 'a', Right: 'd', Speed: 10}, m)
}
