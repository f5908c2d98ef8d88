package device

import (
	"strconv"
	"strings"
)

// Control commands: an ASCII digit, a separator, then the payload.
const (
	cmdMap = '0' // next 4 bytes replace the up/down/left/right characters
	cmdSpd = '1' // base-10 signed integer replaces the speed
)

// ControlBufSize bounds a control command; longer payloads are
// truncated.
const ControlBufSize = 64

// Control applies one control command. Malformed commands are logged
// and ignored; they are never surfaced as failures. Returns the number
// of bytes consumed.
func (c *Context) Control(payload []byte) int {
	var buf [ControlBufSize]byte
	n := copy(buf[:], payload)
	if n < 2 {
		c.log.Warn("control: command too short", "len", n)
		return n
	}
	body := buf[2:n]

	switch buf[0] {
	case cmdMap:
		if len(body) < 4 {
			c.log.Warn("control: map wants 4 characters", "got", len(body))
			return n
		}
		old := c.mapping.Load()
		m := Mapping{
			Up:    body[0],
			Down:  body[1],
			Left:  body[2],
			Right: body[3],
			Speed: old.Speed,
		}
		c.mapping.Store(&m)
		c.log.Info("mapping replaced", "map", string(body[:4]))
	case cmdSpd:
		v, err := strconv.Atoi(strings.TrimSpace(string(body)))
		if err != nil {
			// A bad speed is dropped without telling the writer.
			c.log.Debug("control: speed not numeric", "payload", string(body))
			return n
		}
		m := *c.mapping.Load()
		m.Speed = int32(v)
		c.mapping.Store(&m)
		c.log.Info("speed replaced", "speed", m.Speed)
	default:
		c.log.Warn("control: unknown command", "cmd", string(buf[:1]))
	}
	return n
}
