// Package device implements the capture/translate pipeline that turns
// modifier+key scancode pairs into relative pointer movement.
package device

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"kmouse/scancodes"
)

// Sink consumes relative pointer movement. Move reports a displacement,
// Sync marks the end of one event report.
type Sink interface {
	Move(dx, dy int32) error
	Sync() error
}

// Mapping binds one typed character to each movement direction, plus
// the displacement per matched press. Replaced wholesale, never patched
// in place.
type Mapping struct {
	Up, Down, Left, Right byte
	Speed                 int32
}

// DefaultMapping is the mapping a fresh Context starts with.
func DefaultMapping() Mapping {
	return Mapping{Up: 'w', Down: 's', Left: 'a', Right: 'd', Speed: 10}
}

// degenerate reports whether every direction collapses onto ch, which
// would otherwise make the modifier latch unbreakable.
func (m *Mapping) degenerate(ch byte) bool {
	return m.Up == ch && m.Down == ch && m.Left == ch && m.Right == ch
}

// Context owns the two-slot key history and the direction mapping for
// one logical device. Capture runs on the producer side, Serve drains
// the deferred translate runs, Control mutates the mapping.
type Context struct {
	log  *slog.Logger
	sink Sink

	mu   sync.Mutex
	prev byte // older press scancode
	cur  byte // most recent press scancode

	mapping atomic.Pointer[Mapping]

	// Capacity 1: scheduling while a run is already pending coalesces.
	pending chan struct{}
}

// New returns a Context emitting into sink with the given initial
// mapping.
func New(sink Sink, m Mapping, log *slog.Logger) *Context {
	if log == nil {
		log = slog.Default()
	}
	c := &Context{
		log:     log,
		sink:    sink,
		pending: make(chan struct{}, 1),
	}
	c.mapping.Store(&m)
	return c
}

// Mapping returns a snapshot of the current direction mapping.
func (c *Context) Mapping() Mapping {
	return *c.mapping.Load()
}

// Capture feeds one raw scancode into the history. Release codes are
// ignored. On a press the history shifts unless the modifier already
// sits in the older slot (the latch), then one translate run is
// scheduled. Never blocks.
func (c *Context) Capture(raw byte) {
	if scancodes.IsRelease(raw) {
		// Releases carry no state yet.
		return
	}
	ch := scancodes.Translate(raw)
	m := c.mapping.Load()
	c.mu.Lock()
	if c.prev != scancodes.LeftAlt || m.degenerate(ch) {
		c.prev = c.cur
	}
	c.cur = raw
	c.mu.Unlock()
	c.schedule()
}

func (c *Context) schedule() {
	select {
	case c.pending <- struct{}{}:
	default:
	}
}

// Serve runs translate passes for scheduled captures until ctx is
// cancelled. On cancellation any still-pending run is completed first,
// so the sink is never released with work outstanding.
func (c *Context) Serve(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			select {
			case <-c.pending:
				c.translate()
			default:
			}
			return
		case <-c.pending:
			c.translate()
		}
	}
}

// translate is one deferred run: emit at most one movement, and only
// when the modifier occupies the older history slot. A miss is silent.
func (c *Context) translate() {
	c.mu.Lock()
	prev, cur := c.prev, c.cur
	c.mu.Unlock()

	if prev != scancodes.LeftAlt {
		return
	}
	ch := scancodes.Translate(cur)
	m := c.mapping.Load()

	var dx, dy int32
	switch ch {
	case m.Up:
		dy = -m.Speed
	case m.Down:
		dy = m.Speed
	case m.Left:
		dx = -m.Speed
	case m.Right:
		dx = m.Speed
	default:
		return
	}

	if err := c.sink.Move(dx, dy); err != nil {
		c.log.Debug("pointer move dropped", "err", err)
		return
	}
	if err := c.sink.Sync(); err != nil {
		c.log.Debug("pointer sync dropped", "err", err)
	}
}
