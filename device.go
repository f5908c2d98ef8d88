package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/gvalkov/golang-evdev"

	"kmouse/device"
	"kmouse/scancodes"
)

// Keyboard attaches to one evdev keyboard node and feeds its scancodes
// into a device Context.
type Keyboard struct {
	path string
	dev  *device.Context
	log  *slog.Logger
}

// RunLoop reads from the device until ctx is cancelled, reattaching
// whenever the node disappears and comes back.
func (k *Keyboard) RunLoop(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	dir := filepath.Dir(k.path)
	for {
		err := k.run(ctx)
		if ctx.Err() != nil {
			return nil
		}
		k.log.Warn("lost device", "device", k.path, "err", err)
		if err := watcher.Add(dir); err != nil {
			return err
		}
		for {
			var ev fsnotify.Event
			select {
			case <-ctx.Done():
				return nil
			case ev = <-watcher.Events:
			case err := <-watcher.Errors:
				return err
			}
			if !ev.Has(fsnotify.Create) {
				continue
			}
			if _, err := os.Stat(k.path); err == nil {
				break
			} else if !os.IsNotExist(err) {
				return err
			}
		}
		watcher.Remove(dir)
		for len(watcher.Events) > 0 {
			<-watcher.Events
		}
	}
}

func (k *Keyboard) run(ctx context.Context) error {
	kbd, err := evdev.Open(k.path)
	if err != nil {
		return err
	}
	done := make(chan struct{})
	defer close(done)
	go func() {
		// Unblock ReadOne on shutdown.
		select {
		case <-ctx.Done():
			kbd.File.Close()
		case <-done:
		}
	}()
	defer kbd.File.Close()
	// The keyboard stays shared: no Grab. Every event we see keeps
	// flowing to the other consumers of the device.
	k.log.Info("attached", "device", k.path)
	for {
		ev, err := kbd.ReadOne()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		if ev.Type != evdev.EV_KEY {
			continue
		}
		keyev := evdev.NewKeyEvent(ev)
		if keyev.Scancode > 0x7f {
			// Outside the one-byte Set 1 range.
			continue
		}
		raw := byte(keyev.Scancode)
		if keyev.State == evdev.KeyUp {
			raw |= scancodes.ReleaseMask
		}
		// KeyHold (autorepeat) counts as another press, the way the
		// controller retransmits the make code.
		k.dev.Capture(raw)
	}
}
