// Package uinput registers a virtual relative pointer with the kernel
// input subsystem and pushes movement events to it.
package uinput

import (
	"fmt"
	"os"
	"syscall"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// DefaultPath is where the uinput control node usually lives.
const DefaultPath = "/dev/uinput"

// Mouse is a virtual pointer device emitting relative movement.
type Mouse struct {
	f *os.File
}

func ioctl(f *os.File, req, arg uintptr) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), req, arg)
	if errno != 0 {
		return errno
	}
	return nil
}

// CreateMouse registers a virtual relative pointer named name through
// the uinput node at path. Any failure unwinds before returning.
func CreateMouse(path, name string) (*Mouse, error) {
	if len(name) >= uinputMaxNameSize {
		return nil, fmt.Errorf("uinput: device name %q too long", name)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|syscall.O_NONBLOCK, 0660)
	if err != nil {
		return nil, fmt.Errorf("uinput: open %s: %w", path, err)
	}

	setup := func() error {
		if err := ioctl(f, uiSetEvBit, evKey); err != nil {
			return fmt.Errorf("set EV_KEY: %w", err)
		}
		// A button bit is required for the kernel to accept the device
		// as a pointer.
		if err := ioctl(f, uiSetKeyBit, btnLeft); err != nil {
			return fmt.Errorf("set BTN_LEFT: %w", err)
		}
		if err := ioctl(f, uiSetEvBit, evRel); err != nil {
			return fmt.Errorf("set EV_REL: %w", err)
		}
		if err := ioctl(f, uiSetRelBit, relX); err != nil {
			return fmt.Errorf("set REL_X: %w", err)
		}
		if err := ioctl(f, uiSetRelBit, relY); err != nil {
			return fmt.Errorf("set REL_Y: %w", err)
		}

		dev := uinputUserDev{
			ID: inputID{Bustype: busUsb, Vendor: 0x2708, Product: 0x0001, Version: 1},
		}
		copy(dev.Name[:], name)
		buf := (*[unsafe.Sizeof(dev)]byte)(unsafe.Pointer(&dev))[:]
		if _, err := f.Write(buf); err != nil {
			return fmt.Errorf("write device setup: %w", err)
		}
		if err := ioctl(f, uiDevCreate, 0); err != nil {
			return fmt.Errorf("create device: %w", err)
		}
		return nil
	}
	if err := setup(); err != nil {
		f.Close()
		return nil, fmt.Errorf("uinput: %w", err)
	}

	// Give udev a moment to publish the new node before events flow.
	time.Sleep(200 * time.Millisecond)
	return &Mouse{f: f}, nil
}

func (m *Mouse) emit(typ, code uint16, value int32) error {
	ev := inputEvent{Type: typ, Code: code, Value: value}
	buf := (*[unsafe.Sizeof(ev)]byte)(unsafe.Pointer(&ev))[:]
	_, err := m.f.Write(buf)
	return err
}

// Move reports a relative displacement. Axes with zero displacement are
// not reported.
func (m *Mouse) Move(dx, dy int32) error {
	if dx != 0 {
		if err := m.emit(evRel, relX, dx); err != nil {
			return err
		}
	}
	if dy != 0 {
		if err := m.emit(evRel, relY, dy); err != nil {
			return err
		}
	}
	return nil
}

// Sync marks the end of one event report.
func (m *Mouse) Sync() error {
	return m.emit(evSyn, synReport, 0)
}

// Close destroys the virtual device and releases the uinput node.
func (m *Mouse) Close() error {
	derr := ioctl(m.f, uiDevDestroy, 0)
	cerr := m.f.Close()
	if derr != nil {
		return fmt.Errorf("uinput: destroy device: %w", derr)
	}
	return cerr
}
