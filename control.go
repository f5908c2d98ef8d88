package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"

	"kmouse/device"
)

// listenControl binds the control socket, clearing a stale one left by
// a previous run.
func listenControl(path string) (net.Listener, error) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("control: remove stale socket: %w", err)
	}
	l, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("control: listen %s: %w", path, err)
	}
	return l, nil
}

// acceptControl serves control commands until the listener is closed.
// One connection carries one command.
func acceptControl(l net.Listener, dev *device.Context, log *slog.Logger) {
	for {
		conn, err := l.Accept()
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				log.Error("control accept", "err", err)
			}
			return
		}
		go func() {
			defer conn.Close()
			buf := make([]byte, 2*device.ControlBufSize)
			n, err := conn.Read(buf)
			if err != nil && err != io.EOF {
				log.Warn("control read", "err", err)
				return
			}
			dev.Control(buf[:n])
		}()
	}
}

// sendControl writes one command to a running daemon's socket.
func sendControl(path, payload string) error {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return fmt.Errorf("control: dial %s: %w", path, err)
	}
	defer conn.Close()
	if _, err := conn.Write([]byte(payload)); err != nil {
		return fmt.Errorf("control: write: %w", err)
	}
	return nil
}
