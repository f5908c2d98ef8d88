package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kmouse/device"
)

type nopSink struct{}

func (nopSink) Move(dx, dy int32) error { return nil }
func (nopSink) Sync() error             { return nil }

func TestControlSocketRoundTrip(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "kmouse.sock")
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	dev := device.New(nopSink{}, device.DefaultMapping(), log)

	l, err := listenControl(sock)
	require.NoError(t, err)
	defer l.Close()
	go acceptControl(l, dev, log)

	require.NoError(t, sendControl(sock, "0 ujhk"))
	require.NoError(t, sendControl(sock, "1 42"))

	want := device.Mapping{Up: 'u', Down: 'j', Left: 'h', Right: 'k', Speed: 42}
	assert.Eventually(t, func() bool {
		return dev.Mapping() == want
	}, 2*time.Second, 10*time.Millisecond)
}

func TestListenControlClearsStaleSocket(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "kmouse.sock")
	require.NoError(t, os.WriteFile(sock, nil, 0600))

	l, err := listenControl(sock)
	require.NoError(t, err)
	l.Close()
}

func TestSendControlNoDaemon(t *testing.T) {
	err := sendControl(filepath.Join(t.TempDir(), "gone.sock"), "1 5")
	assert.Error(t, err)
}
