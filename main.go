package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	flag "github.com/spf13/pflag"

	"kmouse/device"
	"kmouse/uinput"
)

func main() {
	confPath := flag.StringP("conf", "c", "", "config file (TOML)")
	devPath := flag.StringP("device", "k", "", "keyboard event device, overrides config")
	socket := flag.StringP("socket", "s", "", "control socket path, overrides config")
	send := flag.String("send", "", "write a control command to a running daemon and exit")
	debug := flag.BoolP("debug", "d", false, "debug log level")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	cfg, err := loadConfig(*confPath)
	if err != nil {
		log.Error("startup", "err", err)
		os.Exit(1)
	}
	if *devPath != "" {
		cfg.Scan.Device = *devPath
	}
	if *socket != "" {
		cfg.Control.Socket = *socket
	}

	if *send != "" {
		if err := sendControl(cfg.Control.Socket, *send); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := run(cfg, log); err != nil {
		log.Error("exit", "err", err)
		os.Exit(1)
	}
}

// run brings the system up leaf-first and tears it down in the reverse
// order on every failure path: pointer sink, device context, control
// socket, then the scancode source. Shutdown stops the source first,
// drains the deferred work, and only then releases the sink.
func run(cfg Config, log *slog.Logger) error {
	m, err := cfg.mapping()
	if err != nil {
		return err
	}

	mouse, err := uinput.CreateMouse(cfg.Pointer.Uinput, cfg.Pointer.Name)
	if err != nil {
		return err
	}

	dev := device.New(mouse, m, log)

	l, err := listenControl(cfg.Control.Socket)
	if err != nil {
		mouse.Close()
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveCtx, stopServe := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		dev.Serve(serveCtx)
	}()
	go acceptControl(l, dev, log)

	log.Info("running", "device", cfg.Scan.Device, "socket", cfg.Control.Socket,
		"map", cfg.Pointer.Map, "speed", cfg.Pointer.Speed)

	kb := &Keyboard{path: cfg.Scan.Device, dev: dev, log: log}
	runErr := kb.RunLoop(ctx)

	// Captures have stopped; finish pending translations before the
	// sink goes away.
	stopServe()
	wg.Wait()
	l.Close()
	os.Remove(cfg.Control.Socket)
	if err := mouse.Close(); err != nil {
		log.Warn("pointer teardown", "err", err)
	}
	return runErr
}
