package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"

	"kmouse/device"
	"kmouse/uinput"
)

type ScanConfig struct {
	Device string `toml:"device"`
}

type ControlConfig struct {
	Socket string `toml:"socket"`
}

type PointerConfig struct {
	Uinput string `toml:"uinput"`
	Name   string `toml:"name"`
	Map    string `toml:"map"` // up, down, left, right
	Speed  int    `toml:"speed"`
}

type Config struct {
	Scan    ScanConfig    `toml:"scan"`
	Control ControlConfig `toml:"control"`
	Pointer PointerConfig `toml:"pointer"`
}

func defaultConfig() Config {
	return Config{
		Scan:    ScanConfig{Device: "/dev/input/event0"},
		Control: ControlConfig{Socket: "/run/kmouse.sock"},
		Pointer: PointerConfig{
			Uinput: uinput.DefaultPath,
			Name:   "kmouse virtual mouse",
			Map:    "wsad",
			Speed:  10,
		},
	}
}

// loadConfig reads a TOML config, filling anything unset with the
// defaults. An empty path means defaults only.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// mapping converts the configured map string and speed into the
// device's initial mapping.
func (c *Config) mapping() (device.Mapping, error) {
	m := c.Pointer.Map
	if len(m) != 4 {
		return device.Mapping{}, fmt.Errorf("config: pointer.map must be 4 characters, got %q", m)
	}
	return device.Mapping{
		Up:    m[0],
		Down:  m[1],
		Left:  m[2],
		Right: m[3],
		Speed: int32(c.Pointer.Speed),
	}, nil
}
