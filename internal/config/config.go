package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the host configuration, read from a TOML file.
type Config struct {
	// Listen is the web host's listen address.
	Listen string
	// Advertise announces the web host over mDNS.
	Advertise bool
	Service   string

	// Canvas size for new blank sessions.
	Width  int
	Height int

	PageScale    float64
	HistoryLimit int
	// HistoryMB caps the undo memory of each session, in MiB.
	HistoryMB int
	// MaxSessions caps the live browser sessions; 0 means no cap.
	MaxSessions int
	Debug       bool
}

// HistoryBytes is HistoryMB in bytes.
func (c Config) HistoryBytes() int { return c.HistoryMB << 20 }

func Default() Config {
	return Config{
		Listen:       ":8888",
		Advertise:    true,
		Service:      "_localpaint._tcp",
		Width:        800,
		Height:       600,
		PageScale:    1.5,
		HistoryLimit: 500,
		HistoryMB:    256,
		MaxSessions:  16,
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	if _, err := toml.DecodeFile(path, &c); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return c, fmt.Errorf("failed to decode config file: %w", err)
	}
	return c, c.Validate()
}

// Parse decodes TOML text over the defaults.
func Parse(data string) (Config, error) {
	c := Default()
	if _, err := toml.Decode(data, &c); err != nil {
		return c, fmt.Errorf("failed to decode config: %w", err)
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("canvas size %dx%d must be positive", c.Width, c.Height)
	}
	if c.PageScale <= 0 {
		return fmt.Errorf("page scale %v must be positive", c.PageScale)
	}
	if c.HistoryMB < 0 || c.MaxSessions < 0 {
		return errors.New("history and session limits must not be negative")
	}
	if c.Listen == "" {
		return errors.New("listen address is empty")
	}
	return nil
}

// Reference config
//
//	Listen = ":8888"
//	Advertise = true
//	Service = "_localpaint._tcp"
//	Width = 800
//	Height = 600
//	PageScale = 1.5
//	HistoryLimit = 500
//	HistoryMB = 256
//	MaxSessions = 16
//	Debug = false
