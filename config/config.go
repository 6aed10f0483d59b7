package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	baseCfgPath = "sciencenews/config.toml"

	DefaultFeedURL    = "https://feeds.bbci.co.uk/news/science_and_environment/rss.xml"
	DefaultListenAddr = "0.0.0.0:7860"
	DefaultTitle      = "BBC Science & Environment News"
)

type Config struct {
	FeedURL        string `toml:"feed_url"`
	ListenAddr     string `toml:"listen_addr"`
	Title          string `toml:"title"`
	UserAgent      string `toml:"user_agent"`              // Empty keeps the gofeed default
	RequestTimeout int    `toml:"request_timeout_seconds"` // 0 = no timeout
	Items          Items  `toml:"items"`
}

// Items bounds the number of news items a request may ask for
type Items struct {
	Default int `toml:"default"`
	Min     int `toml:"min"`
	Max     int `toml:"max"`
}

// Clamp forces n into [Min, Max]
func (i Items) Clamp(n int) int {
	if n < i.Min {
		return i.Min
	}
	if n > i.Max {
		return i.Max
	}
	return n
}

// Timeout returns the per-fetch timeout, zero when unset
func (c Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

func (c Config) Validate() error {
	var errs []error
	if c.FeedURL == "" {
		errs = append(errs, errors.New("feed_url must be set"))
	}
	if c.ListenAddr == "" {
		errs = append(errs, errors.New("listen_addr must be set"))
	}
	if c.RequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("request_timeout_seconds must not be negative, got %d", c.RequestTimeout))
	}
	if c.Items.Min < 1 {
		errs = append(errs, fmt.Errorf("items.min must be at least 1, got %d", c.Items.Min))
	}
	if c.Items.Max < c.Items.Min {
		errs = append(errs, fmt.Errorf("items.max (%d) must not be below items.min (%d)", c.Items.Max, c.Items.Min))
	}
	if c.Items.Default < c.Items.Min || c.Items.Default > c.Items.Max {
		errs = append(errs, fmt.Errorf("items.default (%d) must be within [%d, %d]", c.Items.Default, c.Items.Min, c.Items.Max))
	}
	return errors.Join(errs...)
}

func Read(path string) (Config, error) {
	conf := Default()
	dat, err := os.ReadFile(path)
	if err != nil {
		return conf, err
	}
	_, err = toml.Decode(string(dat), &conf)
	if err != nil {
		return conf, fmt.Errorf("failed to decode config at %s with %w", path, err)
	}
	if err := conf.Validate(); err != nil {
		return conf, fmt.Errorf("invalid config at %s: %w", path, err)
	}
	return conf, nil
}

func Write(cfgPath string, cfg Config) error {
	blob, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config with %w", err)
	}
	basePath := path.Dir(cfgPath)
	err = os.MkdirAll(basePath, os.ModePerm)
	if err != nil {
		return fmt.Errorf("failed to create base config directory at '%s' with %w", basePath, err)
	}
	err = os.WriteFile(cfgPath, blob, 0644)
	if err != nil {
		return fmt.Errorf("failed to write into config file at '%s' with %w", cfgPath, err)
	}
	slog.Info("config written", "at", cfgPath)
	return nil
}

func Default() Config {
	return Config{
		FeedURL:    DefaultFeedURL,
		ListenAddr: DefaultListenAddr,
		Title:      DefaultTitle,
		Items: Items{
			Default: 10,
			Min:     1,
			Max:     20,
		},
	}
}

func DefaultPath() string {
	var xdgHome = os.Getenv("XDG_CONFIG_HOME")
	if xdgHome != "" {
		return path.Join(xdgHome, baseCfgPath)
	}

	var home = os.Getenv("HOME")
	if home != "" {
		return path.Join(home, ".config", baseCfgPath)
	}

	panic("unclear where to search for the config file")
}
