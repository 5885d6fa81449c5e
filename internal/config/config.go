package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	BaseURL        string
	RequestTimeout time.Duration // 0 means no timeout, matching the service's browser client
	StubListenAddr string

	// CLI conveniences, settable from a profile file.
	DefaultHotelID    int
	DefaultRoomTypeID int
}

// profile is the optional YAML file pointed to by RESERVAS_PROFILE.
type profile struct {
	BaseURL           string `yaml:"base_url"`
	TimeoutSeconds    int    `yaml:"timeout_seconds"`
	DefaultHotelID    int    `yaml:"default_hotel_id"`
	DefaultRoomTypeID int    `yaml:"default_room_type_id"`
}

// FromEnv builds the configuration from defaults, then the profile file if
// RESERVAS_PROFILE is set, then explicit environment variables.
func FromEnv() (Config, error) {
	cfg := Config{
		BaseURL:        "http://localhost:8080/api/reservas",
		StubListenAddr: ":8080",
	}

	if path := os.Getenv("RESERVAS_PROFILE"); path != "" {
		if err := cfg.applyProfile(path); err != nil {
			return Config{}, err
		}
	}

	if v := os.Getenv("RESERVAS_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("STUB_LISTEN_ADDR"); v != "" {
		cfg.StubListenAddr = v
	}
	if v := os.Getenv("RESERVAS_TIMEOUT_SECONDS"); v != "" {
		sec, err := strconv.Atoi(v)
		if err != nil || sec < 0 {
			return Config{}, fmt.Errorf("invalid RESERVAS_TIMEOUT_SECONDS")
		}
		cfg.RequestTimeout = time.Duration(sec) * time.Second
	}

	return cfg, nil
}

func (c *Config) applyProfile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read profile: %w", err)
	}
	var p profile
	if err := yaml.Unmarshal(b, &p); err != nil {
		return fmt.Errorf("parse profile %s: %w", path, err)
	}
	if p.BaseURL != "" {
		c.BaseURL = p.BaseURL
	}
	if p.TimeoutSeconds > 0 {
		c.RequestTimeout = time.Duration(p.TimeoutSeconds) * time.Second
	}
	if p.DefaultHotelID > 0 {
		c.DefaultHotelID = p.DefaultHotelID
	}
	if p.DefaultRoomTypeID > 0 {
		c.DefaultRoomTypeID = p.DefaultRoomTypeID
	}
	return nil
}
