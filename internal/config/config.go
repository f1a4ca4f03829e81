package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/danmuck/amqpsym/internal/amqp/encoding"
)

const (
	DefaultName            = "symd"
	DefaultAddr            = ":9300"
	DefaultMaxRequestBytes = 1 << 20
)

// SymdConfig is the on-disk configuration of the inspection daemon.
type SymdConfig struct {
	Name            string   `toml:"name"`
	Addr            string   `toml:"addr"`
	CorsOrigins     []string `toml:"cors_origins"`
	ASCIIPolicy     string   `toml:"ascii_policy"`
	MaxRequestBytes int64    `toml:"max_request_bytes"`
	LogLevel        string   `toml:"log_level"`
}

func DefaultSymdConfig() SymdConfig {
	return SymdConfig{
		Name:            DefaultName,
		Addr:            DefaultAddr,
		CorsOrigins:     []string{"http://localhost:3000"},
		ASCIIPolicy:     encoding.ASCIILegacy.String(),
		MaxRequestBytes: DefaultMaxRequestBytes,
		LogLevel:        "info",
	}
}

func LoadSymdConfig(path string) (SymdConfig, error) {
	var cfg SymdConfig
	if err := loadToml(path, &cfg); err != nil {
		return SymdConfig{}, err
	}
	return finishSymdConfig(cfg)
}

// ParseSymdConfig is LoadSymdConfig for in-memory documents.
func ParseSymdConfig(data []byte) (SymdConfig, error) {
	var cfg SymdConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return SymdConfig{}, fmt.Errorf("config parse failed: %w", err)
	}
	return finishSymdConfig(cfg)
}

func finishSymdConfig(cfg SymdConfig) (SymdConfig, error) {
	if strings.TrimSpace(cfg.Name) == "" {
		cfg.Name = DefaultName
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.MaxRequestBytes == 0 {
		cfg.MaxRequestBytes = DefaultMaxRequestBytes
	}
	if err := ValidateSymdConfig(cfg); err != nil {
		return SymdConfig{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateSymdConfig(cfg SymdConfig) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("symd config missing name")
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("symd config missing addr")
	}
	if _, err := encoding.ParseASCIIPolicy(cfg.ASCIIPolicy); err != nil {
		return fmt.Errorf("symd config ascii_policy: %w", err)
	}
	if cfg.MaxRequestBytes < 0 {
		return fmt.Errorf("symd config max_request_bytes must be positive")
	}
	for i, origin := range cfg.CorsOrigins {
		if strings.TrimSpace(origin) == "" {
			return fmt.Errorf("cors_origins[%d] is empty", i)
		}
	}
	return nil
}
