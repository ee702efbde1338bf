package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/defistate/magicswap-client-go/chains"
	"github.com/defistate/magicswap-client-go/router"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config is the CLI configuration file.
type Config struct {
	Chain  chains.ChainConfig `yaml:"chain"`
	Router router.Options     `yaml:"router"`

	// PoolsFile is a JSON array of raw indexer pair records.
	PoolsFile string `yaml:"poolsFile"`

	// Slippage is the default tolerance, a fraction such as "0.005".
	Slippage       string        `yaml:"slippage"`
	DeadlineWindow time.Duration `yaml:"deadlineWindow"`
	LogLevel       string        `yaml:"logLevel"`
}

const (
	DefaultSlippage = "0.005"
	DefaultLogLevel = "info"
)

// LoadConfig reads, defaults and validates a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML configuration.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Slippage == "" {
		c.Slippage = DefaultSlippage
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Chain.NativeSymbol == "" {
		c.Chain.NativeName, c.Chain.NativeSymbol, c.Chain.NativeDecimals = "Ether", "ETH", 18
	}
}

// Validate checks every field the commands rely on.
func (c *Config) Validate() error {
	if err := c.Chain.Validate(); err != nil {
		return err
	}
	if err := c.Router.Validate(); err != nil {
		return err
	}
	if _, err := c.SlippageTolerance(); err != nil {
		return err
	}
	if c.DeadlineWindow < 0 {
		return errors.New("config: deadlineWindow cannot be negative")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown logLevel %q", c.LogLevel)
	}
	return nil
}

// SlippageTolerance parses Slippage.
func (c *Config) SlippageTolerance() (decimal.Decimal, error) {
	s, err := decimal.NewFromString(c.Slippage)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("config: slippage %q: %w", c.Slippage, err)
	}
	if s.IsNegative() || s.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.Decimal{}, fmt.Errorf("config: slippage %s must be between 0 and 1", s)
	}
	return s, nil
}
