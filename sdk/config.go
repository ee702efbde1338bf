package sdk

import (
	"errors"
	"fmt"
	"time"

	"github.com/defistate/magicswap-client-go/chains"
	"github.com/defistate/magicswap-client-go/router"
	"github.com/prometheus/client_golang/prometheus"
)

// Config holds all dependencies of an SDK instance.
type Config struct {
	Chain    chains.ChainConfig
	Logger   chains.Logger         // required
	Registry prometheus.Registerer // required
	Router   router.Options

	// Clock drives swap and liquidity deadlines and pool statistics. Defaults to time.Now.
	Clock func() time.Time
	// DeadlineWindow defaults to 30 minutes.
	DeadlineWindow time.Duration
}

func (c *Config) validate() error {
	if c == nil {
		return errors.New("config cannot be nil")
	}
	if c.Logger == nil {
		return errors.New("config: Logger cannot be nil")
	}
	if c.Registry == nil {
		return errors.New("config: Registry cannot be nil")
	}
	if err := c.Chain.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Router.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
