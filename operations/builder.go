package operations

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/defistate/magicswap-client-go/chains"
	"github.com/defistate/magicswap-client-go/protocols/magicswap"
	"github.com/holiman/uint256"
)

// DefaultDeadlineWindow is how long an emitted call stays executable.
const DefaultDeadlineWindow = 30 * time.Minute

// Config holds the chain constants and clock the builder needs.
type Config struct {
	Chain chains.ChainConfig
	// Clock defaults to time.Now.
	Clock func() time.Time
	// DeadlineWindow defaults to DefaultDeadlineWindow.
	DeadlineWindow time.Duration
}

func (c *Config) validate() error {
	if c == nil {
		return errors.New("operations config cannot be nil")
	}
	if err := c.Chain.Validate(); err != nil {
		return err
	}
	if c.DeadlineWindow < 0 {
		return fmt.Errorf("deadline window cannot be negative, got %s", c.DeadlineWindow)
	}
	return nil
}

// Builder turns routes and pools into router call descriptors. It holds no mutable
// state and is safe for concurrent use.
type Builder struct {
	chain  chains.ChainConfig
	clock  func() time.Time
	window time.Duration
}

// NewBuilder creates an operation builder, returning an error if the config is invalid.
func NewBuilder(cfg *Config) (*Builder, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid operations config: %w", err)
	}
	b := &Builder{
		chain:  cfg.Chain,
		clock:  cfg.Clock,
		window: cfg.DeadlineWindow,
	}
	if b.clock == nil {
		b.clock = time.Now
	}
	if b.window == 0 {
		b.window = DefaultDeadlineWindow
	}
	return b, nil
}

// Chain returns the chain the builder targets.
func (b *Builder) Chain() chains.ChainConfig {
	return b.chain
}

func (b *Builder) deadline() *big.Int {
	return big.NewInt(b.clock().Add(b.window).Unix())
}

// finish rejects descriptors whose integers do not fit uint256.
func finish(d Descriptor) (Descriptor, error) {
	if err := checkUint256("value", d.Value()); err != nil {
		return nil, err
	}
	for i, arg := range d.Args() {
		if err := checkArg(fmt.Sprintf("%s argument %d", d.Method(), i), arg); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func checkArg(name string, arg any) error {
	switch v := arg.(type) {
	case *big.Int:
		return checkUint256(name, v)
	case []*big.Int:
		for _, n := range v {
			if err := checkUint256(name, n); err != nil {
				return err
			}
		}
	case VaultData:
		if len(v.Collection) != len(v.TokenId) || len(v.TokenId) != len(v.Amount) {
			return fmt.Errorf("%w: %s vault arrays differ in length", ErrInvalidNFT, name)
		}
		if err := checkArg(name, v.TokenId); err != nil {
			return err
		}
		return checkArg(name, v.Amount)
	}
	return nil
}

func checkUint256(name string, n *big.Int) error {
	if n == nil {
		return fmt.Errorf("%w: %s is nil", magicswap.ErrInvalidAmount, name)
	}
	if _, overflow := uint256.FromBig(n); overflow || n.Sign() < 0 {
		return fmt.Errorf("%w: %s %s does not fit uint256", magicswap.ErrArithmeticOverflow, name, n)
	}
	return nil
}

func orZero(n *big.Int) *big.Int {
	if n == nil {
		return new(big.Int)
	}
	return n
}
