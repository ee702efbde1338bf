package magicswap

import "errors"

// Error kinds surfaced by the routing and operation builders. Callers map them with errors.Is.
var (
	// ErrTokenNotFound is returned when a requested token appears in none of the supplied pools.
	ErrTokenNotFound = errors.New("token not found")
	// ErrUnsupportedSwapShape is returned for swap shapes the router cannot execute, such as NFT to NFT.
	ErrUnsupportedSwapShape = errors.New("unsupported swap shape")
	// ErrInvalidAmount is returned when a zero, negative or nil amount is passed where a positive one is required.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrArithmeticOverflow is returned when a value does not fit the contract's uint256 arguments.
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
	// ErrInsufficientLiquidity is returned when the pools cannot deliver the requested output.
	ErrInsufficientLiquidity = errors.New("insufficient liquidity")
	// ErrIdenticalTokens is returned when the input and output tokens are the same.
	ErrIdenticalTokens = errors.New("identical tokens")
	// ErrInvalidPool is returned when a raw pool record cannot be turned into a Pool.
	ErrInvalidPool = errors.New("invalid pool")
	// ErrFeeMismatch is returned when the fee components do not add up to the total fee.
	ErrFeeMismatch = errors.New("fee components do not sum to total fee")
)
