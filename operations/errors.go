package operations

import "errors"

var (
	// ErrInvalidSlippage is returned when a slippage tolerance is outside [0, 1].
	ErrInvalidSlippage = errors.New("slippage must be between 0 and 1")
	// ErrInvalidNFT is returned when an NFT selection does not fit its vault.
	ErrInvalidNFT = errors.New("invalid NFT selection")
	// ErrSplitRoute is returned for routes spread over more than one path; one router
	// call executes exactly one path.
	ErrSplitRoute = errors.New("route is split across several paths")
)
