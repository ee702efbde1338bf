package operations

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Router entry points.
const (
	MethodSwapNftsForTokens        = "swapNftsForTokens"
	MethodSwapNftsForEth           = "swapNftsForEth"
	MethodSwapTokensForNfts        = "swapTokensForNfts"
	MethodSwapEthForNfts           = "swapEthForNfts"
	MethodSwapExactTokensForTokens = "swapExactTokensForTokens"
	MethodSwapTokensForExactTokens = "swapTokensForExactTokens"
	MethodSwapExactEthForTokens    = "swapExactEthForTokens"
	MethodSwapEthForExactTokens    = "swapEthForExactTokens"
	MethodSwapExactTokensForEth    = "swapExactTokensForEth"
	MethodSwapTokensForExactEth    = "swapTokensForExactEth"

	MethodAddLiquidity          = "addLiquidity"
	MethodAddLiquidityETH       = "addLiquidityETH"
	MethodAddLiquidityNFT       = "addLiquidityNFT"
	MethodAddLiquidityNFTETH    = "addLiquidityNFTETH"
	MethodAddLiquidityNFTNFT    = "addLiquidityNFTNFT"
	MethodRemoveLiquidity       = "removeLiquidity"
	MethodRemoveLiquidityETH    = "removeLiquidityETH"
	MethodRemoveLiquidityNFT    = "removeLiquidityNFT"
	MethodRemoveLiquidityNFTETH = "removeLiquidityNFTETH"
	MethodRemoveLiquidityNFTNFT = "removeLiquidityNFTNFT"
)

// Descriptor describes one router call: which entry point, with which arguments, and
// how much native currency to attach. The set of implementations is closed.
type Descriptor interface {
	Method() string
	Target() common.Address
	Value() *big.Int
	// Args returns the call arguments in ABI order.
	Args() []any

	isDescriptor()
}

// Call is the part every descriptor shares.
type Call struct {
	To        common.Address `json:"to"`
	CallValue *big.Int       `json:"value,omitempty"`
}

func (c Call) Target() common.Address { return c.To }

// Value is never nil.
func (c Call) Value() *big.Int {
	if c.CallValue == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(c.CallValue)
}

func (Call) isDescriptor() {}

// VaultData is the router's NFT vault argument. Collection, TokenId and Amount are
// parallel arrays with one entry per selected NFT.
type VaultData struct {
	Token      common.Address   `json:"token"`
	Collection []common.Address `json:"collection"`
	TokenId    []*big.Int       `json:"tokenId"`
	Amount     []*big.Int       `json:"amount"`
}

// NFTArrays are the parallel arrays a swap sends for NFT units.
type NFTArrays struct {
	Collection []common.Address `json:"collection"`
	TokenID    []*big.Int       `json:"tokenId"`
	Quantity   []*big.Int       `json:"quantity"`
}

// SwapRoute holds the arguments common to every swap.
type SwapRoute struct {
	Path      []common.Address `json:"path"`
	Recipient common.Address   `json:"to"`
	Deadline  *big.Int         `json:"deadline"`
}

type SwapNftsForTokens struct {
	Call
	NFTArrays
	AmountOutMin *big.Int `json:"amountOutMin"`
	SwapRoute
}

func (SwapNftsForTokens) Method() string { return MethodSwapNftsForTokens }
func (d SwapNftsForTokens) Args() []any {
	return []any{d.Collection, d.TokenID, d.Quantity, d.AmountOutMin, d.Path, d.Recipient, d.Deadline}
}

type SwapNftsForEth struct {
	Call
	NFTArrays
	AmountOutMin *big.Int `json:"amountOutMin"`
	SwapRoute
}

func (SwapNftsForEth) Method() string { return MethodSwapNftsForEth }
func (d SwapNftsForEth) Args() []any {
	return []any{d.Collection, d.TokenID, d.Quantity, d.AmountOutMin, d.Path, d.Recipient, d.Deadline}
}

type SwapTokensForNfts struct {
	Call
	NFTArrays
	AmountInMax *big.Int `json:"amountInMax"`
	SwapRoute
}

func (SwapTokensForNfts) Method() string { return MethodSwapTokensForNfts }
func (d SwapTokensForNfts) Args() []any {
	return []any{d.Collection, d.TokenID, d.Quantity, d.AmountInMax, d.Path, d.Recipient, d.Deadline}
}

// SwapEthForNfts sends its maximum input as call value.
type SwapEthForNfts struct {
	Call
	NFTArrays
	SwapRoute
}

func (SwapEthForNfts) Method() string { return MethodSwapEthForNfts }
func (d SwapEthForNfts) Args() []any {
	return []any{d.Collection, d.TokenID, d.Quantity, d.Path, d.Recipient, d.Deadline}
}

type SwapExactTokensForTokens struct {
	Call
	AmountIn     *big.Int `json:"amountIn"`
	AmountOutMin *big.Int `json:"amountOutMin"`
	SwapRoute
}

func (SwapExactTokensForTokens) Method() string { return MethodSwapExactTokensForTokens }
func (d SwapExactTokensForTokens) Args() []any {
	return []any{d.AmountIn, d.AmountOutMin, d.Path, d.Recipient, d.Deadline}
}

type SwapTokensForExactTokens struct {
	Call
	AmountOut   *big.Int `json:"amountOut"`
	AmountInMax *big.Int `json:"amountInMax"`
	SwapRoute
}

func (SwapTokensForExactTokens) Method() string { return MethodSwapTokensForExactTokens }
func (d SwapTokensForExactTokens) Args() []any {
	return []any{d.AmountOut, d.AmountInMax, d.Path, d.Recipient, d.Deadline}
}

// SwapExactEthForTokens sends its input as call value.
type SwapExactEthForTokens struct {
	Call
	AmountOutMin *big.Int `json:"amountOutMin"`
	SwapRoute
}

func (SwapExactEthForTokens) Method() string { return MethodSwapExactEthForTokens }
func (d SwapExactEthForTokens) Args() []any {
	return []any{d.AmountOutMin, d.Path, d.Recipient, d.Deadline}
}

// SwapEthForExactTokens sends its maximum input as call value.
type SwapEthForExactTokens struct {
	Call
	AmountOut *big.Int `json:"amountOut"`
	SwapRoute
}

func (SwapEthForExactTokens) Method() string { return MethodSwapEthForExactTokens }
func (d SwapEthForExactTokens) Args() []any {
	return []any{d.AmountOut, d.Path, d.Recipient, d.Deadline}
}

type SwapExactTokensForEth struct {
	Call
	AmountIn     *big.Int `json:"amountIn"`
	AmountOutMin *big.Int `json:"amountOutMin"`
	SwapRoute
}

func (SwapExactTokensForEth) Method() string { return MethodSwapExactTokensForEth }
func (d SwapExactTokensForEth) Args() []any {
	return []any{d.AmountIn, d.AmountOutMin, d.Path, d.Recipient, d.Deadline}
}

type SwapTokensForExactEth struct {
	Call
	AmountOut   *big.Int `json:"amountOut"`
	AmountInMax *big.Int `json:"amountInMax"`
	SwapRoute
}

func (SwapTokensForExactEth) Method() string { return MethodSwapTokensForExactEth }
func (d SwapTokensForExactEth) Args() []any {
	return []any{d.AmountOut, d.AmountInMax, d.Path, d.Recipient, d.Deadline}
}

type AddLiquidity struct {
	Call
	TokenA         common.Address `json:"tokenA"`
	TokenB         common.Address `json:"tokenB"`
	AmountADesired *big.Int       `json:"amountADesired"`
	AmountBDesired *big.Int       `json:"amountBDesired"`
	AmountAMin     *big.Int       `json:"amountAMin"`
	AmountBMin     *big.Int       `json:"amountBMin"`
	Recipient      common.Address `json:"to"`
	Deadline       *big.Int       `json:"deadline"`
}

func (AddLiquidity) Method() string { return MethodAddLiquidity }
func (d AddLiquidity) Args() []any {
	return []any{d.TokenA, d.TokenB, d.AmountADesired, d.AmountBDesired, d.AmountAMin, d.AmountBMin, d.Recipient, d.Deadline}
}

// AddLiquidityETH sends the desired native amount as call value.
type AddLiquidityETH struct {
	Call
	Token              common.Address `json:"token"`
	AmountTokenDesired *big.Int       `json:"amountTokenDesired"`
	AmountTokenMin     *big.Int       `json:"amountTokenMin"`
	AmountETHMin       *big.Int       `json:"amountETHMin"`
	Recipient          common.Address `json:"to"`
	Deadline           *big.Int       `json:"deadline"`
}

func (AddLiquidityETH) Method() string { return MethodAddLiquidityETH }
func (d AddLiquidityETH) Args() []any {
	return []any{d.Token, d.AmountTokenDesired, d.AmountTokenMin, d.AmountETHMin, d.Recipient, d.Deadline}
}

type AddLiquidityNFT struct {
	Call
	Vault          VaultData      `json:"vault"`
	TokenB         common.Address `json:"tokenB"`
	AmountBDesired *big.Int       `json:"amountBDesired"`
	AmountBMin     *big.Int       `json:"amountBMin"`
	Recipient      common.Address `json:"to"`
	Deadline       *big.Int       `json:"deadline"`
}

func (AddLiquidityNFT) Method() string { return MethodAddLiquidityNFT }
func (d AddLiquidityNFT) Args() []any {
	return []any{d.Vault, d.TokenB, d.AmountBDesired, d.AmountBMin, d.Recipient, d.Deadline}
}

// AddLiquidityNFTETH sends the desired native amount as call value.
type AddLiquidityNFTETH struct {
	Call
	Vault        VaultData      `json:"vault"`
	AmountETHMin *big.Int       `json:"amountETHMin"`
	Recipient    common.Address `json:"to"`
	Deadline     *big.Int       `json:"deadline"`
}

func (AddLiquidityNFTETH) Method() string { return MethodAddLiquidityNFTETH }
func (d AddLiquidityNFTETH) Args() []any {
	return []any{d.Vault, d.AmountETHMin, d.Recipient, d.Deadline}
}

type AddLiquidityNFTNFT struct {
	Call
	VaultA     VaultData      `json:"vaultA"`
	VaultB     VaultData      `json:"vaultB"`
	AmountAMin *big.Int       `json:"amountAMin"`
	AmountBMin *big.Int       `json:"amountBMin"`
	Recipient  common.Address `json:"to"`
	Deadline   *big.Int       `json:"deadline"`
}

func (AddLiquidityNFTNFT) Method() string { return MethodAddLiquidityNFTNFT }
func (d AddLiquidityNFTNFT) Args() []any {
	return []any{d.VaultA, d.VaultB, d.AmountAMin, d.AmountBMin, d.Recipient, d.Deadline}
}

type RemoveLiquidity struct {
	Call
	TokenA     common.Address `json:"tokenA"`
	TokenB     common.Address `json:"tokenB"`
	Liquidity  *big.Int       `json:"liquidity"`
	AmountAMin *big.Int       `json:"amountAMin"`
	AmountBMin *big.Int       `json:"amountBMin"`
	Recipient  common.Address `json:"to"`
	Deadline   *big.Int       `json:"deadline"`
}

func (RemoveLiquidity) Method() string { return MethodRemoveLiquidity }
func (d RemoveLiquidity) Args() []any {
	return []any{d.TokenA, d.TokenB, d.Liquidity, d.AmountAMin, d.AmountBMin, d.Recipient, d.Deadline}
}

type RemoveLiquidityETH struct {
	Call
	Token          common.Address `json:"token"`
	Liquidity      *big.Int       `json:"liquidity"`
	AmountTokenMin *big.Int       `json:"amountTokenMin"`
	AmountETHMin   *big.Int       `json:"amountETHMin"`
	Recipient      common.Address `json:"to"`
	Deadline       *big.Int       `json:"deadline"`
}

func (RemoveLiquidityETH) Method() string { return MethodRemoveLiquidityETH }
func (d RemoveLiquidityETH) Args() []any {
	return []any{d.Token, d.Liquidity, d.AmountTokenMin, d.AmountETHMin, d.Recipient, d.Deadline}
}

type RemoveLiquidityNFT struct {
	Call
	Vault        VaultData      `json:"vault"`
	TokenB       common.Address `json:"tokenB"`
	LPAmount     *big.Int       `json:"lpAmount"`
	AmountAMin   *big.Int       `json:"amountAMin"`
	AmountBMin   *big.Int       `json:"amountBMin"`
	Recipient    common.Address `json:"to"`
	Deadline     *big.Int       `json:"deadline"`
	SwapLeftover bool           `json:"swapLeftover"`
}

func (RemoveLiquidityNFT) Method() string { return MethodRemoveLiquidityNFT }
func (d RemoveLiquidityNFT) Args() []any {
	return []any{d.Vault, d.TokenB, d.LPAmount, d.AmountAMin, d.AmountBMin, d.Recipient, d.Deadline, d.SwapLeftover}
}

type RemoveLiquidityNFTETH struct {
	Call
	Vault          VaultData      `json:"vault"`
	LPAmount       *big.Int       `json:"lpAmount"`
	AmountTokenMin *big.Int       `json:"amountTokenMin"`
	AmountETHMin   *big.Int       `json:"amountETHMin"`
	Recipient      common.Address `json:"to"`
	Deadline       *big.Int       `json:"deadline"`
	SwapLeftover   bool           `json:"swapLeftover"`
}

func (RemoveLiquidityNFTETH) Method() string { return MethodRemoveLiquidityNFTETH }
func (d RemoveLiquidityNFTETH) Args() []any {
	return []any{d.Vault, d.LPAmount, d.AmountTokenMin, d.AmountETHMin, d.Recipient, d.Deadline, d.SwapLeftover}
}

type RemoveLiquidityNFTNFT struct {
	Call
	VaultA       VaultData      `json:"vaultA"`
	VaultB       VaultData      `json:"vaultB"`
	LPAmount     *big.Int       `json:"lpAmount"`
	AmountAMin   *big.Int       `json:"amountAMin"`
	AmountBMin   *big.Int       `json:"amountBMin"`
	Recipient    common.Address `json:"to"`
	Deadline     *big.Int       `json:"deadline"`
	SwapLeftover bool           `json:"swapLeftover"`
}

func (RemoveLiquidityNFTNFT) Method() string { return MethodRemoveLiquidityNFTNFT }
func (d RemoveLiquidityNFTNFT) Args() []any {
	return []any{d.VaultA, d.VaultB, d.LPAmount, d.AmountAMin, d.AmountBMin, d.Recipient, d.Deadline, d.SwapLeftover}
}
