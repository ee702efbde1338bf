package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/defistate/magicswap-client-go/chains"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
chain:
  chainId: 42161
  router: "0x00000000000000000000000000000000000000aa"
  wrappedNative: "0x82aF49447D8a07e3bd95BD0d56f35241523fBab1"
router:
  maxHops: 2
  maxPaths: 3
poolsFile: pools.json
slippage: "0.01"
deadlineWindow: 10m
logLevel: debug
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(validYAML))
	require.NoError(t, err)

	assert.Equal(t, chains.Arbitrum, cfg.Chain.ChainID)
	assert.Equal(t, common.HexToAddress("0xaa"), cfg.Chain.Router)
	assert.Equal(t, common.HexToAddress("0x82aF49447D8a07e3bd95BD0d56f35241523fBab1"), cfg.Chain.WrappedNative)
	assert.Equal(t, "ETH", cfg.Chain.NativeSymbol)
	assert.Equal(t, 2, cfg.Router.MaxHops)
	assert.Equal(t, 3, cfg.Router.MaxPaths)
	assert.Equal(t, "pools.json", cfg.PoolsFile)
	assert.Equal(t, 10*time.Minute, cfg.DeadlineWindow)
	assert.Equal(t, "debug", cfg.LogLevel)

	s, err := cfg.SlippageTolerance()
	require.NoError(t, err)
	assert.Equal(t, "0.01", s.String())
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(`
chain:
  chainId: 42161
  router: "0x00000000000000000000000000000000000000aa"
  wrappedNative: "0x82aF49447D8a07e3bd95BD0d56f35241523fBab1"
`))
	require.NoError(t, err)
	assert.Equal(t, DefaultSlippage, cfg.Slippage)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

func TestParse_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{name: "malformed yaml", yaml: "chain: [1"},
		{name: "missing router", yaml: "chain:\n  chainId: 1\n  wrappedNative: \"0x82aF49447D8a07e3bd95BD0d56f35241523fBab1\"\n"},
		{name: "slippage out of range", yaml: strings.Replace(validYAML, `slippage: "0.01"`, `slippage: "1.5"`, 1)},
		{name: "malformed slippage", yaml: strings.Replace(validYAML, `slippage: "0.01"`, `slippage: "lots"`, 1)},
		{name: "unknown log level", yaml: strings.Replace(validYAML, "logLevel: debug", "logLevel: loud", 1)},
		{name: "negative router option", yaml: strings.Replace(validYAML, "maxHops: 2", "maxHops: -1", 1)},
		{name: "negative deadline window", yaml: strings.Replace(validYAML, "deadlineWindow: 10m", "deadlineWindow: -1m", 1)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validYAML), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "pools.json", cfg.PoolsFile)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
