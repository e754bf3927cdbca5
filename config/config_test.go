package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreateWritesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")

	cfg := LoadOrCreate(path)
	assert.Equal(t, ContractAddress, cfg.Contract)
	assert.Equal(t, TLD, cfg.TLD)

	_, err := os.Stat(path)
	require.NoError(t, err, "default config should be written to disk")
}

func TestSaveLoadKeepsNetworks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")

	cfg := DefaultConfig()
	cfg.Networks = append(cfg.Networks, Mumbai)
	cfg.ActiveChain = Mumbai.ChainID
	cfg.Authorized = true
	require.NoError(t, Save(path, cfg))

	got := Load(path)
	n, ok := got.FindNetwork("0x13881")
	require.True(t, ok)
	assert.Equal(t, Mumbai, n)
	assert.True(t, got.Authorized)
}

func TestLoadOrCreateFillsMissingContract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"logger": true}`), 0600))

	cfg := LoadOrCreate(path)
	assert.True(t, cfg.Logger)
	assert.Equal(t, ContractAddress, cfg.Contract)
	assert.Equal(t, TLD, cfg.TLD)
}

func TestNetworkName(t *testing.T) {
	assert.Equal(t, "Polygon Mumbai Testnet", NetworkName("0x13881"))
	assert.Equal(t, "AVAX Mainnet", NetworkName("0xA86A"))
	assert.Equal(t, "", NetworkName("0xdead"))
}
