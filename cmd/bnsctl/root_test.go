package main

import (
	"math/big"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	l, err := newLogger("debug")
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, l.GetLevel())

	_, err = newLogger("loud")
	assert.Error(t, err)
}

func TestTransactor(t *testing.T) {
	_, err := transactor("  ", big.NewInt(31337))
	assert.Error(t, err)

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	opts, err := transactor(common.Bytes2Hex(crypto.FromECDSA(key)), big.NewInt(31337))
	require.NoError(t, err)
	assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey), opts.From)
}

func TestDeployUnreachableNode(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"deploy", "--rpc", "http://127.0.0.1:1", "--log-level", "error", "--timeout", "2s"})
	assert.Error(t, cmd.Execute())
}

func TestRunUnreachableNode(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"run", "--rpc", "http://127.0.0.1:1", "--log-level", "error", "--timeout", "2s"})
	assert.Error(t, cmd.Execute())
}
