package domains_test

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"testing"

	"bns-tui/domains"
	"bns-tui/domains/domainstest"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mumbaiChainID = 80001

var registryAddr = common.HexToAddress("0xfFE93e0CF56402ddE5eE3f1fB96601367d9CbA9F")

func oneEther() *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
}

type account struct {
	key  *ecdsa.PrivateKey
	addr common.Address
	opts *bind.TransactOpts
}

func newAccount(t *testing.T, node *domainstest.Node) account {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	opts, err := bind.NewKeyedTransactorWithChainID(key, big.NewInt(mumbaiChainID))
	require.NoError(t, err)
	addr := crypto.PubkeyToAddress(key.PublicKey)
	node.Fund(addr, oneEther())
	return account{key: key, addr: addr, opts: opts}
}

func newChain(t *testing.T) (*domainstest.Node, *ethclient.Client) {
	t.Helper()
	node := domainstest.NewNode(mumbaiChainID)
	client := node.Client()
	t.Cleanup(func() {
		client.Close()
		node.Close()
	})
	return node, client
}

func TestGatewayMintAndList(t *testing.T) {
	node, client := newChain(t)
	owner := newAccount(t, node)
	user := newAccount(t, node)
	node.Install(registryAddr, owner.addr, "ac")

	ctx := context.Background()
	gw := domains.NewGateway(registryAddr, client, user.opts)

	res, err := domains.MintDomain(ctx, gw, domains.Draft{Name: "ezio", Record: "Nothing Is True, Everything Is Permitted."})
	require.NoError(t, err)
	assert.NotEqual(t, common.Hash{}, res.RecordTx)

	mints, err := domains.FetchMints(ctx, gw)
	require.NoError(t, err)
	require.Len(t, mints, 1)
	assert.Equal(t, "ezio", mints[0].Name)
	assert.Equal(t, user.addr, mints[0].Owner)
	assert.Equal(t, "Nothing Is True, Everything Is Permitted.", mints[0].Record)

	assert.Equal(t, domains.PriceWei("ezio").String(), node.BalanceOf(registryAddr).String())
}

func TestGatewayRecordRoundTrip(t *testing.T) {
	node, client := newChain(t)
	user := newAccount(t, node)
	node.Install(registryAddr, user.addr, "ac")

	ctx := context.Background()
	gw := domains.NewGateway(registryAddr, client, user.opts)

	receipt, err := gw.Register(ctx, "altair", domains.PriceWei("altair"))
	require.NoError(t, err)
	require.Equal(t, types.ReceiptStatusSuccessful, receipt.Status)

	text := "  Laa shay'a waqi'un mutlaq bale kouloun moumkin.\n🗡"
	receipt, err = gw.SetRecord(ctx, "altair", text)
	require.NoError(t, err)
	require.NoError(t, domains.RequireSuccess(receipt))

	got, err := gw.GetRecord(ctx, "altair")
	require.NoError(t, err)
	assert.Equal(t, text, got)
}

func TestGatewayUnderpaidRegisterFails(t *testing.T) {
	node, client := newChain(t)
	user := newAccount(t, node)
	node.Install(registryAddr, user.addr, "ac")

	gw := domains.NewGateway(registryAddr, client, user.opts)
	_, err := gw.Register(context.Background(), "ezi", domains.PriceWei("ezio"))
	assert.Error(t, err, "0.03 does not cover a three letter name")
	assert.Empty(t, node.Names(registryAddr))
}

func TestGatewayWithdrawOwnerOnly(t *testing.T) {
	node, client := newChain(t)
	owner := newAccount(t, node)
	thief := newAccount(t, node)
	node.Install(registryAddr, owner.addr, "ac")

	ctx := context.Background()
	_, err := domains.NewGateway(registryAddr, client, thief.opts).Register(ctx, "ezio", domains.PriceWei("ezio"))
	require.NoError(t, err)
	held := node.BalanceOf(registryAddr)
	require.Positive(t, held.Sign())

	_, err = domains.NewGateway(registryAddr, client, thief.opts).Withdraw(ctx)
	assert.Error(t, err)
	assert.Equal(t, held.String(), node.BalanceOf(registryAddr).String())

	before := node.BalanceOf(owner.addr)
	receipt, err := domains.NewGateway(registryAddr, client, owner.opts).Withdraw(ctx)
	require.NoError(t, err)
	require.NoError(t, domains.RequireSuccess(receipt))

	assert.Zero(t, node.BalanceOf(registryAddr).Sign())
	assert.Equal(t, new(big.Int).Add(before, held).String(), node.BalanceOf(owner.addr).String())
}

func TestGatewayReadOnlyCannotWrite(t *testing.T) {
	_, client := newChain(t)
	gw := domains.NewGateway(registryAddr, client, nil)

	_, err := gw.SetRecord(context.Background(), "ezio", "x")
	assert.ErrorIs(t, err, domains.ErrNoSigner)
}

func TestGatewayOwnerAndPrice(t *testing.T) {
	node, client := newChain(t)
	owner := newAccount(t, node)
	node.Install(registryAddr, owner.addr, "ac")

	ctx := context.Background()
	gw := domains.NewGateway(registryAddr, client, nil)

	got, err := gw.Owner(ctx)
	require.NoError(t, err)
	assert.Equal(t, owner.addr, got)

	price, err := gw.Price(ctx, "ezi")
	require.NoError(t, err)
	assert.Equal(t, "50000000000000000", price.String())
}

func TestDeployFromArtifact(t *testing.T) {
	node, client := newChain(t)
	owner := newAccount(t, node)

	code := []byte{0x60, 0x80, 0x60, 0x40, 0x52}
	node.SetBytecode(code)
	art, err := domains.ParseArtifact([]byte(`{
		"contractName": "Domains",
		"abi": ` + domains.DomainsABI + `,
		"bytecode": "` + hexutil.Encode(code) + `"
	}`))
	require.NoError(t, err)
	assert.Equal(t, "Domains", art.ContractName)

	ctx := context.Background()
	gw, receipt, err := domains.Deploy(ctx, owner.opts, client, art, "ac")
	require.NoError(t, err)
	assert.Equal(t, receipt.ContractAddress, gw.Address())

	got, err := gw.Owner(ctx)
	require.NoError(t, err)
	assert.Equal(t, owner.addr, got)
}

func TestParseArtifactErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{abi`},
		{"missing abi", `{"bytecode":"0x6080"}`},
		{"missing bytecode", `{"abi":[]}`},
		{"bad bytecode", `{"abi":[],"bytecode":"0xzz"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domains.ParseArtifact([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}
