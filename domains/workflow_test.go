package domains_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"bns-tui/domains"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRegistry is an in-memory Registry. The fail* fields inject errors.
type memRegistry struct {
	account common.Address
	names   []string
	owners  map[string]common.Address
	records map[string]string
	paid    map[string]*big.Int
	txs     int

	failRegister   error
	revertRegister bool
	failSetRecord  error
	failList       error
}

func newMemRegistry(account common.Address) *memRegistry {
	return &memRegistry{
		account: account,
		owners:  make(map[string]common.Address),
		records: make(map[string]string),
		paid:    make(map[string]*big.Int),
	}
}

func (r *memRegistry) receipt(status uint64) *types.Receipt {
	r.txs++
	return &types.Receipt{Status: status, TxHash: common.BigToHash(big.NewInt(int64(r.txs)))}
}

func (r *memRegistry) Register(_ context.Context, name string, value *big.Int) (*types.Receipt, error) {
	if r.failRegister != nil {
		return nil, r.failRegister
	}
	if r.revertRegister {
		return r.receipt(types.ReceiptStatusFailed), nil
	}
	r.names = append(r.names, name)
	r.owners[name] = r.account
	r.paid[name] = value
	return r.receipt(types.ReceiptStatusSuccessful), nil
}

func (r *memRegistry) SetRecord(_ context.Context, name, record string) (*types.Receipt, error) {
	if r.failSetRecord != nil {
		return nil, r.failSetRecord
	}
	if r.owners[name] != r.account {
		return r.receipt(types.ReceiptStatusFailed), nil
	}
	r.records[name] = record
	return r.receipt(types.ReceiptStatusSuccessful), nil
}

func (r *memRegistry) GetAllNames(context.Context) ([]string, error) {
	if r.failList != nil {
		return nil, r.failList
	}
	return append([]string(nil), r.names...), nil
}

func (r *memRegistry) GetRecord(_ context.Context, name string) (string, error) {
	return r.records[name], nil
}

func (r *memRegistry) GetAddress(_ context.Context, name string) (common.Address, error) {
	return r.owners[name], nil
}

var alice = common.HexToAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")

func TestMintRegistersThenSetsRecord(t *testing.T) {
	reg := newMemRegistry(alice)

	res, err := domains.MintDomain(context.Background(), reg, domains.Draft{Name: "ezio", Record: "Nothing is true"})
	require.NoError(t, err)

	assert.Equal(t, "ezio", res.Name)
	assert.Equal(t, "0.03", res.Price.String())
	assert.Equal(t, domains.PriceWei("ezio").String(), reg.paid["ezio"].String())
	assert.NotEqual(t, res.RegisterTx, res.RecordTx)
	assert.Equal(t, "Nothing is true", reg.records["ezio"])
}

func TestMintRejectsEmptyName(t *testing.T) {
	reg := newMemRegistry(alice)

	_, err := domains.MintDomain(context.Background(), reg, domains.Draft{Record: "orphan"})
	assert.ErrorIs(t, err, domains.ErrEmptyName)
	assert.Zero(t, reg.txs, "nothing may be submitted")
}

func TestMintRevertedRegistration(t *testing.T) {
	reg := newMemRegistry(alice)
	reg.revertRegister = true

	_, err := domains.MintDomain(context.Background(), reg, domains.Draft{Name: "ezio", Record: "x"})
	assert.ErrorIs(t, err, domains.ErrRegistrationFailed)
	assert.Empty(t, reg.records, "record must not be set after a failed registration")
}

func TestMintRecordFailureLeavesDomainMinted(t *testing.T) {
	reg := newMemRegistry(alice)
	reg.failSetRecord = errors.New("user rejected transaction")

	res, err := domains.MintDomain(context.Background(), reg, domains.Draft{Name: "altair", Record: "x"})

	var recErr *domains.RecordError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, "altair", recErr.Name)
	assert.ErrorIs(t, err, reg.failSetRecord)
	assert.NotEqual(t, common.Hash{}, res.RegisterTx)
	assert.Equal(t, []string{"altair"}, reg.names)
}

func TestUpdateOnlySetsRecord(t *testing.T) {
	reg := newMemRegistry(alice)
	_, err := domains.MintDomain(context.Background(), reg, domains.Draft{Name: "ezio", Record: "old"})
	require.NoError(t, err)
	paid := len(reg.paid)

	_, err = domains.Update(context.Background(), reg, domains.Draft{Name: "ezio", Record: "new", Editing: true})
	require.NoError(t, err)
	assert.Equal(t, "new", reg.records["ezio"])
	assert.Equal(t, paid, len(reg.paid), "update must not pay")
}

func TestUpdateRequiresNameAndRecord(t *testing.T) {
	reg := newMemRegistry(alice)

	_, err := domains.Update(context.Background(), reg, domains.Draft{Name: "ezio"})
	assert.ErrorIs(t, err, domains.ErrEmptyRecord)
	_, err = domains.Update(context.Background(), reg, domains.Draft{Record: "x"})
	assert.ErrorIs(t, err, domains.ErrEmptyName)
	assert.Zero(t, reg.txs)
}

func TestUpdateNotOwnerReverts(t *testing.T) {
	reg := newMemRegistry(alice)
	reg.owners["ezio"] = common.HexToAddress("0x01")

	_, err := domains.Update(context.Background(), reg, domains.Draft{Name: "ezio", Record: "mine now"})
	assert.ErrorIs(t, err, domains.ErrReverted)
}

func TestFetchMintsRebuildsListing(t *testing.T) {
	reg := newMemRegistry(alice)
	ctx := context.Background()
	for _, d := range []domains.Draft{{Name: "ezio", Record: "a"}, {Name: "amunet", Record: "b"}} {
		_, err := domains.MintDomain(ctx, reg, d)
		require.NoError(t, err)
	}

	mints, err := domains.FetchMints(ctx, reg)
	require.NoError(t, err)
	assert.Equal(t, []domains.Mint{
		{ID: 0, Name: "ezio", Record: "a", Owner: alice},
		{ID: 1, Name: "amunet", Record: "b", Owner: alice},
	}, mints)
}

func TestFetchMintsPropagatesErrors(t *testing.T) {
	reg := newMemRegistry(alice)
	reg.failList = errors.New("boom")

	_, err := domains.FetchMints(context.Background(), reg)
	assert.ErrorIs(t, err, reg.failList)
}
