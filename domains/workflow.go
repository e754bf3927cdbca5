package domains

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName          = errors.New("domain name is empty")
	ErrEmptyRecord        = errors.New("record is empty")
	ErrRegistrationFailed = errors.New("registration transaction failed")
)

// RecordError reports a mint whose follow-up setRecord failed.
// The domain exists on chain without the intended record.
type RecordError struct {
	Name string
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("domain %s minted but record not set: %v", e.Name, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// MintResult describes a finished mint
type MintResult struct {
	Name       string
	Price      decimal.Decimal
	RegisterTx common.Hash
	RecordTx   common.Hash
}

// MintDomain registers d.Name paying Price(d.Name), then sets its record.
// The two writes are not atomic.
func MintDomain(ctx context.Context, reg Registry, d Draft) (MintResult, error) {
	if err := d.ValidateMint(); err != nil {
		return MintResult{}, err
	}
	res := MintResult{Name: d.Name, Price: Price(d.Name)}

	receipt, err := reg.Register(ctx, d.Name, PriceWei(d.Name))
	if err != nil {
		return res, fmt.Errorf("register %s: %w", d.Name, err)
	}
	res.RegisterTx = receipt.TxHash
	if receipt.Status != types.ReceiptStatusSuccessful {
		return res, ErrRegistrationFailed
	}

	receipt, err = reg.SetRecord(ctx, d.Name, d.Record)
	if err == nil {
		err = RequireSuccess(receipt)
	}
	if err != nil {
		return res, &RecordError{Name: d.Name, Err: err}
	}
	res.RecordTx = receipt.TxHash
	return res, nil
}

// Update sets the record of an already owned domain. No payment is made.
func Update(ctx context.Context, reg Registry, d Draft) (common.Hash, error) {
	if err := d.ValidateUpdate(); err != nil {
		return common.Hash{}, err
	}
	receipt, err := reg.SetRecord(ctx, d.Name, d.Record)
	if err != nil {
		return common.Hash{}, fmt.Errorf("set record for %s: %w", d.Name, err)
	}
	if err := RequireSuccess(receipt); err != nil {
		return receipt.TxHash, fmt.Errorf("set record for %s: %w", d.Name, err)
	}
	return receipt.TxHash, nil
}
