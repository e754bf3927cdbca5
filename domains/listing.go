package domains

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Mint is a snapshot of one registered domain
type Mint struct {
	ID     int // position in getAllNames, used as the token id
	Name   string
	Record string
	Owner  common.Address
}

// FetchMints rebuilds the full listing from the contract. Each name costs
// two further calls, issued one after another.
func FetchMints(ctx context.Context, reg Registry) ([]Mint, error) {
	names, err := reg.GetAllNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list names: %w", err)
	}

	mints := make([]Mint, 0, len(names))
	for i, name := range names {
		record, err := reg.GetRecord(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("record of %s: %w", name, err)
		}
		owner, err := reg.GetAddress(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("owner of %s: %w", name, err)
		}
		mints = append(mints, Mint{ID: i, Name: name, Record: record, Owner: owner})
	}
	return mints, nil
}
