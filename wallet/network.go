package wallet

import (
	"context"
	"errors"
	"fmt"

	"bns-tui/config"
)

// OnRequiredNetwork reports whether the session is on the network the
// contract lives on. Networks are matched by name.
func OnRequiredNetwork(s Session, required config.Network) bool {
	return s.Network != "" && s.Network == required.Name
}

// SwitchNetwork points the wallet at required, adding the network first
// when the wallet does not know it.
func SwitchNetwork(ctx context.Context, p Provider, required config.Network) error {
	if p == nil {
		return ErrNoProvider
	}

	err := p.SwitchChain(ctx, required.ChainID)
	if err == nil {
		return nil
	}

	var perr *ProviderError
	if !errors.As(err, &perr) || perr.Code != CodeUnrecognizedChain {
		return fmt.Errorf("switch to %s: %w", required.Name, err)
	}
	if err := p.AddChain(ctx, required); err != nil {
		return fmt.Errorf("add %s: %w", required.Name, err)
	}
	return nil
}
