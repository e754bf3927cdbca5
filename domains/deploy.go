package domains

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/tidwall/gjson"
)

// Artifact is a compiled contract as written by Hardhat to
// artifacts/contracts/<Name>.sol/<Name>.json
type Artifact struct {
	ContractName string
	ABI          abi.ABI
	Bytecode     []byte
}

// LoadArtifact reads a Hardhat artifact from disk
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	return ParseArtifact(data)
}

// ParseArtifact decodes the abi and bytecode fields of a Hardhat artifact
func ParseArtifact(data []byte) (*Artifact, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("artifact is not valid JSON")
	}

	abiField := gjson.GetBytes(data, "abi")
	if !abiField.IsArray() {
		return nil, fmt.Errorf("artifact has no abi array")
	}
	parsed, err := abi.JSON(strings.NewReader(abiField.Raw))
	if err != nil {
		return nil, fmt.Errorf("parse artifact abi: %w", err)
	}

	code := gjson.GetBytes(data, "bytecode").String()
	if code == "" || code == "0x" {
		return nil, fmt.Errorf("artifact has no bytecode")
	}
	bytecode, err := hexutil.Decode(code)
	if err != nil {
		return nil, fmt.Errorf("decode bytecode: %w", err)
	}

	return &Artifact{
		ContractName: gjson.GetBytes(data, "contractName").String(),
		ABI:          parsed,
		Bytecode:     bytecode,
	}, nil
}

// Deploy creates a new Domains contract for tld and waits for it to be mined.
// The returned gateway signs with opts.
func Deploy(ctx context.Context, opts *bind.TransactOpts, backend Backend, art *Artifact, tld string) (*Gateway, *types.Receipt, error) {
	if opts == nil {
		return nil, nil, ErrNoSigner
	}
	o := *opts
	o.Context = ctx

	addr, tx, _, err := bind.DeployContract(&o, art.ABI, art.Bytecode, backend, tld)
	if err != nil {
		return nil, nil, fmt.Errorf("deploy %s: %w", art.ContractName, err)
	}
	receipt, err := bind.WaitMined(ctx, backend, tx)
	if err != nil {
		return nil, nil, fmt.Errorf("deploy %s: waiting for %s: %w", art.ContractName, tx.Hash().Hex(), err)
	}
	if err := RequireSuccess(receipt); err != nil {
		return nil, receipt, fmt.Errorf("deploy %s: %w", art.ContractName, err)
	}
	return NewGateway(addr, backend, opts), receipt, nil
}
