// Package domainstest runs an in-process JSON-RPC node that hosts an
// in-memory Domains registry. It answers just enough of the eth namespace
// for ethclient, bind.BoundContract and bind.WaitMined.
package domainstest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"bns-tui/domains"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

const (
	gasPrice = 1_000_000_000
	txGas    = 100_000
)

var errInsufficientFunds = errors.New("insufficient funds for transfer")

// Node is a single-block-per-transaction fake chain
type Node struct {
	mu        sync.Mutex
	chainID   *big.Int
	signer    types.Signer
	bytecode  []byte
	block     uint64
	balances  map[common.Address]*big.Int
	nonces    map[common.Address]uint64
	contracts map[common.Address]*registry
	receipts  map[common.Hash]*types.Receipt
	server    *rpc.Server
}

// NewNode starts a node reporting chainID from eth_chainId
func NewNode(chainID int64) *Node {
	id := big.NewInt(chainID)
	n := &Node{
		chainID:   id,
		signer:    types.LatestSignerForChainID(id),
		balances:  make(map[common.Address]*big.Int),
		nonces:    make(map[common.Address]uint64),
		contracts: make(map[common.Address]*registry),
		receipts:  make(map[common.Hash]*types.Receipt),
		server:    rpc.NewServer(),
	}
	if err := n.server.RegisterName("eth", &ethAPI{n: n}); err != nil {
		panic(err)
	}
	return n
}

// Client dials the node in-process
func (n *Node) Client() *ethclient.Client {
	return ethclient.NewClient(rpc.DialInProc(n.server))
}

// Close stops the RPC server
func (n *Node) Close() {
	n.server.Stop()
}

// Fund credits addr with wei
func (n *Node) Fund(addr common.Address, wei *big.Int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.balances[addr] = new(big.Int).Add(n.balance(addr), wei)
}

// BalanceOf returns the balance of addr
func (n *Node) BalanceOf(addr common.Address) *big.Int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return new(big.Int).Set(n.balance(addr))
}

// SetBytecode tells the node which creation code precedes constructor
// arguments, so the registry's tld can be decoded on deployment.
func (n *Node) SetBytecode(code []byte) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.bytecode = common.CopyBytes(code)
}

// Install places a registry owned by owner at addr without a transaction
func (n *Node) Install(addr, owner common.Address, tld string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.contracts[addr] = newRegistry(owner, tld)
}

// Names returns the names registered at addr
func (n *Node) Names(addr common.Address) []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	r, ok := n.contracts[addr]
	if !ok {
		return nil
	}
	return append([]string(nil), r.names...)
}

func (n *Node) balance(addr common.Address) *big.Int {
	if b, ok := n.balances[addr]; ok {
		return b
	}
	return new(big.Int)
}

func (n *Node) transfer(from, to common.Address, value *big.Int) {
	if value == nil || value.Sign() == 0 {
		return
	}
	n.balances[from] = new(big.Int).Sub(n.balance(from), value)
	n.balances[to] = new(big.Int).Add(n.balance(to), value)
}

// exec runs a message against current state. With commit false nothing
// changes, which is how eth_call and eth_estimateGas see it.
func (n *Node) exec(from common.Address, to *common.Address, value *big.Int, data []byte, nonce uint64, commit bool) ([]byte, *common.Address, error) {
	if value == nil {
		value = new(big.Int)
	}
	if n.balance(from).Cmp(value) < 0 {
		return nil, nil, errInsufficientFunds
	}

	if to == nil {
		addr := crypto.CreateAddress(from, nonce)
		if commit {
			n.contracts[addr] = newRegistry(from, n.constructorTLD(data))
			n.transfer(from, addr, value)
		}
		return nil, &addr, nil
	}

	r, ok := n.contracts[*to]
	if !ok {
		if commit {
			n.transfer(from, *to, value)
		}
		return nil, nil, nil
	}
	out, err := r.invoke(n, from, *to, value, data, commit)
	return out, nil, err
}

func (n *Node) constructorTLD(data []byte) string {
	if len(n.bytecode) == 0 || !bytes.HasPrefix(data, n.bytecode) {
		return ""
	}
	args, err := domains.ParsedABI.Constructor.Inputs.Unpack(data[len(n.bytecode):])
	if err != nil || len(args) == 0 {
		return ""
	}
	tld, _ := args[0].(string)
	return tld
}

func (n *Node) sendRaw(raw []byte) (common.Hash, error) {
	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(raw); err != nil {
		return common.Hash{}, err
	}
	from, err := types.Sender(n.signer, tx)
	if err != nil {
		return common.Hash{}, err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if want := n.nonces[from]; tx.Nonce() != want {
		return common.Hash{}, fmt.Errorf("invalid nonce: have %d, want %d", tx.Nonce(), want)
	}
	if n.balance(from).Cmp(tx.Value()) < 0 {
		return common.Hash{}, errInsufficientFunds
	}

	_, created, execErr := n.exec(from, tx.To(), tx.Value(), tx.Data(), tx.Nonce(), true)
	n.nonces[from]++
	n.block++

	receipt := &types.Receipt{
		Type:              tx.Type(),
		Status:            types.ReceiptStatusSuccessful,
		CumulativeGasUsed: txGas,
		GasUsed:           txGas,
		Logs:              []*types.Log{},
		TxHash:            tx.Hash(),
		EffectiveGasPrice: tx.GasPrice(),
		BlockNumber:       new(big.Int).SetUint64(n.block),
		BlockHash:         crypto.Keccak256Hash(new(big.Int).SetUint64(n.block).Bytes()),
	}
	if execErr != nil {
		receipt.Status = types.ReceiptStatusFailed
	} else if created != nil {
		receipt.ContractAddress = *created
	}
	n.receipts[tx.Hash()] = receipt
	return tx.Hash(), nil
}

type registry struct {
	owner   common.Address
	tld     string
	names   []string
	owners  map[string]common.Address
	records map[string]string
}

func newRegistry(owner common.Address, tld string) *registry {
	return &registry{
		owner:   owner,
		tld:     tld,
		owners:  make(map[string]common.Address),
		records: make(map[string]string),
	}
}

type revertError string

func (e revertError) Error() string { return "execution reverted: " + string(e) }

func (r *registry) invoke(n *Node, from, self common.Address, value *big.Int, data []byte, commit bool) ([]byte, error) {
	if len(data) < 4 {
		return nil, revertError("missing selector")
	}
	method, err := domains.ParsedABI.MethodById(data[:4])
	if err != nil {
		return nil, revertError("unknown selector")
	}
	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, revertError(err.Error())
	}
	if value.Sign() > 0 && !method.IsPayable() {
		return nil, revertError("non-payable")
	}

	switch method.Name {
	case "register":
		name := args[0].(string)
		if _, taken := r.owners[name]; taken {
			return nil, revertError("AlreadyRegistered")
		}
		if value.Cmp(domains.PriceWei(name)) < 0 {
			return nil, revertError("Not enough Matic paid")
		}
		if commit {
			r.names = append(r.names, name)
			r.owners[name] = from
			n.transfer(from, self, value)
		}
		return nil, nil
	case "setRecord":
		name := args[0].(string)
		if r.owners[name] != from {
			return nil, revertError("Unauthorized")
		}
		if commit {
			r.records[name] = args[1].(string)
		}
		return nil, nil
	case "withdraw":
		if from != r.owner {
			return nil, revertError("Unauthorized")
		}
		if commit {
			n.transfer(self, r.owner, new(big.Int).Set(n.balance(self)))
		}
		return nil, nil
	case "getAllNames":
		return method.Outputs.Pack(append([]string{}, r.names...))
	case "getRecord":
		return method.Outputs.Pack(r.records[args[0].(string)])
	case "getAddress":
		return method.Outputs.Pack(r.owners[args[0].(string)])
	case "price":
		return method.Outputs.Pack(domains.PriceWei(args[0].(string)))
	case "owner":
		return method.Outputs.Pack(r.owner)
	case "isOwner":
		return method.Outputs.Pack(from == r.owner)
	case "tld":
		return method.Outputs.Pack(r.tld)
	}
	return nil, revertError("unsupported method " + method.Name)
}

// callArgs is the transaction call object of eth_call and eth_estimateGas
type callArgs struct {
	From  *common.Address `json:"from"`
	To    *common.Address `json:"to"`
	Value *hexutil.Big    `json:"value"`
	Data  *hexutil.Bytes  `json:"data"`
	Input *hexutil.Bytes  `json:"input"`
}

func (a callArgs) from() common.Address {
	if a.From == nil {
		return common.Address{}
	}
	return *a.From
}

func (a callArgs) value() *big.Int {
	if a.Value == nil {
		return new(big.Int)
	}
	return a.Value.ToInt()
}

func (a callArgs) data() []byte {
	if a.Input != nil {
		return *a.Input
	}
	if a.Data != nil {
		return *a.Data
	}
	return nil
}

type ethAPI struct {
	n *Node
}

func (api *ethAPI) ChainId() *hexutil.Big {
	return (*hexutil.Big)(api.n.chainID)
}

func (api *ethAPI) BlockNumber() hexutil.Uint64 {
	api.n.mu.Lock()
	defer api.n.mu.Unlock()
	return hexutil.Uint64(api.n.block)
}

func (api *ethAPI) GasPrice() *hexutil.Big {
	return (*hexutil.Big)(big.NewInt(gasPrice))
}

func (api *ethAPI) GetBalance(addr common.Address, block *json.RawMessage) *hexutil.Big {
	return (*hexutil.Big)(api.n.BalanceOf(addr))
}

func (api *ethAPI) GetTransactionCount(addr common.Address, block *json.RawMessage) hexutil.Uint64 {
	api.n.mu.Lock()
	defer api.n.mu.Unlock()
	return hexutil.Uint64(api.n.nonces[addr])
}

func (api *ethAPI) GetCode(addr common.Address, block *json.RawMessage) hexutil.Bytes {
	api.n.mu.Lock()
	defer api.n.mu.Unlock()
	if _, ok := api.n.contracts[addr]; ok {
		return hexutil.Bytes{0x60, 0x80}
	}
	return hexutil.Bytes{}
}

func (api *ethAPI) GetBlockByNumber(number json.RawMessage, full bool) *types.Header {
	api.n.mu.Lock()
	defer api.n.mu.Unlock()
	return &types.Header{
		Number:     new(big.Int).SetUint64(api.n.block),
		Difficulty: new(big.Int),
		GasLimit:   30_000_000,
		Time:       uint64(time.Now().Unix()),
	}
}

func (api *ethAPI) Call(args callArgs, block *json.RawMessage) (hexutil.Bytes, error) {
	api.n.mu.Lock()
	defer api.n.mu.Unlock()
	from := args.from()
	out, _, err := api.n.exec(from, args.To, args.value(), args.data(), api.n.nonces[from], false)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (api *ethAPI) EstimateGas(args callArgs, block *json.RawMessage) (hexutil.Uint64, error) {
	api.n.mu.Lock()
	defer api.n.mu.Unlock()
	from := args.from()
	if _, _, err := api.n.exec(from, args.To, args.value(), args.data(), api.n.nonces[from], false); err != nil {
		return 0, err
	}
	return txGas, nil
}

func (api *ethAPI) SendRawTransaction(raw hexutil.Bytes) (common.Hash, error) {
	return api.n.sendRaw(raw)
}

func (api *ethAPI) GetTransactionReceipt(hash common.Hash) *types.Receipt {
	api.n.mu.Lock()
	defer api.n.mu.Unlock()
	return api.n.receipts[hash]
}
