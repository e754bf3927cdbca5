package domains

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// DomainsABI is the interface of the Domains registry contract.
// Only the members this app touches are listed.
const DomainsABI = `[
	{"type":"constructor","stateMutability":"payable","inputs":[{"name":"_tld","type":"string"}]},
	{"type":"error","name":"Unauthorized","inputs":[]},
	{"type":"error","name":"AlreadyRegistered","inputs":[]},
	{"type":"error","name":"InvalidName","inputs":[{"name":"name","type":"string"}]},
	{"type":"function","name":"register","stateMutability":"payable","inputs":[{"name":"name","type":"string"}],"outputs":[]},
	{"type":"function","name":"setRecord","stateMutability":"nonpayable","inputs":[{"name":"name","type":"string"},{"name":"record","type":"string"}],"outputs":[]},
	{"type":"function","name":"getAllNames","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string[]"}]},
	{"type":"function","name":"getRecord","stateMutability":"view","inputs":[{"name":"name","type":"string"}],"outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"getAddress","stateMutability":"view","inputs":[{"name":"name","type":"string"}],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"price","stateMutability":"pure","inputs":[{"name":"name","type":"string"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"owner","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"isOwner","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"tld","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"withdraw","stateMutability":"nonpayable","inputs":[],"outputs":[]}
]`

// ParsedABI is DomainsABI decoded once at start-up
var ParsedABI = mustParseABI(DomainsABI)

func mustParseABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(err)
	}
	return parsed
}
