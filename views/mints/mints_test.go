package mints

import (
	"strings"
	"testing"

	"bns-tui/domains"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

var (
	ezio   = common.HexToAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	altair = common.HexToAddress("0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359")
)

func TestEntriesOnlyOwnerMayEdit(t *testing.T) {
	list := []domains.Mint{
		{ID: 0, Name: "ezio", Record: "a", Owner: ezio},
		{ID: 1, Name: "altair", Record: "b", Owner: altair},
	}

	got := Entries(list, ezio)
	assert.True(t, got[0].Editable)
	assert.False(t, got[1].Editable)

	got = Entries(list, common.Address{})
	for _, e := range got {
		assert.False(t, e.Editable, "a disconnected viewer edits nothing")
	}
}

func TestEntriesIgnoreChecksumCase(t *testing.T) {
	lower := common.HexToAddress(strings.ToLower(ezio.Hex()))
	got := Entries([]domains.Mint{{Name: "ezio", Owner: ezio}}, lower)
	assert.True(t, got[0].Editable)
}

func TestRenderShowsNameRecordAndLink(t *testing.T) {
	entries := Entries([]domains.Mint{{ID: 7, Name: "ezio", Record: "creed", Owner: ezio}}, ezio)
	out := Render(entries, 0, "0xfFE93e0CF56402ddE5eE3f1fB96601367d9CbA9F", ".ac", 80)

	assert.Contains(t, out, "ezio.ac")
	assert.Contains(t, out, "creed")
	assert.Contains(t, out, "https://testnets.opensea.io/assets/mumbai/0xfFE93e0CF56402ddE5eE3f1fB96601367d9CbA9F/7")
	assert.Contains(t, out, "✎")
}

func TestRenderHidesEditMarkerForOthers(t *testing.T) {
	entries := Entries([]domains.Mint{{ID: 0, Name: "altair", Record: "b", Owner: altair}}, ezio)
	out := Render(entries, 0, "0x00", ".ac", 80)
	assert.NotContains(t, out, "✎")
}
