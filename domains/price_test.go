package domains

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceTiers(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"ezi", "0.05"},
		{"ezio", "0.03"},
		{"altair", "0.01"},
		{"assassinss", "0.01"}, // 10 characters
		{"ab", "0.01"},
		{"brotherhood", "0.11"},     // 11 characters
		{"nothingistrue!!", "0.15"}, // 15 characters
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Price(tt.name).String())
		})
	}
}

func TestPriceCountsCharactersNotBytes(t *testing.T) {
	// three runes, nine bytes
	assert.Equal(t, "0.05", Price("兄弟会").String())
}

func TestPriceWei(t *testing.T) {
	assert.Equal(t, "30000000000000000", PriceWei("ezio").String())
	assert.Equal(t, "110000000000000000", PriceWei("brotherhood").String())
}
