package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeiStringToEth(t *testing.T) {
	tests := []struct {
		name string
		wei  string
		want float64
		ok   bool
	}{
		{name: "one ether", wei: "1000000000000000000", want: 1, ok: true},
		{name: "simple transfer fee", wei: "21000000000000", want: 0.000021, ok: true},
		{name: "zero", wei: "0", want: 0, ok: true},
		{name: "whitespace tolerated", wei: " 1000000000000000000 ", want: 1, ok: true},
		{name: "empty", wei: "", ok: false},
		{name: "not a number", wei: "abc", ok: false},
		{name: "hex rejected", wei: "0x10", ok: false},
		{name: "decimal point rejected", wei: "1.5", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := WeiStringToEth(tt.wei)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-12)
			}
		})
	}
}

func TestWeiToEthLenient(t *testing.T) {
	assert.Equal(t, 0.0, WeiToEth("garbage"))
	assert.InDelta(t, 2.5, WeiToEth("2500000000000000000"), 1e-12)
}

func TestGasFeeEth(t *testing.T) {
	// 21000 gas at 1 gwei
	assert.InDelta(t, 0.000021, GasFeeEth("21000", "1000000000"), 1e-15)

	// Malformed fields count as zero rather than failing
	assert.Equal(t, 0.0, GasFeeEth("", "1000000000"))
	assert.Equal(t, 0.0, GasFeeEth("21000", "oops"))
}

func TestGasFeeEthLargeProduct(t *testing.T) {
	// gasUsed * gasPrice beyond exact float64 integer range must not lose
	// magnitude: 30M gas at 10000 gwei = 300 ETH exactly.
	got := GasFeeEth("30000000", "10000000000000")
	assert.InDelta(t, 300.0, got, 1e-6)
}

func TestIsAddressValid(t *testing.T) {
	assert.True(t, IsAddressValid("0x4200000000000000000000000000000000000006"))
	assert.True(t, IsAddressValid("0xAbCd000000000000000000000000000000000006"))

	assert.False(t, IsAddressValid(""))
	assert.False(t, IsAddressValid("4200000000000000000000000000000000000006"))
	assert.False(t, IsAddressValid("0x42"))
	assert.False(t, IsAddressValid("0xZZ00000000000000000000000000000000000006"))
}
