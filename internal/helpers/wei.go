package helpers

import (
	"math/big"
	"strings"
)

// weiPerEth is 10^18, the scaling factor between wei and ETH.
var weiPerEth = new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))

// WeiStringToEth converts a decimal wei string to ETH. The multiplication
// and division happen in arbitrary precision before narrowing to float64,
// so values beyond the exact float64 integer range do not lose magnitude.
// Returns false when the input is not a valid decimal integer.
func WeiStringToEth(wei string) (float64, bool) {
	n, ok := new(big.Int).SetString(strings.TrimSpace(wei), 10)
	if !ok {
		return 0, false
	}
	return bigWeiToEth(n), true
}

// WeiToEth is the lenient variant of WeiStringToEth: malformed input counts
// as zero instead of failing, so one bad explorer record cannot abort an
// aggregation pass.
func WeiToEth(wei string) float64 {
	eth, ok := WeiStringToEth(wei)
	if !ok {
		return 0
	}
	return eth
}

// GasFeeEth computes gasUsed * gasPrice scaled to ETH. Either field being
// malformed makes the fee zero.
func GasFeeEth(gasUsed, gasPrice string) float64 {
	used, ok := new(big.Int).SetString(strings.TrimSpace(gasUsed), 10)
	if !ok {
		return 0
	}
	price, ok := new(big.Int).SetString(strings.TrimSpace(gasPrice), 10)
	if !ok {
		return 0
	}
	return bigWeiToEth(new(big.Int).Mul(used, price))
}

func bigWeiToEth(wei *big.Int) float64 {
	f := new(big.Float).SetInt(wei)
	f.Quo(f, weiPerEth)
	eth, _ := f.Float64()
	return eth
}
