package coach

import (
	"strconv"

	"github.com/Solmidey/base-gas-coach/internal/client/basescan"
	"github.com/Solmidey/base-gas-coach/internal/helpers"
)

// Classification thresholds, denominated in ETH.
const (
	smallValueEth   = 0.01   // below this a tx counts as low-value…
	smallGasFeeEth  = 0.0002 // …if its gas fee was also non-trivial
	highValueEth    = 1.0
	sampleSizeLimit = 15
)

// Metrics are the aggregate gas-efficiency numbers for one wallet and
// window. All ratios are in [0,1] and zero when TxCount is zero.
type Metrics struct {
	TotalGasEth    float64 `json:"totalGasEth"`
	TxCount        int     `json:"txCount"`
	AvgGasPerTx    float64 `json:"avgGasPerTx"`
	SmallTxRatio   float64 `json:"smallTxRatio"`
	FailedTxRatio  float64 `json:"failedTxRatio"`
	ZeroValueRatio float64 `json:"zeroValueRatio"`

	// HighValueCount feeds the large-move rule; it is not part of the
	// response body.
	HighValueCount int `json:"-"`
}

// TxSummary is one row of the bounded sample forwarded to the model
// overlay. Presentational only; ratio math never reads it.
type TxSummary struct {
	Timestamp int64   `json:"timestamp"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	GasFeeEth float64 `json:"gasFeeEth"`
	ValueEth  float64 `json:"valueEth"`
	Failed    bool    `json:"failed"`
}

// Aggregate reduces raw explorer transactions to Metrics over the window,
// plus a sample of at most 15 in-window transactions preserving the
// explorer's newest-first order. An empty in-window set yields zero-valued
// Metrics, never an error, and a malformed numeric field in a record
// contributes zero for that field instead of aborting the pass.
func Aggregate(txs []basescan.Transaction, window Window) (Metrics, []TxSummary) {
	var (
		metrics   Metrics
		sample    []TxSummary
		smallTx   int
		failedTx  int
		zeroValue int
	)

	for _, tx := range txs {
		ts, err := strconv.ParseInt(tx.TimeStamp, 10, 64)
		if err != nil || ts < window.Cutoff {
			continue
		}

		gasFeeEth := helpers.GasFeeEth(tx.GasUsed, tx.GasPrice)
		valueEth := helpers.WeiToEth(tx.Value)
		failed := tx.IsError == "1"

		metrics.TotalGasEth += gasFeeEth
		metrics.TxCount++

		// Classes are non-exclusive; one tx may land in several.
		if valueEth < smallValueEth && gasFeeEth > smallGasFeeEth {
			smallTx++
		}
		if failed {
			failedTx++
		}
		if valueEth == 0 {
			zeroValue++
		}
		if valueEth >= highValueEth {
			metrics.HighValueCount++
		}

		if len(sample) < sampleSizeLimit {
			sample = append(sample, TxSummary{
				Timestamp: ts,
				From:      tx.From,
				To:        tx.To,
				GasFeeEth: gasFeeEth,
				ValueEth:  valueEth,
				Failed:    failed,
			})
		}
	}

	if metrics.TxCount > 0 {
		count := float64(metrics.TxCount)
		metrics.AvgGasPerTx = metrics.TotalGasEth / count
		metrics.SmallTxRatio = float64(smallTx) / count
		metrics.FailedTxRatio = float64(failedTx) / count
		metrics.ZeroValueRatio = float64(zeroValue) / count
	}

	return metrics, sample
}
