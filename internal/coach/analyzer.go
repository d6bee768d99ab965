package coach

import (
	"context"
	"strings"
	"time"

	"github.com/Solmidey/base-gas-coach/internal/client/basescan"
	"github.com/Solmidey/base-gas-coach/internal/helpers"
	"github.com/Solmidey/base-gas-coach/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// chainLabel is the only chain this service analyzes.
const chainLabel = "Base"

// ExplorerClient is the slice of the Basescan client the analyzer needs.
type ExplorerClient interface {
	ListTransactions(ctx context.Context, address string) ([]basescan.Transaction, error)
	Balance(ctx context.Context, address string) (float64, error)
}

// Analysis is the full per-request result. It is built fresh every request
// and never cached or persisted.
type Analysis struct {
	Address        string        `json:"address"`
	Chain          string        `json:"chain"`
	Window         string        `json:"window"`
	TotalGasEth    float64       `json:"totalGasEth"`
	TxCount        int           `json:"txCount"`
	AvgGasPerTx    float64       `json:"avgGasPerTx"`
	SmallTxRatio   float64       `json:"smallTxRatio"`
	FailedTxRatio  float64       `json:"failedTxRatio"`
	ZeroValueRatio float64       `json:"zeroValueRatio"`
	BalanceEth     *float64      `json:"balanceEth"`
	Suggestions    []string      `json:"suggestions"`
	ProtocolTips   []ProtocolTip `json:"protocolTips"`
}

// Analyzer composes the explorer client, the metrics aggregator, the rule
// table, and the optional model overlay into one request flow.
type Analyzer struct {
	explorer ExplorerClient
	chat     ChatService
}

// NewAnalyzer creates an Analyzer. chat may be nil, in which case the model
// overlay is skipped and the rule-based suggestions always stand.
func NewAnalyzer(explorer ExplorerClient, chat ChatService) *Analyzer {
	return &Analyzer{
		explorer: explorer,
		chat:     chat,
	}
}

// Analyze runs the full pipeline for one wallet. Errors out of this method
// are always one of InputError, ConfigError, or ExternalServiceError; every
// other fault degrades to a best-effort successful result.
func (a *Analyzer) Analyze(ctx context.Context, address, period string) (*Analysis, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, &InputError{Reason: "Missing address"}
	}
	if !helpers.IsAddressValid(address) {
		return nil, &InputError{Reason: "Invalid address"}
	}
	if a.explorer == nil {
		return nil, &ConfigError{Reason: "explorer client is not configured"}
	}

	window := NewWindow(period, time.Now())

	// The two explorer calls are independent; run them concurrently. The
	// balance call is best-effort and must never fail the request.
	var (
		txs        []basescan.Transaction
		balanceEth *float64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txs, err = a.explorer.ListTransactions(gctx, address)
		return err
	})
	g.Go(func() error {
		eth, err := a.explorer.Balance(gctx, address)
		if err != nil {
			logger.Warn("balance lookup degraded to null",
				zap.String("address", address),
				zap.Error(err))
			return nil
		}
		balanceEth = &eth
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, &ExternalServiceError{Service: "Basescan", Err: err}
	}

	metrics, sample := Aggregate(txs, window)

	suggestions, protocolIDs := GenerateSuggestions(metrics, window.Label)
	tips := ResolveTips(protocolIDs, nil)

	// One overlay attempt, accept-or-fallback. Never attempted for an
	// empty window and never retried.
	if a.chat != nil && metrics.TxCount > 0 {
		if overlaid, overlaidTips, ok := TryOverlay(ctx, a.chat, address, window, metrics, sample, balanceEth); ok {
			suggestions = overlaid
			tips = overlaidTips
		}
	}

	return &Analysis{
		Address:        address,
		Chain:          chainLabel,
		Window:         window.Label,
		TotalGasEth:    metrics.TotalGasEth,
		TxCount:        metrics.TxCount,
		AvgGasPerTx:    metrics.AvgGasPerTx,
		SmallTxRatio:   metrics.SmallTxRatio,
		FailedTxRatio:  metrics.FailedTxRatio,
		ZeroValueRatio: metrics.ZeroValueRatio,
		BalanceEth:     balanceEth,
		Suggestions:    suggestions,
		ProtocolTips:   tips,
	}, nil
}
