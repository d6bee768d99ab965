package coach

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/Solmidey/base-gas-coach/internal/client/basescan"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAddress = "0x4200000000000000000000000000000000000006"

// fakeExplorer is a canned ExplorerClient.
type fakeExplorer struct {
	txs        []basescan.Transaction
	txErr      error
	balance    float64
	balanceErr error
}

func (f *fakeExplorer) ListTransactions(ctx context.Context, address string) ([]basescan.Transaction, error) {
	return f.txs, f.txErr
}

func (f *fakeExplorer) Balance(ctx context.Context, address string) (float64, error) {
	return f.balance, f.balanceErr
}

func recentTxs(n int) []basescan.Transaction {
	now := time.Now().Unix()
	txs := make([]basescan.Transaction, 0, n)
	for i := 0; i < n; i++ {
		txs = append(txs, basescan.Transaction{
			GasUsed:   "21000",
			GasPrice:  "1000000000",
			Value:     "0",
			IsError:   "0",
			From:      testAddress,
			To:        testAddress,
			TimeStamp: strconv.FormatInt(now-int64(i), 10),
		})
	}
	return txs
}

func TestAnalyzeMissingAddress(t *testing.T) {
	analyzer := NewAnalyzer(&fakeExplorer{}, nil)

	for _, address := range []string{"", "   "} {
		_, err := analyzer.Analyze(context.Background(), address, "3m")
		var inputErr *InputError
		require.ErrorAs(t, err, &inputErr)
		assert.Equal(t, "Missing address", inputErr.Reason)
	}
}

func TestAnalyzeInvalidAddress(t *testing.T) {
	analyzer := NewAnalyzer(&fakeExplorer{}, nil)

	_, err := analyzer.Analyze(context.Background(), "not-an-address", "3m")
	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "Invalid address", inputErr.Reason)
}

func TestAnalyzeExplorerFailureIsTerminal(t *testing.T) {
	analyzer := NewAnalyzer(&fakeExplorer{txErr: errors.New("rate limited")}, nil)

	_, err := analyzer.Analyze(context.Background(), testAddress, "3m")
	var externalErr *ExternalServiceError
	require.ErrorAs(t, err, &externalErr)
	assert.Equal(t, "Basescan", externalErr.Service)
}

func TestAnalyzeBalanceDegradesToNull(t *testing.T) {
	analyzer := NewAnalyzer(&fakeExplorer{
		txs:        recentTxs(3),
		balanceErr: errors.New("http 500"),
	}, nil)

	analysis, err := analyzer.Analyze(context.Background(), testAddress, "3m")
	require.NoError(t, err)

	assert.Nil(t, analysis.BalanceEth)
	assert.Equal(t, 3, analysis.TxCount)
	assert.NotEmpty(t, analysis.Suggestions, "the payload is still fully populated")
	assert.NotEmpty(t, analysis.ProtocolTips)
}

func TestAnalyzeEmptyHistory(t *testing.T) {
	analyzer := NewAnalyzer(&fakeExplorer{txs: nil, balance: 1.25}, nil)

	analysis, err := analyzer.Analyze(context.Background(), testAddress, "2m")
	require.NoError(t, err)

	assert.Equal(t, 0, analysis.TxCount)
	require.NotNil(t, analysis.BalanceEth)
	assert.Equal(t, 1.25, *analysis.BalanceEth)

	require.Len(t, analysis.Suggestions, 2)
	require.Len(t, analysis.ProtocolTips, 2)
	assert.Equal(t, ProtocolBaseBridge, analysis.ProtocolTips[0].ID)
	assert.Equal(t, ProtocolAerodrome, analysis.ProtocolTips[1].ID)
}

func TestAnalyzeResponseShape(t *testing.T) {
	analyzer := NewAnalyzer(&fakeExplorer{txs: recentTxs(5), balance: 0.5}, nil)

	analysis, err := analyzer.Analyze(context.Background(), testAddress, "3m")
	require.NoError(t, err)

	assert.Equal(t, testAddress, analysis.Address)
	assert.Equal(t, "Base", analysis.Chain)
	assert.Equal(t, "3 months", analysis.Window)
	assert.Equal(t, 5, analysis.TxCount)
	assert.InDelta(t, 5*0.000021, analysis.TotalGasEth, 1e-12)
	assert.Equal(t, 1.0, analysis.ZeroValueRatio)
}

func TestAnalyzeOverlayReplacesRuleOutput(t *testing.T) {
	chat := chatFunc(func(ctx context.Context, system string, userMessages ...string) (string, error) {
		return `{"tips":[{"tip":"Overlay suggestion.","protocol_ids":["lifi"]}]}`, nil
	})
	analyzer := NewAnalyzer(&fakeExplorer{txs: recentTxs(5)}, chat)

	analysis, err := analyzer.Analyze(context.Background(), testAddress, "3m")
	require.NoError(t, err)

	assert.Equal(t, []string{"Overlay suggestion."}, analysis.Suggestions)
	require.Len(t, analysis.ProtocolTips, 1)
	assert.Equal(t, "lifi", analysis.ProtocolTips[0].ID)
}

func TestAnalyzeOverlayFailureKeepsRuleOutput(t *testing.T) {
	explorer := &fakeExplorer{txs: recentTxs(5)}

	baseline, err := NewAnalyzer(explorer, nil).Analyze(context.Background(), testAddress, "3m")
	require.NoError(t, err)

	chat := chatFunc(func(ctx context.Context, system string, userMessages ...string) (string, error) {
		return "not json at all", nil
	})
	overlaid, err := NewAnalyzer(explorer, chat).Analyze(context.Background(), testAddress, "3m")
	require.NoError(t, err)

	assert.Equal(t, baseline.Suggestions, overlaid.Suggestions)
	assert.Equal(t, baseline.ProtocolTips, overlaid.ProtocolTips)
}

func TestAnalyzeOverlaySkippedForEmptyWindow(t *testing.T) {
	called := false
	chat := chatFunc(func(ctx context.Context, system string, userMessages ...string) (string, error) {
		called = true
		return `{"tips":[{"tip":"should never run"}]}`, nil
	})
	analyzer := NewAnalyzer(&fakeExplorer{txs: nil}, chat)

	_, err := analyzer.Analyze(context.Background(), testAddress, "3m")
	require.NoError(t, err)
	assert.False(t, called, "overlay must not run when the window is empty")
}
