package coach

import "fmt"

// Rule thresholds. Variants of this table have shipped with slightly
// different small/zero-value cutoffs; these are the canonical values.
const (
	avgGasThresholdEth       = 0.0005
	smallTxRatioThreshold    = 0.3
	failedTxRatioThreshold   = 0.05
	zeroValueRatioThreshold  = 0.25
	gasPerHighValueThreshold = 0.002
)

// rule is one row of the suggestion table: a predicate over the metrics, a
// coaching message, and the protocol ids that back it up.
type rule struct {
	applies     func(Metrics) bool
	message     string
	protocolIDs []string
}

// suggestionRules is evaluated strictly in order and rules fire
// independently. The resulting suggestion order is an observable part of
// the API contract.
var suggestionRules = []rule{
	{
		applies:     func(m Metrics) bool { return m.AvgGasPerTx > avgGasThresholdEth },
		message:     "Your average gas per transaction on Base is relatively high. Try batching actions when possible and avoid unnecessary onchain experiments.",
		protocolIDs: []string{ProtocolUniswap},
	},
	{
		applies:     func(m Metrics) bool { return m.SmallTxRatio > smallTxRatioThreshold },
		message:     "You make a lot of low-value transactions that still cost gas. Focus on fewer, higher-conviction moves or bundle small actions together.",
		protocolIDs: []string{ProtocolAerodrome},
	},
	{
		applies:     func(m Metrics) bool { return m.FailedTxRatio > failedTxRatioThreshold },
		message:     "You have several failed transactions. Double-check balances, slippage and approvals to avoid paying gas for failed txs.",
		protocolIDs: []string{ProtocolUniswap},
	},
	{
		applies:     func(m Metrics) bool { return m.ZeroValueRatio > zeroValueRatioThreshold },
		message:     "Many of your txs are approvals or zero-value calls. Revoke stale approvals and route gas spend into protocols that reward activity so it feeds future upside.",
		protocolIDs: []string{ProtocolMoonwell, ProtocolMorpho},
	},
	{
		applies:     func(m Metrics) bool {
			return m.HighValueCount > 0 && m.TotalGasEth/float64(m.HighValueCount) > gasPerHighValueThreshold
		},
		message:     "On higher-value moves, compare routes and aggregators on Base to reduce slippage and fees so more upside stays with you.",
		protocolIDs: []string{ProtocolLiFi},
	},
}

// baselineRule answers when nothing above fired: the wallet already looks
// efficient.
var baselineRule = rule{
	message:     "Your Base gas usage looks fairly efficient. Keep prioritizing protocols that reward activity and avoid unnecessary degen txs that don't feed future upside.",
	protocolIDs: []string{ProtocolMoonwell, ProtocolMorpho},
}

// emptyWindowProtocolIDs backs the no-activity guidance: bridge over, then
// try one DEX.
var emptyWindowProtocolIDs = []string{ProtocolBaseBridge, ProtocolAerodrome}

// GenerateSuggestions maps metrics to an ordered suggestion list and the
// protocol ids accumulated across every rule that fired. The list is never
// empty. A window with no transactions bypasses the rule table entirely and
// returns exactly two messages: what happened, and a concrete first step.
func GenerateSuggestions(m Metrics, windowLabel string) ([]string, []string) {
	if m.TxCount == 0 {
		return []string{
			fmt.Sprintf("We couldn't find any transactions for this address on Base in the last %s.", windowLabel),
			"If this wallet is active on other chains, consider bridging a small amount to Base and using apps that reward activity (points, yield, airdrops) so gas spent can come back as upside.",
		}, append([]string(nil), emptyWindowProtocolIDs...)
	}

	var suggestions []string
	var protocolIDs []string

	for _, r := range suggestionRules {
		if !r.applies(m) {
			continue
		}
		suggestions = append(suggestions, r.message)
		protocolIDs = append(protocolIDs, r.protocolIDs...)
	}

	if len(suggestions) == 0 {
		suggestions = append(suggestions, baselineRule.message)
		protocolIDs = append(protocolIDs, baselineRule.protocolIDs...)
	}

	return suggestions, protocolIDs
}
