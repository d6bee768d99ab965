package coach

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/Solmidey/base-gas-coach/internal/logger"

	"go.uber.org/zap"
)

// ChatService produces a JSON chat completion. Satisfied by
// internal/client/openai.Client.
type ChatService interface {
	CompleteJSON(ctx context.Context, system string, userMessages ...string) (string, error)
}

const overlaySystemPrompt = "You are a concise onchain gas-efficiency coach for the Base network. " +
	"You give practical, non-hype guidance on reducing wasted gas and putting activity to work. " +
	"You only recommend protocols from the catalog you are given. You never give financial advice, " +
	"price predictions, or token picks."

const overlayFormatPrompt = `Respond with a single JSON object of exactly this shape and nothing else: ` +
	`{"tips":[{"tip": string, "protocol_ids": [string], "reasons_by_protocol": {id: string}}]}. ` +
	`Each tip is one short actionable sentence grounded in the wallet data. ` +
	`protocol_ids must come from the provided catalog. Do not wrap the JSON in markdown.`

// overlayInput is the wallet snapshot serialized into the model prompt.
type overlayInput struct {
	Address            string      `json:"address"`
	Chain              string      `json:"chain"`
	Window             string      `json:"window"`
	Metrics            Metrics     `json:"metrics"`
	HighValueCount     int         `json:"highValueCount"`
	BalanceEth         *float64    `json:"balanceEth"`
	RecentTransactions []TxSummary `json:"recentTransactions"`
	Catalog            []Protocol  `json:"protocolCatalog"`
}

type overlayTip struct {
	Tip               string            `json:"tip"`
	ProtocolIDs       []string          `json:"protocol_ids"`
	ReasonsByProtocol map[string]string `json:"reasons_by_protocol"`
}

type overlayPayload struct {
	Tips []overlayTip `json:"tips"`
}

// TryOverlay asks the model service for a replacement suggestion set. It is
// strictly accept-or-fallback: one attempt, and any transport, parse, or
// shape problem yields ok=false so the rule-based output stands. Overlay
// failure is never surfaced to the caller.
func TryOverlay(ctx context.Context, chat ChatService, address string, window Window, metrics Metrics, sample []TxSummary, balanceEth *float64) ([]string, []ProtocolTip, bool) {
	payload, err := json.Marshal(overlayInput{
		Address:            address,
		Chain:              "Base",
		Window:             window.Label,
		Metrics:            metrics,
		HighValueCount:     metrics.HighValueCount,
		BalanceEth:         balanceEth,
		RecentTransactions: sample,
		Catalog:            Catalog(),
	})
	if err != nil {
		logger.Warn("overlay input marshaling failed", zap.Error(err))
		return nil, nil, false
	}

	content, err := chat.CompleteJSON(ctx, overlaySystemPrompt, string(payload), overlayFormatPrompt)
	if err != nil {
		logger.Warn("model overlay skipped", zap.Error(err))
		return nil, nil, false
	}

	var parsed overlayPayload
	if err := json.Unmarshal([]byte(stripJSONFences(content)), &parsed); err != nil {
		logger.Warn("model overlay returned unparseable JSON", zap.Error(err))
		return nil, nil, false
	}

	if len(parsed.Tips) == 0 {
		logger.Warn("model overlay returned no tips")
		return nil, nil, false
	}

	var suggestions []string
	var protocolIDs []string
	reasons := make(map[string]string)

	for _, tip := range parsed.Tips {
		text := strings.TrimSpace(tip.Tip)
		if text == "" {
			continue
		}
		suggestions = append(suggestions, text)
		protocolIDs = append(protocolIDs, tip.ProtocolIDs...)
		for id, reason := range tip.ReasonsByProtocol {
			if _, exists := reasons[id]; !exists {
				reasons[id] = reason
			}
		}
	}

	if len(suggestions) == 0 {
		logger.Warn("model overlay tips were all empty")
		return nil, nil, false
	}

	return suggestions, ResolveTips(protocolIDs, reasons), true
}

// stripJSONFences tolerates a model that wraps its object in a markdown
// code fence despite instructions.
func stripJSONFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
