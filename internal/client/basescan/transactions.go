package basescan

import (
	"context"
	"encoding/json"
	"strings"

	httpClient "github.com/Solmidey/base-gas-coach/internal/client/http"

	"github.com/pkg/errors"
)

// noTransactionsMessage is the status/message pair Basescan uses for an
// address with no history. It is a successful empty result, not a failure.
const noTransactionsMessage = "No transactions found"

// ListTransactions fetches the wallet's recent transactions, newest first,
// bounded by the explorer's page cap. An address with no history yields an
// empty slice and no error.
func (c *Client) ListTransactions(ctx context.Context, address string) ([]Transaction, error) {
	resp, err := c.httpClient.Get(
		ctx,
		"/api",
		httpClient.WithQueryParam("chainid", c.chainID),
		httpClient.WithQueryParam("module", "account"),
		httpClient.WithQueryParam("action", "txlist"),
		httpClient.WithQueryParam("address", address),
		httpClient.WithQueryParam("startblock", "0"),
		httpClient.WithQueryParam("endblock", "99999999"),
		httpClient.WithQueryParam("page", "1"),
		httpClient.WithQueryParam("offset", txPageSize),
		httpClient.WithQueryParam("sort", "desc"),
		httpClient.WithQueryParam("apikey", c.apiKey),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reach Basescan")
	}

	var envelope apiResponse
	if err := c.httpClient.ProcessJSONResponse(resp, &envelope); err != nil {
		return nil, errors.Wrap(err, "failed to decode Basescan response")
	}

	if envelope.Status == "0" && envelope.Message == noTransactionsMessage {
		return []Transaction{}, nil
	}

	if envelope.Status != "1" {
		return nil, errors.Errorf("Basescan error: %s", envelopeDetail(envelope))
	}

	var txs []Transaction
	if err := json.Unmarshal(envelope.Result, &txs); err != nil {
		return nil, errors.New("Basescan error: unexpected format")
	}

	return txs, nil
}

// envelopeDetail extracts the most useful error text from a failed envelope.
// Basescan puts the actionable detail sometimes in message, sometimes in a
// string-typed result.
func envelopeDetail(envelope apiResponse) string {
	parts := make([]string, 0, 2)
	if envelope.Message != "" {
		parts = append(parts, envelope.Message)
	}
	var resultText string
	if err := json.Unmarshal(envelope.Result, &resultText); err == nil && resultText != "" {
		parts = append(parts, resultText)
	}
	if len(parts) == 0 {
		return "unexpected response"
	}
	return strings.Join(parts, ": ")
}
