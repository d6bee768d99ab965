package basescan

import (
	"context"
	"encoding/json"

	httpClient "github.com/Solmidey/base-gas-coach/internal/client/http"
	"github.com/Solmidey/base-gas-coach/internal/helpers"

	"github.com/pkg/errors"
)

// balanceProbe attempts to extract the wei balance string from one of the
// result shapes Basescan has been observed to return.
type balanceProbe func(json.RawMessage) (string, bool)

// Ordered probes, first success wins. Keeping them as a list means a new
// explorer quirk is one more entry, not another branch.
var balanceProbes = []balanceProbe{
	// Direct numeric string: "result": "123456"
	func(raw json.RawMessage) (string, bool) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil || s == "" {
			return "", false
		}
		return s, true
	},
	// Object shape: "result": {"balance": "123456"} (or "Balance")
	func(raw json.RawMessage) (string, bool) {
		var o struct {
			Balance string `json:"balance"`
		}
		if err := json.Unmarshal(raw, &o); err != nil || o.Balance == "" {
			return "", false
		}
		return o.Balance, true
	},
	// Multi-account shape: "result": [{"account": …, "balance": "123456"}]
	func(raw json.RawMessage) (string, bool) {
		var list []struct {
			Balance string `json:"balance"`
		}
		if err := json.Unmarshal(raw, &list); err != nil || len(list) == 0 || list[0].Balance == "" {
			return "", false
		}
		return list[0].Balance, true
	},
}

// Balance fetches the wallet's current ETH balance. This call is
// best-effort: callers are expected to treat any error as "balance
// unknown" rather than failing their request.
func (c *Client) Balance(ctx context.Context, address string) (float64, error) {
	resp, err := c.httpClient.Get(
		ctx,
		"/api",
		httpClient.WithQueryParam("chainid", c.chainID),
		httpClient.WithQueryParam("module", "account"),
		httpClient.WithQueryParam("action", "balance"),
		httpClient.WithQueryParam("address", address),
		httpClient.WithQueryParam("tag", "latest"),
		httpClient.WithQueryParam("apikey", c.apiKey),
	)
	if err != nil {
		return 0, errors.Wrap(err, "failed to reach Basescan for balance")
	}

	var envelope apiResponse
	if err := c.httpClient.ProcessJSONResponse(resp, &envelope); err != nil {
		return 0, errors.Wrap(err, "failed to decode Basescan balance response")
	}

	if envelope.Status != "1" {
		return 0, errors.Errorf("Basescan balance error: %s", envelopeDetail(envelope))
	}

	for _, probe := range balanceProbes {
		wei, ok := probe(envelope.Result)
		if !ok {
			continue
		}
		if eth, parsed := helpers.WeiStringToEth(wei); parsed {
			return eth, nil
		}
	}

	return 0, errors.New("Basescan balance error: unrecognized result shape")
}
