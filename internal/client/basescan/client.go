package basescan

import (
	"encoding/json"
	"time"

	httpClient "github.com/Solmidey/base-gas-coach/internal/client/http"
)

const (
	// DefaultBaseURL is the Basescan query endpoint for Base mainnet.
	DefaultBaseURL = "https://api.basescan.org"

	// BaseChainID identifies Base mainnet on Etherscan-family explorers.
	BaseChainID = "8453"

	// txPageSize is the practical per-request cap on the explorer's free
	// tier. Fetches are best-effort recent activity, not a full ledger.
	txPageSize = "1000"
)

// Transaction is a raw explorer transaction record. All numeric fields are
// decimal strings exactly as Basescan delivers them.
type Transaction struct {
	GasUsed   string `json:"gasUsed"`
	GasPrice  string `json:"gasPrice"`
	Value     string `json:"value"`
	IsError   string `json:"isError"`
	From      string `json:"from"`
	To        string `json:"to"`
	TimeStamp string `json:"timeStamp"`
}

// apiResponse is the Etherscan-style envelope shared by every endpoint.
// Result is kept raw because its shape varies per endpoint and per outcome.
type apiResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// Client talks to the Basescan account API.
type Client struct {
	httpClient *httpClient.HTTPClient
	apiKey     string
	chainID    string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the explorer endpoint, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.httpClient = httpClient.NewHTTPClient(
			httpClient.WithBaseURL(baseURL),
			httpClient.WithTimeout(20*time.Second),
		)
	}
}

// NewClient creates a Basescan client for Base mainnet.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: httpClient.NewHTTPClient(
			httpClient.WithBaseURL(DefaultBaseURL),
			httpClient.WithTimeout(20*time.Second),
		),
		apiKey:  apiKey,
		chainID: BaseChainID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
