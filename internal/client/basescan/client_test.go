package basescan

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAddress = "0x4200000000000000000000000000000000000006"

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-key", WithBaseURL(srv.URL))
}

func TestListTransactionsSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "account", q.Get("module"))
		assert.Equal(t, "txlist", q.Get("action"))
		assert.Equal(t, testAddress, q.Get("address"))
		assert.Equal(t, "desc", q.Get("sort"))
		assert.Equal(t, "test-key", q.Get("apikey"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "1",
			"message": "OK",
			"result": [
				{"gasUsed":"21000","gasPrice":"1000000000","value":"0","isError":"0",
				 "from":"0x1111111111111111111111111111111111111111",
				 "to":"0x2222222222222222222222222222222222222222",
				 "timeStamp":"1699999999"}
			]
		}`))
	})

	txs, err := client.ListTransactions(context.Background(), testAddress)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "21000", txs[0].GasUsed)
	assert.Equal(t, "1699999999", txs[0].TimeStamp)
}

func TestListTransactionsNoHistoryIsEmptySuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"0","message":"No transactions found","result":[]}`))
	})

	txs, err := client.ListTransactions(context.Background(), testAddress)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestListTransactionsErrorStatusCarriesDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"0","message":"NOTOK","result":"Invalid API Key"}`))
	})

	_, err := client.ListTransactions(context.Background(), testAddress)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOTOK")
	assert.Contains(t, err.Error(), "Invalid API Key")
}

func TestListTransactionsNonArrayResultIsUnexpectedFormat(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"1","message":"OK","result":{"weird":"shape"}}`))
	})

	_, err := client.ListTransactions(context.Background(), testAddress)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected format")
}

func TestBalanceDirectStringShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "balance", r.URL.Query().Get("action"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"1","message":"OK","result":"1000000000000000000"}`))
	})

	eth, err := client.Balance(context.Background(), testAddress)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, eth, 1e-12)
}

func TestBalanceObjectShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"1","message":"OK","result":{"Balance":"500000000000000000"}}`))
	})

	eth, err := client.Balance(context.Background(), testAddress)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, eth, 1e-12)
}

func TestBalanceArrayShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"1","message":"OK","result":[{"account":"0xabc","balance":"250000000000000000"}]}`))
	})

	eth, err := client.Balance(context.Background(), testAddress)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, eth, 1e-12)
}

func TestBalanceUnrecognizedShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"1","message":"OK","result":42}`))
	})

	_, err := client.Balance(context.Background(), testAddress)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized result shape")
}

func TestBalanceServerErrorReturnsError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.Balance(context.Background(), testAddress)
	require.Error(t, err)
}

func TestBalanceNonSuccessStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"0","message":"NOTOK","result":"Max rate limit reached"}`))
	})

	_, err := client.Balance(context.Background(), testAddress)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Max rate limit reached")
}
