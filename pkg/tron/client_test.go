package tron

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wallet = "TEhcSVUBxrXmAwQKKhruae1PLE8S8Ja7dG"
const contract = "TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t"

const sampleResponse = `{
  "success": true,
  "data": [
    {
      "transaction_id": "aaa111",
      "from": "TSender1111111111111111111111111111",
      "to": "TEhcSVUBxrXmAwQKKhruae1PLE8S8Ja7dG",
      "value": "10003177"
    },
    {
      "transaction_id": "bbb222",
      "from": "TEhcSVUBxrXmAwQKKhruae1PLE8S8Ja7dG",
      "to": "TSomeoneElse11111111111111111111111",
      "value": "5000000"
    },
    {
      "transaction_id": "ccc333",
      "from": "TSender2222222222222222222222222222",
      "to": "TEhcSVUBxrXmAwQKKhruae1PLE8S8Ja7dG",
      "value": "not-a-number"
    }
  ]
}`

func TestFetchTransfers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/accounts/"+wallet+"/transactions/trc20", r.URL.Path)
		assert.Equal(t, contract, r.URL.Query().Get("contract_address"))
		assert.Equal(t, "true", r.URL.Query().Get("only_confirmed"))
		assert.Equal(t, "secret-key", r.Header.Get("TRON-PRO-API-KEY"))
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret-key", wallet, contract)
	transfers, err := c.FetchTransfers(context.Background())
	require.NoError(t, err)

	// Outbound and malformed entries are skipped.
	require.Len(t, transfers, 1)
	assert.Equal(t, "aaa111", transfers[0].TxID)
	assert.Equal(t, int64(10_003_177), transfers[0].Amount)
	assert.Equal(t, wallet, transfers[0].To)
}

func TestFetchTransfersAPIFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": false}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", wallet, contract)
	_, err := c.FetchTransfers(context.Background())
	assert.Error(t, err)
}

func TestFetchTransfersHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", wallet, contract)
	_, err := c.FetchTransfers(context.Background())
	assert.Error(t, err)
}
