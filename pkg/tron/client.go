// Package tron fetches confirmed TRC20 transfers from the TronGrid API.
package tron

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Transfer is one confirmed inbound TRC20 transfer.
type Transfer struct {
	TxID   string
	From   string
	To     string
	Amount int64 // micro-units
}

// Source yields confirmed transfers to the watched wallet. The monitor
// consumes this interface; tests substitute fakes.
type Source interface {
	FetchTransfers(ctx context.Context) ([]Transfer, error)
}

// Client polls TronGrid for TRC20 transfers to a wallet.
type Client struct {
	http     *http.Client
	baseURL  string
	apiKey   string
	wallet   string
	contract string
	limit    int
}

var _ Source = (*Client)(nil)

// NewClient creates a TronGrid client watching transfers of the given
// contract into the given wallet.
func NewClient(baseURL, apiKey, wallet, contract string) *Client {
	return &Client{
		http:     &http.Client{Timeout: 10 * time.Second},
		baseURL:  baseURL,
		apiKey:   apiKey,
		wallet:   wallet,
		contract: contract,
		limit:    20,
	}
}

// FetchTransfers returns the latest confirmed transfers into the wallet.
// Transfers to other addresses or with malformed values are skipped.
func (c *Client) FetchTransfers(ctx context.Context) ([]Transfer, error) {
	u := fmt.Sprintf("%s/v1/accounts/%s/transactions/trc20", c.baseURL, url.PathEscape(c.wallet))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	q.Set("limit", strconv.Itoa(c.limit))
	q.Set("contract_address", c.contract)
	q.Set("only_confirmed", "true")
	req.URL.RawQuery = q.Encode()
	if c.apiKey != "" {
		req.Header.Set("TRON-PRO-API-KEY", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "trongrid request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("trongrid returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading trongrid response")
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.Get("success").Bool() {
		return nil, errors.New("trongrid reported failure")
	}

	var transfers []Transfer
	for _, tx := range parsed.Get("data").Array() {
		if tx.Get("to").String() != c.wallet {
			continue
		}
		amount, err := strconv.ParseInt(tx.Get("value").String(), 10, 64)
		if err != nil || amount <= 0 {
			continue
		}
		transfers = append(transfers, Transfer{
			TxID:   tx.Get("transaction_id").String(),
			From:   tx.Get("from").String(),
			To:     tx.Get("to").String(),
			Amount: amount,
		})
	}
	return transfers, nil
}
