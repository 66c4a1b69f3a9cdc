// Package wallet holds the client for the remote wallet service that
// every new user gets a wallet provisioned in.
package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client is a minimal wallet-service client. Provisioning is a single
// synchronous call on the create-user critical path, so the HTTP client
// carries a bounded timeout.
type Client struct {
	BaseURL string
	httpDo  *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		BaseURL: baseURL,
		httpDo: &http.Client{
			Timeout: timeout,
		},
	}
}

type createWalletRequest struct {
	UserCode string `json:"userCode"`
	Currency string `json:"currency"`
}

type createWalletResponse struct {
	WalletID string `json:"walletId"`
	UserCode string `json:"userCode"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

// Provision asks the wallet service to create a wallet for the given
// user code. Any transport error, timeout or non-2xx response is
// returned as an error; the caller decides how to compensate.
func (c *Client) Provision(ctx context.Context, userCode, currency string) error {
	data, err := json.Marshal(createWalletRequest{UserCode: userCode, Currency: currency})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/api/v1/wallets", c.BaseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpDo.Do(httpReq)
	if err != nil {
		return fmt.Errorf("wallet service request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errMap map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&errMap)
		return fmt.Errorf("wallet service http %d: %v", resp.StatusCode, errMap)
	}
	var out createWalletResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decode wallet response: %w", err)
	}
	return nil
}
