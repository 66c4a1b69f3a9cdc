package checkers

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// WalletChecker probes the wallet service base URL. The create-user saga
// depends on the wallet service synchronously, so readiness reports it.
type WalletChecker struct {
	baseURL string
	httpDo  *http.Client
}

func NewWalletChecker(baseURL string) *WalletChecker {
	return &WalletChecker{
		baseURL: baseURL,
		httpDo:  &http.Client{Timeout: 2 * time.Second},
	}
}

func (c *WalletChecker) Name() string { return "wallet" }

func (c *WalletChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpDo.Do(req)
	if err != nil {
		return fmt.Errorf("wallet service unreachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("wallet service unhealthy: http %d", resp.StatusCode)
	}
	return nil
}
