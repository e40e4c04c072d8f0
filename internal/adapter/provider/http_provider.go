// Package provider adapts external payment providers (Kraken, Fincra,
// BlockBee) to the normalized ports.PaymentProvider contract. Provider
// error strings pass through untouched so the failure classifier sees the
// original message.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Moxxcompany/lockbay/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPProvider talks to one provider's REST API.
type HTTPProvider struct {
	name       string
	baseURL    string
	apiKey     string
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewHTTPProvider creates an adapter for the named provider.
func NewHTTPProvider(name, baseURL, apiKey string, httpClient HTTPClient, log zerolog.Logger) *HTTPProvider {
	return &HTTPProvider{
		name:       name,
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
		log:        log.With().Str("provider", name).Logger(),
	}
}

// Name returns the registry key for this provider.
func (p *HTTPProvider) Name() string { return p.name }

type addressRequest struct {
	UserID   int64  `json:"user_id"`
	Currency string `json:"currency"`
}

type addressResponse struct {
	Address string `json:"address"`
	Error   string `json:"error,omitempty"`
}

// CreatePaymentAddress asks the provider for a deposit address bound to
// this user and currency.
func (p *HTTPProvider) CreatePaymentAddress(ctx context.Context, userID int64, currency string) (string, error) {
	var out addressResponse
	if err := p.post(ctx, "/v1/addresses", addressRequest{UserID: userID, Currency: currency}, &out); err != nil {
		return "", err
	}
	if out.Error != "" {
		return "", fmt.Errorf("%s address creation: %s", p.name, out.Error)
	}
	if out.Address == "" {
		return "", fmt.Errorf("%s returned empty payment address", p.name)
	}
	return out.Address, nil
}

type withdrawRequest struct {
	Destination string `json:"destination"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
}

type withdrawResponse struct {
	Success bool   `json:"success"`
	TxID    string `json:"tx_id"`
	Error   string `json:"error,omitempty"`
}

// Withdraw sends funds externally. A declined send is a normalized result,
// not an error: only transport and decoding faults surface as errors.
func (p *HTTPProvider) Withdraw(ctx context.Context, destination string, amount decimal.Decimal, currency string) (*ports.WithdrawalResult, error) {
	var out withdrawResponse
	err := p.post(ctx, "/v1/withdrawals", withdrawRequest{
		Destination: destination,
		Amount:      amount.String(),
		Currency:    currency,
	}, &out)
	if err != nil {
		return nil, err
	}

	if !out.Success {
		p.log.Warn().Str("error", out.Error).Msg("withdrawal declined by provider")
		return &ports.WithdrawalResult{Success: false, Error: out.Error}, nil
	}
	p.log.Info().Str("external_tx_id", out.TxID).Str("amount", amount.String()).Msg("withdrawal accepted")
	return &ports.WithdrawalResult{Success: true, ExternalTxID: out.TxID}, nil
}

func (p *HTTPProvider) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", p.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", p.name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", p.name, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read %s response: %w", p.name, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s returned %s: %s", p.name, path, resp.Status, string(raw))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", p.name, err)
	}
	return nil
}
