package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Moxxcompany/lockbay/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RateServiceImpl implements ports.RateOracle against an HTTP price oracle
// with a Redis-backed TTL cache in front. A cached rate within TTL is
// authoritative; the oracle is only consulted on a miss.
type RateServiceImpl struct {
	oracleURL  string
	cache      ports.RateCache
	cacheTTL   time.Duration
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewRateService creates a new RateServiceImpl.
func NewRateService(oracleURL string, cache ports.RateCache, cacheTTL time.Duration, httpClient HTTPClient, log zerolog.Logger) *RateServiceImpl {
	return &RateServiceImpl{
		oracleURL:  oracleURL,
		cache:      cache,
		cacheTTL:   cacheTTL,
		httpClient: httpClient,
		log:        log,
	}
}

// rateResponse is the oracle's JSON answer. The rate is a string to keep
// full precision on the wire.
type rateResponse struct {
	Rate string `json:"rate"`
}

// Convert returns amount units of from expressed in to.
func (s *RateServiceImpl) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	rate, err := s.rate(ctx, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate), nil
}

func (s *RateServiceImpl) rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	key := from + ":" + to
	if cached, ok, err := s.cache.Get(ctx, key); err != nil {
		s.log.Warn().Err(err).Str("pair", key).Msg("rate cache read failed, querying oracle")
	} else if ok {
		return cached, nil
	}

	rate, err := s.fetch(ctx, from, to)
	if err != nil {
		return decimal.Zero, err
	}

	if err := s.cache.Set(ctx, key, rate, s.cacheTTL); err != nil {
		s.log.Warn().Err(err).Str("pair", key).Msg("rate cache write failed")
	}
	return rate, nil
}

func (s *RateServiceImpl) fetch(ctx context.Context, from, to string) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/rate?from=%s&to=%s", s.oracleURL, from, to)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("building oracle request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("querying rate oracle: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("rate oracle returned status %d", resp.StatusCode)
	}

	var body rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("decoding oracle response: %w", err)
	}
	rate, err := decimal.NewFromString(body.Rate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing oracle rate %q: %w", body.Rate, err)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("oracle returned non-positive rate %s for %s/%s", rate, from, to)
	}
	return rate, nil
}
