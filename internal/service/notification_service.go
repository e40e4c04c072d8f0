package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Moxxcompany/lockbay/internal/classifier"
	"github.com/Moxxcompany/lockbay/internal/core/ports"

	"github.com/rs/zerolog"
)

// notifyRetryIntervals spaces delivery re-attempts for transient gateway
// failures.
var notifyRetryIntervals = []time.Duration{
	15 * time.Second,
	60 * time.Second,
	2 * time.Minute,
}

// notifyPayload is the JSON body posted to the notification gateway.
type notifyPayload struct {
	Target  string `json:"target"` // "user" or "admins"
	UserID  int64  `json:"user_id,omitempty"`
	Message string `json:"message"`
	SentAt  int64  `json:"sent_at"`
}

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// notificationService implements ports.Notifier against an HTTP bot
// gateway. Strictly fire-and-forget: a notification failure is classified
// and logged but never propagates into a ledger path.
type notificationService struct {
	gatewayURL string
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewNotificationService creates a new notification service. An empty
// gatewayURL disables delivery; messages are only logged.
func NewNotificationService(gatewayURL string, httpClient HTTPClient, log zerolog.Logger) ports.Notifier {
	return &notificationService{
		gatewayURL: gatewayURL,
		httpClient: httpClient,
		log:        log,
	}
}

func (s *notificationService) NotifyUser(ctx context.Context, userID int64, message string) {
	s.dispatch(notifyPayload{Target: "user", UserID: userID, Message: message, SentAt: time.Now().Unix()})
}

func (s *notificationService) NotifyAdmins(ctx context.Context, message string) {
	s.dispatch(notifyPayload{Target: "admins", Message: message, SentAt: time.Now().Unix()})
}

func (s *notificationService) dispatch(payload notifyPayload) {
	s.log.Info().
		Str("target", payload.Target).
		Int64("user_id", payload.UserID).
		Str("message", payload.Message).
		Msg("notification queued")

	if s.gatewayURL == "" {
		return
	}
	go s.deliverWithRetries(payload)
}

// deliverWithRetries posts the payload, retrying transient failures.
func (s *notificationService) deliverWithRetries(payload notifyPayload) {
	body, err := json.Marshal(payload)
	if err != nil {
		s.log.Error().Err(err).Msg("notification: failed to marshal payload")
		return
	}

	for attempt := 0; attempt <= len(notifyRetryIntervals); attempt++ {
		if attempt > 0 {
			time.Sleep(notifyRetryIntervals[attempt-1])
		}

		req, err := http.NewRequest(http.MethodPost, s.gatewayURL, bytes.NewReader(body))
		if err != nil {
			s.log.Error().Err(err).Int("attempt", attempt+1).Msg("notification: failed to create request")
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.httpClient.Do(req)
		if err != nil {
			cls := classifier.ClassifyNotificationError(err, nil)
			s.log.Warn().Err(err).
				Int("attempt", attempt+1).
				Str("error_code", string(cls.Code)).
				Msg("notification: delivery failed")
			if !cls.Retryable {
				return
			}
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			s.log.Debug().Int("attempt", attempt+1).Msg("notification: delivered")
			return
		}
		s.log.Warn().
			Int("attempt", attempt+1).
			Int("status", resp.StatusCode).
			Msg("notification: non-2xx response, retrying")
	}

	s.log.Error().Str("target", payload.Target).Msg("notification: all retry attempts exhausted")
}
