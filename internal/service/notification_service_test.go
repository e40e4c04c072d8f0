package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHTTPClient records requests and replays canned results. done is
// signalled after every call so tests can wait for the delivery goroutine.
type fakeHTTPClient struct {
	mu     sync.Mutex
	bodies []string
	status int
	err    error
	done   chan struct{}
}

func newFakeHTTPClient(status int, err error) *fakeHTTPClient {
	return &fakeHTTPClient{status: status, err: err, done: make(chan struct{}, 8)}
}

func (c *fakeHTTPClient) Do(req *http.Request) (*http.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, _ := io.ReadAll(req.Body)
	c.bodies = append(c.bodies, string(b))
	c.done <- struct{}{}
	if c.err != nil {
		return nil, c.err
	}
	return &http.Response{StatusCode: c.status, Body: io.NopCloser(strings.NewReader(""))}, nil
}

func (c *fakeHTTPClient) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.bodies)
}

func (c *fakeHTTPClient) waitForCall(t *testing.T) {
	t.Helper()
	select {
	case <-c.done:
	case <-time.After(2 * time.Second):
		t.Fatal("notification gateway was never called")
	}
}

func TestNotifyUser_DeliversPayload(t *testing.T) {
	client := newFakeHTTPClient(http.StatusOK, nil)
	svc := NewNotificationService("http://gateway.local/notify", client, zerolog.Nop())

	svc.NotifyUser(context.Background(), 42, "cashout completed")
	client.waitForCall(t)

	var payload struct {
		Target  string `json:"target"`
		UserID  int64  `json:"user_id"`
		Message string `json:"message"`
		SentAt  int64  `json:"sent_at"`
	}
	require.NoError(t, json.Unmarshal([]byte(client.bodies[0]), &payload))
	assert.Equal(t, "user", payload.Target)
	assert.Equal(t, int64(42), payload.UserID)
	assert.Equal(t, "cashout completed", payload.Message)
	assert.NotZero(t, payload.SentAt)
}

func TestNotifyAdmins_OmitsUserID(t *testing.T) {
	client := newFakeHTTPClient(http.StatusOK, nil)
	svc := NewNotificationService("http://gateway.local/notify", client, zerolog.Nop())

	svc.NotifyAdmins(context.Background(), "manual review required")
	client.waitForCall(t)

	assert.Contains(t, client.bodies[0], `"target":"admins"`)
	assert.NotContains(t, client.bodies[0], "user_id")
}

func TestNotify_EmptyGatewayURL_LogsOnly(t *testing.T) {
	client := newFakeHTTPClient(http.StatusOK, nil)
	svc := NewNotificationService("", client, zerolog.Nop())

	svc.NotifyUser(context.Background(), 42, "cashout completed")
	svc.NotifyAdmins(context.Background(), "manual review required")

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, client.callCount())
}

func TestNotify_NonRetryableError_StopsAfterOneAttempt(t *testing.T) {
	client := newFakeHTTPClient(0, errors.New("401 unauthorized: invalid credentials"))
	svc := NewNotificationService("http://gateway.local/notify", client, zerolog.Nop())

	svc.NotifyAdmins(context.Background(), "manual review required")
	client.waitForCall(t)

	// A non-retryable classification aborts delivery immediately.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, client.callCount())
}
