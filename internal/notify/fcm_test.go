package notify_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"sosAlert/internal/domain"
	"sosAlert/internal/notify"
)

func TestFCMClient_Send_OK(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/projects/sos-project/messages:send", r.URL.Path)
		assert.Equal(t, "Bearer access-123", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"projects/sos-project/messages/0:1"}`))
	}))
	defer srv.Close()

	c := notify.NewFCMClient(srv.URL, "sos-project", oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "access-123"}), newTestLogger())

	err := c.Send(context.Background(), "device-token", domain.PushMessage{
		Title: "SOS Alert",
		Body:  "Alice triggered an SOS.",
		Data:  map[string]string{"incidentId": "abc", "lat": "1.5", "lon": "2.5"},
	})
	require.NoError(t, err)

	msg := got["message"].(map[string]any)
	assert.Equal(t, "device-token", msg["token"])
	assert.Equal(t, map[string]any{"title": "SOS Alert", "body": "Alice triggered an SOS."}, msg["notification"])
	assert.Equal(t, map[string]any{"incidentId": "abc", "lat": "1.5", "lon": "2.5"}, msg["data"])
}

func TestFCMClient_Send_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":404,"message":"Requested entity was not found.","status":"NOT_FOUND"}}`))
	}))
	defer srv.Close()

	c := notify.NewFCMClient(srv.URL, "sos-project", oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "x"}), newTestLogger())

	err := c.Send(context.Background(), "stale-token", domain.PushMessage{Title: "t", Body: "b"})
	require.Error(t, err)

	var de *notify.DeliveryError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, domain.ChannelPush, de.Channel)
	assert.Equal(t, http.StatusNotFound, de.StatusCode)
	assert.Equal(t, "NOT_FOUND", de.Code)
	assert.Equal(t, "Requested entity was not found.", de.Message)
}

type failingTokenSource struct{}

func (failingTokenSource) Token() (*oauth2.Token, error) {
	return nil, errors.New("metadata unreachable")
}

func TestFCMClient_Send_TokenError(t *testing.T) {
	c := notify.NewFCMClient("http://127.0.0.1:1", "sos-project", failingTokenSource{}, newTestLogger())

	err := c.Send(context.Background(), "tok", domain.PushMessage{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metadata unreachable")
}

func TestNewFCMClientFromCredentials_Invalid(t *testing.T) {
	_, err := notify.NewFCMClientFromCredentials(context.Background(), "https://fcm.googleapis.com", []byte("{not json"), newTestLogger())
	require.Error(t, err)
}
