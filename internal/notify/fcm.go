package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"sosAlert/internal/domain"
)

const fcmScope = "https://www.googleapis.com/auth/firebase.messaging"

type fcmRequest struct {
	Message fcmMessage `json:"message"`
}

type fcmMessage struct {
	Token        string            `json:"token"`
	Notification fcmNotification   `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type fcmErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// FCMClient sends push notifications through the FCM HTTP v1 API.
type FCMClient struct {
	http      *resty.Client
	projectID string
	tokens    oauth2.TokenSource
	logger    *slog.Logger
}

func NewFCMClient(baseURL, projectID string, tokens oauth2.TokenSource, logger *slog.Logger) *FCMClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15*time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &FCMClient{
		http:      client,
		projectID: projectID,
		tokens:    tokens,
		logger:    logger,
	}
}

// NewFCMClientFromCredentials builds a client from a Firebase service account key.
func NewFCMClientFromCredentials(ctx context.Context, baseURL string, serviceAccountJSON []byte, logger *slog.Logger) (*FCMClient, error) {
	creds, err := google.CredentialsFromJSON(ctx, serviceAccountJSON, fcmScope)
	if err != nil {
		return nil, fmt.Errorf("parse firebase credentials: %w", err)
	}
	if creds.ProjectID == "" {
		return nil, errors.New("firebase credentials have no project_id")
	}
	return NewFCMClient(baseURL, creds.ProjectID, creds.TokenSource, logger), nil
}

func (c *FCMClient) Send(ctx context.Context, token string, msg domain.PushMessage) error {
	accessToken, err := c.tokens.Token()
	if err != nil {
		return fmt.Errorf("fcm access token: %w", err)
	}

	body := fcmRequest{
		Message: fcmMessage{
			Token:        token,
			Notification: fcmNotification{Title: msg.Title, Body: msg.Body},
			Data:         msg.Data,
		},
	}

	var apiErr fcmErrorResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken.AccessToken).
		SetBody(body).
		SetError(&apiErr).
		Post(fmt.Sprintf("/v1/projects/%s/messages:send", c.projectID))
	if err != nil {
		return fmt.Errorf("fcm send: %w", err)
	}

	if resp.IsError() {
		c.logger.Debug("FCM API returned error",
			slog.Int("status_code", resp.StatusCode()),
			slog.String("status", apiErr.Error.Status),
		)
		return &DeliveryError{
			Channel:    domain.ChannelPush,
			StatusCode: resp.StatusCode(),
			Code:       apiErr.Error.Status,
			Message:    apiErr.Error.Message,
		}
	}

	return nil
}
