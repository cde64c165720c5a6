package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"sosAlert/internal/domain"
)

type twilioErrorResponse struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	MoreInfo string `json:"more_info"`
	Status   int    `json:"status"`
}

// TwilioClient sends SMS through the Twilio Messages API.
type TwilioClient struct {
	http   *resty.Client
	sid    string
	from   string
	logger *slog.Logger
}

func NewTwilioClient(baseURL, sid, token, from string, logger *slog.Logger) *TwilioClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15*time.Second).
		SetBasicAuth(sid, token).
		SetHeader("Accept", "application/json")

	return &TwilioClient{
		http:   client,
		sid:    sid,
		from:   from,
		logger: logger,
	}
}

func (c *TwilioClient) Send(ctx context.Context, to, body string) error {
	var apiErr twilioErrorResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"From": c.from,
			"To":   to,
			"Body": body,
		}).
		SetError(&apiErr).
		Post(fmt.Sprintf("/2010-04-01/Accounts/%s/Messages.json", c.sid))
	if err != nil {
		return fmt.Errorf("twilio send: %w", err)
	}

	if resp.IsError() {
		c.logger.Debug("Twilio API returned error",
			slog.Int("status_code", resp.StatusCode()),
			slog.Int("code", apiErr.Code),
		)
		de := &DeliveryError{
			Channel:    domain.ChannelSMS,
			StatusCode: resp.StatusCode(),
			Message:    apiErr.Message,
		}
		if apiErr.Code != 0 {
			de.Code = strconv.Itoa(apiErr.Code)
		}
		return de
	}

	return nil
}
