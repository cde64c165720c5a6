package notify_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sosAlert/internal/domain"
	"sosAlert/internal/notify"
	mock_notify "sosAlert/internal/notify/mocks"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testAlert(contacts ...domain.Contact) domain.Alert {
	return domain.Alert{
		IncidentID: uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		UserName:   "Alice",
		Lat:        55.75,
		Lon:        37.61,
		Contacts:   contacts,
	}
}

func TestDispatch_PushThenSMS_OneChannelPerContact(t *testing.T) {
	ctrl := gomock.NewController(t)
	push := mock_notify.NewMockPushSender(ctrl)
	sms := mock_notify.NewMockSMSSender(ctrl)

	wantPush := domain.PushMessage{
		Title: "SOS Alert",
		Body:  "Alice triggered an SOS.",
		Data: map[string]string{
			"incidentId": "11111111-1111-1111-1111-111111111111",
			"lat":        "55.75",
			"lon":        "37.61",
		},
	}
	wantSMS := "SOS Alert: Alice needs help. Location: https://maps.google.com/?q=55.75,37.61"

	push.EXPECT().Send(gomock.Any(), "tok1", wantPush).Return(nil).Times(1)
	sms.EXPECT().Send(gomock.Any(), "+15551234567", wantSMS).Return(nil).Times(1)

	d := notify.NewDispatcher(newTestLogger(), push, sms)
	results := d.Dispatch(context.Background(), testAlert(
		domain.Contact{PushToken: "tok1"},
		domain.Contact{Phone: "+15551234567"},
	))

	require.Len(t, results, 2)
	assert.Equal(t, domain.ChannelPush, results[0].Channel)
	assert.Equal(t, domain.OutcomeSent, results[0].Outcome)
	assert.Equal(t, 0, results[0].ContactIndex)
	assert.Equal(t, domain.ChannelSMS, results[1].Channel)
	assert.Equal(t, domain.OutcomeSent, results[1].Outcome)
	assert.Equal(t, 1, results[1].ContactIndex)
}

func TestDispatch_ContactWithTokenAndPhone_GetsPushOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	push := mock_notify.NewMockPushSender(ctrl)
	sms := mock_notify.NewMockSMSSender(ctrl)

	push.EXPECT().Send(gomock.Any(), "tok1", gomock.Any()).Return(nil).Times(1)
	sms.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	d := notify.NewDispatcher(newTestLogger(), push, sms)
	results := d.Dispatch(context.Background(), testAlert(
		domain.Contact{PushToken: "tok1", Phone: "+15551234567"},
	))

	require.Len(t, results, 1)
	assert.Equal(t, domain.ChannelPush, results[0].Channel)
}

func TestDispatch_NoSMSGateway_PhoneOnlyContactSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	push := mock_notify.NewMockPushSender(ctrl)

	d := notify.NewDispatcher(newTestLogger(), push, nil)
	results := d.Dispatch(context.Background(), testAlert(
		domain.Contact{Phone: "+15551234567"},
	))

	require.Len(t, results, 1)
	assert.Equal(t, domain.ChannelNone, results[0].Channel)
	assert.Equal(t, domain.OutcomeChannelUnavailable, results[0].Outcome)
}

func TestDispatch_EmptyContact_Skipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	push := mock_notify.NewMockPushSender(ctrl)
	sms := mock_notify.NewMockSMSSender(ctrl)

	d := notify.NewDispatcher(newTestLogger(), push, sms)
	results := d.Dispatch(context.Background(), testAlert(domain.Contact{}))

	require.Len(t, results, 1)
	assert.Equal(t, domain.OutcomeChannelUnavailable, results[0].Outcome)
}

func TestDispatch_NoContacts(t *testing.T) {
	d := notify.NewDispatcher(newTestLogger(), nil, nil)

	results := d.Dispatch(context.Background(), testAlert())
	assert.Empty(t, results)
}

func TestDispatch_PushFailure_DoesNotStopOthersOrFallBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	push := mock_notify.NewMockPushSender(ctrl)
	sms := mock_notify.NewMockSMSSender(ctrl)

	push.EXPECT().Send(gomock.Any(), "bad-token", gomock.Any()).
		Return(&notify.DeliveryError{Channel: domain.ChannelPush, StatusCode: 404, Message: "Requested entity was not found."}).
		Times(1)
	push.EXPECT().Send(gomock.Any(), "tok2", gomock.Any()).Return(nil).Times(1)
	sms.EXPECT().Send(gomock.Any(), "+15557654321", gomock.Any()).Return(nil).Times(1)

	d := notify.NewDispatcher(newTestLogger(), push, sms)
	results := d.Dispatch(context.Background(), testAlert(
		domain.Contact{PushToken: "bad-token", Phone: "+15551234567"},
		domain.Contact{PushToken: "tok2"},
		domain.Contact{Phone: "+15557654321"},
	))

	require.Len(t, results, 3)
	assert.Equal(t, domain.OutcomeDeliveryFailed, results[0].Outcome)
	assert.Equal(t, domain.ChannelPush, results[0].Channel)
	assert.Contains(t, results[0].Error, "status 404")
	assert.Equal(t, domain.OutcomeSent, results[1].Outcome)
	assert.Equal(t, domain.OutcomeSent, results[2].Outcome)
}

func TestDispatch_SMSFailureIsolated(t *testing.T) {
	ctrl := gomock.NewController(t)
	sms := mock_notify.NewMockSMSSender(ctrl)

	sms.EXPECT().Send(gomock.Any(), "+15550000001", gomock.Any()).Return(errors.New("gateway down")).Times(1)
	sms.EXPECT().Send(gomock.Any(), "+15550000002", gomock.Any()).Return(nil).Times(1)

	d := notify.NewDispatcher(newTestLogger(), nil, sms)
	results := d.Dispatch(context.Background(), testAlert(
		domain.Contact{Phone: "+15550000001"},
		domain.Contact{Phone: "+15550000002"},
	))

	require.Len(t, results, 2)
	assert.Equal(t, domain.OutcomeDeliveryFailed, results[0].Outcome)
	assert.Equal(t, "gateway down", results[0].Error)
	assert.Equal(t, domain.OutcomeSent, results[1].Outcome)
}

func TestDispatch_PushNotConfigured_RecordsFailureWithoutSMS(t *testing.T) {
	ctrl := gomock.NewController(t)
	sms := mock_notify.NewMockSMSSender(ctrl)
	sms.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	d := notify.NewDispatcher(newTestLogger(), nil, sms)
	results := d.Dispatch(context.Background(), testAlert(
		domain.Contact{PushToken: "tok1", Phone: "+15551234567"},
	))

	require.Len(t, results, 1)
	assert.Equal(t, domain.ChannelPush, results[0].Channel)
	assert.Equal(t, domain.OutcomeDeliveryFailed, results[0].Outcome)
	assert.Equal(t, notify.ErrPushNotConfigured.Error(), results[0].Error)
}

func TestDispatch_AttemptTimeout_ContextAware(t *testing.T) {
	ctrl := gomock.NewController(t)
	push := mock_notify.NewMockPushSender(ctrl)

	push.EXPECT().Send(gomock.Any(), "slow", gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ domain.PushMessage) error {
			<-ctx.Done()
			return ctx.Err()
		}).
		Times(1)
	push.EXPECT().Send(gomock.Any(), "fast", gomock.Any()).Return(nil).Times(1)

	d := notify.NewDispatcher(newTestLogger(), push, nil, notify.WithAttemptTimeout(50*time.Millisecond))
	results := d.Dispatch(context.Background(), testAlert(
		domain.Contact{PushToken: "slow"},
		domain.Contact{PushToken: "fast"},
	))

	require.Len(t, results, 2)
	assert.Equal(t, domain.OutcomeDeliveryFailed, results[0].Outcome)
	assert.Equal(t, domain.OutcomeSent, results[1].Outcome)
}

func TestDispatch_AttemptTimeout_BoundsUncooperativeSender(t *testing.T) {
	ctrl := gomock.NewController(t)
	push := mock_notify.NewMockPushSender(ctrl)

	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	push.EXPECT().Send(gomock.Any(), "stuck", gomock.Any()).
		DoAndReturn(func(context.Context, string, domain.PushMessage) error {
			<-release
			return nil
		}).
		Times(1)

	d := notify.NewDispatcher(newTestLogger(), push, nil, notify.WithAttemptTimeout(50*time.Millisecond))

	start := time.Now()
	results := d.Dispatch(context.Background(), testAlert(domain.Contact{PushToken: "stuck"}))

	assert.Less(t, time.Since(start), 2*time.Second)
	require.Len(t, results, 1)
	assert.Equal(t, domain.OutcomeDeliveryFailed, results[0].Outcome)
	assert.Contains(t, results[0].Error, context.DeadlineExceeded.Error())
}

func TestDispatch_SenderPanic_Recovered(t *testing.T) {
	ctrl := gomock.NewController(t)
	push := mock_notify.NewMockPushSender(ctrl)
	sms := mock_notify.NewMockSMSSender(ctrl)

	push.EXPECT().Send(gomock.Any(), "tok1", gomock.Any()).
		DoAndReturn(func(context.Context, string, domain.PushMessage) error {
			panic("nil map write")
		}).
		Times(1)
	sms.EXPECT().Send(gomock.Any(), "+15551234567", gomock.Any()).Return(nil).Times(1)

	d := notify.NewDispatcher(newTestLogger(), push, sms)
	results := d.Dispatch(context.Background(), testAlert(
		domain.Contact{PushToken: "tok1"},
		domain.Contact{Phone: "+15551234567"},
	))

	require.Len(t, results, 2)
	assert.Equal(t, domain.OutcomeDeliveryFailed, results[0].Outcome)
	assert.Contains(t, results[0].Error, "panic")
	assert.Equal(t, domain.OutcomeSent, results[1].Outcome)
}

func TestDispatch_BoundedConcurrency(t *testing.T) {
	ctrl := gomock.NewController(t)
	push := mock_notify.NewMockPushSender(ctrl)

	var inflight, peak atomic.Int32
	push.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, domain.PushMessage) error {
			n := inflight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(20 * time.Millisecond)
			inflight.Add(-1)
			return nil
		}).
		Times(6)

	contacts := make([]domain.Contact, 6)
	for i := range contacts {
		contacts[i] = domain.Contact{PushToken: uuid.NewString()}
	}

	d := notify.NewDispatcher(newTestLogger(), push, nil, notify.WithWorkers(2))
	results := d.Dispatch(context.Background(), testAlert(contacts...))

	require.Len(t, results, 6)
	for i, r := range results {
		assert.Equal(t, i, r.ContactIndex)
		assert.Equal(t, domain.OutcomeSent, r.Outcome)
	}
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestDispatch_EmptyNameFallbacks(t *testing.T) {
	ctrl := gomock.NewController(t)
	push := mock_notify.NewMockPushSender(ctrl)
	sms := mock_notify.NewMockSMSSender(ctrl)

	push.EXPECT().Send(gomock.Any(), "tok1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, msg domain.PushMessage) error {
			assert.Equal(t, "Someone triggered an SOS.", msg.Body)
			return nil
		}).
		Times(1)
	sms.EXPECT().Send(gomock.Any(), "+15551234567", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, body string) error {
			assert.Equal(t, "SOS Alert: User needs help. Location: https://maps.google.com/?q=55.75,37.61", body)
			return nil
		}).
		Times(1)

	alert := testAlert(domain.Contact{PushToken: "tok1"}, domain.Contact{Phone: "+15551234567"})
	alert.UserName = ""

	d := notify.NewDispatcher(newTestLogger(), push, sms)
	d.Dispatch(context.Background(), alert)
}
