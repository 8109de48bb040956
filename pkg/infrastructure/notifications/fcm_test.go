package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/report"
)

type fakeSender struct {
	sent     *messaging.MulticastMessage
	response *messaging.BatchResponse
	err      error
}

func (f *fakeSender) SendEachForMulticast(ctx context.Context, m *messaging.MulticastMessage) (*messaging.BatchResponse, error) {
	f.sent = m
	return f.response, f.err
}

func TestSendPushNotification_NoTokens(t *testing.T) {
	sender := &fakeSender{}
	a := &FCMAdapter{client: sender}

	require.NoError(t, a.SendPushNotification(context.Background(), "u1", "t", "b", nil, nil))
	assert.Nil(t, sender.sent)
}

func TestSendPushNotification_Sends(t *testing.T) {
	sender := &fakeSender{response: &messaging.BatchResponse{SuccessCount: 2}}
	a := &FCMAdapter{client: sender}

	err := a.SendPushNotification(context.Background(), "u1", "Title", "Body", []string{"t1", "t2"}, map[string]string{"k": "v"})
	require.NoError(t, err)
	require.NotNil(t, sender.sent)
	assert.Equal(t, []string{"t1", "t2"}, sender.sent.Tokens)
	assert.Equal(t, "Title", sender.sent.Notification.Title)
}

func TestSendPushNotification_SendError(t *testing.T) {
	a := &FCMAdapter{client: &fakeSender{err: errors.New("unavailable")}}

	err := a.SendPushNotification(context.Background(), "u1", "t", "b", []string{"t1"}, nil)
	assert.Error(t, err)
}

func TestSendPushNotification_OtherFailuresKeepTokens(t *testing.T) {
	removed := false
	a := &FCMAdapter{
		client: &fakeSender{response: &messaging.BatchResponse{
			FailureCount: 1,
			SuccessCount: 1,
			Responses: []*messaging.SendResponse{
				{Success: true},
				{Error: errors.New("quota exceeded")},
			},
		}},
		removeTokens: func(ctx context.Context, userID string, tokens []interface{}) error {
			removed = true
			return nil
		},
	}

	require.NoError(t, a.SendPushNotification(context.Background(), "u1", "t", "b", []string{"t1", "t2"}, nil))
	assert.False(t, removed)
}

func TestReportReady(t *testing.T) {
	r := &report.Report{
		ID:          "u1_1706659200",
		PeriodStart: time.Unix(1706659200, 0),
		Sections:    report.Sections{Overview: report.OverviewSection{TotalUploads: 12}},
	}

	title, body, data := ReportReady(r)

	assert.Equal(t, "Your training report is ready", title)
	assert.Equal(t, "12 uploads analysed. See your progress and next steps.", body)
	assert.Equal(t, "u1_1706659200", data["reportId"])
	assert.Equal(t, "1706659200", data["periodStart"])
}
