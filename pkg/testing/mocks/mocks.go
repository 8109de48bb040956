package mocks

import (
	"context"
	"time"

	"github.com/cloudevents/sdk-go/v2/event"

	shared "github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/report"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/types"
)

var (
	_ shared.Database            = (*MockDatabase)(nil)
	_ shared.Publisher           = (*MockPublisher)(nil)
	_ shared.BlobStore           = (*MockBlobStore)(nil)
	_ shared.Authenticator       = (*MockAuthenticator)(nil)
	_ shared.SubscriptionSource  = (*MockSubscriptionSource)(nil)
	_ shared.NotificationService = (*MockNotificationService)(nil)
	_ shared.SummaryRenderer     = (*MockSummaryRenderer)(nil)
)

// --- Mock Database ---
// Unset funcs return empty results; lookups of single documents return report.ErrNotFound.
type MockDatabase struct {
	SetExecutionFunc           func(ctx context.Context, record *types.ExecutionRecord) error
	UpdateExecutionFunc        func(ctx context.Context, userID string, id string, data map[string]interface{}) error
	GetUserProfileFunc         func(ctx context.Context, userID string) (*report.UserProfile, error)
	GetAccountCreatedAtFunc    func(ctx context.Context, userID string) (time.Time, error)
	GetReportCycleFunc         func(ctx context.Context, userID string) (*report.ReportCycle, error)
	CreateReportCycleFunc      func(ctx context.Context, cycle *report.ReportCycle) error
	SetReportCycleFunc         func(ctx context.Context, cycle *report.ReportCycle) error
	CreateReportFunc           func(ctx context.Context, r *report.Report) error
	SetReportFunc              func(ctx context.Context, r *report.Report) error
	GetReportFunc              func(ctx context.Context, userID string, reportID string) (*report.Report, error)
	GetActivityRecordsFunc     func(ctx context.Context, userID string, start, end time.Time) ([]report.ActivityRecord, error)
	GetAnnotationsFunc         func(ctx context.Context, userID string, start, end time.Time) ([]report.Annotation, error)
	GetNutritionEngagementFunc func(ctx context.Context, userID string) (*report.NutritionEngagement, error)
	SetNutritionEngagementFunc func(ctx context.Context, userID string, e *report.NutritionEngagement) error
	AddTipViewFunc             func(ctx context.Context, view *report.TipView) (bool, error)
	CountViewedTipsFunc        func(ctx context.Context, userID string, start, end time.Time) (int, error)
	CountTipsFunc              func(ctx context.Context) (int, error)
}

func (m *MockDatabase) SetExecution(ctx context.Context, record *types.ExecutionRecord) error {
	if m.SetExecutionFunc != nil {
		return m.SetExecutionFunc(ctx, record)
	}
	return nil
}
func (m *MockDatabase) UpdateExecution(ctx context.Context, userID string, id string, data map[string]interface{}) error {
	if m.UpdateExecutionFunc != nil {
		return m.UpdateExecutionFunc(ctx, userID, id, data)
	}
	return nil
}
func (m *MockDatabase) GetUserProfile(ctx context.Context, userID string) (*report.UserProfile, error) {
	if m.GetUserProfileFunc != nil {
		return m.GetUserProfileFunc(ctx, userID)
	}
	return nil, report.ErrNotFound
}
func (m *MockDatabase) GetAccountCreatedAt(ctx context.Context, userID string) (time.Time, error) {
	if m.GetAccountCreatedAtFunc != nil {
		return m.GetAccountCreatedAtFunc(ctx, userID)
	}
	return time.Time{}, report.ErrNotFound
}
func (m *MockDatabase) GetReportCycle(ctx context.Context, userID string) (*report.ReportCycle, error) {
	if m.GetReportCycleFunc != nil {
		return m.GetReportCycleFunc(ctx, userID)
	}
	return nil, report.ErrNotFound
}
func (m *MockDatabase) CreateReportCycle(ctx context.Context, cycle *report.ReportCycle) error {
	if m.CreateReportCycleFunc != nil {
		return m.CreateReportCycleFunc(ctx, cycle)
	}
	return nil
}
func (m *MockDatabase) SetReportCycle(ctx context.Context, cycle *report.ReportCycle) error {
	if m.SetReportCycleFunc != nil {
		return m.SetReportCycleFunc(ctx, cycle)
	}
	return nil
}
func (m *MockDatabase) CreateReport(ctx context.Context, r *report.Report) error {
	if m.CreateReportFunc != nil {
		return m.CreateReportFunc(ctx, r)
	}
	return nil
}
func (m *MockDatabase) SetReport(ctx context.Context, r *report.Report) error {
	if m.SetReportFunc != nil {
		return m.SetReportFunc(ctx, r)
	}
	return nil
}
func (m *MockDatabase) GetReport(ctx context.Context, userID string, reportID string) (*report.Report, error) {
	if m.GetReportFunc != nil {
		return m.GetReportFunc(ctx, userID, reportID)
	}
	return nil, report.ErrNotFound
}
func (m *MockDatabase) GetActivityRecords(ctx context.Context, userID string, start, end time.Time) ([]report.ActivityRecord, error) {
	if m.GetActivityRecordsFunc != nil {
		return m.GetActivityRecordsFunc(ctx, userID, start, end)
	}
	return nil, nil
}
func (m *MockDatabase) GetAnnotations(ctx context.Context, userID string, start, end time.Time) ([]report.Annotation, error) {
	if m.GetAnnotationsFunc != nil {
		return m.GetAnnotationsFunc(ctx, userID, start, end)
	}
	return nil, nil
}
func (m *MockDatabase) GetNutritionEngagement(ctx context.Context, userID string) (*report.NutritionEngagement, error) {
	if m.GetNutritionEngagementFunc != nil {
		return m.GetNutritionEngagementFunc(ctx, userID)
	}
	return nil, report.ErrNotFound
}
func (m *MockDatabase) SetNutritionEngagement(ctx context.Context, userID string, e *report.NutritionEngagement) error {
	if m.SetNutritionEngagementFunc != nil {
		return m.SetNutritionEngagementFunc(ctx, userID, e)
	}
	return nil
}
func (m *MockDatabase) AddTipView(ctx context.Context, view *report.TipView) (bool, error) {
	if m.AddTipViewFunc != nil {
		return m.AddTipViewFunc(ctx, view)
	}
	return true, nil
}
func (m *MockDatabase) CountViewedTips(ctx context.Context, userID string, start, end time.Time) (int, error) {
	if m.CountViewedTipsFunc != nil {
		return m.CountViewedTipsFunc(ctx, userID, start, end)
	}
	return 0, nil
}
func (m *MockDatabase) CountTips(ctx context.Context) (int, error) {
	if m.CountTipsFunc != nil {
		return m.CountTipsFunc(ctx)
	}
	return 0, nil
}

// --- Mock Publisher ---
type MockPublisher struct {
	PublishCloudEventFunc func(ctx context.Context, topic string, e event.Event) (string, error)
}

func (m *MockPublisher) PublishCloudEvent(ctx context.Context, topic string, e event.Event) (string, error) {
	if m.PublishCloudEventFunc != nil {
		return m.PublishCloudEventFunc(ctx, topic, e)
	}
	return "msg-id", nil
}

// --- Mock Storage ---
type MockBlobStore struct {
	WriteFunc func(ctx context.Context, bucket, object string, data []byte) error
	ReadFunc  func(ctx context.Context, bucket, object string) ([]byte, error)
}

func (m *MockBlobStore) Write(ctx context.Context, bucket, object string, data []byte) error {
	if m.WriteFunc != nil {
		return m.WriteFunc(ctx, bucket, object, data)
	}
	return nil
}
func (m *MockBlobStore) Read(ctx context.Context, bucket, object string) ([]byte, error) {
	if m.ReadFunc != nil {
		return m.ReadFunc(ctx, bucket, object)
	}
	return []byte("mock-data"), nil
}

// --- Mock Auth ---
type MockAuthenticator struct {
	VerifyTokenFunc func(ctx context.Context, token string) (string, error)
}

func (m *MockAuthenticator) VerifyToken(ctx context.Context, token string) (string, error) {
	if m.VerifyTokenFunc != nil {
		return m.VerifyTokenFunc(ctx, token)
	}
	if token == "" {
		return "", report.ErrUnauthorized
	}
	return token, nil
}

// --- Mock Subscriptions ---
type MockSubscriptionSource struct {
	GetSubscribedCategoriesFunc func(ctx context.Context, userID string) ([]string, error)
}

func (m *MockSubscriptionSource) GetSubscribedCategories(ctx context.Context, userID string) ([]string, error) {
	if m.GetSubscribedCategoriesFunc != nil {
		return m.GetSubscribedCategoriesFunc(ctx, userID)
	}
	return nil, nil
}

// --- Mock Notifications ---
type MockNotificationService struct {
	SendPushNotificationFunc func(ctx context.Context, userID string, title, body string, tokens []string, data map[string]string) error
}

func (m *MockNotificationService) SendPushNotification(ctx context.Context, userID string, title, body string, tokens []string, data map[string]string) error {
	if m.SendPushNotificationFunc != nil {
		return m.SendPushNotificationFunc(ctx, userID, title, body, tokens, data)
	}
	return nil
}

// --- Mock Renderer ---
type MockSummaryRenderer struct {
	RenderSummaryFunc func(ctx context.Context, r *report.Report) (string, error)
}

func (m *MockSummaryRenderer) RenderSummary(ctx context.Context, r *report.Report) (string, error) {
	if m.RenderSummaryFunc != nil {
		return m.RenderSummaryFunc(ctx, r)
	}
	return "", nil
}
