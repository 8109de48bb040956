package shared

import (
	"context"
	"time"

	"github.com/cloudevents/sdk-go/v2/event"

	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/report"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/types"
)

// --- Persistence Interfaces ---

type Database interface {
	SetExecution(ctx context.Context, record *types.ExecutionRecord) error
	UpdateExecution(ctx context.Context, userID string, id string, data map[string]interface{}) error

	// Users
	GetUserProfile(ctx context.Context, userID string) (*report.UserProfile, error)
	GetAccountCreatedAt(ctx context.Context, userID string) (time.Time, error)

	// Report cycles: users/{uid}/report_cycle/current
	GetReportCycle(ctx context.Context, userID string) (*report.ReportCycle, error)
	CreateReportCycle(ctx context.Context, cycle *report.ReportCycle) error
	SetReportCycle(ctx context.Context, cycle *report.ReportCycle) error

	// Reports. CreateReport fails with report.ErrReportExists when the id is taken.
	CreateReport(ctx context.Context, r *report.Report) error
	SetReport(ctx context.Context, r *report.Report) error
	GetReport(ctx context.Context, userID string, reportID string) (*report.Report, error)

	// Raw activity, read-only. Ranges are [start, end); a zero start means unbounded.
	GetActivityRecords(ctx context.Context, userID string, start, end time.Time) ([]report.ActivityRecord, error)
	GetAnnotations(ctx context.Context, userID string, start, end time.Time) ([]report.Annotation, error)

	// Nutrition
	GetNutritionEngagement(ctx context.Context, userID string) (*report.NutritionEngagement, error)
	SetNutritionEngagement(ctx context.Context, userID string, e *report.NutritionEngagement) error
	AddTipView(ctx context.Context, view *report.TipView) (newTip bool, err error)
	CountViewedTips(ctx context.Context, userID string, start, end time.Time) (int, error)
	CountTips(ctx context.Context) (int, error)
}

// --- Identity & Billing Interfaces ---

// Authenticator resolves a bearer token to a user id.
type Authenticator interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

// SubscriptionSource lists the module categories a user is entitled to.
type SubscriptionSource interface {
	GetSubscribedCategories(ctx context.Context, userID string) ([]string, error)
}

// --- Messaging Interfaces ---

type Publisher interface {
	PublishCloudEvent(ctx context.Context, topic string, e event.Event) (string, error)
}

// --- Storage Interfaces ---

type BlobStore interface {
	Write(ctx context.Context, bucket, object string, data []byte) error
	Read(ctx context.Context, bucket, object string) ([]byte, error)
}

// --- Notification Interfaces ---

type NotificationService interface {
	SendPushNotification(ctx context.Context, userID string, title, body string, tokens []string, data map[string]string) error
}

// --- Rendering Interfaces ---

// SummaryRenderer turns a finished report into optional prose. Its output is
// stored alongside the deterministic narrative and never replaces it.
type SummaryRenderer interface {
	RenderSummary(ctx context.Context, r *report.Report) (string, error)
}
