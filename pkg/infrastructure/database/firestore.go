package database

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	shared "github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/report"
	storage "github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/storage/firestore"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/types"
)

// FirestoreAdapter provides database operations using Firestore
// It wraps our typed storage client
type FirestoreAdapter struct {
	Client  *firestore.Client
	storage *storage.Client // internal typed wrapper
}

var _ shared.Database = (*FirestoreAdapter)(nil)

func NewFirestoreAdapter(client *firestore.Client) *FirestoreAdapter {
	return &FirestoreAdapter{
		Client:  client,
		storage: storage.NewClient(client),
	}
}

// mapError translates Firestore status codes into domain sentinels.
func mapError(err error) error {
	switch status.Code(err) {
	case codes.OK:
		return err
	case codes.NotFound:
		return fmt.Errorf("%w: %v", report.ErrNotFound, err)
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %v", report.ErrReportExists, err)
	default:
		return err
	}
}

// --- Executions ---

func (a *FirestoreAdapter) SetExecution(ctx context.Context, record *types.ExecutionRecord) error {
	if record.UserID == "" {
		return a.storage.OrphanedExecutions().Doc(record.ExecutionID).Set(ctx, record)
	}
	return a.storage.UserExecutions(record.UserID).Doc(record.ExecutionID).Set(ctx, record)
}

func (a *FirestoreAdapter) UpdateExecution(ctx context.Context, userID string, id string, data map[string]interface{}) error {
	if userID == "" {
		return a.storage.OrphanedExecutions().Doc(id).Update(ctx, data)
	}
	return a.storage.UserExecutions(userID).Doc(id).Update(ctx, data)
}

// --- Users ---

func (a *FirestoreAdapter) GetUserProfile(ctx context.Context, userID string) (*report.UserProfile, error) {
	profile, err := a.storage.Users().Doc(userID).Get(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	if profile.UserID == "" {
		profile.UserID = userID
	}
	return profile, nil
}

func (a *FirestoreAdapter) GetAccountCreatedAt(ctx context.Context, userID string) (time.Time, error) {
	profile, err := a.GetUserProfile(ctx, userID)
	if err != nil {
		return time.Time{}, err
	}
	return profile.CreatedAt, nil
}

// --- Report cycles ---

func (a *FirestoreAdapter) GetReportCycle(ctx context.Context, userID string) (*report.ReportCycle, error) {
	c, err := a.storage.ReportCycles(userID).Doc(shared.ReportCycleDocID).Get(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return c, nil
}

// CreateReportCycle fails if a concurrent invocation created the cycle first.
func (a *FirestoreAdapter) CreateReportCycle(ctx context.Context, c *report.ReportCycle) error {
	return mapError(a.storage.ReportCycles(c.UserID).Doc(shared.ReportCycleDocID).Create(ctx, c))
}

func (a *FirestoreAdapter) SetReportCycle(ctx context.Context, c *report.ReportCycle) error {
	return a.storage.ReportCycles(c.UserID).Doc(shared.ReportCycleDocID).Set(ctx, c)
}

// --- Reports ---

func (a *FirestoreAdapter) CreateReport(ctx context.Context, r *report.Report) error {
	return mapError(a.storage.Reports().Doc(r.ID).Create(ctx, r))
}

func (a *FirestoreAdapter) SetReport(ctx context.Context, r *report.Report) error {
	return a.storage.Reports().Doc(r.ID).Set(ctx, r)
}

func (a *FirestoreAdapter) GetReport(ctx context.Context, userID string, reportID string) (*report.Report, error) {
	r, err := a.storage.Reports().Doc(reportID).Get(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	if r.UserID != userID {
		return nil, report.ErrNotFound
	}
	return r, nil
}

// --- Raw activity ---

func rangeQuery(q firestore.Query, field string, start, end time.Time) firestore.Query {
	if !start.IsZero() {
		q = q.Where(field, ">=", start)
	}
	if !end.IsZero() {
		q = q.Where(field, "<", end)
	}
	return q.OrderBy(field, firestore.Asc)
}

func (a *FirestoreAdapter) GetActivityRecords(ctx context.Context, userID string, start, end time.Time) ([]report.ActivityRecord, error) {
	videos := a.storage.Videos()
	q := rangeQuery(videos.Ref.Where("user_id", "==", userID), "created_at", start, end)
	docs, err := videos.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	out := make([]report.ActivityRecord, 0, len(docs))
	for _, d := range docs {
		out = append(out, *d)
	}
	return out, nil
}

func (a *FirestoreAdapter) GetAnnotations(ctx context.Context, userID string, start, end time.Time) ([]report.Annotation, error) {
	annotations := a.storage.Annotations()
	q := rangeQuery(annotations.Ref.Where("athlete_id", "==", userID), "created_at", start, end)
	docs, err := annotations.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list annotations: %w", err)
	}
	out := make([]report.Annotation, 0, len(docs))
	for _, d := range docs {
		out = append(out, *d)
	}
	return out, nil
}

// --- Nutrition ---

func (a *FirestoreAdapter) GetNutritionEngagement(ctx context.Context, userID string) (*report.NutritionEngagement, error) {
	e, err := a.storage.NutritionStreaks().Doc(userID).Get(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return e, nil
}

func (a *FirestoreAdapter) SetNutritionEngagement(ctx context.Context, userID string, e *report.NutritionEngagement) error {
	return a.storage.NutritionStreaks().Doc(userID).Set(ctx, e)
}

// AddTipView records a view and reports whether the user had never opened
// this tip before.
func (a *FirestoreAdapter) AddTipView(ctx context.Context, view *report.TipView) (bool, error) {
	views := a.storage.TipViews()
	seen, err := views.List(ctx, views.Ref.
		Where("user_id", "==", view.UserID).
		Where("tip_id", "==", view.TipID).
		Limit(1))
	if err != nil {
		return false, fmt.Errorf("lookup tip view: %w", err)
	}
	if err := views.NewDoc().Set(ctx, view); err != nil {
		return false, fmt.Errorf("save tip view: %w", err)
	}
	return len(seen) == 0, nil
}

func (a *FirestoreAdapter) CountViewedTips(ctx context.Context, userID string, start, end time.Time) (int, error) {
	q := rangeQuery(a.storage.TipViews().Ref.Where("user_id", "==", userID), "viewed_at", start, end)
	return count(ctx, q)
}

func (a *FirestoreAdapter) CountTips(ctx context.Context) (int, error) {
	return count(ctx, a.storage.NutritionTips().Query)
}

func count(ctx context.Context, q firestore.Query) (int, error) {
	res, err := q.NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("count query: %w", err)
	}
	v, ok := res["all"].(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("count query: unexpected result %T", res["all"])
	}
	return int(v.GetIntegerValue()), nil
}
