package reporting

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	shared "github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/report"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/infrastructure/notifications"
	infrapubsub "github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/infrastructure/pubsub"
	infrastorage "github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/infrastructure/storage"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/types"
)

// afterSave runs the best-effort follow-ups of a saved report. Failures are
// logged and never undo the save.
func (g *Generator) afterSave(ctx context.Context, logger *slog.Logger, r *report.Report, profile *report.UserProfile) {
	g.archive(ctx, logger, r)
	g.publish(ctx, logger, r)
	g.notify(ctx, logger, r, profile)
}

// archive writes canonical reports to blob storage. Forced reports under a
// generated id are not archived so they never overwrite the period's copy.
func (g *Generator) archive(ctx context.Context, logger *slog.Logger, r *report.Report) {
	if g.deps.Store == nil || g.deps.Bucket == "" || r.ID != CanonicalID(r.UserID, r.PeriodStart) {
		return
	}
	data, err := json.Marshal(r)
	if err != nil {
		logger.Warn("Failed to marshal report for archive", "error", err)
		return
	}
	object := infrastorage.ReportObjectName(r.UserID, r.PeriodStart)
	if err := g.deps.Store.Write(ctx, g.deps.Bucket, object, data); err != nil {
		logger.Warn("Failed to archive report", "error", err, "object", object)
		return
	}
	logger.Debug("Archived report", "bucket", g.deps.Bucket, "object", object)
}

func (g *Generator) publish(ctx context.Context, logger *slog.Logger, r *report.Report) {
	if g.deps.Pub == nil {
		return
	}
	source := g.deps.EventSource
	if source == "" {
		source = infrapubsub.CloudEventSourceReportGenerator
	}
	payload := types.ReportGeneratedEvent{
		UserID:      r.UserID,
		ReportID:    r.ID,
		PeriodStart: r.PeriodStart.Format(time.RFC3339),
		PeriodEnd:   r.PeriodEnd.Format(time.RFC3339),
		Forced:      r.Forced,
	}
	e, err := infrapubsub.NewCloudEvent(source, infrapubsub.CloudEventTypeReportGenerated, payload)
	if err != nil {
		logger.Warn("Failed to build report event", "error", err)
		return
	}
	msgID, err := g.deps.Pub.PublishCloudEvent(ctx, shared.TopicReportGenerated, e)
	if err != nil {
		logger.Warn("Failed to publish report event", "error", err)
		return
	}
	logger.Info("Published report event", "message_id", msgID)
}

func (g *Generator) notify(ctx context.Context, logger *slog.Logger, r *report.Report, profile *report.UserProfile) {
	if g.deps.Notifier == nil || profile == nil || len(profile.FCMTokens) == 0 {
		return
	}
	title, body, data := notifications.ReportReady(r)
	if err := g.deps.Notifier.SendPushNotification(ctx, r.UserID, title, body, profile.FCMTokens, data); err != nil {
		logger.Warn("Failed to send report notification", "error", err)
	}
}
