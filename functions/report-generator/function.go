package reportgenerator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	cloudevents "github.com/cloudevents/sdk-go/v2"

	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/bootstrap"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/framework"
	httputil "github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/infrastructure/http"
	infrapubsub "github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/infrastructure/pubsub"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/reporting"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/types"
)

const serviceName = "report-generator"

var (
	svc     *bootstrap.Service
	svcOnce sync.Once
	svcErr  error

	router     http.Handler
	routerOnce sync.Once
)

func init() {
	functions.HTTP("GenerateReport", GenerateReport)
	functions.CloudEvent("GenerateReportScheduled", GenerateReportScheduled)
}

func initService(ctx context.Context) (*bootstrap.Service, error) {
	if svc != nil {
		return svc, nil
	}
	svcOnce.Do(func() {
		svc, svcErr = bootstrap.NewService(ctx)
	})
	return svc, svcErr
}

func newGenerator(s *bootstrap.Service) *reporting.Generator {
	return reporting.NewGenerator(reporting.Deps{
		DB:            s.DB,
		Subscriptions: s.Subscriptions,
		Store:         s.Store,
		Bucket:        s.Config.ReportBucket,
		Pub:           s.Pub,
		Notifier:      s.Notifier,
		Renderer:      s.Renderer,
		EventSource:   infrapubsub.CloudEventSourceReportGenerator,
	}, s.Thresholds)
}

// GenerateReport serves the athlete-facing report API.
func GenerateReport(w http.ResponseWriter, r *http.Request) {
	s, err := initService(r.Context())
	if err != nil {
		slog.Error("Service init failed", "error", err)
		httputil.WriteError(w, fmt.Errorf("service init failed: %w", err))
		return
	}
	routerOnce.Do(func() {
		router = NewRouter(s.Auth, newGenerator(s), bootstrap.NewLogger(serviceName))
	})
	router.ServeHTTP(w, r)
}

// GenerateReportScheduled handles the per-user fan-out published by the
// scheduler.
func GenerateReportScheduled(ctx context.Context, e cloudevents.Event) error {
	s, err := initService(ctx)
	if err != nil {
		return fmt.Errorf("service init failed: %v", err)
	}
	return framework.WrapCloudEvent(serviceName, s, scheduledHandler(newGenerator(s)))(ctx, e)
}

func scheduledHandler(gen *reporting.Generator) framework.HandlerFunc {
	return func(ctx context.Context, e cloudevents.Event, fwCtx *framework.FrameworkContext) (interface{}, error) {
		req, err := decodeScheduledRequest(e)
		if err != nil {
			return nil, err
		}

		res, err := gen.Generate(ctx, fwCtx.Logger, reporting.Request{
			UserID:        req.UserID,
			ForceGenerate: req.ForceGenerate,
		})
		if err != nil {
			return nil, err
		}

		status := string(types.ExecutionStatusSuccess)
		if !res.ReportReady || res.AlreadyGenerated {
			status = string(types.ExecutionStatusSkipped)
		}
		return map[string]interface{}{
			"status":            status,
			"report_ready":      res.ReportReady,
			"already_generated": res.AlreadyGenerated,
			"report_id":         res.ReportID,
			"next_report_date":  res.NextReportDate,
		}, nil
	}
}

// decodeScheduledRequest reads the request from either a raw Pub/Sub
// envelope or an already unwrapped CloudEvent.
func decodeScheduledRequest(e cloudevents.Event) (types.GenerateReportRequest, error) {
	var req types.GenerateReportRequest

	payload := e.Data()
	var msg types.PubSubMessage
	if err := e.DataAs(&msg); err == nil && len(msg.Message.Data) > 0 {
		payload = msg.Message.Data
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return req, fmt.Errorf("decode report request: %w", err)
	}
	return req, nil
}
