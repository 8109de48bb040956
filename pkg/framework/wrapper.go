package framework

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/cloudevents/sdk-go/v2/event"

	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/bootstrap"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/execution"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/infrastructure/sentry"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/types"
)

// FrameworkContext contains dependencies injected by the framework
type FrameworkContext struct {
	Service     *bootstrap.Service
	Logger      *slog.Logger
	ExecutionID string
}

// HandlerFunc is the signature for a cloud function handler
type HandlerFunc func(ctx context.Context, e event.Event, fwCtx *FrameworkContext) (interface{}, error)

// WrapCloudEvent wraps a handler with automatic execution logging.
// Pub/Sub envelopes whose data is itself a CloudEvent are unwrapped before
// the handler sees them.
func WrapCloudEvent(serviceName string, svc *bootstrap.Service, handler HandlerFunc) func(context.Context, event.Event) error {
	return func(ctx context.Context, e event.Event) error {
		userID, testRunID := extractEventMetadata(e)

		triggerType := "pubsub"
		if e.Type() == "google.cloud.functions.http" {
			triggerType = "http"
		}

		opts := bootstrap.GetSlogHandlerOptions(bootstrap.ParseLevel(os.Getenv("LOG_LEVEL")))
		logger := slog.New(&bootstrap.ComponentHandler{Handler: slog.NewJSONHandler(os.Stdout, opts)}).With("service", serviceName)
		if userID != "" {
			logger = logger.With("user_id", userID)
		}

		h, err := execution.LogStart(ctx, svc.DB, serviceName, execution.ExecutionOptions{
			UserID:      userID,
			TestRunID:   testRunID,
			TriggerType: triggerType,
		})
		if err != nil {
			// Don't fail the function just because logging failed
			logger.Error("Failed to log execution start", "error", err)
		}

		logger = logger.With("execution_id", h.ID)
		logger.Info("Function started")

		fwCtx := &FrameworkContext{
			Service:     svc,
			Logger:      logger,
			ExecutionID: h.ID,
		}

		if inner, ok := unwrapCloudEvent(e); ok {
			logger.Debug("Unwrapped nested CloudEvent", "type", inner.Type(), "id", inner.ID())
			e = inner
		}

		outputs, handlerErr := handler(ctx, e, fwCtx)

		if handlerErr != nil {
			logger.Error("Function failed", "error", handlerErr)
			sentry.CaptureException(handlerErr, map[string]string{
				"service":      serviceName,
				"execution_id": h.ID,
			}, logger)
			if logErr := execution.LogFailure(ctx, svc.DB, h, handlerErr, outputs); logErr != nil {
				logger.Warn("Failed to log execution failure", "error", logErr)
			}
			return handlerErr
		}

		logger.Info("Function completed successfully")

		// Handlers may report a non-success terminal status such as "skipped"
		if status, ok := customStatus(outputs); ok {
			if logErr := execution.LogExecutionStatus(ctx, svc.DB, h, status, outputs); logErr != nil {
				logger.Warn("Failed to log execution status", "error", logErr)
			}
			return nil
		}

		if logErr := execution.LogSuccess(ctx, svc.DB, h, outputs); logErr != nil {
			logger.Warn("Failed to log execution success", "error", logErr)
		}
		return nil
	}
}

func customStatus(outputs interface{}) (types.ExecutionStatus, bool) {
	m, ok := outputs.(map[string]interface{})
	if !ok {
		return "", false
	}
	s, ok := m["status"].(string)
	if !ok {
		return "", false
	}
	switch status := types.ExecutionStatus(s); status {
	case types.ExecutionStatusSuccess, types.ExecutionStatusSkipped, types.ExecutionStatusFailed:
		return status, true
	}
	return "", false
}

// unwrapCloudEvent returns the structured-mode CloudEvent carried inside a
// Pub/Sub message, if any.
func unwrapCloudEvent(e event.Event) (event.Event, bool) {
	var msg types.PubSubMessage
	if err := e.DataAs(&msg); err != nil || len(msg.Message.Data) == 0 {
		return e, false
	}
	var inner event.Event
	if err := json.Unmarshal(msg.Message.Data, &inner); err != nil {
		return e, false
	}
	if inner.ID() == "" || inner.Type() == "" || inner.Source() == "" {
		return e, false
	}
	return inner, true
}

// extractEventMetadata extracts user_id and test_run_id from the event
// Handles both Pub/Sub messages and HTTP requests
func extractEventMetadata(e event.Event) (userID string, testRunID string) {
	var msg types.PubSubMessage
	if err := e.DataAs(&msg); err == nil {
		payload := msg.Message.Data
		if inner, ok := unwrapCloudEvent(e); ok {
			payload = inner.Data()
		}
		var fields map[string]interface{}
		if err := json.Unmarshal(payload, &fields); err == nil {
			if uid, ok := fields["user_id"].(string); ok {
				userID = uid
			}
			if uid, ok := fields["userId"].(string); ok {
				userID = uid
			}
		}

		if trid, ok := msg.Message.Attributes["test_run_id"]; ok {
			testRunID = trid
		}
	}

	// HTTP headers are mapped to extensions by Functions Framework
	if testRunID == "" {
		extensions := e.Extensions()
		if trid, ok := extensions["test_run_id"].(string); ok {
			testRunID = trid
		}
		if trid, ok := extensions["testrunid"].(string); ok {
			testRunID = trid
		}
	}

	return userID, testRunID
}
