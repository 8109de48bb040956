package framework

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/cloudevents/sdk-go/v2/event"

	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/bootstrap"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/testing/mocks"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/types"
)

func pubsubEvent(t *testing.T, data []byte, attrs map[string]string) event.Event {
	t.Helper()
	var msg types.PubSubMessage
	msg.Message.Data = data
	msg.Message.Attributes = attrs

	e := event.New()
	e.SetID("outer-msg-id")
	e.SetType("google.cloud.pubsub.topic.v1.messagePublished")
	e.SetSource("//pubsub")
	if err := e.SetData(event.ApplicationJSON, msg); err != nil {
		t.Fatalf("SetData: %v", err)
	}
	return e
}

func TestWrapCloudEvent(t *testing.T) {
	var statuses []string
	mockDB := &mocks.MockDatabase{
		SetExecutionFunc: func(ctx context.Context, record *types.ExecutionRecord) error {
			if record.Status != types.ExecutionStatusStarted {
				t.Errorf("Expected status started, got %v", record.Status)
			}
			if record.UserID != "user-1" {
				t.Errorf("Expected user-1, got %q", record.UserID)
			}
			if record.TestRunID != "run-9" {
				t.Errorf("Expected test run id run-9, got %q", record.TestRunID)
			}
			return nil
		},
		UpdateExecutionFunc: func(ctx context.Context, userID string, id string, data map[string]interface{}) error {
			statuses = append(statuses, data["status"].(string))
			return nil
		},
	}
	svc := &bootstrap.Service{DB: mockDB}

	handler := func(ctx context.Context, e event.Event, fwCtx *FrameworkContext) (interface{}, error) {
		if fwCtx.Service != svc {
			t.Error("Service not injected correctly")
		}
		if fwCtx.ExecutionID == "" {
			t.Error("ExecutionID not generated")
		}
		return "ok", nil
	}

	wrapped := WrapCloudEvent("test-service", svc, handler)
	e := pubsubEvent(t, []byte(`{"userId":"user-1"}`), map[string]string{"test_run_id": "run-9"})

	if err := wrapped(context.Background(), e); err != nil {
		t.Fatalf("Handler failed: %v", err)
	}
	if len(statuses) != 1 || statuses[0] != string(types.ExecutionStatusSuccess) {
		t.Errorf("Expected a single success update, got %v", statuses)
	}
}

func TestWrapCloudEvent_Failure(t *testing.T) {
	var failed bool
	mockDB := &mocks.MockDatabase{
		UpdateExecutionFunc: func(ctx context.Context, userID string, id string, data map[string]interface{}) error {
			if data["status"] == string(types.ExecutionStatusFailed) {
				failed = true
				if data["error_message"] != "simulated error" {
					t.Errorf("Unexpected error message %v", data["error_message"])
				}
			}
			return nil
		},
	}
	svc := &bootstrap.Service{DB: mockDB}

	handler := func(ctx context.Context, e event.Event, fwCtx *FrameworkContext) (interface{}, error) {
		return nil, errors.New("simulated error")
	}

	wrapped := WrapCloudEvent("test-service", svc, handler)

	err := wrapped(context.Background(), event.New())
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !failed {
		t.Error("Expected execution to be marked failed")
	}
}

func TestWrapCloudEvent_CustomStatus(t *testing.T) {
	var got string
	mockDB := &mocks.MockDatabase{
		UpdateExecutionFunc: func(ctx context.Context, userID string, id string, data map[string]interface{}) error {
			got = data["status"].(string)
			return nil
		},
	}
	svc := &bootstrap.Service{DB: mockDB}

	handler := func(ctx context.Context, e event.Event, fwCtx *FrameworkContext) (interface{}, error) {
		return map[string]interface{}{"status": "skipped"}, nil
	}

	if err := WrapCloudEvent("test-service", svc, handler)(context.Background(), event.New()); err != nil {
		t.Fatalf("Handler failed: %v", err)
	}
	if got != string(types.ExecutionStatusSkipped) {
		t.Errorf("Expected skipped, got %q", got)
	}
}

func TestWrapCloudEvent_ExecutionLogFailureDoesNotFail(t *testing.T) {
	mockDB := &mocks.MockDatabase{
		SetExecutionFunc: func(ctx context.Context, record *types.ExecutionRecord) error {
			return errors.New("firestore down")
		},
	}
	svc := &bootstrap.Service{DB: mockDB}

	called := false
	handler := func(ctx context.Context, e event.Event, fwCtx *FrameworkContext) (interface{}, error) {
		called = true
		return nil, nil
	}

	if err := WrapCloudEvent("test-service", svc, handler)(context.Background(), event.New()); err != nil {
		t.Fatalf("Handler failed: %v", err)
	}
	if !called {
		t.Error("Handler was not invoked")
	}
}

func TestWrapCloudEvent_UnwrapsNestedEvent(t *testing.T) {
	var startedFor string
	svc := &bootstrap.Service{
		DB: &mocks.MockDatabase{
			SetExecutionFunc: func(ctx context.Context, record *types.ExecutionRecord) error {
				startedFor = record.UserID
				return nil
			},
		},
	}

	expectedID := "inner-event-123"
	expectedType := "com.huddle.report.requested"

	handler := func(ctx context.Context, e event.Event, fwCtx *FrameworkContext) (interface{}, error) {
		if e.ID() != expectedID {
			t.Errorf("Expected event ID %s, got %s", expectedID, e.ID())
		}
		if e.Type() != expectedType {
			t.Errorf("Expected event type %s, got %s", expectedType, e.Type())
		}
		return "ok", nil
	}

	inner := event.New()
	inner.SetID(expectedID)
	inner.SetType(expectedType)
	inner.SetSource("/test/source")
	if err := inner.SetData(event.ApplicationJSON, map[string]string{"userId": "athlete-7"}); err != nil {
		t.Fatalf("SetData: %v", err)
	}
	innerBytes, err := json.Marshal(inner)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	if err := WrapCloudEvent("test-service", svc, handler)(context.Background(), pubsubEvent(t, innerBytes, nil)); err != nil {
		t.Fatalf("Handler failed: %v", err)
	}
	if startedFor != "athlete-7" {
		t.Errorf("Expected execution for athlete-7, got %q", startedFor)
	}
}

func TestUnwrapCloudEvent_PlainPayload(t *testing.T) {
	e := pubsubEvent(t, []byte(`{"userId":"u1","forceGenerate":true}`), nil)
	if _, ok := unwrapCloudEvent(e); ok {
		t.Error("Plain JSON payload must not be treated as a CloudEvent")
	}
}
