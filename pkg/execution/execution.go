// Package execution records the lifecycle of each function invocation.
package execution

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/types"
)

// Store is the subset of the database used for execution records.
type Store interface {
	SetExecution(ctx context.Context, record *types.ExecutionRecord) error
	UpdateExecution(ctx context.Context, userID string, id string, data map[string]interface{}) error
}

type ExecutionOptions struct {
	UserID      string
	TestRunID   string
	TriggerType string
}

// Handle identifies a started execution.
type Handle struct {
	ID     string
	UserID string
}

var now = time.Now

// LogStart creates the execution record and marks it started.
func LogStart(ctx context.Context, db Store, service string, opts ExecutionOptions) (Handle, error) {
	h := Handle{ID: fmt.Sprintf("%s-%s", service, uuid.NewString()), UserID: opts.UserID}
	start := now()

	record := &types.ExecutionRecord{
		ExecutionID: h.ID,
		Service:     service,
		UserID:      opts.UserID,
		TestRunID:   opts.TestRunID,
		TriggerType: opts.TriggerType,
		Status:      types.ExecutionStatusStarted,
		Timestamp:   start,
		StartTime:   &start,
	}
	if err := db.SetExecution(ctx, record); err != nil {
		return h, fmt.Errorf("set execution: %w", err)
	}
	return h, nil
}

// LogSuccess marks the execution successful and stores its outputs.
func LogSuccess(ctx context.Context, db Store, h Handle, outputs interface{}) error {
	return LogExecutionStatus(ctx, db, h, types.ExecutionStatusSuccess, outputs)
}

// LogFailure marks the execution failed.
func LogFailure(ctx context.Context, db Store, h Handle, execErr error, outputs interface{}) error {
	data := finishData(types.ExecutionStatusFailed, outputs)
	if execErr != nil {
		data["error_message"] = execErr.Error()
	}
	return db.UpdateExecution(ctx, h.UserID, h.ID, data)
}

// LogExecutionStatus finishes the execution with an explicit status.
func LogExecutionStatus(ctx context.Context, db Store, h Handle, status types.ExecutionStatus, outputs interface{}) error {
	return db.UpdateExecution(ctx, h.UserID, h.ID, finishData(status, outputs))
}

func finishData(status types.ExecutionStatus, outputs interface{}) map[string]interface{} {
	data := map[string]interface{}{
		"status":   string(status),
		"end_time": now(),
	}
	if outputs != nil {
		if b, err := json.Marshal(outputs); err == nil {
			data["outputs_json"] = string(b)
		}
	}
	return data
}
