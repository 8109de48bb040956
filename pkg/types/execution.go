package types

import "time"

// ExecutionStatus is the lifecycle state of one function invocation.
type ExecutionStatus string

const (
	ExecutionStatusPending ExecutionStatus = "pending"
	ExecutionStatusStarted ExecutionStatus = "started"
	ExecutionStatusSuccess ExecutionStatus = "success"
	ExecutionStatusFailed  ExecutionStatus = "failed"
	ExecutionStatusSkipped ExecutionStatus = "skipped"
)

// ExecutionRecord is stored under users/{uid}/executions/{id}, or in the
// orphaned collection when no user is known.
type ExecutionRecord struct {
	ExecutionID  string
	Service      string
	UserID       string
	TestRunID    string
	TriggerType  string
	Status       ExecutionStatus
	Timestamp    time.Time
	StartTime    *time.Time
	EndTime      *time.Time
	ErrorMessage string
	OutputsJSON  string
}
