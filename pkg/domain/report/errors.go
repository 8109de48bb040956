package report

import "errors"

var (
	// ErrUnauthorized means no valid caller identity was presented.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrCycleCreation means the store rejected a new report cycle.
	ErrCycleCreation = errors.New("report cycle creation failed")
	// ErrSaveFailure means the finished report could not be persisted.
	ErrSaveFailure = errors.New("report save failed")
	// ErrReportExists is returned by the store when a canonical report for the
	// same user and period start already exists.
	ErrReportExists = errors.New("report already exists for period")
	// ErrNotFound is returned by lookups that found nothing.
	ErrNotFound = errors.New("not found")
)
