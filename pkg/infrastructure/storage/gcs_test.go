package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReportObjectName(t *testing.T) {
	start := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "reports/u1/1706659200.json", ReportObjectName("u1", start))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/json", contentType("reports/u1/1.json"))
	assert.Equal(t, "application/octet-stream", contentType("reports/u1/1.bin"))
}
