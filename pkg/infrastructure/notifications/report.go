package notifications

import (
	"fmt"

	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/report"
)

// ReportReady builds the push payload announcing a freshly generated report.
func ReportReady(r *report.Report) (title, body string, data map[string]string) {
	title = "Your training report is ready"
	uploads := r.Sections.Overview.TotalUploads
	switch uploads {
	case 0:
		body = "No uploads this period. Open your report for a plan to get back on track."
	case 1:
		body = "1 upload analysed. See your progress and next steps."
	default:
		body = fmt.Sprintf("%d uploads analysed. See your progress and next steps.", uploads)
	}
	data = map[string]string{
		"type":        "report_ready",
		"reportId":    r.ID,
		"periodStart": fmt.Sprintf("%d", r.PeriodStart.Unix()),
	}
	return title, body, data
}
