package types

// PubSubMessage is the payload of a Pub/Sub-triggered CloudEvent.
type PubSubMessage struct {
	Message struct {
		Data       []byte            `json:"data"`
		Attributes map[string]string `json:"attributes"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// GenerateReportRequest is the body of a scheduled or HTTP report request.
type GenerateReportRequest struct {
	UserID        string `json:"userId,omitempty"`
	ForceGenerate bool   `json:"forceGenerate"`
}

// ReportGeneratedEvent is published after a report has been saved.
type ReportGeneratedEvent struct {
	UserID      string `json:"userId"`
	ReportID    string `json:"reportId"`
	PeriodStart string `json:"periodStart"`
	PeriodEnd   string `json:"periodEnd"`
	Forced      bool   `json:"forced"`
}
