package pubsub

// CloudEvent types emitted by the reporting functions.
const (
	CloudEventTypeReportGenerated = "com.huddle.report.generated"
)

// CloudEvent sources, one per emitting function.
const (
	CloudEventSourceReportGenerator = "/report-generator"
	CloudEventSourceReportCLI       = "/report-cli"
)
