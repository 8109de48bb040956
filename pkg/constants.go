package shared

const (
	ProjectID = "hammer-huddle" // Can be overridden by env var in main if needed

	TopicReportGenerated = "topic-report-generated"
	TopicReportSchedule  = "topic-report-schedule"

	CollectionUsers              = "users"
	CollectionExecutions         = "executions"
	CollectionOrphanedExecutions = "orphaned_executions"
	CollectionReportCycle        = "report_cycle"
	CollectionReports            = "reports"
	CollectionVideos             = "videos"
	CollectionAnnotations        = "video_annotations"
	CollectionNutritionTips      = "nutrition_tips"
	CollectionTipViews           = "tip_views"
	CollectionNutritionStreak    = "nutrition_streaks"

	// Document id of the single cycle document under users/{uid}/report_cycle
	ReportCycleDocID = "current"

	DefaultReportBucket = "hammer-huddle-reports"
)
