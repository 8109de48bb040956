package firestore

import (
	"cloud.google.com/go/firestore"

	shared "github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/report"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/types"
)

type Client struct {
	fs *firestore.Client
}

func NewClient(client *firestore.Client) *Client {
	return &Client{fs: client}
}

func (c *Client) Close() error {
	return c.fs.Close()
}

func (c *Client) Users() *Collection[report.UserProfile] {
	return &Collection[report.UserProfile]{
		Ref:           c.fs.Collection(shared.CollectionUsers),
		ToFirestore:   UserProfileToFirestore,
		FromFirestore: FirestoreToUserProfile,
	}
}

// UserExecutions are sub-collections of Users: users/{uid}/executions/{id}
func (c *Client) UserExecutions(userId string) *Collection[types.ExecutionRecord] {
	return &Collection[types.ExecutionRecord]{
		Ref:           c.fs.Collection(shared.CollectionUsers).Doc(userId).Collection(shared.CollectionExecutions),
		ToFirestore:   ExecutionToFirestore,
		FromFirestore: FirestoreToExecution,
	}
}

// OrphanedExecutions stores executions without a userId.
// These are code smells and should be investigated.
func (c *Client) OrphanedExecutions() *Collection[types.ExecutionRecord] {
	return &Collection[types.ExecutionRecord]{
		Ref:           c.fs.Collection(shared.CollectionOrphanedExecutions),
		ToFirestore:   ExecutionToFirestore,
		FromFirestore: FirestoreToExecution,
	}
}

// ReportCycles are sub-collections of Users: users/{uid}/report_cycle/current
func (c *Client) ReportCycles(userId string) *Collection[report.ReportCycle] {
	return &Collection[report.ReportCycle]{
		Ref:           c.fs.Collection(shared.CollectionUsers).Doc(userId).Collection(shared.CollectionReportCycle),
		ToFirestore:   ReportCycleToFirestore,
		FromFirestore: FirestoreToReportCycle,
	}
}

// Reports is a top-level collection: reports/{userId}_{periodStartUnix} for
// canonical reports, reports/{uuid} for forced re-runs.
func (c *Client) Reports() *Collection[report.Report] {
	return &Collection[report.Report]{
		Ref:           c.fs.Collection(shared.CollectionReports),
		ToFirestore:   ReportToFirestore,
		FromFirestore: FirestoreToReport,
	}
}

// Videos is the top-level upload collection written by the web app.
func (c *Client) Videos() *Collection[report.ActivityRecord] {
	return &Collection[report.ActivityRecord]{
		Ref:           c.fs.Collection(shared.CollectionVideos),
		ToFirestore:   ActivityToFirestore,
		FromFirestore: FirestoreToActivity,
	}
}

func (c *Client) Annotations() *Collection[report.Annotation] {
	return &Collection[report.Annotation]{
		Ref:           c.fs.Collection(shared.CollectionAnnotations),
		ToFirestore:   AnnotationToFirestore,
		FromFirestore: FirestoreToAnnotation,
	}
}

// NutritionStreaks is a top-level collection keyed by user id.
func (c *Client) NutritionStreaks() *Collection[report.NutritionEngagement] {
	return &Collection[report.NutritionEngagement]{
		Ref:           c.fs.Collection(shared.CollectionNutritionStreak),
		ToFirestore:   NutritionEngagementToFirestore,
		FromFirestore: FirestoreToNutritionEngagement,
	}
}

func (c *Client) TipViews() *Collection[report.TipView] {
	return &Collection[report.TipView]{
		Ref:           c.fs.Collection(shared.CollectionTipViews),
		ToFirestore:   TipViewToFirestore,
		FromFirestore: FirestoreToTipView,
	}
}

// NutritionTips is only ever counted, so it has no typed wrapper.
func (c *Client) NutritionTips() *firestore.CollectionRef {
	return c.fs.Collection(shared.CollectionNutritionTips)
}
