package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"

	shared "github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/report"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/infrastructure/ai_summary"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/infrastructure/auth"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/infrastructure/billing"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/infrastructure/database"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/infrastructure/notifications"
	infrapubsub "github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/infrastructure/pubsub"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/infrastructure/sentry"
	infrastorage "github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/infrastructure/storage"
)

// Config holds standard configuration for all services
type Config struct {
	ProjectID       string
	Environment     string
	EnablePublish   bool
	EnablePush      bool
	ReportBucket    string
	SentryDSN       string
	ThresholdsFile  string
	StripeSecretKey string
	GeminiAPIKey    string
}

// Service holds initialized dependencies
type Service struct {
	DB            shared.Database
	Store         shared.BlobStore
	Pub           shared.Publisher
	Auth          shared.Authenticator
	Subscriptions shared.SubscriptionSource
	// Notifier and Renderer are nil when disabled by configuration.
	Notifier   shared.NotificationService
	Renderer   shared.SummaryRenderer
	Thresholds report.Thresholds
	Config     *Config
}

// LoadConfig reads configuration from environment variables
func LoadConfig() *Config {
	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		projectID = shared.ProjectID // Fallback
	}

	bucket := os.Getenv("GCS_REPORT_BUCKET")
	if bucket == "" {
		bucket = shared.DefaultReportBucket
	}

	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	return &Config{
		ProjectID:       projectID,
		Environment:     env,
		EnablePublish:   os.Getenv("ENABLE_PUBLISH") == "true",
		EnablePush:      os.Getenv("ENABLE_PUSH") == "true",
		ReportBucket:    bucket,
		SentryDSN:       os.Getenv("SENTRY_DSN"),
		ThresholdsFile:  os.Getenv("REPORT_THRESHOLDS_FILE"),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
	}
}

// GetSlogHandlerOptions returns standard handler options for GCP
func GetSlogHandlerOptions(level slog.Level) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Map standard keys to Cloud Logging keys
			if a.Key == slog.MessageKey {
				return slog.Attr{Key: "message", Value: a.Value}
			}
			if a.Key == slog.LevelKey {
				return slog.Attr{Key: "severity", Value: a.Value}
			}
			return a
		},
	}
}

// ParseLevel maps LOG_LEVEL values onto slog levels, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ComponentHandler wraps a slog.Handler to prepend [component] to the message
type ComponentHandler struct {
	slog.Handler
	component string
}

// WithGroup implements slog.Handler
func (h *ComponentHandler) WithGroup(name string) slog.Handler {
	return &ComponentHandler{
		Handler:   h.Handler.WithGroup(name),
		component: h.component,
	}
}

// WithAttrs implements slog.Handler
func (h *ComponentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newComp := h.component
	for _, a := range attrs {
		if a.Key == "component" {
			newComp = a.Value.String()
		}
	}
	return &ComponentHandler{
		Handler:   h.Handler.WithAttrs(attrs),
		component: newComp,
	}
}

// Handle implements slog.Handler
func (h *ComponentHandler) Handle(ctx context.Context, r slog.Record) error {
	comp := h.component

	// Check if component is overridden in the record attributes
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "component" {
			comp = a.Value.String()
			return false // stop
		}
		return true
	})

	if comp != "" {
		newRecord := slog.NewRecord(r.Time, r.Level, fmt.Sprintf("[%s] %s", comp, r.Message), r.PC)
		// The component attribute stays in the structured payload as well
		r.Attrs(func(a slog.Attr) bool {
			newRecord.AddAttrs(a)
			return true
		})
		r = newRecord
	}

	return h.Handler.Handle(ctx, r)
}

// InitLogger configures structured logging with Cloud Logging compatible keys
func InitLogger() {
	opts := GetSlogHandlerOptions(ParseLevel(os.Getenv("LOG_LEVEL")))
	handler := slog.NewJSONHandler(os.Stdout, opts)
	slog.SetDefault(slog.New(&ComponentHandler{Handler: handler}))
}

// NewLogger creates a configured logger instance
func NewLogger(serviceName string) *slog.Logger {
	opts := GetSlogHandlerOptions(ParseLevel(os.Getenv("LOG_LEVEL")))
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(&ComponentHandler{Handler: handler}).With("service", serviceName)
}

// NewService initializes all standard dependencies
func NewService(ctx context.Context) (*Service, error) {
	InitLogger()
	cfg := LoadConfig()

	slog.Info("Initializing service", "project_id", cfg.ProjectID, "environment", cfg.Environment)

	if err := sentry.Init(sentry.Config{
		DSN:         cfg.SentryDSN,
		Environment: cfg.Environment,
		ServerName:  "report-generator",
	}, slog.Default()); err != nil {
		// Error tracking is optional; keep serving
		slog.Warn("Continuing without Sentry", "error", err)
	}

	thresholds, err := report.LoadThresholds(cfg.ThresholdsFile)
	if err != nil {
		return nil, fmt.Errorf("thresholds: %w", err)
	}

	// Firestore
	fsClient, err := firestore.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		slog.Error("Firestore init failed", "error", err)
		return nil, fmt.Errorf("firestore init: %w", err)
	}
	db := database.NewFirestoreAdapter(fsClient)

	// Firebase (auth + messaging)
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID})
	if err != nil {
		slog.Error("Firebase init failed", "error", err)
		return nil, fmt.Errorf("firebase init: %w", err)
	}
	authenticator, err := auth.NewFirebaseAuthenticator(ctx, app)
	if err != nil {
		return nil, fmt.Errorf("firebase auth init: %w", err)
	}

	// Pub/Sub
	var pubAdapter shared.Publisher
	if cfg.EnablePublish {
		psClient, err := pubsub.NewClient(ctx, cfg.ProjectID)
		if err != nil {
			slog.Error("PubSub init failed", "error", err)
			return nil, fmt.Errorf("pubsub init: %w", err)
		}
		pubAdapter = &infrapubsub.PubSubAdapter{Client: psClient}
		slog.Info("Pub/Sub: REAL (ENABLE_PUBLISH=true)")
	} else {
		pubAdapter = &infrapubsub.LogPublisher{}
		slog.Info("Pub/Sub: MOCK (LogPublisher)")
	}

	// Storage
	gcsClient, err := storage.NewClient(ctx)
	if err != nil {
		slog.Error("Storage init failed", "error", err)
		return nil, fmt.Errorf("storage init: %w", err)
	}

	svc := &Service{
		DB:            db,
		Pub:           pubAdapter,
		Store:         &infrastorage.StorageAdapter{Client: gcsClient},
		Auth:          authenticator,
		Subscriptions: billing.NewStripeSubscriptionSource(cfg.StripeSecretKey, db),
		Thresholds:    thresholds,
		Config:        cfg,
	}

	if cfg.EnablePush {
		fcm, err := notifications.NewFCMAdapter(ctx, app, fsClient)
		if err != nil {
			return nil, fmt.Errorf("fcm init: %w", err)
		}
		svc.Notifier = fcm
	}

	if renderer := ai_summary.NewGeminiRenderer(cfg.GeminiAPIKey); renderer != nil {
		svc.Renderer = renderer
		slog.Info("Summary rendering: Gemini")
	}

	return svc, nil
}
