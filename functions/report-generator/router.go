package reportgenerator

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	shared "github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg"
	httputil "github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/infrastructure/http"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/infrastructure/sentry"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/reporting"
)

type ctxKey int

const userIDKey ctxKey = iota

type api struct {
	auth   shared.Authenticator
	gen    *reporting.Generator
	logger *slog.Logger
}

// NewRouter builds the HTTP surface. Every route requires a Firebase ID
// token; requests without one are rejected before any data is read.
func NewRouter(auth shared.Authenticator, gen *reporting.Generator, logger *slog.Logger) http.Handler {
	a := &api{auth: auth, gen: gen, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(a.recoverer)
	r.Use(a.authenticate)

	r.Post("/reports", a.generateReport)
	r.Get("/reports/{periodStart}", a.getReport)
	r.Post("/nutrition/views", a.recordTipView)
	return r
}

func (a *api) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := httputil.BearerToken(r)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		userID, err := a.auth.VerifyToken(r.Context(), token)
		if err != nil {
			a.logger.Warn("Rejected token", "error", err, "path", r.URL.Path)
			httputil.WriteError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	})
}

func (a *api) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				err, ok := rec.(error)
				if !ok {
					err = errors.New("panic in handler")
				}
				a.logger.Error("Recovered from panic", "panic", rec, "path", r.URL.Path)
				sentry.CaptureException(err, map[string]string{"path": r.URL.Path}, a.logger)
				httputil.WriteError(w, err)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (a *api) requestLogger(r *http.Request) *slog.Logger {
	userID, _ := r.Context().Value(userIDKey).(string)
	return a.logger.With("user_id", userID, "request_id", middleware.GetReqID(r.Context()))
}

func (a *api) fail(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := httputil.StatusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", "error", err, "path", r.URL.Path)
		sentry.CaptureException(err, map[string]string{"path": r.URL.Path}, logger)
	} else {
		logger.Info("Request rejected", "error", err, "status", status)
	}
	httputil.WriteError(w, err)
}

type generateRequest struct {
	ForceGenerate bool `json:"forceGenerate"`
}

type generateResponse struct {
	Success bool `json:"success"`
	*reporting.GenerateResult
}

func (a *api) generateReport(w http.ResponseWriter, r *http.Request) {
	logger := a.requestLogger(r)

	var body generateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		a.fail(w, r, logger, &httputil.BadRequestError{Message: "invalid request body"})
		return
	}

	userID, _ := r.Context().Value(userIDKey).(string)
	res, err := a.gen.Generate(r.Context(), logger, reporting.Request{
		UserID:        userID,
		ForceGenerate: body.ForceGenerate,
	})
	if err != nil {
		a.fail(w, r, logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, generateResponse{Success: true, GenerateResult: res})
}

// parsePeriodStart accepts RFC3339 or unix seconds.
func parsePeriodStart(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.UTC(), nil
	}
	secs, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, &httputil.BadRequestError{Message: "periodStart must be RFC3339 or unix seconds"}
	}
	return time.Unix(secs, 0).UTC(), nil
}

func (a *api) getReport(w http.ResponseWriter, r *http.Request) {
	logger := a.requestLogger(r)

	periodStart, err := parsePeriodStart(chi.URLParam(r, "periodStart"))
	if err != nil {
		a.fail(w, r, logger, err)
		return
	}

	userID, _ := r.Context().Value(userIDKey).(string)
	rep, err := a.gen.Lookup(r.Context(), userID, periodStart)
	if err != nil {
		a.fail(w, r, logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"report":  rep,
	})
}

type tipViewRequest struct {
	TipID string `json:"tipId"`
}

func (a *api) recordTipView(w http.ResponseWriter, r *http.Request) {
	logger := a.requestLogger(r)

	var body tipViewRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.TipID == "" {
		a.fail(w, r, logger, &httputil.BadRequestError{Message: "tipId is required"})
		return
	}

	userID, _ := r.Context().Value(userIDKey).(string)
	res, err := a.gen.RecordTipView(r.Context(), logger, userID, body.TipID)
	if err != nil {
		a.fail(w, r, logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"engagement":    res.Engagement,
		"streakUpdated": res.StreakUpdated,
		"newTip":        res.NewTip,
	})
}
