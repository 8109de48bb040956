// Package ai_summary renders an optional prose summary of a finished report
// with Google Gemini. The output is additive; the rule-based narrative stays
// the source of truth.
package ai_summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	shared "github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/report"
)

const defaultModel = "gemini-2.0-flash"

type generateFunc func(ctx context.Context, prompt string) (string, error)

// GeminiRenderer implements shared.SummaryRenderer.
type GeminiRenderer struct {
	generate generateFunc
}

var _ shared.SummaryRenderer = (*GeminiRenderer)(nil)

// NewGeminiRenderer returns nil when apiKey is empty so callers can skip
// rendering entirely.
func NewGeminiRenderer(apiKey string) *GeminiRenderer {
	if apiKey == "" {
		return nil
	}
	return &GeminiRenderer{generate: geminiGenerate(apiKey, defaultModel)}
}

func geminiGenerate(apiKey, modelName string) generateFunc {
	return func(ctx context.Context, prompt string) (string, error) {
		client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
		if err != nil {
			return "", fmt.Errorf("failed to create Gemini client: %w", err)
		}
		defer client.Close()

		model := client.GenerativeModel(modelName)

		// Low temperature keeps the prose close to the numbers it is given
		model.SetTemperature(0.4)
		model.SetTopP(0.9)
		model.SetMaxOutputTokens(400)

		resp, err := model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			return "", fmt.Errorf("failed to generate content: %w", err)
		}

		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			return "", fmt.Errorf("no content generated")
		}

		var sb strings.Builder
		for _, part := range resp.Candidates[0].Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
		return sb.String(), nil
	}
}

// RenderSummary asks the model for a short coaching paragraph grounded in the
// report's computed figures.
func (g *GeminiRenderer) RenderSummary(ctx context.Context, r *report.Report) (string, error) {
	raw, err := g.generate(ctx, buildPrompt(buildReportContext(r)))
	if err != nil {
		return "", err
	}
	return cleanSummary(raw), nil
}

func buildPrompt(reportContext string) string {
	return fmt.Sprintf(`You are a baseball and softball development coach writing to the athlete.
Summarise the training report below in one short paragraph (3-4 sentences).

Report:
%s

Guidelines:
- Use only the facts and numbers in the report. Do not invent scores, drills or dates.
- Mention the most important strength and the most important thing to work on.
- End with the first action plan item in your own words.
- Plain text only, no headings, lists or markdown.
`, reportContext)
}

func buildReportContext(r *report.Report) string {
	s := r.Sections
	var parts []string

	parts = append(parts, fmt.Sprintf("Period: %s to %s",
		r.PeriodStart.Format("2006-01-02"), r.PeriodEnd.Format("2006-01-02")))
	parts = append(parts, fmt.Sprintf("Uploads: %d", s.Overview.TotalUploads))
	if s.Overview.MostUsedModule != "" {
		parts = append(parts, fmt.Sprintf("Most used module: %s", report.DisplayName(s.Overview.MostUsedModule)))
	}
	if s.Overview.AverageScore != nil {
		parts = append(parts, fmt.Sprintf("Average score: %.1f", *s.Overview.AverageScore))
	}
	if s.Overview.ScoreChange != nil {
		parts = append(parts, fmt.Sprintf("Change vs previous period: %+.1f", *s.Overview.ScoreChange))
	}
	parts = append(parts, fmt.Sprintf("Score trend: %s", s.Analysis.OverallTrend))
	parts = append(parts, fmt.Sprintf("Consistency: %d%% (%d of %d days)",
		s.Behavior.ConsistencyScore, s.Behavior.ActiveDays, s.Behavior.TotalDays))

	if len(s.Analysis.TopPositives) > 0 {
		parts = append(parts, fmt.Sprintf("Top strength: %s", s.Analysis.TopPositives[0].Label))
	}
	if len(s.Analysis.KeyIssues) > 0 {
		parts = append(parts, fmt.Sprintf("Key issue: %s", s.Analysis.KeyIssues[0]))
	}
	if s.CoachFeedback.CoachAnnotations > 0 {
		parts = append(parts, fmt.Sprintf("Coach notes: %d", s.CoachFeedback.CoachAnnotations))
	}
	parts = append(parts, fmt.Sprintf("Nutrition engagement: %d/100", s.Nutrition.EngagementScore))

	if s.Narrative.CoachingSummary != "" {
		parts = append(parts, "Summary: "+s.Narrative.CoachingSummary)
	}
	for i, item := range s.Narrative.ActionPlan {
		parts = append(parts, fmt.Sprintf("Action %d: %s", i+1, item))
	}

	return strings.Join(parts, "\n")
}

func cleanSummary(s string) string {
	s = strings.TrimSpace(s)
	// Remove markdown formatting if present
	s = strings.Trim(s, "*_`")
	return strings.TrimSpace(s)
}
