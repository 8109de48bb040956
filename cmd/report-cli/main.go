// Package main provides a developer CLI for generating and inspecting
// athlete reports against the configured project or the Firestore emulator.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/bootstrap"
	infrapubsub "github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/infrastructure/pubsub"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/reporting"
)

var (
	userID      string
	force       bool
	nowFlag     string
	periodStart string
)

func main() {
	// A missing .env is fine; the environment may already be configured
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "report-cli",
		Short:        "Generate and inspect periodic athlete reports",
		SilenceUsage: true,
	}

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the report for a user's active period",
		RunE:  runGenerate,
	}
	generateCmd.Flags().StringVar(&userID, "user", "", "user id")
	generateCmd.Flags().BoolVar(&force, "force", false, "generate even if the period is not due")
	generateCmd.Flags().StringVar(&nowFlag, "now", "", "evaluate the cycle at this RFC3339 instant")
	_ = generateCmd.MarkFlagRequired("user")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored report for a period",
		RunE:  runShow,
	}
	showCmd.Flags().StringVar(&userID, "user", "", "user id")
	showCmd.Flags().StringVar(&periodStart, "period-start", "", "period start (RFC3339)")
	_ = showCmd.MarkFlagRequired("user")
	_ = showCmd.MarkFlagRequired("period-start")

	cycleCmd := &cobra.Command{
		Use:   "cycle",
		Short: "Print a user's report cycle",
		RunE:  runCycle,
	}
	cycleCmd.Flags().StringVar(&userID, "user", "", "user id")
	_ = cycleCmd.MarkFlagRequired("user")

	rootCmd.AddCommand(generateCmd, showCmd, cycleCmd)
	return rootCmd
}

func parseInstant(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: expected RFC3339", v)
	}
	return t.UTC(), nil
}

func newGenerator(svc *bootstrap.Service) *reporting.Generator {
	return reporting.NewGenerator(reporting.Deps{
		DB:            svc.DB,
		Subscriptions: svc.Subscriptions,
		Store:         svc.Store,
		Bucket:        svc.Config.ReportBucket,
		Pub:           svc.Pub,
		Notifier:      svc.Notifier,
		Renderer:      svc.Renderer,
		EventSource:   infrapubsub.CloudEventSourceReportCLI,
	}, svc.Thresholds)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	svc, err := bootstrap.NewService(ctx)
	if err != nil {
		return err
	}

	gen := newGenerator(svc)
	if nowFlag != "" {
		at, err := parseInstant(nowFlag)
		if err != nil {
			return err
		}
		gen.WithClock(func() time.Time { return at })
	}

	logger := bootstrap.NewLogger("report-cli").With("user_id", userID)
	res, err := gen.Generate(ctx, logger, reporting.Request{UserID: userID, ForceGenerate: force})
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), res)
}

func runShow(cmd *cobra.Command, args []string) error {
	start, err := parseInstant(periodStart)
	if err != nil {
		return err
	}

	ctx := context.Background()
	svc, err := bootstrap.NewService(ctx)
	if err != nil {
		return err
	}

	r, err := newGenerator(svc).Lookup(ctx, userID, start)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), r)
}

func runCycle(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	svc, err := bootstrap.NewService(ctx)
	if err != nil {
		return err
	}

	c, err := svc.DB.GetReportCycle(ctx, userID)
	if err != nil {
		slog.Error("Failed to load report cycle", "error", err)
		return err
	}
	return printJSON(cmd.OutOrStdout(), c)
}
