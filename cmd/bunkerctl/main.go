// Package main provides bunkerctl, an operator CLI over the attendance store.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/bunkerpal-api/internal/app"
	"github.com/noah-isme/bunkerpal-api/internal/models"
	"github.com/noah-isme/bunkerpal-api/internal/service"
	"github.com/noah-isme/bunkerpal-api/pkg/config"
	"github.com/noah-isme/bunkerpal-api/pkg/logger"
)

var (
	recalcUser string

	projectAttended int
	projectTotal    int
	projectTarget   int
	projectLow      int
	projectSafe     int

	dayUser string
	dayDate string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "bunkerctl",
		Short:        "Inspect and repair BunkerPal attendance data",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newRecalculateCmd())
	rootCmd.AddCommand(newProjectCmd())
	rootCmd.AddCommand(newDayCmd())
	return rootCmd
}

func newRecalculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recalculate",
		Short: "Rebuild a user's subject summaries from their daily logs",
		Args:  cobra.NoArgs,
		RunE:  runRecalculateCmd,
	}
	cmd.Flags().StringVar(&recalcUser, "user", "", "user id")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func runRecalculateCmd(cmd *cobra.Command, _ []string) error {
	return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
		summaries, err := a.Services.Recalculate.Recalculate(ctx, recalcUser)
		if err != nil {
			return fmt.Errorf("recalculate: %w", err)
		}
		return printSummaries(cmd, summaries)
	})
}

func printSummaries(cmd *cobra.Command, summaries []models.SubjectSummary) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SUBJECT\tATTENDED\tTOTAL\tPERCENT")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d%%\n", s.Name, s.AttendedClasses, s.TotalClasses, service.Percentage(s))
	}
	return tw.Flush()
}

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Show how many classes can be skipped or must be attended for a target",
		Args:  cobra.NoArgs,
		RunE:  runProjectCmd,
	}
	cmd.Flags().IntVar(&projectAttended, "attended", 0, "classes attended")
	cmd.Flags().IntVar(&projectTotal, "total", 0, "classes held")
	cmd.Flags().IntVar(&projectTarget, "target", service.DefaultThresholds.Low, "target percentage (1-99)")
	cmd.Flags().IntVar(&projectLow, "low", service.DefaultThresholds.Low, "low threshold used for the status band")
	cmd.Flags().IntVar(&projectSafe, "safe", service.DefaultThresholds.Safe, "safe threshold used for the status band")
	return cmd
}

func runProjectCmd(cmd *cobra.Command, _ []string) error {
	if projectAttended < 0 || projectTotal < 0 || projectAttended > projectTotal {
		return fmt.Errorf("--attended must be between 0 and --total")
	}
	summary := models.SubjectSummary{AttendedClasses: projectAttended, TotalClasses: projectTotal}
	projection, err := service.Project(summary, projectTarget)
	if err != nil {
		return err
	}
	percent := service.Percentage(summary)
	status := service.StatusFor(percent, service.Thresholds{Low: projectLow, Safe: projectSafe})

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "attendance: %d/%d (%d%%, %s)\n", projectAttended, projectTotal, percent, status)
	switch {
	case projection.Bunkable > 0:
		fmt.Fprintf(out, "may skip %d and stay at or above %d%%\n", projection.Bunkable, projection.Target)
	case projection.Needed > 0:
		fmt.Fprintf(out, "attend %d in a row to reach %d%%\n", projection.Needed, projection.Target)
	default:
		fmt.Fprintf(out, "exactly at %d%%, no classes to spare\n", projection.Target)
	}
	return nil
}

func newDayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Print the resolved plan for one date",
		Args:  cobra.NoArgs,
		RunE:  runDayCmd,
	}
	cmd.Flags().StringVar(&dayUser, "user", "", "user id")
	cmd.Flags().StringVar(&dayDate, "date", "", "date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func runDayCmd(cmd *cobra.Command, _ []string) error {
	return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
		plan, err := a.Services.Attendance.Resolve(ctx, dayUser, dayDate)
		if err != nil {
			return fmt.Errorf("resolve day: %w", err)
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	})
}

// withApp connects with the server's configuration; reports stay off so no workers start.
func withApp(ctx context.Context, fn func(context.Context, *app.App) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Reports.Enabled = false

	logr, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer logr.Sync() //nolint:errcheck

	a, err := app.New(ctx, cfg, logr)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil {
			logr.Warn("failed to close connections", zap.Error(cerr))
		}
	}()
	return fn(ctx, a)
}
