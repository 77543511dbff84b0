package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cmlabs-hris/punch-analytics/internal/domain/attendance"
	"github.com/cmlabs-hris/punch-analytics/internal/domain/punch"
	"github.com/cmlabs-hris/punch-analytics/internal/domain/statistics"
	"github.com/cmlabs-hris/punch-analytics/internal/pkg/sse"
	"github.com/cmlabs-hris/punch-analytics/internal/pkg/validator"
	"github.com/cmlabs-hris/punch-analytics/internal/repository/memory"
	attendanceService "github.com/cmlabs-hris/punch-analytics/internal/service/attendance"
	statisticsService "github.com/cmlabs-hris/punch-analytics/internal/service/statistics"
	"github.com/spf13/cobra"
)

var (
	reportFile   string
	reportPeriod string
	reportNow    string

	summaryWorker string
	summaryYear   string
	summaryMonth  string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print period statistics for a punch file",
	Long: `Load a punch export (a JSON array of rows, or {"rows": [...]}) and print
the statistics of one period as indented JSON.`,
	Example: `  punchctl report --file punches.json --period allTime
  punchctl report --file punches.json --period last7days --now 2024-03-31`,
	RunE: runReport,
}

var summaryCmd = &cobra.Command{
	Use:     "summary",
	Short:   "Print the monthly summary of one worker",
	Example: `  punchctl summary --file punches.json --worker ana --year 2024 --month 3`,
	RunE:    runSummary,
}

func init() {
	for _, cmd := range []*cobra.Command{reportCmd, summaryCmd} {
		cmd.Flags().StringVarP(&reportFile, "file", "f", "", "Punch export to read, - for stdin (required)")
		cmd.Flags().StringVar(&reportNow, "now", "", "Reference date YYYY-MM-DD, defaults to today")
		cmd.MarkFlagRequired("file")
	}
	reportCmd.Flags().StringVarP(&reportPeriod, "period", "p", string(attendance.DefaultPeriod), "today, last7days, last30days or allTime")

	summaryCmd.Flags().StringVar(&summaryWorker, "worker", "", "Worker name (required)")
	summaryCmd.Flags().StringVar(&summaryYear, "year", "", "Four digit year (required)")
	summaryCmd.Flags().StringVar(&summaryMonth, "month", "", "Month 1-12 (required)")
	summaryCmd.MarkFlagRequired("worker")
	summaryCmd.MarkFlagRequired("year")
	summaryCmd.MarkFlagRequired("month")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(summaryCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	stats, err := loadStatistics(cmd.Context())
	if err != nil {
		return err
	}

	result, err := stats.ForPeriod(cmd.Context(), statistics.PeriodRequest{Period: reportPeriod})
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), result)
}

func runSummary(cmd *cobra.Command, args []string) error {
	stats, err := loadStatistics(cmd.Context())
	if err != nil {
		return err
	}

	result, err := stats.MonthlySummary(cmd.Context(), statistics.MonthRequest{
		Worker: summaryWorker,
		Year:   summaryYear,
		Month:  summaryMonth,
	})
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), result)
}

// loadStatistics ingests the punch file into an in-memory index. Holidays are
// not fetched offline.
func loadStatistics(ctx context.Context) (statistics.StatisticsService, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone: %w", err)
	}

	now := time.Now().In(loc)
	if reportNow != "" {
		day, ok := validator.IsValidDate(reportNow)
		if !ok {
			return nil, fmt.Errorf("invalid --now %q, expected YYYY-MM-DD", reportNow)
		}
		now = time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, loc)
	}

	req, err := readPunchFile(reportFile)
	if err != nil {
		return nil, err
	}

	attendanceSvc := attendanceService.NewAttendanceService(memory.NewPunchRepository(), sse.NewHub())
	if _, err := attendanceSvc.Ingest(ctx, req); err != nil {
		return nil, fmt.Errorf("ingest %s: %w", reportFile, err)
	}

	return statisticsService.NewStatisticsService(attendanceSvc, nil, loc).
		WithClock(func() time.Time { return now }), nil
}

func readPunchFile(path string) (punch.IngestRequest, error) {
	var in io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return punch.IngestRequest{}, fmt.Errorf("open punch file: %w", err)
		}
		defer f.Close()
		in = f
	}

	var req punch.IngestRequest
	if err := json.NewDecoder(in).Decode(&req); err != nil {
		return punch.IngestRequest{}, fmt.Errorf("decode punch file: %w", err)
	}
	return req, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
