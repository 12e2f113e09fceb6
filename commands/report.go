package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-activity-tracker/internal/presentation/formatter"
	"github.com/penwyp/go-activity-tracker/internal/presentation/interaction"
	"github.com/penwyp/go-activity-tracker/internal/util"
)

var (
	reportOutput   string
	reportLimit    int
	reportSessions int
	reportSortBy   string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize stored activity sessions",
	Long: `Aggregates the stored sessions into per-application and per-website
usage totals.

Examples:
  go-activity-tracker report                       # Usage tables
  go-activity-tracker report --output json         # Machine-readable report
  go-activity-tracker report --sessions 20         # Include the 20 most recent sessions
  go-activity-tracker report --sessions 20 --sort-by duration`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "table",
		"Output format (table, json)")
	reportCmd.Flags().IntVar(&reportLimit, "limit", 15,
		"Rows per usage table (0 = unlimited)")
	reportCmd.Flags().IntVar(&reportSessions, "sessions", 0,
		"Include the N most recent sessions (0 = none)")
	reportCmd.Flags().StringVar(&reportSortBy, "sort-by", "time",
		"Session sort field (time, duration, app)")
}

func runReport(cmd *cobra.Command, args []string) error {
	initRuntime()

	if reportOutput != "table" && reportOutput != "json" {
		return fmt.Errorf("invalid output format %q: must be 'table' or 'json'", reportOutput)
	}

	_, st, err := openData()
	if err != nil {
		return err
	}

	data := &formatter.ReportData{
		GeneratedAt: util.GetTimeProvider().Now().Format("2006-01-02 15:04:05"),
	}

	if data.Applications, err = st.GetTopApplications(reportLimit); err != nil {
		return fmt.Errorf("load applications: %w", err)
	}
	if data.Websites, err = st.GetTopWebsites(reportLimit); err != nil {
		return fmt.Errorf("load websites: %w", err)
	}

	if reportSessions > 0 {
		sessions, err := st.GetSessions(reportSessions)
		if err != nil {
			return fmt.Errorf("load sessions: %w", err)
		}

		sorter := interaction.NewSessionSorter()
		switch reportSortBy {
		case "time":
			sorter.SetField(interaction.SortByTime)
		case "duration":
			sorter.SetField(interaction.SortByDuration)
		case "app":
			sorter.SetField(interaction.SortByApp)
			sorter.SetOrder(interaction.SortAscending)
		default:
			return fmt.Errorf("invalid sort field %q: must be 'time', 'duration' or 'app'", reportSortBy)
		}
		sorter.Sort(sessions)
		data.Sessions = sessions
	}

	return formatter.NewFormatter(reportOutput).Format(data)
}
