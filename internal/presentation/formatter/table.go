package formatter

import (
	"fmt"
	"strings"

	"github.com/penwyp/go-activity-tracker/internal/util"
)

type TableFormatter struct{}

func NewTableFormatter() *TableFormatter {
	return &TableFormatter{}
}

func (f *TableFormatter) Format(data *ReportData) error {
	fmt.Printf("Activity report  (generated %s)\n\n", data.GeneratedAt)

	appRows := make([][]string, 0, len(data.Applications))
	var appTotal int64
	for _, app := range data.Applications {
		appRows = append(appRows, []string{
			app.Name,
			util.FormatSeconds(app.TotalDuration),
			util.FormatNumber(app.SessionCount),
		})
		appTotal += app.TotalDuration
	}
	f.printTable("Applications", []string{"Application", "Time", "Sessions"}, appRows, appTotal)

	siteRows := make([][]string, 0, len(data.Websites))
	var siteTotal int64
	for _, site := range data.Websites {
		siteRows = append(siteRows, []string{
			site.Domain,
			util.FormatSeconds(site.TotalDuration),
			util.FormatNumber(site.SessionCount),
		})
		siteTotal += site.TotalDuration
	}
	f.printTable("Websites", []string{"Domain", "Time", "Sessions"}, siteRows, siteTotal)

	if len(data.Sessions) > 0 {
		sessionRows := make([][]string, 0, len(data.Sessions))
		for _, s := range data.Sessions {
			sessionRows = append(sessionRows, []string{
				util.GetTimeProvider().FormatUnix(s.StartTime, "2006-01-02 15:04"),
				util.TruncateString(s.Label(), 40),
				s.Category,
				util.FormatSeconds(s.DurationSeconds),
			})
		}
		f.printTable("Recent Sessions", []string{"Started", "Activity", "Category", "Duration"}, sessionRows, -1)
	}

	return nil
}

// printTable renders one box-drawn table. A non-negative totalSeconds adds a
// Total row.
func (f *TableFormatter) printTable(title string, headers []string, rows [][]string, totalSeconds int64) {
	fmt.Println(title)

	if len(rows) == 0 {
		fmt.Println("  (no data)")
		fmt.Println()
		return
	}

	widths := f.calculateColumnWidths(headers, rows)

	f.printBorder(widths, "top")
	f.printRow(headers, widths)
	f.printBorder(widths, "middle")
	for _, row := range rows {
		f.printRow(row, widths)
	}
	if totalSeconds >= 0 {
		f.printBorder(widths, "middle")
		total := make([]string, len(headers))
		total[0] = "Total"
		total[1] = util.FormatSeconds(totalSeconds)
		f.printRow(total, widths)
	}
	f.printBorder(widths, "bottom")
	fmt.Println()
}

// calculateColumnWidths determines the width of each column based on content
func (f *TableFormatter) calculateColumnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = util.GetDisplayWidth(header)
	}
	for _, row := range rows {
		for i, value := range row {
			if w := util.GetDisplayWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// printBorder prints table borders (top, middle, bottom)
func (f *TableFormatter) printBorder(widths []int, borderType string) {
	var left, middle, right string

	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	fmt.Print(left)
	for i, width := range widths {
		fmt.Print(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			fmt.Print(middle)
		}
	}
	fmt.Println(right)
}

// printRow prints a data row; the first column is left-aligned, the rest
// right-aligned.
func (f *TableFormatter) printRow(values []string, widths []int) {
	fmt.Print("│")
	for i, value := range values {
		pad := widths[i] - util.GetDisplayWidth(value)
		if i == 0 {
			fmt.Printf(" %s%s │", value, strings.Repeat(" ", pad))
		} else {
			fmt.Printf(" %s%s │", strings.Repeat(" ", pad), value)
		}
	}
	fmt.Println()
}
