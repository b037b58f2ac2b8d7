package verification

import (
	"fmt"
	"io"
	"strings"
)

const (
	tableWidth     = 100
	unassignedWide = 130
)

// Render prints the report as fixed-width tables
func Render(w io.Writer, report *Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s\n", strings.Repeat("=", tableWidth))
	fmt.Fprintln(&b, "VERIFICATION REPORT: Agent Counts by Date, Queue, and Area")
	fmt.Fprintln(&b, strings.Repeat("=", tableWidth))

	fmt.Fprintf(&b, "\n%-12s %-20s %-12s %-12s %-8s %-40s\n", "Date", "Queue", "Scheduled", "Assigned", "Diff", "Areas")
	fmt.Fprintln(&b, strings.Repeat("-", tableWidth))

	previousDate := ""
	for _, row := range report.Rows {
		if previousDate != "" && row.Date != previousDate {
			fmt.Fprintln(&b, strings.Repeat("-", tableWidth))
		}
		previousDate = row.Date

		areas := formatAreas(row.Areas)
		if row.Unassigned > 0 && row.Assigned > 0 {
			areas = fmt.Sprintf("%s [+%d unassigned]", areas, row.Unassigned)
		}
		fmt.Fprintf(&b, "%-12s %-20s %-12d %-12d %s %-40s\n",
			row.Date, row.Queue, row.Scheduled, row.Assigned, formatDiff(row.Diff()), areas)
	}
	fmt.Fprintln(&b, strings.Repeat("-", tableWidth))

	fmt.Fprintf(&b, "\n%-12s %-20s %-12s %-12s %-8s %-40s\n", "TOTAL", "Queue", "Scheduled", "Assigned", "Diff", "Areas")
	fmt.Fprintln(&b, strings.Repeat("-", tableWidth))
	for _, total := range report.Totals {
		fmt.Fprintf(&b, "%-12s %-20s %-12d %-12d %s %-40s\n",
			"TOTAL", total.Queue, total.Scheduled, total.Assigned, formatDiff(total.Diff()), formatAreas(total.Areas))
	}

	if len(report.PeakOccupancy) > 0 {
		fmt.Fprintf(&b, "\n%-12s %-8s %-8s\n", "Date", "Peak at", "Seated")
		fmt.Fprintln(&b, strings.Repeat("-", 30))
		for _, peak := range report.PeakOccupancy {
			fmt.Fprintf(&b, "%-12s %-8s %-8d\n", peak.Date, peak.Time, peak.Seated)
		}
	}

	if len(report.Unassigned) > 0 {
		fmt.Fprintf(&b, "\n%s\n", strings.Repeat("=", unassignedWide))
		fmt.Fprintln(&b, "UNASSIGNED AGENTS (These agents have no seat assigned):")
		fmt.Fprintln(&b, strings.Repeat("=", unassignedWide))
		fmt.Fprintf(&b, "%-12s %-25s %-20s %-20s %-8s %-8s %-8s %s\n",
			"Date", "Name", "Queue", "Supervisor", "Batch", "Start", "Stop", "Reason")
		fmt.Fprintln(&b, strings.Repeat("-", unassignedWide))
		for _, agent := range report.Unassigned {
			fmt.Fprintf(&b, "%-12s %-25s %-20s %-20s %-8s %-8s %-8s %s\n",
				agent.Date, agent.Name, agent.Queue, agent.Supervisor, agent.Batch, agent.Start, agent.Stop, agent.Reason)
		}
	}

	if len(report.DataErrors) > 0 {
		fmt.Fprintf(&b, "\nDATA ERRORS (%d records skipped):\n", len(report.DataErrors))
		for _, e := range report.DataErrors {
			fmt.Fprintf(&b, "  row %-6d %-12s %-12s %s\n", e.Row, e.AgentID, e.Date, e.Reason)
		}
	}

	fmt.Fprintf(&b, "%s\n", strings.Repeat("=", unassignedWide))

	_, err := io.WriteString(w, b.String())
	return err
}

func formatAreas(areas []AreaCount) string {
	if len(areas) == 0 {
		return "None"
	}
	parts := make([]string, len(areas))
	for i, a := range areas {
		parts[i] = fmt.Sprintf("%s(%d)", a.Area, a.Count)
	}
	return strings.Join(parts, ", ")
}

// formatDiff renders a signed difference padded to the Diff column, marking mismatches
func formatDiff(diff int) string {
	if diff == 0 {
		return fmt.Sprintf("%-8s", "0")
	}
	return fmt.Sprintf("%-8s *", fmt.Sprintf("%+d", diff))
}
