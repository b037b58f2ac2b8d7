package workbook

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jakechorley/seat-planner/pkg/core/allocator"
	"github.com/jakechorley/seat-planner/pkg/core/catalog"
)

// Sheet names
const (
	SheetAssignments = "Assignments"
	SheetMorning     = "Morning Seating"
	SheetNight       = "Night Seating"
	SheetPlan        = "Seat Plan"
)

var assignmentHeader = []string{
	colDate, colID, colName, colStart, colStop, colStatus, colQueue, colSupervisor, colBatch,
	colCategory, colSeat, colArea, colOutcome, colReason,
}

// OutputFileName builds the output name for an input file:
// <prefix>_<YYYYMMDD_HHMMSS>_seating_arrangement.xlsx, where prefix is the input base name
// up to its first underscore. The file is placed next to the input.
func OutputFileName(inputPath string, now time.Time) string {
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	prefix, _, _ := strings.Cut(base, "_")
	if prefix == "" {
		prefix = "roster"
	}
	name := fmt.Sprintf("%s_%s_seating_arrangement.xlsx", prefix, now.Format("20060102_150405"))
	return filepath.Join(filepath.Dir(inputPath), name)
}

// WriteAssignments writes the augmented record table. A .csv path gets the assignment
// columns only; a .xlsx path also gets morning, night and full seat × date grids.
func WriteAssignments(path string, assignments []allocator.Assignment, cat *catalog.Catalog) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return writeWorkbook(path, assignments, cat)
	case ".csv":
		return writeCSV(path, assignments)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func assignmentRow(a allocator.Assignment) []string {
	record := a.Record

	start, stop := record.Start.String(), record.Stop.String()
	category := a.Category.String()
	switch {
	case a.Outcome == allocator.OutcomeDataError:
		start, stop, category = "", "", ""
	case record.Off:
		start, stop, category = "OFF", "OFF", ""
	case a.Outcome == allocator.OutcomeNotScheduled:
		category = ""
	}

	seat, area := "", ""
	if a.Seat != nil {
		seat = strconv.Itoa(*a.Seat)
	}
	if a.Area != nil {
		area = *a.Area
	}

	return []string{
		record.Date, record.AgentID, record.Name, start, stop, string(record.Status), string(record.Queue),
		record.Supervisor, record.Batch, category, seat, area, string(a.Outcome), a.Reason,
	}
}

func writeCSV(path string, assignments []allocator.Assignment) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(assignmentHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, a := range assignments {
		if err := w.Write(assignmentRow(a)); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return file.Close()
}

func writeWorkbook(path string, assignments []allocator.Assignment, cat *catalog.Catalog) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetAssignments); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	rows := make([][]string, 0, len(assignments))
	for _, a := range assignments {
		rows = append(rows, assignmentRow(a))
	}
	if err := writeSheet(f, SheetAssignments, assignmentHeader, rows, headerStyle); err != nil {
		return err
	}

	dates := seatedDates(assignments)
	grids := []struct {
		sheet   string
		include func(allocator.Category) bool
	}{
		{SheetMorning, func(c allocator.Category) bool { return c == allocator.CategoryMorning }},
		{SheetNight, func(c allocator.Category) bool { return c == allocator.CategoryNight }},
		{SheetPlan, func(allocator.Category) bool { return true }},
	}
	for _, grid := range grids {
		if _, err := f.NewSheet(grid.sheet); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", grid.sheet, err)
		}
		header, rows := seatGrid(assignments, cat, dates, grid.include)
		if err := writeSheet(f, grid.sheet, header, rows, headerStyle); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]string, headerStyle int) error {
	write := func(rowNum int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		row := make([]interface{}, len(values))
		for i, v := range values {
			row[i] = v
		}
		return f.SetSheetRow(sheet, cell, &row)
	}

	if err := write(1, header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	last, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return fmt.Errorf("failed to name column: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last+"1", headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}
	if err := f.SetColWidth(sheet, "A", last, 14); err != nil {
		return fmt.Errorf("failed to set %s column width: %w", sheet, err)
	}

	for i, values := range rows {
		if err := write(i+2, values); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

// seatGrid builds one row per non-reserved seat and one column per date. Each cell holds
// the names seated there that day, earlier category first, joined with " / ".
func seatGrid(assignments []allocator.Assignment, cat *catalog.Catalog, dates []string, include func(allocator.Category) bool) ([]string, [][]string) {
	type key struct {
		seat int
		date string
	}
	occupants := make(map[key][]allocator.Assignment)
	for _, a := range assignments {
		if !a.IsSeated() || !include(a.Category) {
			continue
		}
		k := key{seat: *a.Seat, date: a.Record.Date}
		occupants[k] = append(occupants[k], a)
	}

	header := append([]string{colArea, "Station"}, dates...)

	var rows [][]string
	for _, seat := range cat.Seats() {
		if seat.Reserved {
			continue
		}
		row := []string{seat.Area, strconv.Itoa(seat.Number)}
		for _, date := range dates {
			entries := occupants[key{seat: seat.Number, date: date}]
			sort.SliceStable(entries, func(i, j int) bool {
				if entries[i].Category != entries[j].Category {
					return entries[i].Category < entries[j].Category
				}
				return entries[i].Record.Start < entries[j].Record.Start
			})
			names := make([]string, len(entries))
			for i, e := range entries {
				names[i] = e.Record.Name
			}
			row = append(row, strings.Join(names, " / "))
		}
		rows = append(rows, row)
	}
	return header, rows
}

func seatedDates(assignments []allocator.Assignment) []string {
	set := make(map[string]bool)
	for _, a := range assignments {
		if a.Outcome == allocator.OutcomeAssigned || a.Outcome == allocator.OutcomeUnassigned {
			set[a.Record.Date] = true
		}
	}
	dates := make([]string, 0, len(set))
	for d := range set {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}
