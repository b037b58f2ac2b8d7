package workbook

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jakechorley/seat-planner/pkg/core/allocator"
	"github.com/jakechorley/seat-planner/pkg/core/model"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format, expected .xlsx or .csv")
	ErrNoData            = errors.New("file has no data rows")
	ErrMissingColumns    = errors.New("missing required columns")
)

// Column names
const (
	colDate       = "Date"
	colID         = "ID"
	colName       = "Name"
	colStart      = "Start"
	colStop       = "Stop"
	colStatus     = "Status"
	colQueue      = "Queue"
	colSupervisor = "Supervisor"
	colBatch      = "Batch"
	colCategory   = "Category"
	colSeat       = "Seat"
	colArea       = "Area"
	colOutcome    = "Outcome"
	colReason     = "Reason"
)

var requiredColumns = []string{colDate, colID, colName, colStart, colStop, colStatus, colQueue, colSupervisor}

// headerAliases maps lower-cased header spellings to column names
var headerAliases = map[string]string{
	"agent id":    colID,
	"agentid":     colID,
	"employee id": colID,
	"agent":       colName,
	"agent name":  colName,
	"start time":  colStart,
	"stop time":   colStop,
	"end":         colStop,
	"end time":    colStop,
	"station":     colSeat,
}

// parseHeaderIndex returns column name -> column index for the known columns
func parseHeaderIndex(header []string) map[string]int {
	known := []string{colDate, colID, colName, colStart, colStop, colStatus, colQueue, colSupervisor,
		colBatch, colCategory, colSeat, colArea, colOutcome, colReason}

	idx := make(map[string]int, len(known))
	for _, name := range known {
		idx[name] = -1
	}

	for i, h := range header {
		lower := strings.ToLower(strings.TrimSpace(h))
		if alias, ok := headerAliases[lower]; ok {
			if idx[alias] < 0 {
				idx[alias] = i
			}
			continue
		}
		for _, name := range known {
			if lower == strings.ToLower(name) && idx[name] < 0 {
				idx[name] = i
			}
		}
	}
	return idx
}

func missingColumns(idx map[string]int) []string {
	var missing []string
	for _, name := range requiredColumns {
		if idx[name] < 0 {
			missing = append(missing, name)
		}
	}
	return missing
}

// table is a header index plus data rows with their 1-based source row numbers
type table struct {
	index   map[string]int
	rows    [][]string
	rowNums []int
}

func (t *table) value(row []string, column string) string {
	i := t.index[column]
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// ReadRecords reads a normalized roster table. The file type is taken from the extension.
// A missing required column fails the whole file; bad cell values are left for record
// parsing to report.
func ReadRecords(path string) ([]model.RawRecord, error) {
	t, err := readTable(path, "")
	if err != nil {
		return nil, err
	}

	records := make([]model.RawRecord, 0, len(t.rows))
	for i, row := range t.rows {
		records = append(records, rawRecord(t, row, t.rowNums[i]))
	}
	return records, nil
}

func rawRecord(t *table, row []string, rowNum int) model.RawRecord {
	return model.RawRecord{
		Row:        rowNum,
		Date:       t.value(row, colDate),
		AgentID:    t.value(row, colID),
		Name:       t.value(row, colName),
		Start:      t.value(row, colStart),
		Stop:       t.value(row, colStop),
		Status:     t.value(row, colStatus),
		Queue:      t.value(row, colQueue),
		Supervisor: t.value(row, colSupervisor),
		Batch:      t.value(row, colBatch),
	}
}

// ReadAssignments reads back a table written by WriteAssignments
func ReadAssignments(path string, queues model.QueueSet, bounds allocator.CategoryBounds) ([]allocator.Assignment, error) {
	t, err := readTable(path, SheetAssignments)
	if err != nil {
		return nil, err
	}
	if t.index[colOutcome] < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, colOutcome)
	}

	assignments := make([]allocator.Assignment, 0, len(t.rows))
	for i, row := range t.rows {
		record, _ := model.ParseRecord(rawRecord(t, row, t.rowNums[i]), queues)

		outcome := allocator.Outcome(t.value(row, colOutcome))
		if !outcome.IsValid() {
			return nil, fmt.Errorf("row %d: unknown outcome %q", t.rowNums[i], outcome)
		}

		a := allocator.Assignment{
			Record:   record,
			Outcome:  outcome,
			Reason:   t.value(row, colReason),
			Category: allocator.Categorize(record.Start, bounds),
		}
		if seat := t.value(row, colSeat); seat != "" {
			n, err := strconv.Atoi(seat)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid seat %q: %w", t.rowNums[i], seat, err)
			}
			a.Seat = &n
		}
		if area := t.value(row, colArea); area != "" {
			a.Area = &area
		}
		assignments = append(assignments, a)
	}
	return assignments, nil
}

// readTable loads the header and data rows. For workbooks the named sheet is used when
// present, otherwise the first sheet.
func readTable(path, sheet string) (*table, error) {
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = readWorkbookRows(path, sheet)
	case ".csv":
		rows, err = readCSVRows(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, ErrNoData
	}

	t := &table{index: parseHeaderIndex(rows[0])}
	if missing := missingColumns(t.index); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	for i := 1; i < len(rows); i++ {
		if isBlank(rows[i]) {
			continue
		}
		t.rows = append(t.rows, rows[i])
		t.rowNums = append(t.rowNums, i+1)
	}
	if len(t.rows) == 0 {
		return nil, ErrNoData
	}
	return t, nil
}

func readWorkbookRows(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" || !hasSheet(f, sheet) {
		sheet = f.GetSheetName(0)
	}

	// Raw values keep dates as serial numbers and times as day fractions regardless of
	// the cell's display format
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func hasSheet(f *excelize.File, name string) bool {
	for _, s := range f.GetSheetList() {
		if s == name {
			return true
		}
	}
	return false
}

func readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		rows = append(rows, row)
	}

	// Strip a UTF-8 byte order mark left by spreadsheet exports
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
