package sheetsclient

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// PublishAssignments appends assignment rows to a tab. A missing tab is created and
// gets the header as its first row.
func (c *Client) PublishAssignments(ctx context.Context, spreadsheetID, tab string, header []string, rows [][]string) error {
	titles, err := c.sheetTitles(ctx, spreadsheetID)
	if err != nil {
		return err
	}

	if !slices.Contains(titles, tab) {
		c.logger.Info("Creating tab", zap.String("tab", tab))
		if _, err := c.CreateSheet(ctx, spreadsheetID, tab); err != nil {
			return fmt.Errorf("failed to create tab %q: %w", tab, err)
		}
		return c.WriteRows(ctx, spreadsheetID, tab, toValues(header, rows))
	}

	if len(rows) == 0 {
		return nil
	}
	return c.AppendRows(ctx, spreadsheetID, tab, toValues(nil, rows))
}

// toValues converts string rows to the Sheets value layout, header first when given
func toValues(header []string, rows [][]string) [][]interface{} {
	values := make([][]interface{}, 0, len(rows)+1)
	if header != nil {
		values = append(values, toRow(header))
	}
	for _, row := range rows {
		values = append(values, toRow(row))
	}
	return values
}

func toRow(cells []string) []interface{} {
	row := make([]interface{}, len(cells))
	for i, cell := range cells {
		row[i] = cell
	}
	return row
}
