package question

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet   = "Summary"
	issuesSheet    = "Issues"
	questionsSheet = "Questions"
)

// WriteReview saves an .xlsx workbook for manual review with three sheets:
// category counts, records that needed defaults, and every record.
func WriteReview(path string, records []Record, rep Report) (err error) {
	f := excelize.NewFile()
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("renaming summary sheet: %w", err)
	}
	rows := [][]any{{"Category", "Count"}}
	for _, c := range rep.Categories {
		rows = append(rows, []any{c.Category, c.Count})
	}
	rows = append(rows, []any{"Total", rep.Total})
	if err := writeSheet(f, summarySheet, rows, header); err != nil {
		return err
	}

	rows = [][]any{{"Question", "Missing fields"}}
	for _, is := range rep.Issues {
		rows = append(rows, []any{is.Text, strings.Join(is.MissingFields, ", ")})
	}
	if err := writeSheet(f, issuesSheet, rows, header); err != nil {
		return err
	}

	heading := make([]any, len(RequiredFields))
	for i, name := range RequiredFields {
		heading[i] = name
	}
	rows = [][]any{heading}
	for _, r := range records {
		row := make([]any, len(RequiredFields))
		for i, name := range RequiredFields {
			row[i] = r.Get(name)
		}
		rows = append(rows, row)
	}
	if err := writeSheet(f, questionsSheet, rows, header); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving review workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("creating sheet %s: %w", sheet, err)
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}

	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("styling %s header: %w", sheet, err)
	}
	return f.SetColWidth(sheet, "A", "A", 60)
}
