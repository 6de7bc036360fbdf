package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Workbook collects tables into xlsx sheets. Each appended table is tagged
// with label columns (model, bound, ...) so several runs share one sheet.
type Workbook struct {
	f      *excelize.File
	labels []string
	next   map[string]int
	order  []string
}

// NewWorkbook starts an empty workbook whose rows carry the given label
// columns ahead of the table columns.
func NewWorkbook(labels ...string) *Workbook {
	return &Workbook{
		f:      excelize.NewFile(),
		labels: labels,
		next:   make(map[string]int),
	}
}

// Append writes t into sheet, prefixing every row with values for the
// workbook's label columns. The header is written on first use of a sheet.
func (w *Workbook) Append(sheet string, values []string, t Table) error {
	if len(values) != len(w.labels) {
		return fmt.Errorf("sheet %s: %d label values for %d labels", sheet, len(values), len(w.labels))
	}
	if err := t.Validate(); err != nil {
		return err
	}

	row, ok := w.next[sheet]
	if !ok {
		if _, err := w.f.NewSheet(sheet); err != nil {
			return fmt.Errorf("new sheet %s: %w", sheet, err)
		}
		header := make([]interface{}, 0, len(w.labels)+len(t.Header))
		for _, l := range w.labels {
			header = append(header, l)
		}
		for _, h := range t.Header {
			header = append(header, h)
		}
		if err := w.f.SetSheetRow(sheet, "A1", &header); err != nil {
			return fmt.Errorf("sheet %s header: %w", sheet, err)
		}
		row = 2
		w.order = append(w.order, sheet)
	}

	for _, r := range t.Rows {
		cells := make([]interface{}, 0, len(values)+len(r))
		for _, v := range values {
			cells = append(cells, v)
		}
		for _, v := range r {
			cells = append(cells, v)
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := w.f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("sheet %s row %d: %w", sheet, row, err)
		}
		row++
	}
	w.next[sheet] = row
	return nil
}

// Sheets lists the sheets in creation order.
func (w *Workbook) Sheets() []string { return w.order }

// SaveAs writes the workbook to path and releases it.
func (w *Workbook) SaveAs(path string) error {
	defer w.f.Close()

	if len(w.order) > 0 {
		if err := w.f.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("delete default sheet: %w", err)
		}
		if idx, err := w.f.GetSheetIndex(w.order[0]); err == nil && idx >= 0 {
			w.f.SetActiveSheet(idx)
		}
	}
	if err := w.f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}
