// Package report writes metric tables as CSV, xlsx and parquet, and renders
// terminal summaries.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Table is a numeric table with a literal column header.
type Table struct {
	Name   string
	Header []string
	Rows   [][]float64
}

// HeaderLine joins the column names the way the metric files expect them:
// comma followed by a space.
func (t Table) HeaderLine() string {
	return strings.Join(t.Header, ", ")
}

// Validate checks every row has one value per column.
func (t Table) Validate() error {
	for i, row := range t.Rows {
		if len(row) != len(t.Header) {
			return fmt.Errorf("table %s row %d: %d values for %d columns", t.Name, i, len(row), len(t.Header))
		}
	}
	return nil
}

// WriteCSV writes t as "# <header>" followed by comma-separated rows with six
// decimals per value.
func WriteCSV(w io.Writer, t Table) error {
	if err := t.Validate(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s\n", t.HeaderLine())
	buf := make([]byte, 0, 64)
	for _, row := range t.Rows {
		buf = buf[:0]
		for i, v := range row {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = strconv.AppendFloat(buf, v, 'f', 6, 64)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SaveCSV writes t to path, creating parent directories.
func SaveCSV(path string, t Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteCSV(f, t); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
