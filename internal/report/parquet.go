package report

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
)

// Record is one metric value in long format.
type Record struct {
	Simulation string  `parquet:"simulation"`
	Model      string  `parquet:"model"`
	Bound      string  `parquet:"bound,optional"`
	Table      string  `parquet:"table"`
	Row        int64   `parquet:"row"`
	Metric     string  `parquet:"metric"`
	Value      float64 `parquet:"value"`
}

// Records flattens t into long format, one record per cell.
func Records(sim, model, bound string, t Table) []Record {
	out := make([]Record, 0, len(t.Rows)*len(t.Header))
	for i, row := range t.Rows {
		for j, v := range row {
			out = append(out, Record{
				Simulation: sim,
				Model:      model,
				Bound:      bound,
				Table:      t.Name,
				Row:        int64(i),
				Metric:     t.Header[j],
				Value:      v,
			})
		}
	}
	return out
}

// SaveParquet writes records to path.
func SaveParquet(path string, records []Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[Record](file)
	if _, err := writer.Write(records); err != nil {
		return fmt.Errorf("write parquet: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return file.Close()
}
