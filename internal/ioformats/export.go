
package ioformats

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"abit-rating/internal/models"
)

const sheetName = "Рейтинг"

// Formats lists the accepted values for Write.
var Formats = []string{"ndjson", "csv", "xlsx"}

// Write exports records in format. fields fixes the column order for the
// tabular formats; missing values are left empty.
func Write(w io.Writer, format string, records []models.Record, fields []string) error {
	switch strings.ToLower(format) {
	case "ndjson", "jsonl":
		return WriteNDJSON(w, records)
	case "csv":
		return WriteCSV(w, records, fields)
	case "xlsx":
		return WriteXLSX(w, records, fields)
	default:
		return fmt.Errorf("unsupported format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

// WriteNDJSON writes one JSON object per record.
func WriteNDJSON(w io.Writer, records []models.Record) error {
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

func WriteCSV(w io.Writer, records []models.Record, fields []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(fields); err != nil {
		return err
	}
	for _, r := range records {
		row := make([]string, len(fields))
		for i, f := range fields {
			if v, ok := r[f]; ok {
				row[i] = fmt.Sprint(v)
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a single-sheet workbook. Integer fields stay numeric.
func WriteXLSX(w io.Writer, records []models.Record, fields []string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	header := make([]any, len(fields))
	for i, name := range fields {
		header[i] = name
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range records {
		row := make([]any, len(fields))
		for j, name := range fields {
			if v, ok := r[name]; ok {
				row[j] = v
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
