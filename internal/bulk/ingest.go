// Package bulk turns spreadsheets into per-row cover configuration deltas.
package bulk

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"

	"github.com/youruser/coverapp/internal/cover"
)

// ErrEmptySheet means the input held no data rows, or could not be read at all.
var ErrEmptySheet = errors.New("spreadsheet is empty or unreadable")

// Result is a parsed and mapped spreadsheet.
type Result struct {
	Items        []cover.Delta `json:"items"`
	MissingCount int           `json:"missing_count"`
	Missing      []string      `json:"missing"`
}

// Outcome is delivered once on the channel returned by Start.
type Outcome struct {
	Result *Result
	Err    error
}

// Start ingests data on its own goroutine. The channel receives exactly one
// Outcome and is then closed.
func (m Mapper) Start(ctx context.Context, data []byte, filename string) <-chan Outcome {
	ch := make(chan Outcome, 1)
	go func() {
		defer close(ch)
		res, err := m.Ingest(ctx, data, filename)
		ch <- Outcome{Result: res, Err: err}
	}()
	return ch
}

// Ingest parses an xlsx or csv file and maps every data row.
func (m Mapper) Ingest(ctx context.Context, data []byte, filename string) (*Result, error) {
	records, err := ReadRecords(data, filename)
	if err != nil {
		slog.Warn("Spreadsheet could not be parsed", "file", filename, "err", err)
		return nil, fmt.Errorf("%w: %v", ErrEmptySheet, err)
	}
	if len(records) == 0 {
		return nil, ErrEmptySheet
	}

	res := &Result{Items: make([]cover.Delta, 0, len(records))}
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		d, missing := m.Map(rec)
		if missing != "" {
			res.MissingCount++
			res.Missing = append(res.Missing, missing)
			slog.Warn("Side image not uploaded", "row", i+1, "filename", missing)
		}
		res.Items = append(res.Items, d)
	}
	slog.Info("Spreadsheet loaded", "file", filename, "rows", len(res.Items), "missing", res.MissingCount)
	return res, nil
}

// IsXLSX reports whether data looks like an Office Open XML workbook.
func IsXLSX(data []byte, filename string) bool {
	if strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		return true
	}
	return bytes.HasPrefix(data, []byte("PK\x03\x04"))
}

// ReadRecords returns the data rows of the first sheet. The first non-empty
// row is the header; blank rows and columns without a header are dropped.
func ReadRecords(data []byte, filename string) ([]Record, error) {
	var rows [][]string
	var err error
	if IsXLSX(data, filename) {
		rows, err = readXLSX(data)
	} else {
		rows, err = readCSV(data)
	}
	if err != nil {
		return nil, err
	}
	return toRecords(rows), nil
}

func readXLSX(data []byte) ([][]string, error) {
	wb, err := spreadsheet.Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	sheets := wb.Sheets()
	if len(sheets) == 0 {
		return nil, nil
	}

	var rows [][]string
	for _, row := range sheets[0].Rows() {
		var vals []string
		for _, cell := range row.Cells() {
			colName, err := cell.Column()
			if err != nil {
				continue
			}
			idx := int(reference.ColumnToIndex(colName))
			for len(vals) <= idx {
				vals = append(vals, "")
			}
			vals[idx] = cell.GetFormattedValue()
		}
		rows = append(rows, vals)
	}
	return rows, nil
}

func readCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.ReadAll()
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func toRecords(rows [][]string) []Record {
	start := 0
	for start < len(rows) && blank(rows[start]) {
		start++
	}
	if start >= len(rows) {
		return nil
	}

	header := make([]string, len(rows[start]))
	for i, h := range rows[start] {
		header[i] = strings.TrimSpace(h)
	}

	var out []Record
	for _, row := range rows[start+1:] {
		if blank(row) {
			continue
		}
		rec := Record{}
		for i, v := range row {
			if i >= len(header) || header[i] == "" {
				continue
			}
			if _, dup := rec[header[i]]; dup {
				continue
			}
			rec[header[i]] = v
		}
		out = append(out, rec)
	}
	return out
}
