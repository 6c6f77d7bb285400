// Package export writes the task list as CSV, JSON, YAML or an Excel workbook.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"task-tracker/internal/datetime"
	"task-tracker/internal/domain"
	"task-tracker/internal/errors"
)

// Format names an output format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatXLSX Format = "xlsx"
)

// Formats lists every supported format in help order.
var Formats = []Format{FormatCSV, FormatJSON, FormatYAML, FormatXLSX}

// ParseFormat accepts a format name in any case; "yml" is taken as YAML.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON, FormatYAML, FormatXLSX:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", errors.NewInvalidInputError("format", s, "unsupported format, use one of csv, json, yaml, xlsx")
}

// Row is the flat, format-neutral form of one task. Timestamps use the
// ISO local date-time form and are empty when they do not apply.
type Row struct {
	Index       int    `json:"index" yaml:"index"`
	Kind        string `json:"kind" yaml:"kind"`
	Description string `json:"description" yaml:"description"`
	Done        bool   `json:"done" yaml:"done"`
	Priority    string `json:"priority" yaml:"priority"`
	By          string `json:"by,omitempty" yaml:"by,omitempty"`
	From        string `json:"from,omitempty" yaml:"from,omitempty"`
	To          string `json:"to,omitempty" yaml:"to,omitempty"`
}

var header = []string{"Index", "Kind", "Description", "Done", "Priority", "By", "From", "To"}

// NewRow flattens a task at the given 1-based display index.
func NewRow(index int, t domain.Task) Row {
	row := Row{
		Index:       index,
		Kind:        t.Kind().Name(),
		Description: t.Description,
		Done:        t.Done,
		Priority:    t.Priority.String(),
	}
	switch w := t.When.(type) {
	case domain.Deadline:
		row.By = datetime.FormatISO(w.By)
	case domain.Event:
		row.From = datetime.FormatISO(w.From)
		row.To = datetime.FormatISO(w.To)
	}
	return row
}

func (r Row) fields() []string {
	return []string{strconv.Itoa(r.Index), r.Kind, r.Description, strconv.FormatBool(r.Done), r.Priority, r.By, r.From, r.To}
}

// Exporter writes rows in one format.
type Exporter interface {
	Export(w io.Writer, rows []Row) error
}

// NewExporter returns the exporter for format.
func NewExporter(format Format) (Exporter, error) {
	switch format {
	case FormatCSV:
		return csvExporter{}, nil
	case FormatJSON:
		return jsonExporter{}, nil
	case FormatYAML:
		return yamlExporter{}, nil
	case FormatXLSX:
		return xlsxExporter{sheet: "Tasks"}, nil
	}
	return nil, errors.NewInvalidInputError("format", string(format), "unsupported format")
}

type csvExporter struct{}

func (csvExporter) Export(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range rows {
		if err := writer.Write(r.fields()); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

type jsonExporter struct{}

func (jsonExporter) Export(w io.Writer, rows []Row) error {
	if rows == nil {
		rows = []Row{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

type yamlExporter struct{}

func (yamlExporter) Export(w io.Writer, rows []Row) error {
	if rows == nil {
		rows = []Row{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}

// xlsxExporter streams rows into a single worksheet.
type xlsxExporter struct {
	sheet string
}

var columnWidths = []float64{8, 10, 40, 8, 10, 18, 18, 18}

func (x xlsxExporter) Export(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", x.sheet); err != nil {
		return err
	}
	sw, err := f.NewStreamWriter(x.sheet)
	if err != nil {
		return err
	}
	for i, width := range columnWidths {
		if err := sw.SetColWidth(i+1, i+1, width); err != nil {
			return err
		}
	}

	cells := make([]interface{}, len(header))
	for i, h := range header {
		cells[i] = h
	}
	if err := sw.SetRow("A1", cells); err != nil {
		return err
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{r.Index, r.Kind, r.Description, r.Done, r.Priority, r.By, r.From, r.To}
		if err := sw.SetRow(cell, values); err != nil {
			return err
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}
	return f.Write(w)
}
