// Package reporter serializes contact records to tabular files.
package reporter

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/amosWeiskopf/contactsmith/internal/models"
	"github.com/amosWeiskopf/contactsmith/pkg/utils"
)

// Supported export formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

const sheetName = "Contacts"

var columns = []string{"Person Name", "Designation", "Company", "Email(s)", "Phone(s)", "Source URL"}

// Reporter handles contact export in various formats
type Reporter struct {
	placeholder string
}

// New creates a new Reporter instance. The placeholder fills absent fields.
func New(placeholder string) *Reporter {
	if placeholder == "" {
		placeholder = "None"
	}
	return &Reporter{placeholder: placeholder}
}

// Generate creates export bytes in the specified format
func (r *Reporter) Generate(records []models.ContactRecord, format string) ([]byte, error) {
	switch format {
	case FormatCSV:
		return r.generateCSV(records)
	case FormatXLSX:
		return r.generateXLSX(records)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func (r *Reporter) generateCSV(records []models.ContactRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for _, record := range records {
		if err := w.Write(r.row(record)); err != nil {
			return nil, fmt.Errorf("failed to write record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Reporter) generateXLSX(records []models.ContactRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	writeRow := func(rowIdx int, values []string) error {
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return err
			}
		}
		return nil
	}

	if err := writeRow(1, columns); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for i, record := range records {
		if err := writeRow(i+2, r.row(record)); err != nil {
			return nil, fmt.Errorf("failed to write record: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// row renders a record in fixed column order, filling absent fields with
// the placeholder and stripping control characters spreadsheet writers
// choke on.
func (r *Reporter) row(record models.ContactRecord) []string {
	fields := []string{
		record.PersonName,
		record.Designation,
		record.Company,
		record.Emails,
		record.Phones,
		record.SourceURL,
	}
	for i, field := range fields {
		field = utils.StripControl(field)
		if field == "" {
			field = r.placeholder
		}
		fields[i] = field
	}
	return fields
}
