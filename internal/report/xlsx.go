package report

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/xuri/excelize/v2"

	"github.com/ironsheep/attendance-report/internal/attendance"
	"github.com/ironsheep/attendance-report/internal/failure"
)

const (
	// DefaultFilename is used when the caller gives no output name.
	DefaultFilename = "relatorio_texto_imagens.xlsx"

	// SheetName is the title of the single worksheet.
	SheetName = "Frequências Junho 2024"

	// DefaultHeaderColor is the header row fill.
	DefaultHeaderColor = "#D9EAD3"
)

// ColumnWidths are the widths of columns A-F, in field order.
var ColumnWidths = [6]float64{10, 15, 30, 20, 40, 15}

// Styles controls the configurable parts of the sheet layout.
type Styles struct {
	// HeaderColor is the header fill as a hex colour ("#D9EAD3" or "d9ead3").
	HeaderColor string
}

// DefaultStyles returns the standard report look.
func DefaultStyles() Styles {
	return Styles{HeaderColor: DefaultHeaderColor}
}

// NormalizeFilename returns name with surrounding spaces removed, the
// default name when it is empty, and ".xlsx" appended when missing.
func NormalizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultFilename
	}
	if !strings.HasSuffix(strings.ToLower(name), ".xlsx") {
		name += ".xlsx"
	}
	return name
}

// ParseColor validates a hex colour and returns it in the "RRGGBB" form
// excelize expects.
func ParseColor(hex string) (string, error) {
	hex = strings.TrimSpace(hex)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return "", fmt.Errorf("invalid header color %q: %w", hex, err)
	}
	return strings.ToUpper(strings.TrimPrefix(c.Hex(), "#")), nil
}

// WriteXLSX writes t to path as a single-sheet workbook, replacing any
// existing file.
//
// Layout:
//   - Sheet titled SheetName
//   - Row 1: the header, bold with a solid fill and thin borders
//   - Rows 2..n+1: one record per row in table order, wrapped text, thin borders
//   - Column widths from ColumnWidths
//
// An empty table produces a header-only sheet. Save failures are returned
// as *failure.Error with code WriteFailed.
func WriteXLSX(path string, t *Table, styles Styles) error {
	headerColor, err := ParseColor(styles.HeaderColor)
	if err != nil {
		return failure.NewInvalidInput(err.Error())
	}

	f, err := build(t, headerColor)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return failure.NewWriteFailed(path, err)
	}
	return nil
}

func build(t *Table, headerColor string) (*excelize.File, error) {
	f := excelize.NewFile()

	fail := func(step string, err error) (*excelize.File, error) {
		f.Close()
		return nil, fmt.Errorf("failed to %s: %w", step, err)
	}

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fail("name sheet", err)
	}

	for i, width := range ColumnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fail("resolve column", err)
		}
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return fail("set column width", err)
		}
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerColor}},
		Border: border,
	})
	if err != nil {
		return fail("create header style", err)
	}

	bodyStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
		Border:    border,
	})
	if err != nil {
		return fail("create body style", err)
	}

	lastCol, _ := excelize.ColumnNumberToName(len(attendance.Columns))

	// Column default style covers cells typed in later by hand.
	if err := f.SetColStyle(SheetName, "A:"+lastCol, bodyStyle); err != nil {
		return fail("set column style", err)
	}

	if err := setRow(f, 1, t.Header()); err != nil {
		return fail("write header", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return fail("style header", err)
	}

	for i, row := range t.Rows() {
		if err := setRow(f, i+2, row); err != nil {
			return fail("write row", err)
		}
	}
	if t.Len() > 0 {
		last := fmt.Sprintf("%s%d", lastCol, t.Len()+1)
		if err := f.SetCellStyle(SheetName, "A2", last, bodyStyle); err != nil {
			return fail("style body", err)
		}
	}

	return f, nil
}

func setRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return f.SetSheetRow(SheetName, cell, &cells)
}

// ReadXLSX loads the records back from a report written by WriteXLSX.
// The header row is skipped.
func ReadXLSX(path string) ([]attendance.Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening XLSX: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", SheetName, err)
	}

	records := make([]attendance.Record, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue
		}
		records = append(records, attendance.FromValues(row))
	}
	return records, nil
}
