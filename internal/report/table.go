// Package report turns attendance records into a styled single-sheet
// spreadsheet.
package report

import (
	"github.com/ironsheep/attendance-report/internal/attendance"
)

// Table is an immutable, ordered set of records with the fixed header.
type Table struct {
	records []attendance.Record
}

// NewTable copies records into a new Table; later changes to the slice do
// not affect it.
func NewTable(records []attendance.Record) *Table {
	cp := make([]attendance.Record, len(records))
	copy(cp, records)
	return &Table{records: cp}
}

// Header returns the six column labels.
func (t *Table) Header() []string {
	header := attendance.Columns
	return header[:]
}

// Len returns the number of body rows.
func (t *Table) Len() int {
	return len(t.records)
}

// Records returns a copy of the records in order.
func (t *Table) Records() []attendance.Record {
	cp := make([]attendance.Record, len(t.records))
	copy(cp, t.records)
	return cp
}

// Rows returns the body rows, one []string per record, in order.
func (t *Table) Rows() [][]string {
	rows := make([][]string, len(t.records))
	for i, r := range t.records {
		rows[i] = r.Values()
	}
	return rows
}
