// Package attendance maps recognized text lines onto attendance records.
//
// Each line of an attendance sheet becomes one Record with six fields.
// The mapping is purely positional: tokens are taken in order, with a
// variable-width span in the middle for the per-day attendance marks and
// the last token as the monthly total. Token content is never inspected,
// so OCR noise flows through unchanged.
package attendance

import "strings"

// Columns are the report header labels, in field order.
var Columns = [6]string{
	"Horários",
	"Dias",
	"Atividade / Professor",
	"Idade / Morador",
	"Frequência - Dias do Mês",
	"Total do Mês",
}

// Record is one attendance sheet row. Fields with no matching token are "".
type Record struct {
	Schedule             string `json:"schedule"`
	Days                 string `json:"days"`
	ActivityOrInstructor string `json:"activity_or_instructor"`
	AgeOrResident        string `json:"age_or_resident"`
	MonthlyAttendance    string `json:"monthly_attendance"`
	MonthlyTotal         string `json:"monthly_total"`
}

// Values returns the fields in column order.
func (r Record) Values() []string {
	return []string{
		r.Schedule,
		r.Days,
		r.ActivityOrInstructor,
		r.AgeOrResident,
		r.MonthlyAttendance,
		r.MonthlyTotal,
	}
}

// FromValues is the inverse of Values. Missing trailing values are "" and
// extra values are ignored.
func FromValues(values []string) Record {
	get := func(i int) string {
		if i < len(values) {
			return values[i]
		}
		return ""
	}
	return Record{
		Schedule:             get(0),
		Days:                 get(1),
		ActivityOrInstructor: get(2),
		AgeOrResident:        get(3),
		MonthlyAttendance:    get(4),
		MonthlyTotal:         get(5),
	}
}

// Tokenize splits a line on runs of whitespace.
func Tokenize(line string) []string {
	return strings.Fields(line)
}

// MapLine tokenizes line and maps it with FromTokens.
func MapLine(line string) Record {
	return FromTokens(Tokenize(line))
}

// FromTokens assigns tokens to fields by position:
//
//	T[0] Schedule, T[1] Days, T[2] ActivityOrInstructor, T[3] AgeOrResident,
//	T[4 : n-1] MonthlyAttendance (space-joined), T[n-1] MonthlyTotal if n > 4.
//
// A 5-token line therefore has an empty attendance span and T[4] as total.
func FromTokens(tokens []string) Record {
	n := len(tokens)
	at := func(i int) string {
		if i < n {
			return tokens[i]
		}
		return ""
	}

	r := Record{
		Schedule:             at(0),
		Days:                 at(1),
		ActivityOrInstructor: at(2),
		AgeOrResident:        at(3),
	}
	if n > 5 {
		r.MonthlyAttendance = strings.Join(tokens[4:n-1], " ")
	}
	if n > 4 {
		r.MonthlyTotal = tokens[n-1]
	}
	return r
}
