package models

import (
	"strconv"
)

// ─── shared formatting helpers (package-private) ────────────────────────

func itoa(v int) string { return strconv.Itoa(v) }
func ftoa(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// Formatter renders a numeric field for export. views.NumberFormat is the
// locale-aware implementation; PlainFormatter is used when none is given.
type Formatter interface {
	Decimal(v float64) string
}

// PlainFormatter formats with '.' as decimal separator and a fixed precision.
type PlainFormatter struct {
	Precision int
}

func (p PlainFormatter) Decimal(v float64) string {
	prec := p.Precision
	if prec <= 0 {
		prec = 6
	}
	return ftoa(v, prec)
}

// Payload is the fixed set of numeric fields a sensor delivers per reading.
type Payload interface {
	// Columns returns the CSV data columns following ID and Time.
	Columns() []string
	// Fields formats every data column, in Columns order.
	Fields(f Formatter) []string
	// Field looks up a numeric field by its series name (e.g. "x", "pressure").
	Field(name string) (float64, bool)
	// FieldNames lists the names accepted by Field.
	FieldNames() []string
}

// CSVRowWriter is the interface every exportable record must satisfy.
type CSVRowWriter interface {
	CSVHeader() []string
	CSVRow(f Formatter) []string
}

func formatAll(f Formatter, vals ...float64) []string {
	if f == nil {
		f = PlainFormatter{}
	}
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = f.Decimal(v)
	}
	return out
}
