package views

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"sensor-app/models"
)

// DefaultDelimiter separates export fields.
const DefaultDelimiter = ';'

// CSVWriter is a concurrency-safe, buffered CSV file writer.
//
// The bufio.Writer absorbs syscall overhead; Flush is left to the caller so
// rows can be appended without touching the disk each time.
type CSVWriter struct {
	mu   sync.Mutex
	file *os.File
	buf  *bufio.Writer
	csv  *csv.Writer
	rows uint64
}

// NewCSVWriter creates a file and writes the header row.
func NewCSVWriter(path string, bufSizeBytes int, delimiter rune, header []string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv create %s: %w", path, err)
	}

	if bufSizeBytes <= 0 {
		bufSizeBytes = 64 * 1024
	}

	bw := bufio.NewWriterSize(f, bufSizeBytes)
	cw := newCSV(bw, delimiter)

	w := &CSVWriter{
		file: f,
		buf:  bw,
		csv:  cw,
	}

	if len(header) > 0 {
		if err := cw.Write(header); err != nil {
			f.Close()
			return nil, fmt.Errorf("csv write header: %w", err)
		}
	}

	return w, nil
}

// WriteRow appends a single CSV row. Thread-safe.
func (w *CSVWriter) WriteRow(row []string) {
	w.mu.Lock()
	_ = w.csv.Write(row) // error is buffered; checked on Flush
	w.rows++
	w.mu.Unlock()
}

// Flush pushes the buffered data to the OS.
func (w *CSVWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return err
	}
	return w.buf.Flush()
}

// Close flushes remaining data and closes the file.
func (w *CSVWriter) Close() error {
	flushErr := w.Flush()
	w.mu.Lock()
	closeErr := w.file.Close()
	w.mu.Unlock()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// Rows returns the number of data rows written (excludes header).
func (w *CSVWriter) Rows() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rows
}

func newCSV(out io.Writer, delimiter rune) *csv.Writer {
	cw := csv.NewWriter(out)
	if delimiter != 0 {
		cw.Comma = delimiter
	}
	return cw
}

// ParseDelimiter takes the first rune of a configured delimiter string.
func ParseDelimiter(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return DefaultDelimiter
	}
	return r
}

// Exporter turns a session history into delimited text.
type Exporter struct {
	Delimiter    rune
	Format       models.Formatter
	BufferSizeKB int
}

// NewExporter returns an exporter using delimiter and locale-aware decimals.
func NewExporter(delimiter rune, format models.Formatter) *Exporter {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	return &Exporter{Delimiter: delimiter, Format: format}
}

// Export streams the header plus one row per record to out.
func (e *Exporter) Export(out io.Writer, kind models.SensorKind, records []models.Record) error {
	cw := newCSV(out, e.Delimiter)
	if err := cw.Write(HeaderFor(kind)); err != nil {
		return fmt.Errorf("csv write header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(r.CSVRow(e.Format)); err != nil {
			return fmt.Errorf("csv write row %d: %w", r.Seq(), err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Render returns the export as a string: N records produce N+1 lines.
func (e *Exporter) Render(kind models.SensorKind, records []models.Record) (string, error) {
	var sb strings.Builder
	if err := e.Export(&sb, kind, records); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// WriteFile writes <dir>/<kind>.csv and returns its path. An empty dir means
// the OS temp directory.
func (e *Exporter) WriteFile(dir string, kind models.SensorKind, records []models.Record) (string, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, kind.String()+".csv")

	w, err := NewCSVWriter(path, e.BufferSizeKB*1024, e.Delimiter, HeaderFor(kind))
	if err != nil {
		return "", err
	}
	for _, r := range records {
		w.WriteRow(r.CSVRow(e.Format))
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("csv close %s: %w", path, err)
	}
	return path, nil
}
