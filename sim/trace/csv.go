package trace

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

var accessColumns = []string{"seq", "clock_ns", "level", "kind", "address", "hit"}

// CSVWriter buffers access records and writes them to a CSV file.
type CSVWriter struct {
	path       string
	file       *os.File
	writer     *csv.Writer
	records    []AccessRecord
	bufferSize int
	err        error
}

// NewCSVWriter creates a writer for path. An empty path picks a unique
// cachesim_trace_<xid>.csv name on Init.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{
		path:       path,
		bufferSize: 1000,
	}
}

// Path returns the file the writer targets.
func (w *CSVWriter) Path() string {
	return w.path
}

// Init creates the file and writes the header row. It refuses to overwrite
// an existing file. Buffered records are flushed on atexit.Exit.
func (w *CSVWriter) Init() error {
	if w.path == "" {
		w.path = "cachesim_trace_" + xid.New().String() + ".csv"
	}
	if _, err := os.Stat(w.path); err == nil {
		return fmt.Errorf("file %s already exists", w.path)
	}

	file, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("creating access log: %w", err)
	}
	w.file = file
	w.writer = csv.NewWriter(file)
	if err := w.writer.Write(accessColumns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	atexit.Register(func() { _ = w.Close() })
	return nil
}

// Record implements Recorder. Write errors are kept and returned by Close.
func (w *CSVWriter) Record(rec AccessRecord) {
	w.records = append(w.records, rec)
	if len(w.records) >= w.bufferSize {
		w.Flush()
	}
}

// Flush writes all buffered records.
func (w *CSVWriter) Flush() {
	if w.writer == nil || w.err != nil {
		w.records = nil
		return
	}
	for _, r := range w.records {
		row := []string{
			strconv.FormatUint(r.Seq, 10),
			strconv.FormatFloat(r.Clock, 'f', -1, 64),
			r.Level,
			string(r.Kind),
			"0x" + strconv.FormatUint(r.Address, 16),
			strconv.FormatBool(r.Hit),
		}
		if err := w.writer.Write(row); err != nil {
			w.err = fmt.Errorf("writing CSV row %d: %w", r.Seq, err)
			break
		}
	}
	w.records = nil
	w.writer.Flush()
	if err := w.writer.Error(); err != nil && w.err == nil {
		w.err = err
	}
}

// Close flushes and closes the file. Safe to call more than once.
func (w *CSVWriter) Close() error {
	if w.file == nil {
		return w.err
	}
	w.Flush()
	if err := w.file.Close(); err != nil && w.err == nil {
		w.err = err
	}
	w.file = nil
	w.writer = nil
	return w.err
}
