package workload

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cachesim/cachesim/sim"
)

// Reader streams records from a trace, one line at a time.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// Line returns the 1-based number of the last line read.
func (r *Reader) Line() int {
	return r.line
}

// Next returns the next record, skipping blank lines. It returns io.EOF at
// the end of input and a *sim.TraceFormatError for a malformed line.
func (r *Reader) Next() (Record, error) {
	for r.scanner.Scan() {
		r.line++
		raw := r.scanner.Text()
		if strings.TrimSpace(raw) == "" {
			continue
		}
		rec, err := ParseRecord(raw)
		if err != nil {
			return Record{}, &sim.TraceFormatError{Line: r.line, Raw: raw, Reason: err.Error()}
		}
		return rec, nil
	}
	if err := r.scanner.Err(); err != nil {
		return Record{}, &sim.ResourceError{Resource: fmt.Sprintf("trace line %d", r.line+1), Err: err}
	}
	return Record{}, io.EOF
}

// ReadAll parses every record of r. It stops at the first malformed line.
func ReadAll(r io.Reader) ([]Record, error) {
	reader := NewReader(r)
	var records []Record
	for {
		rec, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
}
