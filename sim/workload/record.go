// Package workload parses, replays and synthesizes memory-access traces.
//
// A trace is one record per line: "<opcode> <hex-address> <hex-value>", with
// opcode 0=read, 1=write, 2=instruction fetch, 3=ignore, 4=flush. Only
// instruction fetches may carry a non-zero value.
package workload

import (
	"fmt"
	"strconv"
	"strings"
)

// Opcode is the first field of a trace record.
type Opcode int

const (
	OpMemoryRead Opcode = iota
	OpMemoryWrite
	OpInstructionFetch
	OpIgnore
	OpFlush
)

func (op Opcode) String() string {
	switch op {
	case OpMemoryRead:
		return "read"
	case OpMemoryWrite:
		return "write"
	case OpInstructionFetch:
		return "fetch"
	case OpIgnore:
		return "ignore"
	case OpFlush:
		return "flush"
	}
	return fmt.Sprintf("opcode(%d)", int(op))
}

// Record is one parsed trace line.
type Record struct {
	Op      Opcode
	Address uint64
	Value   uint64
}

// String formats r in trace-file syntax.
func (r Record) String() string {
	return fmt.Sprintf("%d %x %x", int(r.Op), r.Address, r.Value)
}

// ParseRecord parses one non-blank trace line.
// The returned error describes the problem without line context; Reader adds it.
func ParseRecord(line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return Record{}, fmt.Errorf("expected 3 fields, got %d", len(fields))
	}
	if len(fields[0]) != 1 || fields[0][0] < '0' || fields[0][0] > '9' {
		return Record{}, fmt.Errorf("opcode %q is not a single digit", fields[0])
	}
	op := Opcode(fields[0][0] - '0')
	if op > OpFlush {
		return Record{}, fmt.Errorf("unknown opcode %d", int(op))
	}

	address, err := parseHex(fields[1])
	if err != nil {
		return Record{}, fmt.Errorf("address: %w", err)
	}
	value, err := parseHex(fields[2])
	if err != nil {
		return Record{}, fmt.Errorf("value: %w", err)
	}
	if op != OpInstructionFetch && value != 0 {
		return Record{}, fmt.Errorf("%s record must carry value 0, got %#x", op, value)
	}
	return Record{Op: op, Address: address, Value: value}, nil
}

// parseHex accepts hex digits with an optional 0x/0X prefix.
func parseHex(field string) (uint64, error) {
	digits := strings.TrimPrefix(strings.TrimPrefix(field, "0x"), "0X")
	if digits == "" {
		return 0, fmt.Errorf("%q has no hex digits", field)
	}
	v, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a hex number", field)
	}
	return v, nil
}
