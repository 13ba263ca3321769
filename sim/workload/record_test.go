package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecord_Valid(t *testing.T) {
	tests := []struct {
		line string
		want Record
	}{
		{"0 1000 0", Record{Op: OpMemoryRead, Address: 0x1000}},
		{"1 7fff0 0", Record{Op: OpMemoryWrite, Address: 0x7fff0}},
		{"2 0x400000 8b", Record{Op: OpInstructionFetch, Address: 0x400000, Value: 0x8b}},
		{"3 0 0", Record{Op: OpIgnore}},
		{"4 0 0", Record{Op: OpFlush}},
		{"  0\tDEADBEEF   0  ", Record{Op: OpMemoryRead, Address: 0xdeadbeef}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseRecord(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRecord_Invalid(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"unknown opcode", "9 0 0"},
		{"opcode not a digit", "r 0 0"},
		{"multi-digit opcode", "10 0 0"},
		{"too few fields", "0 1000"},
		{"too many fields", "0 1000 0 0"},
		{"bad address", "0 xyz 0"},
		{"bare prefix", "0 0x 0"},
		{"bad value", "2 1000 zz"},
		{"read with value", "0 1000 1"},
		{"write with value", "1 1000 ff"},
		{"ignore with value", "3 0 1"},
		{"flush with value", "4 0 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRecord(tt.line)
			assert.Error(t, err)
		})
	}
}

func TestRecord_StringRoundTrips(t *testing.T) {
	rec := Record{Op: OpInstructionFetch, Address: 0xabc, Value: 0x12}
	assert.Equal(t, "2 abc 12", rec.String())

	parsed, err := ParseRecord(rec.String())
	require.NoError(t, err)
	assert.Equal(t, rec, parsed)
}

func TestOpcode_String(t *testing.T) {
	assert.Equal(t, "read", OpMemoryRead.String())
	assert.Equal(t, "flush", OpFlush.String())
	assert.Equal(t, "opcode(7)", Opcode(7).String())
}
