package trace

// Recorder receives access records as the simulator produces them.
type Recorder interface {
	Record(rec AccessRecord)
}

// AccessTrace collects records in memory.
type AccessTrace struct {
	Records []AccessRecord
}

// NewAccessTrace creates an AccessTrace ready for recording.
func NewAccessTrace() *AccessTrace {
	return &AccessTrace{Records: make([]AccessRecord, 0)}
}

// Record appends one record.
func (at *AccessTrace) Record(rec AccessRecord) {
	at.Records = append(at.Records, rec)
}

// Fanout forwards each record to every recorder in order.
type Fanout []Recorder

// Record implements Recorder.
func (f Fanout) Record(rec AccessRecord) {
	for _, r := range f {
		r.Record(rec)
	}
}
