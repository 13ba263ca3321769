package trace

// LevelSummary aggregates the records of one level.
type LevelSummary struct {
	Reads      int
	Writes     int
	Writebacks int
	Hits       int
	Misses     int
}

// HitRate returns hits / (hits + misses), or 0 with no lookups.
func (ls LevelSummary) HitRate() float64 {
	total := ls.Hits + ls.Misses
	if total == 0 {
		return 0
	}
	return float64(ls.Hits) / float64(total)
}

// TraceSummary aggregates statistics from an AccessTrace.
type TraceSummary struct {
	TotalRecords int
	Ignores      int
	Flushes      int
	FinalClock   float64
	PerLevel     map[string]*LevelSummary
}

// Summarize computes aggregate statistics from an AccessTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(at *AccessTrace) *TraceSummary {
	summary := &TraceSummary{
		PerLevel: make(map[string]*LevelSummary),
	}
	if at == nil {
		return summary
	}

	summary.TotalRecords = len(at.Records)
	for _, r := range at.Records {
		if r.Clock > summary.FinalClock {
			summary.FinalClock = r.Clock
		}
		switch r.Kind {
		case KindIgnore:
			summary.Ignores++
			continue
		case KindFlush:
			summary.Flushes++
			continue
		}

		ls, ok := summary.PerLevel[r.Level]
		if !ok {
			ls = &LevelSummary{}
			summary.PerLevel[r.Level] = ls
		}
		switch r.Kind {
		case KindRead:
			ls.Reads++
		case KindWrite:
			ls.Writes++
		case KindWriteback:
			ls.Writebacks++
		}
		if r.Hit {
			ls.Hits++
		} else {
			ls.Misses++
		}
	}
	return summary
}
