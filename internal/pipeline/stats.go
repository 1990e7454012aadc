package pipeline

import "time"

// FileResult records the outcome of one conversion. Results are stored by
// enumerated position, never by completion order.
type FileResult struct {
	Source   string
	Dest     string
	Rows     int64 // Source row count from the footer probe; -1 when unknown.
	InBytes  int64
	OutBytes int64
	Elapsed  time.Duration
	Skipped  bool // Never dispatched (interrupt or fail-fast).
	Err      error
}

// RunStats tracks aggregate counters and byte totals across a batch run.
type RunStats struct {
	Total            int
	Converted        int
	Failed           int
	Skipped          int
	TotalInputBytes  int64
	TotalOutputBytes int64
	Results          []FileResult
}

// aggregate folds the per-file results into the counters.
func (s *RunStats) aggregate() {
	for _, r := range s.Results {
		switch {
		case r.Skipped:
			s.Skipped++
		case r.Err != nil:
			s.Failed++
		default:
			s.Converted++
			s.TotalInputBytes += r.InBytes
			s.TotalOutputBytes += r.OutBytes
		}
	}
}
