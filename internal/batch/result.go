package batch

import "time"

// JobResult is the outcome of one input file's pipeline. Err is nil on
// success; on failure the output path fields are empty.
type JobResult struct {
	Source       string
	VTTPath      string
	SRTPath      string
	SegmentCount int
	Elapsed      time.Duration
	Err          error
}

// Succeeded reports whether the job produced both subtitle files.
func (r JobResult) Succeeded() bool {
	return r.Err == nil
}

// Summary describes a completed run. Results holds exactly one entry per
// discovered input file, sorted by source path.
type Summary struct {
	RunID      string
	SourceDir  string
	OutputDir  string
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []JobResult
}

// Total returns the number of discovered input files.
func (s *Summary) Total() int {
	return len(s.Results)
}

// Succeeded counts jobs that produced output file pairs.
func (s *Summary) Succeeded() int {
	count := 0
	for _, r := range s.Results {
		if r.Succeeded() {
			count++
		}
	}
	return count
}

// Failed counts jobs recorded as failures.
func (s *Summary) Failed() int {
	return s.Total() - s.Succeeded()
}
