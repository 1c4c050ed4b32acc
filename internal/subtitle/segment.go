package subtitle

import "fmt"

// Segment is one timed span of transcribed speech. Start and End are seconds
// from the beginning of the media.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Validate checks the segment timing invariants.
func (s Segment) Validate() error {
	if s.Start < 0 {
		return fmt.Errorf("segment start %.3f is negative", s.Start)
	}
	if s.End < s.Start {
		return fmt.Errorf("segment end %.3f precedes start %.3f", s.End, s.Start)
	}
	return nil
}

// Transcript is the full ordered segment sequence for one input file.
// Order is chronological and is preserved verbatim in serialized output.
type Transcript []Segment

// Validate checks every segment in order.
func (t Transcript) Validate() error {
	for i, seg := range t {
		if err := seg.Validate(); err != nil {
			return fmt.Errorf("segment %d: %w", i, err)
		}
	}
	return nil
}
