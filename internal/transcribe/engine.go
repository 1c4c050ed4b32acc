package transcribe

import (
	"context"
	"fmt"

	"github.com/dnzrx/video-sub-creator/internal/subtitle"
)

// Engine is a loaded speech-recognition capability. Load runs once per batch
// before any job is dispatched; Transcribe may then be called from multiple
// goroutines unless the engine is wrapped with Serialized.
type Engine interface {
	// Load prepares the capability (binary resolution, model warmup).
	Load(ctx context.Context) error
	// Transcribe converts mono 16kHz normalized samples into an ordered
	// segment sequence. Segment order is chronological and must be returned
	// exactly as produced, with no reordering or filtering.
	Transcribe(ctx context.Context, samples []float32) (subtitle.Transcript, error)
}

// validateSegments enforces the segment shape at the adapter boundary instead
// of trusting whatever the external tool emitted.
func validateSegments(transcript subtitle.Transcript) error {
	if err := transcript.Validate(); err != nil {
		return fmt.Errorf("transcription output: %w", err)
	}
	return nil
}
