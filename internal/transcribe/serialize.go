package transcribe

import (
	"context"
	"sync"

	"github.com/dnzrx/video-sub-creator/internal/subtitle"
)

// Serialized wraps an engine that is not safe for concurrent invocation so at
// most one Transcribe runs at a time. Extraction and output writing for other
// jobs continue in parallel; only inference is funneled through the lock.
func Serialized(engine Engine) Engine {
	return &serializedEngine{inner: engine}
}

type serializedEngine struct {
	inner Engine
	mu    sync.Mutex
}

func (s *serializedEngine) Load(ctx context.Context) error {
	return s.inner.Load(ctx)
}

func (s *serializedEngine) Transcribe(ctx context.Context, samples []float32) (subtitle.Transcript, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Transcribe(ctx, samples)
}
