package batch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/dnzrx/video-sub-creator/internal/logging"
	"github.com/dnzrx/video-sub-creator/internal/media/pcm"
	"github.com/dnzrx/video-sub-creator/internal/subtitle"
	"github.com/dnzrx/video-sub-creator/internal/transcribe"
)

const lockFileName = ".vidsub.lock"

// Extractor produces a normalized audio sample buffer from a video file.
type Extractor interface {
	Extract(ctx context.Context, videoPath string) ([]float32, error)
}

// Options configures a coordinator.
type Options struct {
	SourceDir string
	OutputDir string
	// Extensions is the recognized video filename suffix allowlist.
	Extensions []string
	// CaseInsensitive also matches uppercase suffix variants.
	CaseInsensitive bool
	// Workers bounds concurrent jobs; 0 means the host's available parallelism.
	Workers int
}

// Coordinator runs the batch pipeline: discovery, engine load, bounded
// fan-out, and per-job failure isolation. Each job owns its own sample
// buffer and transcript; the only shared resource is the engine.
type Coordinator struct {
	opts      Options
	extractor Extractor
	engine    transcribe.Engine
	logger    *slog.Logger
}

// NewCoordinator wires a coordinator from its collaborators.
func NewCoordinator(opts Options, extractor Extractor, engine transcribe.Engine, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		opts:      opts,
		extractor: extractor,
		engine:    engine,
		logger:    logging.NewComponentLogger(logger, "batch"),
	}
}

// Run processes every eligible file in the source directory and blocks until
// all dispatched jobs finish. Per-file failures are contained in the returned
// summary; the error return is reserved for run-level conditions (output
// directory creation, lock acquisition, engine load).
func (c *Coordinator) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{
		RunID:     uuid.NewString(),
		SourceDir: c.opts.SourceDir,
		OutputDir: c.opts.OutputDir,
		StartedAt: time.Now().UTC(),
	}
	logger := c.logger.With(logging.String(logging.FieldRunID, summary.RunID))

	files, err := Discover(c.opts.SourceDir, c.opts.Extensions, c.opts.CaseInsensitive)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("source directory not found; nothing to do",
				logging.String("dir", c.opts.SourceDir))
			summary.FinishedAt = time.Now().UTC()
			return summary, nil
		}
		return nil, fmt.Errorf("scan source directory: %w", err)
	}
	if len(files) == 0 {
		logger.Info("no videos found", logging.String("dir", c.opts.SourceDir))
		summary.FinishedAt = time.Now().UTC()
		return summary, nil
	}

	if err := os.MkdirAll(c.opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	lock := flock.New(filepath.Join(c.opts.OutputDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire output lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("output directory %s is in use by another run", c.opts.OutputDir)
	}
	defer func() { _ = lock.Unlock() }()

	// The engine loads once and is shared by every job.
	if err := c.engine.Load(ctx); err != nil {
		return nil, fmt.Errorf("load transcription engine: %w", err)
	}

	workers := c.opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(files) {
		workers = len(files)
	}
	logger.Info("starting batch",
		logging.Int("videos", len(files)),
		logging.Int("workers", workers),
	)

	jobs := make(chan string)
	var (
		mu      sync.Mutex
		results = make([]JobResult, 0, len(files))
		wg      sync.WaitGroup
	)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for path := range jobs {
				result := c.runJob(ctx, logger, path)
				mu.Lock()
				results = append(results, result)
				mu.Unlock()
			}
		}()
	}
	for _, path := range files {
		jobs <- path
	}
	close(jobs)
	wg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].Source < results[j].Source })
	summary.Results = results
	summary.FinishedAt = time.Now().UTC()
	logger.Info("batch finished",
		logging.Int("total", summary.Total()),
		logging.Int("succeeded", summary.Succeeded()),
		logging.Int("failed", summary.Failed()),
		logging.Duration("elapsed", summary.FinishedAt.Sub(summary.StartedAt)),
	)
	return summary, nil
}

// runJob executes one file's pipeline and never lets a failure escape: errors
// and panics both land in the JobResult so sibling jobs keep running.
func (c *Coordinator) runJob(ctx context.Context, logger *slog.Logger, path string) (result JobResult) {
	result.Source = path
	start := time.Now()
	defer func() {
		result.Elapsed = time.Since(start)
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("job panic: %v", r)
		}
		if result.Err != nil {
			logger.Error("job failed",
				logging.String(logging.FieldSource, filepath.Base(path)),
				logging.Error(result.Err),
			)
		}
	}()

	jobLogger := logger.With(logging.String(logging.FieldSource, filepath.Base(path)))

	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	jobLogger.Info("extracting audio")
	samples, err := c.extractor.Extract(ctx, path)
	if err != nil {
		result.Err = err
		return result
	}

	jobLogger.Info("generating subtitles",
		logging.Duration("audio", sampleDuration(len(samples))))
	transcript, err := c.engine.Transcribe(ctx, samples)
	if err != nil {
		result.Err = fmt.Errorf("transcription: %w", err)
		return result
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	vttPath := filepath.Join(c.opts.OutputDir, base+".vtt")
	if err := subtitle.SaveVTT(vttPath, transcript); err != nil {
		result.Err = err
		return result
	}
	srtPath := filepath.Join(c.opts.OutputDir, base+".srt")
	if err := subtitle.SaveSRT(srtPath, transcript); err != nil {
		result.Err = err
		return result
	}

	result.VTTPath = vttPath
	result.SRTPath = srtPath
	result.SegmentCount = len(transcript)
	jobLogger.Info("subtitles saved",
		logging.Int("segments", len(transcript)),
		logging.Duration("elapsed", time.Since(start).Round(time.Millisecond)),
	)
	return result
}

func sampleDuration(sampleCount int) time.Duration {
	return time.Duration(sampleCount) * time.Second / pcm.SampleRate
}
