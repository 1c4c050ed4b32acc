package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/dnzrx/video-sub-creator/internal/logging"
	"github.com/dnzrx/video-sub-creator/internal/media/pcm"
	"github.com/dnzrx/video-sub-creator/internal/subtitle"
)

// Defaults for the whisper CLI engine.
const (
	WhisperCommand = "whisper"
	DefaultModel   = "small"
)

// Options configures a whisper CLI engine.
type Options struct {
	// Binary is the whisper executable; resolved from PATH when relative.
	Binary string
	// Model is the model name passed to the tool (e.g. "small").
	Model string
	// Language is an ISO 639-1 tag; empty means auto-detect.
	Language string
	// WorkDir hosts per-call temporary WAV and JSON files; defaults to the
	// system temp directory.
	WorkDir string
}

// WhisperCLI runs the whisper command-line tool on temporary WAV renderings
// of the sample buffer and reads segments back from its JSON output. The
// tool's own chatter stays out of progress output: stderr and stdout are
// captured per call and surface only inside a failure's error message.
type WhisperCLI struct {
	opts   Options
	logger *slog.Logger

	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewWhisperCLI creates an engine with the given options.
func NewWhisperCLI(opts Options, logger *slog.Logger) *WhisperCLI {
	if strings.TrimSpace(opts.Binary) == "" {
		opts.Binary = WhisperCommand
	}
	if strings.TrimSpace(opts.Model) == "" {
		opts.Model = DefaultModel
	}
	return &WhisperCLI{
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "transcribe"),
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (w *WhisperCLI) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	w.commandRunner = runner
}

// Model returns the configured model name for logging.
func (w *WhisperCLI) Model() string {
	return w.opts.Model
}

// Load resolves the whisper binary once per run. The model itself is loaded
// by the tool on first invocation; resolving the binary up front keeps a
// missing installation a run-level failure instead of N per-file failures.
func (w *WhisperCLI) Load(ctx context.Context) error {
	if w.commandRunner != nil {
		return nil
	}
	resolved, err := exec.LookPath(w.opts.Binary)
	if err != nil {
		return fmt.Errorf("transcribe: locate %s: %w", w.opts.Binary, err)
	}
	w.logger.Info("transcription engine ready",
		logging.String("binary", resolved),
		logging.String("model", w.opts.Model),
	)
	return nil
}

// Transcribe renders samples to WAV, runs the whisper tool with JSON output,
// and returns the validated segment sequence in tool order.
func (w *WhisperCLI) Transcribe(ctx context.Context, samples []float32) (subtitle.Transcript, error) {
	workRoot := w.opts.WorkDir
	if workRoot == "" {
		workRoot = os.TempDir()
	}
	workDir, err := os.MkdirTemp(workRoot, "transcribe-")
	if err != nil {
		return nil, fmt.Errorf("transcribe: create work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	wavPath := filepath.Join(workDir, "audio.wav")
	if err := os.WriteFile(wavPath, pcm.EncodeWAV(samples, pcm.SampleRate), 0o644); err != nil {
		return nil, fmt.Errorf("transcribe: write wav: %w", err)
	}

	args := w.buildArgs(wavPath, workDir)
	if err := w.run(ctx, w.opts.Binary, args...); err != nil {
		return nil, fmt.Errorf("whisper: %w", err)
	}

	jsonPath := filepath.Join(workDir, "audio.json")
	transcript, err := loadSegments(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}
	if err := validateSegments(transcript); err != nil {
		return nil, err
	}
	return transcript, nil
}

// buildArgs constructs the whisper CLI arguments: transcription task, silent
// verbosity, JSON output next to the input, optional fixed language.
func (w *WhisperCLI) buildArgs(wavPath, outputDir string) []string {
	args := []string{
		wavPath,
		"--model", w.opts.Model,
		"--task", "transcribe",
		"--output_format", "json",
		"--output_dir", outputDir,
		"--verbose", "False",
	}
	if lang := strings.TrimSpace(w.opts.Language); lang != "" {
		args = append(args, "--language", lang)
	}
	return args
}

func (w *WhisperCLI) run(ctx context.Context, name string, args ...string) error {
	if w.commandRunner != nil {
		return w.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// whisperPayload is the JSON structure emitted by the whisper CLI.
type whisperPayload struct {
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

func loadSegments(jsonPath string) (subtitle.Transcript, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read transcription output: %w", err)
	}
	var payload whisperPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse transcription json: %w", err)
	}
	transcript := make(subtitle.Transcript, 0, len(payload.Segments))
	for _, seg := range payload.Segments {
		transcript = append(transcript, subtitle.Segment{Start: seg.Start, End: seg.End, Text: seg.Text})
	}
	return transcript, nil
}
