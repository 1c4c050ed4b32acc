package pcm

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// SampleRate is the fixed rate requested from ffmpeg and fed to transcription.
const SampleRate = 16000

// FFmpegCommand is the default decode binary resolved from PATH.
const FFmpegCommand = "ffmpeg"

// ErrExtraction marks a decode failure for an unreadable or corrupt input.
// It is an expected per-file failure mode, not a fault in the run itself.
var ErrExtraction = errors.New("audio extraction failed")

// CommandRunner executes a decode command and returns its stdout. Implemented
// by the real subprocess runner and by test fakes.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Extractor produces audio sample buffers from video files via ffmpeg.
type Extractor struct {
	binary string
	runner CommandRunner
}

// NewExtractor creates an extractor that invokes the given ffmpeg binary.
func NewExtractor(binary string) *Extractor {
	if strings.TrimSpace(binary) == "" {
		binary = FFmpegCommand
	}
	return &Extractor{binary: binary}
}

// WithCommandRunner sets a custom command runner (for testing).
func (e *Extractor) WithCommandRunner(runner CommandRunner) {
	e.runner = runner
}

// Extract decodes the first audio stream of videoPath to normalized mono
// samples. ffmpeg is asked for signed 16-bit little-endian PCM at 16kHz on
// stdout with errors-only logging; a non-zero exit becomes an ErrExtraction
// carrying ffmpeg's diagnostics.
func (e *Extractor) Extract(ctx context.Context, videoPath string) ([]float32, error) {
	args := []string{
		"-nostdin",
		"-hide_banner",
		"-loglevel", "error",
		"-i", videoPath,
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", fmt.Sprintf("%d", SampleRate),
		"-f", "s16le",
		"-",
	}
	raw, err := e.run(ctx, e.binary, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrExtraction, videoPath, err)
	}
	samples, err := DecodeS16LE(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrExtraction, videoPath, err)
	}
	return samples, nil
}

func (e *Extractor) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if e.runner != nil {
		return e.runner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return nil, fmt.Errorf("%s: %w: %s", name, err, detail)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return stdout.Bytes(), nil
}

// DecodeS16LE interprets raw bytes as signed 16-bit little-endian samples and
// normalizes them to [-1.0, 1.0] by dividing by 32768.
func DecodeS16LE(raw []byte) ([]float32, error) {
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("decode pcm: truncated sample stream (%d bytes)", len(raw))
	}
	samples := make([]float32, len(raw)/2)
	for i := range samples {
		samples[i] = float32(int16(binary.LittleEndian.Uint16(raw[2*i:]))) / 32768.0
	}
	return samples, nil
}
