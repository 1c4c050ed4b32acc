// Package deps reports availability of the external tools the pipeline
// shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/dnzrx/video-sub-creator/internal/config"
)

// Status describes one external tool dependency.
type Status struct {
	Name        string
	Description string
	Command     string
	Available   bool
	Detail      string
}

// Check resolves a binary from PATH and reports the outcome.
func Check(name, description, binary string) Status {
	result := Status{
		Name:        name,
		Description: description,
		Command:     strings.TrimSpace(binary),
	}
	if result.Command == "" {
		result.Detail = "no binary configured"
		return result
	}
	resolved, err := exec.LookPath(result.Command)
	if err != nil {
		result.Detail = fmt.Sprintf("binary %q not found", result.Command)
		return result
	}
	result.Command = resolved
	result.Available = true
	return result
}

// CheckAll reports every external tool the configured pipeline needs.
func CheckAll(cfg *config.Config) []Status {
	return []Status{
		Check("FFmpeg", "Decodes video audio streams to PCM", cfg.FFmpeg.Binary),
		Check("Whisper", "Speech-to-text transcription", cfg.Whisper.Binary),
	}
}
