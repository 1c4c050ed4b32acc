package subtitle

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dnzrx/video-sub-creator/internal/fileutil"
)

const vttHeader = "WEBVTT\n\n"

// SanitizeCueText prepares segment text for emission: surrounding whitespace
// is trimmed and any literal "-->" is rewritten to "->" so the text can never
// be mistaken for a cue timing line. The rewrite repeats until no arrow
// sequence remains, which makes the operation idempotent for inputs like
// "--->" where a single pass would leave a fresh "-->" behind.
func SanitizeCueText(text string) string {
	text = strings.TrimSpace(text)
	for strings.Contains(text, "-->") {
		text = strings.ReplaceAll(text, "-->", "->")
	}
	return text
}

// WriteVTT serializes the transcript as WebVTT: the WEBVTT header, a blank
// line, then one unnumbered cue block per segment.
func WriteVTT(w io.Writer, transcript Transcript) error {
	if err := transcript.Validate(); err != nil {
		return fmt.Errorf("write vtt: %w", err)
	}
	if _, err := io.WriteString(w, vttHeader); err != nil {
		return fmt.Errorf("write vtt: %w", err)
	}
	for i, seg := range transcript {
		start, err := FormatTimestamp(seg.Start, SeparatorVTT)
		if err != nil {
			return fmt.Errorf("write vtt: segment %d: %w", i, err)
		}
		end, err := FormatTimestamp(seg.End, SeparatorVTT)
		if err != nil {
			return fmt.Errorf("write vtt: segment %d: %w", i, err)
		}
		if _, err := fmt.Fprintf(w, "%s --> %s\n%s\n\n", start, end, SanitizeCueText(seg.Text)); err != nil {
			return fmt.Errorf("write vtt: %w", err)
		}
	}
	return nil
}

// WriteSRT serializes the transcript as SubRip: 1-indexed cue blocks with a
// comma millisecond separator.
func WriteSRT(w io.Writer, transcript Transcript) error {
	if err := transcript.Validate(); err != nil {
		return fmt.Errorf("write srt: %w", err)
	}
	for i, seg := range transcript {
		start, err := FormatTimestamp(seg.Start, SeparatorSRT)
		if err != nil {
			return fmt.Errorf("write srt: segment %d: %w", i, err)
		}
		end, err := FormatTimestamp(seg.End, SeparatorSRT)
		if err != nil {
			return fmt.Errorf("write srt: segment %d: %w", i, err)
		}
		if _, err := fmt.Fprintf(w, "%d\n%s --> %s\n%s\n\n", i+1, start, end, SanitizeCueText(seg.Text)); err != nil {
			return fmt.Errorf("write srt: %w", err)
		}
	}
	return nil
}

// SaveVTT writes the WebVTT rendering of the transcript to path, replacing
// any existing file. The content lands atomically so a crash mid-run cannot
// leave a truncated subtitle file behind.
func SaveVTT(path string, transcript Transcript) error {
	var buf bytes.Buffer
	if err := WriteVTT(&buf, transcript); err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("save vtt: %w", err)
	}
	return nil
}

// SaveSRT writes the SubRip rendering of the transcript to path, replacing
// any existing file.
func SaveSRT(path string, transcript Transcript) error {
	var buf bytes.Buffer
	if err := WriteSRT(&buf, transcript); err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("save srt: %w", err)
	}
	return nil
}
