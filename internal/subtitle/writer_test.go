package subtitle

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

var helloWorld = Transcript{
	{Start: 0.0, End: 1.2, Text: "Hello"},
	{Start: 1.2, End: 2.5, Text: "World"},
}

func TestWriteVTTContent(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteVTT(&buf, helloWorld); err != nil {
		t.Fatalf("WriteVTT() error = %v", err)
	}
	want := "WEBVTT\n\n00:00:00.000 --> 00:00:01.200\nHello\n\n00:00:01.200 --> 00:00:02.500\nWorld\n\n"
	if buf.String() != want {
		t.Errorf("WriteVTT() = %q, want %q", buf.String(), want)
	}
}

func TestWriteSRTContent(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSRT(&buf, helloWorld); err != nil {
		t.Fatalf("WriteSRT() error = %v", err)
	}
	want := "1\n00:00:00,000 --> 00:00:01,200\nHello\n\n2\n00:00:01,200 --> 00:00:02,500\nWorld\n\n"
	if buf.String() != want {
		t.Errorf("WriteSRT() = %q, want %q", buf.String(), want)
	}
}

func TestWriteVTTEmptyTranscript(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteVTT(&buf, nil); err != nil {
		t.Fatalf("WriteVTT(nil) error = %v", err)
	}
	if buf.String() != "WEBVTT\n\n" {
		t.Errorf("WriteVTT(nil) = %q, want header only", buf.String())
	}
}

func TestWriteSRTEmptyTranscript(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSRT(&buf, nil); err != nil {
		t.Fatalf("WriteSRT(nil) error = %v", err)
	}
	if buf.String() != "" {
		t.Errorf("WriteSRT(nil) = %q, want empty", buf.String())
	}
}

func TestWriterRejectsInvalidSegments(t *testing.T) {
	bad := []Transcript{
		{{Start: -1, End: 1, Text: "negative start"}},
		{{Start: 2, End: 1, Text: "end before start"}},
	}
	for _, transcript := range bad {
		if err := WriteVTT(&bytes.Buffer{}, transcript); err == nil {
			t.Errorf("WriteVTT(%+v) succeeded, want error", transcript)
		}
		if err := WriteSRT(&bytes.Buffer{}, transcript); err == nil {
			t.Errorf("WriteSRT(%+v) succeeded, want error", transcript)
		}
	}
}

func TestSanitizeCueText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Hello  ", "Hello"},
		{"a --> b", "a -> b"},
		{"no arrows", "no arrows"},
		{"--->", "->"},
		{"-->-->", "->->"},
	}
	for _, tt := range tests {
		if got := SanitizeCueText(tt.in); got != tt.want {
			t.Errorf("SanitizeCueText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeCueTextIdempotent(t *testing.T) {
	inputs := []string{"a --> b", "--->", "---->", "-- > -->", "plain"}
	for _, in := range inputs {
		once := SanitizeCueText(in)
		twice := SanitizeCueText(once)
		if once != twice {
			t.Errorf("SanitizeCueText not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestSRTIndexContract(t *testing.T) {
	transcript := make(Transcript, 7)
	for i := range transcript {
		transcript[i] = Segment{Start: float64(i), End: float64(i) + 0.5, Text: "line"}
	}

	var buf bytes.Buffer
	if err := WriteSRT(&buf, transcript); err != nil {
		t.Fatalf("WriteSRT() error = %v", err)
	}

	blocks := strings.Split(strings.TrimSuffix(buf.String(), "\n\n"), "\n\n")
	if len(blocks) != len(transcript) {
		t.Fatalf("block count = %d, want %d", len(blocks), len(transcript))
	}
	for i, block := range blocks {
		lines := strings.Split(block, "\n")
		if len(lines) < 3 {
			t.Fatalf("block %d has %d lines, want at least 3", i, len(lines))
		}
		wantIndex := strconv.Itoa(i + 1)
		if lines[0] != wantIndex {
			t.Errorf("block %d index line = %q, want %q", i, lines[0], wantIndex)
		}
		if !strings.Contains(lines[1], " --> ") {
			t.Errorf("block %d line after index = %q, want timing line", i, lines[1])
		}
	}
}

func TestSaveOverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	vttPath := filepath.Join(dir, "clip.vtt")
	srtPath := filepath.Join(dir, "clip.srt")
	for _, path := range []string{vttPath, srtPath} {
		if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if err := SaveVTT(vttPath, helloWorld); err != nil {
		t.Fatalf("SaveVTT() error = %v", err)
	}
	if err := SaveSRT(srtPath, helloWorld); err != nil {
		t.Fatalf("SaveSRT() error = %v", err)
	}

	vtt, err := os.ReadFile(vttPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(vtt), "WEBVTT\n\n") {
		t.Errorf("saved vtt starts with %q", string(vtt)[:min(len(vtt), 10)])
	}
	srt, err := os.ReadFile(srtPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(srt), "1\n") {
		t.Errorf("saved srt starts with %q", string(srt)[:min(len(srt), 10)])
	}
}

func TestSaveMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "clip.vtt")
	if err := SaveVTT(path, helloWorld); err == nil {
		t.Error("SaveVTT() into missing directory succeeded, want error")
	}
}
