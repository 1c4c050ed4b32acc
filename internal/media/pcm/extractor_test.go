package pcm

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
)

func s16leBytes(values ...int16) []byte {
	out := make([]byte, len(values)*2)
	for i, v := range values {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(v))
	}
	return out
}

func TestExtractDecodesSamples(t *testing.T) {
	extractor := NewExtractor("ffmpeg")
	var gotArgs []string
	extractor.WithCommandRunner(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		gotArgs = append([]string{name}, args...)
		return s16leBytes(0, 16384, -16384, 32767, -32768), nil
	})

	samples, err := extractor.Extract(context.Background(), "/videos/clip.mp4")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	want := []float32{0, 0.5, -0.5, 32767.0 / 32768.0, -1}
	if len(samples) != len(want) {
		t.Fatalf("sample count = %d, want %d", len(samples), len(want))
	}
	for i := range want {
		if math.Abs(float64(samples[i]-want[i])) > 1e-6 {
			t.Errorf("sample %d = %v, want %v", i, samples[i], want[i])
		}
	}

	joined := strings.Join(gotArgs, " ")
	for _, fragment := range []string{"-ac 1", "-ar 16000", "-f s16le", "-loglevel error", "-i /videos/clip.mp4"} {
		if !strings.Contains(joined, fragment) {
			t.Errorf("command %q missing %q", joined, fragment)
		}
	}
	if !strings.HasSuffix(joined, " -") {
		t.Errorf("command %q does not stream to stdout", joined)
	}
}

func TestExtractClassifiesDecodeFailure(t *testing.T) {
	extractor := NewExtractor("")
	extractor.WithCommandRunner(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return nil, fmt.Errorf("ffmpeg: exit status 1: moov atom not found")
	})

	_, err := extractor.Extract(context.Background(), "/videos/broken.mkv")
	if !errors.Is(err, ErrExtraction) {
		t.Fatalf("Extract() error = %v, want ErrExtraction", err)
	}
	if !strings.Contains(err.Error(), "moov atom not found") {
		t.Errorf("error %q does not carry ffmpeg diagnostics", err)
	}
	if !strings.Contains(err.Error(), "broken.mkv") {
		t.Errorf("error %q does not identify the input", err)
	}
}

func TestExtractRejectsOddByteStream(t *testing.T) {
	extractor := NewExtractor("ffmpeg")
	extractor.WithCommandRunner(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return []byte{0x00, 0x01, 0x02}, nil
	})

	if _, err := extractor.Extract(context.Background(), "clip.mp4"); !errors.Is(err, ErrExtraction) {
		t.Errorf("Extract() error = %v, want ErrExtraction for truncated stream", err)
	}
}

func TestDecodeS16LEEmpty(t *testing.T) {
	samples, err := DecodeS16LE(nil)
	if err != nil {
		t.Fatalf("DecodeS16LE(nil) error = %v", err)
	}
	if len(samples) != 0 {
		t.Errorf("DecodeS16LE(nil) = %d samples, want 0", len(samples))
	}
}

func TestEncodeWAVHeader(t *testing.T) {
	samples := []float32{0, 0.5, -0.5, 2, -2}
	data := EncodeWAV(samples, SampleRate)

	if len(data) != 44+len(samples)*2 {
		t.Fatalf("wav size = %d, want %d", len(data), 44+len(samples)*2)
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		t.Error("missing RIFF/WAVE markers")
	}
	if rate := binary.LittleEndian.Uint32(data[24:28]); rate != SampleRate {
		t.Errorf("sample rate = %d, want %d", rate, SampleRate)
	}
	if channels := binary.LittleEndian.Uint16(data[22:24]); channels != 1 {
		t.Errorf("channels = %d, want 1", channels)
	}
	if dataSize := binary.LittleEndian.Uint32(data[40:44]); int(dataSize) != len(samples)*2 {
		t.Errorf("data chunk size = %d, want %d", dataSize, len(samples)*2)
	}

	// Clamped samples at full scale.
	if v := int16(binary.LittleEndian.Uint16(data[44+6:])); v != 32767 {
		t.Errorf("clamped positive sample = %d, want 32767", v)
	}
	if v := int16(binary.LittleEndian.Uint16(data[44+8:])); v != -32767 {
		t.Errorf("clamped negative sample = %d, want -32767", v)
	}
}
