package subtitle

import (
	"errors"
	"math"
	"testing"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		sep     byte
		want    string
	}{
		{"zero", 0, SeparatorVTT, "00:00:00.000"},
		{"simple", 1.2, SeparatorVTT, "00:00:01.200"},
		{"srt separator", 1.2, SeparatorSRT, "00:00:01,200"},
		{"sub-millisecond rounds up", 0.9996, SeparatorVTT, "00:00:01.000"},
		{"carry into minutes", 59.9995, SeparatorVTT, "00:01:00.000"},
		{"carry into hours", 3599.9995, SeparatorVTT, "01:00:00.000"},
		{"mixed units", 3661.4995, SeparatorVTT, "01:01:01.500"},
		{"hours widen past two digits", 360000.5, SeparatorVTT, "100:00:00.500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatTimestamp(tt.seconds, tt.sep)
			if err != nil {
				t.Fatalf("FormatTimestamp(%v) error = %v", tt.seconds, err)
			}
			if got != tt.want {
				t.Errorf("FormatTimestamp(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestFormatTimestampNegative(t *testing.T) {
	if _, err := FormatTimestamp(-0.001, SeparatorVTT); !errors.Is(err, ErrNegativeTimestamp) {
		t.Errorf("FormatTimestamp(-0.001) error = %v, want ErrNegativeTimestamp", err)
	}
}

func TestFormatTimestampSeparatorOnlyDifference(t *testing.T) {
	values := []float64{0, 0.001, 1.5, 59.999, 61.25, 3599.5, 3661.4995, 86400}
	for _, seconds := range values {
		vtt, err := FormatTimestamp(seconds, SeparatorVTT)
		if err != nil {
			t.Fatalf("FormatTimestamp(%v, '.') error = %v", seconds, err)
		}
		srt, err := FormatTimestamp(seconds, SeparatorSRT)
		if err != nil {
			t.Fatalf("FormatTimestamp(%v, ',') error = %v", seconds, err)
		}
		if len(vtt) != len(srt) {
			t.Fatalf("length mismatch for %v: %q vs %q", seconds, vtt, srt)
		}
		diffs := 0
		for i := range vtt {
			if vtt[i] != srt[i] {
				diffs++
				if vtt[i] != '.' || srt[i] != ',' {
					t.Errorf("unexpected difference at %d for %v: %q vs %q", i, seconds, vtt, srt)
				}
			}
		}
		if diffs != 1 {
			t.Errorf("FormatTimestamp(%v) styles differ in %d positions, want 1", seconds, diffs)
		}
	}
}

func TestParseTimestampRoundTrip(t *testing.T) {
	// Values representable exactly at millisecond precision.
	for _, millis := range []int64{0, 1, 999, 1000, 59999, 60000, 3599999, 3600000, 3661500, 86399999} {
		seconds := float64(millis) / 1000
		for _, sep := range []byte{SeparatorVTT, SeparatorSRT} {
			formatted, err := FormatTimestamp(seconds, sep)
			if err != nil {
				t.Fatalf("FormatTimestamp(%v) error = %v", seconds, err)
			}
			parsed, err := ParseTimestamp(formatted)
			if err != nil {
				t.Fatalf("ParseTimestamp(%q) error = %v", formatted, err)
			}
			if got := int64(math.Round(parsed * 1000)); got != millis {
				t.Errorf("round trip %q = %d ms, want %d ms", formatted, got, millis)
			}
		}
	}
}

func TestParseTimestampInvalid(t *testing.T) {
	for _, value := range []string{"", "1:2", "aa:bb:cc,ddd", "00:00:01", "00:00:01.2.3", "-1:00:00,000"} {
		if _, err := ParseTimestamp(value); err == nil {
			t.Errorf("ParseTimestamp(%q) succeeded, want error", value)
		}
	}
}
