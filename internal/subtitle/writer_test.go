package subtitle

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func render(t *testing.T, style Style, track *Track) string {
	t.Helper()
	w, err := NewWriter(style)
	if err != nil {
		t.Fatalf("NewWriter(%s): %v", style, err)
	}
	var buf bytes.Buffer
	if err := w.Write(track, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return buf.String()
}

func TestShiftAndRender(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		offset int64
		want   string
	}{
		{
			name:   "shift back one second",
			input:  "1\n00:00:01,000 --> 00:00:04,000\nHello world\n\n",
			offset: -1,
			want:   "1\n0:0:0,0 --> 0:0:3,0\nHello world\n\n",
		},
		{
			name:   "wrap past midnight without trailing blank",
			input:  "2\n23:59:59,000 --> 23:59:59,500\nLate cue\n",
			offset: 2,
			want:   "2\n0:0:1,0 --> 0:0:1,500\nLate cue\n\n",
		},
		{
			name:   "no blocks",
			input:  "just some text\n\n",
			offset: 10,
			want:   "",
		},
		{
			name:   "separator after every block",
			input:  "1\n00:00:01,000 --> 00:00:02,000\nA\nB\n\n2\n00:00:03,000 --> 00:00:04,000\nC\n",
			offset: 0,
			want:   "1\n0:0:1,0 --> 0:0:2,0\nA\nB\n\n2\n0:0:3,0 --> 0:0:4,0\nC\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			track, err := ParseReader(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ParseReader: %v", err)
			}
			got := render(t, StyleCompact, track.Shift(tt.offset))
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSRTWriterRoundTrip(t *testing.T) {
	input := "1\n00:00:01,000 --> 00:00:04,000\nHello, world!\n\n" +
		"2\n01:05:09,042 --> 01:05:10,900\n<i>This is a test.</i>\nWith multiple lines.\n\n"

	track, err := ParseReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseReader: %v", err)
	}
	if got := render(t, StyleSRT, track.Shift(0)); got != input {
		t.Errorf("round trip mismatch:\ngot  %q\nwant %q", got, input)
	}
}

func TestCompactOutputUnpadded(t *testing.T) {
	input := "9\n10:20:30,400 --> 10:20:31,005\nLine\n\n"
	track, err := ParseReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseReader: %v", err)
	}

	out := render(t, StyleCompact, track)
	if !strings.Contains(out, "10:20:30,400 --> 10:20:31,5\n") {
		t.Errorf("unexpected compact output %q", out)
	}

	// only the padded style reads back; "31,5" is not a three digit millisecond
	again, err := ParseReader(strings.NewReader(render(t, StyleSRT, track)))
	if err != nil {
		t.Fatalf("ParseReader: %v", err)
	}
	if again.Records[0].End != track.Records[0].End {
		t.Errorf("end = %s, want %s", again.Records[0].End, track.Records[0].End)
	}
}

func TestBlockLines(t *testing.T) {
	rec := Record{ID: 12, Start: 0, End: 1500}
	got := BlockLines(rec, formatSRTTime)
	want := []string{"12", "00:00:00,000 --> 00:00:01,500", ""}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("BlockLines = %q, want %q", got, want)
	}
}

func TestNewWriterUnsupportedStyle(t *testing.T) {
	if _, err := NewWriter(Style("vtt")); !errors.Is(err, ErrUnsupportedStyle) {
		t.Errorf("expected ErrUnsupportedStyle, got %v", err)
	}
	if _, err := ParseStyle("VTT"); !errors.Is(err, ErrUnsupportedStyle) {
		t.Errorf("expected ErrUnsupportedStyle, got %v", err)
	}
}

func TestWriteFileCreatesDirectories(t *testing.T) {
	track := &Track{Records: []Record{{ID: 1, Start: 1000, End: 2000, Lines: []string{"Hi"}}}}
	path := filepath.Join(t.TempDir(), "nested", "out.srt")

	if err := WriteFile(&SRTWriter{}, track, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	want := "1\n00:00:01,000 --> 00:00:02,000\nHi\n\n"
	if string(data) != want {
		t.Errorf("got %q, want %q", data, want)
	}
}
