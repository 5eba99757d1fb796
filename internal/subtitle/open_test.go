package subtitle

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenSRTFile(t *testing.T) {
	content := `1
00:00:01,000 --> 00:00:04,000
Hello, world!

2
00:00:05,500 --> 00:00:08,200
This is a test.
With multiple lines.

3
00:00:10,000 --> 00:00:12,500
Final subtitle.
`
	tmpDir := t.TempDir()
	srtPath := filepath.Join(tmpDir, "test.srt")
	if err := os.WriteFile(srtPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	track, used, err := Open(srtPath, "auto")
	if err != nil {
		t.Fatalf("failed to open SRT file: %v", err)
	}
	if used != "utf-8" {
		t.Errorf("expected encoding utf-8, got %s", used)
	}

	if len(track.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(track.Records))
	}
	if track.Records[0].Start != mustClock(t, 0, 0, 1, 0) {
		t.Errorf("record 0: expected start 1s, got %s", track.Records[0].Start)
	}
	if len(track.Records[1].Lines) != 2 ||
		track.Records[1].Lines[1] != "With multiple lines." {
		t.Errorf("record 1: unexpected lines %q", track.Records[1].Lines)
	}
	if track.Records[2].ID != 3 {
		t.Errorf("record 2: expected id 3, got %d", track.Records[2].ID)
	}
}

func TestOpenStripsBOM(t *testing.T) {
	content := "\ufeff1\n00:00:01,000 --> 00:00:02,000\nBOM\n"
	path := filepath.Join(t.TempDir(), "bom.srt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	track, _, err := Open(path, "auto")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(track.Records) != 1 || track.Records[0].ID != 1 {
		t.Fatalf("BOM was not stripped before the first id: %+v", track)
	}
}

func TestOpenLegacyEncoding(t *testing.T) {
	// "Café" in windows-1252
	content := []byte("1\n00:00:01,000 --> 00:00:02,000\nCaf\xe9\n")
	path := filepath.Join(t.TempDir(), "latin.srt")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	track, used, err := Open(path, "windows-1252")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if used != "windows-1252" {
		t.Errorf("expected windows-1252, got %s", used)
	}
	if got := track.Records[0].Lines[0]; got != "Café" {
		t.Errorf("expected %q, got %q", "Café", got)
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, _, err := Open(filepath.Join(t.TempDir(), "missing.srt"), "auto")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestOpenUTF32File(t *testing.T) {
	text := "1\n00:00:01,000 --> 00:00:02,000\nWide\n"
	content := []byte{0xff, 0xfe, 0, 0}
	for _, r := range text {
		content = append(content, byte(r), 0, 0, 0)
	}
	path := filepath.Join(t.TempDir(), "wide.srt")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	track, used, err := Open(path, "auto")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if used != "utf-32le" {
		t.Errorf("expected utf-32le, got %s", used)
	}
	if len(track.Records) != 1 || track.Records[0].Lines[0] != "Wide" {
		t.Fatalf("unexpected track %+v", track)
	}
}
