package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// plain integers, as the shifter has always printed them
type CompactWriter struct{}

// SubRip format with zero padded fields
type SRTWriter struct{}

func NewWriter(style Style) (Writer, error) {
	switch style {
	case StyleCompact:
		return &CompactWriter{}, nil
	case StyleSRT:
		return &SRTWriter{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedStyle, style)
	}
}

// writes the track with unpadded times
func (w *CompactWriter) Write(track *Track, out io.Writer) error {
	return writeBlocks(track, out, formatCompactTime)
}

// writes the track with canonical SubRip times
func (w *SRTWriter) Write(track *Track, out io.Writer) error {
	return writeBlocks(track, out, formatSRTTime)
}

func writeBlocks(track *Track, out io.Writer, format func(Clock) string) error {
	bw := bufio.NewWriter(out)
	for _, rec := range track.Records {
		for _, line := range BlockLines(rec, format) {
			bw.WriteString(line)
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

// BlockLines renders one record: id, range, text, then the empty separator.
func BlockLines(rec Record, format func(Clock) string) []string {
	lines := make([]string, 0, len(rec.Lines)+3)
	lines = append(lines, strconv.FormatUint(rec.ID, 10))
	lines = append(lines, format(rec.Start)+RangeSeparator+format(rec.End))
	lines = append(lines, rec.Lines...)
	return append(lines, "")
}

// WriteFile renders the track into path, creating parent directories.
func WriteFile(w Writer, track *Track, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := w.Write(track, f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return f.Close()
}

func formatCompactTime(c Clock) string {
	return fmt.Sprintf(
		"%d:%d:%d,%d",
		c.Hour(), c.Minute(), c.Second(), c.Millisecond(),
	)
}

func formatSRTTime(c Clock) string {
	return fmt.Sprintf(
		"%02d:%02d:%02d,%03d",
		c.Hour(), c.Minute(), c.Second(), c.Millisecond(),
	)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}
