package subtitle

import (
	"errors"
	"io"
)

var (
	ErrNoSeparator      = errors.New("time range separator not found")
	ErrInvalidClock     = errors.New("invalid clock time")
	ErrUnsupportedStyle = errors.New("unsupported output style")
)

// RangeSeparator splits the start and end times of a cue.
const RangeSeparator = " --> "

// Record is a single cue block. Lines keeps the text exactly as read.
type Record struct {
	ID    uint64
	Start Clock
	End   Clock
	Lines []string
}

// Track is the ordered result of parsing one input.
type Track struct {
	Records []Record

	// lines discarded while waiting for an id or a time range
	Skipped int

	// input ended after an id line but before a complete block
	Truncated bool
}

// Style selects how times are rendered.
type Style string

const (
	// plain integers: 0:0:3,0
	StyleCompact Style = "compact"
	// zero padded SubRip: 00:00:03,000
	StyleSRT Style = "srt"
)

// ParseStyle validates a style name.
func ParseStyle(name string) (Style, error) {
	switch Style(name) {
	case StyleCompact, StyleSRT:
		return Style(name), nil
	default:
		return "", ErrUnsupportedStyle
	}
}

// interface for writing tracks to a stream
type Writer interface {
	Write(track *Track, w io.Writer) error
}
