package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
)

// State is the parser mode.
type State int

const (
	ExpectID State = iota
	ExpectRange
	ExpectText
)

func (s State) String() string {
	switch s {
	case ExpectID:
		return "expect-id"
	case ExpectRange:
		return "expect-range"
	case ExpectText:
		return "expect-text"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Transition describes what a single Feed did with its line.
type Transition int

const (
	// line discarded, state unchanged
	Skipped Transition = iota
	// id or range captured, moved to the next state
	Advanced
	// text line added to the pending record
	Appended
	// blank line closed the pending record
	Emitted
)

func (t Transition) String() string {
	switch t {
	case Skipped:
		return "skipped"
	case Advanced:
		return "advanced"
	case Appended:
		return "appended"
	case Emitted:
		return "emitted"
	default:
		return fmt.Sprintf("transition(%d)", int(t))
	}
}

// maxLineSize bounds a single input line.
const maxLineSize = 1 << 20

// Parser builds records from lines one at a time without lookahead.
// The zero value is ready to use.
type Parser struct {
	state   State
	pending Record
	track   Track
}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) State() State {
	return p.state
}

// Feed consumes one line, which must not carry its terminator.
func (p *Parser) Feed(line string) Transition {
	switch p.state {
	case ExpectID:
		// a single leading '+' is accepted, any '-' is not
		id, err := strconv.ParseUint(strings.TrimPrefix(line, "+"), 10, 64)
		if err != nil {
			p.track.Skipped++
			return Skipped
		}
		p.pending.ID = id
		p.state = ExpectRange
		return Advanced

	case ExpectRange:
		start, end, err := ParseRange(line)
		if err != nil {
			p.track.Skipped++
			return Skipped
		}
		p.pending.Start = start
		p.pending.End = end
		p.state = ExpectText
		return Advanced

	default:
		if line != "" {
			p.pending.Lines = append(p.pending.Lines, line)
			return Appended
		}
		p.emit()
		return Emitted
	}
}

func (p *Parser) emit() {
	p.track.Records = append(p.track.Records, p.pending)
	p.pending = Record{}
	p.state = ExpectID
}

// Finish closes the input. A record still collecting text is emitted; one
// still waiting for its time range is dropped and reported as Truncated.
// The parser is reset afterwards.
func (p *Parser) Finish() *Track {
	switch p.state {
	case ExpectText:
		p.emit()
	case ExpectRange:
		p.track.Truncated = true
	}

	track := p.track
	*p = Parser{}
	return &track
}

// Parse runs a fresh parser over lines.
func Parse(lines iter.Seq[string]) *Track {
	p := NewParser()
	for line := range lines {
		p.Feed(line)
	}
	return p.Finish()
}

// ParseReader splits r into lines, accepting LF and CRLF terminators.
func ParseReader(r io.Reader) (*Track, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	p := NewParser()
	for scanner.Scan() {
		p.Feed(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading subtitle lines: %w", err)
	}

	return p.Finish(), nil
}
