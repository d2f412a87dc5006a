// Package charstream wraps a rune source with one-rune pushback and
// line/column tracking, the source both the tokenizer and the BigDec
// stream parser read from.
package charstream

import (
	"bufio"
	"io"
)

// Stream is an io.RuneScanner with line/column bookkeeping for
// diagnostics.
type Stream struct {
	r          *bufio.Reader
	line, col  int
	lastWidth  int
	lastRune   rune
	hasPending bool
}

// New wraps r as a Stream, starting at line 1, column 0.
func New(r io.Reader) *Stream {
	return &Stream{r: bufio.NewReader(r), line: 1, col: 0}
}

// ReadRune satisfies io.RuneReader, tracking line/column as it goes.
func (s *Stream) ReadRune() (rune, int, error) {
	if s.hasPending {
		s.hasPending = false
		s.advancePosition(s.lastRune)
		return s.lastRune, s.lastWidth, nil
	}
	r, size, err := s.r.ReadRune()
	if err != nil {
		return r, size, err
	}
	s.lastRune, s.lastWidth = r, size
	s.advancePosition(r)
	return r, size, nil
}

func (s *Stream) advancePosition(r rune) {
	if r == '\n' {
		s.line++
		s.col = 0
		return
	}
	s.col++
}

// UnreadRune satisfies io.RuneScanner: it puts back exactly the last rune
// read, without touching the underlying reader, so ReadRune can reread
// it. Only a single level of pushback is supported, matching the
// tokenizer's and BigDec parser's needs.
func (s *Stream) UnreadRune() error {
	if s.lastRune == '\n' {
		s.line--
	} else {
		s.col--
	}
	s.hasPending = true
	return nil
}

// Peek returns the next rune without consuming it.
func (s *Stream) Peek() (rune, bool) {
	r, _, err := s.ReadRune()
	if err != nil {
		return 0, false
	}
	_ = s.UnreadRune()
	return r, true
}

// Position returns the current (line, column) for error reporting.
func (s *Stream) Position() (int, int) {
	return s.line, s.col
}
