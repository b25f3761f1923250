package psplib

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/psptools/psplib/pkg/errors"
)

// scanner is a checked, line-oriented reader over a text source. It tracks
// the source name and a 1-based line counter so every failure can point at
// the offending line. A scanner owns its position state exclusively and
// must not be shared across goroutines.
type scanner struct {
	name string
	r    *bufio.Reader
	line int
}

func newScanner(name string, r io.Reader) *scanner {
	return &scanner{name: name, r: bufio.NewReader(r)}
}

// readLine returns the next line with the trailing terminator and trailing
// whitespace stripped, advancing the line counter. At end of stream it
// returns an empty string and no error; callers detect exhaustion through
// pattern-match failure, not here.
func (s *scanner) readLine() (string, error) {
	s.line++
	line, err := s.r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "[%s:%d]: read", s.name, s.line)
	}
	return strings.TrimRight(line, " \t\r\n"), nil
}

// skipLines reads and discards exactly n lines.
func (s *scanner) skipLines(n int) error {
	if n < 0 {
		return s.unsupportedf("number of lines to skip cannot be negative")
	}
	for i := 0; i < n; i++ {
		if _, err := s.readLine(); err != nil {
			return err
		}
	}
	return nil
}

// parseErrorf builds a PARSE_ERROR at the current position.
func (s *scanner) parseErrorf(format string, args ...any) error {
	return errors.New(errors.ErrCodeParse, "[%s:%d]: %s", s.name, s.line, fmt.Sprintf(format, args...))
}

// unsupportedf builds an UNSUPPORTED_OPERATION error at the current position.
func (s *scanner) unsupportedf(format string, args ...any) error {
	return errors.New(errors.ErrCodeUnsupported, "[%s:%d]: %s", s.name, s.line, fmt.Sprintf(format, args...))
}
