package psplib

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/psptools/psplib/pkg/errors"
)

// A field converts one captured group into a typed value. Fields keep the
// record parser generic: every PSPLIB record shape (key:value lines,
// variable-length integer lists, optional trailing tokens) is expressed as
// a pattern plus an ordered list of fields, rather than a bespoke parser
// per record type.
type field func(string) (any, error)

// intField converts a captured group to an int.
func intField(s string) (any, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	return v, nil
}

// intListField converts an optional whitespace-separated integer list.
// An empty capture yields an empty list.
func intListField(s string) (any, error) {
	fields := strings.Fields(s)
	list := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, nil
}

var resourceKeyRE = regexp.MustCompile(`[RND]\s\d+`)

// keyListField extracts resource-key tokens of the shape "<R|N|D> <number>"
// from an optional capture. An empty capture yields an empty list.
func keyListField(s string) (any, error) {
	return resourceKeyRE.FindAllString(s, -1), nil
}

// parseLine reads one line and matches it against pattern. The match must
// begin at the start of the line regardless of how the pattern is anchored;
// with fullmatch it must also consume the line entirely. The number of
// fields must equal the number of capture groups; each field is applied to
// its captured group in order and the converted values are returned.
//
// A failed match or an arity mismatch yields a PARSE_ERROR carrying the
// source name and line number. A failed conversion yields a
// CONVERSION_ERROR with the same location context attached.
func (s *scanner) parseLine(pattern *regexp.Regexp, fullmatch bool, fields ...field) ([]any, error) {
	line, err := s.readLine()
	if err != nil {
		return nil, err
	}

	idx := pattern.FindStringSubmatchIndex(line)
	if idx == nil || idx[0] != 0 || (fullmatch && idx[1] != len(line)) {
		return nil, s.parseErrorf("pattern did not match the current line")
	}

	// Unmatched optional groups capture as the empty string.
	groups := make([]string, 0, len(idx)/2-1)
	for i := 2; i < len(idx); i += 2 {
		if idx[i] < 0 {
			groups = append(groups, "")
		} else {
			groups = append(groups, line[idx[i]:idx[i+1]])
		}
	}
	if len(fields) != len(groups) {
		return nil, s.parseErrorf("number of matched values does not correspond to number of expected values")
	}

	values := make([]any, len(groups))
	for i, g := range groups {
		v, err := fields[i](g)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeConversion, err, "[%s:%d]: cannot convert %q", s.name, s.line, g)
		}
		values[i] = v
	}
	return values, nil
}

// parseOne is the single-capture form of parseLine with full type safety.
func parseOne[T any](s *scanner, pattern *regexp.Regexp, conv func(string) (T, error)) (T, error) {
	var zero T
	values, err := s.parseLine(pattern, true, func(g string) (any, error) { return conv(g) })
	if err != nil {
		return zero, err
	}
	return values[0].(T), nil
}

// parseInt reads a line expected to carry a single integer capture.
func parseInt(s *scanner, pattern *regexp.Regexp) (int, error) {
	return parseOne(s, pattern, func(g string) (int, error) {
		return strconv.Atoi(strings.TrimSpace(g))
	})
}
