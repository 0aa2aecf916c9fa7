// Package records splits text into keyed records, one per line.
package records

import (
	"fmt"
	"strings"
)

// Record is a single non-blank line of input. Two records with the same key describe the same
// entity, possibly with a different payload.
type Record struct {
	Key  string
	Line string
}

func (r Record) String() string { return r.Line }

// SameKey reports whether a and b have the same key.
func SameKey(a, b Record) bool { return a.Key == b.Key }

// Options control how keys are extracted.
type Options struct {
	// Separator between fields. If empty, fields are separated by white space.
	Separator string

	// KeyField is the 1-based field holding the key. If 0, the whole line is the key.
	KeyField int
}

type SyntaxError struct {
	Msg  string
	Line int
}

func (err *SyntaxError) Error() string {
	return fmt.Sprintf("%s [line %d]", err.Msg, err.Line)
}

// Parse returns the records of in. Blank lines and lines starting with '#' are skipped.
func Parse(in []byte, opts Options) ([]Record, error) {
	if opts.KeyField < 0 {
		return nil, fmt.Errorf("invalid key field %d", opts.KeyField)
	}

	var recs []Record
	lineno := 0
	for line := range strings.Lines(string(in)) {
		lineno++
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, err := extractKey(line, opts)
		if err != nil {
			return nil, &SyntaxError{Msg: err.Error(), Line: lineno}
		}
		recs = append(recs, Record{Key: key, Line: line})
	}
	return recs, nil
}

func extractKey(line string, opts Options) (string, error) {
	if opts.KeyField == 0 {
		return line, nil
	}

	var fields []string
	if opts.Separator == "" {
		fields = strings.Fields(line)
	} else {
		fields = strings.Split(line, opts.Separator)
	}
	if len(fields) < opts.KeyField {
		return "", fmt.Errorf("key field %d missing, line has %d fields", opts.KeyField, len(fields))
	}
	key := strings.TrimSpace(fields[opts.KeyField-1])
	if key == "" {
		return "", fmt.Errorf("key field %d is empty", opts.KeyField)
	}
	return key, nil
}
