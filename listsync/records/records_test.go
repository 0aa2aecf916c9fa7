package records

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		opts Options
		want []Record
	}{
		{
			name: "empty",
			in:   "",
			want: nil,
		},
		{
			name: "whole_line_keys",
			in:   "foo\nbar\n",
			want: []Record{
				{Key: "foo", Line: "foo"},
				{Key: "bar", Line: "bar"},
			},
		},
		{
			name: "skips_blank_and_comments",
			in:   "# header\n\nfoo\n   \nbar",
			want: []Record{
				{Key: "foo", Line: "foo"},
				{Key: "bar", Line: "bar"},
			},
		},
		{
			name: "crlf",
			in:   "foo\r\nbar\r\n",
			want: []Record{
				{Key: "foo", Line: "foo"},
				{Key: "bar", Line: "bar"},
			},
		},
		{
			name: "separator",
			in:   "1, alice\n2, bob\n",
			opts: Options{Separator: ",", KeyField: 1},
			want: []Record{
				{Key: "1", Line: "1, alice"},
				{Key: "2", Line: "2, bob"},
			},
		},
		{
			name: "white_space_fields",
			in:   "alice  1\nbob\t2\n",
			opts: Options{KeyField: 2},
			want: []Record{
				{Key: "1", Line: "alice  1"},
				{Key: "2", Line: "bob\t2"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.in), tt.opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse result is different (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		opts Options
		line int
	}{
		{
			name: "missing_field",
			in:   "1,alice\nbob\n",
			opts: Options{Separator: ",", KeyField: 2},
			line: 2,
		},
		{
			name: "empty_key",
			in:   "# comment\n ,alice\n",
			opts: Options{Separator: ",", KeyField: 1},
			line: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.in), tt.opts)
			var serr *SyntaxError
			if !errors.As(err, &serr) {
				t.Fatalf("Parse() error = %v, want *SyntaxError", err)
			}
			if serr.Line != tt.line {
				t.Errorf("error at line %d, want %d", serr.Line, tt.line)
			}
		})
	}

	if _, err := Parse([]byte("foo"), Options{KeyField: -1}); err == nil {
		t.Errorf("Parse() with negative key field succeeded")
	}
}

func TestSameKey(t *testing.T) {
	a := Record{Key: "1", Line: "1,alice"}
	b := Record{Key: "1", Line: "1,alicia"}
	c := Record{Key: "2", Line: "2,alice"}
	if !SameKey(a, b) {
		t.Errorf("SameKey(%v, %v) = false, want true", a, b)
	}
	if SameKey(a, c) {
		t.Errorf("SameKey(%v, %v) = true, want false", a, c)
	}
}

func TestParseMovedLine(t *testing.T) {
	opts := Options{Separator: ",", KeyField: 1}
	before, err := Parse([]byte("1,alice\n2,bob\n"), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after, err := Parse([]byte("# users\n0,zoe\n\n1,alice\n2,bob\n"), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(before, after[1:]); diff != "" {
		t.Errorf("moved records are different (-before, +after):\n%s", diff)
	}
}
