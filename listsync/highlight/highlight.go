// Package highlight renders record lines as syntax highlighted HTML.
package highlight

import (
	"fmt"
	"html"
	"html/template"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"znkr.io/diff"
)

var style = map[chroma.TokenType]string{
	chroma.Keyword:           "hl-b",
	chroma.KeywordPseudo:     "",
	chroma.KeywordType:       "",
	chroma.NameClass:         "hl-b",
	chroma.NameEntity:        "hl-b",
	chroma.NameException:     "hl-b",
	chroma.NameNamespace:     "hl-b",
	chroma.NameTag:           "hl-b",
	chroma.NameBuiltin:       "hl-bl",
	chroma.NameAttribute:     "hl-bl",
	chroma.LiteralString:     "hl-i",
	chroma.LiteralNumber:     "hl-n",
	chroma.OperatorWord:      "hl-b",
	chroma.Comment:           "hl-ii",
	chroma.CommentPreproc:    "",
	chroma.GenericEmph:       "hl-i",
	chroma.GenericHeading:    "hl-b",
	chroma.GenericStrong:     "hl-b",
	chroma.GenericSubheading: "hl-b",
}

type Option func(*highlighter)

// Lang selects the lexer by language name, e.g. "go" or "csv".
func Lang(lang string) Option {
	return func(o *highlighter) {
		o.lexer = lexers.Get(lang)
	}
}

// LangFromFilename selects the lexer by file name.
func LangFromFilename(filename string) Option {
	return func(o *highlighter) {
		o.lexer = lexers.Match(filename)
	}
}

// Line highlights a single line. A trailing newline is dropped.
func Line(in string, opts ...Option) (template.HTML, error) {
	hl := fromOptions(opts)
	tokens, err := hl.tokens(in)
	if err != nil {
		return "", fmt.Errorf("highlighting line: %v", err)
	}
	return template.HTML(hl.highlight(tokens)), nil
}

// Update marks the words that changed between two versions of a line. Deleted words are wrapped
// in <del> in the previous version, inserted words in <ins> in the current one.
func Update(prev, cur string) (template.HTML, template.HTML) {
	del := marker{tag: "del"}
	ins := marker{tag: "ins"}
	for _, e := range diff.Edits(words(prev), words(cur), diff.Minimal()) {
		switch e.Op {
		case diff.Match:
			del.write(e.X, false)
			ins.write(e.Y, false)
		case diff.Delete:
			del.write(e.X, true)
		case diff.Insert:
			ins.write(e.Y, true)
		}
	}
	return template.HTML(del.String()), template.HTML(ins.String())
}

// words splits s into runs of letters and digits, every other rune is a word of its own.
func words(s string) []string {
	var ret []string
	start := -1
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
		} else {
			if start >= 0 {
				ret = append(ret, s[start:i])
				start = -1
			}
			ret = append(ret, s[i:i+size])
		}
		i += size
	}
	if start >= 0 {
		ret = append(ret, s[start:])
	}
	return ret
}

// marker writes escaped text and wraps consecutive marked words in a single tag.
type marker struct {
	sb   strings.Builder
	tag  string
	open bool
}

func (m *marker) write(s string, mark bool) {
	if mark != m.open {
		if mark {
			fmt.Fprintf(&m.sb, "<%s>", m.tag)
		} else {
			fmt.Fprintf(&m.sb, "</%s>", m.tag)
		}
		m.open = mark
	}
	m.sb.WriteString(html.EscapeString(s))
}

func (m *marker) String() string {
	if m.open {
		fmt.Fprintf(&m.sb, "</%s>", m.tag)
		m.open = false
	}
	return m.sb.String()
}

type highlighter struct {
	lexer chroma.Lexer
}

func fromOptions(opts []Option) *highlighter {
	hl := &highlighter{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(hl)
	}

	if hl.lexer == nil {
		hl.lexer = lexers.Fallback
	}
	hl.lexer = chroma.Coalesce(hl.lexer)
	return hl
}

func (hl *highlighter) highlight(line []chroma.Token) string {
	var sb strings.Builder
	for i, token := range line {
		value := token.Value
		if i == len(line)-1 {
			// Lexers may terminate their input with a newline.
			value = strings.TrimSuffix(value, "\n")
		}
		if value == "" {
			continue
		}
		class := class(token.Type)
		if class != "" {
			fmt.Fprintf(&sb, "<span class=\"%s\">", class)
		}
		sb.WriteString(html.EscapeString(value))
		if class != "" {
			sb.WriteString("</span>")
		}
	}
	return sb.String()
}

func (hl *highlighter) tokens(in string) ([]chroma.Token, error) {
	it, err := hl.lexer.Tokenise(nil, strings.TrimSuffix(in, "\n"))
	if err != nil {
		return nil, fmt.Errorf("creating iterator: %v", err)
	}
	return it.Tokens(), nil
}

func class(t chroma.TokenType) string {
	s, ok := style[t]
	if ok {
		return s
	}
	s, ok = style[t.SubCategory()]
	if ok {
		return s
	}
	s, ok = style[t.Category()]
	if ok {
		return s
	}
	return ""
}
