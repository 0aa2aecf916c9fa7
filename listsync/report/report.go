// Package report renders the changes of a list synchronization as a self-contained HTML page.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"znkr.io/listsync/eventlist"
	"znkr.io/listsync/listsync/highlight"
	"znkr.io/listsync/listsync/records"
)

// Stats summarizes a synchronization.
type Stats struct {
	Before, After              int
	Inserts, Deletes, Updates int
}

// Report describes a single synchronization of a record list.
type Report struct {
	Title   string
	Stats   Stats
	Changes []eventlist.Change[records.Record]
}

// New returns the report for ev, which changed a list of before records.
func New(title string, before int, ev eventlist.Event[records.Record]) *Report {
	ins, del, upd := ev.Counts()
	return &Report{
		Title: title,
		Stats: Stats{
			Before:  before,
			After:   before + ins - del,
			Inserts: ins,
			Deletes: del,
			Updates: upd,
		},
		Changes: ev.Changes,
	}
}

// Summary returns the summary of the report as markdown.
func (r *Report) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", r.Title)
	if len(r.Changes) == 0 {
		fmt.Fprintf(&sb, "No changes, %d records.\n", r.Stats.Before)
		return sb.String()
	}
	sb.WriteString("| | records |\n|---|---|\n")
	fmt.Fprintf(&sb, "| before | %d |\n", r.Stats.Before)
	fmt.Fprintf(&sb, "| after | %d |\n", r.Stats.After)
	fmt.Fprintf(&sb, "| inserted | %d |\n", r.Stats.Inserts)
	fmt.Fprintf(&sb, "| deleted | %d |\n", r.Stats.Deletes)
	fmt.Fprintf(&sb, "| updated | %d |\n", r.Stats.Updates)
	return sb.String()
}

type row struct {
	Class   string
	Op      string
	Index   int
	Content template.HTML
	Prev    template.HTML
}

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: sans-serif; margin: 2em auto; max-width: 60em; }
  table.changes { border-collapse: collapse; font-family: monospace; width: 100%; }
  table.changes td { padding: 0 0.5em; white-space: pre; }
  tr.ins { background: #e6ffec; }
  tr.del { background: #ffebe9; }
  tr.upd { background: #fff8c5; }
  .prev { color: #888; }
  del { background: #ffcecb; }
  ins { background: #aceebb; text-decoration: none; }
  .hl-b { font-weight: bold; }
  .hl-bl { color: #0550ae; }
  .hl-i { font-style: italic; }
  .hl-ii { font-style: italic; color: #6e7781; }
  .hl-n { color: #953800; }
</style>
</head>
<body>
{{.Summary}}
{{if .Rows}}
<table class="changes">
{{range .Rows}}<tr class="{{.Class}}"><td>{{.Op}}</td><td>{{.Index}}</td><td>{{if .Prev}}<span class="prev">{{.Prev}}</span> {{end}}{{.Content}}</td></tr>
{{end}}</table>
{{end}}
</body>
</html>
`))

// Render renders r as a minified HTML page. The options select the highlighting of record lines.
func Render(r *Report, opts ...highlight.Option) ([]byte, error) {
	summary, err := renderMarkdown(r.Summary())
	if err != nil {
		return nil, err
	}

	rows := make([]row, 0, len(r.Changes))
	for _, c := range r.Changes {
		var rw row
		var line string
		switch c.Type {
		case eventlist.Insert:
			rw.Class, rw.Op, line = "ins", "+", c.Value.Line
		case eventlist.Delete:
			rw.Class, rw.Op, line = "del", "-", c.Prev.Line
		case eventlist.Update:
			// Updated lines show the changed words instead of syntax highlighting.
			rw.Class, rw.Op, rw.Index = "upd", "~", c.Index
			rw.Prev, rw.Content = highlight.Update(c.Prev.Line, c.Value.Line)
			rows = append(rows, rw)
			continue
		default:
			return nil, fmt.Errorf("unknown change type %v", c.Type)
		}
		rw.Index = c.Index
		rw.Content, err = highlight.Line(line, opts...)
		if err != nil {
			return nil, err
		}
		rows = append(rows, rw)
	}

	var buf bytes.Buffer
	err = page.Execute(&buf, struct {
		Title   string
		Summary template.HTML
		Rows    []row
	}{
		Title:   r.Title,
		Summary: template.HTML(summary),
		Rows:    rows,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering template: %v", err)
	}

	b, err := minifier.Bytes("text/html", buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("minifying report: %v", err)
	}
	return b, nil
}

func renderMarkdown(in string) ([]byte, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.Table),
		goldmark.WithRendererOptions(goldmarkhtml.WithXHTML()),
	)

	var buf bytes.Buffer
	if err := md.Convert([]byte(in), &buf); err != nil {
		return nil, fmt.Errorf("rendering markdown: %v", err)
	}
	return buf.Bytes(), nil
}

var minifier = func() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	return m
}()
