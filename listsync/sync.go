package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"znkr.io/listsync/eventlist"
	"znkr.io/listsync/listsync/config"
	"znkr.io/listsync/listsync/highlight"
	"znkr.io/listsync/listsync/records"
	"znkr.io/listsync/listsync/report"
	"znkr.io/listsync/listsync/server"
)

// flags holds the values of the command line flags shared by all commands.
var flags struct {
	config  string
	sep     string
	key     int
	updates bool
	lang    string
	title   string
	addr    string
}

func registerFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.config, "config", "", "path to a TOML config file")
	pf.StringVar(&flags.sep, "sep", ",", "field separator, white space if empty")
	pf.IntVar(&flags.key, "key", 0, "1-based key field, 0 uses the whole line as key")
	pf.BoolVar(&flags.updates, "updates", true, "report changed records with the same key as updates")
	pf.StringVar(&flags.lang, "lang", "", "language for syntax highlighting, guessed from the file name if empty")
	pf.StringVar(&flags.title, "title", "listsync", "report title")
}

// loadConfig returns the config file settings overridden by the flags that were set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if flags.config != "" {
		var err error
		cfg, err = config.Load(flags.config)
		if err != nil {
			return nil, err
		}
	}

	fs := cmd.Flags()
	if fs.Changed("sep") {
		cfg.Separator = flags.sep
	}
	if fs.Changed("key") {
		cfg.KeyField = flags.key
	}
	if fs.Changed("updates") {
		cfg.Updates = flags.updates
	}
	if fs.Changed("lang") {
		cfg.Lang = flags.lang
	}
	if fs.Changed("title") {
		cfg.Title = flags.title
	}
	if fs.Lookup("addr") != nil && fs.Changed("addr") {
		cfg.Addr = flags.addr
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

// syncer keeps an event list of records in sync with the contents of files.
type syncer struct {
	cfg  *config.Config
	list *eventlist.List[records.Record]
}

func newSyncer(cfg *config.Config) *syncer {
	return &syncer{
		cfg:  cfg,
		list: eventlist.New[records.Record](),
	}
}

// sync replaces the list with the records in path and returns a report of the changes.
func (s *syncer) sync(path string) (*report.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %v", path, err)
	}
	recs, err := records.Parse(data, s.cfg.RecordOptions())
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	before := s.list.Len()
	ev, err := s.list.ReplaceAll(recs, records.SameKey, s.cfg.Updates)
	if err != nil {
		return nil, fmt.Errorf("syncing %s: %v", path, err)
	}
	return report.New(s.cfg.Title, before, ev), nil
}

// highlightOption selects the highlighting for records read from path.
func (s *syncer) highlightOption(path string) highlight.Option {
	if s.cfg.Lang != "" {
		return highlight.Lang(s.cfg.Lang)
	}
	return highlight.LangFromFilename(path)
}

// page renders r as the page served by the watch command.
func (s *syncer) page(r *report.Report, path string) (*server.Page, error) {
	b, err := report.Render(r, s.highlightOption(path))
	if err != nil {
		return nil, err
	}
	return &server.Page{MimeType: "text/html;charset=utf-8", Body: b}, nil
}

func formatChange(c eventlist.Change[records.Record]) string {
	switch c.Type {
	case eventlist.Insert:
		return fmt.Sprintf("+ %d %s", c.Index, c.Value.Line)
	case eventlist.Delete:
		return fmt.Sprintf("- %d %s", c.Index, c.Prev.Line)
	case eventlist.Update:
		return fmt.Sprintf("~ %d %s (was %s)", c.Index, c.Value.Line, c.Prev.Line)
	default:
		return fmt.Sprintf("? %d", c.Index)
	}
}

func formatStats(st report.Stats) string {
	return fmt.Sprintf("%d inserted, %d deleted, %d updated (%d -> %d records)",
		st.Inserts, st.Deletes, st.Updates, st.Before, st.After)
}
