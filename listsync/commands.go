package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"znkr.io/listsync/eventlist"
	"znkr.io/listsync/listsync/records"
	"znkr.io/listsync/listsync/report"
	"znkr.io/listsync/listsync/server"
)

func init() {
	watchCmd.Flags().StringVar(&flags.addr, "addr", "", "serve the latest report on this address")
}

var diffCmd = &cobra.Command{
	Use:   "diff OLD NEW",
	Short: "Prints the minimal changes turning the records in OLD into the records in NEW",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s := newSyncer(cfg)
		if _, err := s.sync(args[0]); err != nil {
			return err
		}
		r, err := s.sync(args[1])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, c := range r.Changes {
			fmt.Fprintln(out, formatChange(c))
		}
		fmt.Fprintln(out, formatStats(r.Stats))
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report OLD NEW OUT",
	Short: "Writes an HTML report of the changes between OLD and NEW to OUT",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s := newSyncer(cfg)
		if _, err := s.sync(args[0]); err != nil {
			return err
		}
		r, err := s.sync(args[1])
		if err != nil {
			return err
		}
		b, err := report.Render(r, s.highlightOption(args[1]))
		if err != nil {
			return err
		}
		if err := os.WriteFile(args[2], b, 0644); err != nil {
			return fmt.Errorf("writing report: %v", err)
		}
		glog.Infof("Wrote %s: %s", args[2], formatStats(r.Stats))
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Keeps a list of records in sync with FILE and logs every change",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		path, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolving %s: %v", args[0], err)
		}

		s := newSyncer(cfg)
		cancel := s.list.Listen(func(ev eventlist.Event[records.Record]) {
			for _, c := range ev.Changes {
				glog.V(1).Info(formatChange(c))
			}
		})
		defer cancel()

		r, err := s.sync(path)
		if err != nil {
			return err
		}
		glog.Infof("Loaded %d records from %s", r.Stats.After, args[0])

		var srv *server.Server
		var srvErr <-chan error
		if cfg.Addr != "" {
			page, err := s.page(r, path)
			if err != nil {
				return err
			}
			srv, err = server.Run(cfg.Addr, page)
			if err != nil {
				return err
			}
			defer srv.Shutdown(context.Background())
			srvErr = srv.Error()
			glog.Infof("Now serving at http://%s, press Ctrl-C to shut down", srv.Addr())
		}

		// Watch the directory, editors tend to replace files instead of writing to them.
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("starting watcher: %v", err)
		}
		defer watcher.Close()
		if err := watcher.Add(filepath.Dir(path)); err != nil {
			return fmt.Errorf("starting watch: %v", err)
		}

		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)

		for {
			select {
			case event := <-watcher.Events:
				if filepath.Clean(event.Name) != path || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				start := time.Now()
				r, err := s.sync(path)
				if err != nil {
					glog.Warningf("Failed to sync %s: %v", args[0], err)
					continue
				}
				if len(r.Changes) == 0 {
					continue
				}
				glog.Infof("Synced %s (%v): %s", args[0], time.Since(start), formatStats(r.Stats))
				if srv != nil {
					page, err := s.page(r, path)
					if err != nil {
						glog.Warningf("Failed to render report: %v", err)
						continue
					}
					srv.Replace(page)
				}
			case err := <-watcher.Errors:
				return fmt.Errorf("watching: %v", err)
			case err := <-srvErr:
				return fmt.Errorf("serving: %v", err)
			case <-sigint:
				fmt.Print("\r") // remove Ctrl-C output characters
				glog.Infof("Received Ctrl-C, shutting down")
				return nil
			}
		}
	},
}
