package main

import (
	"flag"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
)

func main() {
	// Log to stderr unless told otherwise via --log_dir or --logtostderr=false.
	flag.Set("logtostderr", "true")

	rootCmd := &cobra.Command{
		Use:          "listsync [command]",
		Short:        "Keeps a list of records in sync with a file using minimal edits",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// glog expects the standard flag set to be parsed, pflag already did the work.
			return flag.CommandLine.Parse(nil)
		},
	}
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	registerFlags(rootCmd)

	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(watchCmd)

	err := rootCmd.Execute()
	glog.Flush()
	if err != nil {
		os.Exit(1)
	}
}
