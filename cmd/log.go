package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"katalog/internal/tracking"
)

var flagLimit int

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent visitor-log events",
	Args:  cobra.NoArgs,
	RunE:  logRun,
}

func init() {
	logCmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum number of events to show")
}

func logRun(cmd *cobra.Command, args []string) error {
	path, err := cfg.CachePath()
	if err != nil {
		return fmt.Errorf("resolving cache path: %w", err)
	}

	trk, err := tracking.Open(path)
	if err != nil {
		return fmt.Errorf("opening visitor log: %w", err)
	}
	defer trk.Close()

	events, err := trk.Recent(flagLimit)
	if err != nil {
		return fmt.Errorf("reading visitor log: %w", err)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(events)
	}

	if len(events) == 0 {
		fmt.Println("No events recorded yet.")
		return nil
	}

	for _, e := range events {
		subject := e.ContentTitle
		if e.Action == tracking.ActionSearch {
			subject = e.Query
		}
		fmt.Printf("%s  %-10s  %s\n", e.Timestamp.Format(time.DateTime), e.Action, subject)
	}
	return nil
}
