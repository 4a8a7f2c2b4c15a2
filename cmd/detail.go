package cmd

import (
	"github.com/spf13/cobra"
)

var detailCmd = &cobra.Command{
	Use:   "detail <path>",
	Short: "Show a detail page by its upstream path",
	Args:  cobra.ExactArgs(1),
	RunE:  detailRun,
}

func detailRun(cmd *cobra.Command, args []string) error {
	svc, cleanup := newService()
	defer cleanup()

	trk := openTracker()
	defer closeTracker(trk)

	return detailFlow(svc, trk, args[0])
}
