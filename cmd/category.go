package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"katalog/internal/ui"
)

var flagPage int

// knownCategories maps category actions to display names, matching the
// upstream catalog's navigation. hollywood-movies is served through the
// origin client's search alias.
var knownCategories = []struct {
	Action string
	Name   string
}{
	{"trending", "Trending Now"},
	{"indonesian-movies", "Film Indonesia"},
	{"indonesian-drama", "Serial TV Indonesia"},
	{"adult-comedy", "Canda Dewasa"},
	{"western-tv", "Serial TV Barat"},
	{"kdrama", "K-Drama"},
	{"short-tv", "Short TV"},
	{"anime", "Anime"},
	{"hollywood-movies", "Film Barat"},
}

var categoryCmd = &cobra.Command{
	Use:   "category [action]",
	Short: "Browse a catalog category",
	Long: `Browse one page of a catalog category. Without an argument, the known
categories are offered for selection.`,
	Args: cobra.MaximumNArgs(1),
	RunE: categoryRun,
}

func init() {
	categoryCmd.Flags().IntVar(&flagPage, "page", 1, "Listing page to fetch")
}

func categoryRun(cmd *cobra.Command, args []string) error {
	action := ""
	if len(args) == 1 {
		action = args[0]
	}

	if action == "" {
		options := make([]ui.Option, len(knownCategories))
		for i, c := range knownCategories {
			options[i] = ui.Option{Title: c.Name, Desc: c.Action}
		}
		idx, err := ui.Select("Category", options)
		if err != nil {
			return err
		}
		action = knownCategories[idx].Action
	}

	svc, cleanup := newService()
	defer cleanup()

	trk := openTracker()
	defer closeTracker(trk)

	debugf("fetching category %s page %d", action, flagPage)
	page := svc.FetchCategory(action, flagPage)

	if page.HasMore && !flagJSON {
		fmt.Printf("More results available: katalog category %s --page %d\n", action, flagPage+1)
	}

	return pickAndShow(svc, trk, page)
}
