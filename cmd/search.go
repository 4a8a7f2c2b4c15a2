package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"katalog/internal/catalog"
	"katalog/internal/media"
	"katalog/internal/player"
	"katalog/internal/tracking"
	"katalog/internal/ui"
)

// searchRun is the default command: katalog <query>
func searchRun(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	if query == "" {
		return fmt.Errorf("no search query provided (usage: katalog <query>)")
	}

	svc, cleanup := newService()
	defer cleanup()

	trk := openTracker()
	defer closeTracker(trk)

	debugf("searching for: %s", query)
	page := svc.Search(query)
	if trk != nil {
		if err := trk.Search(query); err != nil {
			debugf("recording search: %v", err)
		}
	}

	return pickAndShow(svc, trk, page)
}

// pickAndShow presents listing items and continues into the detail flow.
func pickAndShow(svc *catalog.Service, trk *tracking.Log, page media.ListPage) error {
	if len(page.Items) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	}

	options := make([]ui.Option, len(page.Items))
	for i, item := range page.Items {
		options[i] = itemOption(item)
	}

	idx, err := ui.Select("Select", options)
	if err != nil {
		return err
	}

	selected := page.Items[idx]
	debugf("selected: %s (%s)", selected.Title, selected.Key())
	return detailFlow(svc, trk, selected.DetailPath)
}

// detailFlow resolves a detail record, renders it, and plays the
// chosen source.
func detailFlow(svc *catalog.Service, trk *tracking.Log, detailPath string) error {
	d, ok := svc.GetDetail(detailPath)
	if !ok {
		fmt.Println("Content not found.")
		return nil
	}

	if trk != nil {
		if err := trk.PageView(d.Title); err != nil {
			debugf("recording page view: %v", err)
		}
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	}

	fmt.Println(ui.RenderDetail(d))

	url, title, err := chooseSource(d)
	if err != nil {
		return err
	}
	if url == "" {
		fmt.Println(ui.Warn("No working source for that selection."))
		return nil
	}

	if trk != nil {
		if err := trk.Play(d.Title); err != nil {
			debugf("recording play: %v", err)
		}
	}

	p := player.New(cfg.Player)
	if !p.Available() {
		return fmt.Errorf("player %q not found in PATH", cfg.Player)
	}
	debugf("playing %s with %s", url, p.Name())
	return p.Play(url, title)
}

// chooseSource picks the playable URL: the top-level player URL when
// present, otherwise a season/episode selection.
func chooseSource(d media.Detail) (url, title string, err error) {
	if d.PlayerURL != "" || d.EpisodeCount() == 0 {
		return d.DefaultSource(), d.Title, nil
	}

	season := d.Seasons[0]
	if len(d.Seasons) > 1 {
		options := make([]ui.Option, len(d.Seasons))
		for i, s := range d.Seasons {
			options[i] = ui.Option{
				Title: s.Name,
				Desc:  fmt.Sprintf("%d episodes", len(s.Episodes)),
			}
		}
		idx, err := ui.Select("Season", options)
		if err != nil {
			return "", "", err
		}
		season = d.Seasons[idx]
	}

	if len(season.Episodes) == 0 {
		return "", "", nil
	}

	options := make([]ui.Option, len(season.Episodes))
	for i, e := range season.Episodes {
		options[i] = ui.EpisodeOption(e)
	}
	idx, err := ui.Select("Episode", options)
	if err != nil {
		return "", "", err
	}

	episode := season.Episodes[idx]
	if !episode.Playable() {
		return "", "", nil
	}

	title = fmt.Sprintf("%s - %s E%02d", d.Title, season.Name, episode.Number)
	return episode.URL, title, nil
}

// itemOption formats a listing item as a picker row.
func itemOption(item media.Item) ui.Option {
	title := item.Title
	if item.Year != "" {
		title = fmt.Sprintf("%s (%s)", item.Title, item.Year)
	}

	desc := []string{}
	if item.Type != "" {
		desc = append(desc, item.Type)
	}
	if item.Genre != "" {
		desc = append(desc, item.Genre)
	}
	if item.Rating != "" && item.Rating != "0" {
		desc = append(desc, "★ "+item.Rating)
	}
	return ui.Option{Title: title, Desc: strings.Join(desc, " · ")}
}
