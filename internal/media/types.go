// Package media defines shared types for the katalog application.
package media

// Type represents whether content is a movie or a series.
type Type int

const (
	Movie Type = iota
	Series
)

func (t Type) String() string {
	switch t {
	case Movie:
		return "movie"
	case Series:
		return "series"
	default:
		return "unknown"
	}
}

// ParseType maps upstream type strings to a Type. The upstream uses
// "tv" and "series" interchangeably; anything else is a movie.
func ParseType(s string) Type {
	switch s {
	case "tv", "series":
		return Series
	default:
		return Movie
	}
}

// Item represents a single entry in a category or search listing.
type Item struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Poster     string `json:"poster"`
	Rating     string `json:"rating"`
	Year       string `json:"year"`
	Type       string `json:"type"`
	Genre      string `json:"genre"`
	DetailPath string `json:"detailPath"` // Opaque upstream identifier for the detail page
}

// Key returns the rendering identity of an item. Listings can repeat
// an ID across mirrors, so uniqueness needs the detail path too.
func (i Item) Key() string {
	return i.ID + "-" + i.DetailPath
}

// Episode represents a single playable episode. An empty URL means
// the episode exists in the catalog but has no working source.
type Episode struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Number int    `json:"episodeNumber,omitempty"`
}

// Playable reports whether the episode has a usable embed URL.
func (e Episode) Playable() bool {
	return e.URL != ""
}

// Season groups episodes under a display name.
type Season struct {
	Name     string    `json:"seasonName"`
	Episodes []Episode `json:"episodes"`
}

// Detail is the canonical detail record produced by the normalizer.
// Every field is populated, possibly with a default; callers never
// see missing data as an error.
type Detail struct {
	Title       string   `json:"title"`
	Poster      string   `json:"poster"`
	Rating      string   `json:"rating"`
	Year        string   `json:"year"`
	Genre       string   `json:"genre"`
	Description string   `json:"description"`
	PlayerURL   string   `json:"playerUrl"`
	Type        string   `json:"type"`
	Seasons     []Season `json:"seasons,omitempty"`
	Director    string   `json:"director,omitempty"`
	Cast        string   `json:"cast,omitempty"`
}

// DefaultSource returns the default playable URL: the top-level player
// URL when present, otherwise the first episode of the first season.
func (d Detail) DefaultSource() string {
	if d.PlayerURL != "" {
		return d.PlayerURL
	}
	for _, s := range d.Seasons {
		for _, e := range s.Episodes {
			return e.URL
		}
	}
	return ""
}

// EpisodeCount returns the total number of episodes across all seasons.
func (d Detail) EpisodeCount() int {
	n := 0
	for _, s := range d.Seasons {
		n += len(s.Episodes)
	}
	return n
}

// ListPage is the envelope returned by category and search requests.
type ListPage struct {
	Success bool   `json:"success"`
	Items   []Item `json:"items"`
	Page    int    `json:"page"`
	HasMore bool   `json:"hasMore"`
}

// EmptyListPage is the benign shape returned when the origin fails or
// has nothing. Callers cannot distinguish the two cases.
func EmptyListPage() ListPage {
	return ListPage{Success: false, Items: []Item{}, Page: 1, HasMore: false}
}
