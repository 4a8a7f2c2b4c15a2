// Package normalize converts raw upstream detail payloads into the
// canonical media.Detail shape.
//
// The upstream schema is inconsistent: the same logical field arrives
// under different names depending on which backend served the request.
// Each canonical field therefore resolves through an explicit ordered
// accessor chain; the first accessor that yields a value wins. Missing
// data becomes defaults, never an error.
package normalize

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"katalog/internal/media"
)

// accessor extracts one candidate value from a raw record.
type accessor func(item map[string]any) (string, bool)

// key returns an accessor for a single field name. Empty strings,
// nulls, and empty collections count as absent so the chain keeps
// falling through, matching the upstream's own truthiness rules.
func key(name string) accessor {
	return func(item map[string]any) (string, bool) {
		v, ok := item[name]
		if !ok || v == nil {
			return "", false
		}
		return asString(v)
	}
}

// Per-field accessor chains, in upstream priority order.
var (
	titleChain       = []accessor{key("title"), key("name")}
	posterChain      = []accessor{key("poster"), key("thumb"), key("image")}
	ratingChain      = []accessor{key("rating")}
	yearChain        = []accessor{key("year"), key("release_date")}
	genreChain       = []accessor{key("genre"), key("genres")}
	descriptionChain = []accessor{key("description"), key("synopsis"), key("overview")}
	playerChain      = []accessor{key("playerUrl"), key("embed_url"), key("video_url")}
	directorChain    = []accessor{key("director")}
	castChain        = []accessor{key("cast"), key("actors")}

	seasonNameChain   = []accessor{key("seasonName"), key("name")}
	episodeTitleChain = []accessor{key("title"), key("name")}
	episodeURLChain   = []accessor{key("url"), key("embed_url"), key("player_url"), key("playerUrl")}
)

// resolve runs an accessor chain over the record, returning the first
// present value or the default.
func resolve(item map[string]any, def string, chain []accessor) string {
	for _, acc := range chain {
		if v, ok := acc(item); ok {
			return v
		}
	}
	return def
}

// Record normalizes a raw detail record into a media.Detail. The input
// is the unwrapped record (see origin.Client.FetchDetail), not the
// envelope. A nil input yields an all-default record.
func Record(item map[string]any) media.Detail {
	if item == nil {
		item = map[string]any{}
	}

	seasons := normalizeSeasons(item)

	d := media.Detail{
		Title:       resolve(item, "", titleChain),
		Poster:      resolve(item, "", posterChain),
		Rating:      resolve(item, "0", ratingChain),
		Year:        resolve(item, "", yearChain),
		Genre:       resolve(item, "", genreChain),
		Description: stripHTML(resolve(item, "", descriptionChain)),
		PlayerURL:   resolve(item, "", playerChain),
		Seasons:     seasons,
		Director:    resolve(item, "", directorChain),
		Cast:        resolve(item, "", castChain),
	}

	d.Type = resolveType(item, d)

	return d
}

// resolveType prefers an explicit upstream type; otherwise more than
// one episode across all seasons implies a series.
func resolveType(item map[string]any, d media.Detail) string {
	if explicit, ok := key("type")(item); ok {
		return media.ParseType(explicit).String()
	}
	if d.EpisodeCount() > 1 {
		return media.Series.String()
	}
	return media.Movie.String()
}

// normalizeSeasons locates the raw season/episode collection and maps
// it to canonical seasons. The collection is season-structured iff its
// first element carries an `episodes` sub-collection or an explicit
// season name; otherwise the whole collection is a flat episode list
// wrapped into a single synthesized season.
func normalizeSeasons(item map[string]any) []media.Season {
	raw := collectionOf(item, "seasons", "episodes_list")
	if len(raw) == 0 {
		return nil
	}

	if isSeasonStructured(raw) {
		seasons := make([]media.Season, 0, len(raw))
		for i, v := range raw {
			s, _ := v.(map[string]any)
			if s == nil {
				s = map[string]any{}
			}
			name := resolve(s, "Season "+strconv.Itoa(i+1), seasonNameChain)
			eps, _ := s["episodes"].([]any)
			seasons = append(seasons, media.Season{
				Name:     name,
				Episodes: mapEpisodes(eps),
			})
		}
		return seasons
	}

	return []media.Season{{
		Name:     "Season 1",
		Episodes: mapEpisodes(raw),
	}}
}

func isSeasonStructured(raw []any) bool {
	first, ok := raw[0].(map[string]any)
	if !ok {
		return false
	}
	if _, ok := first["episodes"].([]any); ok {
		return true
	}
	if _, ok := key("seasonName")(first); ok {
		return true
	}
	return false
}

// collectionOf returns the first array found under the given keys.
func collectionOf(item map[string]any, keys ...string) []any {
	for _, k := range keys {
		if arr, ok := item[k].([]any); ok {
			return arr
		}
	}
	return nil
}

// mapEpisodes maps raw episodes in original order. Episode numbers come
// from an explicit episodeNumber when present, else the 1-based index.
func mapEpisodes(raw []any) []media.Episode {
	episodes := make([]media.Episode, 0, len(raw))
	for i, v := range raw {
		e, _ := v.(map[string]any)
		if e == nil {
			e = map[string]any{}
		}
		num := i + 1
		if n, ok := e["episodeNumber"].(float64); ok && n > 0 {
			num = int(n)
		}
		episodes = append(episodes, media.Episode{
			Title:  resolve(e, "Episode", episodeTitleChain),
			URL:    resolve(e, "", episodeURLChain),
			Number: num,
		})
	}
	return episodes
}

// asString coerces upstream scalar shapes to a string. Ratings and
// years arrive as numbers or strings; genres sometimes as an array.
func asString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		if t == "" {
			return "", false
		}
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return "", false
	case []any:
		parts := make([]string, 0, len(t))
		for _, el := range t {
			if s, ok := el.(string); ok && s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			return "", false
		}
		return strings.Join(parts, ", "), true
	default:
		return "", false
	}
}

// stripHTML flattens markup-bearing descriptions to plain text. Some
// upstream backends embed tags in synopsis fields.
func stripHTML(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
