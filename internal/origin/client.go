// Package origin implements the client for the upstream catalog API.
//
// The upstream is a single GET endpoint distinguished by an `action`
// query parameter. Its failure policy is deliberately soft: network
// errors, non-2xx statuses, and malformed JSON all collapse into benign
// empty results. Callers never see an error from this layer.
package origin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"katalog/internal/httputil"
	"katalog/internal/media"
)

// categoryAliases rewrites category actions the upstream cannot route
// as categories. These are served by a search call with a fixed query
// term instead.
var categoryAliases = map[string]string{
	"hollywood-movies": "hollywood",
}

// Client talks to the upstream catalog API.
type Client struct {
	base   string // full endpoint URL, e.g. "https://host/apiv3/api.php"
	client *http.Client
}

// NewClient creates a new catalog API client.
func NewClient(base string) *Client {
	return &Client{
		base:   base,
		client: httputil.NewClient(),
	}
}

// FetchCategory returns one page of a category listing. Aliased
// categories are redirected to a search call.
func (c *Client) FetchCategory(action string, page int) media.ListPage {
	if q, ok := categoryAliases[action]; ok {
		return c.Search(q)
	}
	if page < 1 {
		page = 1
	}
	u := fmt.Sprintf("%s?action=%s&page=%d", c.base, url.QueryEscape(action), page)
	return c.fetchList(u)
}

// Search returns results for a free-text query.
func (c *Client) Search(query string) media.ListPage {
	u := fmt.Sprintf("%s?action=search&q=%s", c.base, url.QueryEscape(query))
	return c.fetchList(u)
}

// FetchDetail returns the raw detail record for a detail path, or nil
// when the upstream has nothing or is unreachable. The record hides
// under one of several envelope keys; the first present one wins.
func (c *Client) FetchDetail(detailPath string) map[string]any {
	if err := httputil.ValidateDetailPath(detailPath); err != nil {
		return nil
	}

	u := fmt.Sprintf("%s?action=detail&detailPath=%s", c.base, url.QueryEscape(detailPath))
	body, err := httputil.GetJSON(c.client, u)
	if err != nil {
		return nil
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil
	}
	if ok, _ := payload["success"].(bool); !ok {
		return nil
	}

	return unwrapItem(payload)
}

// unwrapItem locates the detail record inside an inconsistent upstream
// envelope. Priority order: item, data, items[0], results[0], result.
func unwrapItem(payload map[string]any) map[string]any {
	for _, key := range []string{"item", "data"} {
		if m, ok := payload[key].(map[string]any); ok {
			return m
		}
	}
	for _, key := range []string{"items", "results"} {
		if arr, ok := payload[key].([]any); ok && len(arr) > 0 {
			if m, ok := arr[0].(map[string]any); ok {
				return m
			}
		}
	}
	if m, ok := payload["result"].(map[string]any); ok {
		return m
	}
	return nil
}

// fetchList fetches and decodes a listing envelope, degrading to the
// empty shape on any failure.
func (c *Client) fetchList(u string) media.ListPage {
	body, err := httputil.GetJSON(c.client, u)
	if err != nil {
		return media.EmptyListPage()
	}

	var env wireList
	if err := json.Unmarshal(body, &env); err != nil {
		return media.EmptyListPage()
	}

	page := env.Page
	if page < 1 {
		page = 1
	}

	items := make([]media.Item, 0, len(env.Items))
	for _, w := range env.Items {
		items = append(items, media.Item{
			ID:         string(w.ID),
			Title:      w.Title,
			Poster:     w.Poster,
			Rating:     string(w.Rating),
			Year:       string(w.Year),
			Type:       w.Type,
			Genre:      w.Genre,
			DetailPath: w.DetailPath,
		})
	}

	return media.ListPage{
		Success: env.Success,
		Items:   items,
		Page:    page,
		HasMore: env.HasMore,
	}
}

// wireList mirrors the upstream listing envelope. Fields the upstream
// sends as number-or-string decode through flexString.
type wireList struct {
	Success bool       `json:"success"`
	Items   []wireItem `json:"items"`
	Page    int        `json:"page"`
	HasMore bool       `json:"hasMore"`
}

type wireItem struct {
	ID         flexString `json:"id"`
	Title      string     `json:"title"`
	Poster     string     `json:"poster"`
	Rating     flexString `json:"rating"`
	Year       flexString `json:"year"`
	Type       string     `json:"type"`
	Genre      string     `json:"genre"`
	DetailPath string     `json:"detailPath"`
}

// flexString decodes a JSON string or number into a string. Anything
// else (null, objects) becomes empty rather than a decode error.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*f = ""
			return nil
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		*f = ""
		return nil
	}
	*f = flexString(n.String())
	return nil
}
