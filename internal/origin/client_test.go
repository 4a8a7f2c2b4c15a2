package origin

import (
	"bytes"
	"io"
	"net/http"
	"testing"
)

// roundTripFunc lets a test function stand in as an http.RoundTripper.
type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

func newTestClient(rt roundTripFunc) *Client {
	return &Client{
		base:   "https://catalog.example/api.php",
		client: &http.Client{Transport: rt},
	}
}

func TestFetchCategory(t *testing.T) {
	var gotQuery map[string]string
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		gotQuery = map[string]string{}
		for k, v := range req.URL.Query() {
			gotQuery[k] = v[0]
		}
		return jsonResponse(http.StatusOK, `{
			"success": true,
			"items": [
				{"id": 42, "title": "Laskar Pelangi", "poster": "https://img.example/a.jpg",
				 "rating": 8.1, "year": 2008, "type": "movie", "genre": "Drama",
				 "detailPath": "laskar-pelangi-2008"}
			],
			"page": 2,
			"hasMore": true
		}`), nil
	})

	page := c.FetchCategory("indonesian-movies", 2)

	if gotQuery["action"] != "indonesian-movies" {
		t.Errorf("action = %q, want indonesian-movies", gotQuery["action"])
	}
	if gotQuery["page"] != "2" {
		t.Errorf("page = %q, want 2", gotQuery["page"])
	}

	if !page.Success {
		t.Fatal("expected success")
	}
	if len(page.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(page.Items))
	}
	if !page.HasMore {
		t.Error("expected hasMore")
	}

	got := page.Items[0]
	if got.ID != "42" {
		t.Errorf("ID = %q, want 42 (numeric id coerced)", got.ID)
	}
	if got.Rating != "8.1" {
		t.Errorf("Rating = %q, want 8.1 (numeric rating coerced)", got.Rating)
	}
	if got.Year != "2008" {
		t.Errorf("Year = %q, want 2008", got.Year)
	}
	if got.DetailPath != "laskar-pelangi-2008" {
		t.Errorf("DetailPath = %q", got.DetailPath)
	}
}

func TestFetchCategoryAliasIssuesSearch(t *testing.T) {
	var gotQuery map[string]string
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		gotQuery = map[string]string{}
		for k, v := range req.URL.Query() {
			gotQuery[k] = v[0]
		}
		return jsonResponse(http.StatusOK, `{"success": true, "items": [], "page": 1, "hasMore": false}`), nil
	})

	c.FetchCategory("hollywood-movies", 1)

	if gotQuery["action"] != "search" {
		t.Errorf("action = %q, want search (alias must redirect)", gotQuery["action"])
	}
	if gotQuery["q"] != "hollywood" {
		t.Errorf("q = %q, want hollywood", gotQuery["q"])
	}
	if _, ok := gotQuery["page"]; ok {
		t.Error("alias redirect should not carry a page parameter")
	}
}

func TestSearchEncodesQuery(t *testing.T) {
	var gotQ string
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		gotQ = req.URL.Query().Get("q")
		return jsonResponse(http.StatusOK, `{"success": true, "items": [], "page": 1, "hasMore": false}`), nil
	})

	c.Search("sayap sayap patah")
	if gotQ != "sayap sayap patah" {
		t.Errorf("q = %q, want original query preserved through encoding", gotQ)
	}
}

func TestFetchCategoryFailures(t *testing.T) {
	tests := []struct {
		name string
		rt   roundTripFunc
	}{
		{"http 500", func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusInternalServerError, `boom`), nil
		}},
		{"network error", func(req *http.Request) (*http.Response, error) {
			return nil, io.ErrUnexpectedEOF
		}},
		{"malformed json", func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `{"success": tru`), nil
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(tt.rt)
			page := c.FetchCategory("trending", 1)

			if page.Success {
				t.Error("expected success=false")
			}
			if len(page.Items) != 0 {
				t.Errorf("expected no items, got %d", len(page.Items))
			}
			if page.Page != 1 {
				t.Errorf("page = %d, want 1", page.Page)
			}
			if page.HasMore {
				t.Error("expected hasMore=false")
			}
		})
	}
}

func TestFetchDetailEnvelopeKeys(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string // expected title of the unwrapped record, "" for nil
	}{
		{"item", `{"success": true, "item": {"title": "A"}, "result": {"title": "Z"}}`, "A"},
		{"data", `{"success": true, "data": {"title": "B"}}`, "B"},
		{"first of items", `{"success": true, "items": [{"title": "C"}, {"title": "X"}]}`, "C"},
		{"first of results", `{"success": true, "results": [{"title": "D"}]}`, "D"},
		{"result", `{"success": true, "result": {"title": "E"}}`, "E"},
		{"item wins over items", `{"success": true, "item": {"title": "A"}, "items": [{"title": "C"}]}`, "A"},
		{"empty items falls through", `{"success": true, "items": [], "result": {"title": "E"}}`, "E"},
		{"no record", `{"success": true}`, ""},
		{"success false", `{"success": false, "item": {"title": "A"}}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(func(req *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, tt.body), nil
			})

			raw := c.FetchDetail("some/path")
			if tt.want == "" {
				if raw != nil {
					t.Fatalf("expected nil record, got %v", raw)
				}
				return
			}
			if raw == nil {
				t.Fatal("expected a record, got nil")
			}
			if title, _ := raw["title"].(string); title != tt.want {
				t.Errorf("title = %q, want %q", title, tt.want)
			}
		})
	}
}

func TestFetchDetailInvalidPath(t *testing.T) {
	called := false
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		called = true
		return jsonResponse(http.StatusOK, `{"success": true, "item": {}}`), nil
	})

	if raw := c.FetchDetail("../../etc/passwd"); raw != nil {
		t.Error("expected nil for traversal path")
	}
	if called {
		t.Error("invalid path must not reach the network")
	}
}

func TestFetchDetailNetworkError(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		return nil, io.ErrUnexpectedEOF
	})
	if raw := c.FetchDetail("ok-path"); raw != nil {
		t.Error("expected nil on network error")
	}
}
