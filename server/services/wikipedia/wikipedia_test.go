package wikipedia

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/teamcbatch1/conceptclarity/server/utils/logging"
)

func TestMain(m *testing.M) {
	logging.InitLogger()
	m.Run()
}

// fakeMediaWiki answers the two action=query shapes Lookup issues.
func fakeMediaWiki(t *testing.T, searchTitles []string, extract string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		w.Header().Set("Content-Type", "application/json")

		if q.Get("list") == "search" {
			type hit struct {
				Title string `json:"title"`
			}
			hits := make([]hit, 0, len(searchTitles))
			for _, title := range searchTitles {
				hits = append(hits, hit{Title: title})
			}
			json.NewEncoder(w).Encode(map[string]any{
				"query": map[string]any{"search": hits},
			})
			return
		}

		if q.Get("prop") == "extracts" {
			json.NewEncoder(w).Encode(map[string]any{
				"query": map[string]any{
					"pages": map[string]any{
						"12345": map[string]any{"extract": extract},
					},
				},
			})
			return
		}

		t.Errorf("unexpected request: %s", r.URL.String())
		http.NotFound(w, r)
	}))
}

func TestLookupSuccess(t *testing.T) {
	srv := fakeMediaWiki(t, []string{"Blockchain", "Block (data)"}, "A blockchain is a distributed ledger.")
	defer srv.Close()

	page := NewServiceWithBaseURL(srv.URL).Lookup(context.Background(), "blockchain")
	if page == nil {
		t.Fatal("Lookup returned nil")
	}
	if page.Title != "Blockchain" {
		t.Errorf("Title = %q, want top search hit", page.Title)
	}
	if page.Content != "A blockchain is a distributed ledger." {
		t.Errorf("Content = %q", page.Content)
	}
	if page.URL != "https://en.wikipedia.org/wiki/Blockchain" {
		t.Errorf("URL = %q", page.URL)
	}
}

func TestLookupTruncatesLongExtract(t *testing.T) {
	long := strings.Repeat("x", 5000)
	srv := fakeMediaWiki(t, []string{"Long Article"}, long)
	defer srv.Close()

	page := NewServiceWithBaseURL(srv.URL).Lookup(context.Background(), "long")
	if page == nil {
		t.Fatal("Lookup returned nil")
	}
	if len(page.Content) != 3003 {
		t.Errorf("len(Content) = %d, want 3000 + ellipsis", len(page.Content))
	}
	if !strings.HasSuffix(page.Content, "...") {
		t.Errorf("truncated content missing ellipsis: %q", page.Content[len(page.Content)-10:])
	}
}

func TestLookupTruncatesOnRuneBoundary(t *testing.T) {
	// 4000 multibyte runes; a byte-indexed cut at 3000 would split one.
	long := strings.Repeat("త", 4000)
	srv := fakeMediaWiki(t, []string{"Telugu Article"}, long)
	defer srv.Close()

	page := NewServiceWithBaseURL(srv.URL).Lookup(context.Background(), "telugu")
	if page == nil {
		t.Fatal("Lookup returned nil")
	}
	if !utf8.ValidString(page.Content) {
		t.Fatal("truncated content is not valid UTF-8")
	}
	if n := utf8.RuneCountInString(page.Content); n != 3003 {
		t.Errorf("content rune count = %d, want 3000 + ellipsis", n)
	}
	if !strings.HasSuffix(page.Content, "...") {
		t.Error("truncated content missing ellipsis")
	}
}

func TestLookupNoResults(t *testing.T) {
	srv := fakeMediaWiki(t, nil, "")
	defer srv.Close()

	if page := NewServiceWithBaseURL(srv.URL).Lookup(context.Background(), "nosuchtopic"); page != nil {
		t.Errorf("Lookup = %+v, want nil for no search hits", page)
	}
}

func TestLookupEmptyExtract(t *testing.T) {
	srv := fakeMediaWiki(t, []string{"Stub"}, "   ")
	defer srv.Close()

	if page := NewServiceWithBaseURL(srv.URL).Lookup(context.Background(), "stub"); page != nil {
		t.Errorf("Lookup = %+v, want nil for blank extract", page)
	}
}

func TestLookupServerErrorReturnsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if page := NewServiceWithBaseURL(srv.URL).Lookup(context.Background(), "anything"); page != nil {
		t.Errorf("Lookup = %+v, want nil on server error", page)
	}
}

func TestLookupSpacedTitleURL(t *testing.T) {
	srv := fakeMediaWiki(t, []string{"Machine learning"}, "Machine learning is a field of study.")
	defer srv.Close()

	page := NewServiceWithBaseURL(srv.URL).Lookup(context.Background(), "machine learning")
	if page == nil {
		t.Fatal("Lookup returned nil")
	}
	if page.URL != "https://en.wikipedia.org/wiki/Machine_learning" {
		t.Errorf("URL = %q, want underscored article path", page.URL)
	}
}
