// Package wikipedia queries the MediaWiki action API for a topic's
// introductory extract.
package wikipedia

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	httputils "github.com/teamcbatch1/conceptclarity/server/utils/http"
	"github.com/teamcbatch1/conceptclarity/server/utils/logging"
)

const (
	defaultBaseURL = "https://en.wikipedia.org/w/api.php"
	userAgent      = "ConceptClarity/1.0 (Educational chatbot)"

	// maxContentLen bounds the extract, in runes, so downstream prompts stay
	// small without splitting multibyte characters.
	maxContentLen = 3000

	requestTimeout = 10 * time.Second
)

type Page struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

type Service struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewService() *Service {
	return &Service{
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: requestTimeout},
		logger:  logging.AppLogger,
	}
}

// NewServiceWithBaseURL is for tests pointing at a fake MediaWiki endpoint.
func NewServiceWithBaseURL(baseURL string) *Service {
	s := NewService()
	s.baseURL = baseURL
	return s
}

type searchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type extractResponse struct {
	Query struct {
		Pages map[string]struct {
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}

// Lookup resolves a topic to its top-ranked Wikipedia page and intro extract.
// Every failure mode (no hits, empty extract, network error, timeout)
// collapses to nil: the caller falls through to its no-Wikipedia path rather
// than erroring.
func (s *Service) Lookup(ctx context.Context, topic string) *Page {
	defer logging.LogDuration(ctx, "wikipedia_lookup")()

	headers := map[string]string{"User-Agent": userAgent}

	searchURL := s.baseURL + "?action=query&list=search&srsearch=" +
		url.QueryEscape(topic) + "&format=json&origin=*&srlimit=3"
	var search searchResponse
	if err := httputils.GetJSON(ctx, s.client, searchURL, headers, &search); err != nil {
		s.warn("wikipedia search failed", topic, err)
		return nil
	}
	if len(search.Query.Search) == 0 {
		return nil
	}
	pageTitle := search.Query.Search[0].Title

	extractURL := s.baseURL + "?action=query&prop=extracts&exintro=true&explaintext=true&titles=" +
		url.QueryEscape(pageTitle) + "&format=json&origin=*"
	var extract extractResponse
	if err := httputils.GetJSON(ctx, s.client, extractURL, headers, &extract); err != nil {
		s.warn("wikipedia extract failed", pageTitle, err)
		return nil
	}

	var content string
	for _, page := range extract.Query.Pages {
		content = page.Extract
		break
	}
	if strings.TrimSpace(content) == "" {
		return nil
	}

	if utf8.RuneCountInString(content) > maxContentLen {
		content = string([]rune(content)[:maxContentLen]) + "..."
	}

	return &Page{
		Title:   pageTitle,
		Content: content,
		URL:     "https://en.wikipedia.org/wiki/" + url.PathEscape(strings.ReplaceAll(pageTitle, " ", "_")),
	}
}

func (s *Service) warn(msg, subject string, err error) {
	if s.logger != nil {
		s.logger.Warn(msg, zap.String("subject", subject), zap.Error(err))
	}
}
