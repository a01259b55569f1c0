package colorsvc

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/extensions"
)

var (
	imageURLMatcher = regexp2.MustCompile(`^https?://[^\s"'<>]+\.(?:jpe?g|png|gif|webp)(?:\?[^\s"'<>]*)?$`, regexp2.IgnoreCase)
	// Result anchors carry their metadata as JSON in the "m" attribute
	mediaURLMatcher = regexp2.MustCompile(`(?<="murl":")[^"]+(?=")`, 0)
)

// ImageFinder returns candidate image URLs for a free-text query, best first
type ImageFinder interface {
	Find(ctx context.Context, query string) ([]string, error)
}

// CollyFinder scrapes an image search results page
type CollyFinder struct {
	searchURL string // %s is replaced by the escaped query
	timeout   time.Duration
	logger    *slog.Logger
}

// NewCollyFinder creates a finder for the given results page pattern
func NewCollyFinder(searchURL string, timeout time.Duration, logger *slog.Logger) *CollyFinder {
	return &CollyFinder{
		searchURL: searchURL,
		timeout:   timeout,
		logger:    logger,
	}
}

// Find visits the results page and collects every linked or embedded image URL
func (f *CollyFinder) Find(ctx context.Context, query string) ([]string, error) {
	col := colly.NewCollector(
		colly.StdlibContext(ctx),
		colly.IgnoreRobotsTxt(),
	)
	extensions.RandomUserAgent(col)
	if f.timeout > 0 {
		col.SetRequestTimeout(f.timeout)
	}

	var found []string
	col.OnHTML("a[m]", func(e *colly.HTMLElement) {
		meta := strings.ReplaceAll(e.Attr("m"), `\/`, "/")
		found = append(found, regexp2SearchAll(mediaURLMatcher, meta)...)
	})
	col.OnHTML("img", func(e *colly.HTMLElement) {
		for _, attr := range []string{"data-src", "src"} {
			if src := e.Attr(attr); src != "" {
				found = append(found, e.Request.AbsoluteURL(src))
			}
		}
	})

	var visitErr error
	col.OnError(func(r *colly.Response, err error) {
		visitErr = fmt.Errorf("search page returned %d: %w", r.StatusCode, err)
	})

	target := fmt.Sprintf(f.searchURL, url.QueryEscape(query))
	f.logger.Debug("visiting search page", "url", target)
	if err := col.Visit(target); err != nil {
		return nil, fmt.Errorf("visit search page: %w", err)
	}
	col.Wait()
	if visitErr != nil {
		return nil, visitErr
	}
	return found, nil
}

// SelectImages keeps direct image links that were not used before, in order and without
// duplicates, up to limit.
func SelectImages(candidates, used []string, limit int) []string {
	skip := make(map[string]struct{}, len(used))
	for _, u := range used {
		skip[u] = struct{}{}
	}

	var out []string
	for _, c := range candidates {
		if limit > 0 && len(out) >= limit {
			break
		}
		if _, ok := skip[c]; ok {
			continue
		}
		if ok, _ := imageURLMatcher.MatchString(c); !ok {
			continue
		}
		skip[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func regexp2SearchAll(re *regexp2.Regexp, s string) []string {
	var matches []string
	m, _ := re.FindStringMatch(s)
	for m != nil {
		matches = append(matches, m.String())
		m, _ = re.FindNextMatch(m)
	}
	return matches
}
