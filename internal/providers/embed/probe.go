package embed

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	providerhttp "github.com/justchokingaround/vidstream/internal/providers/http"
)

// ProbeResult describes the provider page behind an embed address
type ProbeResult struct {
	StatusCode int
	Title      string
	// Sources lists iframe and video sources found on the page
	Sources []string
}

// OK reports whether the provider answered with a page
func (r ProbeResult) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Prober fetches embed pages to check that the provider serves them
type Prober struct {
	client *providerhttp.Client
}

// NewProber creates a prober on top of client
func NewProber(client *providerhttp.Client) *Prober {
	return &Prober{client: client}
}

// Probe downloads url and extracts the page title and player sources.
// A non-2xx answer is returned as a result, not an error.
func (p *Prober) Probe(ctx context.Context, url string) (ProbeResult, error) {
	resp, err := p.client.Get(ctx, url, nil)
	if err != nil {
		return ProbeResult{}, err
	}

	result := ProbeResult{StatusCode: resp.StatusCode()}
	if !result.OK() {
		return result, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return result, fmt.Errorf("failed to parse embed page: %w", err)
	}

	result.Title = strings.TrimSpace(doc.Find("title").First().Text())
	doc.Find("iframe[src], video[src], video source[src]").Each(func(i int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok && strings.TrimSpace(src) != "" {
			result.Sources = append(result.Sources, strings.TrimSpace(src))
		}
	})
	return result, nil
}
