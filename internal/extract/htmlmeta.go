// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/geodes-sms/IFT3150-ProjetCurationMetadonnees-sub000/internal/cache"
	"github.com/geodes-sms/IFT3150-ProjetCurationMetadonnees-sub000/internal/httputil"
	"github.com/geodes-sms/IFT3150-ProjetCurationMetadonnees-sub000/internal/normalize"
	"github.com/geodes-sms/IFT3150-ProjetCurationMetadonnees-sub000/internal/source"
	"github.com/geodes-sms/IFT3150-ProjetCurationMetadonnees-sub000/pkg/types"
)

// doiBase resolves bare DOIs. Declared as a var so tests can substitute an
// httptest server.
var doiBase = "https://doi.org/"

// HTMLMeta extracts metadata from publisher landing pages via the Highwire
// citation_* meta tags most academic publishers emit. It keeps one rate
// limiter per host so two requests never hit the same site concurrently
// faster than the configured rate.
type HTMLMeta struct {
	client *http.Client
	cfg    types.ExtractConfig
	retry  types.RetryPolicy
	store  *cache.Store

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewHTMLMeta builds the generic extractor. The per-attempt timeout of the
// retry policy is enforced through the HTTP client. When store is non-nil,
// every fetched page is written through to it so the title is never
// fetched twice.
func NewHTMLMeta(cfg types.ExtractConfig, retry types.RetryPolicy, store *cache.Store) *HTMLMeta {
	timeout := cfg.Timeout
	if retry.Timeout > 0 {
		timeout = retry.Timeout
	}
	return &HTMLMeta{
		client:   &http.Client{Timeout: timeout},
		cfg:      cfg,
		retry:    retry,
		store:    store,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Extract fetches the article landing page and parses its citation meta
// tags. Without a link it cannot locate the article and returns ErrNoLink;
// per-publisher search front-ends are external collaborators.
func (h *HTMLMeta) Extract(ctx context.Context, src source.Source, title, link string) (*types.MetadataCandidate, error) {
	if link == "" {
		return nil, ErrNoLink
	}

	if err := h.limiter(link).Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", link, err)
	}
	if h.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", h.cfg.UserAgent)
	}
	if key := h.cfg.APIKeys[strings.ToLower(src.String())]; key != "" {
		req.Header.Set(apiKeyHeader(src), key)
	}

	resp, err := httputil.DoWithRetry(ctx, h.client, req, h.retry)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", link, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %d", link, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", link, err)
	}

	if h.store != nil {
		if _, err := h.store.Put(normalize.Title(title), src.Code(), cache.KindHTML, body); err != nil {
			return nil, fmt.Errorf("caching page for %s: %w", link, err)
		}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", link, err)
	}

	c := candidateFromDoc(doc)
	c.Link = link
	c.Source = src.Code()
	return c, nil
}

// Parse converts cached page content into a candidate without network access.
func (h *HTMLMeta) Parse(src source.Source, content []byte, kind cache.Kind) (*types.MetadataCandidate, error) {
	switch kind {
	case cache.KindBibTeX:
		c := CandidateFromBibTeX(content)
		c.Source = src.Code()
		return c, nil
	case cache.KindHTML:
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
		if err != nil {
			return nil, fmt.Errorf("parsing cached page: %w", err)
		}
		c := candidateFromDoc(doc)
		c.Source = src.Code()
		return c, nil
	default:
		return nil, fmt.Errorf("unknown cache entry kind %q", kind)
	}
}

// apiKeyHeader names the request header a publisher expects its key in.
// Elsevier platforms use X-ELS-APIKey; everyone else accepts the generic form.
func apiKeyHeader(src source.Source) string {
	switch src {
	case source.Scopus, source.ScopusSignedIn, source.ScienceDirect:
		return "X-ELS-APIKey"
	default:
		return "X-API-Key"
	}
}

// limiter returns the rate limiter for the link's host, creating it on
// first use.
func (h *HTMLMeta) limiter(link string) *rate.Limiter {
	host := link
	if u, err := url.Parse(link); err == nil && u.Host != "" {
		host = u.Host
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	l, ok := h.limiters[host]
	if !ok {
		per := h.cfg.RatePerSecond
		if per <= 0 {
			per = 1
		}
		burst := h.cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		l = rate.NewLimiter(rate.Limit(per), burst)
		h.limiters[host] = l
	}
	return l
}

// candidateFromDoc maps citation meta tags onto a candidate. Repeated tags
// (authors, keywords) are flattened into semicolon-joined strings.
func candidateFromDoc(doc *goquery.Document) *types.MetadataCandidate {
	meta := make(map[string]string)
	var authors, keywords []string

	doc.Find("meta").Each(func(_ int, sel *goquery.Selection) {
		name, _ := sel.Attr("name")
		if name == "" {
			name, _ = sel.Attr("property")
		}
		content, _ := sel.Attr("content")
		content = strings.TrimSpace(content)
		if name == "" || content == "" {
			return
		}
		switch strings.ToLower(name) {
		case "citation_author":
			authors = append(authors, content)
		case "citation_keywords", "keywords":
			keywords = append(keywords, content)
		default:
			meta[strings.ToLower(name)] = content
		}
	})

	return &types.MetadataCandidate{
		Title:     first(meta, "citation_title", "og:title", "dc.title"),
		Venue:     first(meta, "citation_journal_title", "citation_conference_title", "og:site_name"),
		Abstract:  first(meta, "citation_abstract", "dc.description", "description", "og:description"),
		DOI:       first(meta, "citation_doi", "dc.identifier"),
		Year:      yearOf(first(meta, "citation_publication_date", "citation_date", "dc.date")),
		Publisher: first(meta, "citation_publisher", "dc.publisher"),
		Authors:   strings.Join(authors, "; "),
		Keywords:  strings.Join(keywords, "; "),
		Pages:     pageRange(meta["citation_firstpage"], meta["citation_lastpage"]),
	}
}

// first returns the first non-empty value among keys.
func first(meta map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := meta[k]; v != "" {
			return v
		}
	}
	return ""
}

// yearOf extracts the 4-digit year from dates like "2023/05/01" or "2023-05".
func yearOf(date string) string {
	for _, sep := range []string{"/", "-"} {
		if i := strings.Index(date, sep); i > 0 {
			date = date[:i]
			break
		}
	}
	if len(date) == 4 {
		return date
	}
	return ""
}

func pageRange(firstPage, lastPage string) string {
	switch {
	case firstPage == "":
		return ""
	case lastPage == "":
		return firstPage
	default:
		return firstPage + "-" + lastPage
	}
}

// DOILink builds the resolver URL for a bare DOI.
func DOILink(doi string) string {
	return doiBase + doi
}
