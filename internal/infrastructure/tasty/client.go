package tasty

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/recipebook/backend/internal/domain"
	"github.com/recipebook/backend/internal/logger"
)

// CSS selectors of the listing page's recipe cards
const (
	cardSelector        = "div.recipe-card"
	titleSelector       = "h3.recipe-card__title"
	descriptionSelector = "p.recipe-card__description"
)

// maxPageBytes bounds how much of the listing page is read
const maxPageBytes = 10 << 20

var spaceRe = regexp.MustCompile(`\s+`)

// ClientConfig holds settings for the listing page client
type ClientConfig struct {
	URL               string
	UserAgent         string
	Timeout           time.Duration
	RequestsPerMinute int           // 0 disables rate limiting
	CacheTTL          time.Duration // 0 disables page caching
}

// Client fetches and parses the recipe listing page.
// Each fetch is a single GET; failures are reported, never retried.
type Client struct {
	httpClient  *http.Client
	url         string
	userAgent   string
	rateLimiter *rate.Limiter
	cache       domain.PageCache
	cacheTTL    time.Duration
	logger      *zap.Logger
}

// NewClient creates a new listing page client. cache may be nil.
func NewClient(cfg ClientConfig, cache domain.PageCache, log *zap.Logger) *Client {
	limit := rate.Inf
	if cfg.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RequestsPerMinute))
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		url:         cfg.URL,
		userAgent:   cfg.UserAgent,
		rateLimiter: rate.NewLimiter(limit, 1),
		cache:       cache,
		cacheTTL:    cfg.CacheTTL,
		logger:      logger.OrNop(log),
	}
}

// FetchListings downloads the listing page and returns its recipe cards in page order
func (c *Client) FetchListings(ctx context.Context) ([]domain.Listing, error) {
	page, err := c.page(ctx)
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(c.url)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid url %q: %v", domain.ErrSourceFailure, c.url, err)
	}

	listings, err := ParseListings(bytes.NewReader(page), base)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Fetched recipe listing",
		zap.String("url", c.url),
		zap.Int("cards", len(listings)))
	return listings, nil
}

// Invalidate drops the cached listing page so the next fetch downloads it again
func (c *Client) Invalidate(ctx context.Context) error {
	if c.cache == nil {
		return nil
	}
	return c.cache.Delete(ctx, cacheKey(c.url))
}

// page returns the listing page body, from cache when possible
func (c *Client) page(ctx context.Context) ([]byte, error) {
	key := cacheKey(c.url)

	if c.cache != nil && c.cacheTTL > 0 {
		if body, err := c.cache.Get(ctx, key); err == nil {
			c.logger.Debug("Listing page served from cache", zap.String("url", c.url))
			return body, nil
		}
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
	}

	body, err := c.get(ctx)
	if err != nil {
		return nil, err
	}

	if c.cache != nil && c.cacheTTL > 0 {
		if err := c.cache.Set(ctx, key, body, c.cacheTTL); err != nil {
			c.logger.Warn("Failed to cache listing page", zap.Error(err))
		}
	}
	return body, nil
}

// get executes the HTTP GET and rejects non-2xx responses
func (c *Client) get(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", domain.ErrSourceFailure, err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("Listing page request failed",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(snippet)))
		return nil, fmt.Errorf("%w: status %d", domain.ErrSourceFailure, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrSourceFailure, err)
	}
	return body, nil
}

// ParseListings extracts the recipe cards from a listing page.
// Relative card links are resolved against base, which may be nil.
func ParseListings(r io.Reader, base *url.URL) ([]domain.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: parse html: %v", domain.ErrSourceFailure, err)
	}

	var listings []domain.Listing
	doc.Find(cardSelector).Each(func(_ int, card *goquery.Selection) {
		listings = append(listings, domain.Listing{
			Title:       norm(card.Find(titleSelector).First().Text()),
			Description: norm(card.Find(descriptionSelector).First().Text()),
			URL:         cardURL(card, base),
		})
	})
	return listings, nil
}

// cardURL returns the absolute link of a card, or "" if it has none
func cardURL(card *goquery.Selection, base *url.URL) string {
	href, ok := card.Find("a[href]").First().Attr("href")
	if !ok {
		if href, ok = card.Closest("a[href]").Attr("href"); !ok {
			return ""
		}
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}

func norm(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

func cacheKey(pageURL string) string {
	return "listing:" + pageURL
}
