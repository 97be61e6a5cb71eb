// Package fetcher downloads and parses dictionary lookup pages
package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/rbhz/fr-dictionary/app/dictionary"
)

// DefaultUserAgent is sent when no user agent is configured
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) fr-dictionary/1.0"

// Client fetches dictionary pages over http
type Client struct {
	client    *http.Client
	userAgent string
}

// Get downloads the lookup page of word on site and parses it
func (c Client) Get(ctx context.Context, site dictionary.Site, word string) (*goquery.Document, error) {
	if !site.Valid() {
		return nil, fmt.Errorf("%w: %q", dictionary.ErrUnknownSite, site)
	}
	url := site.URL(word)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "fr")

	response, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	switch response.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s returned 404", dictionary.ErrNotFound, url)
	default:
		log.Error().
			Str("url", url).
			Str("status", response.Status).
			Str("body", string(body)).
			Msg("unsuccessful response from dictionary site")
		return nil, fmt.Errorf("unsuccessful response %v", response.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	log.Debug().Str("url", url).Int("size", len(body)).Msg("fetched dictionary page")
	return doc, nil
}

// NewClient creates new client
func NewClient(userAgent string) Client {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return Client{client: http.DefaultClient, userAgent: userAgent}
}
