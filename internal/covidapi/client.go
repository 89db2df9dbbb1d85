// Package covidapi fetches confirmed-case histories from the covid19api REST service.
package covidapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/jgoulah/covidplot/internal/logger"
	"github.com/jgoulah/covidplot/pkg/models"
)

// ErrUnexpectedStatus is returned when the API answers with anything but 200
var ErrUnexpectedStatus = errors.New("unexpected API status")

// Client talks to the API. It never retries or caches.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient creates a client for baseURL. A zero timeout means no timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// WithHTTPClient swaps the underlying HTTP client
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

// FetchConfirmed returns the cumulative confirmed-case rows for a country slug,
// every province included, in the order the API returned them.
func (c *Client) FetchConfirmed(ctx context.Context, country string) ([]models.CaseRow, error) {
	reqURL := fmt.Sprintf("%s/dayone/country/%s/status/confirmed/live", c.baseURL, url.PathEscape(country))

	var rows []models.CaseRow
	if err := c.getJSON(ctx, reqURL, &rows); err != nil {
		return nil, fmt.Errorf("fetching confirmed cases for %s: %w", country, err)
	}

	logger.Debugf(ctx, "fetched %d rows for %s", len(rows), country)
	return rows, nil
}

// Countries returns every country the API knows, sorted by slug
func (c *Client) Countries(ctx context.Context) ([]models.Country, error) {
	var countries []models.Country
	if err := c.getJSON(ctx, c.baseURL+"/countries", &countries); err != nil {
		return nil, fmt.Errorf("fetching countries: %w", err)
	}

	sort.Slice(countries, func(i, j int) bool {
		return countries[i].Slug < countries[j].Slug
	})
	return countries, nil
}

func (c *Client) getJSON(ctx context.Context, reqURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	logger.Debugf(ctx, "GET %s", reqURL)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: API returned status %d: %s", ErrUnexpectedStatus, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
