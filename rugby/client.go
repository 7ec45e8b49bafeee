/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package rugby

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/mikeb26/rugbystats/internal"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrFetch is returned when the data service cannot be reached or answers
// with anything but 200.
var ErrFetch = errors.New("failed to fetch match data")

type freshKey struct{}

// WithFreshFetch marks ctx so Load asks any caching transport to go to the
// data service instead of answering from its cache.
func WithFreshFetch(ctx context.Context) context.Context {
	return context.WithValue(ctx, freshKey{}, true)
}

// IsFreshFetch reports whether ctx was marked by WithFreshFetch.
func IsFreshFetch(ctx context.Context) bool {
	fresh, _ := ctx.Value(freshKey{}).(bool)
	return fresh
}

// Client fetches the match collection from a data service.
type Client struct {
	httpClient *http.Client
	url        string
}

func NewClient(httpClient *http.Client, url string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if url == "" {
		url = internal.DefaultDataURL
	}
	return &Client{
		httpClient: httpClient,
		url:        url,
	}
}

func (c *Client) URL() string {
	return c.url
}

// Load performs a single GET of the data service. There are no retries.
func (c *Client) Load(ctx context.Context) ([]Match, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)
	req.Header.Set("Accept", "application/json")
	if IsFreshFetch(ctx) {
		req.Header.Set("Cache-Control", "no-cache")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: %v returned status %v: %s", ErrFetch, c.url,
			resp.StatusCode, body)
	}

	// read to EOF so a caching transport stores the body
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", ErrFetch, err)
	}
	var env Envelope
	err = jsonAPI.Unmarshal(body, &env)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %w", ErrFetch, err)
	}
	if env.Partidos == nil {
		env.Partidos = []Match{}
	}

	return env.Partidos, nil
}
