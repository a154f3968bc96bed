// Package nominatim resolves free-text place names to Overpass area ids.
package nominatim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/01100100/kreuzungen/overpass"
)

const DefaultEndpoint = "https://nominatim.openstreetmap.org"

// ErrNoArea means no relation matched the place name.
var ErrNoArea = errors.New("no matching area")

type Client struct {
	endpoint string
	http     *http.Client
}

func New(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{endpoint: endpoint, http: &http.Client{Timeout: 10 * time.Second}}
}

// AreaID resolves a place name to the Overpass area id of its boundary
// relation. Transient failures are retried with exponential backoff, as
// Nominatim sheds load aggressively.
func (c *Client) AreaID(ctx context.Context, place string) (int64, error) {
	u := fmt.Sprintf("%s/search?q=%s&format=json&limit=5", c.endpoint, url.QueryEscape(place))

	var results []struct {
		OSMType string `json:"osm_type"`
		OSMID   int64  `json:"osm_id"`
	}
	err := backoff.Retry(func() error {
		req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", "github.com/01100100/kreuzungen")

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			err = fmt.Errorf("unexpected http status %d", resp.StatusCode)
			if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
				return err
			}
			return backoff.Permanent(err)
		}

		return json.NewDecoder(resp.Body).Decode(&results)
	}, backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5), ctx))
	if err != nil {
		return 0, fmt.Errorf("nominatim search %q: %w", place, err)
	}

	for _, r := range results {
		if r.OSMType == "relation" {
			return r.OSMID + overpass.AreaIDOffset, nil
		}
	}
	return 0, fmt.Errorf("nominatim search %q: %w", place, ErrNoArea)
}
