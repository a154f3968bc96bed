// Package strava is a minimal client for the slice of the Strava v3 API the
// pipeline needs, plus the token exchange against the Kreuzungen auth
// service.
package strava

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultAPIURL = "https://www.strava.com/api/v3"

type Client struct {
	apiURL  string
	authURL string
	http    *http.Client
}

// New returns a client exchanging tokens against authURL. apiURL falls back
// to the public Strava API when empty.
func New(apiURL, authURL string) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	return &Client{
		apiURL:  apiURL,
		authURL: authURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Activity is the subset of activity fields the pipeline consumes.
type Activity struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Map         struct {
		SummaryPolyline string `json:"summary_polyline"`
	} `json:"map"`
}

// AccessToken trades a stored refresh token for a short-lived access token
// via the auth service, which holds the client secret.
func (c *Client) AccessToken(ctx context.Context, refreshToken string) (string, error) {
	form := url.Values{"refreshToken": {refreshToken}}
	req, err := http.NewRequestWithContext(ctx, "POST", c.authURL+"/reoauth", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("get access token: unexpected http status %d", resp.StatusCode)
	}

	var data struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", err
	}
	if data.AccessToken == "" {
		return "", fmt.Errorf("auth service returned no access token")
	}
	return data.AccessToken, nil
}

// Activity fetches one activity.
func (c *Client) Activity(ctx context.Context, id int64, accessToken string) (*Activity, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/activities/%d", c.apiURL, id), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get activity %d: unexpected http status %d", id, resp.StatusCode)
	}

	var activity Activity
	if err := json.NewDecoder(resp.Body).Decode(&activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

// UpdateDescription replaces an activity's description.
func (c *Client) UpdateDescription(ctx context.Context, id int64, accessToken, description string) error {
	body, err := json.Marshal(map[string]string{"description": description})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, "PUT", fmt.Sprintf("%s/activities/%d", c.apiURL, id), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, err := io.ReadAll(resp.Body)
		if err != nil {
			msg = nil
		}
		return fmt.Errorf("update activity %d description: unexpected http status %d: %s", id, resp.StatusCode, msg)
	}
	return nil
}
