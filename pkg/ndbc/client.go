package ndbc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	feedBaseURL  = "https://www.ndbc.noaa.gov/data/realtime2"
	fetchTimeout = 8 * time.Second
)

// Client fetches the spectral wave feed for one buoy.
type Client struct {
	Station string

	// BaseURL overrides the NDBC endpoint, for tests.
	BaseURL string

	HTTPClient *http.Client
}

func NewClient(station string) *Client {
	return &Client{
		Station:    station,
		BaseURL:    feedBaseURL,
		HTTPClient: &http.Client{Timeout: fetchTimeout},
	}
}

// Latest fetches and parses the buoy's most recent observation.
func (c *Client) Latest(ctx context.Context) (Reading, error) {
	addr := fmt.Sprintf("%s/%s.spec", c.BaseURL, c.Station)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return Reading{}, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Reading{}, fmt.Errorf("fetch buoy feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Reading{}, fmt.Errorf("%w: buoy feed returned status %d", ErrNoData, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Reading{}, fmt.Errorf("read buoy feed: %w", err)
	}
	return Parse(string(body))
}
