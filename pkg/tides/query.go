package tides

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	noaaURL = "https://api.tidesandcurrents.noaa.gov/api/prod/datagetter"
	dateFmt = "20060102"

	fetchTimeout = 8 * time.Second
)

var errNoObservation = errors.New("no water level observation")

// Client queries one NOAA tide station.
type Client struct {
	Station Station

	// BaseURL overrides the NOAA endpoint, for tests.
	BaseURL string

	HTTPClient *http.Client
}

func NewClient(station Station) *Client {
	return &Client{
		Station:    station,
		BaseURL:    noaaURL,
		HTTPClient: &http.Client{Timeout: fetchTimeout},
	}
}

// Predictions fetches high/low tide predictions covering [start, end].
func (c *Client) Predictions(ctx context.Context, start, end time.Time) (Predictions, error) {
	vals := c.baseQuery()
	vals.Add("begin_date", start.Format(dateFmt))
	vals.Add("end_date", end.Format(dateFmt))
	vals.Add("product", "predictions")
	vals.Add("interval", "hilo")

	var result predictionsResult
	if err := c.getJSON(ctx, vals, &result); err != nil {
		return nil, fmt.Errorf("fetch tide predictions: %w", err)
	}
	if len(result.Predictions) == 0 {
		return nil, errors.New("station returned no predictions")
	}
	return result.Predictions, nil
}

// LatestObservation fetches the most recent observed water level in feet.
func (c *Client) LatestObservation(ctx context.Context) (float64, error) {
	vals := c.baseQuery()
	vals.Add("product", "water_level")
	vals.Add("date", "latest")

	var result observationResult
	if err := c.getJSON(ctx, vals, &result); err != nil {
		return 0, fmt.Errorf("fetch water level: %w", err)
	}
	if len(result.Data) == 0 {
		return 0, errNoObservation
	}
	return float64(result.Data[0].Value), nil
}

func (c *Client) baseQuery() url.Values {
	vals := make(url.Values)
	vals.Add("station", fmt.Sprintf("%d", c.Station))
	vals.Add("datum", "MLLW")
	vals.Add("time_zone", "lst_ldt")
	vals.Add("units", "english")
	vals.Add("format", "json")
	return vals
}

func (c *Client) getJSON(ctx context.Context, vals url.Values, out interface{}) error {
	addr, err := url.Parse(c.BaseURL)
	if err != nil {
		return err
	}
	addr.RawQuery = vals.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr.String(), nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("station returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
