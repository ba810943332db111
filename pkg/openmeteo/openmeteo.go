// Package openmeteo fetches marine and general weather forecasts from the
// Open-Meteo APIs for a fixed pair of coordinates. Responses are decoded
// into parallel hourly arrays exactly as the API ships them; zipping them
// into per-hour points is the forecast package's job.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	marineBaseURL  = "https://marine-api.open-meteo.com/v1/marine"
	weatherBaseURL = "https://api.open-meteo.com/v1/forecast"

	fetchTimeout = 10 * time.Second
)

// Client fetches forecasts for one location.
type Client struct {
	Latitude  float64
	Longitude float64

	// MarineURL and WeatherURL override the API endpoints, for tests.
	MarineURL  string
	WeatherURL string

	HTTPClient *http.Client
}

func NewClient(lat, long float64) *Client {
	return &Client{
		Latitude:   lat,
		Longitude:  long,
		MarineURL:  marineBaseURL,
		WeatherURL: weatherBaseURL,
		HTTPClient: &http.Client{Timeout: fetchTimeout},
	}
}

// MarineForecast is the marine API's hourly swell series.
type MarineForecast struct {
	Hourly struct {
		Time               []string  `json:"time"`
		WaveHeight         []float64 `json:"wave_height"`
		WavePeriod         []float64 `json:"wave_period"`
		SwellWaveDirection []float64 `json:"swell_wave_direction"`
		SeaSurfaceTemp     []float64 `json:"sea_surface_temperature"`
	} `json:"hourly"`
	Current struct {
		SeaSurfaceTemp *float64 `json:"sea_surface_temperature"`
	} `json:"current"`
}

// WeatherForecast is the general forecast: current conditions plus parallel
// hourly arrays keyed by the ISO-8601 time array.
type WeatherForecast struct {
	Current struct {
		Temperature   float64 `json:"temperature_2m"`
		WeatherCode   int     `json:"weather_code"`
		WindSpeed     float64 `json:"wind_speed_10m"`
		WindDirection float64 `json:"wind_direction_10m"`
	} `json:"current"`
	Hourly struct {
		Time          []string  `json:"time"`
		Temperature   []float64 `json:"temperature_2m"`
		WeatherCode   []int     `json:"weather_code"`
		WindSpeed     []float64 `json:"wind_speed_10m"`
		WindDirection []float64 `json:"wind_direction_10m"`
	} `json:"hourly"`
}

// Marine fetches the hourly swell forecast.
func (c *Client) Marine(ctx context.Context) (*MarineForecast, error) {
	vals := c.baseQuery()
	vals.Add("hourly", "wave_height,wave_period,swell_wave_direction,sea_surface_temperature")
	vals.Add("current", "sea_surface_temperature")

	var result MarineForecast
	if err := c.getJSON(ctx, c.MarineURL, vals, &result); err != nil {
		return nil, fmt.Errorf("fetch marine forecast: %w", err)
	}
	return &result, nil
}

// Weather fetches current conditions and the hourly wind forecast. Wind
// speeds are requested in knots so no conversion is needed downstream.
func (c *Client) Weather(ctx context.Context) (*WeatherForecast, error) {
	vals := c.baseQuery()
	vals.Add("current", "temperature_2m,weather_code,wind_speed_10m,wind_direction_10m")
	vals.Add("hourly", "temperature_2m,weather_code,wind_speed_10m,wind_direction_10m")
	vals.Add("wind_speed_unit", "kn")
	vals.Add("temperature_unit", "fahrenheit")

	var result WeatherForecast
	if err := c.getJSON(ctx, c.WeatherURL, vals, &result); err != nil {
		return nil, fmt.Errorf("fetch weather forecast: %w", err)
	}
	return &result, nil
}

func (c *Client) baseQuery() url.Values {
	vals := make(url.Values)
	vals.Add("latitude", fmt.Sprintf("%f", c.Latitude))
	vals.Add("longitude", fmt.Sprintf("%f", c.Longitude))
	vals.Add("timezone", "auto")
	vals.Add("forecast_days", "2")
	return vals
}

func (c *Client) getJSON(ctx context.Context, base string, vals url.Values, out interface{}) error {
	addr, err := url.Parse(base)
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
		return fmt.Errorf("forecast API returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
