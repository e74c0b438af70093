package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"nearby-weather/internal/types"
)

// API Docs: https://open-meteo.com/en/docs
// Sample request:
// https://api.open-meteo.com/v1/forecast?latitude=44.98&longitude=-93.27&current=temperature_2m,weather_code,precipitation_probability,wind_speed_10m&temperature_unit=fahrenheit&wind_speed_unit=mph
const (
	baseForecastURL = "https://api.open-meteo.com/v1/forecast"
)

// CurrentAPIResponse is the subset of the Open-Meteo forecast response we
// request for current conditions.
type CurrentAPIResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Current   struct {
		Time                     string  `json:"time"`
		Temperature2M            float64 `json:"temperature_2m"`
		WeatherCode              int     `json:"weather_code"`
		PrecipitationProbability float64 `json:"precipitation_probability"`
		WindSpeed10M             float64 `json:"wind_speed_10m"`
	} `json:"current"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

func NewClient(logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    baseForecastURL,
		logger:     logger.With("provider", "open-meteo"),
	}
}

// Name identifies this provider in snapshot source fields.
func (c *Client) Name() string {
	return "open-meteo"
}

// Fetch retrieves current conditions for the given coordinates.
func (c *Client) Fetch(ctx context.Context, coords types.Coords) (types.WeatherSnapshot, error) {
	apiResp, err := c.getCurrent(ctx, coords.Latitude, coords.Longitude)
	if err != nil {
		return types.WeatherSnapshot{}, err
	}

	snapshot := types.NewWeatherSnapshot(
		apiResp.Current.Temperature2M,
		apiResp.Current.WeatherCode,
		apiResp.Current.PrecipitationProbability/100.0,
		apiResp.Current.WindSpeed10M,
	)
	return snapshot, nil
}

func (c *Client) getCurrent(ctx context.Context, latitude, longitude float64) (*CurrentAPIResponse, error) {
	// Build URL with query parameters
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("latitude", fmt.Sprintf("%f", latitude))
	q.Set("longitude", fmt.Sprintf("%f", longitude))
	q.Set("current", "temperature_2m,weather_code,precipitation_probability,wind_speed_10m")
	q.Set("temperature_unit", "fahrenheit")
	q.Set("wind_speed_unit", "mph")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(body))
	}

	// Parse the JSON response
	var apiResp CurrentAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug("fetched current conditions",
		"latitude", latitude,
		"longitude", longitude,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &apiResp, nil
}
