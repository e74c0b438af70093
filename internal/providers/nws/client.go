package nws

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"nearby-weather/internal/types"
)

// API Docs: https://www.weather.gov/documentation/services-web-api
// Sample requests:
// - https://api.weather.gov/points/44.98,-93.27
// - https://api.weather.gov/gridpoints/MPX/107,71/forecast/hourly
const (
	baseURL = "https://api.weather.gov"
)

// PointAPIResponse carries the gridpoint metadata for a coordinate, including
// the URL of its hourly forecast.
type PointAPIResponse struct {
	Properties struct {
		Cwa            string `json:"cwa"`
		ForecastHourly string `json:"forecastHourly"`
	} `json:"properties"`
}

// HourlyForecastAPIResponse is the subset of the hourly gridpoint forecast we
// read for current conditions (the first period).
type HourlyForecastAPIResponse struct {
	Properties struct {
		Periods []struct {
			Temperature                int    `json:"temperature"`
			TemperatureUnit            string `json:"temperatureUnit"`
			WindSpeed                  string `json:"windSpeed"`
			ShortForecast              string `json:"shortForecast"`
			ProbabilityOfPrecipitation struct {
				Value float64 `json:"value"`
			} `json:"probabilityOfPrecipitation"`
		} `json:"periods"`
	} `json:"properties"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

func NewClient(logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		logger:     logger.With("provider", "nws"),
	}
}

// Name identifies this provider in snapshot source fields.
func (c *Client) Name() string {
	return "nws"
}

// Fetch retrieves current conditions for the given coordinates. NWS requires
// two calls: resolve the coordinate to a gridpoint, then read the first hourly
// forecast period.
func (c *Client) Fetch(ctx context.Context, coords types.Coords) (types.WeatherSnapshot, error) {
	point, err := c.getPoint(ctx, coords.Latitude, coords.Longitude)
	if err != nil {
		return types.WeatherSnapshot{}, err
	}

	hourly, err := c.getHourlyForecast(ctx, point.Properties.ForecastHourly)
	if err != nil {
		return types.WeatherSnapshot{}, err
	}
	if len(hourly.Properties.Periods) == 0 {
		return types.WeatherSnapshot{}, fmt.Errorf("hourly forecast has no periods")
	}

	period := hourly.Properties.Periods[0]
	snapshot := types.NewWeatherSnapshot(
		toFahrenheit(period.Temperature, period.TemperatureUnit),
		conditionCode(period.ShortForecast),
		period.ProbabilityOfPrecipitation.Value/100.0,
		parseWindSpeed(period.WindSpeed),
	)
	// NWS descriptions are richer than the WMO table, keep the original text.
	snapshot.ConditionDescription = period.ShortForecast
	return snapshot, nil
}

func (c *Client) getPoint(ctx context.Context, latitude, longitude float64) (*PointAPIResponse, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	u.Path = fmt.Sprintf("/points/%.4f,%.4f", latitude, longitude)

	var apiResp PointAPIResponse
	if err := c.getJSON(ctx, u.String(), &apiResp); err != nil {
		return nil, err
	}
	return &apiResp, nil
}

func (c *Client) getHourlyForecast(ctx context.Context, forecastURL string) (*HourlyForecastAPIResponse, error) {
	var apiResp HourlyForecastAPIResponse
	if err := c.getJSON(ctx, forecastURL, &apiResp); err != nil {
		return nil, err
	}
	return &apiResp, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/geo+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func toFahrenheit(temperature int, unit string) float64 {
	if strings.EqualFold(unit, "C") {
		return float64(temperature)*9/5 + 32
	}
	return float64(temperature)
}

// parseWindSpeed reads the leading number out of strings like "10 mph" or
// "5 to 10 mph".
func parseWindSpeed(s string) float64 {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0
	}
	return v
}

// conditionCode maps an NWS short forecast onto the WMO vocabulary the rest
// of the system speaks.
func conditionCode(shortForecast string) int {
	f := strings.ToLower(shortForecast)
	switch {
	case strings.Contains(f, "thunder"):
		return int(types.ThunderstormSlightOrModerate)
	case strings.Contains(f, "snow"):
		return int(types.SnowFallSlight)
	case strings.Contains(f, "rain"), strings.Contains(f, "showers"):
		return int(types.RainSlight)
	case strings.Contains(f, "drizzle"):
		return int(types.DrizzleLight)
	case strings.Contains(f, "fog"):
		return int(types.Fog)
	case strings.Contains(f, "partly"):
		return int(types.PartlyCloudy)
	case strings.Contains(f, "cloudy"), strings.Contains(f, "overcast"):
		return int(types.Overcast)
	case strings.Contains(f, "clear"), strings.Contains(f, "sunny"):
		return int(types.ClearSky)
	}
	return int(types.MainlyClear)
}
