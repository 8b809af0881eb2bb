package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mbbank-monitor/internal/config"
	"mbbank-monitor/internal/model"
	"mbbank-monitor/pkg/logger"
)

const baseURL = "https://api.weatherapi.com/v1/current.json"

// Client fetches current conditions from weatherapi.com. Failures are
// reported to the caller but treated as "no data" by the monitor, never fatal.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	coordinates string
	logger      *logger.Logger
}

// NewClient creates a new weather client
func NewClient(cfg *config.WeatherConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL:     baseURL,
		apiKey:      cfg.APIKey,
		coordinates: cfg.Coordinates,
		logger:      log,
	}
}

// Current fetches current conditions for the configured coordinates
func (c *Client) Current(ctx context.Context) (*model.Weather, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("weather API key not configured")
	}

	query := url.Values{}
	query.Set("key", c.apiKey)
	query.Set("q", c.coordinates)
	query.Set("aqi", "no")

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("weather API error: %d, %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var weather model.Weather
	if err := json.NewDecoder(resp.Body).Decode(&weather); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}

	return &weather, nil
}

// ConditionEmoji maps a weather condition description to an emoji
func ConditionEmoji(condition string) string {
	condition = strings.ToLower(condition)

	switch {
	case strings.Contains(condition, "sunny") || strings.Contains(condition, "clear"):
		return "☀️"
	case strings.Contains(condition, "partly cloudy"):
		return "⛅"
	case strings.Contains(condition, "cloudy") || strings.Contains(condition, "overcast"):
		return "☁️"
	case strings.Contains(condition, "rain") || strings.Contains(condition, "drizzle"):
		return "🌧"
	case strings.Contains(condition, "thunder") || strings.Contains(condition, "lightning"):
		return "⛈"
	case strings.Contains(condition, "snow"):
		return "❄️"
	case strings.Contains(condition, "fog") || strings.Contains(condition, "mist"):
		return "🌫"
	default:
		return "🌤"
	}
}
