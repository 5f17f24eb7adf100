package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/llm/toolx"
)

const DefaultWeatherBaseURL = "http://api.openweathermap.org/data/2.5"

// WeatherConfig points the weather tools at an OpenWeatherMap compatible API.
type WeatherConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type Weather struct {
	City        string  `json:"city"`
	Country     string  `json:"country"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	Description string  `json:"description"`
	WindSpeed   float64 `json:"wind_speed"`
}

type DailyForecast struct {
	Date        string  `json:"date"`
	Temperature float64 `json:"temperature"`
	Description string  `json:"description"`
	Humidity    int     `json:"humidity"`
}

type Forecast struct {
	City      string          `json:"city"`
	Country   string          `json:"country"`
	Forecasts []DailyForecast `json:"forecasts"`
}

// WeatherClient talks to the current-weather and 3-hourly forecast endpoints.
type WeatherClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewWeatherClient(cfg WeatherConfig) *WeatherClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultWeatherBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WeatherClient{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type owmConditions struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

func (c owmConditions) description() string {
	if len(c.Weather) == 0 {
		return ""
	}
	return c.Weather[0].Description
}

type owmCurrent struct {
	owmConditions
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

type owmForecast struct {
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"city"`
	List []struct {
		owmConditions
		DtTxt string `json:"dt_txt"`
	} `json:"list"`
}

func location(city, country string) string {
	if country == "" {
		return city
	}
	return city + "," + country
}

// get returns false when the API answered with a non-200 status.
func (c *WeatherClient) get(ctx context.Context, path string, query url.Values, out any) (bool, error) {
	query.Set("appid", c.apiKey)
	query.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return false, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("decode weather response: %w", err)
	}
	return true, nil
}

func (c *WeatherClient) Current(ctx context.Context, city, country string) (*Weather, error) {
	if c.apiKey == "" {
		return nil, toolx.Failf("Weather API key not configured")
	}

	var body owmCurrent
	ok, err := c.get(ctx, "/weather", url.Values{"q": {location(city, country)}}, &body)
	if err != nil {
		return nil, toolx.Failf("Error fetching weather: %s", err)
	}
	if !ok {
		return nil, toolx.Failf("Weather data not found for %s", city)
	}

	return &Weather{
		City:        body.Name,
		Country:     body.Sys.Country,
		Temperature: body.Main.Temp,
		FeelsLike:   body.Main.FeelsLike,
		Humidity:    body.Main.Humidity,
		Description: body.description(),
		WindSpeed:   body.Wind.Speed,
	}, nil
}

// Forecast returns one sample per day out of the 3-hourly series.
func (c *WeatherClient) Forecast(ctx context.Context, city, country string, days int) (*Forecast, error) {
	if c.apiKey == "" {
		return nil, toolx.Failf("Weather API key not configured")
	}

	query := url.Values{
		"q":   {location(city, country)},
		"cnt": {strconv.Itoa(days * 8)},
	}
	var body owmForecast
	ok, err := c.get(ctx, "/forecast", query, &body)
	if err != nil {
		return nil, toolx.Failf("Error fetching forecast: %s", err)
	}
	if !ok {
		return nil, toolx.Failf("Forecast data not found for %s", city)
	}

	out := &Forecast{City: body.City.Name, Country: body.City.Country, Forecasts: []DailyForecast{}}
	for i := 0; i < len(body.List); i += 8 {
		item := body.List[i]
		date, _, _ := strings.Cut(item.DtTxt, " ")
		out.Forecasts = append(out.Forecasts, DailyForecast{
			Date:        date,
			Temperature: item.Main.Temp,
			Description: item.description(),
			Humidity:    item.Main.Humidity,
		})
	}
	return out, nil
}
