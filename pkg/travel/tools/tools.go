// Package tools is the closed set of travel tools the assistant may call.
package tools

import (
	"context"

	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/llm/toolx"
)

const (
	GetWeather     = "get_weather"
	GetForecast    = "get_forecast"
	SearchFlights  = "search_flights"
	SearchHotels   = "search_hotels"
	GetAttractions = "get_attractions"
	GetTravelTips  = "get_travel_tips"
)

type weatherArgs struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

type forecastArgs struct {
	City    string `json:"city"`
	Country string `json:"country"`
	Days    int    `json:"days"`
}

type flightArgs struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date"`
}

type hotelArgs struct {
	City     string `json:"city"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Guests   int    `json:"guests"`
}

type attractionArgs struct {
	City     string `json:"city"`
	Category string `json:"category"`
}

type tipArgs struct {
	Destination string `json:"destination"`
}

// New builds the registry of all six travel tools.
func New(weather *WeatherClient, catalog *Catalog) *toolx.Registry {
	return toolx.MustRegistry(
		toolx.NewTool(GetWeather, "Get current weather information for a specific city",
			toolx.Schema{
				Properties: map[string]toolx.Property{
					"city":    toolx.String("The city name"),
					"country": toolx.String("The country name (optional)"),
				},
				Required: []string{"city"},
			},
			func(ctx context.Context, args weatherArgs) (any, error) {
				return weather.Current(ctx, args.City, args.Country)
			}),

		toolx.NewTool(GetForecast, "Get weather forecast for a specific city",
			toolx.Schema{
				Properties: map[string]toolx.Property{
					"city":    toolx.String("The city name"),
					"country": toolx.String("The country name (optional)"),
					"days":    toolx.Integer("Number of days for forecast (1-5)", toolx.Bound(1), toolx.Bound(5)).WithDefault(5),
				},
				Required: []string{"city"},
			},
			func(ctx context.Context, args forecastArgs) (any, error) {
				return weather.Forecast(ctx, args.City, args.Country, args.Days)
			}),

		toolx.NewTool(SearchFlights, "Search for flights between two cities",
			toolx.Schema{
				Properties: map[string]toolx.Property{
					"origin":         toolx.String("Origin city"),
					"destination":    toolx.String("Destination city"),
					"departure_date": toolx.Date("Departure date (YYYY-MM-DD)"),
					"return_date":    toolx.Date("Return date (YYYY-MM-DD, optional)"),
				},
				Required: []string{"origin", "destination", "departure_date"},
			},
			func(ctx context.Context, args flightArgs) (any, error) {
				return catalog.Flights(args.Origin, args.Destination, args.DepartureDate, args.ReturnDate), nil
			}),

		toolx.NewTool(SearchHotels, "Search for hotels in a specific city",
			toolx.Schema{
				Properties: map[string]toolx.Property{
					"city":      toolx.String("The city name"),
					"check_in":  toolx.Date("Check-in date (YYYY-MM-DD)"),
					"check_out": toolx.Date("Check-out date (YYYY-MM-DD)"),
					"guests":    toolx.Integer("Number of guests", toolx.Bound(1), nil).WithDefault(2),
				},
				Required: []string{"city", "check_in", "check_out"},
			},
			func(ctx context.Context, args hotelArgs) (any, error) {
				return catalog.Hotels(args.City, args.CheckIn, args.CheckOut, args.Guests), nil
			}),

		toolx.NewTool(GetAttractions, "Get tourist attractions in a specific city",
			toolx.Schema{
				Properties: map[string]toolx.Property{
					"city": toolx.String("The city name"),
					"category": toolx.String("Category of attractions (historical, cultural, nature, all)").
						WithEnum("historical", "cultural", "nature", CategoryAll).
						WithDefault(CategoryAll),
				},
				Required: []string{"city"},
			},
			func(ctx context.Context, args attractionArgs) (any, error) {
				return catalog.Attractions(args.City, args.Category), nil
			}),

		toolx.NewTool(GetTravelTips, "Get travel tips for a specific destination",
			toolx.Schema{
				Properties: map[string]toolx.Property{
					"destination": toolx.String("The destination name"),
				},
				Required: []string{"destination"},
			},
			func(ctx context.Context, args tipArgs) (any, error) {
				return catalog.Tips(args.Destination), nil
			}),
	)
}
