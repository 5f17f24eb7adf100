package tools

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

type Flight struct {
	Airline       string `json:"airline"`
	FlightNumber  string `json:"flight_number"`
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time"`
	Price         int    `json:"price"`
	Duration      string `json:"duration"`
	Stops         int    `json:"stops"`
}

type FlightSearch struct {
	Origin        string   `json:"origin"`
	Destination   string   `json:"destination"`
	DepartureDate string   `json:"departure_date"`
	ReturnDate    string   `json:"return_date,omitempty"`
	Flights       []Flight `json:"flights"`
}

type Hotel struct {
	Name          string   `json:"name"`
	Rating        float64  `json:"rating"`
	PricePerNight int      `json:"price_per_night"`
	Amenities     []string `json:"amenities"`
	Location      string   `json:"location"`
	Availability  string   `json:"availability"`
}

type HotelSearch struct {
	City     string  `json:"city"`
	CheckIn  string  `json:"check_in"`
	CheckOut string  `json:"check_out"`
	Guests   int     `json:"guests"`
	Hotels   []Hotel `json:"hotels"`
}

type Attraction struct {
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Rating       float64 `json:"rating"`
	Description  string  `json:"description"`
	OpeningHours string  `json:"opening_hours"`
	EntryFee     string  `json:"entry_fee"`
}

type Attractions struct {
	City        string       `json:"city"`
	Category    string       `json:"category"`
	Attractions []Attraction `json:"attractions"`
}

type TravelTips struct {
	Destination string            `json:"destination"`
	Tips        map[string]string `json:"tips"`
}

const CategoryAll = "all"

var attractionCatalog = []Attraction{
	{
		Name:         "Historic Cathedral",
		Category:     "historical",
		Rating:       4.6,
		Description:  "Beautiful 12th-century cathedral with stunning architecture",
		OpeningHours: "9:00 AM - 6:00 PM",
		EntryFee:     "$10",
	},
	{
		Name:         "City Art Museum",
		Category:     "cultural",
		Rating:       4.4,
		Description:  "Modern art museum featuring contemporary works",
		OpeningHours: "10:00 AM - 8:00 PM",
		EntryFee:     "$15",
	},
	{
		Name:         "Central Park",
		Category:     "nature",
		Rating:       4.7,
		Description:  "Large urban park perfect for walking and picnics",
		OpeningHours: "24 hours",
		EntryFee:     "Free",
	},
}

var generalTips = map[string]string{
	"transportation": "Use public transport cards for better rates",
	"safety":         "Keep copies of important documents in separate locations",
	"culture":        "Learn basic local phrases to enhance your experience",
	"money":          "Notify your bank of travel plans to avoid card issues",
}

// Catalog serves the sample flight, hotel, attraction and tip data.
// Prices, flight numbers and durations are randomized per call.
type Catalog struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewCatalog() *Catalog {
	seed := uint64(time.Now().UnixNano())
	return NewSeededCatalog(seed)
}

// NewSeededCatalog returns a catalog with reproducible random values.
func NewSeededCatalog(seed uint64) *Catalog {
	return &Catalog{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// between returns a value in [lo, hi].
func (c *Catalog) between(lo, hi int) int {
	return lo + c.rnd.IntN(hi-lo+1)
}

func (c *Catalog) flight(airline, prefix, dep, arr string) Flight {
	return Flight{
		Airline:       airline,
		FlightNumber:  fmt.Sprintf("%s%d", prefix, c.between(100, 999)),
		DepartureTime: dep,
		ArrivalTime:   arr,
		Price:         c.between(200, 800),
		Duration:      fmt.Sprintf("%dh %dm", c.between(2, 12), c.between(0, 59)),
		Stops:         c.between(0, 2),
	}
}

func (c *Catalog) Flights(origin, destination, departure, ret string) *FlightSearch {
	c.mu.Lock()
	defer c.mu.Unlock()

	return &FlightSearch{
		Origin:        origin,
		Destination:   destination,
		DepartureDate: departure,
		ReturnDate:    ret,
		Flights: []Flight{
			c.flight("Air Travel Plus", "AT", "08:30", "14:45"),
			c.flight("Sky Connect", "SC", "12:15", "18:30"),
		},
	}
}

func (c *Catalog) Hotels(city, checkIn, checkOut string, guests int) *HotelSearch {
	c.mu.Lock()
	defer c.mu.Unlock()

	return &HotelSearch{
		City:     city,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   guests,
		Hotels: []Hotel{
			{
				Name:          "Grand Plaza Hotel",
				Rating:        4.5,
				PricePerNight: c.between(80, 300),
				Amenities:     []string{"WiFi", "Pool", "Spa", "Restaurant"},
				Location:      "City Center",
				Availability:  "Available",
			},
			{
				Name:          "Comfort Inn & Suites",
				Rating:        4.2,
				PricePerNight: c.between(60, 200),
				Amenities:     []string{"WiFi", "Breakfast", "Gym", "Parking"},
				Location:      "Downtown",
				Availability:  "Available",
			},
			{
				Name:          "Luxury Resort & Spa",
				Rating:        4.8,
				PricePerNight: c.between(200, 500),
				Amenities:     []string{"WiFi", "Pool", "Spa", "Restaurant", "Beach Access"},
				Location:      "Beachfront",
				Availability:  "Limited",
			},
		},
	}
}

// Attractions filters the catalog by category; "all" keeps everything.
func (c *Catalog) Attractions(city, category string) *Attractions {
	out := &Attractions{City: city, Category: category, Attractions: []Attraction{}}
	for _, a := range attractionCatalog {
		if category == CategoryAll || a.Category == category {
			out.Attractions = append(out.Attractions, a)
		}
	}
	return out
}

func (c *Catalog) Tips(destination string) *TravelTips {
	tips := make(map[string]string, len(generalTips))
	for k, v := range generalTips {
		tips[k] = v
	}
	return &TravelTips{Destination: destination, Tips: tips}
}
