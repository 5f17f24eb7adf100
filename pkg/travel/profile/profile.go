// Package profile provides the static traveller profiles used to
// personalize answers.
package profile

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/errx"
	"gopkg.in/yaml.v3"
)

//go:embed profiles.yaml
var profilesYAML []byte

var ErrRegistry = errx.NewRegistry("PROFILE")

var ErrNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Profile not found")

type Preferences struct {
	Budget         string   `yaml:"budget" json:"budget"`
	Accommodation  []string `yaml:"accommodation" json:"accommodation"`
	Transport      []string `yaml:"transport" json:"transport"`
	Food           []string `yaml:"food" json:"food"`
	Activities     []string `yaml:"activities" json:"activities"`
	Language       string   `yaml:"language" json:"language,omitempty"`
	Currency       string   `yaml:"currency" json:"currency,omitempty"`
	SeatPreference string   `yaml:"seat_preference" json:"seat_preference,omitempty"`
	RoomPreference string   `yaml:"room_preference" json:"room_preference,omitempty"`
}

type SpecialNeeds struct {
	Mobility  bool     `yaml:"mobility" json:"mobility"`
	Diet      string   `yaml:"diet" json:"diet,omitempty"`
	Allergies []string `yaml:"allergies" json:"allergies,omitempty"`
}

// String renders the needs on one line, "none" when there are none.
func (s SpecialNeeds) String() string {
	var parts []string
	if s.Mobility {
		parts = append(parts, "mobility assistance")
	}
	if s.Diet != "" {
		parts = append(parts, "diet: "+s.Diet)
	}
	if len(s.Allergies) > 0 {
		parts = append(parts, "allergies: "+strings.Join(s.Allergies, ", "))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "; ")
}

type Trip struct {
	Destination   string  `yaml:"destination" json:"destination"`
	Date          string  `yaml:"date" json:"date"`
	Purpose       string  `yaml:"purpose" json:"purpose"`
	Duration      int     `yaml:"duration" json:"duration,omitempty"`
	Accommodation string  `yaml:"accommodation" json:"accommodation,omitempty"`
	Rating        float64 `yaml:"rating" json:"rating,omitempty"`
}

type LoyaltyProgram struct {
	Program string `yaml:"program" json:"program"`
	Tier    string `yaml:"tier" json:"tier,omitempty"`
	Number  string `yaml:"number" json:"-"`
}

func (l LoyaltyProgram) String() string {
	if l.Tier == "" {
		return l.Program
	}
	return fmt.Sprintf("%s (%s)", l.Program, l.Tier)
}

type Profile struct {
	UserID          string           `yaml:"user_id" json:"user_id"`
	Name            string           `yaml:"name" json:"name"`
	Email           string           `yaml:"email" json:"email,omitempty"`
	Country         string           `yaml:"country" json:"country,omitempty"`
	Preferences     Preferences      `yaml:"preferences" json:"preferences"`
	SpecialNeeds    SpecialNeeds     `yaml:"special_needs" json:"special_needs"`
	TravelHistory   []Trip           `yaml:"travel_history" json:"travel_history"`
	LoyaltyPrograms []LoyaltyProgram `yaml:"loyalty_programs" json:"loyalty_programs"`
}

// RecentTrips returns up to n trips, most recent last.
func (p *Profile) RecentTrips(n int) []Trip {
	trips := append([]Trip(nil), p.TravelHistory...)
	sort.SliceStable(trips, func(i, j int) bool { return trips[i].Date < trips[j].Date })
	if len(trips) > n {
		trips = trips[len(trips)-n:]
	}
	return trips
}

// Provider looks up a user's profile.
type Provider interface {
	Get(ctx context.Context, userID string) (*Profile, error)
}

// Static serves profiles loaded once from YAML.
type Static struct {
	profiles map[string]*Profile
}

var _ Provider = (*Static)(nil)

// Default returns the embedded profiles.
func Default() (*Static, error) {
	return Parse(profilesYAML)
}

func Parse(data []byte) (*Static, error) {
	var doc struct {
		Profiles []*Profile `yaml:"profiles"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}
	s := &Static{profiles: make(map[string]*Profile, len(doc.Profiles))}
	for _, p := range doc.Profiles {
		if p.UserID == "" {
			return nil, fmt.Errorf("profile %q has no user_id", p.Name)
		}
		s.profiles[p.UserID] = p
	}
	return s, nil
}

func (s *Static) Get(ctx context.Context, userID string) (*Profile, error) {
	p, ok := s.profiles[userID]
	if !ok {
		return nil, ErrRegistry.New(ErrNotFound).WithDetail("user_id", userID)
	}
	return p, nil
}
