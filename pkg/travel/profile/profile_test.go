package profile

import (
	"context"
	"testing"

	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProfiles(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	p, err := s.Get(context.Background(), "user_001")
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", p.Name)
	assert.Equal(t, "mid-range", p.Preferences.Budget)
	assert.Equal(t, "diet: vegetarian; allergies: peanuts", p.SpecialNeeds.String())

	recent := p.RecentTrips(3)
	require.Len(t, recent, 3)
	assert.Equal(t, "Rome", recent[0].Destination)
	assert.Equal(t, "Paris", recent[2].Destination)
}

func TestGetUnknownUser(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "nobody")
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, ErrNotFound))
}

func TestLoyaltyProgramString(t *testing.T) {
	assert.Equal(t, "SkyTeam", LoyaltyProgram{Program: "SkyTeam"}.String())
	assert.Equal(t, "Marriott Bonvoy (Gold)", LoyaltyProgram{Program: "Marriott Bonvoy", Tier: "Gold"}.String())
	assert.Equal(t, "none", SpecialNeeds{}.String())
}

func TestParseRequiresUserID(t *testing.T) {
	_, err := Parse([]byte("profiles:\n  - name: Anonymous\n"))
	require.Error(t, err)
}
