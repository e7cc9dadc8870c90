package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLeague(t *testing.T) {
	for _, in := range []string{"NBA", "nba", "Nba"} {
		l, err := ParseLeague(in)
		require.NoError(t, err, in)
		assert.Equal(t, LeagueNBA, l)
	}

	l, err := ParseLeague("nfl")
	require.NoError(t, err)
	assert.Equal(t, LeagueNFL, l)

	_, err = ParseLeague("mlb")
	assert.Error(t, err)
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("Bookie")
	require.NoError(t, err)
	assert.Equal(t, RoleBookie, r)

	// Roles are exact: the stored value must round-trip unchanged.
	_, err = ParseRole("bookie")
	assert.Error(t, err)
}

func TestTeamsFor(t *testing.T) {
	assert.Len(t, TeamsFor(LeagueNBA), 30)
	assert.Len(t, TeamsFor(LeagueNFL), 27)
	assert.Nil(t, TeamsFor(League("MLB")))

	// Returned rosters are copies.
	teams := TeamsFor(LeagueNBA)
	teams[0].Name = "changed"
	assert.Equal(t, "Atlanta Hawks", TeamsFor(LeagueNBA)[0].Name)
}

func TestSessionActive(t *testing.T) {
	s := &Session{}
	assert.True(t, s.Active())
}

func TestHasTeam(t *testing.T) {
	assert.True(t, HasTeam(LeagueNBA, "GSW"))
	assert.True(t, HasTeam(LeagueNFL, "GB"))
	assert.False(t, HasTeam(LeagueNFL, "GSW"))
	assert.False(t, HasTeam(LeagueNBA, "gsw"))
	assert.False(t, HasTeam(League("MLB"), "NYY"))
}
