package model

import "slices"

// Team is a franchise a game can be scheduled for.
type Team struct {
	Abbr string `json:"abbr"`
	Name string `json:"name"`
}

var nbaTeams = []Team{
	{"ATL", "Atlanta Hawks"},
	{"BOS", "Boston Celtics"},
	{"BKN", "Brooklyn Nets"},
	{"CHA", "Charlotte Hornets"},
	{"CHI", "Chicago Bulls"},
	{"CLE", "Cleveland Cavaliers"},
	{"DAL", "Dallas Mavericks"},
	{"DEN", "Denver Nuggets"},
	{"DET", "Detroit Pistons"},
	{"GSW", "Golden State Warriors"},
	{"HOU", "Houston Rockets"},
	{"IND", "Indiana Pacers"},
	{"LAC", "Los Angeles Clippers"},
	{"LAL", "Los Angeles Lakers"},
	{"MEM", "Memphis Grizzlies"},
	{"MIA", "Miami Heat"},
	{"MIL", "Milwaukee Bucks"},
	{"MIN", "Minnesota Timberwolves"},
	{"NOP", "New Orleans Pelicans"},
	{"NYK", "New York Knicks"},
	{"OKC", "Oklahoma City Thunder"},
	{"ORL", "Orlando Magic"},
	{"PHI", "Philadelphia 76ers"},
	{"PHX", "Phoenix Suns"},
	{"POR", "Portland Trailblazers"},
	{"SAC", "Sacramento Kings"},
	{"SAS", "San Antonio Spurs"},
	{"TOR", "Toronto Raptors"},
	{"UTA", "Utah Jazz"},
	{"WAS", "Washington Wizards"},
}

var nflTeams = []Team{
	{"ATL", "Atlanta Falcons"},
	{"ARI", "Arizona Cardinals"},
	{"BAL", "Baltimore Ravens"},
	{"BUF", "Buffalo Bills"},
	{"CHI", "Chicago Bears"},
	{"CIN", "Cincinnati Bengals"},
	{"CLE", "Cleveland Browns"},
	{"DAL", "Dallas Cowboys"},
	{"DEN", "Denver Broncos"},
	{"DET", "Detroit Lions"},
	{"GB", "Green Bay Packers"},
	{"HOU", "Houston Texans"},
	{"IND", "Indianapolis Colts"},
	{"JAX", "Jacksonville Jaguars"},
	{"KC", "Kansas City Chiefs"},
	{"LAC", "Los Angeles Chargers"},
	{"LAR", "Los Angeles Rams"},
	{"MIA", "Miami Dolphins"},
	{"LV", "Las Vegas Raiders"},
	{"NE", "New England Patriots"},
	{"NYG", "New York Giants"},
	{"NYJ", "New York Jets"},
	{"PIT", "Pittsburgh Steelers"},
	{"SEA", "Seattle Seahawks"},
	{"SF", "San Francisco 49ers"},
	{"TEN", "Tennessee Titans"},
	{"WAS", "Washington Commanders"},
}

// TeamsFor returns a copy of the roster for league, or nil for an unknown
// league. Callers may modify the returned slice.
func TeamsFor(league League) []Team {
	var src []Team
	switch league {
	case LeagueNBA:
		src = nbaTeams
	case LeagueNFL:
		src = nflTeams
	default:
		return nil
	}
	out := make([]Team, len(src))
	copy(out, src)
	return out
}

// HasTeam reports whether abbr is on league's roster.
func HasTeam(league League, abbr string) bool {
	switch league {
	case LeagueNBA:
		return slices.ContainsFunc(nbaTeams, func(t Team) bool { return t.Abbr == abbr })
	case LeagueNFL:
		return slices.ContainsFunc(nflTeams, func(t Team) bool { return t.Abbr == abbr })
	}
	return false
}
