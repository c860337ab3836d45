package roster

import (
	"sort"
	"strings"

	"github.com/webstats/crm/pkg/dtos"
	"github.com/webstats/crm/pkg/scraper"
)

// ProbableEleven estimates the rival's starting lineup: players with minutes
// on record, ordered by minutes then starts then appearances, with the
// top goalkeeper guaranteed a slot.
func ProbableEleven(entries []scraper.RosterEntry) []scraper.RosterEntry {
	var eligible []scraper.RosterEntry
	for _, entry := range entries {
		if entry.Minutes > 0 {
			eligible = append(eligible, entry)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].Minutes != eligible[j].Minutes {
			return eligible[i].Minutes > eligible[j].Minutes
		}
		if eligible[i].Starts != eligible[j].Starts {
			return eligible[i].Starts > eligible[j].Starts
		}
		return eligible[i].Appearances > eligible[j].Appearances
	})

	var lineup []scraper.RosterEntry
	for _, entry := range eligible {
		if strings.Contains(strings.ToLower(entry.Position), "portero") {
			lineup = append(lineup, entry)
			break
		}
	}
	for _, entry := range eligible {
		if len(lineup) >= 11 {
			break
		}
		if len(lineup) > 0 && lineup[0] == entry {
			continue
		}
		lineup = append(lineup, entry)
	}
	if len(lineup) > 11 {
		lineup = lineup[:11]
	}
	return lineup
}

// rivalInsights picks the three most dangerous players by goals, minutes
// and accumulated cards (a red counts double).
func rivalInsights(entries []scraper.RosterEntry) (scorers, minutes, cards []scraper.RosterEntry) {
	scorers = topThree(entries, func(i, j scraper.RosterEntry) bool {
		if i.Goals != j.Goals {
			return i.Goals > j.Goals
		}
		return i.Minutes > j.Minutes
	})
	minutes = topThree(entries, func(i, j scraper.RosterEntry) bool {
		return i.Minutes > j.Minutes
	})
	cards = topThree(entries, func(i, j scraper.RosterEntry) bool {
		return i.RedCards*2+i.YellowCards > j.RedCards*2+j.YellowCards
	})
	return scorers, minutes, cards
}

func topThree(entries []scraper.RosterEntry, less func(i, j scraper.RosterEntry) bool) []scraper.RosterEntry {
	sorted := make([]scraper.RosterEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	if len(sorted) > 3 {
		sorted = sorted[:3]
	}
	return sorted
}

func rivalAnalysisDTO(entries []scraper.RosterEntry) *dtos.RivalAnalysisDTO {
	scorers, minutes, cards := rivalInsights(entries)
	return &dtos.RivalAnalysisDTO{
		SquadSize:      len(entries),
		ProbableEleven: rivalPlayers(ProbableEleven(entries)),
		TopScorers:     rivalPlayers(scorers),
		MostMinutes:    rivalPlayers(minutes),
		MostCards:      rivalPlayers(cards),
	}
}

func rivalPlayers(entries []scraper.RosterEntry) []dtos.RivalPlayerDTO {
	out := make([]dtos.RivalPlayerDTO, 0, len(entries))
	for _, entry := range entries {
		out = append(out, dtos.RivalPlayerDTO{
			Name:        entry.Name,
			Position:    entry.Position,
			Age:         entry.Age,
			Appearances: entry.Appearances,
			Starts:      entry.Starts,
			Minutes:     entry.Minutes,
			Goals:       entry.Goals,
			YellowCards: entry.YellowCards,
			RedCards:    entry.RedCards,
		})
	}
	return out
}
