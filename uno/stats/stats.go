package stats

import (
	"sort"

	"github.com/ratel-online/core/log"
	"github.com/uno-arena/server/uno/game"
)

// Record is a player's cumulative leaderboard line.
type Record struct {
	PlayerID     int64  `json:"playerId"`
	Name         string `json:"name"`
	Wins         int    `json:"wins"`
	Played       int    `json:"played"`
	CardsDrawn   int    `json:"cardsDrawn"`
	CardsPlayed  int    `json:"cardsPlayed"`
	TurnsSkipped int    `json:"turnsSkipped"`
}

func (r Record) WinRate() float64 {
	if r.Played == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Played)
}

// Store is the persistence contract. Updates are issued once per player per
// completed match, so last-writer-wins is acceptable.
type Store interface {
	Get(playerID int64) (Record, bool)
	Upsert(playerID int64, record Record) error
}

// Summarize folds a finished match into updated records: one match played
// per player, one win for the winner, and the per-match counters added to
// the cumulative totals. It reads the store but writes nothing.
func Summarize(players []*game.Player, winnerID int64, store Store) map[int64]Record {
	records := make(map[int64]Record, len(players))
	for _, player := range players {
		record, found := store.Get(player.ID)
		if !found {
			record = Record{PlayerID: player.ID}
		}
		record.Name = player.Name
		record.Played++
		if player.ID == winnerID {
			record.Wins++
		}
		record.CardsDrawn += player.DrawnCount
		record.CardsPlayed += player.PlayedCount
		record.TurnsSkipped += player.SkippedCount
		records[player.ID] = record
	}
	return records
}

// Publish writes the summarized records through the store. Failures are
// logged and swallowed; a broken stats store never affects the match.
func Publish(store Store, players []*game.Player, winnerID int64) {
	if store == nil {
		return
	}
	for playerID, record := range Summarize(players, winnerID, store) {
		if err := store.Upsert(playerID, record); err != nil {
			log.Error(err)
		}
	}
}

// minRankedGames separates the win-rate leaderboard: players below it are
// ranked after everyone else, as a win rate over a handful of games says
// little.
const minRankedGames = 20

func SortByWins(records []Record) []Record {
	sorted := append([]Record(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Wins != sorted[j].Wins {
			return sorted[i].Wins > sorted[j].Wins
		}
		return sorted[i].Played > sorted[j].Played
	})
	filtered := sorted[:0]
	for _, record := range sorted {
		if record.Wins > 0 {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

func SortByWinRate(records []Record) []Record {
	var ranked, provisional []Record
	for _, record := range records {
		switch {
		case record.Played >= minRankedGames:
			ranked = append(ranked, record)
		case record.Played > 0 && record.Wins > 0:
			provisional = append(provisional, record)
		}
	}
	byRate := func(records []Record) {
		sort.SliceStable(records, func(i, j int) bool {
			if records[i].WinRate() != records[j].WinRate() {
				return records[i].WinRate() > records[j].WinRate()
			}
			if records[i].Played != records[j].Played {
				return records[i].Played > records[j].Played
			}
			return records[i].Wins > records[j].Wins
		})
	}
	byRate(ranked)
	byRate(provisional)
	return append(ranked, provisional...)
}
