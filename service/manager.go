package service

import (
	"sort"
	"sync/atomic"
	"time"

	"github.com/awesome-cap/hashmap"
	"github.com/ratel-online/core/log"
	"github.com/ratel-online/core/util/async"
	"github.com/uno-arena/server/consts"
	"github.com/uno-arena/server/uno/stats"
)

var tableIds int64 = 0
var players = hashmap.New()
var tables = hashmap.New()
var statsStore = stats.NewMemoryStore()

func init() {
	async.Async(func() {
		for {
			time.Sleep(1 * time.Minute)
			tables.Foreach(func(e *hashmap.Entry) {
				tableCancel(e.Value().(*Table))
			})
		}
	})
}

func CreateTable(host *Player, handSize int) (*Table, error) {
	if host.TableID != 0 {
		return nil, consts.ErrorsTableInvalid
	}
	if handSize < consts.MinHandSize || handSize > consts.MaxHandSize {
		return nil, consts.ErrorsHandSizeInvalid
	}
	table := &Table{
		ID:       atomic.AddInt64(&tableIds, 1),
		HostID:   host.ID,
		State:    consts.TableStateWaiting,
		HandSize: handSize,
		subs:     make(chan submission, 16),
	}
	tables.Set(table.ID, table)
	table.addPlayer(host)
	return table, nil
}

func JoinTable(tableID int64, player *Player) (*Table, error) {
	table := getTable(tableID)
	if table == nil {
		return nil, consts.ErrorsTableInvalid
	}
	table.Lock()
	defer table.Unlock()
	if table.State == consts.TableStateRunning {
		return nil, consts.ErrorsJoinFailForTableRunning
	}
	if len(table.seats) >= consts.MaxPlayers {
		return nil, consts.ErrorsTablePlayersIsFull
	}
	table.addPlayer(player)
	return table, nil
}

func LeaveTable(tableID int64, player *Player) {
	table := getTable(tableID)
	if table == nil {
		return
	}
	table.Lock()
	defer table.Unlock()
	table.removePlayer(player)
}

func GetTables() []*Table {
	list := make([]*Table, 0)
	tables.Foreach(func(e *hashmap.Entry) {
		list = append(list, e.Value().(*Table))
	})
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
	return list
}

func getTable(tableID int64) *Table {
	if v, ok := tables.Get(tableID); ok {
		return v.(*Table)
	}
	return nil
}

func getPlayer(playerID int64) *Player {
	if v, ok := players.Get(playerID); ok {
		return v.(*Player)
	}
	return nil
}

func GetPlayer(playerID int64) *Player {
	return getPlayer(playerID)
}

func Broadcast(tableID int64, msg string, exclude ...int64) {
	table := getTable(tableID)
	if table == nil {
		return
	}
	excludeSet := map[int64]bool{}
	for _, exc := range exclude {
		excludeSet[exc] = true
	}
	for _, playerID := range table.Seats() {
		if player := getPlayer(playerID); player != nil && !excludeSet[playerID] {
			_ = player.WriteString(msg)
		}
	}
}

func deleteTable(table *Table) {
	if table != nil {
		tables.Del(table.ID)
	}
}

// tableCancel removes tables whose players all went offline.
func tableCancel(table *Table) {
	living := false
	for _, playerID := range table.Seats() {
		if player := getPlayer(playerID); player != nil && player.online {
			living = true
			break
		}
	}
	if !living {
		log.Infof("table %d is not living, removed.\n", table.ID)
		deleteTable(table)
	}
}
