package service

import (
	"fmt"
	"time"

	"github.com/ratel-online/core/log"
	"github.com/ratel-online/core/model"
	"github.com/ratel-online/core/network"
	"github.com/ratel-online/core/protocol"
	"github.com/ratel-online/core/util/json"
	"github.com/uno-arena/server/consts"
)

// Player is one connected session. All reads from the connection go through
// the data channel so lobby loops and table pumps can wait with timeouts.
type Player struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	TableID int64  `json:"tableId"`

	conn   *network.Conn
	data   chan *protocol.Packet
	read   bool
	online bool
}

func Connected(conn *network.Conn, info *model.AuthInfo) *Player {
	player := &Player{
		ID:   info.ID,
		Name: info.Name,
		conn: conn,
		data: make(chan *protocol.Packet, 8),
		read: true,
	}
	player.online = true
	players.Set(player.ID, player)
	return player
}

func (p *Player) Listening() error {
	for {
		pack, err := p.conn.Read()
		if err != nil {
			log.Error(err)
			return err
		}
		if p.read {
			p.data <- pack
		}
	}
}

func (p *Player) Offline() {
	p.online = false
	_ = p.conn.Close()
	close(p.data)
	table := getTable(p.TableID)
	if table != nil {
		table.Lock()
		defer table.Unlock()
		Broadcast(table.ID, fmt.Sprintf("%s lost connection!\n", p.Name))
		if table.State == consts.TableStateWaiting {
			table.removePlayer(p)
		}
		tableCancel(table)
	}
}

func (p *Player) WriteString(data string) error {
	time.Sleep(30 * time.Millisecond)
	return p.conn.Write(protocol.Packet{
		Body: []byte(data),
	})
}

func (p *Player) WriteObject(data interface{}) error {
	return p.conn.Write(protocol.Packet{
		Body: json.Marshal(data),
	})
}

func (p *Player) WriteError(err error) error {
	if err == consts.ErrorsExist {
		return err
	}
	return p.conn.Write(protocol.Packet{
		Body: []byte(err.Error() + "\n"),
	})
}

func (p *Player) AskForString(timeout ...time.Duration) (string, error) {
	packet, err := p.askForPacket(timeout...)
	if err != nil {
		return "", err
	}
	return packet.String(), nil
}

func (p *Player) askForPacket(timeout ...time.Duration) (*protocol.Packet, error) {
	var packet *protocol.Packet
	if len(timeout) > 0 {
		select {
		case packet = <-p.data:
		case <-time.After(timeout[0]):
			return nil, consts.ErrorsTimeout
		}
	} else {
		packet = <-p.data
	}
	if packet == nil {
		return nil, consts.ErrorsChanClosed
	}
	return packet, nil
}

func (p *Player) StartTransaction() {
	_ = p.WriteString(consts.IsStart)
}

func (p *Player) StopTransaction() {
	_ = p.WriteString(consts.IsStop)
}

func (p Player) String() string {
	return fmt.Sprintf("%s[%d]", p.Name, p.ID)
}
