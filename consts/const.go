package consts

import (
	"time"

	"github.com/ratel-online/core/consts"
)

const (
	IsStart = consts.IsStart
	IsStop  = consts.IsStop

	MinPlayers  = 2
	MaxPlayers  = 10
	MinHandSize = 3
	MaxHandSize = 10

	DefaultHandSize = 7

	TableStateWaiting = 1
	TableStateRunning = 2

	// TurnTimeout bounds a whole turn, ChoiceTimeout a single
	// card/color/target sub-choice, ConfirmTimeout a yes/no dialog.
	TurnTimeout    = 60 * time.Second
	ChoiceTimeout  = 7 * time.Second
	ConfirmTimeout = 10 * time.Second
)

type Error struct {
	Code int
	Msg  string
	Exit bool
}

func (e Error) Error() string {
	return e.Msg
}

func NewErr(code int, exit bool, msg string) Error {
	return Error{Code: code, Msg: msg, Exit: exit}
}

var (
	ErrorsExist                   = NewErr(1, true, "Exist. ")
	ErrorsChanClosed              = NewErr(1, true, "Chan closed. ")
	ErrorsTimeout                 = NewErr(1, false, "Timeout. ")
	ErrorsInputInvalid            = NewErr(1, false, "Input invalid. ")
	ErrorsAuthFail                = NewErr(1, true, "Auth fail. ")
	ErrorsTableInvalid            = NewErr(1, false, "Table invalid. ")
	ErrorsTablePlayersIsFull      = NewErr(1, false, "Table players is full. ")
	ErrorsJoinFailForTableRunning = NewErr(1, false, "Join fail, table is running. ")
	ErrorsNotEnoughPlayers        = NewErr(1, false, "Not enough players to start. ")
	ErrorsHandSizeInvalid         = NewErr(1, false, "Hand size must be between 3 and 10. ")
)
