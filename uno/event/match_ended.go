package event

var MatchEnded = &matchEndedEmitter{}

type MatchEndedPayload struct {
	MatchID  int64
	WinnerID int64
	Reason   string
	Summary  string
}

type MatchEndedListener interface {
	OnMatchEnded(MatchEndedPayload)
}

type matchEndedEmitter struct {
	listeners []MatchEndedListener
}

func (e *matchEndedEmitter) AddListener(listener MatchEndedListener) {
	e.listeners = append(e.listeners, listener)
}

func (e *matchEndedEmitter) Emit(payload MatchEndedPayload) {
	for _, listener := range e.listeners {
		listener.OnMatchEnded(payload)
	}
}
