package event

var TurnResolved = &turnResolvedEmitter{}

type TurnResolvedPayload struct {
	MatchID int64
	Turn    int
	ActorID int64
	Summary string
}

type TurnResolvedListener interface {
	OnTurnResolved(TurnResolvedPayload)
}

type turnResolvedEmitter struct {
	listeners []TurnResolvedListener
}

func (e *turnResolvedEmitter) AddListener(listener TurnResolvedListener) {
	e.listeners = append(e.listeners, listener)
}

func (e *turnResolvedEmitter) Emit(payload TurnResolvedPayload) {
	for _, listener := range e.listeners {
		listener.OnTurnResolved(payload)
	}
}
