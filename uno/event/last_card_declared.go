package event

var LastCardDeclared = &lastCardDeclaredEmitter{}

type LastCardDeclaredPayload struct {
	MatchID    int64
	PlayerID   int64
	PlayerName string
}

type LastCardDeclaredListener interface {
	OnLastCardDeclared(LastCardDeclaredPayload)
}

type lastCardDeclaredEmitter struct {
	listeners []LastCardDeclaredListener
}

func (e *lastCardDeclaredEmitter) AddListener(listener LastCardDeclaredListener) {
	e.listeners = append(e.listeners, listener)
}

func (e *lastCardDeclaredEmitter) Emit(payload LastCardDeclaredPayload) {
	for _, listener := range e.listeners {
		listener.OnLastCardDeclared(payload)
	}
}
