package session

import (
	"context"

	"github.com/looplab/fsm"
)

const (
	stateUnconfirmed = "unconfirmed"
	stateConfirmed   = "confirmed"

	eventConfirm = "confirm"
	eventReset   = "reset"
)

// gate tracks whether a student ID has been confirmed. The confirmed ID is
// only set while the machine is in the confirmed state.
type gate struct {
	machine *fsm.FSM
	id      string
}

func newGate() *gate {
	g := &gate{}
	g.machine = fsm.NewFSM(
		stateUnconfirmed,
		fsm.Events{
			{Name: eventConfirm, Src: []string{stateUnconfirmed}, Dst: stateConfirmed},
			{Name: eventReset, Src: []string{stateConfirmed}, Dst: stateUnconfirmed},
		},
		fsm.Callbacks{
			"enter_" + stateConfirmed: func(_ context.Context, e *fsm.Event) {
				g.id = e.Args[0].(string)
			},
			"enter_" + stateUnconfirmed: func(_ context.Context, e *fsm.Event) {
				g.id = ""
			},
		},
	)
	return g
}

func (g *gate) confirmed() bool {
	return g.machine.Is(stateConfirmed)
}

// confirm moves to the confirmed state holding id. It must only be called
// while unconfirmed.
func (g *gate) confirm(id string) error {
	return g.machine.Event(context.Background(), eventConfirm, id)
}

// reset drops any confirmed ID.
func (g *gate) reset() {
	if g.confirmed() {
		_ = g.machine.Event(context.Background(), eventReset)
	}
}
