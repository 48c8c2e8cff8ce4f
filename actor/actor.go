package actor

import (
	"context"

	"natbrowser/trajectory"
)

// State is what the actor sees before choosing a command.
type State struct {
	Objective       string
	URL             string
	PreviousCommand string
	BrowserContent  string
}

type Actor interface {
	// NextAction returns either a *trajectory.BrowserAction or an error item
	// describing why no action could be chosen, plus a debug item holding
	// the prompt.
	NextAction(ctx context.Context, state *State) (next trajectory.TrajectoryItem, debug trajectory.TrajectoryItem, err error)
}
