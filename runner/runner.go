package runner

import (
	"context"

	"natbrowser/browser/simplifier"
	"natbrowser/trajectory"
)

type Runner interface {
	Run(ctx context.Context) error
	RunAndStream(ctx context.Context) (<-chan *trajectory.TrajectoryStreamEvent, error)
	Trajectory() *trajectory.Trajectory
	Log(dir string) error
}

// Browser is the part of *browser.Browser a runner drives.
type Browser interface {
	Navigate(url string) error
	AcceptAction(action *trajectory.BrowserAction) error
	Render() (*simplifier.Result, error)
	HTML() (string, error)
}
