package finiterunner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"natbrowser/actor"
	"natbrowser/browser"
	"natbrowser/browser/simplifier"
	"natbrowser/logging"
	"natbrowser/runner"
	"natbrowser/trajectory"
	"natbrowser/utils/io"
)

const DefaultMaxNumSteps = 20

type Options struct {
	MaxNumSteps int
}

// FiniteRunner alternates between asking the actor for a command and
// executing it, for at most MaxNumSteps steps.
type FiniteRunner struct {
	actor       actor.Actor
	browser     runner.Browser
	maxNumSteps int
	trajectory  *trajectory.Trajectory

	objective string
	location  string
	content   string
	answer    string
	answered  bool
	done      bool
}

var _ runner.Runner = (*FiniteRunner)(nil)

func New(act actor.Actor, br runner.Browser, objective string, options *Options) *FiniteRunner {
	maxNumSteps := DefaultMaxNumSteps
	if options != nil && options.MaxNumSteps > 0 {
		maxNumSteps = options.MaxNumSteps
	}
	return &FiniteRunner{
		actor:       act,
		browser:     br,
		maxNumSteps: maxNumSteps,
		trajectory:  &trajectory.Trajectory{},
		objective:   objective,
	}
}

// NewFiniteRunnerFromInitialPage records the objective, visits url and
// renders the first observation.
func NewFiniteRunnerFromInitialPage(ctx context.Context, act actor.Actor, br runner.Browser, url string, objective string, options *Options) (*FiniteRunner, error) {
	r := New(act, br, objective, options)
	r.trajectory.AddItem(trajectory.NewMessage(trajectory.MessageAuthorUser, objective))
	if _, err := r.Execute(ctx, trajectory.NewBrowserNavigateAction(url)); err != nil {
		return nil, fmt.Errorf("browser failed to visit initial page: %w", err)
	}
	return r, nil
}

// recoverable errors leave the loop running; the next render hands out
// fresh ids.
func recoverable(err error) bool {
	return errors.Is(err, simplifier.ErrElementNotFound) ||
		errors.Is(err, browser.ErrStaleElement) ||
		errors.Is(err, browser.ErrInvalidURL) ||
		errors.Is(err, browser.ErrNavigationFailed) ||
		errors.Is(err, trajectory.ErrInvalidCommand)
}

// Suggest asks the actor for the next command without executing it. The
// returned item is a *trajectory.BrowserAction, or an error item when the
// actor could not produce one.
func (r *FiniteRunner) Suggest(ctx context.Context) (trajectory.TrajectoryItem, error) {
	state := &actor.State{
		Objective:      r.objective,
		URL:            r.location,
		BrowserContent: r.content,
	}
	if last, ok := r.trajectory.LastAction(); ok {
		state.PreviousCommand = last.Command()
	}
	next, debug, err := r.actor.NextAction(ctx, state)
	if debug != nil {
		r.trajectory.AddItem(debug)
	}
	if err != nil {
		return nil, fmt.Errorf("actor failed to choose an action: %w", err)
	}
	return next, nil
}

// Execute runs action against the browser and records the resulting
// observation. It reports whether the task has ended.
func (r *FiniteRunner) Execute(ctx context.Context, action *trajectory.BrowserAction) (bool, error) {
	r.trajectory.AddItem(action)
	if action.IsTerminal() {
		r.answer = action.Text
		r.answered = true
		r.done = true
		return true, nil
	}

	var err error
	if action.Type == trajectory.BrowserActionTypeNavigate {
		err = r.browser.Navigate(action.URL)
	} else {
		err = r.browser.AcceptAction(action)
	}
	if err != nil {
		if !recoverable(err) {
			return false, err
		}
		logging.From(ctx).Warn("command failed", "command", action.Command(), "error", err)
		r.trajectory.AddItem(trajectory.NewErrorActionFailed(action.Command(), err))
	}
	return false, r.render()
}

func (r *FiniteRunner) render() error {
	result, err := r.browser.Render()
	if err != nil {
		return fmt.Errorf("browser failed to render page: %w", err)
	}
	r.location = result.URL
	r.content = result.String()
	r.trajectory.AddItem(trajectory.NewBrowserObservation(r.location, r.content))
	return nil
}

// Step runs one suggest/execute cycle.
func (r *FiniteRunner) Step(ctx context.Context) (bool, error) {
	next, err := r.Suggest(ctx)
	if err != nil {
		return false, err
	}
	switch item := next.(type) {
	case *trajectory.BrowserAction:
		return r.Execute(ctx, item)
	case *trajectory.ErrorMaxContextLengthExceeded:
		r.trajectory.AddItem(item)
		r.done = true
		return true, nil
	default:
		r.trajectory.AddItem(item)
		return false, nil
	}
}

func (r *FiniteRunner) Run(ctx context.Context) error {
	for i := 0; i < r.maxNumSteps; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		done, err := r.Step(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
	r.trajectory.AddItem(trajectory.NewErrorMaxNumStepsReached(r.maxNumSteps))
	r.done = true
	return nil
}

// RunAndStream runs the loop in a goroutine and publishes every new
// trajectory item. The channel is closed when the loop ends.
func (r *FiniteRunner) RunAndStream(ctx context.Context) (<-chan *trajectory.TrajectoryStreamEvent, error) {
	stream := make(chan *trajectory.TrajectoryStreamEvent)
	send := func(event *trajectory.TrajectoryStreamEvent) bool {
		select {
		case stream <- event:
			return true
		case <-ctx.Done():
			return false
		}
	}
	go func() {
		defer close(stream)
		sent := len(r.trajectory.Items)
		flush := func() bool {
			for ; sent < len(r.trajectory.Items); sent++ {
				if !send(&trajectory.TrajectoryStreamEvent{TrajectoryItem: r.trajectory.Items[sent]}) {
					return false
				}
			}
			return true
		}
		for i := 0; i < r.maxNumSteps; i++ {
			if ctx.Err() != nil {
				return
			}
			done, err := r.Step(ctx)
			if !flush() {
				return
			}
			if err != nil {
				send(&trajectory.TrajectoryStreamEvent{Error: err})
				return
			}
			if done {
				return
			}
		}
		r.trajectory.AddItem(trajectory.NewErrorMaxNumStepsReached(r.maxNumSteps))
		r.done = true
		flush()
	}()
	return stream, nil
}

func (r *FiniteRunner) Trajectory() *trajectory.Trajectory {
	return r.trajectory
}

func (r *FiniteRunner) Objective() string {
	return r.objective
}

func (r *FiniteRunner) SetObjective(objective string) {
	r.objective = objective
	r.trajectory.AddItem(trajectory.NewMessage(trajectory.MessageAuthorUser, objective))
}

func (r *FiniteRunner) Location() string {
	return r.location
}

func (r *FiniteRunner) Content() string {
	return r.content
}

// Answer returns the text of the ANSWER command, once one was executed.
func (r *FiniteRunner) Answer() (string, bool) {
	return r.answer, r.answered
}

func (r *FiniteRunner) Done() bool {
	return r.done
}

const (
	trajectoryTextFile = "trajectory.txt"
	trajectoryJSONFile = "trajectory.json"
	pageHTMLFile       = "page.html"
	summaryFile        = "summary.json"
)

// Summary is the outcome of a run as written to summary.json.
type Summary struct {
	Objective string `json:"objective"`
	Location  string `json:"location"`
	Answer    string `json:"answer,omitempty"`
	Answered  bool   `json:"answered"`
	Done      bool   `json:"done"`
	NumItems  int    `json:"num_items"`
}

func (r *FiniteRunner) Summary() *Summary {
	return &Summary{
		Objective: r.objective,
		Location:  r.location,
		Answer:    r.answer,
		Answered:  r.answered,
		Done:      r.done,
		NumItems:  len(r.trajectory.Items),
	}
}

// Log writes the run summary, the full trajectory as text and JSON, and the
// current page as indented HTML, into dir.
func (r *FiniteRunner) Log(dir string) error {
	if err := io.WriteStructToFile(filepath.Join(dir, summaryFile), r.Summary()); err != nil {
		return fmt.Errorf("failed to write run summary to file: %w", err)
	}
	trajectoryTextItems := make([]string, len(r.trajectory.Items))
	for i, item := range r.trajectory.Items {
		trajectoryTextItems[i] = item.GetText()
	}
	if err := io.WriteStringToFile(filepath.Join(dir, trajectoryTextFile), strings.Join(trajectoryTextItems, "\n")); err != nil {
		return fmt.Errorf("failed to write trajectory text to file: %w", err)
	}
	trajJSON, err := trajectory.MarshalTrajectory(r.trajectory)
	if err != nil {
		return fmt.Errorf("failed to marshal trajectory: %w", err)
	}
	if err := io.WriteBytesToFile(filepath.Join(dir, trajectoryJSONFile), trajJSON); err != nil {
		return fmt.Errorf("failed to write trajectory json to file: %w", err)
	}
	html, err := r.browser.HTML()
	if err != nil {
		return fmt.Errorf("failed to read page html: %w", err)
	}
	if err := io.WriteStringToFile(filepath.Join(dir, pageHTMLFile), html); err != nil {
		return fmt.Errorf("failed to write page html to file: %w", err)
	}
	return nil
}
