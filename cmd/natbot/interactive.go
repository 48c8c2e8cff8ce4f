package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"natbrowser/browser/virtualid"
	"natbrowser/trajectory"
	"natbrowser/utils/printx"
)

type session interface {
	Suggest(ctx context.Context) (trajectory.TrajectoryItem, error)
	Execute(ctx context.Context, action *trajectory.BrowserAction) (bool, error)
	SetObjective(objective string)
	Objective() string
	Location() string
	Content() string
	Answer() (string, bool)
	Trajectory() *trajectory.Trajectory
	Log(dir string) error
}

const helpText = `(r/enter) run suggested command
(g) go to url
(u) scroll up
(d) scroll down
(c) click element
(t) type into element
(o) change objective
(l) write logs
(h) show commands
(q) quit`

var errQuit = errors.New("quit")

type interactive struct {
	session session
	in      *bufio.Scanner
	out     io.Writer
	logDir  string
}

func (s *interactive) run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		suggestion, err := s.session.Suggest(ctx)
		if err != nil {
			return err
		}
		s.show(suggestion)

		done, err := s.handle(ctx, suggestion)
		if errors.Is(err, errQuit) {
			return nil
		} else if err != nil {
			return err
		}
		if done {
			if answer, ok := s.session.Answer(); ok {
				printx.PrintSection(s.out, "ANSWER", answer)
			}
			return nil
		}
	}
}

func (s *interactive) show(suggestion trajectory.TrajectoryItem) {
	printx.PrintSection(s.out, "URL", s.session.Location())
	printx.PrintSection(s.out, "OBJECTIVE", s.session.Objective())
	printx.PrintSection(s.out, "BROWSER CONTENT", s.session.Content())
	if action, ok := suggestion.(*trajectory.BrowserAction); ok {
		printx.PrintInColor(s.out, printx.ColorGreen, "Suggested command: "+action.Command())
	} else {
		printx.PrintInColor(s.out, printx.ColorYellow, suggestion.GetText())
	}
}

func (s *interactive) readLine(label string) (string, error) {
	if label != "" {
		fmt.Fprint(s.out, label)
	}
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", errQuit
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *interactive) readID() (virtualid.VirtualID, bool, error) {
	raw, err := s.readLine("id: ")
	if err != nil {
		return 0, false, err
	}
	id, err := virtualid.Parse(raw)
	if err != nil {
		printx.PrintInColor(s.out, printx.ColorRed, err.Error())
		return 0, false, nil
	}
	return id, true, nil
}

// handle reads commands until one of them changes the page or the
// objective, then reports whether the task has ended.
func (s *interactive) handle(ctx context.Context, suggestion trajectory.TrajectoryItem) (bool, error) {
	for {
		command, err := s.readLine("> ")
		if err != nil {
			return false, err
		}
		var action *trajectory.BrowserAction
		switch command {
		case "", "r":
			suggested, ok := suggestion.(*trajectory.BrowserAction)
			if !ok {
				printx.PrintInColor(s.out, printx.ColorYellow, "no command to run")
				continue
			}
			action = suggested
		case "g":
			url, err := s.readLine("URL: ")
			if err != nil {
				return false, err
			}
			action = trajectory.NewBrowserNavigateAction(url)
		case "u":
			action = trajectory.NewBrowserScrollAction(trajectory.ScrollDirectionUp)
		case "d":
			action = trajectory.NewBrowserScrollAction(trajectory.ScrollDirectionDown)
		case "c":
			id, ok, err := s.readID()
			if err != nil {
				return false, err
			} else if !ok {
				continue
			}
			action = trajectory.NewBrowserClickAction(id)
		case "t":
			id, ok, err := s.readID()
			if err != nil {
				return false, err
			} else if !ok {
				continue
			}
			text, err := s.readLine("text: ")
			if err != nil {
				return false, err
			}
			action = trajectory.NewBrowserTypeAction(id, text, false)
		case "o":
			objective, err := s.readLine("Objective: ")
			if err != nil {
				return false, err
			}
			if objective != "" {
				s.session.SetObjective(objective)
			}
			return false, nil
		case "l":
			if err := s.session.Log(s.logDir); err != nil {
				printx.PrintInColor(s.out, printx.ColorRed, fmt.Sprintf("failed to write logs: %s", err))
			} else {
				printx.PrintInColor(s.out, printx.ColorGray, "Logged the current state to "+s.logDir+".")
			}
			continue
		case "q":
			return false, errQuit
		default:
			printx.PrintInColor(s.out, printx.ColorGray, helpText)
			continue
		}

		done, err := s.session.Execute(ctx, action)
		if err != nil {
			return false, err
		}
		s.reportFailure()
		return done, nil
	}
}

func (s *interactive) reportFailure() {
	items := s.session.Trajectory().Items
	for i := len(items) - 1; i >= 0; i-- {
		switch item := items[i].(type) {
		case *trajectory.ErrorActionFailed:
			printx.PrintInColor(s.out, printx.ColorRed, item.GetText())
			return
		case *trajectory.BrowserAction:
			return
		}
	}
}
