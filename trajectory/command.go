package trajectory

import (
	"errors"
	"fmt"
	"strings"

	"natbrowser/browser/virtualid"
	"natbrowser/utils/stringsx"
)

var ErrInvalidCommand = errors.New("invalid command")

const (
	commandScrollUp   = "SCROLL UP"
	commandScrollDown = "SCROLL DOWN"
	commandClick      = "CLICK"
	commandType       = "TYPE"
	commandTypeSubmit = "TYPESUBMIT"
	commandAnswer     = "ANSWER"
	commandGoto       = "GOTO"
)

// ParseCommand reads the first line of a model reply as a browser command:
//
//	SCROLL UP | SCROLL DOWN | CLICK N | TYPE N "text" | TYPESUBMIT N "text" | ANSWER "text" | GOTO url
func ParseCommand(raw string) (*BrowserAction, error) {
	cmd := strings.TrimSpace(stringsx.FirstLine(strings.TrimSpace(raw)))
	switch {
	case cmd == "":
		return nil, fmt.Errorf("%w: empty", ErrInvalidCommand)
	case strings.HasPrefix(cmd, commandScrollUp):
		return NewBrowserScrollAction(ScrollDirectionUp), nil
	case strings.HasPrefix(cmd, commandScrollDown):
		return NewBrowserScrollAction(ScrollDirectionDown), nil
	case strings.HasPrefix(cmd, commandClick):
		fields := strings.Fields(strings.TrimPrefix(cmd, commandClick))
		if len(fields) == 0 {
			return nil, fmt.Errorf("%w: %q is missing an id", ErrInvalidCommand, cmd)
		}
		id, err := virtualid.Parse(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidCommand, cmd, err)
		}
		return NewBrowserClickAction(id), nil
	case strings.HasPrefix(cmd, commandTypeSubmit):
		return parseType(cmd, commandTypeSubmit, true)
	case strings.HasPrefix(cmd, commandType):
		return parseType(cmd, commandType, false)
	case strings.HasPrefix(cmd, commandAnswer):
		return NewBrowserAnswerAction(unquote(strings.TrimPrefix(cmd, commandAnswer))), nil
	case strings.HasPrefix(cmd, commandGoto):
		url := unquote(strings.TrimPrefix(cmd, commandGoto))
		if url == "" {
			return nil, fmt.Errorf("%w: %q is missing a url", ErrInvalidCommand, cmd)
		}
		return NewBrowserNavigateAction(url), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidCommand, cmd)
	}
}

func parseType(cmd string, keyword string, submit bool) (*BrowserAction, error) {
	rest := strings.TrimSpace(strings.TrimPrefix(cmd, keyword))
	rawID, text, _ := strings.Cut(rest, " ")
	if rawID == "" {
		return nil, fmt.Errorf("%w: %q is missing an id", ErrInvalidCommand, cmd)
	}
	id, err := virtualid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidCommand, cmd, err)
	}
	return NewBrowserTypeAction(id, unquote(text), submit), nil
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}

// Command renders the action in the grammar ParseCommand accepts.
func (a *BrowserAction) Command() string {
	switch a.Type {
	case BrowserActionTypeScroll:
		if a.Direction == ScrollDirectionUp {
			return commandScrollUp
		}
		return commandScrollDown
	case BrowserActionTypeClick:
		return fmt.Sprintf("%s %s", commandClick, a.ID)
	case BrowserActionTypeType:
		return fmt.Sprintf(`%s %s "%s"`, commandType, a.ID, a.Text)
	case BrowserActionTypeTypeSubmit:
		return fmt.Sprintf(`%s %s "%s"`, commandTypeSubmit, a.ID, a.Text)
	case BrowserActionTypeAnswer:
		return fmt.Sprintf(`%s "%s"`, commandAnswer, a.Text)
	case BrowserActionTypeNavigate:
		return fmt.Sprintf("%s %s", commandGoto, a.URL)
	default:
		return string(a.Type)
	}
}
