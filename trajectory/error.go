package trajectory

import "fmt"

type errorItem struct {
	Handoff
	Render
}

type ErrorMaxNumStepsReached struct {
	errorItem
	MaxNumSteps int `json:"max_num_steps"`
}

func NewErrorMaxNumStepsReached(maxNumSteps int) *ErrorMaxNumStepsReached {
	return &ErrorMaxNumStepsReached{
		MaxNumSteps: maxNumSteps,
	}
}

type ErrorMaxContextLengthExceeded struct {
	errorItem
	ContextLengthAllowed  int `json:"context_length_allowed"`
	ContextLengthReceived int `json:"context_length_received"`
}

func NewErrorMaxContextLengthExceeded(contextLengthAllowed int, contextLengthReceived int) *ErrorMaxContextLengthExceeded {
	return &ErrorMaxContextLengthExceeded{
		ContextLengthAllowed:  contextLengthAllowed,
		ContextLengthReceived: contextLengthReceived,
	}
}

// ErrorActionFailed records a command that could not be carried out. The
// loop continues after it.
type ErrorActionFailed struct {
	DontHandoff
	Render

	Command string `json:"command"`
	Reason  string `json:"reason"`
}

func NewErrorActionFailed(command string, err error) *ErrorActionFailed {
	return &ErrorActionFailed{
		Command: command,
		Reason:  err.Error(),
	}
}

func (m *ErrorMaxNumStepsReached) GetText() string {
	return fmt.Sprintf("error: max num steps reached: %d", m.MaxNumSteps)
}

func (m *ErrorMaxNumStepsReached) GetAbbreviatedText() string {
	return m.GetText()
}

func (m *ErrorMaxContextLengthExceeded) GetText() string {
	return fmt.Sprintf("error: max context length exceeded: %d > %d tokens", m.ContextLengthReceived, m.ContextLengthAllowed)
}

func (m *ErrorMaxContextLengthExceeded) GetAbbreviatedText() string {
	return m.GetText()
}

func (m *ErrorActionFailed) GetText() string {
	return fmt.Sprintf("error: %q failed: %s", m.Command, m.Reason)
}

func (m *ErrorActionFailed) GetAbbreviatedText() string {
	return m.GetText()
}
