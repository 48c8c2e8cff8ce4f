package trajectory

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrajectory_GetText(t *testing.T) {
	traj := &Trajectory{}
	assert.Equal(t, "", traj.GetText())

	traj.AddItem(NewMessage(MessageAuthorUser, "find the weather"))
	traj.AddItem(NewDebugRenderedDisplay(DebugDisplayTypePrompt, "hidden"))
	traj.AddItems([]TrajectoryItem{
		NewBrowserClickAction(4),
		NewErrorActionFailed("CLICK 4", errors.New("element not found")),
	})

	want := strings.Join([]string{
		"user: find the weather",
		"action: CLICK 4",
		`error: "CLICK 4" failed: element not found`,
	}, "\n")
	assert.Equal(t, want, traj.GetText())
}

func TestTrajectory_LastAction(t *testing.T) {
	traj := &Trajectory{}
	_, ok := traj.LastAction()
	assert.False(t, ok)

	traj.AddItem(NewBrowserClickAction(1))
	traj.AddItem(NewBrowserObservation("https://example.com", "<link id=0>x</link>"))
	action, ok := traj.LastAction()
	require.True(t, ok)
	assert.Equal(t, "CLICK 1", action.Command())
}

func TestAbbreviatedText(t *testing.T) {
	long := strings.Repeat("x", 300)

	obs := NewBrowserObservation("u", long)
	assert.Len(t, []rune(obs.GetAbbreviatedText()), DefaultObservationAbbreviationLength+3)
	assert.True(t, strings.HasSuffix(obs.GetAbbreviatedText(), "..."))

	agent := NewMessage(MessageAuthorAgent, long)
	assert.Equal(t, "agent: "+strings.Repeat("x", DefaultAgentMessageAbbreviationLength)+"...", agent.GetAbbreviatedText())

	user := NewMessage(MessageAuthorUser, long)
	assert.Equal(t, user.GetText(), user.GetAbbreviatedText())
}

func TestMarshalTrajectory(t *testing.T) {
	traj := &Trajectory{}
	traj.AddItems([]TrajectoryItem{
		NewMessage(MessageAuthorUser, "objective"),
		NewBrowserObservation("https://example.com", "<text id=0>hi</text>"),
		NewBrowserTypeAction(0, "query", true),
		NewErrorActionFailed("CLICK 9", errors.New("element not found")),
		NewErrorMaxNumStepsReached(10),
		NewErrorMaxContextLengthExceeded(100, 200),
		NewDebugRenderedDisplay(DebugDisplayTypeBrowser, "<html></html>"),
	})

	data, err := MarshalTrajectory(traj)
	require.NoError(t, err)

	got, err := UnmarshalTrajectory(data)
	require.NoError(t, err)
	assert.Equal(t, traj, got)
}

func TestUnmarshalTrajectoryItem_UnknownType(t *testing.T) {
	_, err := UnmarshalTrajectoryItem([]byte(`{"type": "nope", "data": {}}`))
	assert.Error(t, err)
}

func TestMarshalTrajectoryItem(t *testing.T) {
	item := NewErrorActionFailed("CLICK 4", errors.New("element not found"))
	data, err := MarshalTrajectoryItem(item)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"action_failed"`)

	got, err := UnmarshalTrajectoryItem(data)
	require.NoError(t, err)
	assert.Equal(t, item, got)
}

type unregisteredItem struct {
	DontHandoff
	DontRender
}

func (unregisteredItem) GetText() string            { return "" }
func (unregisteredItem) GetAbbreviatedText() string { return "" }

func TestMarshalTrajectory_UnregisteredItem(t *testing.T) {
	_, err := MarshalTrajectory(&Trajectory{Items: []TrajectoryItem{unregisteredItem{}}})
	assert.ErrorContains(t, err, "unknown trajectory item type")
}
