package trajectory

import (
	"encoding/json"
	"fmt"
)

type TrajectoryItemType string

const (
	TrajectoryItemTypeMessage                  TrajectoryItemType = "message"
	TrajectoryItemTypeBrowserObservation       TrajectoryItemType = "browser_observation"
	TrajectoryItemTypeBrowserAction            TrajectoryItemType = "browser_action"
	TrajectoryItemTypeMaxNumStepsReached       TrajectoryItemType = "max_num_steps_reached"
	TrajectoryItemTypeMaxContextLengthExceeded TrajectoryItemType = "max_context_length_exceeded"
	TrajectoryItemTypeActionFailed             TrajectoryItemType = "action_failed"
	TrajectoryItemTypeDebug                    TrajectoryItemType = "debug"
)

// itemFactories lists every item kind that can appear in a log file.
var itemFactories = map[TrajectoryItemType]func() TrajectoryItem{
	TrajectoryItemTypeMessage:                  func() TrajectoryItem { return &Message{} },
	TrajectoryItemTypeBrowserObservation:       func() TrajectoryItem { return &BrowserObservation{} },
	TrajectoryItemTypeBrowserAction:            func() TrajectoryItem { return &BrowserAction{} },
	TrajectoryItemTypeMaxNumStepsReached:       func() TrajectoryItem { return &ErrorMaxNumStepsReached{} },
	TrajectoryItemTypeMaxContextLengthExceeded: func() TrajectoryItem { return &ErrorMaxContextLengthExceeded{} },
	TrajectoryItemTypeActionFailed:             func() TrajectoryItem { return &ErrorActionFailed{} },
	TrajectoryItemTypeDebug:                    func() TrajectoryItem { return &DebugRenderedDisplay{} },
}

func itemType(item TrajectoryItem) (TrajectoryItemType, error) {
	switch item.(type) {
	case *Message:
		return TrajectoryItemTypeMessage, nil
	case *BrowserObservation:
		return TrajectoryItemTypeBrowserObservation, nil
	case *BrowserAction:
		return TrajectoryItemTypeBrowserAction, nil
	case *ErrorMaxNumStepsReached:
		return TrajectoryItemTypeMaxNumStepsReached, nil
	case *ErrorMaxContextLengthExceeded:
		return TrajectoryItemTypeMaxContextLengthExceeded, nil
	case *ErrorActionFailed:
		return TrajectoryItemTypeActionFailed, nil
	case *DebugRenderedDisplay:
		return TrajectoryItemTypeDebug, nil
	}
	return "", fmt.Errorf("unknown trajectory item type: %T", item)
}

// envelope tags an item's JSON with its kind.
type envelope struct {
	Type TrajectoryItemType `json:"type"`
	Data json.RawMessage    `json:"data"`
}

func wrap(item TrajectoryItem) (*envelope, error) {
	typ, err := itemType(item)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("error encoding %s item: %w", typ, err)
	}
	return &envelope{Type: typ, Data: data}, nil
}

func (e *envelope) unwrap() (TrajectoryItem, error) {
	factory, ok := itemFactories[e.Type]
	if !ok {
		return nil, fmt.Errorf("unknown trajectory item type: %s", e.Type)
	}
	item := factory()
	if err := json.Unmarshal(e.Data, item); err != nil {
		return nil, fmt.Errorf("error decoding %s item: %w", e.Type, err)
	}
	return item, nil
}

// MarshalTrajectory encodes the items in order as a JSON array of tagged
// envelopes.
func MarshalTrajectory(traj *Trajectory) ([]byte, error) {
	envelopes := make([]*envelope, 0, len(traj.Items))
	for _, item := range traj.Items {
		e, err := wrap(item)
		if err != nil {
			return nil, err
		}
		envelopes = append(envelopes, e)
	}
	return json.Marshal(envelopes)
}

func UnmarshalTrajectory(data []byte) (*Trajectory, error) {
	var envelopes []*envelope
	if err := json.Unmarshal(data, &envelopes); err != nil {
		return nil, err
	}
	traj := &Trajectory{Items: make([]TrajectoryItem, 0, len(envelopes))}
	for _, e := range envelopes {
		item, err := e.unwrap()
		if err != nil {
			return nil, err
		}
		traj.Items = append(traj.Items, item)
	}
	return traj, nil
}

func MarshalTrajectoryItem(item TrajectoryItem) ([]byte, error) {
	e, err := wrap(item)
	if err != nil {
		return nil, err
	}
	return json.Marshal(e)
}

func UnmarshalTrajectoryItem(data []byte) (TrajectoryItem, error) {
	var e envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return e.unwrap()
}
