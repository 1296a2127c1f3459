// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package statemachine

import (
	"errors"
	"fmt"
	"sync"
)

type State string

const (
	Created   State = "Created"
	Submitted State = "Submitted"
	Confirmed State = "Confirmed"
	Failed    State = "Failed"
)

var (
	errNoStates          = errors.New("state machine needs at least one state")
	errUnknownState      = errors.New("unknown state")
	errInvalidTransition = errors.New("invalid state transition")
)

// StateMachine only moves along the given transitions. States without
// outgoing transitions are terminal
type StateMachine struct {
	mutex       sync.Mutex
	current     State
	transitions map[State][]State
}

func NewStateMachine(initial State, transitions map[State][]State) (*StateMachine, error) {
	if len(transitions) == 0 {
		return nil, errNoStates
	}
	if _, ok := transitions[initial]; !ok {
		return nil, fmt.Errorf("%w: %s", errUnknownState, initial)
	}
	return &StateMachine{
		current:     initial,
		transitions: transitions,
	}, nil
}

// NewDeploymentStateMachine returns the deployment lifecycle:
// Created -> Submitted -> (Confirmed | Failed). A submission failure goes
// straight from Created to Failed
func NewDeploymentStateMachine() *StateMachine {
	sm, _ := NewStateMachine(Created, map[State][]State{
		Created:   {Submitted, Failed},
		Submitted: {Confirmed, Failed},
		Confirmed: {},
		Failed:    {},
	})
	return sm
}

func (sm *StateMachine) CurrentState() State {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()
	return sm.current
}

func (sm *StateMachine) Terminal() bool {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()
	return len(sm.transitions[sm.current]) == 0
}

func (sm *StateMachine) Transition(to State) error {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()
	if _, ok := sm.transitions[to]; !ok {
		return fmt.Errorf("%w: %s", errUnknownState, to)
	}
	for _, next := range sm.transitions[sm.current] {
		if next == to {
			sm.current = to
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", errInvalidTransition, sm.current, to)
}
