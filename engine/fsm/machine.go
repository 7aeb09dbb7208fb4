package fsm

import (
	"fmt"
	"time"
)

// NewMachine creates a new FSM instance with empty registries
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes:      make(map[StateID]*Node[T]),
		activePath: make([]StateID, 0, 8),
		guardReg:   make(map[string]GuardFunc[T]),
		actionReg:  make(map[string]ActionFunc[T]),
		eventReg:   make(map[string]EventID),
	}
}

// RegisterGuard adds a named guard function to the registry
func (m *Machine[T]) RegisterGuard(name string, fn GuardFunc[T]) {
	m.guardReg[name] = fn
}

// RegisterAction adds a named action function to the registry
func (m *Machine[T]) RegisterAction(name string, fn ActionFunc[T]) {
	m.actionReg[name] = fn
}

// RegisterEvent binds a trigger name used in config to an event ID
// EventTick is reserved
func (m *Machine[T]) RegisterEvent(name string, id EventID) error {
	if id == EventTick || name == TriggerTick {
		return fmt.Errorf("event '%s' collides with reserved tick trigger", name)
	}
	m.eventReg[name] = id
	return nil
}

// Init enters the initial state, running OnEnter from root down to the leaf
func (m *Machine[T]) Init(ctx T) error {
	node, ok := m.nodes[m.InitialStateID]
	if !ok || m.InitialStateID == StateNone {
		return fmt.Errorf("initial state %d not found", m.InitialStateID)
	}
	if node.Path == nil {
		return fmt.Errorf("paths not compiled")
	}

	m.activeStateID = m.InitialStateID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], node.Path...)

	for _, id := range m.activePath {
		for _, action := range m.nodes[id].OnEnter {
			action.Func(ctx, action.Args)
		}
	}
	return nil
}

// Update advances the FSM by delta time, handling automatic transitions (EventTick) and per-tick actions
func (m *Machine[T]) Update(ctx T, dt time.Duration) {
	if m.activeStateID == StateNone {
		return
	}

	m.timeInState += dt

	leaf := m.nodes[m.activeStateID]
	for _, action := range leaf.OnUpdate {
		action.Func(ctx, action.Args)
	}

	m.fire(ctx, EventTick)
}

// HandleEvent routes an external event from the active leaf up to the root
// Returns true if the event triggered a transition
func (m *Machine[T]) HandleEvent(ctx T, ev EventID) bool {
	if ev == EventTick || m.activeStateID == StateNone {
		return false
	}
	return m.fire(ctx, ev)
}

// fire evaluates transitions matching ev, bubbling Leaf -> Parent -> Root
func (m *Machine[T]) fire(ctx T, ev EventID) bool {
	currID := m.activeStateID
	for currID != StateNone {
		node := m.nodes[currID]
		for _, trans := range node.Transitions {
			if trans.Event != ev {
				continue
			}
			if trans.Guard == nil || trans.Guard(ctx) {
				m.transition(ctx, trans.TargetID)
				return true
			}
		}
		currID = node.ParentID
	}
	return false
}

// transition performs the state change, exiting up to and entering down from the LCA
func (m *Machine[T]) transition(ctx T, targetID StateID) {
	if m.activeStateID == targetID {
		return
	}

	targetNode, ok := m.nodes[targetID]
	if !ok {
		panic(fmt.Sprintf("FSM: Attempted transition to unknown state ID %d", targetID))
	}

	lcaIndex := -1
	currentPath := m.activePath
	targetPath := targetNode.Path

	minLen := min(len(currentPath), len(targetPath))
	for i := 0; i < minLen; i++ {
		if currentPath[i] != targetPath[i] {
			break
		}
		lcaIndex = i
	}

	// Targeting an ancestor of the current leaf re-enters it
	if lcaIndex == len(targetPath)-1 {
		lcaIndex--
	}

	// Exit Phase: walk UP from current leaf to LCA (exclusive)
	for i := len(currentPath) - 1; i > lcaIndex; i-- {
		for _, action := range m.nodes[currentPath[i]].OnExit {
			action.Func(ctx, action.Args)
		}
	}

	// Commit before entry so actions observe the new state
	m.activeStateID = targetID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], targetPath...)

	// Enter Phase: walk DOWN from LCA (exclusive) to target leaf
	for i := lcaIndex + 1; i < len(targetPath); i++ {
		for _, action := range m.nodes[targetPath[i]].OnEnter {
			action.Func(ctx, action.Args)
		}
	}
}

// Reset exits every active state and re-enters the initial state
func (m *Machine[T]) Reset(ctx T) error {
	for i := len(m.activePath) - 1; i >= 0; i-- {
		if node, ok := m.nodes[m.activePath[i]]; ok {
			for _, action := range node.OnExit {
				action.Func(ctx, action.Args)
			}
		}
	}
	m.activeStateID = StateNone
	m.activePath = m.activePath[:0]
	return m.Init(ctx)
}

// State returns the active leaf state ID
func (m *Machine[T]) State() StateID {
	return m.activeStateID
}

// StateName returns the active leaf state name, empty before Init
func (m *Machine[T]) StateName() string {
	if node, ok := m.nodes[m.activeStateID]; ok {
		return node.Name
	}
	return ""
}

// InState reports whether id is the active leaf or one of its ancestors
func (m *Machine[T]) InState(id StateID) bool {
	for _, p := range m.activePath {
		if p == id {
			return true
		}
	}
	return false
}

// TimeInState returns time elapsed since the leaf was entered
func (m *Machine[T]) TimeInState() time.Duration {
	return m.timeInState
}
