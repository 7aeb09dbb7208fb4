package fsm

import (
	"time"
)

// StateID is a unique identifier for a node
type StateID int

const (
	StateNone StateID = 0
	StateRoot StateID = 1
)

// EventID identifies an external trigger; EventTick (0) marks automatic transitions
type EventID int

const EventTick EventID = 0

// TriggerTick is the config name for automatic transitions
const TriggerTick = "Tick"

// Machine is a generic hierarchical finite state machine
// T is the context type passed to actions and guards
type Machine[T any] struct {
	// Graph data, immutable after load
	nodes map[StateID]*Node[T]

	// InitialStateID is entered on Init and Reset
	InitialStateID StateID

	// Runtime state
	activeStateID StateID       // Current leaf node
	timeInState   time.Duration // Time elapsed in current leaf
	activePath    []StateID     // Root -> ... -> Leaf

	// Registries resolved by LoadConfig
	guardReg  map[string]GuardFunc[T]
	actionReg map[string]ActionFunc[T]
	eventReg  map[string]EventID
}

// Node represents a state in the hierarchy
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID

	// Path from Root to this node, precomputed for LCA lookup
	Path []StateID

	OnEnter  []Action[T]
	OnUpdate []Action[T]
	OnExit   []Action[T]

	// Transitions in evaluation order
	Transitions []Transition[T]
}

// Transition defines a link between states
type Transition[T any] struct {
	TargetID StateID
	Event    EventID      // EventTick = evaluated every Update
	Guard    GuardFunc[T] // nil = always true
}

// Action represents a side-effect bound to a lifecycle hook
type Action[T any] struct {
	Func ActionFunc[T]
	Args map[string]any
}

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T) bool

// ActionFunc executes a side effect
type ActionFunc[T any] func(ctx T, args map[string]any)
