package fsm

import (
	"fmt"
	"sort"

	"github.com/lixenwraith/orrery/toml"
)

// LoadConfig parses a TOML byte slice and populates the Machine
// Validates all references (states, guards, actions, events)
// Clears existing graph data before loading
func (m *Machine[T]) LoadConfig(data []byte) error {
	var config RootConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to unmarshal FSM config: %w", err)
	}
	if len(config.States) == 0 {
		return fmt.Errorf("FSM config declares no states")
	}

	m.nodes = make(map[StateID]*Node[T])
	m.activeStateID = StateNone
	m.activePath = m.activePath[:0]
	m.timeInState = 0

	// Root node is reserved as StateRoot
	m.nodes[StateRoot] = m.AddState(StateRoot, "Root", StateNone)
	nameToID := map[string]StateID{"Root": StateRoot}

	if _, ok := config.States["Root"]; !ok {
		config.States["Root"] = &StateConfig{}
	}

	// Sort keys for deterministic ID generation
	stateNames := make([]string, 0, len(config.States))
	for name := range config.States {
		if name != "Root" {
			stateNames = append(stateNames, name)
		}
	}
	sort.Strings(stateNames)

	nextID := StateRoot + 1
	for _, name := range stateNames {
		nameToID[name] = nextID
		nextID++
	}

	for name, cfg := range config.States {
		if cfg == nil {
			cfg = &StateConfig{}
		}
		id := nameToID[name]

		var node *Node[T]
		if id == StateRoot {
			node = m.nodes[StateRoot]
		} else {
			pName := cfg.Parent
			if pName == "" {
				pName = "Root"
			}
			parentID, ok := nameToID[pName]
			if !ok {
				return fmt.Errorf("state '%s' references unknown parent '%s'", name, pName)
			}
			node = m.AddState(id, name, parentID)
		}

		var err error
		if node.OnEnter, err = m.compileActions(cfg.OnEnter); err != nil {
			return fmt.Errorf("state '%s' OnEnter: %w", name, err)
		}
		if node.OnUpdate, err = m.compileActions(cfg.OnUpdate); err != nil {
			return fmt.Errorf("state '%s' OnUpdate: %w", name, err)
		}
		if node.OnExit, err = m.compileActions(cfg.OnExit); err != nil {
			return fmt.Errorf("state '%s' OnExit: %w", name, err)
		}

		if err := m.compileTransitions(node, cfg.Transitions, nameToID); err != nil {
			return fmt.Errorf("state '%s' transitions: %w", name, err)
		}
	}

	if err := m.CompilePaths(); err != nil {
		return err
	}

	initialID, ok := nameToID[config.InitialState]
	if !ok || initialID == StateRoot {
		return fmt.Errorf("initial state '%s' not found", config.InitialState)
	}
	m.InitialStateID = initialID

	return nil
}

// GetStateID resolves a state name to ID
func (m *Machine[T]) GetStateID(name string) (StateID, bool) {
	for id, node := range m.nodes {
		if node.Name == name {
			return id, true
		}
	}
	return StateNone, false
}

func (m *Machine[T]) compileActions(configs []ActionConfig) ([]Action[T], error) {
	actions := make([]Action[T], 0, len(configs))
	for _, cfg := range configs {
		fn, ok := m.actionReg[cfg.Action]
		if !ok {
			return nil, fmt.Errorf("unknown action function '%s'", cfg.Action)
		}
		actions = append(actions, Action[T]{
			Func: fn,
			Args: cfg.Args,
		})
	}
	return actions, nil
}

func (m *Machine[T]) compileTransitions(node *Node[T], configs []TransitionConfig, nameToID map[string]StateID) error {
	for _, cfg := range configs {
		targetID, ok := nameToID[cfg.Target]
		if !ok {
			return fmt.Errorf("transition references unknown target '%s'", cfg.Target)
		}

		ev := EventTick
		if cfg.Trigger != TriggerTick {
			ev, ok = m.eventReg[cfg.Trigger]
			if !ok {
				return fmt.Errorf("unknown event '%s'", cfg.Trigger)
			}
		}

		var guard GuardFunc[T]
		if cfg.Guard != "" {
			g, ok := m.guardReg[cfg.Guard]
			if !ok {
				return fmt.Errorf("unknown guard '%s'", cfg.Guard)
			}
			guard = g
		}

		node.Transitions = append(node.Transitions, Transition[T]{
			TargetID: targetID,
			Event:    ev,
			Guard:    guard,
		})
	}
	return nil
}
