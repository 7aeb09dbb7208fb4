package kepler

import (
	"fmt"

	"github.com/lixenwraith/orrery/vmath"
)

// NoParent marks a root node
const NoParent = -1

// Node is one entry of the hierarchical transform
type Node struct {
	Name   string
	Parent int         // Index of the parent node, or NoParent
	Local  vmath.Vec3F // Offset in the parent's frame
	Tilt   float64     // Axial tilt about x applied to children's offsets
	World  vmath.Vec3F // Composed by System.Compose
}

// System stores nodes parent-before-child so one forward pass composes world positions
type System struct {
	Nodes []Node
}

// Add appends a node and returns its index
// The parent must already be present
func (s *System) Add(name string, parent int, tilt float64) (int, error) {
	if parent != NoParent && (parent < 0 || parent >= len(s.Nodes)) {
		return 0, fmt.Errorf("node %s: parent index %d not yet defined", name, parent)
	}
	s.Nodes = append(s.Nodes, Node{Name: name, Parent: parent, Tilt: tilt})
	return len(s.Nodes) - 1, nil
}

// SetLocal updates a node's parent-relative offset
func (s *System) SetLocal(i int, local vmath.Vec3F) {
	s.Nodes[i].Local = local
}

// Compose computes World = Parent.World + RotX(Parent.Tilt)·Local top-down
func (s *System) Compose() {
	for i := range s.Nodes {
		n := &s.Nodes[i]
		if n.Parent == NoParent {
			n.World = n.Local
			continue
		}
		p := &s.Nodes[n.Parent]
		n.World = vmath.V3FAdd(p.World, vmath.V3FRotateX(n.Local, p.Tilt))
	}
}

// World returns the composed position of node i
func (s *System) World(i int) vmath.Vec3F {
	return s.Nodes[i].World
}

// Index finds a node by name
func (s *System) Index(name string) (int, bool) {
	for i := range s.Nodes {
		if s.Nodes[i].Name == name {
			return i, true
		}
	}
	return NoParent, false
}

// Len returns the node count
func (s *System) Len() int {
	return len(s.Nodes)
}
