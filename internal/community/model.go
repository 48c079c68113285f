// Package community implements the bit-packed multi-group membership model:
// per-node group masks, per-group "in"/"out" rosters, and the four move
// primitives (plus a symmetric undo) the sampler proposes and commits or
// rolls back.
//
// Grounded on original_source/src/multi_group_model.rs for the move algebra,
// and on the teacher's internal/callgraph model+generator split for the Go
// shape (a plain data struct with operations, no interfaces needed since
// there is exactly one implementation).
package community

import (
	"fmt"

	"github.com/arolim/hcp-mcmc/internal/bitpack"
	"github.com/arolim/hcp-mcmc/internal/rowtable"
	apperrors "github.com/arolim/hcp-mcmc/pkg/errors"
)

// noNode is the roster sentinel for "no valid node here", written into the
// slots beyond a roster's valid prefix. -1 never collides with a real node
// id, unlike the Rust original's Node::MAX.
const noNode = -1

// MaxGroups is the hard ceiling the bit-packed mask representation imposes.
const MaxGroups = 64

// MoveKind discriminates the Move union.
type MoveKind int

const (
	// AddGroup inserts a new empty group.
	AddGroup MoveKind = iota
	// RemoveGroup removes an empty group.
	RemoveGroup
	// AddNodeToGroup moves one node from a group's "out" roster to its "in" roster.
	AddNodeToGroup
	// RemoveNodeFromGroup moves one node from a group's "in" roster to its "out" roster.
	RemoveNodeFromGroup
)

// Move records everything UndoMove needs to exactly reverse a committed
// move. Group/Node/Idx/OldState are populated according to Kind; unused
// fields are zero.
type Move struct {
	Kind     MoveKind
	Group    int
	Node     int
	Idx      int
	OldState uint64
}

// Model holds the bit-packed group assignment for a fixed set of nodes.
type Model struct {
	maxGroups int
	numGroups int
	numNodes  int

	groups []uint64

	nodesIn  *rowtable.Table[int]
	nodesOut *rowtable.Table[int]

	groupSize []int
}

// WithGroups builds a Model from an initial mask per node. Every mask must
// have bit 0 set (group 0 is the universal group).
func WithGroups(groups []uint64, numGroups, maxGroups int) (*Model, error) {
	if maxGroups > MaxGroups {
		return nil, apperrors.New(apperrors.CodeConfigError, fmt.Sprintf("max_groups %d exceeds the 64-group ceiling", maxGroups))
	}
	if numGroups < 1 || numGroups > maxGroups {
		return nil, apperrors.New(apperrors.CodeConfigError, fmt.Sprintf("num_groups %d out of range [1,%d]", numGroups, maxGroups))
	}
	numNodes := len(groups)
	for u, mask := range groups {
		if mask&1 == 0 {
			return nil, apperrors.New(apperrors.CodeConfigError, fmt.Sprintf("node %d has the universal bit unset", u))
		}
	}

	nodesIn := rowtable.New[int](numNodes)
	nodesOut := rowtable.New[int](numNodes)
	groupSize := make([]int, numGroups)

	for r := 0; r < numGroups; r++ {
		inRow := make([]int, numNodes)
		outRow := make([]int, numNodes)
		for i := range inRow {
			inRow[i] = noNode
			outRow[i] = noNode
		}
		inCount, outCount := 0, 0
		for u := 0; u < numNodes; u++ {
			if (groups[u]>>uint(r))&1 != 0 {
				inRow[inCount] = u
				inCount++
			} else {
				outRow[outCount] = u
				outCount++
			}
		}
		nodesIn.PushRow(inRow)
		nodesOut.PushRow(outRow)
		groupSize[r] = inCount
	}

	gcopy := make([]uint64, numNodes)
	copy(gcopy, groups)

	return &Model{
		maxGroups: maxGroups,
		numGroups: numGroups,
		numNodes:  numNodes,
		groups:    gcopy,
		nodesIn:   nodesIn,
		nodesOut:  nodesOut,
		groupSize: groupSize,
	}, nil
}

// NumGroups returns the current group count.
func (m *Model) NumGroups() int { return m.numGroups }

// MaxGroups returns the configured group ceiling.
func (m *Model) MaxGroups() int { return m.maxGroups }

// NumNodes returns the fixed node count N.
func (m *Model) NumNodes() int { return m.numNodes }

// GroupSize returns the population of group r.
func (m *Model) GroupSize(r int) int { return m.groupSize[r] }

// GroupSizes returns a copy of the per-group population counts.
func (m *Model) GroupSizes() []int {
	out := make([]int, len(m.groupSize))
	copy(out, m.groupSize)
	return out
}

// MaskOf returns node u's current group mask.
func (m *Model) MaskOf(u int) uint64 { return m.groups[u] }

// Masks returns a copy of every node's current group mask.
func (m *Model) Masks() []uint64 {
	out := make([]uint64, len(m.groups))
	copy(out, m.groups)
	return out
}

func assertf(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(apperrors.New(apperrors.CodeInvariantViolation, fmt.Sprintf(format, args...)))
	}
}

// AddGroupAt inserts a new empty group at index g, 1 <= g <= numGroups,
// provided numGroups < maxGroups. Group 0 (the universal group) is never a
// valid target.
func (m *Model) AddGroupAt(g int) Move {
	assertf(g >= 1 && g <= m.numGroups, "add_group: group %d out of range [1,%d]", g, m.numGroups)
	assertf(m.numGroups < m.maxGroups, "add_group: already at max_groups %d", m.maxGroups)

	inRow := make([]int, m.numNodes)
	outRow := make([]int, m.numNodes)
	for i := 0; i < m.numNodes; i++ {
		inRow[i] = noNode
		outRow[i] = i
	}
	m.nodesIn.InsertRow(g, inRow)
	m.nodesOut.InsertRow(g, outRow)

	m.groupSize = insertInt(m.groupSize, g, 0)

	for u := range m.groups {
		m.groups[u] = bitpack.InsertZeroAt(m.groups[u], g, m.numGroups)
	}
	m.numGroups++

	return Move{Kind: AddGroup, Group: g}
}

// RemoveGroupAt removes the empty group at index g, 1 <= g < numGroups.
func (m *Model) RemoveGroupAt(g int) Move {
	assertf(g >= 1 && g < m.numGroups, "remove_group: group %d out of range [1,%d)", g, m.numGroups)
	assertf(m.groupSize[g] == 0, "remove_group: group %d is non-empty (size %d)", g, m.groupSize[g])

	for u := range m.groups {
		m.groups[u] = bitpack.RemoveBitAt(m.groups[u], g, m.numGroups)
	}
	m.nodesIn.RemoveRow(g)
	m.nodesOut.RemoveRow(g)
	m.groupSize = removeInt(m.groupSize, g)
	m.numGroups--

	return Move{Kind: RemoveGroup, Group: g}
}

// RemoveNodeFromGroupByIdx removes the node at roster position idx of
// group g's "in" roster, 0 <= idx < group_size[g].
func (m *Model) RemoveNodeFromGroupByIdx(g, idx int) Move {
	assertf(m.groupSize[g] >= 1, "remove_node: group %d is empty", g)
	assertf(idx >= 0 && idx < m.groupSize[g], "remove_node: idx %d out of range [0,%d)", idx, m.groupSize[g])

	nOut := m.numNodes - m.groupSize[g]

	node := m.nodesIn.Get(g, idx)
	m.nodesIn.Set(g, idx, m.nodesIn.Get(g, m.groupSize[g]-1))
	m.nodesOut.Set(g, nOut, node)

	oldState := m.groups[node]
	m.groups[node] &^= uint64(1) << uint(g)
	m.groupSize[g]--

	return Move{Kind: RemoveNodeFromGroup, Group: g, Node: node, Idx: idx, OldState: oldState}
}

// AddNodeToGroupByIdx adds the node at roster position idx of group g's
// "out" roster, 0 <= idx < N - group_size[g].
func (m *Model) AddNodeToGroupByIdx(g, idx int) Move {
	nOut := m.numNodes - m.groupSize[g]
	assertf(m.groupSize[g] < m.numNodes, "add_node: group %d is full", g)
	assertf(idx >= 0 && idx < nOut, "add_node: idx %d out of range [0,%d)", idx, nOut)

	node := m.nodesOut.Get(g, idx)
	m.nodesOut.Set(g, idx, m.nodesOut.Get(g, nOut-1))
	m.nodesIn.Set(g, m.groupSize[g], node)

	oldState := m.groups[node]
	m.groups[node] |= uint64(1) << uint(g)
	m.groupSize[g]++

	return Move{Kind: AddNodeToGroup, Group: g, Node: node, Idx: idx, OldState: oldState}
}

// UndoMove exactly reverses a previously committed move.
func (m *Model) UndoMove(mv Move) {
	switch mv.Kind {
	case RemoveNodeFromGroup:
		g, node, idx := mv.Group, mv.Node, mv.Idx
		m.groupSize[g]++
		nOut := m.numNodes - m.groupSize[g]
		m.nodesOut.Set(g, nOut, noNode)
		m.nodesIn.Set(g, idx, node)
		m.groups[node] |= uint64(1) << uint(g)
	case RemoveGroup:
		m.AddGroupAt(mv.Group)
	case AddGroup:
		m.RemoveGroupAt(mv.Group)
	case AddNodeToGroup:
		g, node, idx := mv.Group, mv.Node, mv.Idx
		m.groupSize[g]--
		m.nodesIn.Set(g, m.groupSize[g], noNode)
		m.nodesOut.Set(g, idx, node)
		m.groups[node] &^= uint64(1) << uint(g)
	default:
		panic(apperrors.New(apperrors.CodeInvariantViolation, fmt.Sprintf("undo_move: unknown move kind %v", mv.Kind)))
	}
}

func insertInt(s []int, i, v int) []int {
	s = append(s, 0)
	copy(s[i+1:], s[i:len(s)-1])
	s[i] = v
	return s
}

func removeInt(s []int, i int) []int {
	return append(s[:i], s[i+1:]...)
}
