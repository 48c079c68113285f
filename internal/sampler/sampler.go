// Package sampler implements the Metropolis-Hastings sampler that walks the
// space of hierarchical group assignments over a fixed graph: propose a
// move against the multi-group model, update the HCG bucket counters
// incrementally, evaluate the closed-form log-likelihood, and accept or
// roll back.
//
// Grounded on original_source/src/lib.rs (HierarchicalModel) for the field
// layout and original_source/src/main.rs for the construction order, with
// the move/accept loop itself built from multi_group_model.rs's move algebra.
package sampler

import (
	"math"

	"github.com/arolim/hcp-mcmc/internal/community"
	"github.com/arolim/hcp-mcmc/internal/graph"
	"github.com/arolim/hcp-mcmc/internal/lnfact"
	apperrors "github.com/arolim/hcp-mcmc/pkg/errors"
)

// Sampler owns the graph, the multi-group model, the HCG bucket counters,
// the running log-likelihood, and the RNG. It is not safe for concurrent
// use: a single sampler walks a single chain.
type Sampler struct {
	graph *graph.Graph
	model *community.Model
	rng   RNG
	ln    *lnfact.Table

	hcgEdges []int
	hcgPairs []int
	logLike  float64
}

// New builds a sampler from a graph and an initial per-node group mask
// assignment, constructing the HCG counters from scratch and precomputing
// the log-factorial table up to N^2+1.
func New(g *graph.Graph, initialGroups []uint64, numGroups, maxGroups int, rng RNG) (*Sampler, error) {
	if g.NumNodes() != len(initialGroups) {
		return nil, apperrors.New(apperrors.CodeConfigError, "initial group assignment length does not match graph node count")
	}

	model, err := community.WithGroups(initialGroups, numGroups, maxGroups)
	if err != nil {
		return nil, err
	}

	ln := lnfact.Global()
	n := g.NumNodes()
	ln.Precompute(n*n + 1)

	s := &Sampler{
		graph: g,
		model: model,
		rng:   rng,
		ln:    ln,
	}
	s.buildInitialCounters()
	s.logLike = s.evaluateLogLike()
	return s, nil
}

// RandomInitialGroups draws a random per-node mask for each of n nodes:
// bit 0 always set, bits 1..initialNumGroups-1 drawn uniformly at random.
func RandomInitialGroups(n, initialNumGroups int, rng RNG) []uint64 {
	masks := make([]uint64, n)
	upper := uint64(1) << uint(initialNumGroups-1)
	for i := range masks {
		r := rng.Uint64N(upper)
		masks[i] = (r << 1) | 1
	}
	return masks
}

func (s *Sampler) buildInitialCounters() {
	numGroups := s.model.NumGroups()
	s.hcgEdges = make([]int, numGroups)
	s.hcgPairs = make([]int, numGroups)

	for _, e := range s.graph.Edges() {
		bucket := s.model.HCG(s.model.MaskOf(e.Source), s.model.MaskOf(e.Target))
		s.hcgEdges[bucket]++
	}

	n := s.model.NumNodes()
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			bucket := s.model.HCG(s.model.MaskOf(u), s.model.MaskOf(v))
			s.hcgPairs[bucket]++
		}
	}
}

func (s *Sampler) evaluateLogLike() float64 {
	var l float64
	for r := 0; r < len(s.hcgEdges); r++ {
		e := s.hcgEdges[r]
		p := s.hcgPairs[r]
		l += s.ln.LnFact(e) + s.ln.LnFact(p-e) - s.ln.LnFact(p+1)
	}
	return l
}

// NumGroups, Groups, GroupSize, HCGEdges, HCGPairs and LogLike are the read
// accessors a driver polls after each Step to record a sample.
func (s *Sampler) NumGroups() int    { return s.model.NumGroups() }
func (s *Sampler) Groups() []uint64  { return s.model.Masks() }
func (s *Sampler) GroupSizes() []int { return s.model.GroupSizes() }
func (s *Sampler) HCGEdges() []int   { return cloneInts(s.hcgEdges) }
func (s *Sampler) HCGPairs() []int   { return cloneInts(s.hcgPairs) }
func (s *Sampler) LogLike() float64  { return s.logLike }
func (s *Sampler) NumNodes() int     { return s.model.NumNodes() }
func (s *Sampler) MaxGroups() int    { return s.model.MaxGroups() }

// Step performs one Metropolis-Hastings proposal: pick a structural or
// population move, apply it, update the HCG counters, evaluate the new
// log-likelihood, and accept or roll back. It returns whether the proposal
// was accepted; a no-op proposal (boundary case where no legal move exists)
// counts as a rejected step with no state change.
func (s *Sampler) Step() (bool, error) {
	n := s.model.NumNodes()
	g := s.model.NumGroups()
	pStructural := 1.0 / (2.0 * float64(g) * float64(n+1))

	if s.rng.Float64() < pStructural {
		return s.proposeStructural()
	}
	return s.proposePopulation()
}

func (s *Sampler) proposeStructural() (bool, error) {
	if s.model.NumGroups() == s.model.MaxGroups() {
		return false, nil
	}
	g := 1 + int(s.rng.Uint64N(uint64(s.model.NumGroups())))
	return s.commitOrRollback(func() community.Move {
		return s.model.AddGroupAt(g)
	})
}

func (s *Sampler) proposePopulation() (bool, error) {
	numGroups := s.model.NumGroups()
	if numGroups == 1 {
		return false, nil
	}
	g := 1 + int(s.rng.Uint64N(uint64(numGroups-1)))

	if s.rng.Float64() < 0.5 {
		if s.model.GroupSize(g) == 0 {
			return s.commitOrRollback(func() community.Move {
				return s.model.RemoveGroupAt(g)
			})
		}
		idx := int(s.rng.Uint64N(uint64(s.model.GroupSize(g))))
		return s.commitOrRollback(func() community.Move {
			return s.model.RemoveNodeFromGroupByIdx(g, idx)
		})
	}

	n := s.model.NumNodes()
	if s.model.GroupSize(g) == n {
		return false, nil
	}
	nOut := n - s.model.GroupSize(g)
	idx := int(s.rng.Uint64N(uint64(nOut)))
	return s.commitOrRollback(func() community.Move {
		return s.model.AddNodeToGroupByIdx(g, idx)
	})
}

// commitOrRollback applies propose (which mutates the model in place and
// returns the committed move), updates the HCG counters to match, and runs
// the Metropolis test. On rejection it invokes UndoMove and restores the
// counter snapshot, truncated to the post-rollback group count.
func (s *Sampler) commitOrRollback(propose func() community.Move) (bool, error) {
	edgesSnapshot := cloneInts(s.hcgEdges)
	pairsSnapshot := cloneInts(s.hcgPairs)
	oldLogLike := s.logLike

	mv := propose()

	switch mv.Kind {
	case community.AddGroup:
		s.hcgEdges = insertZero(s.hcgEdges, mv.Group)
		s.hcgPairs = insertZero(s.hcgPairs, mv.Group)
	case community.RemoveGroup:
		s.hcgEdges = removeAt(s.hcgEdges, mv.Group)
		s.hcgPairs = removeAt(s.hcgPairs, mv.Group)
	case community.AddNodeToGroup, community.RemoveNodeFromGroup:
		s.updateCountersForPopulationMove(mv)
	}

	newLogLike := s.evaluateLogLike()
	accept := s.acceptProposal(oldLogLike, newLogLike)

	if accept {
		s.logLike = newLogLike
		return true, nil
	}

	s.model.UndoMove(mv)
	numGroups := s.model.NumGroups()
	s.hcgEdges = edgesSnapshot[:numGroups]
	s.hcgPairs = pairsSnapshot[:numGroups]
	s.logLike = oldLogLike
	return false, nil
}

func (s *Sampler) acceptProposal(oldLogLike, newLogLike float64) bool {
	alpha := math.Exp(newLogLike - oldLogLike)
	if alpha >= 1 {
		return true
	}
	return s.rng.Float64() < alpha
}

// updateCountersForPopulationMove walks every other node and every edge
// touching the moved node once, moving its contribution from the bucket it
// occupied under the node's old mask to the bucket under its new mask.
func (s *Sampler) updateCountersForPopulationMove(mv community.Move) {
	u := mv.Node
	oldMask := mv.OldState
	newMask := s.model.MaskOf(u)

	n := s.model.NumNodes()
	for v := 0; v < n; v++ {
		if v == u {
			continue
		}
		vMask := s.model.MaskOf(v)
		oldBucket := s.model.HCGWithPrior(oldMask, vMask)
		newBucket := s.model.HCG(newMask, vMask)
		s.hcgPairs[oldBucket]--
		s.hcgPairs[newBucket]++
	}

	for _, v := range s.graph.Neighbors(u) {
		vMask := s.model.MaskOf(v)
		oldBucket := s.model.HCGWithPrior(oldMask, vMask)
		newBucket := s.model.HCG(newMask, vMask)
		s.hcgEdges[oldBucket]--
		s.hcgEdges[newBucket]++
	}
}

func cloneInts(s []int) []int {
	out := make([]int, len(s))
	copy(out, s)
	return out
}

func insertZero(s []int, i int) []int {
	s = append(s, 0)
	copy(s[i+1:], s[i:len(s)-1])
	s[i] = 0
	return s
}

func removeAt(s []int, i int) []int {
	return append(s[:i], s[i+1:]...)
}
