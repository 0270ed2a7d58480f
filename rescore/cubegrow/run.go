package cubegrow

import (
	"math"

	"github.com/katalvlaran/synforest/feature"
	"github.com/katalvlaran/synforest/hypergraph"
)

// run holds one rescoring pass's mutable state: the input/output graphs,
// the per-node search sets, and the global output node-states/scores
// arrays the source indexes by output node id (node_states, scores).
type run struct {
	model *feature.Model
	score ScoreFunc
	coarse func(*hypergraph.Edge) float64
	cubeSizeMax int

	in     *hypergraph.Graph
	out    *hypergraph.Graph
	goalID hypergraph.NodeID

	states     []nodeSearch
	nodeStates []feature.State
	scores     []float64
}

// lazyJthBest ensures state[v].D has more than j entries, expanding v's
// candidate heap on demand (spec.md §4.6's lazy_jth_best).
func (r *run) lazyJthBest(v hypergraph.NodeID, j int) {
	st := &r.states[v]

	if !st.fired {
		for _, eid := range r.in.Nodes[v].Edges {
			edge := &r.in.Edges[eid]
			r.fire(v, eid, make([]int, len(edge.Tails)))
		}
		st.fired = true
	}

	for len(st.D) <= j && st.buf.Size()+len(st.D) < r.cubeSizeMax && !st.cand.Empty() {
		top, _ := st.cand.Pop()
		item := top.(*candidate)

		st.buf.Push(item)
		r.pushSucc(v, item)

		// enum_item is bounded by cand's new top score, not zero, so
		// admission stops short of candidates cand might still beat:
		// draining unboundedly while cand is non-empty would admit a
		// buffered candidate a not-yet-popped cand successor could still
		// outscore under a non-monotone score function. Once cand is
		// empty no fire call can add to it again (this item's successors
		// were just pushed), so buf drains unbounded (-Inf).
		bound := math.Inf(-1)
		if top, ok := st.cand.Peek(); ok {
			bound = top.(*candidate).score
		}
		r.enumItem(v, bound)
	}
}

// fire builds and enqueues the candidate for (edge, j) onto v's cand
// heap, recursively ensuring every tail has at least j_i+1 admitted
// derivations first. No-ops if (edge, j) was already fired, or if some
// tail cannot yet supply its j_i-th derivation.
func (r *run) fire(v hypergraph.NodeID, eid hypergraph.EdgeID, j []int) {
	st := &r.states[v]
	key := candidateKey(eid, j)
	if _, ok := st.uniques[key]; ok {
		return
	}

	edge := &r.in.Edges[eid]
	for i, t := range edge.Tails {
		r.lazyJthBest(t, j[i])
		if len(r.states[t].D) <= j[i] {
			return
		}
	}

	c := r.makeCandidate(v, eid, j)
	st.uniques[key] = struct{}{}
	st.cand.Push(c)
}

// pushSucc enqueues item's j-tuple neighbors (each index incremented by
// one in turn), spec.md §4.6's push_succ.
func (r *run) pushSucc(v hypergraph.NodeID, item *candidate) {
	for i := range item.j {
		next := append([]int(nil), item.j...)
		next[i]++
		r.fire(v, item.inEdge, next)
	}
}

// makeCandidate instantiates the output edge for (edge, j): antecedent
// tails are resolved to their real output node ids, the feature model is
// applied to produce the combined output state, and the candidate's
// score is the antecedent-score product times f(features).
func (r *run) makeCandidate(v hypergraph.NodeID, eid hypergraph.EdgeID, j []int) *candidate {
	inEdge := &r.in.Edges[eid]

	outEdge := *inEdge
	outEdge.Tails = append([]hypergraph.NodeID(nil), inEdge.Tails...)
	outEdge.Features = make(hypergraph.FeatureVector, len(inEdge.Features))
	for k, val := range inEdge.Features {
		outEdge.Features[k] = val
	}

	tailStates := make([]feature.State, len(j))
	score := 1.0
	for i, idx := range j {
		ant := r.states[inEdge.Tails[i]].D[idx]
		outEdge.Tails[i] = ant.outEdge.Head
		tailStates[i] = ant.state
		score *= r.scores[ant.outEdge.Head]
	}

	if r.coarse != nil {
		score /= r.coarse(inEdge)
	}

	isGoal := v == r.goalID
	state := r.model.Apply(tailStates, &outEdge, outEdge.Features, isGoal)
	score *= r.score(outEdge.Features)

	return &candidate{
		inEdge:  eid,
		outEdge: outEdge,
		j:       append([]int(nil), j...),
		score:   score,
		state:   state,
	}
}

// enumItem drains v's buf of every candidate whose score strictly
// exceeds bound into D, merging into an existing output node when its
// feature state byte-matches one already admitted at v (or, for the
// goal, into the single shared goal node), per spec.md §4.6's state
// merging: the stored score becomes the tropical max of the two.
func (r *run) enumItem(v hypergraph.NodeID, bound float64) {
	st := &r.states[v]
	isGoal := v == r.goalID

	for !st.buf.Empty() {
		top, _ := st.buf.Peek()
		item := top.(*candidate)
		if !(item.score > bound) {
			break
		}
		st.buf.Pop()

		var head hypergraph.NodeID
		if isGoal {
			head = r.admitGoal(item)
		} else {
			head = r.admit(st, item)
		}

		item.outEdge.Head = head
		eid := r.out.AddEdge(item.outEdge)
		r.out.ConnectEdge(eid, head)

		st.D = append(st.D, item)
	}
}

func (r *run) admitGoal(item *candidate) hypergraph.NodeID {
	if r.out.Goal == hypergraph.InvalidNode {
		r.nodeStates = append(r.nodeStates, item.state)
		r.scores = append(r.scores, item.score)
		r.out.Goal = r.out.AddNode()
		return r.out.Goal
	}
	r.model.Dealloc(item.state)
	if item.score > r.scores[r.out.Goal] {
		r.scores[r.out.Goal] = item.score
	}
	return r.out.Goal
}

func (r *run) admit(st *nodeSearch, item *candidate) hypergraph.NodeID {
	key := string(item.state)
	if id, ok := st.nodes[key]; ok {
		r.model.Dealloc(item.state)
		if item.score > r.scores[id] {
			r.scores[id] = item.score
		}
		return id
	}

	r.nodeStates = append(r.nodeStates, item.state)
	r.scores = append(r.scores, item.score)
	id := r.out.AddNode()
	st.nodes[key] = id
	return id
}
