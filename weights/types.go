package weights

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/synforest/hypergraph"
)

// Vector is a loaded feature-weights file: a sparse name -> weight map
// applied to an edge's FeatureVector as a dot product, per spec.md §6.
// A Vector built with NewUniform ignores its map and scores every
// present feature at weight 1.0, implementing the "--weights-one" CLI
// flag spec.md's output/pruning stages must respect.
type Vector struct {
	w       map[string]float64
	uniform bool
}

// New returns an empty Vector; unset features score 0.
func New() *Vector {
	return &Vector{w: make(map[string]float64)}
}

// NewUniform returns a Vector that scores every feature present in a
// FeatureVector at weight 1.0, regardless of what Load would have
// assigned — the "--weights-one" behavior.
func NewUniform() *Vector {
	return &Vector{uniform: true}
}

// Set assigns the weight for name, overwriting any prior value.
func (v *Vector) Set(name string, weight float64) {
	if v.w == nil {
		v.w = make(map[string]float64)
	}
	v.w[name] = weight
}

// Get returns the weight assigned to name, or 0 if unset (1 if v is
// uniform).
func (v *Vector) Get(name string) float64 {
	if v.uniform {
		return 1
	}
	return v.w[name]
}

// Load parses the line-oriented "feature value" weights format: one
// assignment per line, blank lines and "#"-prefixed comments ignored.
func Load(r io.Reader) (*Vector, error) {
	v := New()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, ErrParse
		}
		val, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, ErrParse
		}
		v.w[fields[0]] = val
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return v, nil
}

// Score computes the log-linear dot product of v against f, an additive
// (log-domain) score.
func (v *Vector) Score(f hypergraph.FeatureVector) float64 {
	sum := 0.0
	for name, val := range f {
		sum += v.Get(name) * val
	}
	return sum
}

// EdgeScore is Score applied to an edge's Features. It has the shape of
// kbest.ScoreFunc, but its value is log-domain, while kbest combines edge
// weights multiplicatively.
func (v *Vector) EdgeScore(e *hypergraph.Edge) float64 {
	return v.Score(e.Features)
}

// Exp exponentiates Score, yielding the multiplicative probability-space
// score cube-growing's ScoreFunc expects (f(features) = exp(w . features),
// the spec §8 scenario-2 convention).
func (v *Vector) Exp(f hypergraph.FeatureVector) float64 {
	return math.Exp(v.Score(f))
}
