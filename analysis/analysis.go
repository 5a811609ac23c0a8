// Package analysis looks at a net through its incidence matrix.
package analysis

import (
	"math"
	"slices"
	"strconv"
	"strings"

	petri "github.com/jt05610/petri-industry"
	"gonum.org/v1/gonum/mat"
)

// Omega marks a place that can hold arbitrarily many tokens.
var Omega = math.Inf(1)

// Net is a snapshot of the active places and transitions of a petri.Net.
// Rows of the incidence matrix follow Transitions, columns follow Places.
type Net struct {
	Places      []*petri.Place
	Transitions []*petri.Transition

	index map[*petri.Place]int
}

func New(n *petri.Net) *Net {
	net := &Net{
		Places:      n.Places.All(),
		Transitions: n.Transitions.All(),
		index:       make(map[*petri.Place]int),
	}
	for i, p := range net.Places {
		net.index[p] = i
	}
	return net
}

type State []float64

// Marking returns the current token counts in place order.
func (net *Net) Marking() State {
	ret := make(State, len(net.Places))
	for i, p := range net.Places {
		ret[i] = float64(p.Tokens())
	}
	return ret
}

func (net *Net) FiringVector(t int) *mat.Dense {
	v := make([]float64, len(net.Transitions))
	v[t] = 1
	return mat.NewDense(1, len(net.Transitions), v)
}

// Incidence holds +1 where a transition produces into a place and -1 where it
// consumes from it. A place that is both input and output nets to 0. The net
// needs at least one place and one transition.
func (net *Net) Incidence() *mat.Dense {
	m := len(net.Places)
	n := len(net.Transitions)
	d := make([]float64, m*n)
	for i, t := range net.Transitions {
		for _, p := range t.Outputs() {
			if j, ok := net.index[p]; ok {
				d[i*m+j]++
			}
		}
		for _, p := range t.Inputs() {
			if j, ok := net.index[p]; ok {
				d[i*m+j]--
			}
		}
	}
	return mat.NewDense(n, m, d)
}

// Enabled reports whether transition t can fire in state.
func (net *Net) Enabled(state State, t int) bool {
	for _, p := range net.Transitions[t].Inputs() {
		j, ok := net.index[p]
		if !ok || state[j] < 1 {
			return false
		}
	}
	return true
}

// NextState fires transition t on state using the state equation. It
// reports false when t is not enabled.
func (net *Net) NextState(state State, t int) (State, bool) {
	if !net.Enabled(state, t) {
		return nil, false
	}
	f := make([]float64, len(net.Transitions))
	f[t] = 1
	return net.Predict(state, f), true
}

// Predict applies m' = m + f·C for a firing count vector f. Firing order and
// enablement along the way are not checked.
func (net *Net) Predict(state State, f []float64) State {
	if len(net.Places) == 0 {
		return State{}
	}
	if len(net.Transitions) == 0 {
		return slices.Clone(state)
	}
	var delta mat.Dense
	delta.Mul(mat.NewDense(1, len(f), slices.Clone(f)), net.Incidence())
	ret := make(State, len(state))
	for i := range ret {
		ret[i] = state[i] + delta.At(0, i)
	}
	return ret
}

func (s State) Equal(b State) bool {
	return slices.Equal(s, b)
}

// Covers reports whether s has at least as many tokens as b everywhere.
func (s State) Covers(b State) bool {
	for i := range s {
		if s[i] < b[i] {
			return false
		}
	}
	return true
}

// Dominates reports whether s covers b and has more tokens somewhere.
func (s State) Dominates(b State) bool {
	return s.Covers(b) && !s.Equal(b)
}

func (s State) String() string {
	parts := make([]string, len(s))
	for i, v := range s {
		if math.IsInf(v, 1) {
			parts[i] = "ω"
			continue
		}
		parts[i] = strconv.Itoa(int(v))
	}
	return "(" + strings.Join(parts, ",") + ")"
}
