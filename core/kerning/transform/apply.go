package transform

import (
	"math"

	"github.com/npillmayer/kerntool/core"
	"github.com/npillmayer/kerntool/core/kerning"
	"github.com/npillmayer/kerntool/core/kerning/query"
)

// state is a data source whose kerning table is being transformed. Glyphs,
// groups and pair classification are taken from the original source.
type state struct {
	kerning.DataSource
	kern map[kerning.Pair]float64
}

func (st *state) Pairs() []kerning.Pair {
	pairs := make([]kerning.Pair, 0, len(st.kern))
	for pair := range st.kern {
		pairs = append(pairs, pair)
	}
	kerning.SortPairs(pairs)
	return pairs
}

func (st *state) Value(pair kerning.Pair) (float64, bool) {
	v, ok := st.kern[pair]
	return v, ok
}

// Apply executes rules in order on the kerning of src and returns the
// resulting kerning table. The pattern of each rule is a kerning pair
// expression, evaluated against the kerning as left behind by the rules
// before it. src is not modified.
//
//	copy       add a pair with sides replaced by the non-empty replacements,
//	           keeping the value; existing pairs are not overwritten
//	remove     remove pairs
//	scale      multiply values, rounding to integers
//	shift      add to values
//	round      round values to a multiple of value
//	threshold  remove pairs with an absolute value below value
//
// For round and threshold, removeRedundantExceptions additionally removes
// exception pairs which have the same value as the group kerning they
// override.
func Apply(rules []Rule, src kerning.DataSource) (map[kerning.Pair]float64, error) {
	st := &state{DataSource: src, kern: make(map[kerning.Pair]float64)}
	for _, pair := range src.Pairs() {
		if v, ok := src.Value(pair); ok {
			st.kern[pair] = v
		}
	}
	for _, r := range rules {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		selected, err := query.FilterPairs(r.Pattern(), st.Pairs(), st)
		if err != nil {
			return nil, err
		}
		tracer().Debugf("%v selects %d pairs", r, len(selected))
		if err := st.apply(r, selected); err != nil {
			return nil, err
		}
	}
	return st.kern, nil
}

func (st *state) apply(r Rule, selected []kerning.Pair) error {
	switch r.Type {
	case Copy:
		side1 := r.Settings[Side1Replacement].(string)
		side2 := r.Settings[Side2Replacement].(string)
		for _, pair := range selected {
			target := pair
			if side1 != "" {
				target.Side1 = side1
			}
			if side2 != "" {
				target.Side2 = side2
			}
			if _, exists := st.kern[target]; !exists {
				st.kern[target] = st.kern[pair]
			}
		}
	case Remove:
		for _, pair := range selected {
			delete(st.kern, pair)
		}
	case Scale:
		factor := r.Settings[Value].(float64)
		for _, pair := range selected {
			st.kern[pair] = math.Round(st.kern[pair] * factor)
		}
	case Shift:
		delta := float64(r.Settings[Value].(int))
		for _, pair := range selected {
			st.kern[pair] += delta
		}
	case Round:
		unit := r.Settings[Value].(int)
		if unit <= 0 {
			return core.Error(core.EINVALID, "round rule needs a positive value, is %d", unit)
		}
		for _, pair := range selected {
			st.kern[pair] = math.Round(st.kern[pair]/float64(unit)) * float64(unit)
		}
	case Threshold:
		limit := float64(r.Settings[Value].(int))
		for _, pair := range selected {
			if math.Abs(st.kern[pair]) < limit {
				delete(st.kern, pair)
			}
		}
	}
	if (r.Type == Round || r.Type == Threshold) && r.Settings[RemoveRedundantExceptions].(bool) {
		st.removeRedundantExceptions(selected)
	}
	return nil
}

// removeRedundantExceptions removes exception pairs whose value equals
// the value of the group pair they override.
func (st *state) removeRedundantExceptions(selected []kerning.Pair) {
	for _, pair := range selected {
		v, ok := st.kern[pair]
		if !ok {
			continue
		}
		t1, t2 := st.PairType(pair)
		if t1 != kerning.ExceptionPair && t2 != kerning.ExceptionPair {
			continue
		}
		fallback := pair
		if t1 == kerning.ExceptionPair {
			fallback.Side1, _ = st.GroupOf(pair.Side1, kerning.Side1)
		}
		if t2 == kerning.ExceptionPair {
			fallback.Side2, _ = st.GroupOf(pair.Side2, kerning.Side2)
		}
		if g, ok := st.kern[fallback]; ok && g == v {
			tracer().Debugf("removing redundant exception %v = %g", pair, v)
			delete(st.kern, pair)
		}
	}
}
