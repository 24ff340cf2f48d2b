package inline

import "sort"

// forest is the containment relation among wrapper spans: an index-based
// arena with per-span ordered child lists. It is built once and never
// mutated afterwards, later passes work on rendered nodes instead.
type forest struct {
	spans    []Span
	children [][]int
	roots    []int
}

// buildForest orders wrapper spans by (offset asc, end desc, class asc) and
// assigns every span the nearest preceding span that contains it as parent.
// The class order is the tie-break: for literally equal intervals a semantic
// entity wraps an alternation pair, never the other way around. Quadratic in
// the number of spans per line, which stays in the tens.
func buildForest(spans []Span) forest {
	ordered := make([]Span, len(spans))
	copy(ordered, spans)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Offset != ordered[j].Offset {
			return ordered[i].Offset < ordered[j].Offset
		}
		if ordered[i].End() != ordered[j].End() {
			return ordered[i].End() > ordered[j].End()
		}
		return ClassOf(ordered[i].Kind) < ClassOf(ordered[j].Kind)
	})

	f := forest{
		spans:    ordered,
		children: make([][]int, len(ordered)),
	}
	for i := range ordered {
		parent := -1
		for j := i - 1; j >= 0; j-- {
			if ordered[j].Contains(ordered[i]) {
				parent = j
				break
			}
		}
		if parent < 0 {
			f.roots = append(f.roots, i)
		} else {
			f.children[parent] = append(f.children[parent], i)
		}
	}
	return f
}
