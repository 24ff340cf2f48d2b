package inline

import (
	"sort"
	"strings"
)

// Render turns a line's text plus its annotation spans into an ordered node
// sequence whose flattened text equals text exactly. Offsets are rune
// offsets, matching how PAGE producers count characters.
//
// Spans that merely overlap without nesting are inconsistent upstream data.
// The renderer clips such a span to the not-yet-consumed part of the line so
// no character is ever emitted twice; the entity unifier then repairs the
// person-over-alternation case on the finished sequence.
func Render(text string, spans []Span) []*Node {
	r := newRenderer(text, spans)

	var nodes []*Node
	if len(r.f.spans) == 0 {
		nodes = r.renderPlain(0, len(r.runes))
	} else {
		nodes = r.renderSpan(0, len(r.runes), r.f.roots)
	}

	unify(nodes, r.persons, r.choices)
	return nodes
}

type renderer struct {
	runes   []rune
	styles  []Span // textStyle spans, non-empty only
	persons []Span
	choices []Span
	f       forest
}

func newRenderer(text string, spans []Span) *renderer {
	r := &renderer{runes: []rune(text)}

	var wrappers []Span
	for _, s := range spans {
		if s.Empty() || s.Kind == KindReadingOrder {
			continue
		}
		if s.Style() {
			r.styles = append(r.styles, s)
			continue
		}
		wrappers = append(wrappers, s)
		switch {
		case s.Kind == KindPerson:
			r.persons = append(r.persons, s)
		case Alternation(s.Kind):
			r.choices = append(r.choices, s)
		}
	}
	r.f = buildForest(wrappers)
	return r
}

func (r *renderer) clamp(i int) int {
	return min(max(i, 0), len(r.runes))
}

// renderSpan renders the text range [start, end) inserting the given forest
// children (and, recursively, their subtrees) at their places.
func (r *renderer) renderSpan(start, end int, childIdxs []int) []*Node {
	if len(childIdxs) == 0 {
		return r.renderPlain(start, end)
	}

	idxs := make([]int, len(childIdxs))
	copy(idxs, childIdxs)
	sort.SliceStable(idxs, func(i, j int) bool {
		return r.f.spans[idxs[i]].Offset < r.f.spans[idxs[j]].Offset
	})

	var out []*Node
	cursor := start
	for _, ci := range idxs {
		w := r.f.spans[ci]
		cstart, cend := r.clamp(w.Offset), r.clamp(w.End())
		if cstart < cursor {
			// overlapping sibling, witness only what was not consumed yet
			cstart = cursor
		}
		if cstart >= cend {
			continue
		}
		if cursor < cstart {
			out = appendNodes(out, r.renderPlain(cursor, cstart))
		}
		inner := r.renderSpan(cstart, cend, r.f.children[ci])
		lead, node, trail := materialize(w, inner)
		out = appendRun(out, lead)
		out = append(out, node)
		out = appendRun(out, trail)
		cursor = cend
	}
	if cursor < end {
		out = appendNodes(out, r.renderPlain(cursor, end))
	}
	return out
}

// renderPlain renders a text range with no wrapper boundaries inside it,
// applying character styling from style spans that fall entirely within the
// range.
func (r *renderer) renderPlain(start, end int) []*Node {
	if start >= end {
		return nil
	}
	seg := r.runes[start:end]

	var ranges []styleRange
	for _, s := range r.styles {
		if s.Offset < start || s.End() > end {
			continue
		}
		rend := rendLabel(s.Attrs)
		if rend == "" {
			continue
		}
		ranges = append(ranges, styleRange{from: s.Offset - start, to: s.End() - start, rend: rend})
	}
	if len(ranges) == 0 {
		return []*Node{TextNode(string(seg))}
	}

	var out []*Node
	for _, slice := range sliceByRanges(seg, ranges) {
		if len(slice.rends) == 0 || punctuationOnly(slice.text) {
			// Styled runs around stray marks would fragment inline flow for
			// no gain, keep them plain.
			out = appendRun(out, slice.text)
			continue
		}
		hi := Element("hi").SetAttr("rend", strings.Join(slice.rends, " "))
		hi.AppendText(slice.text)
		out = append(out, hi)
	}
	return out
}

type styleRange struct {
	from, to int
	rend     string
}

type styledSlice struct {
	text  string
	rends []string // sorted union of covering rend labels
}

// sliceByRanges cuts seg at every range boundary and labels each resulting
// slice with the rend values of all ranges fully covering it.
func sliceByRanges(seg []rune, ranges []styleRange) []styledSlice {
	cuts := map[int]struct{}{0: {}, len(seg): {}}
	for i := range ranges {
		ranges[i].from = min(max(ranges[i].from, 0), len(seg))
		ranges[i].to = min(max(ranges[i].to, 0), len(seg))
		cuts[ranges[i].from] = struct{}{}
		cuts[ranges[i].to] = struct{}{}
	}
	points := make([]int, 0, len(cuts))
	for p := range cuts {
		points = append(points, p)
	}
	sort.Ints(points)

	var slices []styledSlice
	for i := 0; i+1 < len(points); i++ {
		from, to := points[i], points[i+1]
		if from == to {
			continue
		}
		labels := map[string]struct{}{}
		for _, rg := range ranges {
			if rg.from <= from && to <= rg.to && rg.from < rg.to {
				labels[rg.rend] = struct{}{}
			}
		}
		rends := make([]string, 0, len(labels))
		for l := range labels {
			rends = append(rends, l)
		}
		sort.Strings(rends)
		slices = append(slices, styledSlice{text: string(seg[from:to]), rends: rends})
	}
	return slices
}

// styleFlags is the canonical flag order inside a single rend label.
var styleFlags = []string{"bold", "italic", "underline", "superscript", "subscript"}

func rendLabel(attrs Attrs) string {
	var set []string
	for _, flag := range styleFlags {
		if attrs.Value(flag) == "true" {
			set = append(set, flag)
		}
	}
	return strings.Join(set, " ")
}

const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// punctuationOnly reports whether the text, ignoring surrounding whitespace,
// consists solely of punctuation characters.
func punctuationOnly(s string) bool {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return false
	}
	for _, r := range trimmed {
		if !strings.ContainsRune(asciiPunctuation, r) {
			return false
		}
	}
	return true
}
