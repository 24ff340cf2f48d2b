package inline

// Entity unification is a best-effort repair for inconsistent upstream data:
// a person span and an alternation span that describe overlapping but not
// properly nested intervals, so the containment forest left them as
// siblings. It runs only on the finished node sequence and is idempotent.

// unify re-parents, for every person span overlapping an alternation span
// without containment, the first alternation-pair node found depth-first
// under a fresh person element. Search never descends into an existing
// person wrapper so nothing is double-wrapped, and after one successful
// repair per person span no further candidates are rewrapped. Replacement
// happens in place, so tails stay where they are as siblings.
func unify(nodes []*Node, persons, choices []Span) {
	for _, p := range persons {
		for _, c := range choices {
			if !p.Overlaps(c) {
				continue
			}
			if p.Contains(c) || c.Contains(p) {
				// properly nested pairs were already unified by containment
				continue
			}
			if wrapFirstChoice(nodes, p.Attrs) {
				break
			}
		}
	}
}

func wrapFirstChoice(nodes []*Node, person Attrs) bool {
	for i, n := range nodes {
		if n.IsText() || n.Tag == "persName" {
			continue
		}
		if n.Tag == "choice" {
			pers := personNode(person)
			pers.Append(n)
			nodes[i] = pers
			return true
		}
		if wrapFirstChoice(n.Children, person) {
			return true
		}
	}
	return false
}
