package inline

import (
	"strings"
	"unicode"
)

// wikidataBase is the reference URL prefix derived from a wikiData id.
const wikidataBase = "https://www.wikidata.org/wiki/"

// materialize converts one wrapper span plus its already-rendered inner
// content into the final node for its kind. Leading and trailing whitespace
// of the content is returned to the caller to be emitted as plain siblings:
// no produced element begins or ends with whitespace.
func materialize(w Span, inner []*Node) (lead string, node *Node, trail string) {
	switch w.Kind {
	case KindAbbrev, KindSic, KindRegularised:
		return materializeChoice(w, inner)

	case KindNum:
		el := Element("num")
		copyAttrs(el, w.Attrs, "type", "value")
		lead, trail = hoistEdges(el, inner)
		return lead, el, trail

	case KindPerson:
		el := personNode(w.Attrs)
		lead, trail = hoistEdges(el, inner)
		return lead, el, trail

	case KindPlace:
		el := Element("placeName")
		lead, trail = hoistEdges(el, inner)
		// geographic attributes become child elements after the witness text
		for _, key := range []string{"country", "region", "settlement", "district"} {
			if v, ok := w.Attrs.Get(key); ok {
				child := Element(key)
				child.AppendText(v)
				el.Append(child)
			}
		}
		return lead, el, trail

	case KindRef:
		el := Element("ref")
		copyAttrs(el, w.Attrs, "type", "target")
		lead, trail = hoistEdges(el, inner)
		return lead, el, trail

	case KindUnclear:
		el := Element("unclear")
		copyAttrs(el, w.Attrs, "reason")
		lead, trail = hoistEdges(el, inner)
		return lead, el, trail

	default:
		// generic fallback: unrecognized annotations are never dropped
		el := Element("seg").SetAttr("type", w.Kind)
		for _, attr := range w.Attrs {
			el.SetAttr("data-"+attr.Key, attr.Value)
		}
		lead, trail = hoistEdges(el, inner)
		return lead, el, trail
	}
}

// materializeChoice builds the two-part alternation shape. For abbrev and sic
// the witness content goes first and the attribute-supplied reading second;
// regularised is asymmetric: the original form comes from an attribute and an
// explicit regularised attribute wins over the rendered witness content.
func materializeChoice(w Span, inner []*Node) (string, *Node, string) {
	choice := Element("choice")

	var aTag, bTag, alt string
	switch w.Kind {
	case KindAbbrev:
		aTag, bTag = "abbr", "expan"
		alt = w.Attrs.Value("expansion")
	case KindSic:
		aTag, bTag = "sic", "corr"
		alt = w.Attrs.Value("correction")
	case KindRegularised:
		return materializeRegularised(w, inner)
	}

	a := Element(aTag)
	lead, trail := hoistEdges(a, inner)
	b := Element(bTag)
	b.Literal = true
	b.AppendText(alt)
	choice.Append(a, b)
	return lead, choice, trail
}

// materializeRegularised is the asymmetric alternation: the line text is the
// regularised form and flows through the reg side, while orig carries the
// attribute-supplied pre-regularisation form as a literal.
func materializeRegularised(w Span, inner []*Node) (string, *Node, string) {
	choice := Element("choice")
	a := Element("orig")
	a.Literal = true
	b := Element("reg")

	origVal, haveOrig := w.Attrs.Get("original")
	if !haveOrig {
		origVal, _ = w.Attrs.Get("orig")
	}
	a.AppendText(origVal)

	regVal, haveReg := w.Attrs.Get("regularised")
	if !haveReg {
		regVal, haveReg = w.Attrs.Get("reg")
	}

	if !haveReg {
		// no explicit regularised form, the rendered witness content is it
		lead, trail := hoistEdges(b, inner)
		choice.Append(a, b)
		return lead, choice, trail
	}

	// An explicit regularised value wins over the rendered content. Plain
	// runs are dropped so the witness text is not duplicated next to it,
	// only nested elements survive.
	var kept []*Node
	for _, n := range inner {
		if !n.IsText() {
			kept = append(kept, n)
		}
	}

	b.AppendText(regVal)
	if len(kept) == 0 {
		choice.Append(a, b)
		return "", choice, ""
	}

	tmp := Element("tmp")
	lead, trail := hoistEdges(tmp, kept)
	b.Append(tmp.Children...)
	choice.Append(a, b)
	return lead, choice, trail
}

// personNode builds the entity node shared by the materializer and the
// post-pass unifier.
func personNode(attrs Attrs) *Node {
	el := Element("persName")
	if v, ok := attrs.Get("type"); ok {
		el.SetAttr("type", v)
	}
	if v, ok := attrs.Get("wikiData"); ok {
		el.SetAttr("ref", wikidataBase+v)
	}
	if v, ok := attrs.Get("firstname"); ok {
		el.SetAttr("firstname", v)
	}
	if attrs.Value("continued") == "true" {
		el.SetAttr("continued", "true")
	}
	return el
}

func copyAttrs(el *Node, attrs Attrs, keys ...string) {
	for _, key := range keys {
		if v, ok := attrs.Get(key); ok {
			el.SetAttr(key, v)
		}
	}
}

// hoistEdges moves inner content into target, then strips a leading
// whitespace run off the very first text and a trailing run off the very
// last text, returning both so the caller can emit them outside the element.
func hoistEdges(target *Node, inner []*Node) (lead, trail string) {
	for _, n := range inner {
		if n.IsText() {
			target.AppendText(n.Text)
		} else {
			target.Append(n)
		}
	}

	if len(target.Children) > 0 {
		if first := target.Children[0]; first.IsText() {
			rest := strings.TrimLeftFunc(first.Text, unicode.IsSpace)
			lead = first.Text[:len(first.Text)-len(rest)]
			first.Text = rest
		}
		if last := target.Children[len(target.Children)-1]; last.IsText() {
			rest := strings.TrimRightFunc(last.Text, unicode.IsSpace)
			trail = last.Text[len(rest):]
			last.Text = rest
		}
		target.Children = dropEmptyRuns(target.Children)
	}
	return lead, trail
}

func dropEmptyRuns(nodes []*Node) []*Node {
	kept := nodes[:0]
	for _, n := range nodes {
		if n.IsText() && n.Text == "" {
			continue
		}
		kept = append(kept, n)
	}
	return kept
}
