package inline

import "strings"

// Node is one item of a rendered sequence: either a text run (Tag empty) or
// an element. Element children interleave text runs and nested elements, so
// what ElementTree-style models keep in text/tail slots is represented here
// as ordinary ordered siblings. Post passes may move a whole element but its
// trailing text stays in place as a sibling, which keeps line text intact.
type Node struct {
	Tag      string
	Text     string
	Attrs    Attrs
	Children []*Node

	// Literal marks an element whose content is an alternative reading
	// supplied by annotation attributes (expansion, correction, original)
	// rather than witness text. FlattenText skips literal subtrees so the
	// flattened sequence reproduces the input line text.
	Literal bool
}

// TextNode returns a new text run node.
func TextNode(s string) *Node { return &Node{Text: s} }

// Element returns a new element node.
func Element(tag string) *Node { return &Node{Tag: tag} }

// IsText reports whether the node is a plain text run.
func (n *Node) IsText() bool { return n.Tag == "" }

// SetAttr sets an attribute keeping insertion order.
func (n *Node) SetAttr(key, value string) *Node {
	n.Attrs = n.Attrs.Set(key, value)
	return n
}

// AppendText appends a text run, merging it into a trailing text run if one
// is already there.
func (n *Node) AppendText(s string) {
	if s == "" {
		return
	}
	if l := len(n.Children); l > 0 && n.Children[l-1].IsText() {
		n.Children[l-1].Text += s
		return
	}
	n.Children = append(n.Children, TextNode(s))
}

// Append appends a child node.
func (n *Node) Append(children ...*Node) {
	n.Children = append(n.Children, children...)
}

// FlattenText concatenates every witness text run in the sequence in
// document order, skipping literal subtrees. For any rendering this
// reproduces the input line text exactly.
func FlattenText(nodes []*Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		flattenInto(&sb, n)
	}
	return sb.String()
}

func flattenInto(sb *strings.Builder, n *Node) {
	if n.Literal {
		return
	}
	if n.IsText() {
		sb.WriteString(n.Text)
		return
	}
	for _, c := range n.Children {
		flattenInto(sb, c)
	}
}

// appendNodes concatenates node sequences merging adjacent text runs.
func appendNodes(out []*Node, nodes []*Node) []*Node {
	for _, n := range nodes {
		if n.IsText() {
			out = appendRun(out, n.Text)
			continue
		}
		out = append(out, n)
	}
	return out
}

// appendRun adds a text run to a node slice merging adjacent runs.
func appendRun(nodes []*Node, s string) []*Node {
	if s == "" {
		return nodes
	}
	if l := len(nodes); l > 0 && nodes[l-1].IsText() {
		nodes[l-1].Text += s
		return nodes
	}
	return append(nodes, TextNode(s))
}
