package graph

import "strings"

// String renders the graph back to its textual form. The output re-parses
// into a structurally identical graph: attribute inclusions first, then
// subgraphs, both in insertion order.
func (r *Root) String() string {
	var b strings.Builder
	r.renderInto(&b)
	return b.String()
}

// String renders the subgraph as it would appear inside its parent's
// attribute list, e.g. "department(name)" or "animals:Dog(breed)".
func (s *Sub) String() string {
	var b strings.Builder
	s.renderHeader(&b)
	b.WriteByte('(')
	s.renderInto(&b)
	b.WriteByte(')')
	return b.String()
}

func (s *Sub) renderHeader(b *strings.Builder) {
	b.WriteString(s.attr)
	if s.treat != "" {
		b.WriteByte(':')
		b.WriteString(s.treat)
	}
}

func (n *node) renderInto(b *strings.Builder) {
	first := true
	for _, attr := range n.attrs {
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(attr)
	}
	for _, sub := range n.subs {
		if !first {
			b.WriteString(", ")
		}
		first = false
		sub.renderHeader(b)
		b.WriteByte('(')
		sub.renderInto(b)
		b.WriteByte(')')
	}
}
