package graph

import "github.com/syssam/fetchgraph/mapping"

// Merge unions the attribute inclusions and subgraphs of srcs into dst.
// All graphs must be bound to the same entity type. Subgraphs with the
// same (attribute, treat) key are merged recursively; distinct treat
// narrowings stay separate.
func Merge(dst *Root, srcs ...*Root) error {
	for _, src := range srcs {
		if src == nil {
			continue
		}
		if src.Entity() != dst.Entity() {
			return mapping.NewResolutionError(
				dst.Entity().Name(), src.Entity().Name(), "",
				"cannot merge graphs of different entity types")
		}
		if err := dst.node.mergeFrom(&src.node); err != nil {
			return err
		}
	}
	return nil
}

func (n *node) mergeFrom(other *node) error {
	for _, attr := range other.attrs {
		if err := n.AddAttribute(attr); err != nil {
			return err
		}
	}
	for _, sub := range other.subs {
		dst, err := n.SubGraphTreat(sub.attr, sub.treat)
		if err != nil {
			return err
		}
		if err := dst.node.mergeFrom(&sub.node); err != nil {
			return err
		}
	}
	return nil
}
