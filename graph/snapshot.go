package graph

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/fetchgraph/mapping"
)

// Snapshot is the structural form of a root graph, decoupled from the
// mapping model. It encodes with msgpack, so parsed fetch plans can be
// cached and restored against a model later.
type Snapshot struct {
	Entity string       `msgpack:"entity"`
	Name   string       `msgpack:"name,omitempty"`
	Node   NodeSnapshot `msgpack:"node"`
}

// NodeSnapshot holds the inclusions of one graph node.
type NodeSnapshot struct {
	Attributes []string      `msgpack:"attributes,omitempty"`
	Subs       []SubSnapshot `msgpack:"subs,omitempty"`
}

// SubSnapshot holds one child subgraph keyed by attribute and optional
// treat narrowing.
type SubSnapshot struct {
	Attribute string       `msgpack:"attribute"`
	Treat     string       `msgpack:"treat,omitempty"`
	Node      NodeSnapshot `msgpack:"node"`
}

// Take captures the structure of a root graph.
func Take(r *Root) *Snapshot {
	return &Snapshot{
		Entity: r.Entity().Name(),
		Name:   r.Name(),
		Node:   takeNode(&r.node),
	}
}

func takeNode(n *node) NodeSnapshot {
	s := NodeSnapshot{Attributes: n.Attributes()}
	for _, sub := range n.subs {
		s.Subs = append(s.Subs, SubSnapshot{
			Attribute: sub.attr,
			Treat:     sub.treat,
			Node:      takeNode(&sub.node),
		})
	}
	return s
}

// Encode serializes the snapshot with msgpack.
func (s *Snapshot) Encode() ([]byte, error) {
	return msgpack.Marshal(s)
}

// DecodeSnapshot deserializes a snapshot encoded with Encode.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Restore rebuilds a root graph from the snapshot against a model. The
// snapshot's attribute names are re-validated against the model, so a
// snapshot taken against a different model version fails rather than
// producing an inconsistent graph.
func (s *Snapshot) Restore(m *mapping.Model) (*Root, error) {
	entity, err := m.Entity(s.Entity)
	if err != nil {
		return nil, err
	}
	r := NewNamedRoot(s.Name, entity)
	if err := restoreNode(&r.node, s.Node); err != nil {
		return nil, err
	}
	return r, nil
}

func restoreNode(n *node, s NodeSnapshot) error {
	for _, attr := range s.Attributes {
		if err := n.AddAttribute(attr); err != nil {
			return err
		}
	}
	for _, sub := range s.Subs {
		dst, err := n.SubGraphTreat(sub.Attribute, sub.Treat)
		if err != nil {
			return err
		}
		if err := restoreNode(&dst.node, sub.Node); err != nil {
			return err
		}
	}
	return nil
}
