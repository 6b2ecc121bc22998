package graph

import (
	"fmt"

	"socialgraph/backend/internal/constants"
)

// ============================================================================
// Graph Types
// ============================================================================

// Label is the kind of a node
type Label string

const (
	LabelUser    Label = constants.LabelUser
	LabelPost    Label = constants.LabelPost
	LabelComment Label = constants.LabelComment
)

// Labels lists every node kind the store knows about
var Labels = []Label{LabelUser, LabelPost, LabelComment}

// Validate rejects labels outside the closed set. Labels are interpolated
// into Cypher, so this check guards every query.
func (l Label) Validate() error {
	switch l {
	case LabelUser, LabelPost, LabelComment:
		return nil
	}
	return fmt.Errorf("unknown node label %q", string(l))
}

// RelType is the type of a relationship
type RelType string

const (
	RelFriendsWith RelType = constants.RelFriendsWith
	RelCreated     RelType = constants.RelCreated
	RelHasComment  RelType = constants.RelHasComment
	RelLikes       RelType = constants.RelLikes
)

// Validate rejects relationship types outside the closed set
func (t RelType) Validate() error {
	switch t {
	case RelFriendsWith, RelCreated, RelHasComment, RelLikes:
		return nil
	}
	return fmt.Errorf("unknown relationship type %q", string(t))
}

// Direction selects which edges Neighbors follows
type Direction int

const (
	Outgoing Direction = iota
	Incoming
	Both
)

func (d Direction) String() string {
	switch d {
	case Outgoing:
		return "outgoing"
	case Incoming:
		return "incoming"
	default:
		return "both"
	}
}

// NodeRef identifies a node by kind and id
type NodeRef struct {
	Label Label
	ID    string
}

func (r NodeRef) String() string {
	return string(r.Label) + ":" + r.ID
}

// Ref builds a NodeRef
func Ref(label Label, id string) NodeRef {
	return NodeRef{Label: label, ID: id}
}

// Node is a stored graph entity with its raw properties. The id is also kept
// under the "id" property when persisted.
type Node struct {
	Label Label
	ID    string
	Props map[string]any
}

// Ref returns the node's reference
func (n Node) Ref() NodeRef {
	return NodeRef{Label: n.Label, ID: n.ID}
}

// Edge is a typed relationship between two nodes. Undirected edges are
// matched regardless of endpoint order.
type Edge struct {
	Type       RelType
	From       NodeRef
	To         NodeRef
	Undirected bool
}

// Canonical orders the endpoints of an undirected edge by id so that (a,b)
// and (b,a) compare equal. Directed edges are returned unchanged.
func (e Edge) Canonical() Edge {
	if e.Undirected && e.To.ID < e.From.ID {
		e.From, e.To = e.To, e.From
	}
	return e
}

// Validate checks the edge's type and endpoint labels
func (e Edge) Validate() error {
	if err := e.Type.Validate(); err != nil {
		return err
	}
	if err := e.From.Label.Validate(); err != nil {
		return err
	}
	return e.To.Label.Validate()
}

func (e Edge) String() string {
	arrow := "->"
	if e.Undirected {
		arrow = "--"
	}
	return fmt.Sprintf("(%s)-[%s]%s(%s)", e.From, e.Type, arrow, e.To)
}
