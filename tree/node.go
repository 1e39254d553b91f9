// Copyright (c) 2017-2021, AT&T Intellectual Property.
// All rights reserved.
//
// Copyright (c) 2014-2017 by Brocade Communications Systems, Inc.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

// Package tree implements the grammar parse tree of spec §3: Node,
// the tagged Keyword/Variable/Reference variant, the terminal
// sentinel, and the origin back-pointer used by on-the-fly subtree
// expansion. Structurally this mirrors schema/tree.go's Tree/Model
// split, generalized from a YANG schema tree (containers, leafs,
// lists) to a CLI command tree (keywords, typed variables,
// subtree references).
package tree

import "github.com/danos/cligen/vtype"

// Kind tags which variant a Node is. Per spec §9's design note, the
// variant is implemented as a tagged struct rather than an
// inheritance hierarchy: all kind-specific behaviour lives in the
// single-node matcher (package match), not on Node itself.
type Kind int

const (
	KeywordNode Kind = iota
	VariableNode
	ReferenceNode
)

func (k Kind) String() string {
	switch k {
	case KeywordNode:
		return "keyword"
	case VariableNode:
		return "variable"
	case ReferenceNode:
		return "reference"
	default:
		return "unknown"
	}
}

// Preference is the per-node-kind arbitration weight of spec §4.4
// step 3 (exact keyword > typed scalar > string > rest). It is
// computed from the node, not stored statically, since the same
// Variable kind has a different weight depending on whether the
// candidate matched it exactly (keywords only) and on its declared
// scalar type.
type Preference int

const (
	PrefRest Preference = iota
	PrefString
	PrefScalar
	PrefKeyword
)

// Node is one grammar tree node: a literal keyword, a typed variable,
// or a reference to another subtree (resolved by the matcher, never
// matched directly — spec §4.3).
type Node struct {
	Kind Kind

	// Keyword fields.
	Command string
	Help    string

	// Variable fields.
	Var vtype.Variable

	// Reference fields: the symbolic name of the subtree to splice in
	// at match time (spec §4.4.3, "treeref expansion").
	RefName string

	Children []*Node

	// Hidden marks a node excluded from completion/help listings unless
	// the caller explicitly asks to see hidden commands (spec §4.4:
	// "hide: respect the hide setting of commands").
	Hidden bool

	// Expand marks a Variable node as having a declared enumeration or
	// registered expansion callback, so the walker should materialise
	// its synthetic keyword children (spec §4.4.3). A Variable with
	// Expand false only ever matches by type, never by enumeration.
	Expand bool

	// CachedValue is the durable side effect of a successful unique
	// match of this (or, for a synthetic keyword, this node's origin)
	// Variable: the walker overwrites it with the matched candidate
	// text so callers can read it back off the tree after the call
	// returns (spec §5: "the origin variable node's cached value is
	// overwritten — callers rely on this to retrieve the matched
	// value").
	CachedValue string

	// Origin is set on a synthetic keyword child created by choice
	// expansion (spec §4.4.3): it points back at the Variable node the
	// synthetic child was expanded from, so that value capture targets
	// the user-visible binding rather than the throwaway synthetic
	// node. Origin is a non-owning relation (spec §9) — never set to a
	// node that owns this one, and always either nil, itself, or a
	// Variable node. Per spec §3's invariant, Origin is transitively
	// idempotent: OriginOf() below dereferences at most one hop because
	// expansion always points directly at the original Variable, never
	// at another synthetic node.
	Origin *Node

	// expanded memoises the result of subtree expansion (spec §4.4.3:
	// "expansion is idempotent; memoisation is optional"). Guarded by
	// the single-threaded contract (spec §5) — see package match.
	expanded *Tree
}

// IsTerminal reports whether this node's children contain the empty
// sentinel, i.e. whether the grammar accepts completion at this node
// (spec §3: "A terminal node is one whose children contain the empty
// sentinel").
func (n *Node) IsTerminal() bool {
	for _, c := range n.Children {
		if c == nil {
			return true
		}
	}
	return false
}

// OriginOf returns the node whose name/value a captured binding should
// use: n itself unless n is a synthetic expansion keyword, in which
// case its Origin.
func (n *Node) OriginOf() *Node {
	if n.Origin != nil {
		return n.Origin
	}
	return n
}

// IsRest reports whether n is a rest-of-line variable (spec §4.4.1
// step 1: "rest-of-line variable when the child is a rest-of-line
// variable").
func (n *Node) IsRest() bool {
	return n.Kind == VariableNode && n.Var.Kind == vtype.Rest
}

// Expanded returns the memoised expansion previously attached by
// Attach, or nil if none has been computed yet.
func (n *Node) Expanded() *Tree {
	return n.expanded
}

// Attach memoises an expansion result on this node (spec §4.4.1 step
// 6: "attach the expanded subtree to the origin node as a memoised
// expansion").
func (n *Node) Attach(t *Tree) {
	n.expanded = t
}

// Tree is an ordered sequence of top-level Nodes (spec §3).
type Tree struct {
	Nodes []*Node
}

// New builds a Tree from top-level nodes.
func New(nodes ...*Node) *Tree {
	return &Tree{Nodes: nodes}
}

// Terminal returns a sentinel child marking "this node is a legal
// terminal" — the nil entry in Children, per spec §3.
func Terminal() *Node {
	return nil
}
