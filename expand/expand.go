// Copyright (c) 2017-2021, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

// Package expand implements the grammar-side callback contracts of
// spec §4.4.3/§6: resolving a Reference node to a concrete subtree,
// and expanding a Variable's enumerated or dynamically-computed value
// set into synthetic Keyword children.
//
// These are grounded on cligen_match.c's pt_expand_treeref/pt_expand_2
// calls, exposed here as plain function types per spec §6 rather than
// as an expression-language engine (see DESIGN.md for why the
// teacher's xpath package was not wired in for this purpose).
package expand

import (
	"fmt"

	"github.com/danos/cligen/binding"
	"github.com/danos/cligen/tree"
	"github.com/danos/mgmterror"
)

// ReferenceResolver maps a Reference node's symbolic name to a
// concrete subtree, to be spliced in at the Reference's position for
// the scope of one match (spec §4.4.3: "treeref expansion").
type ReferenceResolver func(name string) (*tree.Tree, error)

// ChoiceExpander populates the candidate command/help strings for a
// Variable node with an enumerated or computed value set. It receives
// the binding vector accumulated so far, so later arguments can depend
// on earlier ones (spec §4.4.3: "The callback signature takes the
// current binding vector so values can depend on earlier arguments").
type ChoiceExpander func(v *tree.Node, bindings binding.Vector) (commands, help []string, err error)

// Resolvers bundles the two grammar-side callbacks the walker needs.
// A nil field means "no references/choices in this grammar" — not an
// error, since most grammar fragments use neither.
type Resolvers struct {
	Reference ReferenceResolver
	Choice    ChoiceExpander
}

func errUnresolvedReference(name string) error {
	e := mgmterror.NewOperationFailedApplicationError()
	e.Message = fmt.Sprintf("reference %q does not resolve to any subtree", name)
	return e
}

// Tree resolves a Reference node via r.Reference, erroring per spec §7
// ("Grammar inconsistency... propagated from the expansion callback;
// matcher treats as resource failure") when no resolver is configured
// or it returns no subtree.
func (r Resolvers) Tree(name string) (*tree.Tree, error) {
	if r.Reference == nil {
		return nil, errUnresolvedReference(name)
	}
	t, err := r.Reference(name)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errUnresolvedReference(name)
	}
	return t, nil
}

// Expand runs r.Choice (if configured) and turns its (commands, help)
// pair into synthetic Keyword children whose Origin points back at v,
// per spec §4.4.3. A nil Choice callback, or one returning no
// candidates, yields no synthetic children — not an error.
func (r Resolvers) Expand(v *tree.Node, bindings binding.Vector) ([]*tree.Node, error) {
	if r.Choice == nil {
		return nil, nil
	}
	commands, help, err := r.Choice(v, bindings)
	if err != nil {
		return nil, err
	}
	children := make([]*tree.Node, 0, len(commands))
	for i, c := range commands {
		h := ""
		if i < len(help) {
			h = help[i]
		}
		children = append(children, &tree.Node{
			Kind:    tree.KeywordNode,
			Command: c,
			Help:    h,
			Origin:  v,
		})
	}
	return children, nil
}

// StaticExpander builds a ChoiceExpander from a fixed table of
// variable-name -> enumerated values, for the common case of a closed
// enumeration (spec §4.4.3's "declared enumerations", as opposed to
// "registered expansion callbacks" for computed sets). Grounded on
// schema/types.go's Enumeration type, which is exactly this case for a
// YANG leaf's enum restriction.
func StaticExpander(values map[string][]string) ChoiceExpander {
	return func(v *tree.Node, _ binding.Vector) (commands, help []string, err error) {
		return values[v.Var.Name], nil, nil
	}
}
