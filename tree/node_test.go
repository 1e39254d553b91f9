// Copyright (c) 2017-2021, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package tree

import (
	"testing"

	"github.com/danos/cligen/vtype"
)

func TestIsTerminal(t *testing.T) {
	leaf := &Node{Kind: KeywordNode, Command: "version", Children: []*Node{Terminal()}}
	if !leaf.IsTerminal() {
		t.Fatalf("IsTerminal() = false, want true")
	}
	nonLeaf := &Node{Kind: KeywordNode, Command: "show", Children: []*Node{
		{Kind: KeywordNode, Command: "version"},
	}}
	if nonLeaf.IsTerminal() {
		t.Fatalf("IsTerminal() = true, want false")
	}
}

func TestOriginOf(t *testing.T) {
	v := &Node{Kind: VariableNode, Var: vtype.Variable{Name: "proto"}}
	synthetic := &Node{Kind: KeywordNode, Command: "tcp", Origin: v}
	if got := synthetic.OriginOf(); got != v {
		t.Fatalf("OriginOf() = %p, want %p", got, v)
	}
	if got := v.OriginOf(); got != v {
		t.Fatalf("OriginOf() on a plain node = %p, want self %p", got, v)
	}
}

func TestIsRest(t *testing.T) {
	rest := &Node{Kind: VariableNode, Var: vtype.Variable{Kind: vtype.Rest}}
	if !rest.IsRest() {
		t.Fatalf("IsRest() = false, want true")
	}
	str := &Node{Kind: VariableNode, Var: vtype.Variable{Kind: vtype.String}}
	if str.IsRest() {
		t.Fatalf("IsRest() = true, want false")
	}
	kw := &Node{Kind: KeywordNode, Command: "show"}
	if kw.IsRest() {
		t.Fatalf("IsRest() on a keyword = true, want false")
	}
}

func TestAttachExpanded(t *testing.T) {
	n := &Node{Kind: VariableNode}
	if n.Expanded() != nil {
		t.Fatalf("Expanded() before Attach = non-nil, want nil")
	}
	sub := New(&Node{Kind: KeywordNode, Command: "tcp"})
	n.Attach(sub)
	if n.Expanded() != sub {
		t.Fatalf("Expanded() after Attach = %v, want %v", n.Expanded(), sub)
	}
}
