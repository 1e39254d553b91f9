// Copyright (c) 2017-2021, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package cligen

import (
	"strings"
	"testing"

	"github.com/danos/cligen/binding"
	"github.com/danos/cligen/expand"
	"github.com/danos/cligen/match"
	"github.com/danos/cligen/tree"
	"github.com/danos/cligen/vtype"
)

// testGrammar builds:
//
//	show version
//	show interfaces
//	set value <0..10>
func testGrammar() *tree.Tree {
	version := &tree.Node{Kind: tree.KeywordNode, Command: "version", Children: []*tree.Node{tree.Terminal()}}
	interfaces := &tree.Node{Kind: tree.KeywordNode, Command: "interfaces", Children: []*tree.Node{tree.Terminal()}}
	show := &tree.Node{Kind: tree.KeywordNode, Command: "show", Children: []*tree.Node{version, interfaces}}

	valueVar := &tree.Node{
		Kind:     tree.VariableNode,
		Var:      vtype.Variable{Name: "value", Kind: vtype.Int32, Constraints: []vtype.Constraint{vtype.IntRange{Start: 0, End: 10}}},
		Children: []*tree.Node{tree.Terminal()},
	}
	valueKW := &tree.Node{Kind: tree.KeywordNode, Command: "value", Children: []*tree.Node{valueVar}}
	set := &tree.Node{Kind: tree.KeywordNode, Command: "set", Children: []*tree.Node{valueKW}}

	return tree.New(show, set)
}

func TestHandleTokenise(t *testing.T) {
	h := New(Config{}, expand.Resolvers{}, nil)
	tokens, rests, err := h.Tokenise("show version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != 3 || tokens[1] != "show" || tokens[2] != "version" {
		t.Fatalf("tokens = %v, want [.. show version]", tokens)
	}
	_ = rests
}

func TestHandleTokeniseCustomDelimiters(t *testing.T) {
	h := New(Config{Delimiters: ",", Quotes: ""}, expand.Resolvers{}, nil)
	tokens, _, err := h.Tokenise("show,version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != 3 || tokens[1] != "show" || tokens[2] != "version" {
		t.Fatalf("tokens = %v, want [.. show version]", tokens)
	}
}

func TestHandleMatchExactUnique(t *testing.T) {
	h := New(Config{}, expand.Resolvers{}, nil)
	tokens, rests, err := h.Tokenise("show version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var cvv binding.Vector
	outcome, node, count := h.MatchExact(testGrammar(), tokens, rests, false, &cvv)
	if outcome != match.Unique || count != 1 {
		t.Fatalf("outcome=%v count=%d, want Unique/1", outcome, count)
	}
	if node.Command != "version" {
		t.Fatalf("node.Command = %q, want version", node.Command)
	}
	if h.NoMatchMessage != "" {
		t.Fatalf("NoMatchMessage = %q, want empty", h.NoMatchMessage)
	}
}

func TestHandleMatchExactCapturesIntoCvv(t *testing.T) {
	h := New(Config{}, expand.Resolvers{}, nil)
	tokens, rests, err := h.Tokenise("set value 7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var cvv binding.Vector
	outcome, _, count := h.MatchExact(testGrammar(), tokens, rests, false, &cvv)
	if outcome != match.Unique || count != 1 {
		t.Fatalf("outcome=%v count=%d, want Unique/1", outcome, count)
	}
	if len(cvv) != 1 || cvv[0].Name != "value" || cvv[0].Value.I != 7 {
		t.Fatalf("cvv = %#v, want [{value 7}]", cvv)
	}
}

func TestHandleMatchExactNoMatchSetsMessage(t *testing.T) {
	h := New(Config{}, expand.Resolvers{}, nil)
	tokens, rests, err := h.Tokenise("set value abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	outcome, node, count := h.MatchExact(testGrammar(), tokens, rests, false, nil)
	if outcome != match.NoMatch || node != nil || count != 0 {
		t.Fatalf("outcome=%v node=%v count=%d, want NoMatch/nil/0", outcome, node, count)
	}
	if h.NoMatchMessage == "" {
		t.Fatalf("NoMatchMessage is empty, want a reason")
	}
}

func TestHandleMatchExactAmbiguousReportsCount(t *testing.T) {
	h := New(Config{}, expand.Resolvers{}, nil)
	tokens, rests, err := h.Tokenise("show ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	outcome, node, count := h.MatchExact(testGrammar(), tokens, rests, false, nil)
	if outcome != match.Ambiguous || node != nil {
		t.Fatalf("outcome=%v node=%v, want Ambiguous/nil", outcome, node)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2 (version, interfaces)", count)
	}
}

// TestHandleMatchExactPreferenceModeWired confirms Config.PreferenceMode
// actually reaches the walker (cligen.go's New used to drop it on the
// floor): "en"/"exit" tie on prefix "e" at the same preference tier,
// resolved to the earliest-declared survivor only when the flag is set.
func TestHandleMatchExactPreferenceModeWired(t *testing.T) {
	enable := &tree.Node{Kind: tree.KeywordNode, Command: "enable", Children: []*tree.Node{tree.Terminal()}}
	exit := &tree.Node{Kind: tree.KeywordNode, Command: "exit", Children: []*tree.Node{tree.Terminal()}}
	grammar := tree.New(enable, exit)

	h := New(Config{}, expand.Resolvers{}, nil)
	tokens, rests, err := h.Tokenise("e")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	outcome, _, _ := h.MatchExact(grammar, tokens, rests, false, nil)
	if outcome != match.Ambiguous {
		t.Fatalf("outcome = %v, want Ambiguous without PreferenceMode", outcome)
	}

	hFirst := New(Config{PreferenceMode: true}, expand.Resolvers{}, nil)
	outcome, node, count := hFirst.MatchExact(grammar, tokens, rests, false, nil)
	if outcome != match.Unique || count != 1 {
		t.Fatalf("outcome=%v count=%d, want Unique/1 with PreferenceMode", outcome, count)
	}
	if node.Command != "enable" {
		t.Fatalf("node.Command = %q, want enable", node.Command)
	}
}

// TestHandleCompleteTabVarsFoldsVariablePlaceholder confirms the TabVars
// flag reaches match.Walker.Complete (previously only ever compared
// against TabSteps and had no effect of its own).
func TestHandleCompleteTabVarsFoldsVariablePlaceholder(t *testing.T) {
	target := &tree.Node{
		Kind:     tree.VariableNode,
		Var:      vtype.Variable{Name: "target", Kind: vtype.String},
		Children: []*tree.Node{tree.Terminal()},
	}
	describe := &tree.Node{Kind: tree.KeywordNode, Command: "describe", Children: []*tree.Node{target}}
	grammar := tree.New(describe)

	h := New(Config{}, expand.Resolvers{}, nil)
	var buf strings.Builder
	buf.WriteString("describe ")
	if extended := h.Complete(grammar, &buf, nil); extended {
		t.Fatalf("Complete() = true, want false without TabVars")
	}

	hVars := New(Config{TabMode: TabVars}, expand.Resolvers{}, nil)
	var bufVars strings.Builder
	bufVars.WriteString("describe ")
	if extended := hVars.Complete(grammar, &bufVars, nil); !extended {
		t.Fatalf("Complete() = false, want true with TabVars")
	}
	if bufVars.String() != "describe <target>" {
		t.Fatalf("buf = %q, want \"describe <target>\"", bufVars.String())
	}
}

func TestHandleCompleteSingleStep(t *testing.T) {
	h := New(Config{}, expand.Resolvers{}, nil)
	var buf strings.Builder
	buf.WriteString("sho")
	extended := h.Complete(testGrammar(), &buf, nil)
	if !extended {
		t.Fatalf("Complete() = false, want true")
	}
	if buf.String() != "show " {
		t.Fatalf("buf = %q, want \"show \" (unique keyword completed and delimited)", buf.String())
	}
}

func TestHandleCompleteStepsModeAdvancesMultipleLevels(t *testing.T) {
	// A grammar with no sibling ambiguity below "show", so TabSteps has
	// something unambiguous to keep advancing through.
	version := &tree.Node{Kind: tree.KeywordNode, Command: "version", Children: []*tree.Node{tree.Terminal()}}
	show := &tree.Node{Kind: tree.KeywordNode, Command: "show", Children: []*tree.Node{version}}
	grammar := tree.New(show)

	h := New(Config{TabMode: TabSteps}, expand.Resolvers{}, nil)
	var buf strings.Builder
	buf.WriteString("sho")
	extended := h.Complete(grammar, &buf, nil)
	if !extended {
		t.Fatalf("Complete() = false, want true")
	}
	if buf.String() != "show version " {
		t.Fatalf("buf = %q, want \"show version \" (steps through the unique grandchild level too)", buf.String())
	}
}

func TestHandleCompleteAmbiguousNoExtension(t *testing.T) {
	h := New(Config{}, expand.Resolvers{}, nil)
	var buf strings.Builder
	buf.WriteString("show ")
	extended := h.Complete(testGrammar(), &buf, nil)
	if extended {
		t.Fatalf("Complete() = true, want false (version/interfaces share no common prefix)")
	}
	if buf.String() != "show " {
		t.Fatalf("buf = %q, want unchanged \"show \"", buf.String())
	}
}

func TestHandleMatch(t *testing.T) {
	h := New(Config{}, expand.Resolvers{}, nil)
	tokens, rests, err := h.Tokenise("show ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := h.Match(testGrammar(), tokens, rests, false, false)
	if r.Err != nil {
		t.Fatalf("unexpected error: %v", r.Err)
	}
	if len(r.Indices) != 2 {
		t.Fatalf("len(r.Indices) = %d, want 2 (version, interfaces)", len(r.Indices))
	}
}
