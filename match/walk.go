// Copyright (c) 2017-2021, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package match

import (
	"github.com/danos/cligen/binding"
	"github.com/danos/cligen/tree"
)

// Result is the outcome of matching one level of children: the
// (possibly expanded) children array that was scanned, and the
// indices into it that matched. Self is additionally set when the
// enclosing node itself (whose Children this is) is a viable answer
// on its own — the candidate string was empty and that node carries
// the Terminal sentinel (spec §3: "A terminal node is one whose
// children contain the empty sentinel"), meaning nothing more needs
// to be typed for it to be a complete command. Count, below, folds
// both possibilities into the single "how many viable answers"
// number spec §4.4/§4.5 arbitrate on.
type Result struct {
	Children []*tree.Node
	Indices  []int
	Reason   string
	Self     *tree.Node
}

// Count is the number of distinct viable answers this Result
// represents: zero is no-match, one is unique, more than one is
// ambiguous (spec §4.4 step 4 / §4.5).
func (r Result) Count() int {
	n := len(r.Indices)
	if r.Self != nil {
		n++
	}
	return n
}

const maxExpansionDepth = 32

// levelChildren resolves Reference children and, when requested,
// materialises choice-expansion keywords, memoising the combined
// result on n's origin (spec §4.4.3 step 6: "attach the expanded
// subtree to the origin node"). It is the idiomatic-Go stand-in for
// cligen_match.c's pt_expand_treeref + pt_expand_2 pair, which operate
// on the matched node's child array just before it is used as the
// next level's candidate set.
func (w *Walker) levelChildren(n *tree.Node, scratch binding.Vector, expandFlag bool) ([]*tree.Node, error) {
	origin := n.OriginOf()
	if cached := origin.Expanded(); cached != nil {
		return cached.Nodes, nil
	}
	resolved, err := w.resolveReferences(n.Children, 0)
	if err != nil {
		return nil, err
	}
	if expandFlag {
		resolved, err = w.applyChoiceExpansion(resolved, scratch)
		if err != nil {
			return nil, err
		}
	}
	origin.Attach(tree.New(resolved...))
	return resolved, nil
}

// topChildren is levelChildren's counterpart for the top of a Tree,
// which has no origin node to memoise the expansion on; reference
// resolution and choice expansion are simply redone each call, which
// only ever runs once per top-level Match/Complete invocation.
func (w *Walker) topChildren(t *tree.Tree, scratch binding.Vector, expandFlag bool) ([]*tree.Node, error) {
	resolved, err := w.resolveReferences(t.Nodes, 0)
	if err != nil {
		return nil, err
	}
	if expandFlag {
		resolved, err = w.applyChoiceExpansion(resolved, scratch)
		if err != nil {
			return nil, err
		}
	}
	return resolved, nil
}

func (w *Walker) resolveReferences(nodes []*tree.Node, depth int) ([]*tree.Node, error) {
	if depth > maxExpansionDepth {
		return nil, errCyclicReference()
	}
	hasRef := false
	for _, n := range nodes {
		if n != nil && n.Kind == tree.ReferenceNode {
			hasRef = true
			break
		}
	}
	if !hasRef {
		return nodes, nil
	}
	out := make([]*tree.Node, 0, len(nodes))
	for _, n := range nodes {
		if n == nil || n.Kind != tree.ReferenceNode {
			out = append(out, n)
			continue
		}
		sub, err := w.Resolvers.Tree(n.RefName)
		if err != nil {
			return nil, err
		}
		resolved, err := w.resolveReferences(sub.Nodes, depth+1)
		if err != nil {
			return nil, err
		}
		out = append(out, resolved...)
	}
	return out, nil
}

func (w *Walker) applyChoiceExpansion(nodes []*tree.Node, scratch binding.Vector) ([]*tree.Node, error) {
	out := make([]*tree.Node, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n)
		if n == nil || n.Kind != tree.VariableNode || !n.Expand {
			continue
		}
		synthetic, err := w.Resolvers.Expand(n, scratch)
		if err != nil {
			return nil, err
		}
		out = append(out, synthetic...)
	}
	return out, nil
}

// captureText returns the text a matched node's variable binding
// should be parsed from: the whole rest-of-line for a Rest variable
// (spec §4.4.1 step 5: "rest-of-line capture consumes the full
// remainder"), otherwise just the matched token.
func captureText(n *tree.Node, tokens, rests []string, level int) string {
	if n.IsRest() {
		return rests[level+1]
	}
	return tokens[level+1]
}

// step dispatches to the interior- or terminal-level procedure
// depending on whether level has reached levels, mirroring
// cligen_match.c's match_pattern (spec §4.4's level==levels check).
// self is the node whose Children array is being scanned (nil at the
// top of a Tree, which has no enclosing node of its own). bound is
// non-nil only when this call's own subtree matched uniquely all the
// way through to a final outcome, carrying the bindings captured
// along that path in descent order (spec §3: "binding vector...
// passed later to command callbacks").
func (w *Walker) step(
	children []*tree.Node, tokens, rests []string, level, levels int,
	hide, expandFlag bool, scratch *binding.Vector, self *tree.Node,
) (Result, binding.Vector, error) {
	if level == levels {
		return w.terminal(children, tokens, rests, level, hide, self)
	}
	return w.interior(children, tokens, rests, level, levels, hide, expandFlag, scratch, self)
}

// interior implements spec §4.4.1: tiered preference arbitration
// requiring exactly one survivor before recursing deeper.
func (w *Walker) interior(
	children []*tree.Node, tokens, rests []string, level, levels int,
	hide, expandFlag bool, scratch *binding.Vector, self *tree.Node,
) (Result, binding.Vector, error) {
	only := onlyVariables(children)
	cand := tokenCandidate(tokens, rests, level)

	var matches []int
	perfect := false
	pref := tree.PrefRest
	restIdx := -1
	reason := ""

	for i, c := range children {
		if c == nil {
			continue
		}
		if hide && c.Hidden {
			continue
		}
		ok, _, r := w.matchNode(cand, c)
		if !ok {
			if r != "" && only && reason == "" {
				reason = r
			}
			continue
		}
		if c.IsRest() {
			restIdx = i
		}
		if isPerfect(cand, c, w.Config.IgnoreCase) {
			if !perfect {
				matches = matches[:0]
				perfect = true
				pref = tree.PrefKeyword
			}
			matches = append(matches, i)
			continue
		}
		if perfect {
			continue
		}
		p := preference(c)
		if p < pref {
			continue
		}
		if p > pref {
			pref = p
			matches = matches[:0]
		}
		matches = append(matches, i)
	}
	if len(matches) != 1 {
		return Result{Children: children, Indices: matches, Reason: reason}, nil, nil
	}

	matched := children[matches[0]]
	origin := matched.OriginOf()

	nextChildren, err := w.levelChildren(matched, *scratch, expandFlag)
	if err != nil {
		return Result{}, nil, err
	}

	var bound binding.Binding
	captured := false
	switch {
	case matched.Kind == tree.VariableNode:
		val, err := matched.Var.Capture(captureText(matched, tokens, rests, level))
		if err != nil {
			return Result{}, nil, err
		}
		bound = binding.Binding{Name: matched.Var.Name, Value: val}
		origin.CachedValue = val.String()
		captured = true
	case matched.Kind == tree.KeywordNode && origin.Kind == tree.VariableNode:
		val, err := origin.Var.Capture(matched.Command)
		if err != nil {
			return Result{}, nil, err
		}
		bound = binding.Binding{Name: origin.Var.Name, Value: val, Const: true}
		origin.CachedValue = matched.Command
		captured = true
	}

	if captured {
		mark := len(*scratch)
		scratch.Push(bound)
		defer scratch.Truncate(mark)
	}

	if restIdx != -1 && matched.IsRest() {
		// Rest-of-line short-circuits the remaining levels entirely
		// (spec §4.4.1 step 6 / resolved Open Question #1): there is
		// nothing deeper to recurse into, the whole remainder belongs
		// to this one variable.
		return Result{Children: children, Indices: []int{matches[0]}}, binding.Vector{bound}, nil
	}

	deeper, deeperBound, err := w.step(nextChildren, tokens, rests, level+1, levels, hide, expandFlag, scratch, matched)
	if err != nil {
		return Result{}, nil, err
	}
	if deeper.Count() != 1 || deeperBound == nil {
		return deeper, nil, nil
	}
	if !captured {
		return deeper, deeperBound, nil
	}
	out := make(binding.Vector, 0, len(deeperBound)+1)
	out = append(out, bound)
	out = append(out, deeperBound...)
	return deeper, out, nil
}

// terminal implements spec §4.4.2: every matching child at the final
// level is a candidate, with no preference pruning — ambiguity here
// is a real ambiguity the caller must report, not an artifact of
// arbitration. self, when non-nil and the candidate string is empty,
// additionally makes "stop here" (self itself, already fully typed)
// one of the viable answers whenever self carries the Terminal
// sentinel.
func (w *Walker) terminal(children []*tree.Node, tokens, rests []string, level int, hide bool, self *tree.Node) (Result, binding.Vector, error) {
	only := onlyVariables(children)
	cand := tokenCandidate(tokens, rests, level)

	var matches []int
	reason := ""

	for i, c := range children {
		if c == nil {
			continue
		}
		if hide && c.Hidden {
			continue
		}
		ok, _, r := w.matchNode(cand, c)
		if !ok {
			if r != "" && only && reason == "" {
				reason = r
			}
			continue
		}
		matches = append(matches, i)
	}
	matches = TieBreak(children, matches)

	var selfAnswer *tree.Node
	if self != nil && cand.str != nil && *cand.str == "" && self.IsTerminal() {
		selfAnswer = self
	}

	result := Result{Children: children, Indices: matches, Reason: reason, Self: selfAnswer}
	if result.Count() != 1 {
		if result.Count() != 0 {
			result.Reason = ""
		}
		return result, nil, nil
	}

	if selfAnswer != nil {
		return result, binding.Vector{}, nil
	}

	bound, err := captureTerminalMatch(children[matches[0]], cand, tokens, rests, level)
	if err != nil {
		return Result{}, nil, err
	}
	return result, bound, nil
}

// captureTerminalMatch captures the binding (if any) a single
// terminal-level match contributes, shared between terminal()'s own
// one-candidate return and MatchExact's preference tie-break collapse
// (spec §4.5/§4.6: once the tie-breaker leaves exactly one survivor,
// it is treated as the one-candidate case, including its capture).
func captureTerminalMatch(matched *tree.Node, cand candidate, tokens, rests []string, level int) (binding.Vector, error) {
	origin := matched.OriginOf()
	if matched.Kind == tree.VariableNode && cand.str != nil && *cand.str != "" {
		val, err := matched.Var.Capture(captureText(matched, tokens, rests, level))
		if err != nil {
			return nil, err
		}
		origin.CachedValue = val.String()
		return binding.Vector{{Name: matched.Var.Name, Value: val}}, nil
	}
	if matched.Kind == tree.KeywordNode && origin.Kind == tree.VariableNode {
		val, err := origin.Var.Capture(matched.Command)
		if err != nil {
			return nil, err
		}
		origin.CachedValue = matched.Command
		return binding.Vector{{Name: origin.Var.Name, Value: val, Const: true}}, nil
	}
	return binding.Vector{}, nil
}
