// Copyright (c) 2017-2021, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package match

import (
	"github.com/danos/cligen/binding"
	"github.com/danos/cligen/tree"
)

// Outcome is the three-way verdict spec §4.5 defines for a full-line
// match attempt.
type Outcome int

const (
	NoMatch Outcome = iota
	Unique
	Ambiguous
)

func (o Outcome) String() string {
	switch o {
	case NoMatch:
		return "no-match"
	case Unique:
		return "unique"
	case Ambiguous:
		return "ambiguous"
	default:
		return "unknown"
	}
}

func levelsOf(tokens []string) int {
	n := len(tokens) - 2
	if n < 0 {
		return 0
	}
	return n
}

// Match implements spec §4.4's general entry point: run the walker to
// whatever depth the token/rest vectors reach and return the raw
// Result (matched-children array plus indices) for the caller to
// interpret — the building block both MatchExact and Complete are
// built on.
func (w *Walker) Match(t *tree.Tree, tokens, rests []string, hide, expandFlag bool) (Result, error) {
	levels := levelsOf(tokens)
	scratch := binding.Vector{}
	children, err := w.topChildren(t, scratch, expandFlag)
	if err != nil {
		return Result{}, err
	}
	result, _, err := w.step(children, tokens, rests, 0, levels, hide, expandFlag, &scratch, nil)
	if err != nil {
		return Result{}, err
	}
	w.Log.Debugf("match: levels=%d candidates=%d reason=%q", levels, result.Count(), result.Reason)
	return result, nil
}

// MatchExact implements spec §4.5: the full-line, non-hiding match
// entry point, returning the three-way Outcome, the matched node on
// Unique, the binding vector captured along the (sole) matched path,
// and a human-readable no-match reason. A sole candidate whose node
// (or, for a synthetic keyword, its origin) does not carry the
// Terminal sentinel is reported as NoMatch with reason
// "Incomplete command".
func (w *Walker) MatchExact(t *tree.Tree, tokens, rests []string, expandFlag bool) (Outcome, *tree.Node, binding.Vector, string, error) {
	levels := levelsOf(tokens)
	scratch := binding.Vector{}
	children, err := w.topChildren(t, scratch, expandFlag)
	if err != nil {
		return NoMatch, nil, nil, "", err
	}
	result, bound, err := w.step(children, tokens, rests, 0, levels, false, expandFlag, &scratch, nil)
	if err != nil {
		return NoMatch, nil, nil, "", err
	}
	switch result.Count() {
	case 0:
		w.Log.Debugf("match-exact: no-match reason=%q", result.Reason)
		return NoMatch, nil, nil, result.Reason, nil
	case 1:
		node := result.Self
		if node == nil {
			node = result.Children[result.Indices[0]]
		}
		if !node.OriginOf().IsTerminal() {
			w.Log.Debugf("match-exact: incomplete node=%q", nodeLabel(node))
			return NoMatch, nil, nil, "Incomplete command", nil
		}
		if bound == nil {
			bound = binding.Vector{}
		}
		w.Log.Debugf("match-exact: unique node=%q bindings=%d", nodeLabel(node), len(bound))
		return Unique, node, bound, "", nil
	default:
		if result.Self == nil {
			survivors := PreferenceTieBreak(result.Children, result.Indices, w.Config.PreferenceMode)
			if len(survivors) == 1 {
				matched := result.Children[survivors[0]]
				if !matched.OriginOf().IsTerminal() {
					return NoMatch, nil, nil, "Incomplete command", nil
				}
				cand := tokenCandidate(tokens, rests, levels)
				tieBound, err := captureTerminalMatch(matched, cand, tokens, rests, levels)
				if err != nil {
					return NoMatch, nil, nil, "", err
				}
				w.Log.Debugf("match-exact: unique-by-preference node=%q", nodeLabel(matched))
				return Unique, matched, tieBound, "", nil
			}
		}
		w.Log.Debugf("match-exact: ambiguous count=%d", result.Count())
		return Ambiguous, nil, nil, "", nil
	}
}

func nodeLabel(n *tree.Node) string {
	if n == nil {
		return ""
	}
	if n.Kind == tree.KeywordNode {
		return n.Command
	}
	return n.Var.Name
}
