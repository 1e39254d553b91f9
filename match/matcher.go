// Copyright (c) 2017-2021, AT&T Intellectual Property.
// All rights reserved.
//
// Copyright (c) 2014-2017 by Brocade Communications Systems, Inc.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

// Package match implements the tree walker of spec §4.4-§4.7: the
// interior- and terminal-level matching procedures, the exact-match
// entry point, the tie-breaker, and the completion engine.
//
// This is a direct transliteration of cligen_match.c's
// match_pattern_node/match_pattern_terminal/match_pattern_exact/
// match_complete, generalized from cg_obj's C/CO_VARIABLE/CO_REFERENCE
// union to the tagged tree.Node variant (see package tree), with
// mgmterror-style errors and logrus debug tracing in place of the
// original's return-code/errno conventions.
package match

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/danos/cligen/binding"
	"github.com/danos/cligen/expand"
	"github.com/danos/cligen/tree"
)

// Config holds the per-Handle behaviour switches of spec §4.4/§9:
// ASCII case-folding, and PreferenceMode, spec §4.6/§6's
// "preference_mode=first" knob — when set, the tie-breaker in
// MatchExact truncates a same-preference survivor set to the single
// earliest-declared candidate instead of leaving it ambiguous.
type Config struct {
	IgnoreCase     bool
	PreferenceMode bool
}

// Walker drives the tree-walking matching procedures over one grammar,
// bound to a fixed set of expansion callbacks and behaviour switches.
// A Walker is not safe for concurrent use (spec §5: "single-threaded
// contract" — the same constraint the memoised subtree expansion
// relies on).
type Walker struct {
	Config    Config
	Resolvers expand.Resolvers
	Log       *logrus.Entry
}

// New builds a Walker. log may be nil, in which case a disabled
// logger is used (matching logrus's own zero-cost-when-disabled
// convention, used throughout the teacher's main.go/xpath/symbol.go).
func New(cfg Config, resolvers expand.Resolvers, log *logrus.Entry) *Walker {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = logrus.NewEntry(l)
	}
	return &Walker{Config: cfg, Resolvers: resolvers, Log: log}
}

// candidate is a thin handle on "the token/rest pair being matched
// against children at one level", plus whether it is a real candidate
// (possibly empty string) or the "null candidate" of spec §4.3 used
// only during expansion enumeration.
type candidate struct {
	str    *string
	rest   string
}

func tokenCandidate(tokens, rests []string, level int) candidate {
	s := tokens[level+1]
	return candidate{str: &s, rest: rests[level+1]}
}

// matchNode implements spec §4.3's per-node-kind single-node matcher.
func (w *Walker) matchNode(c candidate, n *tree.Node) (match, exact bool, reason string) {
	switch n.Kind {
	case tree.KeywordNode:
		if c.str == nil {
			return true, false, ""
		}
		s := *c.str
		cmd := n.Command
		if w.Config.IgnoreCase {
			match = hasPrefixFold(cmd, s)
		} else {
			match = strings.HasPrefix(cmd, s)
		}
		exact = match && len(s) == len(cmd)
		return match, exact, ""
	case tree.VariableNode:
		if c.str == nil || *c.str == "" {
			return true, false, ""
		}
		ok, reason := n.Var.Match(*c.str)
		return ok, false, reason
	default: // tree.ReferenceNode: never matches directly, spec §4.3
		return false, false, ""
	}
}

// isPerfect reports a full, exact keyword match: candidate equals the
// keyword verbatim (spec §4.4 step 2, "tier 1: perfect matches").
func isPerfect(c candidate, n *tree.Node, ignoreCase bool) bool {
	if n.Kind != tree.KeywordNode || c.str == nil {
		return false
	}
	if ignoreCase {
		return len(n.Command) == len(*c.str) && hasPrefixFold(n.Command, *c.str)
	}
	return n.Command == *c.str
}

// preference computes spec §4.4 step 3's arbitration weight for a
// non-perfect match: exact keyword candidates were already skimmed off
// by the perfect tier, so here a keyword can only arrive as a prefix
// match (never "exact" in this tier by construction).
func preference(n *tree.Node) tree.Preference {
	switch n.Kind {
	case tree.KeywordNode:
		return tree.PrefKeyword
	case tree.VariableNode:
		if n.Var.Kind.IsNumeric() {
			return tree.PrefScalar
		}
		if n.IsRest() {
			return tree.PrefRest
		}
		return tree.PrefString
	default:
		return tree.PrefRest
	}
}

// hasPrefixFold is strings.HasPrefix with ASCII-only case folding:
// bytes outside A-Z/a-z must match exactly.
func hasPrefixFold(s, prefix string) bool {
	if len(prefix) > len(s) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		a, b := s[i], prefix[i]
		if 'A' <= a && a <= 'Z' {
			a += 'a' - 'A'
		}
		if 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}
		if a != b {
			return false
		}
	}
	return true
}

// onlyVariables reports whether every live child at this level is
// either itself a Variable, or a synthetic keyword expanded from one
// (n.Origin != nil). A single "pure" keyword child (no Origin) forces
// false — grounded on cligen_match.c's pt_onlyvars, which suppresses a
// variable's parse/validation-failure reason whenever a literal
// command word was also a candidate at the same level (spec §4.4.1
// step 4: "reason suppressed unless every candidate at this level was
// a variable").
func onlyVariables(children []*tree.Node) bool {
	only := true
	for _, c := range children {
		if c == nil {
			continue
		}
		if c.Kind != tree.VariableNode && c.Origin == nil {
			only = false
			break
		}
	}
	return only
}
