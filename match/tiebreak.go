// Copyright (c) 2017-2021, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package match

import "github.com/danos/cligen/tree"

// PreferenceTieBreak implements spec §4.6 proper: a second pass over a
// candidate index vector that retains only the indices whose
// preference weight (spec §4.4 step 3) equals the maximum weight
// present, and, when firstWins is set (preference_mode=first, spec
// §6), truncates a remaining tie to its single earliest survivor. The
// initial weight starts at PrefRest (tree.Preference's zero value),
// per spec §9's resolved Open Question on the tie-breaker's undefined
// no-positive-weight case. This is the operation spec §4.5 names when
// it says MatchExact, on finding more than one candidate, "invokes the
// tie-breaker (§4.6)" — distinct from TieBreak below, which only folds
// duplicate origins.
func PreferenceTieBreak(children []*tree.Node, indices []int, firstWins bool) []int {
	if len(indices) < 2 {
		return indices
	}
	best := tree.PrefRest
	for _, i := range indices {
		if p := preference(children[i]); p > best {
			best = p
		}
	}
	out := make([]int, 0, len(indices))
	for _, i := range indices {
		if preference(children[i]) == best {
			out = append(out, i)
		}
	}
	if firstWins && len(out) > 1 {
		out = out[:1]
	}
	return out
}

// TieBreak collapses terminal-level matches that resolve to the same
// origin node into a single candidate, so that overlapping subtree
// expansion (the same reference spliced in from two different
// parents, or a variable matching alongside one of its own synthetic
// enumeration keywords) never manufactures false ambiguity out of what is, to the
// caller, one answer. Grounded on cligen_match.c's match_multiple,
// which folds duplicate co_command entries the same way before
// reporting the match count. This is a duplicate-origin dedup, not
// spec §4.6's preference-weight tie-breaker — see PreferenceTieBreak
// above for that.
func TieBreak(children []*tree.Node, indices []int) []int {
	if len(indices) < 2 {
		return indices
	}
	seen := make(map[*tree.Node]bool, len(indices))
	out := make([]int, 0, len(indices))
	for _, i := range indices {
		origin := children[i].OriginOf()
		if seen[origin] {
			continue
		}
		seen[origin] = true
		out = append(out, i)
	}
	return out
}
