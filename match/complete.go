// Copyright (c) 2017-2021, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package match

import (
	"sort"

	"github.com/danos/utils/natsort"

	"github.com/danos/cligen/binding"
	"github.com/danos/cligen/tree"
)

// Complete implements spec §4.7's completion engine over an
// already-tokenised input: it walks to the deepest level the input
// reaches, collects display text for every live candidate there, and
// returns the longest common extension beyond what's already typed
// (empty when the input is already a complete command, ambiguous with
// no common prefix, or matches nothing), plus the full candidate list
// for displaying a help/completion menu. Grounded on cligen_match.c's
// match_complete.
//
// includeVars additionally folds variable-placeholder display text
// ("<name>") into the common-prefix computation (spec §4.7 step 3,
// the TabMode VARS flag); lexicalOrder controls only the ordering of
// the returned candidate list (spec's resolved "lexicalorder" config:
// display ordering, not a matching decision — see DESIGN.md).
func (w *Walker) Complete(t *tree.Tree, tokens, rests []string, hide, includeVars, lexicalOrder bool) (extension string, candidates []string, err error) {
	levels := levelsOf(tokens)
	scratch := binding.Vector{}
	children, err := w.topChildren(t, scratch, true)
	if err != nil {
		return "", nil, err
	}
	result, _, err := w.step(children, tokens, rests, 0, levels, hide, true, &scratch, nil)
	if err != nil {
		return "", nil, err
	}

	names := make([]string, 0, len(result.Indices)+1)
	literal := make([]string, 0, len(result.Indices))
	if result.Self != nil {
		names = append(names, "<cr>")
	}
	for _, i := range result.Indices {
		n := result.Children[i]
		names = append(names, displayText(n))
		switch {
		case n.Kind == tree.KeywordNode:
			literal = append(literal, n.Command)
		case includeVars && n.Kind == tree.VariableNode:
			// spec §4.7 step 3 (TabMode VARS): a typed-variable
			// placeholder participates in the common-prefix pass too,
			// rather than being silently excluded from it.
			literal = append(literal, displayText(n))
		}
	}
	if lexicalOrder {
		sort.Slice(names, func(i, j int) bool { return natsort.Less(names[i], names[j]) })
	}
	if len(names) == 0 {
		return "", names, nil
	}

	typed := ""
	if levels+1 < len(tokens) {
		typed = tokens[levels+1]
	}
	if len(literal) > 0 {
		prefix := commonPrefix(literal)
		if len(prefix) > len(typed) {
			extension = prefix[len(typed):]
		}
	}
	return extension, names, nil
}

func displayText(n *tree.Node) string {
	switch n.Kind {
	case tree.KeywordNode:
		return n.Command
	case tree.VariableNode:
		return "<" + n.Var.Name + ">"
	default:
		return ""
	}
}

func commonPrefix(names []string) string {
	if len(names) == 0 {
		return ""
	}
	prefix := names[0]
	for _, n := range names[1:] {
		prefix = commonPrefixPair(prefix, n)
		if prefix == "" {
			break
		}
	}
	return prefix
}

func commonPrefixPair(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}
