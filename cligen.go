// Copyright (c) 2017-2021, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

// Package cligen implements the external interface of spec §6 over
// packages token/vtype/binding/tree/expand/match: a single Handle
// carrying the configuration table (lexical order, case folding,
// preference mode, tab-completion mode, delimiter set, and the
// no-match-message out-slot) bound to one grammar's expansion
// callbacks.
package cligen

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/danos/cligen/binding"
	"github.com/danos/cligen/expand"
	"github.com/danos/cligen/match"
	"github.com/danos/cligen/token"
	"github.com/danos/cligen/tree"
)

// TabMode is the completion behaviour spec §6's configuration table
// names, as a set of independent, combinable flags (spec §6: "tabmode
// flags are independent and combine"): COLUMNS lists candidates in a
// multi-column help display (a display-formatting hint the matcher
// itself ignores), VARS additionally folds typed-variable placeholders
// into the completion engine's common-prefix pass instead of
// considering literal keywords only, STEPS recurses the completion
// engine through every unambiguous single-candidate level in one call
// instead of stopping at the first.
type TabMode int

const (
	TabColumns TabMode = 1 << iota
	TabVars
	TabSteps
)

// Has reports whether flag is set in m.
func (m TabMode) Has(flag TabMode) bool {
	return m&flag != 0
}

// Config is the Handle configuration table of spec §6.
type Config struct {
	// LexicalOrder sorts candidate text with natsort.Less for
	// completion/help display; never affects a matching decision
	// (spec §4.7 "added").
	LexicalOrder bool

	// IgnoreCase folds keyword comparisons through ASCII-only
	// case-insensitive matching (spec §9 resolved Open Question: never
	// Unicode folding).
	IgnoreCase bool

	// PreferenceMode, when true, breaks a tie-breaker deadlock (spec
	// §4.6) by keeping only the earliest-declared survivor instead of
	// reporting ambiguity.
	PreferenceMode bool

	// TabMode selects completion-engine display behaviour (see
	// TabMode's doc comment).
	TabMode TabMode

	// Delimiters and Quotes configure the tokeniser (spec §4.1
	// "configurable set"); both default to token.DefaultDelimiters/
	// token.DefaultQuotes when empty.
	Delimiters string
	Quotes     string
}

// Handle binds one Config and one set of grammar-side callbacks to
// the matcher, wrapping package match's Walker with the tokeniser and
// the no-match-message out-slot spec §6 names. A Handle is not safe
// for concurrent Match/MatchExact/Complete calls against the same
// Tree (spec §5's single-threaded contract).
type Handle struct {
	Config Config
	Log    *logrus.Entry

	// NoMatchMessage is overwritten with the walker's reason string on
	// every MatchExact call that returns NoMatch, mirroring the
	// C original's out-parameter convention (spec §6 table,
	// "nomatch_message").
	NoMatchMessage string

	walker *match.Walker
}

// New builds a Handle bound to resolvers (may be zero-value if the
// grammar has no references or expansion variables) and log (nil for
// a silent logger, matching package match's own convention).
func New(cfg Config, resolvers expand.Resolvers, log *logrus.Entry) *Handle {
	w := match.New(match.Config{IgnoreCase: cfg.IgnoreCase, PreferenceMode: cfg.PreferenceMode}, resolvers, log)
	return &Handle{Config: cfg, Log: w.Log, walker: w}
}

// Tokenise implements spec §6's tokenise operation using the Handle's
// configured delimiter/quote sets.
func (h *Handle) Tokenise(input string) (tokens, rests []string, err error) {
	delims, quotes := h.Config.Delimiters, h.Config.Quotes
	if delims == "" {
		delims = token.DefaultDelimiters
	}
	if quotes == "" {
		quotes = token.DefaultQuotes
	}
	return token.TokeniseWith(input, delims, quotes)
}

// MatchResult is spec §3's match result tuple: the children array
// scanned at the deepest level reached, the indices into it that
// matched, and (when no candidate matched) a human-readable reason.
// Err carries a resource failure or grammar inconsistency raised
// while expanding a subtree mid-walk (spec §7); it is never set for
// an ordinary no-match/ambiguous outcome.
type MatchResult struct {
	Children []*tree.Node
	Indices  []int
	Reason   string
	Err      error
}

// Match implements spec §6's match operation: run the walker to
// whatever depth tokens/rests reach, hide- and expansion-aware, and
// return the raw candidate set for a caller (typically Complete, or a
// line editor) to interpret.
func (h *Handle) Match(t *tree.Tree, tokens, rests []string, hide, expandFlag bool) MatchResult {
	r, err := h.walker.Match(t, tokens, rests, hide, expandFlag)
	if err != nil {
		return MatchResult{Err: err}
	}
	return MatchResult{Children: r.Children, Indices: r.Indices, Reason: r.Reason}
}

// MatchExact implements spec §6's match_exact operation: the
// full-line, non-hiding match entry point. On Unique, the matched
// node's captured bindings are appended to cvv (spec §3: "the binding
// vector... growing as the walker descends"); on NoMatch,
// h.NoMatchMessage is overwritten with the reason. The returned int is
// the candidate count backing the Outcome: 0 for NoMatch, 1 for
// Unique, and the ambiguous candidate count otherwise, mirroring spec
// §6's Go signature.
func (h *Handle) MatchExact(t *tree.Tree, tokens, rests []string, expandFlag bool, cvv *binding.Vector) (match.Outcome, *tree.Node, int) {
	outcome, node, bound, reason, err := h.walker.MatchExact(t, tokens, rests, expandFlag)
	if err != nil {
		h.NoMatchMessage = err.Error()
		return match.NoMatch, nil, 0
	}
	switch outcome {
	case match.NoMatch:
		h.NoMatchMessage = reason
		return match.NoMatch, nil, 0
	case match.Unique:
		h.NoMatchMessage = ""
		if cvv != nil {
			*cvv = append(*cvv, bound...)
		}
		return match.Unique, node, 1
	default:
		h.NoMatchMessage = ""
		r, _ := h.walker.Match(t, tokens, rests, false, expandFlag)
		return match.Ambiguous, nil, r.Count()
	}
}

// Complete implements spec §6/§4.7's completion operation: given the
// current contents of buf, extend it in place with the longest
// unambiguous common prefix of the next level's candidates, delimited
// from what came before. When that level has exactly one candidate and
// it is a keyword, a space delimiter is appended after it as well. It
// returns whether anything was appended.
// With the TabSteps flag set, this repeats through every subsequent
// level that is itself unambiguous, so one call can complete several
// words at once; otherwise it stops after the first level. The TabVars
// flag additionally folds variable placeholders into the common-prefix
// computation (see match.Walker.Complete).
func (h *Handle) Complete(t *tree.Tree, buf *strings.Builder, cvv *binding.Vector) bool {
	extended := false
	for {
		tokens, rests, err := h.Tokenise(buf.String())
		if err != nil {
			return extended
		}
		ext, candidates, err := h.walker.Complete(t, tokens, rests, true, h.Config.TabMode.Has(TabVars), h.Config.LexicalOrder)
		if err != nil || len(candidates) == 0 {
			return extended
		}
		if ext != "" {
			buf.WriteString(ext)
			extended = true
		}
		if len(candidates) != 1 || strings.HasPrefix(candidates[0], "<") {
			return extended
		}
		buf.WriteByte(' ')
		extended = true
		if !h.Config.TabMode.Has(TabSteps) {
			return extended
		}
	}
}
