// Copyright (c) 2017-2021, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

// cligensh is a small REPL exercising a Handle over a demo grammar,
// grounded on the teacher's main.go (bufio.Scanner over stdin, logrus
// for diagnostics).
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/danos/cligen"
	"github.com/danos/cligen/binding"
	"github.com/danos/cligen/expand"
	"github.com/danos/cligen/match"
	"github.com/danos/cligen/tree"
	"github.com/danos/cligen/vtype"
)

// demoTree builds a tiny "show interfaces <name>" / "show version"
// grammar, just enough to drive the REPL below.
func demoTree() *tree.Tree {
	name := tree.Node{
		Kind: tree.VariableNode,
		Var:  vtype.Variable{Name: "ifname", Kind: vtype.String},
		Children: []*tree.Node{
			tree.Terminal(),
		},
	}
	interfaces := tree.Node{
		Kind:    tree.KeywordNode,
		Command: "interfaces",
		Help:    "show interface status",
		Children: []*tree.Node{
			&name,
		},
	}
	version := tree.Node{
		Kind:    tree.KeywordNode,
		Command: "version",
		Help:    "show software version",
		Children: []*tree.Node{
			tree.Terminal(),
		},
	}
	show := tree.Node{
		Kind:    tree.KeywordNode,
		Command: "show",
		Help:    "show operational state",
		Children: []*tree.Node{
			&interfaces,
			&version,
		},
	}
	return tree.New(&show)
}

func main() {
	log.SetLevel(log.InfoLevel)
	if os.Getenv("CLIGEN_DEBUG") != "" {
		log.SetLevel(log.DebugLevel)
	}

	h := cligen.New(cligen.Config{LexicalOrder: true}, expand.Resolvers{}, log.NewEntry(log.StandardLogger()))
	t := demoTree()

	fmt.Println("cligensh — type a command, or 'quit'")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "quit" {
			return
		}

		tokens, rests, err := h.Tokenise(line)
		if err != nil {
			fmt.Println("tokenise error:", err)
			continue
		}

		var cvv binding.Vector
		outcome, node, n := h.MatchExact(t, tokens, rests, true, &cvv)
		switch outcome {
		case match.NoMatch:
			fmt.Println("no match:", h.NoMatchMessage)
		case match.Unique:
			fmt.Printf("matched %q, bindings=%v\n", nodeCommand(node), cvv)
		case match.Ambiguous:
			fmt.Printf("ambiguous (%d candidates)\n", n)
		}
	}
}

func nodeCommand(n *tree.Node) string {
	if n == nil {
		return ""
	}
	if n.Kind == tree.KeywordNode {
		return n.Command
	}
	return "<" + n.Var.Name + ">"
}
