// Copyright (c) 2025 The bitlpm Authors
// SPDX-License-Identifier: MIT

package bitlpm

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a human-readable table of index, key, value, and ancestor
// index for every stored entry, one per line, in storage order.
func (pv *PrefixVector[K, V]) Dump(w io.Writer) {
	for i, e := range pv.items {
		anc := "NONE"
		if e.ancestor != noAncestor {
			anc = fmt.Sprintf("%d", e.ancestor)
		}
		fmt.Fprintf(w, "%d: %v -> %v (ancestor=%s)\n", i, e.key, e.value, anc)
	}
}

// Dump writes an indented pre-order rendering of the tree: one line per
// node, value-less (internal-only) nodes marked as such.
func (rt *RadixTree[K, V]) Dump(w io.Writer) {
	dumpRadixNode(w, rt.root, 0)
}

func dumpRadixNode[K any, V any](w io.Writer, n *radixNode[K, V], depth int) {
	if n == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	if n.value != nil {
		fmt.Fprintf(w, "%s%v -> %v\n", indent, n.key, *n.value)
	} else {
		fmt.Fprintf(w, "%s%v (internal)\n", indent, n.key)
	}
	dumpRadixNode(w, n.left, depth+1)
	dumpRadixNode(w, n.right, depth+1)
}
