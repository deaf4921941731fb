// Copyright (c) 2025 The bitlpm Authors
// SPDX-License-Identifier: MIT

package bitlpm

import "fmt"

// Equivalent reports whether pv and rt hold exactly the same set of
// (key, value) pairs, independent of storage order. It is the structural
// cross-check spec item 8 of the testable-properties list calls for:
// PrefixVector and RadixTree, fed identical operation sequences, must agree
// on every stored entry (enumeration order itself may differ between the
// two implementations; this walks both into an order-independent set
// before comparing). On mismatch, diff describes the first disagreement
// found.
func Equivalent[K comparable, V comparable](pv *PrefixVector[K, V], rt *RadixTree[K, V]) (ok bool, diff string) {
	if pv.Len() != rt.Len() {
		return false, fmt.Sprintf("size mismatch: PrefixVector has %d entries, RadixTree has %d", pv.Len(), rt.Len())
	}

	rtEntries := make(map[K]V, rt.Len())
	for k, v := range rt.All() {
		rtEntries[k] = v
	}

	seen := make(map[K]bool, pv.Len())
	for _, e := range pv.All() {
		seen[e.Key] = true
		want, ok := rtEntries[e.Key]
		if !ok {
			return false, fmt.Sprintf("key %v present in PrefixVector but not RadixTree", e.Key)
		}
		if want != e.Value {
			return false, fmt.Sprintf("key %v: PrefixVector has value %v, RadixTree has %v", e.Key, e.Value, want)
		}
	}

	for k := range rtEntries {
		if !seen[k] {
			return false, fmt.Sprintf("key %v present in RadixTree but not PrefixVector", k)
		}
	}

	return true, ""
}
