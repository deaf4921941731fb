// Copyright (c) 2025 The bitlpm Authors
// SPDX-License-Identifier: MIT

package bitlpm

import (
	"iter"
	"sort"
)

const noAncestor = -1

// Entry is a read-only view of one stored (key, value) pair.
type Entry[K any, V any] struct {
	Key   K
	Value V
}

type pvElement[K any, V any] struct {
	key      K
	value    V
	ancestor int // index of the longest strict-prefix ancestor, or noAncestor
}

// PrefixVector is a sorted, contiguous associative container keyed by
// variable-length bit strings, supporting exact lookup, longest-prefix
// match, and contiguous subtree ranges over a flat slice.
//
// All operations are O(log n) binary search plus, for mutation, an O(n)
// reindex pass over the ancestor links of every entry that may have
// shifted. PrefixVector does not implement a separate iterator type: any
// mutation invalidates every previously observed index, exactly as it
// would for re-slicing a Go slice out from under a held index.
type PrefixVector[K any, V any] struct {
	adapter KeyAdapter[K]
	items   []pvElement[K, V]
}

// NewPrefixVector returns an empty PrefixVector using adapter to project
// keys to BitStrings.
func NewPrefixVector[K any, V any](adapter KeyAdapter[K]) *PrefixVector[K, V] {
	return &PrefixVector[K, V]{adapter: adapter}
}

// Len returns the number of stored entries.
func (pv *PrefixVector[K, V]) Len() int {
	return len(pv.items)
}

// Empty reports whether the container holds no entries.
func (pv *PrefixVector[K, V]) Empty() bool {
	return len(pv.items) == 0
}

func (pv *PrefixVector[K, V]) bits(key K) BitString {
	return pv.adapter.ToBits(key)
}

// lowerBound returns the smallest index i such that items[i]'s key is not
// lexicographically less than the query, or len(items) if none.
func (pv *PrefixVector[K, V]) lowerBound(q BitString) int {
	return sort.Search(len(pv.items), func(i int) bool {
		return !IsLexicographicLess(pv.bits(pv.items[i].key), q)
	})
}

// ancestorWalk finds the index of the longest stored key that is a strict
// prefix of q, starting the walk at items[start-1] and following ancestor
// links. start is normally the lower-bound insertion position of q.
func (pv *PrefixVector[K, V]) ancestorWalk(start int, q BitString) int {
	if start == 0 {
		return noAncestor
	}
	i := start - 1
	for {
		k := pv.bits(pv.items[i].key)
		if IsPrefix(k, q) && !Equal(k, q) {
			return i
		}
		i = pv.items[i].ancestor
		if i == noAncestor {
			return noAncestor
		}
	}
}

// FindExact returns the index of the entry whose key bit-string-equals
// key, and true, or (0, false) if there is no exact match.
func (pv *PrefixVector[K, V]) FindExact(key K) (int, bool) {
	q := pv.bits(key)
	pos := pv.lowerBound(q)
	if pos != len(pv.items) && Equal(pv.bits(pv.items[pos].key), q) {
		return pos, true
	}
	return 0, false
}

// Find performs a longest-prefix-match lookup: it returns the index of the
// stored entry whose key is the longest prefix of key, and true, or
// (0, false) if no stored key is a prefix of key.
func (pv *PrefixVector[K, V]) Find(key K) (int, bool) {
	q := pv.bits(key)
	pos := pv.lowerBound(q)
	if pos != len(pv.items) && Equal(pv.bits(pv.items[pos].key), q) {
		return pos, true
	}
	anc := pv.ancestorWalk(pos, q)
	if anc == noAncestor {
		return 0, false
	}
	return anc, true
}

// Value returns a pointer to the value of the longest-prefix match of key,
// or nil if there is none. The pointer is invalidated by any subsequent
// mutation of pv.
func (pv *PrefixVector[K, V]) Value(key K) *V {
	i, ok := pv.Find(key)
	if !ok {
		return nil
	}
	return &pv.items[i].value
}

// KeyAt returns the key stored at index i.
func (pv *PrefixVector[K, V]) KeyAt(i int) K {
	return pv.items[i].key
}

// ValueAt returns a pointer to the value stored at index i, mutable
// in place.
func (pv *PrefixVector[K, V]) ValueAt(i int) *V {
	return &pv.items[i].value
}

// AncestorAt returns the index of entry i's ancestor, or -1 (noAncestor) if
// it has none. Exposed primarily for tests verifying invariant 2 of §8.
func (pv *PrefixVector[K, V]) AncestorAt(i int) int {
	return pv.items[i].ancestor
}

// insertShiftAncestors rewrites ancestor links after an insertion at
// newIndex whose own ancestor is newAncestor, walking entries newIndex..end
// (pre-shift indices; newIndex here is the position the new element will
// occupy once inserted, so these are the positions that shift by +1).
//
// The comparator IsPrefix(newKey, ...) drives the "are we still inside the
// new key's prefix range" flag: once we see an entry whose key is not an
// extension of the new key, no later entry can be either (the range is
// contiguous), so the flag latches off for the remainder of the walk.
func (pv *PrefixVector[K, V]) insertShiftAncestors(newIndex int, newKey BitString, newAncestor int) {
	stillInRange := true
	for i := newIndex; i < len(pv.items); i++ {
		e := &pv.items[i]
		if stillInRange && !IsPrefix(newKey, pv.bits(e.key)) {
			stillInRange = false
		}
		switch {
		case e.ancestor == newAncestor && stillInRange:
			e.ancestor = newIndex
		case e.ancestor != noAncestor && e.ancestor >= newIndex:
			e.ancestor++
		}
	}
}

func (pv *PrefixVector[K, V]) insert(key K, value V, overwrite bool) (int, bool) {
	q := pv.bits(key)
	pos := pv.lowerBound(q)
	if pos != len(pv.items) && Equal(pv.bits(pv.items[pos].key), q) {
		if overwrite {
			pv.items[pos].value = value
		}
		return pos, false
	}

	ancestor := pv.ancestorWalk(pos, q)
	pv.insertShiftAncestors(pos, q, ancestor)

	pv.items = append(pv.items, pvElement[K, V]{})
	copy(pv.items[pos+1:], pv.items[pos:])
	pv.items[pos] = pvElement[K, V]{key: key, value: value, ancestor: ancestor}

	assertf(ancestor == noAncestor || ancestor < pos, "ancestor %d not less than new index %d", ancestor, pos)
	return pos, true
}

// Insert inserts key/value. If an entry with a bit-string-equal key already
// exists, its position is returned unchanged and inserted is false.
func (pv *PrefixVector[K, V]) Insert(key K, value V) (pos int, inserted bool) {
	return pv.insert(key, value, false)
}

// InsertOrAssign inserts key/value, or overwrites the existing entry's
// value if key is already present. inserted is false in the overwrite case.
func (pv *PrefixVector[K, V]) InsertOrAssign(key K, value V) (pos int, inserted bool) {
	return pv.insert(key, value, true)
}

// eraseAt removes the entry at index i, fixing up ancestor links of every
// later entry, and returns i (the index of the entry that now occupies the
// removed slot, or Len() if i was the last entry).
func (pv *PrefixVector[K, V]) eraseAt(i int) int {
	oldAncestor := pv.items[i].ancestor
	oldKey := pv.bits(pv.items[i].key)

	stillInRange := true
	for j := i + 1; j < len(pv.items); j++ {
		e := &pv.items[j]
		if stillInRange && !IsPrefix(oldKey, pv.bits(e.key)) {
			stillInRange = false
		}
		switch {
		case e.ancestor == i && stillInRange:
			e.ancestor = oldAncestor
		case e.ancestor > i:
			e.ancestor--
		}
	}

	copy(pv.items[i:], pv.items[i+1:])
	pv.items = pv.items[:len(pv.items)-1]
	return i
}

// Erase removes the entry at index i and returns the index of the entry
// that follows it (which is also i, since every later entry shifts down by
// one), or Len() if i was the last entry.
func (pv *PrefixVector[K, V]) Erase(i int) int {
	return pv.eraseAt(i)
}

// EraseByKey removes the entry whose key bit-string-equals key, if any,
// and returns the number of entries removed (0 or 1).
func (pv *PrefixVector[K, V]) EraseByKey(key K) int {
	i, ok := pv.FindExact(key)
	if !ok {
		return 0
	}
	pv.eraseAt(i)
	return 1
}

// Subkeys returns the half-open index range [start, end) of entries whose
// keys have prefix as a (not necessarily strict) prefix. The range is
// always contiguous because lexicographic order places every extension of
// prefix immediately after prefix itself.
func (pv *PrefixVector[K, V]) Subkeys(prefix K) (start, end int) {
	p := pv.bits(prefix)
	plen := p.Len()

	cmp := func(i int) int {
		k := pv.bits(pv.items[i].key).Truncate(plen)
		switch {
		case IsLexicographicLess(k, p):
			return -1
		case IsLexicographicLess(p, k):
			return 1
		default:
			return 0
		}
	}

	lo := sort.Search(len(pv.items), func(i int) bool { return cmp(i) >= 0 })
	hi := lo + sort.Search(len(pv.items)-lo, func(i int) bool { return cmp(lo+i) > 0 })
	return lo, hi
}

// All returns an iterator over every stored entry in increasing
// lexicographic bit-string order.
func (pv *PrefixVector[K, V]) All() iter.Seq2[int, Entry[K, V]] {
	return func(yield func(int, Entry[K, V]) bool) {
		for i, e := range pv.items {
			if !yield(i, Entry[K, V]{Key: e.key, Value: e.value}) {
				return
			}
		}
	}
}

// Range returns an iterator over the entries in [start, end), the shape
// Subkeys returns.
func (pv *PrefixVector[K, V]) Range(start, end int) iter.Seq2[int, Entry[K, V]] {
	return func(yield func(int, Entry[K, V]) bool) {
		for i := start; i < end; i++ {
			e := pv.items[i]
			if !yield(i, Entry[K, V]{Key: e.key, Value: e.value}) {
				return
			}
		}
	}
}

// Swap exchanges the contents of pv and other.
func (pv *PrefixVector[K, V]) Swap(other *PrefixVector[K, V]) {
	pv.items, other.items = other.items, pv.items
	pv.adapter, other.adapter = other.adapter, pv.adapter
}

// Clone returns a copy of pv. Values implementing Cloner[V] are deep
// copied; all others are copied by assignment.
func (pv *PrefixVector[K, V]) Clone() *PrefixVector[K, V] {
	items := make([]pvElement[K, V], len(pv.items))
	for i, e := range pv.items {
		items[i] = pvElement[K, V]{key: e.key, value: cloneOrCopyValue(e.value), ancestor: e.ancestor}
	}
	return &PrefixVector[K, V]{adapter: pv.adapter, items: items}
}
