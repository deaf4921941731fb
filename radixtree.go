// Copyright (c) 2025 The bitlpm Authors
// SPDX-License-Identifier: MIT

package bitlpm

import "iter"

// radixNode is one node of the binary PATRICIA tree. A node with a nil
// value is internal-only: it routes between its two children and, except
// transiently mid-mutation, always has both of them present. A node with a
// non-nil value is populated and may have zero, one, or two children.
type radixNode[K any, V any] struct {
	key    K
	value  *V
	left   *radixNode[K, V]
	right  *radixNode[K, V]
	parent *radixNode[K, V]
}

func (n *radixNode[K, V]) child(bit uint8) *radixNode[K, V] {
	if bit == 0 {
		return n.left
	}
	return n.right
}

func (n *radixNode[K, V]) setChild(bit uint8, c *radixNode[K, V]) {
	if bit == 0 {
		n.left = c
	} else {
		n.right = c
	}
	if c != nil {
		c.parent = n
	}
}

func (n *radixNode[K, V]) childCount() int {
	count := 0
	if n.left != nil {
		count++
	}
	if n.right != nil {
		count++
	}
	return count
}

// RadixTree is a pointer-linked binary PATRICIA tree keyed by
// variable-length bit strings, supporting exact lookup, longest-prefix
// match, and subtree enumeration. Internal (value-less) nodes exist only
// to route between two populated subtrees and are merged away opportunely
// on erase.
type RadixTree[K any, V any] struct {
	adapter KeyAdapter[K]
	root    *radixNode[K, V]
	size    int
}

// NewRadixTree returns an empty RadixTree using adapter to project keys to
// BitStrings, and (for internal-node synthesis on split) reconstruct keys
// from BitStrings.
func NewRadixTree[K any, V any](adapter KeyAdapter[K]) *RadixTree[K, V] {
	return &RadixTree[K, V]{adapter: adapter}
}

// Len returns the number of populated (value-bearing) entries.
func (rt *RadixTree[K, V]) Len() int {
	return rt.size
}

// Empty reports whether the tree holds no populated entries.
func (rt *RadixTree[K, V]) Empty() bool {
	return rt.size == 0
}

func (rt *RadixTree[K, V]) bits(key K) BitString {
	return rt.adapter.ToBits(key)
}

// replaceNode rewrites the link that currently points at old so that it
// points at newNode instead: either parent.left/right, or, when parent is
// nil (old is the root), rt.root itself. newNode.parent is set to parent.
// newNode may be nil (used to detach a childless node entirely).
func (rt *RadixTree[K, V]) replaceNode(parent, old, newNode *radixNode[K, V]) {
	if newNode != nil {
		newNode.parent = parent
	}
	if parent == nil {
		rt.root = newNode
		return
	}
	if parent.left == old {
		parent.left = newNode
	} else {
		parent.right = newNode
	}
}

func newRadixLeaf[K any, V any](key K, value V) *radixNode[K, V] {
	v := value
	return &radixNode[K, V]{key: key, value: &v}
}

// insert descends from the root, splitting nodes as needed, and returns
// true if a new value was stored (a brand new key, or a previously
// internal-only node gaining a value) and false if key was already
// present. When overwrite is true and key was already present, the stored
// value is replaced.
func (rt *RadixTree[K, V]) insert(key K, value V, overwrite bool) bool {
	q := rt.bits(key)

	if rt.root == nil {
		rt.root = newRadixLeaf[K, V](key, value)
		rt.size++
		return true
	}

	cur := rt.root
	for {
		ck := rt.bits(cur.key)

		if IsPrefix(ck, q) {
			if Equal(ck, q) {
				if cur.value != nil {
					if overwrite {
						*cur.value = value
					}
					return false
				}
				v := value
				cur.value = &v
				rt.size++
				return true
			}

			bit := q.Bit(ck.Len())
			child := cur.child(bit)
			if child == nil {
				cur.setChild(bit, newRadixLeaf[K, V](key, value))
				rt.size++
				return true
			}
			cur = child
			continue
		}

		// cur's key diverges from the query: split.
		common := LongestCommonPrefix(ck, q)
		parent := cur.parent

		if common.Len() == q.Len() {
			// the query is a strict prefix of cur's key: interpose a new
			// populated node carrying the query, with cur as its child.
			newNode := newRadixLeaf[K, V](key, value)
			newNode.setChild(ck.Bit(common.Len()), cur)
			rt.replaceNode(parent, cur, newNode)
			rt.size++
			return true
		}

		// neither is a prefix of the other: interpose a value-less
		// internal router at the common prefix, with cur and a new leaf
		// as its two children.
		internalNode := &radixNode[K, V]{key: rt.adapter.FromBits(common)}
		internalNode.setChild(ck.Bit(common.Len()), cur)
		internalNode.setChild(q.Bit(common.Len()), newRadixLeaf[K, V](key, value))
		assertf(internalNode.left != nil && internalNode.right != nil, "internal node %v lacks a child", internalNode.key)
		rt.replaceNode(parent, cur, internalNode)
		rt.size++
		return true
	}
}

// Insert inserts key/value. If key (bit-string-equal) is already present,
// its value is left unchanged and inserted is false.
func (rt *RadixTree[K, V]) Insert(key K, value V) (inserted bool) {
	return rt.insert(key, value, false)
}

// InsertOrAssign inserts key/value, overwriting the existing value if key
// is already present. inserted is false in the overwrite case.
func (rt *RadixTree[K, V]) InsertOrAssign(key K, value V) (inserted bool) {
	return rt.insert(key, value, true)
}

// mergeUp is called on the node whose value was just cleared (or, during
// recursion, on a node that just lost a child). It restores the invariant
// that every value-less node has either zero children (and so does not
// exist at all) or two children:
//
//   - a populated node is left alone, regardless of its child count;
//   - a value-less node with two children is already a valid router;
//   - a value-less node with exactly one child collapses into that child,
//     which takes the node's former place in its parent (or becomes root);
//   - a value-less node with no children is removed outright, and the
//     check repeats one level up, since the parent just lost a child.
//
// The collapsing child is threaded through a single named variable all the
// way into replaceNode, so it is never silently dropped by a shadowed
// redeclaration inside a branch.
func (rt *RadixTree[K, V]) mergeUp(n *radixNode[K, V]) {
	for n != nil {
		if n.value != nil {
			return
		}

		switch n.childCount() {
		case 2:
			assertf(n.left.parent == n && n.right.parent == n, "child parent pointer inconsistent with %v", n.key)
			return
		case 0:
			parent := n.parent
			rt.replaceNode(parent, n, nil)
			n = parent
		default:
			survivor := n.left
			if survivor == nil {
				survivor = n.right
			}
			rt.replaceNode(n.parent, n, survivor)
			return
		}
	}
}

// descendExact walks from the root looking for the node whose key
// bit-string-equals q, returning nil if the walk runs off the tree or
// diverges from q before reaching it.
func (rt *RadixTree[K, V]) descendExact(q BitString) *radixNode[K, V] {
	cur := rt.root
	for cur != nil {
		ck := rt.bits(cur.key)
		if Equal(ck, q) {
			return cur
		}
		if !IsPrefix(ck, q) {
			return nil
		}
		cur = cur.child(q.Bit(ck.Len()))
	}
	return nil
}

// EraseByKey removes the populated entry whose key bit-string-equals key,
// if any, merging away any internal router left with fewer than two
// children, and returns the number of entries removed (0 or 1).
func (rt *RadixTree[K, V]) EraseByKey(key K) int {
	n := rt.descendExact(rt.bits(key))
	if n == nil || n.value == nil {
		return 0
	}
	n.value = nil
	rt.size--
	rt.mergeUp(n)
	return 1
}

// FindExact returns the value stored under key, if key bit-string-equals a
// populated entry, and true, or the zero value and false otherwise.
func (rt *RadixTree[K, V]) FindExact(key K) (V, bool) {
	n := rt.descendExact(rt.bits(key))
	if n == nil || n.value == nil {
		var zero V
		return zero, false
	}
	return *n.value, true
}

// lpmDescend walks from the root remembering the last populated node whose
// key is a prefix of q, stopping when the walk diverges or runs off the
// tree.
func (rt *RadixTree[K, V]) lpmDescend(q BitString) *radixNode[K, V] {
	var last *radixNode[K, V]
	cur := rt.root
	for cur != nil {
		ck := rt.bits(cur.key)
		if !IsPrefix(ck, q) {
			break
		}
		if cur.value != nil {
			last = cur
		}
		if Equal(ck, q) {
			break
		}
		cur = cur.child(q.Bit(ck.Len()))
	}
	return last
}

// Find performs a longest-prefix-match lookup: it returns the value of the
// populated entry whose key is the longest prefix of key, and true, or the
// zero value and false if none exists.
func (rt *RadixTree[K, V]) Find(key K) (V, bool) {
	n := rt.lpmDescend(rt.bits(key))
	if n == nil {
		var zero V
		return zero, false
	}
	return *n.value, true
}

// Value returns a pointer to the value of the longest-prefix match of key,
// mutable in place, or nil if there is none.
func (rt *RadixTree[K, V]) Value(key K) *V {
	n := rt.lpmDescend(rt.bits(key))
	if n == nil {
		return nil
	}
	return n.value
}

// subtreeRoot returns the shallowest node whose key either equals q or has
// q as a prefix, or nil if the walk diverges from q before reaching one.
func (rt *RadixTree[K, V]) subtreeRoot(q BitString) *radixNode[K, V] {
	cur := rt.root
	for cur != nil {
		ck := rt.bits(cur.key)
		if IsPrefix(q, ck) {
			return cur
		}
		if !IsPrefix(ck, q) {
			return nil
		}
		cur = cur.child(q.Bit(ck.Len()))
	}
	return nil
}

// walk visits n and its descendants in pre-order (self, then left subtree,
// then right subtree), which coincides with lexicographic bit-string order
// since left=0 precedes right=1. Value-less internal nodes are skipped;
// walk reports false, and stops descending, the moment yield does.
func (rt *RadixTree[K, V]) walk(n *radixNode[K, V], yield func(K, V) bool) bool {
	if n == nil {
		return true
	}
	if n.value != nil {
		if !yield(n.key, *n.value) {
			return false
		}
	}
	if !rt.walk(n.left, yield) {
		return false
	}
	return rt.walk(n.right, yield)
}

// All returns an iterator over every populated entry, in pre-order
// (lexicographic bit-string) order.
func (rt *RadixTree[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		rt.walk(rt.root, yield)
	}
}

// FindAll returns an iterator over every populated entry whose key has
// prefix as a (not necessarily strict) prefix: the subtree rooted at the
// node that covers prefix. Order is pre-order, not a lexicographic
// guarantee across subtrees, though it happens to coincide with one here.
func (rt *RadixTree[K, V]) FindAll(prefix K) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		root := rt.subtreeRoot(rt.bits(prefix))
		rt.walk(root, yield)
	}
}

// Swap exchanges the contents of rt and other.
func (rt *RadixTree[K, V]) Swap(other *RadixTree[K, V]) {
	rt.root, other.root = other.root, rt.root
	rt.size, other.size = other.size, rt.size
	rt.adapter, other.adapter = other.adapter, rt.adapter
}

func cloneRadixNode[K any, V any](n, parent *radixNode[K, V]) *radixNode[K, V] {
	if n == nil {
		return nil
	}
	c := &radixNode[K, V]{key: n.key, parent: parent}
	if n.value != nil {
		v := cloneOrCopyValue(*n.value)
		c.value = &v
	}
	c.left = cloneRadixNode(n.left, c)
	c.right = cloneRadixNode(n.right, c)
	return c
}

// Clone returns a deep copy of rt: every node is reconstructed with fresh
// parent back-pointers. Values implementing Cloner[V] are deep copied; all
// others are copied by assignment.
func (rt *RadixTree[K, V]) Clone() *RadixTree[K, V] {
	return &RadixTree[K, V]{
		adapter: rt.adapter,
		root:    cloneRadixNode[K, V](rt.root, nil),
		size:    rt.size,
	}
}
