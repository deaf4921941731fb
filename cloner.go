// Copyright (c) 2025 The bitlpm Authors
// SPDX-License-Identifier: MIT

package bitlpm

// Cloner is an optional interface a stored value may implement to control
// its own copying when a container is cloned. Values that don't implement
// it are copied by plain assignment.
type Cloner[V any] interface {
	Clone() V
}

// cloneOrCopyValue deep-copies v if it implements Cloner[V], otherwise
// returns it unchanged (a plain assignment copy).
func cloneOrCopyValue[V any](v V) V {
	if c, ok := any(v).(Cloner[V]); ok {
		return c.Clone()
	}
	return v
}
