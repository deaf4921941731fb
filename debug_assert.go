// Copyright (c) 2025 The bitlpm Authors
// SPDX-License-Identifier: MIT

//go:build bitlpmdebug

package bitlpm

import "fmt"

// assertf panics with the formatted message if cond is false. Only
// compiled in under the bitlpmdebug build tag; internal invariant checks
// (ancestor index < own index, internal node has both children, parent
// back-pointers consistent) are not paid for in normal builds.
func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
