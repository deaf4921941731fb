// Copyright (c) 2025 The bitlpm Authors
// SPDX-License-Identifier: MIT

//go:build !bitlpmdebug

package bitlpm

// assertf is a no-op in default builds. Build with the bitlpmdebug tag to
// turn on internal invariant checks.
func assertf(cond bool, format string, args ...any) {}
