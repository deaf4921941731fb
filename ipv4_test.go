// Copyright (c) 2025 The bitlpm Authors
// SPDX-License-Identifier: MIT

package bitlpm

import (
	"net/netip"
	"testing"
)

func TestHostmaskNetmask(t *testing.T) {
	cases := []struct {
		bits     int
		hostmask uint32
	}{
		{0, 0xFFFFFFFF},
		{8, 0x00FFFFFF},
		{24, 0x000000FF},
		{31, 0x00000001},
		{32, 0x00000000},
	}
	for _, tc := range cases {
		if got := hostmask(tc.bits); got != tc.hostmask {
			t.Errorf("hostmask(%d) = %#x, want %#x", tc.bits, got, tc.hostmask)
		}
		if got := netmask(tc.bits); got != ^tc.hostmask {
			t.Errorf("netmask(%d) = %#x, want %#x", tc.bits, got, ^tc.hostmask)
		}
	}
}

func TestClampPrefixLen(t *testing.T) {
	cases := map[int]int{-1: 0, 0: 0, 24: 24, 32: 32, 33: 32, 128: 32}
	for in, want := range cases {
		if got := clampPrefixLen(in); got != want {
			t.Errorf("clampPrefixLen(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestIPv4AdapterToBitsMasksHostBits(t *testing.T) {
	var a IPv4Adapter
	pfx := netip.MustParsePrefix("10.1.2.3/16")
	bs := a.ToBits(pfx)

	if bs.Len() != 16 {
		t.Fatalf("ToBits().Len() = %d, want 16", bs.Len())
	}
	want := NewBitString([]byte{10, 1}, 16)
	if !Equal(bs, want) {
		t.Errorf("ToBits(%v) = %v, want %v (host bits must be masked)", pfx, bs, want)
	}
}

func TestIPv4AdapterRoundTrip(t *testing.T) {
	var a IPv4Adapter
	cases := []string{"0.0.0.0/0", "10.0.0.0/8", "192.168.1.0/24", "255.255.255.255/32"}
	for _, s := range cases {
		pfx := netip.MustParsePrefix(s)
		bs := a.ToBits(pfx)
		got := a.FromBits(bs)
		if got != pfx {
			t.Errorf("FromBits(ToBits(%v)) = %v, want %v", pfx, got, pfx)
		}
	}
}

func TestIPv4AdapterPrefixLenAbove32Clamps(t *testing.T) {
	// netip itself rejects an IPv4 prefix length over 32, so the clamp is
	// exercised directly through maskedAddr4/clampPrefixLen rather than
	// through a netip.Prefix value.
	pfx := netip.PrefixFrom(netip.MustParseAddr("10.0.0.1"), 32)
	addr, bits := maskedAddr4(pfx)
	if bits != 32 {
		t.Errorf("maskedAddr4() bits = %d, want 32", bits)
	}
	_ = addr
	if clampPrefixLen(40) != 32 {
		t.Error("clampPrefixLen(40) must clamp to 32")
	}
}

func TestIPv4AdapterString(t *testing.T) {
	var a IPv4Adapter
	pfx := netip.MustParsePrefix("172.16.5.9/12")
	// /12 masks the address down to 172.16.0.0.
	if got, want := a.String(pfx), "172.16.0.0/12"; got != want {
		t.Errorf("String(%v) = %q, want %q", pfx, got, want)
	}
}
