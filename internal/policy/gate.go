// Package policy decides whether an address may receive a datagram.
package policy

import (
	"fmt"
	"net/netip"
	"strings"

	"go4.org/netipx"
)

// DefaultBlockedSubnets are globally routable networks that must never be targeted.
var DefaultBlockedSubnets = []string{
	"91.193.55.0/24",
	"103.188.230.0/24",
}

// Special-purpose space (IANA IPv4/IPv6 special registries) that is not
// forwardable on the public internet, plus multicast.
var nonGlobalPrefixes = []string{
	"0.0.0.0/8",
	"10.0.0.0/8",
	"100.64.0.0/10",
	"127.0.0.0/8",
	"169.254.0.0/16",
	"172.16.0.0/12",
	"192.0.0.0/24",
	"192.0.2.0/24",
	"192.168.0.0/16",
	"198.18.0.0/15",
	"198.51.100.0/24",
	"203.0.113.0/24",
	"224.0.0.0/4",
	"240.0.0.0/4",

	// IPv6 outside 2000::/3 is reserved, unallocated, ULA, link-local or multicast.
	"::/3",
	"4000::/2",
	"8000::/1",
	"2001::/23",
	"2001:db8::/32",
	"2002::/16",
	"3fff::/20",
}

// Carved out of the ranges above; the registries mark them globally reachable.
var globalExceptions = []string{
	"192.0.0.9/32",
	"192.0.0.10/32",
	"2001:1::1/128",
	"2001:1::2/128",
	"2001:3::/32",
	"2001:4:112::/48",
	"2001:20::/28",
	"2001:30::/28",
}

type Reason string

const (
	ReasonNone          Reason = ""
	ReasonNonGlobal     Reason = "non-global"
	ReasonBlockedSubnet Reason = "blocked-subnet"
)

type Verdict struct {
	Allowed bool
	Reason  Reason
}

func (v Verdict) Blocked() bool {
	return !v.Allowed
}

// Gate is immutable after construction and safe for concurrent use.
type Gate struct {
	nonGlobal *netipx.IPSet
	blocked   *netipx.IPSet
	subnets   []netip.Prefix
}

func NewGate(blocked []netip.Prefix) (*Gate, error) {
	var ng netipx.IPSetBuilder
	for _, s := range nonGlobalPrefixes {
		ng.AddPrefix(netip.MustParsePrefix(s))
	}
	for _, s := range globalExceptions {
		ng.RemovePrefix(netip.MustParsePrefix(s))
	}
	nonGlobal, err := ng.IPSet()
	if err != nil {
		return nil, fmt.Errorf("build non-global set: %w", err)
	}

	var bl netipx.IPSetBuilder
	subnets := make([]netip.Prefix, 0, len(blocked))
	for _, p := range blocked {
		if !p.IsValid() {
			return nil, fmt.Errorf("invalid blocked subnet %v", p)
		}
		p = p.Masked()
		bl.AddPrefix(p)
		subnets = append(subnets, p)
	}
	blockedSet, err := bl.IPSet()
	if err != nil {
		return nil, fmt.Errorf("build blocked set: %w", err)
	}

	return &Gate{
		nonGlobal: nonGlobal,
		blocked:   blockedSet,
		subnets:   subnets,
	}, nil
}

// Evaluate has no side effects; the same address always gets the same verdict.
func (g *Gate) Evaluate(addr netip.Addr) Verdict {
	addr = addr.Unmap()
	if !isGlobal(addr) || g.nonGlobal.Contains(addr) {
		return Verdict{Reason: ReasonNonGlobal}
	}
	if g.blocked.Contains(addr) {
		return Verdict{Reason: ReasonBlockedSubnet}
	}
	return Verdict{Allowed: true}
}

func (g *Gate) Allowed(addr netip.Addr) bool {
	return g.Evaluate(addr).Allowed
}

// BlockedSubnets returns a copy of the explicit blocklist.
func (g *Gate) BlockedSubnets() []netip.Prefix {
	return append([]netip.Prefix(nil), g.subnets...)
}

func isGlobal(addr netip.Addr) bool {
	return addr.IsValid() &&
		!addr.IsUnspecified() &&
		!addr.IsLoopback() &&
		!addr.IsPrivate() &&
		!addr.IsLinkLocalUnicast() &&
		!addr.IsLinkLocalMulticast() &&
		!addr.IsInterfaceLocalMulticast() &&
		!addr.IsMulticast()
}

// ParsePrefixes parses CIDR strings, skipping blank entries.
func ParsePrefixes(values []string) ([]netip.Prefix, error) {
	out := make([]netip.Prefix, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		p, err := netip.ParsePrefix(v)
		if err != nil {
			return nil, fmt.Errorf("parse subnet %q: %w", v, err)
		}
		out = append(out, p.Masked())
	}
	return out, nil
}
