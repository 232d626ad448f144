package netrange

import (
	"encoding/binary"
	"fmt"
	"iter"
	"math/bits"
	"net/netip"

	"go4.org/netipx"
)

// maxWideSampleAttempts bounds the rejection loop used for ranges wider than 2^62 addresses.
const maxWideSampleAttempts = 32

// AddressRange is the set of addresses covered by a masked prefix.
type AddressRange struct {
	prefix netip.Prefix
}

// Parse builds the range for base/length. Host bits set in base are ignored, so
// 192.168.1.77 with 24 bits resolves to 192.168.1.0/24.
func Parse(base string, length int) (AddressRange, error) {
	text := fmt.Sprintf("%s/%d", base, length)
	p, err := netip.ParsePrefix(text)
	if err != nil {
		return AddressRange{}, fmt.Errorf("%w: %q: %v", ErrInvalidNetwork, text, err)
	}
	return AddressRange{prefix: p.Masked()}, nil
}

// FromPrefix wraps an already parsed prefix.
func FromPrefix(p netip.Prefix) (AddressRange, error) {
	if !p.IsValid() {
		return AddressRange{}, fmt.Errorf("%w: %v", ErrInvalidNetwork, p)
	}
	return AddressRange{prefix: p.Masked()}, nil
}

func (r AddressRange) Prefix() netip.Prefix {
	return r.prefix
}

func (r AddressRange) String() string {
	return r.prefix.String()
}

// Network is the first address of the range.
func (r AddressRange) Network() netip.Addr {
	return r.prefix.Addr()
}

// Broadcast is the last address of the range.
func (r AddressRange) Broadcast() netip.Addr {
	return netipx.PrefixLastIP(r.prefix)
}

// HostBits is the number of address bits not fixed by the prefix.
func (r AddressRange) HostBits() int {
	return r.prefix.Addr().BitLen() - r.prefix.Bits()
}

func (r AddressRange) Contains(addr netip.Addr) bool {
	return r.prefix.Contains(addr)
}

// Usable returns the span of host addresses. Ranges of four or more addresses
// drop the network and broadcast endpoints; /31 and /32 (and the IPv6
// equivalents) keep every address.
func (r AddressRange) Usable() netipx.IPRange {
	if !r.prefix.IsValid() {
		return netipx.IPRange{}
	}
	full := netipx.RangeOfPrefix(r.prefix)
	if r.HostBits() < 2 {
		return full
	}
	return netipx.IPRangeFrom(full.From().Next(), full.To().Prev())
}

// Hosts enumerates the usable addresses in ascending order.
func (r AddressRange) Hosts() iter.Seq[netip.Addr] {
	usable := r.Usable()
	return func(yield func(netip.Addr) bool) {
		if !usable.IsValid() {
			return
		}
		for a := usable.From(); a.IsValid() && a.Compare(usable.To()) <= 0; a = a.Next() {
			if !yield(a) {
				return
			}
		}
	}
}

// Sample picks one usable address uniformly at random.
func (r AddressRange) Sample(rnd Rand) (netip.Addr, error) {
	if !r.prefix.IsValid() {
		return netip.Addr{}, ErrEmptyRange
	}
	usable := r.Usable()
	if !usable.IsValid() {
		return netip.Addr{}, ErrEmptyRange
	}

	hostBits := r.HostBits()
	if hostBits <= 62 {
		n := uint64(1) << hostBits
		if hostBits >= 2 {
			n -= 2
		}
		return addOffset(usable.From(), rnd.Uint64N(n)), nil
	}

	for range maxWideSampleAttempts {
		a := randomHostBits(r.prefix, rnd)
		if usable.Contains(a) {
			return a, nil
		}
	}
	return netip.Addr{}, fmt.Errorf("%w: %s: gave up after %d attempts", ErrEmptyRange, r.prefix, maxWideSampleAttempts)
}

func addOffset(a netip.Addr, off uint64) netip.Addr {
	if a.Is4() {
		b := a.As4()
		binary.BigEndian.PutUint32(b[:], binary.BigEndian.Uint32(b[:])+uint32(off))
		return netip.AddrFrom4(b)
	}

	b := a.As16()
	hi := binary.BigEndian.Uint64(b[:8])
	lo, carry := bits.Add64(binary.BigEndian.Uint64(b[8:]), off, 0)
	binary.BigEndian.PutUint64(b[:8], hi+carry)
	binary.BigEndian.PutUint64(b[8:], lo)
	return netip.AddrFrom16(b)
}

// randomHostBits keeps the network bits of p and fills the rest from rnd.
func randomHostBits(p netip.Prefix, rnd Rand) netip.Addr {
	var noise [16]byte
	binary.BigEndian.PutUint64(noise[:8], rnd.Uint64())
	binary.BigEndian.PutUint64(noise[8:], rnd.Uint64())

	b := p.Addr().As16()
	for i := range b {
		m := networkMaskByte(p.Bits(), i)
		b[i] = b[i]&m | noise[i]&^m
	}
	return netip.AddrFrom16(b)
}

func networkMaskByte(prefixBits, index int) byte {
	left := prefixBits - index*8
	switch {
	case left >= 8:
		return 0xff
	case left <= 0:
		return 0
	default:
		return byte(0xff << (8 - left))
	}
}
