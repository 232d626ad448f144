package netrange

import (
	"math/rand/v2"
	"net/netip"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestParseMasksHostBits(t *testing.T) {
	r, err := Parse("192.168.1.77", 24)
	require.NoError(t, err)
	assert.Equal(t, netip.MustParsePrefix("192.168.1.0/24"), r.Prefix())
	assert.Equal(t, netip.MustParseAddr("192.168.1.0"), r.Network())
	assert.Equal(t, netip.MustParseAddr("192.168.1.255"), r.Broadcast())
	assert.Equal(t, 8, r.HostBits())
}

func TestParseRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		base string
		bits int
	}{
		{"empty", "", 24},
		{"garbage", "not-an-ip", 24},
		{"prefix in base", "10.0.0.0/8", 24},
		{"too wide for v4", "10.0.0.0", 33},
		{"negative", "10.0.0.0", -1},
		{"too wide for v6", "2001:db8::", 129},
		{"zoned", "fe80::1%eth0", 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.base, tt.bits)
			require.ErrorIs(t, err, ErrInvalidNetwork)
		})
	}
}

func TestHostsExcludesNetworkAndBroadcast(t *testing.T) {
	tests := []struct {
		cidr     string
		expected int
	}{
		{"192.168.1.0/30", 2},
		{"192.168.1.0/29", 6},
		{"192.168.1.0/28", 14},
		{"192.168.1.0/24", 254},
		{"192.168.1.0/31", 2},
		{"192.168.1.7/32", 1},
		{"2001:db8::/126", 2},
		{"2001:db8::/127", 2},
	}

	for _, tt := range tests {
		t.Run(tt.cidr, func(t *testing.T) {
			r, err := FromPrefix(netip.MustParsePrefix(tt.cidr))
			require.NoError(t, err)

			hosts := slices.Collect(r.Hosts())
			require.Len(t, hosts, tt.expected)
			if r.HostBits() >= 2 {
				assert.NotContains(t, hosts, r.Network())
				assert.NotContains(t, hosts, r.Broadcast())
			}
			for _, h := range hosts {
				assert.True(t, r.Contains(h), "%s outside %s", h, r)
			}
		})
	}
}

func TestSampleStaysInsideUsableSpan(t *testing.T) {
	rnd := seeded()
	for _, cidr := range []string{"8.8.8.0/24", "10.0.0.0/18", "192.168.1.0/30", "2001:db8::/64", "2001:db8::/18"} {
		r, err := FromPrefix(netip.MustParsePrefix(cidr))
		require.NoError(t, err)

		for range 2000 {
			a, err := r.Sample(rnd)
			require.NoError(t, err)
			require.True(t, r.Contains(a), "%s outside %s", a, cidr)
			require.NotEqual(t, r.Network(), a)
			require.NotEqual(t, r.Broadcast(), a)
		}
	}
}

func TestSampleCoversEveryHostOfSmallRange(t *testing.T) {
	r, err := Parse("192.168.1.0", 29)
	require.NoError(t, err)

	seen := map[netip.Addr]bool{}
	rnd := seeded()
	for range 1000 {
		a, err := r.Sample(rnd)
		require.NoError(t, err)
		seen[a] = true
	}
	assert.Len(t, seen, 6)
}

func TestSampleDegenerateRangesUseEveryAddress(t *testing.T) {
	single, err := Parse("203.0.113.9", 32)
	require.NoError(t, err)
	a, err := single.Sample(seeded())
	require.NoError(t, err)
	assert.Equal(t, netip.MustParseAddr("203.0.113.9"), a)

	pair, err := Parse("203.0.113.8", 31)
	require.NoError(t, err)
	seen := map[netip.Addr]bool{}
	rnd := seeded()
	for range 200 {
		a, err := pair.Sample(rnd)
		require.NoError(t, err)
		seen[a] = true
	}
	assert.Len(t, seen, 2)
}

func TestSampleZeroRangeFails(t *testing.T) {
	_, err := AddressRange{}.Sample(seeded())
	require.ErrorIs(t, err, ErrEmptyRange)
}

func TestAddOffsetCarriesAcrossWords(t *testing.T) {
	a := addOffset(netip.MustParseAddr("2001:db8::ffff:ffff:ffff:ffff"), 1)
	assert.Equal(t, netip.MustParseAddr("2001:db8:0:1::"), a)

	b := addOffset(netip.MustParseAddr("10.0.0.255"), 1)
	assert.Equal(t, netip.MustParseAddr("10.0.1.0"), b)
}
