package netrange

import "fmt"

const (
	MinPort = 1
	MaxPort = 65535
)

// PortRange is an inclusive, validated range of UDP ports.
type PortRange struct {
	min int
	max int
}

func NewPortRange(min, max int) (PortRange, error) {
	if min < MinPort || min > MaxPort || max < MinPort || max > MaxPort {
		return PortRange{}, fmt.Errorf("%w: ports must be between %d and %d", ErrInvalidPortRange, MinPort, MaxPort)
	}
	if min > max {
		return PortRange{}, fmt.Errorf("%w: min port must be <= max port", ErrInvalidPortRange)
	}
	return PortRange{min: min, max: max}, nil
}

func (p PortRange) Min() int { return p.min }
func (p PortRange) Max() int { return p.max }

// Sample returns a port in [Min, Max]. p must come from NewPortRange.
func (p PortRange) Sample(rnd Rand) uint16 {
	return uint16(p.min + rnd.IntN(p.max-p.min+1))
}
