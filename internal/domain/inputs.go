package domain

const (
	DefaultMinPort = 1024
	DefaultMaxPort = 65535
)

// DispatchInput is the caller's request after JSON coercion. CIDR is nil
// when the field was absent. PortErr holds a port coercion failure; it is
// reported only for destinations the gate allows.
type DispatchInput struct {
	Subnet  string
	CIDR    *int
	MinPort int
	MaxPort int
	PortErr error
}
