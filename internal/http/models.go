package http

import (
	"fmt"
	"strings"

	"github.com/Flarenzy/preghierine/internal/domain"
)

// SendRandomRequest is the payload accepted by the send endpoint. Numeric
// fields also accept numeric strings.
type SendRandomRequest struct {
	Subnet  any `json:"subnet" swaggertype:"string" example:"8.8.8.0"`
	CIDR    any `json:"cidr" swaggertype:"integer" example:"24"`
	MinPort any `json:"minPort" swaggertype:"integer" example:"1024"`
	MaxPort any `json:"maxPort" swaggertype:"integer" example:"65535"`
}

// SendRandomResponse describes a datagram that was sent.
type SendRandomResponse struct {
	Status        string `json:"status" example:"ok"`
	MessageSent   string `json:"messageSent" example:"Pace e bene"`
	TargetIP      string `json:"targetIp" example:"8.8.8.17"`
	TargetPort    uint16 `json:"targetPort" example:"40123"`
	SubnetCIDR    string `json:"subnetCidr" example:"8.8.8.0/24"`
	CIDREffective int    `json:"cidrEffective" example:"24"`
}

// BlockedResponse describes a destination the policy refused. Nothing was sent.
type BlockedResponse struct {
	Status        string `json:"status" example:"blocked"`
	Message       string `json:"message" example:"The chosen address is in a protected range, so no message was sent."`
	TargetIP      string `json:"targetIp" example:"192.168.1.42"`
	SubnetCIDR    string `json:"subnetCidr" example:"192.168.1.0/24"`
	CIDREffective int    `json:"cidrEffective" example:"24"`
}

// ErrorResponse is a simple envelope for error messages.
type ErrorResponse struct {
	Error string `json:"error" example:"missing field 'subnet'"`
}

func (r SendRandomRequest) toInput() (domain.DispatchInput, error) {
	in := domain.DispatchInput{
		MinPort: domain.DefaultMinPort,
		MaxPort: domain.DefaultMaxPort,
	}

	switch s := r.Subnet.(type) {
	case nil:
	case string:
		in.Subnet = s
	default:
		return domain.DispatchInput{}, fmt.Errorf("%w: subnet must be a string", domain.ErrInvalidSubnet)
	}
	if strings.TrimSpace(in.Subnet) == "" {
		return in, nil
	}

	if r.CIDR != nil {
		bits, err := coerceInt(r.CIDR)
		if err != nil {
			return domain.DispatchInput{}, fmt.Errorf("%w: %w", domain.ErrInvalidCidr, err)
		}
		in.CIDR = &bits
	}

	var err error
	if in.MinPort, err = coercePort(r.MinPort, domain.DefaultMinPort); err != nil {
		in.PortErr = fmt.Errorf("%w: minPort: %w", domain.ErrInvalidPortRange, err)
	}
	if in.MaxPort, err = coercePort(r.MaxPort, domain.DefaultMaxPort); err != nil && in.PortErr == nil {
		in.PortErr = fmt.Errorf("%w: maxPort: %w", domain.ErrInvalidPortRange, err)
	}

	return in, nil
}

func coercePort(v any, def int) (int, error) {
	if v == nil {
		return def, nil
	}
	port, err := coerceInt(v)
	if err != nil {
		return def, err
	}
	return port, nil
}

func outcomeToResponse(o domain.DispatchOutcome) any {
	if !o.Sent() {
		return BlockedResponse{
			Status:        string(o.Status),
			Message:       o.Message,
			TargetIP:      o.Target.String(),
			SubnetCIDR:    o.SubnetCIDR,
			CIDREffective: o.EffectivePrefix,
		}
	}
	return SendRandomResponse{
		Status:        string(o.Status),
		MessageSent:   o.Message,
		TargetIP:      o.Target.String(),
		TargetPort:    o.Port,
		SubnetCIDR:    o.SubnetCIDR,
		CIDREffective: o.EffectivePrefix,
	}
}
