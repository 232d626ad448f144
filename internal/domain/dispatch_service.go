package domain

import (
	"context"
	"fmt"
	"net/netip"
	"strings"

	"github.com/Flarenzy/preghierine/internal/netrange"
)

const DefaultMinPrefixBits = 18

type dispatchService struct {
	minPrefix int
	gate      DestinationGate
	phrases   PhraseProvider
	transport Transport
	rnd       netrange.Rand
}

func NewDispatchService(cfg DispatchConfig, gate DestinationGate, phrases PhraseProvider, transport Transport, rnd netrange.Rand) DispatchService {
	if rnd == nil {
		rnd = netrange.DefaultRand()
	}
	return &dispatchService{
		minPrefix: cfg.MinPrefixBits,
		gate:      gate,
		phrases:   phrases,
		transport: transport,
		rnd:       rnd,
	}
}

// ClampPrefix raises bits to minBits when it describes a wider network.
func ClampPrefix(bits, minBits int) int {
	if bits < minBits {
		return minBits
	}
	return bits
}

func (s *dispatchService) SendRandom(ctx context.Context, input DispatchInput) (DispatchOutcome, error) {
	subnet := strings.TrimSpace(input.Subnet)
	if subnet == "" {
		return DispatchOutcome{}, fmt.Errorf("%w 'subnet'", ErrMissingField)
	}
	if input.CIDR == nil {
		return DispatchOutcome{}, fmt.Errorf("%w 'cidr'", ErrMissingField)
	}

	subnetCIDR := fmt.Sprintf("%s/%d", subnet, *input.CIDR)
	effective := ClampPrefix(*input.CIDR, s.minPrefix)

	network, err := netrange.Parse(subnet, effective)
	if err != nil {
		return DispatchOutcome{}, fmt.Errorf("%w %q: %w", ErrInvalidSubnet, subnetCIDR, err)
	}

	target, err := network.Sample(s.rnd)
	if err != nil {
		return DispatchOutcome{}, fmt.Errorf("sample %s: %w", network, err)
	}

	outcome := DispatchOutcome{
		Target:          target,
		SubnetCIDR:      subnetCIDR,
		Network:         network.Prefix(),
		EffectivePrefix: effective,
	}

	if verdict := s.gate.Evaluate(target); verdict.Blocked() {
		outcome.Status = StatusBlocked
		outcome.Message = BlockedMessage
		outcome.BlockReason = verdict.Reason
		return outcome, nil
	}

	if input.PortErr != nil {
		return DispatchOutcome{}, input.PortErr
	}
	ports, err := netrange.NewPortRange(input.MinPort, input.MaxPort)
	if err != nil {
		return DispatchOutcome{}, err
	}
	port := ports.Sample(s.rnd)

	phrase, err := s.pickPhrase(ctx)
	if err != nil {
		return DispatchOutcome{}, err
	}

	if err := s.transport.Send(ctx, []byte(phrase), netip.AddrPortFrom(target, port)); err != nil {
		return DispatchOutcome{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	outcome.Status = StatusSent
	outcome.Message = phrase
	outcome.Port = port
	return outcome, nil
}

func (s *dispatchService) pickPhrase(ctx context.Context) (string, error) {
	lines, err := s.phrases.Load(ctx)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", ErrEmptyPhraseSource
	}
	return lines[s.rnd.IntN(len(lines))], nil
}
