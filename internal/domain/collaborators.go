package domain

import (
	"context"
	"net/netip"

	"github.com/Flarenzy/preghierine/internal/policy"
)

// PhraseProvider returns non-empty lines. Implementations report a missing
// source with ErrPhraseSourceMissing and an empty one with ErrEmptyPhraseSource.
type PhraseProvider interface {
	Load(ctx context.Context) ([]string, error)
}

type Transport interface {
	Send(ctx context.Context, payload []byte, dst netip.AddrPort) error
}

type DestinationGate interface {
	Evaluate(addr netip.Addr) policy.Verdict
}
