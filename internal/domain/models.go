package domain

import (
	"net/netip"

	"github.com/Flarenzy/preghierine/internal/policy"
)

// BlockedMessage is returned to callers whose sampled destination was refused.
const BlockedMessage = "The chosen address is in a protected range, so no message was sent."

type OutcomeStatus string

const (
	StatusSent    OutcomeStatus = "ok"
	StatusBlocked OutcomeStatus = "blocked"
)

type DispatchOutcome struct {
	Status OutcomeStatus
	// Message is the phrase for sent outcomes and BlockedMessage otherwise.
	Message         string
	Target          netip.Addr
	Port            uint16
	SubnetCIDR      string
	Network         netip.Prefix
	EffectivePrefix int
	BlockReason     policy.Reason
}

func (o DispatchOutcome) Sent() bool {
	return o.Status == StatusSent
}

type DispatchConfig struct {
	MinPrefixBits int
}
