package domain

import (
	"errors"

	"github.com/Flarenzy/preghierine/internal/netrange"
)

var (
	ErrMissingField        = errors.New("missing field")
	ErrInvalidCidr         = errors.New("invalid cidr")
	ErrInvalidSubnet       = errors.New("invalid subnet/CIDR")
	ErrInvalidPortRange    = netrange.ErrInvalidPortRange
	ErrEmptyPhraseSource   = errors.New("phrase source is empty or contains only blank lines")
	ErrPhraseSourceMissing = errors.New("phrase source not found")
	ErrEmptyRange          = netrange.ErrEmptyRange
	ErrTransport           = errors.New("network/UDP error")
)

// IsValidation reports whether err was caused by caller input, before any
// datagram could have been sent.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrInvalidCidr) ||
		errors.Is(err, ErrInvalidSubnet) ||
		errors.Is(err, ErrInvalidPortRange) ||
		errors.Is(err, ErrEmptyPhraseSource) ||
		errors.Is(err, ErrPhraseSourceMissing)
}
