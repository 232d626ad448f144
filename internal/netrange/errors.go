package netrange

import "errors"

var (
	ErrInvalidNetwork   = errors.New("invalid network")
	ErrEmptyRange       = errors.New("no usable address in range")
	ErrInvalidPortRange = errors.New("invalid port range")
)
