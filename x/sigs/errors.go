package sigs

import "github.com/iov-one/tokenescrow/errors"

var (
	// ErrInvalidSequence is returned when a signature sequence does not
	// match the next expected nonce of the signer.
	ErrInvalidSequence = errors.Register(120, "invalid sequence number")
)
