package escrow

import "github.com/iov-one/tokenescrow/errors"

var (
	// ErrAddressMismatch is returned when an address given in a message is
	// not the one derived from the other message fields.
	ErrAddressMismatch = errors.Register(1030, "address does not match derivation")

	// ErrTermsMismatch is returned when an exchange does not state exactly
	// the terms of the offer.
	ErrTermsMismatch = errors.Register(1031, "terms mismatch")
)
