package token

import "github.com/iov-one/tokenescrow/errors"

var (
	// ErrDecimals is returned when the decimal precision declared for a
	// checked transfer does not match the mint.
	ErrDecimals = errors.Register(1020, "decimals mismatch")
)
