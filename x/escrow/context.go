package escrow

import (
	"context"

	"github.com/iov-one/tokenescrow/weave"
	"github.com/iov-one/tokenescrow/x"
)

type contextKey int // local to the escrow module

const (
	contextKeyEscrow contextKey = iota
)

// withEscrowAuthority is a private method, as only this module can act on
// behalf of an escrow.
func withEscrowAuthority(ctx weave.Context, cond weave.Condition) weave.Context {
	return context.WithValue(ctx, contextKeyEscrow, cond)
}

// Authenticate exposes the escrow condition set by this package. Chain it
// into the token controller authenticator so that vaults can be moved.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns the escrow condition previously set on this context.
func (a Authenticate) GetConditions(ctx weave.Context) []weave.Condition {
	val, _ := ctx.Value(contextKeyEscrow).(weave.Condition)
	if val == nil {
		return nil
	}
	return []weave.Condition{val}
}

// HasAddress returns true iff this address is in GetConditions
func (a Authenticate) HasAddress(ctx weave.Context, addr weave.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
