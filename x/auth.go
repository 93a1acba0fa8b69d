package x

import (
	"github.com/iov-one/tokenescrow/weave"
)

// Authenticator extracts the conditions authorized by the current
// context. Handlers receive one in their constructor, so the source of
// authority (signatures, escrow program) is plugged in by the
// application.
type Authenticator interface {
	// GetConditions returns every condition fulfilled by the context.
	GetConditions(weave.Context) []weave.Condition
	// HasAddress checks if any fulfilled condition has this address.
	HasAddress(weave.Context, weave.Address) bool
}

// MultiAuth authorizes whatever any of its members authorizes.
type MultiAuth []Authenticator

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth(impls)
}

// GetConditions concatenates the conditions of all members, in order.
func (m MultiAuth) GetConditions(ctx weave.Context) []weave.Condition {
	var res []weave.Condition
	for _, impl := range m {
		res = append(res, impl.GetConditions(ctx)...)
	}
	return res
}

// HasAddress returns true if any member authorizes the address.
func (m MultiAuth) HasAddress(ctx weave.Context, addr weave.Address) bool {
	for _, impl := range m {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}
