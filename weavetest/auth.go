package weavetest

import (
	"context"
	"fmt"

	"github.com/iov-one/tokenescrow/weave"
)

// CtxAuth is a mock implementing x.Authenticator interface.
//
// Conditions are carried by the context under Key, so two instances with
// different keys never see each other's conditions.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convenience only string type keys are allowed.
	Key string
}

// SetConditions returns a context that authorizes the given conditions.
func (a *CtxAuth) SetConditions(ctx weave.Context, conds ...weave.Condition) weave.Context {
	return context.WithValue(ctx, a.Key, conds)
}

func (a *CtxAuth) GetConditions(ctx weave.Context) []weave.Condition {
	switch val := ctx.Value(a.Key).(type) {
	case nil:
		return nil
	case []weave.Condition:
		return val
	default:
		panic(fmt.Sprintf("instead of []weave.Condition got %T", val))
	}
}

func (a *CtxAuth) HasAddress(ctx weave.Context, addr weave.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
