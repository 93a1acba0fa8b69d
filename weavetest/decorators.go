package weavetest

import "github.com/iov-one/tokenescrow/weave"

// calls counts the Check and Deliver invocations of a mock. Failing calls
// are counted as well.
type calls struct {
	check   int
	deliver int
}

// CheckCallCount returns how many times Check was called.
func (c *calls) CheckCallCount() int { return c.check }

// DeliverCallCount returns how many times Deliver was called.
func (c *calls) DeliverCallCount() int { return c.deliver }

// CallCount returns the total number of Check and Deliver calls.
func (c *calls) CallCount() int { return c.check + c.deliver }

// Decorator is a mock implementation of the weave.Decorator interface.
//
// Set CheckErr or DeliverErr to stop the call before the wrapped handler
// is reached. Otherwise the handler result is returned as is.
type Decorator struct {
	calls
	CheckErr   error
	DeliverErr error
}

var _ weave.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	d.check++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	d.deliver++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// Decorate returns a handler that runs every call through the decorator
// first.
func Decorate(h weave.Handler, d weave.Decorator) weave.Handler {
	return decorated{handler: h, decorator: d}
}

type decorated struct {
	handler   weave.Handler
	decorator weave.Decorator
}

func (d decorated) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	return d.decorator.Check(ctx, db, tx, d.handler)
}

func (d decorated) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	return d.decorator.Deliver(ctx, db, tx, d.handler)
}
