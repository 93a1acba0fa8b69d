package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/tokenescrow/errors"
	"github.com/iov-one/tokenescrow/weave"
)

var isPath = regexp.MustCompile(`^[a-zA-Z0-9_\-/]+$`).MatchString

// Router dispatches a transaction to the handler registered for the path
// of its message.
type Router struct {
	routes map[string]weave.Handler
}

var _ weave.Registry = (*Router)(nil)
var _ weave.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]weave.Handler, 10),
	}
}

// Handle registers a handler for the given message path. It panics if the
// path is not valid or was already registered.
func (r *Router) Handle(path string, h weave.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// Handler returns the handler registered for the path, or nil.
func (r *Router) Handler(path string) weave.Handler {
	return r.routes[path]
}

// Check dispatches to the handler of the message path.
func (r *Router) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	h, err := r.route(tx)
	if err != nil {
		return nil, err
	}
	return h.Check(ctx, db, tx)
}

// Deliver dispatches to the handler of the message path.
func (r *Router) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	h, err := r.route(tx)
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, db, tx)
}

func (r *Router) route(tx weave.Tx) (weave.Handler, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load message")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "transaction carries no message")
	}
	h, ok := r.routes[msg.Path()]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", msg.Path())
	}
	return h, nil
}
