package weavetest

import "github.com/iov-one/tokenescrow/weave"

// Handler is a mock implementation of the weave.Handler interface.
//
// Set CheckErr or DeliverErr to force an error response, otherwise a copy
// of CheckResult or DeliverResult is returned.
type Handler struct {
	calls
	CheckResult   weave.CheckResult
	CheckErr      error
	DeliverResult weave.DeliverResult
	DeliverErr    error
}

var _ weave.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	h.check++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	h.deliver++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// WriteHandler writes a single key/value pair into the store before
// returning Err. It allows testing that a failing handler leaves no
// trace in the store.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ weave.Handler = (*WriteHandler)(nil)

func (h *WriteHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, h.Err
}

func (h *WriteHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{}, h.Err
}

// PanicHandler panics on every call.
type PanicHandler struct {
	Msg string
}

var _ weave.Handler = PanicHandler{}

func (p PanicHandler) Check(weave.Context, weave.KVStore, weave.Tx) (*weave.CheckResult, error) {
	panic(p.Msg)
}

func (p PanicHandler) Deliver(weave.Context, weave.KVStore, weave.Tx) (*weave.DeliverResult, error) {
	panic(p.Msg)
}
