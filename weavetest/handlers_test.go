package weavetest

import (
	"testing"

	"github.com/iov-one/tokenescrow/errors"
	"github.com/iov-one/tokenescrow/weave"
	"github.com/iov-one/tokenescrow/weavetest/assert"
)

type counter interface {
	CheckCallCount() int
	DeliverCallCount() int
	CallCount() int
}

func assertCounts(t *testing.T, c counter, wantCheck, wantDeliver int) {
	t.Helper()
	assert.Equal(t, wantCheck, c.CheckCallCount())
	assert.Equal(t, wantDeliver, c.DeliverCallCount())
	assert.Equal(t, wantCheck+wantDeliver, c.CallCount())
}

func TestHandler(t *testing.T) {
	h := &Handler{
		CheckResult:   weave.CheckResult{GasAllocated: 5},
		DeliverResult: weave.DeliverResult{Data: []byte("escrow")},
	}
	assertCounts(t, h, 0, 0)

	cres, err := h.Check(nil, nil, nil)
	assert.Nil(t, err)
	assert.Equal(t, int64(5), cres.GasAllocated)
	dres, err := h.Deliver(nil, nil, nil)
	assert.Nil(t, err)
	assert.Equal(t, "escrow", string(dres.Data))

	// results are copies
	dres.Data = []byte("changed")
	assert.Equal(t, "escrow", string(h.DeliverResult.Data))
	assertCounts(t, h, 1, 1)

	// failing calls are counted as well
	h.CheckErr = errors.ErrUnauthorized
	h.DeliverErr = errors.ErrNotFound
	_, err = h.Check(nil, nil, nil)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	_, err = h.Deliver(nil, nil, nil)
	assert.IsErr(t, errors.ErrNotFound, err)
	assertCounts(t, h, 2, 2)
}

func TestDecorator(t *testing.T) {
	d := &Decorator{}
	h := &Handler{}
	stack := Decorate(h, d)

	_, err := stack.Check(nil, nil, nil)
	assert.Nil(t, err)
	_, err = stack.Deliver(nil, nil, nil)
	assert.Nil(t, err)
	assertCounts(t, d, 1, 1)
	assertCounts(t, h, 1, 1)

	// a failing decorator never reaches the handler
	d.CheckErr = errors.ErrUnauthorized
	d.DeliverErr = errors.ErrState
	_, err = stack.Check(nil, nil, nil)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	_, err = stack.Deliver(nil, nil, nil)
	assert.IsErr(t, errors.ErrState, err)
	assertCounts(t, d, 2, 2)
	assertCounts(t, h, 1, 1)
}

func TestWriteHandler(t *testing.T) {
	db := &recordingStore{}
	h := WriteHandler{Key: []byte("k"), Value: []byte("v"), Err: errors.ErrState}

	_, err := h.Deliver(nil, db, nil)
	assert.IsErr(t, errors.ErrState, err)
	assert.Equal(t, "k", string(db.key))
	assert.Equal(t, "v", string(db.value))
}

func TestPanicHandler(t *testing.T) {
	assert.Panics(t, func() { _, _ = PanicHandler{Msg: "boom"}.Check(nil, nil, nil) })
	assert.Panics(t, func() { _, _ = PanicHandler{}.Deliver(nil, nil, nil) })
}

type recordingStore struct {
	weave.KVStore
	key, value []byte
}

func (s *recordingStore) Set(key, value []byte) error {
	s.key, s.value = key, value
	return nil
}
