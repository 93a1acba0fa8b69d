package utils

import (
	"github.com/iov-one/tokenescrow/errors"
	"github.com/iov-one/tokenescrow/weave"
)

// Savepoint isolates all writes done by the wrapped handler. The writes are
// committed to the parent store only when the handler returns no error,
// otherwise they are dropped.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ weave.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator that is not active. Use OnCheck
// and OnDeliver to enable it.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that will trigger on CheckTx
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver returns a savepoint that will trigger on DeliverTx
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

func (s Savepoint) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	cache, ok := s.wrap(db, s.onCheck)
	if !ok {
		return next.Check(ctx, db, tx)
	}
	res, err := next.Check(ctx, cache, tx)
	if err := finish(cache, err); err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	cache, ok := s.wrap(db, s.onDeliver)
	if !ok {
		return next.Deliver(ctx, db, tx)
	}
	res, err := next.Deliver(ctx, cache, tx)
	if err := finish(cache, err); err != nil {
		return nil, err
	}
	return res, nil
}

// wrap returns a cache wrap of the store if the savepoint is enabled and the
// store supports caching.
func (Savepoint) wrap(db weave.KVStore, enabled bool) (weave.KVCacheWrap, bool) {
	if !enabled {
		return nil, false
	}
	cdb, ok := db.(weave.CacheableKVStore)
	if !ok {
		return nil, false
	}
	return cdb.CacheWrap(), true
}

func finish(cache weave.KVCacheWrap, err error) error {
	if err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
