package app

import (
	"github.com/iov-one/tokenescrow/errors"
	"github.com/iov-one/tokenescrow/orm"
	"github.com/iov-one/tokenescrow/weave"
)

// RegisterQuery exposes the raw key value store under "/". Data is the
// full database key, or a key prefix with the "prefix" modifier.
func RegisterQuery(qr weave.QueryRouter) {
	qr.Register("/", rawQuery{})
}

type rawQuery struct{}

var _ weave.QueryHandler = rawQuery{}

func (rawQuery) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	switch mod {
	case weave.KeyQueryMod:
		value, err := db.Get(data)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
		if value == nil {
			return nil, nil
		}
		return []weave.Model{weave.Pair(data, value)}, nil
	case weave.PrefixQueryMod:
		itr, err := db.Iterator(data, orm.PrefixEnd(data))
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
		return orm.ConsumeIterator(itr), nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}
