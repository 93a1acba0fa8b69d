package orm

import (
	"bytes"
	"encoding/binary"

	"github.com/iov-one/tokenescrow/errors"
	"github.com/iov-one/tokenescrow/weave"
)

// index maps a secondary key to any number of primary keys.
//
// Every reference is its own db entry:
//   _i.<bucket>_<name>:<uvarint(len(value))><value><primary key>
// so that a prefix scan returns all references for one value.
type index struct {
	bucket  Bucket
	prefix  []byte
	indexer Indexer
}

var _ weave.QueryHandler = index{}

func newIndex(b Bucket, name string, indexer Indexer) index {
	return index{
		bucket:  b,
		prefix:  []byte("_i." + b.name + "_" + name + ":"),
		indexer: indexer,
	}
}

func (i index) valuePrefix(value []byte) []byte {
	var n [binary.MaxVarintLen64]byte
	l := binary.PutUvarint(n[:], uint64(len(value)))
	out := make([]byte, 0, len(i.prefix)+l+len(value))
	out = append(out, i.prefix...)
	out = append(out, n[:l]...)
	return append(out, value...)
}

func (i index) refKey(value, key []byte) []byte {
	return append(i.valuePrefix(value), key...)
}

func (i index) update(db weave.KVStore, key []byte, prev, next Model) error {
	var prevVal, nextVal []byte
	var err error
	if prev != nil {
		if prevVal, err = i.indexer(prev); err != nil {
			return errors.Wrap(err, "index previous")
		}
	}
	if next != nil {
		if nextVal, err = i.indexer(next); err != nil {
			return errors.Wrap(err, "index next")
		}
	}
	if prev != nil && next != nil && bytes.Equal(prevVal, nextVal) {
		return nil
	}
	if prevVal != nil {
		if err := db.Delete(i.refKey(prevVal, key)); err != nil {
			return errors.Wrap(errors.ErrDatabase, err.Error())
		}
	}
	if nextVal != nil {
		if err := db.Set(i.refKey(nextVal, key), []byte{1}); err != nil {
			return errors.Wrap(errors.ErrDatabase, err.Error())
		}
	}
	return nil
}

func (i index) keys(db weave.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	prefix := i.valuePrefix(value)
	refs, err := queryPrefix(db, prefix)
	if err != nil {
		return nil, err
	}
	keys := make([][]byte, 0, len(refs))
	for _, r := range refs {
		keys = append(keys, r.Key[len(prefix):])
	}
	return keys, nil
}

// Query returns all entities referenced by the index value given as data.
func (i index) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	if mod != weave.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
	keys, err := i.keys(db, data)
	if err != nil {
		return nil, err
	}
	var res []weave.Model
	for _, k := range keys {
		dbkey := i.bucket.DBKey(k)
		value, err := db.Get(dbkey)
		if err != nil {
			return nil, err
		}
		if value != nil {
			res = append(res, weave.Pair(dbkey, value))
		}
	}
	return res, nil
}
