package orm

import (
	"github.com/iov-one/tokenescrow/errors"
	"github.com/iov-one/tokenescrow/weave"
)

// ConsumeIterator will read all remaining data into an
// array and close the iterator
func ConsumeIterator(itr weave.Iterator) []weave.Model {
	defer itr.Close()

	var res []weave.Model
	for ; itr.Valid(); itr.Next() {
		res = append(res, weave.Pair(itr.Key(), itr.Value()))
	}
	return res
}

// queryPrefix returns all db entries whose key starts with prefix
func queryPrefix(db weave.ReadOnlyKVStore, prefix []byte) ([]weave.Model, error) {
	itr, err := db.Iterator(prefix, PrefixEnd(prefix))
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return ConsumeIterator(itr), nil
}

// PrefixEnd returns the first key after all keys starting with prefix,
// or nil if there is none.
func PrefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xFF {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
