//nolint
package store

import "github.com/iov-one/tokenescrow/weave"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = weave.ReadOnlyKVStore
type SetDeleter = weave.SetDeleter
type KVStore = weave.KVStore
type Iterator = weave.Iterator
type CacheableKVStore = weave.CacheableKVStore
type KVCacheWrap = weave.KVCacheWrap
type CommitKVStore = weave.CommitKVStore
type CommitID = weave.CommitID
type Model = weave.Model

// Batch can write multiple ops atomically to an underlying KVStore
type Batch interface {
	SetDeleter
	Write() error
}
