package store

import (
	"bytes"

	"github.com/google/btree"
)

// treeDegree is the btree branching factor. Cache wraps live for a single
// transaction or block, so they stay small.
const treeDegree = 2

// entry is a write recorded by a cache wrap. A deleted entry hides the key
// of the store below.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

func (e entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(entry).key) < 0
}

// BTreeCacheable gives a KVStore a CacheWrap method.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

// CacheWrap returns a cache wrap that writes to the wrapped store.
func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, NewNonAtomicBatch(b.KVStore), nil)
}

// MemStore returns an in-memory store without persistence. Data lives in
// the cache wrap only, writing it is a noop.
func MemStore() CacheableKVStore {
	return BTreeCacheable{EmptyKVStore{}}.CacheWrap()
}

// BTreeCacheWrap keeps pending writes in a btree. Reads see the pending
// writes first and fall back to the store below. Nothing reaches the store
// below until Write.
type BTreeCacheWrap struct {
	tree  *btree.BTree
	free  *btree.FreeList
	back  ReadOnlyKVStore
	batch Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap reads through to back and writes to batch on Write.
// Nested wraps may share free to recycle btree nodes, nil allocates a new
// list.
func NewBTreeCacheWrap(back ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(btree.DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		tree:  btree.NewWithFreeList(treeDegree, free),
		free:  free,
		back:  back,
		batch: batch,
	}
}

// CacheWrap stacks another cache wrap on top of this one.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, NewNonAtomicBatch(b), b.free)
}

// Write flushes pending writes to the store below and empties the wrap.
func (b BTreeCacheWrap) Write() error {
	err := b.batch.Write()
	b.Discard()
	return err
}

// Discard drops all pending writes.
func (b BTreeCacheWrap) Discard() {
	for b.tree.DeleteMin() != nil {
	}
	if d, ok := b.batch.(discarder); ok {
		d.discard()
	}
}

func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.tree.ReplaceOrInsert(entry{key: key, value: value})
	return b.batch.Set(key, value)
}

func (b BTreeCacheWrap) Delete(key []byte) error {
	b.tree.ReplaceOrInsert(entry{key: key, deleted: true})
	return b.batch.Delete(key)
}

// pending returns the write recorded for key, if any.
func (b BTreeCacheWrap) pending(key []byte) (entry, bool) {
	item := b.tree.Get(entry{key: key})
	if item == nil {
		return entry{}, false
	}
	return item.(entry), true
}

func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	if e, ok := b.pending(key); ok {
		if e.deleted {
			return nil, nil
		}
		return e.value, nil
	}
	return b.back.Get(key)
}

func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	if e, ok := b.pending(key); ok {
		return !e.deleted, nil
	}
	return b.back.Has(key)
}

// Iterator walks [start, end) in ascending order, merging pending writes
// with the store below.
func (b BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	below, err := b.back.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergedIterator(b.between(start, end), below, true), nil
}

// ReverseIterator walks [start, end) in descending order, merging pending
// writes with the store below.
func (b BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	below, err := b.back.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	entries := b.between(start, end)
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return newMergedIterator(entries, below, false), nil
}

// between returns the pending writes with a key in [start, end), ascending.
// A nil bound is open.
func (b BTreeCacheWrap) between(start, end []byte) []entry {
	var res []entry
	collect := func(item btree.Item) bool {
		res = append(res, item.(entry))
		return true
	}
	from, to := entry{key: start}, entry{key: end}
	switch {
	case start == nil && end == nil:
		b.tree.Ascend(collect)
	case start == nil:
		b.tree.AscendLessThan(to, collect)
	case end == nil:
		b.tree.AscendGreaterOrEqual(from, collect)
	default:
		b.tree.AscendRange(from, to, collect)
	}
	return res
}
