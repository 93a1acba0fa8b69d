package store

import "bytes"

// SliceIterator iterates over models in slice order.
type SliceIterator struct {
	models []Model
}

var _ Iterator = (*SliceIterator)(nil)

func NewSliceIterator(models []Model) *SliceIterator {
	return &SliceIterator{models: models}
}

func (s *SliceIterator) Valid() bool {
	return len(s.models) > 0
}

// Next panics if the iterator is not valid.
func (s *SliceIterator) Next() {
	s.head()
	s.models = s.models[1:]
}

func (s *SliceIterator) Key() []byte {
	return s.head().Key
}

func (s *SliceIterator) Value() []byte {
	return s.head().Value
}

func (s *SliceIterator) Close() {
	s.models = nil
}

func (s *SliceIterator) head() Model {
	if len(s.models) == 0 {
		panic("iterator exhausted")
	}
	return s.models[0]
}

// Sources holding the key under a merged iterator cursor.
const (
	fromCache = 1 << iota
	fromBelow
)

// mergedIterator yields the pending writes of a cache wrap merged with the
// iterator of the store below. A pending write wins over the store below
// for the same key and a pending delete hides it.
type mergedIterator struct {
	cached    []entry
	below     Iterator
	ascending bool
}

var _ Iterator = (*mergedIterator)(nil)

func newMergedIterator(cached []entry, below Iterator, ascending bool) *mergedIterator {
	it := &mergedIterator{cached: cached, below: below, ascending: ascending}
	it.skipDeleted()
	return it
}

// cursor reports which sources hold the next key. Zero means the iterator
// is exhausted.
func (it *mergedIterator) cursor() int {
	cacheOK := len(it.cached) > 0
	belowOK := it.below != nil && it.below.Valid()
	switch {
	case cacheOK && belowOK:
		cmp := bytes.Compare(it.cached[0].key, it.below.Key())
		if !it.ascending {
			cmp = -cmp
		}
		switch {
		case cmp < 0:
			return fromCache
		case cmp > 0:
			return fromBelow
		default:
			return fromCache | fromBelow
		}
	case cacheOK:
		return fromCache
	case belowOK:
		return fromBelow
	default:
		return 0
	}
}

func (it *mergedIterator) advance(src int) {
	if src&fromCache != 0 {
		it.cached = it.cached[1:]
	}
	if src&fromBelow != 0 {
		it.below.Next()
	}
}

// skipDeleted moves past pending deletes together with the keys they hide.
func (it *mergedIterator) skipDeleted() {
	for src := it.cursor(); src&fromCache != 0 && it.cached[0].deleted; src = it.cursor() {
		it.advance(src)
	}
}

func (it *mergedIterator) Valid() bool {
	return it.cursor() != 0
}

// Next panics if the iterator is not valid.
func (it *mergedIterator) Next() {
	src := it.cursor()
	if src == 0 {
		panic("iterator exhausted")
	}
	it.advance(src)
	it.skipDeleted()
}

func (it *mergedIterator) Key() []byte {
	switch src := it.cursor(); {
	case src&fromCache != 0:
		return it.cached[0].key
	case src == fromBelow:
		return it.below.Key()
	}
	panic("iterator exhausted")
}

func (it *mergedIterator) Value() []byte {
	switch src := it.cursor(); {
	case src&fromCache != 0:
		return it.cached[0].value
	case src == fromBelow:
		return it.below.Value()
	}
	panic("iterator exhausted")
}

func (it *mergedIterator) Close() {
	if it.below != nil {
		it.below.Close()
	}
	it.cached = nil
}
