package orm

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/tokenescrow/errors"
	"github.com/iov-one/tokenescrow/weave"
)

var (
	isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString
)

// Bucket is a prefixed subspace of the DB that holds models of a single
// type, together with its secondary indexes.
type Bucket struct {
	name    string
	prefix  []byte
	model   reflect.Type
	indexes map[string]index
}

var _ weave.QueryHandler = Bucket{}

// NewBucket creates a bucket to store data. All stored models must be of
// the same type as m.
func NewBucket(name string, m Model) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}
	tp := reflect.TypeOf(m)
	if tp.Kind() != reflect.Ptr {
		panic(fmt.Sprintf("bucket model must be a pointer, got %T", m))
	}

	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		model:  tp.Elem(),
	}
}

// Name returns the name of the bucket.
func (b Bucket) Name() string {
	return b.name
}

// WithIndex returns a copy of this bucket with given index,
// panics if it an index with that name is already registered.
//
// Designed to be chained.
func (b Bucket) WithIndex(name string, indexer Indexer) Bucket {
	if _, ok := b.indexes[name]; ok {
		panic(fmt.Sprintf("Index %s registered twice", name))
	}
	indexes := make(map[string]index, len(b.indexes)+1)
	for n, i := range b.indexes {
		indexes[n] = i
	}
	indexes[name] = newIndex(b, name, indexer)
	b.indexes = indexes
	return b
}

// Register registers this Bucket and all indexes.
// You can define a name here for queries, which is
// different than the bucket name used to prefix the data
func (b Bucket) Register(name string, r weave.QueryRouter) {
	if name == "" {
		name = b.name
	}
	root := "/" + name
	r.Register(root, b)
	for name, idx := range b.indexes {
		r.Register(root+"/"+name, idx)
	}
}

// Query handles queries from the QueryRouter
func (b Bucket) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	switch mod {
	case weave.KeyQueryMod:
		key := b.DBKey(data)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		// return nothing on miss
		if value == nil {
			return nil, nil
		}
		return []weave.Model{weave.Pair(key, value)}, nil
	case weave.PrefixQueryMod:
		return queryPrefix(db, b.DBKey(data))
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}

// DBKey is the full key we store in the db, including prefix
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// Has returns true if an entity is stored under the given key.
func (b Bucket) Has(db weave.ReadOnlyKVStore, key []byte) (bool, error) {
	ok, err := db.Has(b.DBKey(key))
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return ok, nil
}

// One loads the entity stored under the given key into dest.
// This method returns ErrNotFound if the entity does not exist and
// ErrType if dest cannot hold the stored entity.
func (b Bucket) One(db weave.ReadOnlyKVStore, key []byte, dest Model) error {
	if err := b.checkType(dest); err != nil {
		return err
	}
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	if err := proto.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot unmarshal %s: %s", b.name, err)
	}
	return nil
}

// Create saves given model under the key. It fails with ErrDuplicate if
// an entity with that key is already stored.
func (b Bucket) Create(db weave.KVStore, key []byte, m Model) error {
	switch ok, err := b.Has(db, key); {
	case err != nil:
		return err
	case ok:
		return errors.Wrapf(errors.ErrDuplicate, "%s %X", b.name, key)
	}
	return b.Put(db, key, m)
}

// Put saves given model in the database, overwriting any previous value.
func (b Bucket) Put(db weave.KVStore, key []byte, m Model) error {
	if err := b.checkType(m); err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := proto.Marshal(m)
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot marshal %s: %s", b.name, err)
	}
	if err := b.updateIndexes(db, key, m); err != nil {
		return err
	}
	if err := db.Set(b.DBKey(key), raw); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Delete removes an entity with given primary key from the database.
// It returns ErrNotFound if an entity with given key does not exist.
func (b Bucket) Delete(db weave.KVStore, key []byte) error {
	switch ok, err := b.Has(db, key); {
	case err != nil:
		return err
	case !ok:
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	if err := b.updateIndexes(db, key, nil); err != nil {
		return err
	}
	if err := db.Delete(b.DBKey(key)); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// IndexKeys returns the primary keys of all entities the named index
// maps the value to.
func (b Bucket) IndexKeys(db weave.ReadOnlyKVStore, name string, value []byte) ([][]byte, error) {
	idx, ok := b.indexes[name]
	if !ok {
		return nil, errors.Wrapf(errors.ErrInput, "no index %q in %s", name, b.name)
	}
	return idx.keys(db, value)
}

func (b Bucket) updateIndexes(db weave.KVStore, key []byte, next Model) error {
	if len(b.indexes) == 0 {
		return nil
	}
	var prev Model
	switch ok, err := b.Has(db, key); {
	case err != nil:
		return err
	case ok:
		prev = b.newModel()
		if err := b.One(db, key, prev); err != nil {
			return err
		}
	}
	for _, idx := range b.indexes {
		if err := idx.update(db, key, prev, next); err != nil {
			return err
		}
	}
	return nil
}

func (b Bucket) newModel() Model {
	return reflect.New(b.model).Interface().(Model)
}

func (b Bucket) checkType(m Model) error {
	if tp := reflect.TypeOf(m); tp.Kind() != reflect.Ptr || tp.Elem() != b.model {
		return errors.Wrapf(errors.ErrType, "%s bucket cannot hold %T", b.name, m)
	}
	return nil
}
