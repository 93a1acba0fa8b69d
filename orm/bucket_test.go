package orm

import (
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/tokenescrow/errors"
	"github.com/iov-one/tokenescrow/store"
	"github.com/iov-one/tokenescrow/weave"
	"github.com/iov-one/tokenescrow/weavetest/assert"
)

type note struct {
	Owner []byte `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	Text  string `protobuf:"bytes,2,opt,name=text,proto3" json:"text,omitempty"`
}

func (m *note) Reset()         { *m = note{} }
func (m *note) String() string { return proto.CompactTextString(m) }
func (*note) ProtoMessage()    {}

func (m *note) Validate() error {
	if m.Text == "" {
		return errors.Wrap(errors.ErrEmpty, "text")
	}
	return nil
}

type other struct {
	Value int64 `protobuf:"varint,1,opt,name=value,proto3" json:"value,omitempty"`
}

func (m *other) Reset()         { *m = other{} }
func (m *other) String() string { return proto.CompactTextString(m) }
func (*other) ProtoMessage()    {}
func (*other) Validate() error  { return nil }

func byOwner(m Model) ([]byte, error) {
	n, ok := m.(*note)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return n.Owner, nil
}

func TestBucketLifecycle(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("notes", &note{})

	key := []byte("first")
	ok, err := b.Has(db, key)
	assert.Nil(t, err)
	assert.Equal(t, false, ok)

	var got note
	assert.IsErr(t, errors.ErrNotFound, b.One(db, key, &got))
	assert.IsErr(t, errors.ErrNotFound, b.Delete(db, key))

	assert.Nil(t, b.Create(db, key, &note{Owner: []byte("alice"), Text: "hello"}))
	assert.IsErr(t, errors.ErrDuplicate, b.Create(db, key, &note{Text: "again"}))

	assert.Nil(t, b.One(db, key, &got))
	assert.Equal(t, "hello", got.Text)

	assert.Nil(t, b.Put(db, key, &note{Text: "updated"}))
	assert.Nil(t, b.One(db, key, &got))
	assert.Equal(t, "updated", got.Text)

	assert.Nil(t, b.Delete(db, key))
	ok, err = b.Has(db, key)
	assert.Nil(t, err)
	assert.Equal(t, false, ok)
}

func TestBucketRejects(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("notes", &note{})

	assert.IsErr(t, errors.ErrEmpty, b.Put(db, []byte("k"), &note{}))
	assert.IsErr(t, errors.ErrType, b.Put(db, []byte("k"), &other{Value: 1}))

	assert.Nil(t, b.Put(db, []byte("k"), &note{Text: "x"}))
	assert.IsErr(t, errors.ErrType, b.One(db, []byte("k"), &other{}))

	assert.Panics(t, func() { NewBucket("Bad-Name", &note{}) })
}

func TestBucketIndex(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("notes", &note{}).WithIndex("owner", byOwner)

	assert.Nil(t, b.Create(db, []byte("a"), &note{Owner: []byte("alice"), Text: "1"}))
	assert.Nil(t, b.Create(db, []byte("b"), &note{Owner: []byte("alice"), Text: "2"}))
	assert.Nil(t, b.Create(db, []byte("c"), &note{Owner: []byte("bob"), Text: "3"}))
	// prefix of another owner must not match
	assert.Nil(t, b.Create(db, []byte("d"), &note{Owner: []byte("alic"), Text: "4"}))

	keys, err := b.IndexKeys(db, "owner", []byte("alice"))
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{[]byte("a"), []byte("b")}, keys)

	// moving an entity moves the reference
	assert.Nil(t, b.Put(db, []byte("a"), &note{Owner: []byte("bob"), Text: "1"}))
	keys, err = b.IndexKeys(db, "owner", []byte("bob"))
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{[]byte("a"), []byte("c")}, keys)

	assert.Nil(t, b.Delete(db, []byte("b")))
	keys, err = b.IndexKeys(db, "owner", []byte("alice"))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(keys))

	_, err = b.IndexKeys(db, "missing", nil)
	assert.IsErr(t, errors.ErrInput, err)
}

func TestBucketQuery(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("notes", &note{}).WithIndex("owner", byOwner)

	qr := weave.NewQueryRouter()
	b.Register("", qr)

	assert.Nil(t, b.Create(db, []byte("aa"), &note{Owner: []byte("alice"), Text: "1"}))
	assert.Nil(t, b.Create(db, []byte("ab"), &note{Owner: []byte("bob"), Text: "2"}))
	assert.Nil(t, b.Create(db, []byte("b"), &note{Owner: []byte("bob"), Text: "3"}))

	res, err := qr.Handler("/notes").Query(db, weave.KeyQueryMod, []byte("aa"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, b.DBKey([]byte("aa")), res[0].Key)

	res, err = qr.Handler("/notes").Query(db, weave.KeyQueryMod, []byte("zz"))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(res))

	res, err = qr.Handler("/notes").Query(db, weave.PrefixQueryMod, []byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(res))

	res, err = qr.Handler("/notes/owner").Query(db, weave.KeyQueryMod, []byte("bob"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(res))
	var n note
	assert.Nil(t, proto.Unmarshal(res[0].Value, &n))
	assert.Equal(t, "2", n.Text)

	_, err = qr.Handler("/notes").Query(db, "range", nil)
	assert.IsErr(t, errors.ErrInput, err)
}

func TestPrefixEnd(t *testing.T) {
	cases := map[string]struct {
		prefix []byte
		want   []byte
	}{
		"simple":       {prefix: []byte("abc"), want: []byte("abd")},
		"carry":        {prefix: []byte{'a', 0xFF}, want: []byte{'b'}},
		"all max":      {prefix: []byte{0xFF, 0xFF}, want: nil},
		"empty prefix": {prefix: []byte{}, want: nil},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, PrefixEnd(tc.prefix))
		})
	}
}
