package app

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/tokenescrow/errors"
	"github.com/iov-one/tokenescrow/store/iavl"
	"github.com/iov-one/tokenescrow/weave"
	"github.com/iov-one/tokenescrow/weavetest"
	"github.com/iov-one/tokenescrow/weavetest/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

// kvInit stores every string under its genesis key.
type kvInit struct {
	key string
}

func (i kvInit) FromGenesis(opts weave.Options, kv weave.KVStore) error {
	var value string
	if err := opts.ReadOptions(i.key, &value); err != nil {
		return err
	}
	if value == "" {
		return nil
	}
	return kv.Set([]byte(i.key), []byte(value))
}

func newTestApp(t testing.TB) *StoreApp {
	t.Helper()
	qr := weave.NewQueryRouter()
	RegisterQuery(qr)
	return NewStoreApp("test", iavl.MockCommitStore(), qr, context.Background()).
		WithInit(ChainInitializers(kvInit{key: "alpha"}, kvInit{key: "beta"}))
}

func TestStoreAppGenesis(t *testing.T) {
	s := newTestApp(t)
	assert.Equal(t, "", s.GetChainID())

	genesis, err := json.Marshal(map[string]string{"alpha": "one", "beta": "two"})
	require.NoError(t, err)
	s.InitChain(abci.RequestInitChain{ChainId: "test-chain", AppStateBytes: genesis})
	assert.Equal(t, "test-chain", s.GetChainID())
	assert.Equal(t, "test-chain", weave.GetChainID(s.baseContext))

	// genesis can only be loaded once
	assert.Panics(t, func() {
		s.InitChain(abci.RequestInitChain{ChainId: "test-chain", AppStateBytes: genesis})
	})

	s.Commit()

	cases := map[string]struct {
		path     string
		data     []byte
		wantErr  bool
		wantKeys []string
		wantVals []string
	}{
		"raw key": {
			path:     "/",
			data:     []byte("alpha"),
			wantKeys: []string{"alpha"},
			wantVals: []string{"one"},
		},
		"missing key": {
			path: "/",
			data: []byte("gamma"),
		},
		"prefix": {
			path:     "/?prefix",
			data:     []byte("b"),
			wantKeys: []string{"beta"},
			wantVals: []string{"two"},
		},
		"unknown modifier": {
			path:    "/?range",
			data:    []byte("a"),
			wantErr: true,
		},
		"unknown path": {
			path:    "/escrows",
			data:    []byte("a"),
			wantErr: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			res := s.Query(abci.RequestQuery{Path: tc.path, Data: tc.data})
			if tc.wantErr {
				assert.Equal(t, true, res.Code != errors.SuccessABCICode)
				return
			}
			require.Equal(t, uint32(errors.SuccessABCICode), res.Code, res.Log)
			assert.Equal(t, int64(1), res.Height)

			var keys, vals ResultSet
			require.NoError(t, proto.Unmarshal(res.Key, &keys))
			require.NoError(t, proto.Unmarshal(res.Value, &vals))
			models, err := JoinResults(&keys, &vals)
			require.NoError(t, err)
			require.Len(t, models, len(tc.wantKeys))
			for i, m := range models {
				assert.Equal(t, tc.wantKeys[i], string(m.Key))
				assert.Equal(t, tc.wantVals[i], string(m.Value))
			}
		})
	}
}

func TestStoreAppRejectsBadGenesis(t *testing.T) {
	cases := map[string][]byte{
		"empty":    nil,
		"not json": []byte("{alpha"),
	}
	for testName, state := range cases {
		t.Run(testName, func(t *testing.T) {
			s := newTestApp(t)
			assert.Panics(t, func() {
				s.InitChain(abci.RequestInitChain{ChainId: "test-chain", AppStateBytes: state})
			})
			assert.Equal(t, "", s.GetChainID())
		})
	}
}

func TestStoreAppBlocks(t *testing.T) {
	s := newTestApp(t)
	s.InitChain(abci.RequestInitChain{ChainId: "test-chain", AppStateBytes: []byte(`{}`)})

	now := time.Now().UTC().Truncate(time.Second)
	s.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1, Time: now}})

	h, ok := weave.GetHeight(s.BlockContext())
	require.True(t, ok)
	assert.Equal(t, int64(1), h)
	bt, ok := weave.BlockTime(s.BlockContext())
	require.True(t, ok)
	assert.Equal(t, now, bt)

	// writes are only visible to queries after commit
	require.NoError(t, s.DeliverStore().Set([]byte("alpha"), []byte("late")))
	res := s.Query(abci.RequestQuery{Path: "/", Data: []byte("alpha")})
	var vals ResultSet
	require.NoError(t, proto.Unmarshal(res.Value, &vals))
	assert.Equal(t, 0, len(vals.Results))

	s.EndBlock(abci.RequestEndBlock{})
	commit := s.Commit()
	assert.Equal(t, true, len(commit.Data) > 0)

	info := s.Info(abci.RequestInfo{})
	assert.Equal(t, "test", info.Data)
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.Equal(t, commit.Data, info.LastBlockAppHash)

	res = s.Query(abci.RequestQuery{Path: "/", Data: []byte("alpha")})
	require.NoError(t, proto.Unmarshal(res.Value, &vals))
	require.Len(t, vals.Results, 1)
	assert.Equal(t, "late", string(vals.Results[0]))
}

func TestStoreAppRestart(t *testing.T) {
	kv, cleanup := weavetest.CommitKVStore(t)
	defer cleanup()

	qr := weave.NewQueryRouter()
	RegisterQuery(qr)
	first := NewStoreApp("test", kv, qr, context.Background()).WithInit(kvInit{key: "alpha"})
	first.InitChain(abci.RequestInitChain{ChainId: "test-chain", AppStateBytes: []byte(`{"alpha":"kept"}`)})
	first.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1, Time: time.Now()}})
	commit := first.Commit()

	// a restarted node picks up the chain id and the last height
	second := NewStoreApp("test", kv, qr, context.Background())
	assert.Equal(t, "test-chain", second.GetChainID())
	h, ok := weave.GetHeight(second.BlockContext())
	require.True(t, ok)
	assert.Equal(t, int64(1), h)
	assert.Equal(t, commit.Data, second.Info(abci.RequestInfo{}).LastBlockAppHash)

	v, err := second.DeliverStore().Get([]byte("alpha"))
	require.NoError(t, err)
	assert.Equal(t, "kept", string(v))

	// the genesis cannot be loaded again
	assert.Panics(t, func() {
		second.WithInit(kvInit{key: "alpha"}).InitChain(abci.RequestInitChain{ChainId: "test-chain", AppStateBytes: []byte(`{}`)})
	})
}

func TestBaseApp(t *testing.T) {
	s := newTestApp(t)
	s.InitChain(abci.RequestInitChain{ChainId: "test-chain", AppStateBytes: []byte(`{}`)})
	s.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1, Time: time.Now()}})

	h := &weavetest.WriteHandler{Key: []byte("written"), Value: []byte("yes")}
	r := NewRouter()
	r.Handle("test/write", h)

	decoder := func(bz []byte) (weave.Tx, error) {
		switch string(bz) {
		case "write":
			return &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/write"}}, nil
		case "panic":
			panic("cannot decode")
		default:
			return nil, errors.Wrap(errors.ErrInput, "unknown tx")
		}
	}
	b := NewBaseApp(s, decoder, ChainDecorators().WithHandler(r), false)

	check := b.CheckTx([]byte("write"))
	require.Equal(t, uint32(errors.SuccessABCICode), check.Code, check.Log)
	deliver := b.DeliverTx([]byte("write"))
	require.Equal(t, uint32(errors.SuccessABCICode), deliver.Code, deliver.Log)

	v, err := b.DeliverStore().Get([]byte("written"))
	require.NoError(t, err)
	assert.Equal(t, "yes", string(v))

	bad := b.DeliverTx([]byte("other"))
	assert.Equal(t, errors.ErrInput.ABCICode(), bad.Code)

	// decoder panics are recovered and redacted
	pan := b.CheckTx([]byte("panic"))
	assert.Equal(t, errors.ErrPanic.ABCICode(), pan.Code)
}
