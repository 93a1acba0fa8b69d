package app

import (
	"github.com/iov-one/tokenescrow/errors"
	"github.com/iov-one/tokenescrow/weave"
)

// commitStore keeps two cache wraps over the committed state. Transactions
// of the current block are written to deliver, mempool validation runs on
// check. Both are replaced on every commit.
//
// ABCI calls the block methods sequentially, so there is no locking.
type commitStore struct {
	committed weave.CommitKVStore
	deliver   weave.KVCacheWrap
	check     weave.KVCacheWrap
}

func newCommitStore(kv weave.CommitKVStore) (*commitStore, error) {
	if err := kv.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	cs := &commitStore{committed: kv}
	cs.reset()
	return cs, nil
}

func (cs *commitStore) reset() {
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
}

// latest returns the height and hash of the last commit.
func (cs *commitStore) latest() (weave.CommitID, error) {
	return cs.committed.LatestVersion()
}

// commit persists everything written to deliver. Pending check writes are
// dropped.
func (cs *commitStore) commit() (weave.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return weave.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	cs.check.Discard()
	id, err := cs.committed.Commit()
	if err != nil {
		return id, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	cs.reset()
	return id, nil
}

// snapshot is a read only view of the last committed state.
func (cs *commitStore) snapshot() weave.ReadOnlyKVStore {
	return cs.committed.CacheWrap()
}

// The chain id is written once by InitChain and read on every start. The
// _wv: prefix is reserved for framework data.
var chainIDKey = []byte("_wv:chainID")

func loadChainID(kv weave.ReadOnlyKVStore) (string, error) {
	raw, err := kv.Get(chainIDKey)
	if err != nil {
		return "", errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return string(raw), nil
}

func storeChainID(kv weave.KVStore, chainID string) error {
	if !weave.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}
	switch has, err := kv.Has(chainIDKey); {
	case err != nil:
		return errors.Wrap(errors.ErrDatabase, err.Error())
	case has:
		return errors.Wrap(errors.ErrState, "chain id already set")
	}
	return kv.Set(chainIDKey, []byte(chainID))
}
