package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/tokenescrow/errors"
	"github.com/iov-one/tokenescrow/weave"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp implements the state related part of abci.Application: genesis,
// block boundaries, commits and queries. BaseApp embeds it and adds
// transaction processing.
//
// Info, InitChain, BeginBlock, EndBlock and Commit have no way to report a
// failure over ABCI. A failure there means the node state is broken, so
// they panic.
type StoreApp struct {
	name        string
	logger      log.Logger
	store       *commitStore
	initializer weave.Initializer
	queryRouter weave.QueryRouter
	chainID     string

	// baseContext lives as long as the application and carries the
	// chain id and logger. blockContext extends it with the height and
	// time of the block being processed.
	baseContext  weave.Context
	blockContext weave.Context
}

// NewStoreApp loads the latest committed version of kv. It panics if the
// store cannot be read.
func NewStoreApp(name string, kv weave.CommitKVStore, qr weave.QueryRouter, ctx weave.Context) *StoreApp {
	cs, err := newCommitStore(kv)
	if err != nil {
		panic(err)
	}
	s := &StoreApp{
		name:        name,
		store:       cs,
		queryRouter: qr,
		baseContext: ctx,
	}
	s.WithLogger(log.NewNopLogger())

	if s.chainID, err = loadChainID(s.DeliverStore()); err != nil {
		panic(err)
	}
	if s.chainID != "" {
		s.baseContext = weave.WithChainID(s.baseContext, s.chainID)
	}

	last, err := cs.latest()
	if err != nil {
		panic(err)
	}
	s.blockContext = weave.WithHeight(s.baseContext, last.Version)
	return s
}

// WithInit sets the genesis initializer.
func (s *StoreApp) WithInit(init weave.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithLogger sets the application logger. Every context derived by the
// application carries it.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger
	s.baseContext = weave.WithLogger(s.baseContext, logger)
	return s
}

func (s *StoreApp) Logger() log.Logger { return s.logger }

// GetChainID returns an empty string until the genesis is loaded.
func (s *StoreApp) GetChainID() string { return s.chainID }

// BlockContext returns the context of the block being processed.
func (s *StoreApp) BlockContext() weave.Context { return s.blockContext }

// DeliverStore is where the transactions of the current block write.
func (s *StoreApp) DeliverStore() weave.CacheableKVStore { return s.store.deliver }

// CheckStore is where mempool validation writes.
func (s *StoreApp) CheckStore() weave.CacheableKVStore { return s.store.check }

// loadGenesis runs the initializer on the genesis app_state. It is called
// once in the lifetime of a chain.
func (s *StoreApp) loadGenesis(chainID string, appState []byte) error {
	switch {
	case s.chainID != "":
		return errors.Wrapf(errors.ErrState, "genesis already loaded for %q", s.chainID)
	case s.initializer == nil:
		return errors.Wrap(errors.ErrHuman, "no initializer")
	case len(appState) == 0:
		return errors.Wrap(errors.ErrEmpty, "app_state missing in genesis")
	}

	var opts weave.Options
	if err := json.Unmarshal(appState, &opts); err != nil {
		return errors.Wrapf(errors.ErrInput, "app_state: %s", err)
	}
	if err := storeChainID(s.DeliverStore(), chainID); err != nil {
		return errors.Wrap(err, "chain id")
	}
	s.chainID = chainID
	s.baseContext = weave.WithChainID(s.baseContext, chainID)
	return s.initializer.FromGenesis(opts, s.DeliverStore())
}

// Info returns the last committed height and app hash.
func (s *StoreApp) Info(abci.RequestInfo) abci.ResponseInfo {
	last, err := s.store.latest()
	if err != nil {
		panic(err)
	}
	s.logger.Info("Info synced", "height", last.Version, "hash", fmt.Sprintf("%X", last.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		LastBlockHeight:  last.Version,
		LastBlockAppHash: last.Hash,
	}
}

func (s *StoreApp) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "not supported"}
}

// Query reads the last committed state. The request path selects a query
// handler and may end with a ?modifier, for example "/escrows?prefix".
// Key and Value of the response are serialized ResultSets of equal length.
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	path, mod := req.Path, ""
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path, mod = path[:i], path[i+1:]
	}
	h := s.queryRouter.Handler(path)
	if h == nil {
		return queryError(errors.Wrapf(errors.ErrNotFound, "query path %q", req.Path))
	}

	last, err := s.store.latest()
	if err != nil {
		return queryError(err)
	}
	models, err := h.Query(s.store.snapshot(), mod, req.Data)
	if err != nil {
		return queryError(err)
	}

	res := abci.ResponseQuery{Height: last.Version}
	if res.Key, err = proto.Marshal(ResultsFromKeys(models)); err != nil {
		return queryError(errors.Wrap(errors.ErrModel, err.Error()))
	}
	if res.Value, err = proto.Marshal(ResultsFromValues(models)); err != nil {
		return queryError(errors.Wrap(errors.ErrModel, err.Error()))
	}
	return res
}

func queryError(err error) abci.ResponseQuery {
	code, msg := errors.ABCIInfo(err, false)
	return abci.ResponseQuery{Code: code, Log: msg}
}

// Commit persists the block and returns the new app hash.
func (s *StoreApp) Commit() abci.ResponseCommit {
	id, err := s.store.commit()
	if err != nil {
		panic(err)
	}
	s.logger.Debug("Commit synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}

// InitChain loads the genesis app_state.
func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := s.loadGenesis(req.ChainId, req.AppStateBytes); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

// BeginBlock sets the height and time of the block context.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := weave.WithHeight(s.baseContext, req.Header.GetHeight())
	s.blockContext = weave.WithBlockTime(ctx, req.Header.GetTime())
	return abci.ResponseBeginBlock{}
}

func (s *StoreApp) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}
