/*
Package app links together all the components of the escrow chain: the
token ledger, the escrow extension and signature checks.
*/
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/iov-one/tokenescrow/app"
	"github.com/iov-one/tokenescrow/store/iavl"
	"github.com/iov-one/tokenescrow/weave"
	"github.com/iov-one/tokenescrow/x"
	"github.com/iov-one/tokenescrow/x/escrow"
	"github.com/iov-one/tokenescrow/x/sigs"
	"github.com/iov-one/tokenescrow/x/token"
	"github.com/iov-one/tokenescrow/x/utils"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Authenticator returns the authentication of messages, public key
// signatures only.
func Authenticator() x.Authenticator {
	return sigs.Authenticate{}
}

// Controller returns the token controller. Transfers out of a vault can
// only be authorized by the escrow extension.
func Controller() token.Controller {
	return token.NewController(x.ChainAuth(sigs.Authenticate{}, escrow.Authenticate{}))
}

// Chain returns a chain of decorators, to handle authentication,
// logging, and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx will increment nonce
		// even if the message fails
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching to the token and escrow handlers.
func Router(authFn x.Authenticator, ctrl token.Controller) *app.Router {
	r := app.NewRouter()
	token.RegisterRoutes(r, authFn, ctrl)
	escrow.RegisterRoutes(r, authFn, ctrl)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/mints", "/accounts", "/reserves", "/escrows",
// "/auth" and "/"
func QueryRouter() weave.QueryRouter {
	r := weave.NewQueryRouter()
	r.RegisterAll(
		app.RegisterQuery,
		token.RegisterQuery,
		escrow.RegisterQuery,
		sigs.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack() weave.Handler {
	return Chain().WithHandler(Router(Authenticator(), Controller()))
}

// Initializers returns the genesis loaders of all extensions.
func Initializers() weave.Initializer {
	return app.ChainInitializers(
		token.Initializer{},
		escrow.Initializer{},
	)
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h weave.Handler,
	tx weave.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {

	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(name, kv, QueryRouter(), context.Background()).
		WithInit(Initializers())
	return app.NewBaseApp(store, tx, h, debug), nil
}

// GenerateApp creates the escrow application storing its state under
// the home directory.
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	base, err := Application("escrowd", Stack(), TxDecoder, filepath.Join(home, "escrow.db"), debug)
	if err != nil {
		return nil, err
	}
	base.WithLogger(logger)
	return base, nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (weave.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}

	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, fmt.Errorf("invalid database name: %s", path)
	}

	// Some external calls accidently add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name), nil
}
