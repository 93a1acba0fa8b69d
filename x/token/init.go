package token

import (
	"github.com/iov-one/tokenescrow/errors"
	"github.com/iov-one/tokenescrow/gconf"
	"github.com/iov-one/tokenescrow/weave"
)

const optKey = "token"

// Genesis is the content of the "token" section of the genesis file.
type Genesis struct {
	Mints []struct {
		Ticker   string `json:"ticker"`
		Decimals uint32 `json:"decimals"`
		Name     string `json:"name"`
	} `json:"mints"`
	Reserves []struct {
		Address weave.Address `json:"address"`
		Amount  uint64        `json:"amount"`
	} `json:"reserves"`
	Accounts []struct {
		Owner  weave.Address `json:"owner"`
		Ticker string        `json:"ticker"`
		Amount uint64        `json:"amount"`
	} `json:"accounts"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ weave.Initializer = Initializer{}

// FromGenesis registers the mints, funds the reserves and issues the
// account balances of the genesis file. The "token" configuration is
// optional.
func (Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	switch err := gconf.InitConfig(db, opts, optKey, &Configuration{}); {
	case err == nil, errors.ErrNotFound.Is(err):
	default:
		return errors.Wrap(err, "configuration")
	}

	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return err
	}

	// Issuing does not need an authenticator.
	ctrl := NewController(nil)
	for _, m := range gen.Mints {
		mint := &Mint{
			Metadata: &weave.Metadata{Schema: 1},
			Ticker:   m.Ticker,
			Decimals: m.Decimals,
			Name:     m.Name,
		}
		if err := ctrl.RegisterMint(db, mint); err != nil {
			return errors.Wrapf(err, "mint %s", m.Ticker)
		}
	}
	for _, r := range gen.Reserves {
		if err := ctrl.RefundDeposit(db, r.Address, r.Amount); err != nil {
			return errors.Wrapf(err, "reserve %s", r.Address)
		}
	}
	for _, a := range gen.Accounts {
		if err := a.Owner.Validate(); err != nil {
			return errors.Wrap(err, "account owner")
		}
		if err := ctrl.Issue(db, a.Owner, a.Ticker, a.Amount); err != nil {
			return errors.Wrapf(err, "account %s %s", a.Owner, a.Ticker)
		}
	}
	return nil
}
