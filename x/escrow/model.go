package escrow

import (
	"github.com/iov-one/tokenescrow/errors"
	"github.com/iov-one/tokenescrow/orm"
	"github.com/iov-one/tokenescrow/weave"
	"github.com/iov-one/tokenescrow/x/token"
)

// State is the lifecycle state of the offer of a (maker, ticker) pair.
type State int

const (
	// Closed is the state of an offer that was never created or that was
	// settled. Both look the same to the store.
	Closed State = iota
	// Open is the state of an offer waiting for a taker.
	Open
)

func (s State) String() string {
	switch s {
	case Open:
		return "open"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Condition returns the condition only this package can authenticate, for
// the offer of the maker for the ticker.
func Condition(maker weave.Address, offeredTicker string) weave.Condition {
	return weave.DeriveCondition("escrow", "offer", maker, []byte(offeredTicker))
}

// Address returns the address the escrow record of the maker for the ticker
// is stored under. It is also the owner of the vault.
func Address(maker weave.Address, offeredTicker string) weave.Address {
	return Condition(maker, offeredTicker).Address()
}

// VaultAddress returns the address of the token account that holds the
// offered tokens of the escrow.
func VaultAddress(escrow weave.Address, offeredTicker string) weave.Address {
	return token.AccountAddress(escrow, offeredTicker)
}

// Validate ensures the Escrow is valid
func (e *Escrow) Validate() error {
	if err := e.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := e.Maker.Validate(); err != nil {
		return errors.Wrap(err, "maker")
	}
	if err := validateTickers(e.OfferedTicker, e.WantedTicker); err != nil {
		return err
	}
	if e.OfferedAmount == 0 {
		return errors.Wrap(errors.ErrAmount, "offered amount must be positive")
	}
	if e.WantedAmount == 0 {
		return errors.Wrap(errors.ErrAmount, "wanted amount must be positive")
	}
	if err := e.Vault.Validate(); err != nil {
		return errors.Wrap(err, "vault")
	}
	return nil
}

func (m *Configuration) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if m.Owner != nil {
		if err := m.Owner.Validate(); err != nil {
			return errors.Wrap(err, "owner")
		}
	}
	return nil
}

func validateTickers(offered, wanted string) error {
	if !token.IsTicker(offered) {
		return errors.Wrapf(errors.ErrInput, "offered ticker %q", offered)
	}
	if !token.IsTicker(wanted) {
		return errors.Wrapf(errors.ErrInput, "wanted ticker %q", wanted)
	}
	if offered == wanted {
		return errors.Wrap(errors.ErrInput, "offered and wanted tokens must differ")
	}
	return nil
}

// NewBucket returns the bucket of escrow records, keyed by the escrow
// address and indexed by maker.
func NewBucket() orm.Bucket {
	return orm.NewBucket("escrow", &Escrow{}).
		WithIndex("maker", idxMaker)
}

func idxMaker(m orm.Model) ([]byte, error) {
	e, ok := m.(*Escrow)
	if !ok {
		return nil, errors.Wrapf(errors.ErrHuman, "can only index escrow, got %T", m)
	}
	return e.Maker, nil
}

// Lookup returns the state of the offer of the maker for the ticker,
// together with the record when it is open.
func Lookup(db weave.ReadOnlyKVStore, maker weave.Address, offeredTicker string) (State, *Escrow, error) {
	var e Escrow
	switch err := NewBucket().One(db, Address(maker, offeredTicker), &e); {
	case err == nil:
		return Open, &e, nil
	case errors.ErrNotFound.Is(err):
		return Closed, nil, nil
	default:
		return Closed, nil, err
	}
}
