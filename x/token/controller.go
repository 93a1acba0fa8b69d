package token

import (
	"math"

	"github.com/iov-one/tokenescrow/errors"
	"github.com/iov-one/tokenescrow/gconf"
	"github.com/iov-one/tokenescrow/orm"
	"github.com/iov-one/tokenescrow/weave"
	"github.com/iov-one/tokenescrow/x"
)

// Controller is the token ledger API other extensions use to move value.
type Controller struct {
	auth     x.Authenticator
	mints    orm.Bucket
	accounts orm.Bucket
	reserves orm.Bucket
}

// NewController returns a controller that authorizes movements out of an
// account with the given authenticator.
func NewController(auth x.Authenticator) Controller {
	return Controller{
		auth:     auth,
		mints:    NewMintBucket(),
		accounts: NewAccountBucket(),
		reserves: NewReserveBucket(),
	}
}

// Mint returns the registered mint of the token type.
func (c Controller) Mint(db weave.ReadOnlyKVStore, ticker string) (*Mint, error) {
	var m Mint
	if err := c.mints.One(db, []byte(ticker), &m); err != nil {
		return nil, errors.Wrapf(err, "mint %s", ticker)
	}
	return &m, nil
}

// Account returns the account of the owner for the token type.
func (c Controller) Account(db weave.ReadOnlyKVStore, owner weave.Address, ticker string) (*Account, error) {
	var acc Account
	if err := c.accounts.One(db, AccountAddress(owner, ticker), &acc); err != nil {
		return nil, errors.Wrapf(err, "%s account of %s", ticker, owner)
	}
	return &acc, nil
}

// HasAccount returns true if the owner has an open account for the token
// type.
func (c Controller) HasAccount(db weave.ReadOnlyKVStore, owner weave.Address, ticker string) (bool, error) {
	return c.accounts.Has(db, AccountAddress(owner, ticker))
}

// Balance returns the amount held by the account of the owner.
func (c Controller) Balance(db weave.ReadOnlyKVStore, owner weave.Address, ticker string) (uint64, error) {
	acc, err := c.Account(db, owner, ticker)
	if err != nil {
		return 0, err
	}
	return acc.Amount, nil
}

// Reserve returns the native balance of the address. An unknown address
// has nothing.
func (c Controller) Reserve(db weave.ReadOnlyKVStore, addr weave.Address) (uint64, error) {
	var r Reserve
	switch err := c.reserves.One(db, addr, &r); {
	case err == nil:
		return r.Amount, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

// AccountDeposit returns the deposit charged for opening an account.
func (c Controller) AccountDeposit(db weave.ReadOnlyKVStore) (uint64, error) {
	var conf Configuration
	switch err := gconf.Load(db, optKey, &conf); {
	case err == nil:
		return conf.AccountDeposit, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

// OpenAccount opens an empty account of the token type for the owner. The
// payer is charged the account deposit. The caller is responsible for
// authorizing the payer.
func (c Controller) OpenAccount(db weave.KVStore, payer, owner weave.Address, ticker string) (*Account, error) {
	return c.openAccount(db, payer, owner, ticker, false)
}

// OpenCustodyAccount opens an empty custody account, such as an escrow
// vault. The context must authenticate the owner, and every later credit
// requires the same authority.
func (c Controller) OpenCustodyAccount(ctx weave.Context, db weave.KVStore, payer, owner weave.Address, ticker string) (*Account, error) {
	if !c.auth.HasAddress(ctx, owner) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "custody account of %s", owner)
	}
	return c.openAccount(db, payer, owner, ticker, true)
}

func (c Controller) openAccount(db weave.KVStore, payer, owner weave.Address, ticker string, custody bool) (*Account, error) {
	if _, err := c.Mint(db, ticker); err != nil {
		return nil, err
	}
	switch ok, err := c.HasAccount(db, owner, ticker); {
	case err != nil:
		return nil, err
	case ok:
		return nil, errors.Wrapf(errors.ErrDuplicate, "%s account of %s", ticker, owner)
	}
	deposit, err := c.AccountDeposit(db)
	if err != nil {
		return nil, err
	}
	if err := c.ChargeDeposit(db, payer, deposit); err != nil {
		return nil, errors.Wrap(err, "account deposit")
	}
	acc := &Account{
		Metadata: &weave.Metadata{Schema: 1},
		Owner:    owner,
		Ticker:   ticker,
		Deposit:  deposit,
		Custody:  custody,
	}
	if err := c.accounts.Create(db, AccountAddress(owner, ticker), acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// TransferChecked moves amount of the token type from the account of one
// owner to the account of another. The context must authenticate the
// source owner and decimals must match the mint precision. A custody
// destination must be authenticated as well.
func (c Controller) TransferChecked(ctx weave.Context, db weave.KVStore, from, to weave.Address, ticker string, amount uint64, decimals uint32) error {
	if !c.auth.HasAddress(ctx, from) {
		return errors.Wrapf(errors.ErrUnauthorized, "transfer from %s", from)
	}
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero transfer")
	}
	if from.Equals(to) {
		return errors.Wrap(errors.ErrInput, "source and destination are the same")
	}
	mint, err := c.Mint(db, ticker)
	if err != nil {
		return err
	}
	if mint.Decimals != decimals {
		return errors.Wrapf(ErrDecimals, "%s has %d decimals, got %d", ticker, mint.Decimals, decimals)
	}

	src, err := c.Account(db, from, ticker)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	dst, err := c.Account(db, to, ticker)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	if dst.Custody && !c.auth.HasAddress(ctx, to) {
		return errors.Wrapf(errors.ErrUnauthorized, "transfer into custody account of %s", to)
	}
	if src.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%d %s available, %d required", src.Amount, ticker, amount)
	}
	if dst.Amount > math.MaxUint64-amount {
		return errors.Wrap(errors.ErrOverflow, "destination balance")
	}
	src.Amount -= amount
	dst.Amount += amount

	if err := c.accounts.Put(db, AccountAddress(from, ticker), src); err != nil {
		return err
	}
	return c.accounts.Put(db, AccountAddress(to, ticker), dst)
}

// CloseAccount deletes an empty account of the owner and refunds its
// deposit to dest. The context must authenticate the owner.
func (c Controller) CloseAccount(ctx weave.Context, db weave.KVStore, owner weave.Address, ticker string, dest weave.Address) error {
	if !c.auth.HasAddress(ctx, owner) {
		return errors.Wrapf(errors.ErrUnauthorized, "close account of %s", owner)
	}
	acc, err := c.Account(db, owner, ticker)
	if err != nil {
		return err
	}
	if acc.Amount != 0 {
		return errors.Wrapf(errors.ErrState, "account holds %d %s", acc.Amount, ticker)
	}
	if err := c.accounts.Delete(db, AccountAddress(owner, ticker)); err != nil {
		return err
	}
	return c.RefundDeposit(db, dest, acc.Deposit)
}

// ChargeDeposit takes amount out of the reserve of the payer.
func (c Controller) ChargeDeposit(db weave.KVStore, payer weave.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	have, err := c.Reserve(db, payer)
	if err != nil {
		return err
	}
	if have < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "reserve of %s holds %d, %d required", payer, have, amount)
	}
	return c.reserves.Put(db, payer, &Reserve{
		Metadata: &weave.Metadata{Schema: 1},
		Amount:   have - amount,
	})
}

// RefundDeposit returns amount to the reserve of dest.
func (c Controller) RefundDeposit(db weave.KVStore, dest weave.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "refund destination")
	}
	have, err := c.Reserve(db, dest)
	if err != nil {
		return err
	}
	if have > math.MaxUint64-amount {
		return errors.Wrap(errors.ErrOverflow, "reserve")
	}
	return c.reserves.Put(db, dest, &Reserve{
		Metadata: &weave.Metadata{Schema: 1},
		Amount:   have + amount,
	})
}

// Issue credits amount of the token type to the owner, opening the account
// without a deposit if needed. It creates value and must only be used when
// loading the genesis.
func (c Controller) Issue(db weave.KVStore, owner weave.Address, ticker string, amount uint64) error {
	if _, err := c.Mint(db, ticker); err != nil {
		return err
	}
	acc, err := c.Account(db, owner, ticker)
	switch {
	case errors.ErrNotFound.Is(err):
		acc = &Account{
			Metadata: &weave.Metadata{Schema: 1},
			Owner:    owner,
			Ticker:   ticker,
		}
	case err != nil:
		return err
	}
	if acc.Amount > math.MaxUint64-amount {
		return errors.Wrap(errors.ErrOverflow, "balance")
	}
	acc.Amount += amount
	return c.accounts.Put(db, AccountAddress(owner, ticker), acc)
}

// RegisterMint stores a new token type.
func (c Controller) RegisterMint(db weave.KVStore, m *Mint) error {
	return c.mints.Create(db, []byte(m.Ticker), m)
}
