package token

import (
	"regexp"

	"github.com/iov-one/tokenescrow/errors"
	"github.com/iov-one/tokenescrow/orm"
	"github.com/iov-one/tokenescrow/weave"
)

const (
	// maxDecimals keeps 10^decimals within an uint64.
	maxDecimals = 18
	maxNameLen  = 64
)

// IsTicker returns true if the given string is a valid token ticker.
var IsTicker = regexp.MustCompile(`^[A-Z][A-Z0-9]{2,8}$`).MatchString

// AccountAddress returns the address the account of the given owner for
// the given token type is stored under.
func AccountAddress(owner weave.Address, ticker string) weave.Address {
	return AccountCondition(owner, ticker).Address()
}

// AccountCondition is the condition an account address is the hash of.
func AccountCondition(owner weave.Address, ticker string) weave.Condition {
	return weave.DeriveCondition("token", "account", owner, []byte(ticker))
}

func (m *Mint) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if !IsTicker(m.Ticker) {
		return errors.Wrapf(errors.ErrInput, "ticker %q", m.Ticker)
	}
	if m.Decimals > maxDecimals {
		return errors.Wrapf(ErrDecimals, "at most %d decimals", maxDecimals)
	}
	if len(m.Name) > maxNameLen {
		return errors.Wrap(errors.ErrInput, "name too long")
	}
	return nil
}

func (m *Account) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if !IsTicker(m.Ticker) {
		return errors.Wrapf(errors.ErrInput, "ticker %q", m.Ticker)
	}
	return nil
}

func (m *Reserve) Validate() error {
	return m.Metadata.Validate()
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

// NewMintBucket returns a bucket of mints, keyed by ticker.
func NewMintBucket() orm.Bucket {
	return orm.NewBucket("mint", &Mint{})
}

// NewAccountBucket returns a bucket of accounts, keyed by the account
// address and indexed by owner.
func NewAccountBucket() orm.Bucket {
	return orm.NewBucket("account", &Account{}).
		WithIndex("owner", accountOwner)
}

// NewReserveBucket returns a bucket of reserves, keyed by owner address.
func NewReserveBucket() orm.Bucket {
	return orm.NewBucket("reserve", &Reserve{})
}

func accountOwner(m orm.Model) ([]byte, error) {
	acc, ok := m.(*Account)
	if !ok {
		return nil, errors.Wrapf(errors.ErrHuman, "can only index accounts, got %T", m)
	}
	return acc.Owner, nil
}
