package escrow

import (
	"github.com/iov-one/tokenescrow/errors"
	"github.com/iov-one/tokenescrow/weave"
)

const (
	pathCreateMsg              = "escrow/create"
	pathExchangeMsg            = "escrow/exchange"
	pathUpdateConfigurationMsg = "escrow/update_configuration"
)

var _ weave.Msg = (*CreateMsg)(nil)

func (CreateMsg) Path() string {
	return pathCreateMsg
}

// Validate makes sure that this is sensible
func (m *CreateMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Maker.Validate(); err != nil {
		return errors.Wrap(err, "maker")
	}
	if err := validateTickers(m.OfferedTicker, m.WantedTicker); err != nil {
		return err
	}
	if m.OfferedAmount == 0 {
		return errors.Wrap(errors.ErrAmount, "offered amount must be positive")
	}
	if m.WantedAmount == 0 {
		return errors.Wrap(errors.ErrAmount, "wanted amount must be positive")
	}
	return validateAddresses(map[string]weave.Address{
		"escrow": m.Escrow,
		"vault":  m.Vault,
		"source": m.Source,
	})
}

var _ weave.Msg = (*ExchangeMsg)(nil)

func (ExchangeMsg) Path() string {
	return pathExchangeMsg
}

// Validate makes sure that this is sensible
func (m *ExchangeMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	// the taker offers what the maker wants
	if err := validateTickers(m.ExpectTicker, m.OfferTicker); err != nil {
		return err
	}
	if m.OfferAmount == 0 {
		return errors.Wrap(errors.ErrAmount, "offer amount must be positive")
	}
	if m.ExpectAmount == 0 {
		return errors.Wrap(errors.ErrAmount, "expect amount must be positive")
	}
	err := validateAddresses(map[string]weave.Address{
		"taker":             m.Taker,
		"maker":             m.Maker,
		"escrow":            m.Escrow,
		"vault":             m.Vault,
		"taker_source":      m.TakerSource,
		"taker_destination": m.TakerDestination,
		"maker_destination": m.MakerDestination,
	})
	if err != nil {
		return err
	}
	if m.Taker.Equals(m.Maker) {
		return errors.Wrap(errors.ErrInput, "maker cannot take its own offer")
	}
	return nil
}

var _ weave.Msg = (*UpdateConfigurationMsg)(nil)

func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

func (m *UpdateConfigurationMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	return m.Patch.Validate()
}

func validateAddresses(addrs map[string]weave.Address) error {
	for name, a := range addrs {
		if err := a.Validate(); err != nil {
			return errors.Wrap(err, name)
		}
	}
	return nil
}
