package token

import (
	"github.com/iov-one/tokenescrow/errors"
	"github.com/iov-one/tokenescrow/weave"
)

const (
	pathOpenAccountMsg         = "token/open_account"
	pathTransferMsg            = "token/transfer"
	pathUpdateConfigurationMsg = "token/update_configuration"
)

var _ weave.Msg = (*OpenAccountMsg)(nil)

func (OpenAccountMsg) Path() string {
	return pathOpenAccountMsg
}

func (m *OpenAccountMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Payer.Validate(); err != nil {
		return errors.Wrap(err, "payer")
	}
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if !IsTicker(m.Ticker) {
		return errors.Wrapf(errors.ErrInput, "ticker %q", m.Ticker)
	}
	return nil
}

var _ weave.Msg = (*TransferMsg)(nil)

func (TransferMsg) Path() string {
	return pathTransferMsg
}

func (m *TransferMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if !IsTicker(m.Ticker) {
		return errors.Wrapf(errors.ErrInput, "ticker %q", m.Ticker)
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "must be positive")
	}
	if m.Decimals > maxDecimals {
		return errors.Wrapf(ErrDecimals, "at most %d decimals", maxDecimals)
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
