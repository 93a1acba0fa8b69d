package token

import (
	"github.com/iov-one/tokenescrow/errors"
	"github.com/iov-one/tokenescrow/gconf"
	"github.com/iov-one/tokenescrow/weave"
	"github.com/iov-one/tokenescrow/x"
)

const (
	openAccountCost int64 = 100
	transferCost    int64 = 100
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r weave.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(pathOpenAccountMsg, OpenAccountHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathTransferMsg, TransferHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathUpdateConfigurationMsg, gconf.NewUpdateConfigurationHandler(optKey, &Configuration{}, auth))
}

// RegisterQuery exposes mints, accounts and reserves.
func RegisterQuery(qr weave.QueryRouter) {
	NewMintBucket().Register("mints", qr)
	NewAccountBucket().Register("accounts", qr)
	NewReserveBucket().Register("reserves", qr)
}

// OpenAccountHandler opens an account paid by the signing payer. The owner
// must sign as well, so nobody can open an account for an address it does
// not control.
type OpenAccountHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ weave.Handler = OpenAccountHandler{}

func (h OpenAccountHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: openAccountCost}, nil
}

func (h OpenAccountHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.ctrl.OpenAccount(db, msg.Payer, msg.Owner, msg.Ticker); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Data: AccountAddress(msg.Owner, msg.Ticker)}, nil
}

func (h OpenAccountHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*OpenAccountMsg, error) {
	var msg OpenAccountMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Payer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "payer signature missing")
	}
	if !h.auth.HasAddress(ctx, msg.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	return &msg, nil
}

// TransferHandler moves tokens between two accounts.
type TransferHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ weave.Handler = TransferHandler{}

func (h TransferHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: transferCost}, nil
}

func (h TransferHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	err = h.ctrl.TransferChecked(ctx, db, msg.Source, msg.Destination, msg.Ticker, msg.Amount, msg.Decimals)
	if err != nil {
		return nil, err
	}
	return &weave.DeliverResult{}, nil
}

func (h TransferHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*TransferMsg, error) {
	var msg TransferMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "source signature missing")
	}
	return &msg, nil
}
