package escrow

import (
	"github.com/tendermint/tendermint/libs/common"

	"github.com/iov-one/tokenescrow/errors"
	"github.com/iov-one/tokenescrow/gconf"
	"github.com/iov-one/tokenescrow/orm"
	"github.com/iov-one/tokenescrow/weave"
	"github.com/iov-one/tokenescrow/x"
	"github.com/iov-one/tokenescrow/x/token"
)

const (
	createEscrowCost int64 = 300
	exchangeCost     int64 = 300
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r weave.Registry, auth x.Authenticator, ctrl token.Controller) {
	bucket := NewBucket()
	r.Handle(pathCreateMsg, CreateEscrowHandler{auth: auth, bucket: bucket, ctrl: ctrl})
	r.Handle(pathExchangeMsg, ExchangeHandler{auth: auth, bucket: bucket, ctrl: ctrl})
	r.Handle(pathUpdateConfigurationMsg, gconf.NewUpdateConfigurationHandler(optKey, &Configuration{}, auth))
}

// RegisterQuery will register this bucket as "/escrows"
func RegisterQuery(qr weave.QueryRouter) {
	NewBucket().Register("escrows", qr)
}

// CreateEscrowHandler locks the offered tokens of a maker in a vault and
// records the terms of the offer.
type CreateEscrowHandler struct {
	auth   x.Authenticator
	bucket orm.Bucket
	ctrl   token.Controller
}

var _ weave.Handler = CreateEscrowHandler{}

// Check does all validation without modifying the state.
func (h CreateEscrowHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: createEscrowCost}, nil
}

// Deliver opens the vault, stores the escrow record and moves the offered
// amount into the vault. All storage deposits are paid by the maker.
func (h CreateEscrowHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	deposit, err := recordDeposit(db)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.ChargeDeposit(db, msg.Maker, deposit); err != nil {
		return nil, errors.Wrap(err, "record deposit")
	}
	// The vault only accepts credits made under the escrow authority.
	vctx := withEscrowAuthority(ctx, Condition(msg.Maker, msg.OfferedTicker))
	if _, err := h.ctrl.OpenCustodyAccount(vctx, db, msg.Maker, msg.Escrow, msg.OfferedTicker); err != nil {
		return nil, errors.Wrap(err, "vault")
	}
	if err := openIfMissing(h.ctrl, db, msg.Maker, msg.Maker, msg.WantedTicker); err != nil {
		return nil, errors.Wrap(err, "maker receiving account")
	}

	escrow := &Escrow{
		Metadata:      msg.Metadata.Copy(),
		Maker:         msg.Maker,
		OfferedTicker: msg.OfferedTicker,
		WantedTicker:  msg.WantedTicker,
		OfferedAmount: msg.OfferedAmount,
		WantedAmount:  msg.WantedAmount,
		Vault:         msg.Vault,
		Deposit:       deposit,
	}
	if err := h.bucket.Create(db, msg.Escrow, escrow); err != nil {
		return nil, errors.Wrap(err, "store escrow")
	}

	err = h.ctrl.TransferChecked(vctx, db, msg.Maker, msg.Escrow, msg.OfferedTicker, msg.OfferedAmount, msg.OfferedDecimals)
	if err != nil {
		return nil, errors.Wrap(err, "lock offered tokens")
	}

	weave.GetLogger(ctx).Debug("escrow created",
		"escrow", msg.Escrow,
		"offered", msg.OfferedAmount,
		"ticker", msg.OfferedTicker)

	return &weave.DeliverResult{
		Data: msg.Escrow,
		Tags: []common.KVPair{
			weave.Tag("action", "create_escrow"),
			weave.Tag("escrow", msg.Escrow.String()),
		},
	}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h CreateEscrowHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*CreateMsg, error) {
	var msg CreateMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	// Maker must authorize this
	if !h.auth.HasAddress(ctx, msg.Maker) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "maker signature missing")
	}

	escrowAddr := Address(msg.Maker, msg.OfferedTicker)
	if !escrowAddr.Equals(msg.Escrow) {
		return nil, errors.Wrapf(ErrAddressMismatch, "escrow: want %s, got %s", escrowAddr, msg.Escrow)
	}
	if vault := VaultAddress(escrowAddr, msg.OfferedTicker); !vault.Equals(msg.Vault) {
		return nil, errors.Wrapf(ErrAddressMismatch, "vault: want %s, got %s", vault, msg.Vault)
	}
	if src := token.AccountAddress(msg.Maker, msg.OfferedTicker); !src.Equals(msg.Source) {
		return nil, errors.Wrapf(ErrAddressMismatch, "source: want %s, got %s", src, msg.Source)
	}

	switch ok, err := h.bucket.Has(db, escrowAddr); {
	case err != nil:
		return nil, err
	case ok:
		return nil, errors.Wrapf(errors.ErrDuplicate, "open %s offer of %s", msg.OfferedTicker, msg.Maker)
	}

	if _, err := h.ctrl.Mint(db, msg.WantedTicker); err != nil {
		return nil, errors.Wrap(err, "wanted token")
	}
	offered, err := h.ctrl.Mint(db, msg.OfferedTicker)
	if err != nil {
		return nil, errors.Wrap(err, "offered token")
	}
	if offered.Decimals != msg.OfferedDecimals {
		return nil, errors.Wrapf(token.ErrDecimals, "%s has %d decimals, got %d", offered.Ticker, offered.Decimals, msg.OfferedDecimals)
	}

	balance, err := h.ctrl.Balance(db, msg.Maker, msg.OfferedTicker)
	if err != nil {
		return nil, errors.Wrap(err, "maker source account")
	}
	if balance < msg.OfferedAmount {
		return nil, errors.Wrapf(errors.ErrInsufficientAmount, "maker holds %d %s, offers %d", balance, msg.OfferedTicker, msg.OfferedAmount)
	}
	return &msg, nil
}

// ExchangeHandler settles an offer: the taker pays the wanted amount to the
// maker and receives the content of the vault. The vault and the record are
// closed and their deposits returned to the maker.
type ExchangeHandler struct {
	auth   x.Authenticator
	bucket orm.Bucket
	ctrl   token.Controller
}

var _ weave.Handler = ExchangeHandler{}

// Check does all validation without modifying the state.
func (h ExchangeHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: exchangeCost}, nil
}

// Deliver swaps the tokens and closes the escrow. Every step either
// succeeds or the whole transaction is discarded.
func (h ExchangeHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	if err := openIfMissing(h.ctrl, db, msg.Taker, msg.Maker, msg.OfferTicker); err != nil {
		return nil, errors.Wrap(err, "maker receiving account")
	}
	err = h.ctrl.TransferChecked(ctx, db, msg.Taker, msg.Maker, msg.OfferTicker, msg.OfferAmount, msg.OfferDecimals)
	if err != nil {
		return nil, errors.Wrap(err, "pay maker")
	}

	// Only this handler can move tokens out of the vault.
	vctx := withEscrowAuthority(ctx, Condition(escrow.Maker, escrow.OfferedTicker))
	err = h.ctrl.TransferChecked(vctx, db, msg.Escrow, msg.Taker, escrow.OfferedTicker, escrow.OfferedAmount, msg.ExpectDecimals)
	if err != nil {
		return nil, errors.Wrap(err, "release vault")
	}
	if err := h.ctrl.CloseAccount(vctx, db, msg.Escrow, escrow.OfferedTicker, escrow.Maker); err != nil {
		return nil, errors.Wrap(err, "close vault")
	}

	if err := h.bucket.Delete(db, msg.Escrow); err != nil {
		return nil, errors.Wrap(err, "delete escrow")
	}
	if err := h.ctrl.RefundDeposit(db, escrow.Maker, escrow.Deposit); err != nil {
		return nil, errors.Wrap(err, "record deposit")
	}

	weave.GetLogger(ctx).Debug("escrow exchanged",
		"escrow", msg.Escrow,
		"taker", msg.Taker)

	return &weave.DeliverResult{
		Tags: []common.KVPair{
			weave.Tag("action", "exchange"),
			weave.Tag("escrow", msg.Escrow.String()),
		},
	}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h ExchangeHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*ExchangeMsg, *Escrow, error) {
	var msg ExchangeMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	if !h.auth.HasAddress(ctx, msg.Taker) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "taker signature missing")
	}

	escrowAddr := Address(msg.Maker, msg.ExpectTicker)
	derived := []struct {
		name      string
		want, got weave.Address
	}{
		{"escrow", escrowAddr, msg.Escrow},
		{"vault", VaultAddress(escrowAddr, msg.ExpectTicker), msg.Vault},
		{"taker source", token.AccountAddress(msg.Taker, msg.OfferTicker), msg.TakerSource},
		{"taker destination", token.AccountAddress(msg.Taker, msg.ExpectTicker), msg.TakerDestination},
		{"maker destination", token.AccountAddress(msg.Maker, msg.OfferTicker), msg.MakerDestination},
	}
	for _, d := range derived {
		if !d.want.Equals(d.got) {
			return nil, nil, errors.Wrapf(ErrAddressMismatch, "%s: want %s, got %s", d.name, d.want, d.got)
		}
	}

	var escrow Escrow
	if err := h.bucket.One(db, escrowAddr, &escrow); err != nil {
		return nil, nil, errors.Wrap(err, "escrow")
	}

	if escrow.WantedTicker != msg.OfferTicker {
		return nil, nil, errors.Wrapf(ErrTermsMismatch, "offer wants %s, got %s", escrow.WantedTicker, msg.OfferTicker)
	}
	if escrow.WantedAmount != msg.OfferAmount {
		return nil, nil, errors.Wrapf(ErrTermsMismatch, "offer wants %d, got %d", escrow.WantedAmount, msg.OfferAmount)
	}
	if escrow.OfferedAmount != msg.ExpectAmount {
		return nil, nil, errors.Wrapf(ErrTermsMismatch, "offer holds %d, expected %d", escrow.OfferedAmount, msg.ExpectAmount)
	}

	locked, err := h.ctrl.Balance(db, escrowAddr, escrow.OfferedTicker)
	if err != nil {
		return nil, nil, errors.Wrap(err, "vault")
	}
	if locked != escrow.OfferedAmount {
		return nil, nil, errors.Wrapf(errors.ErrState, "vault holds %d, offer states %d", locked, escrow.OfferedAmount)
	}

	if err := h.checkDecimals(db, msg.OfferTicker, msg.OfferDecimals); err != nil {
		return nil, nil, err
	}
	if err := h.checkDecimals(db, msg.ExpectTicker, msg.ExpectDecimals); err != nil {
		return nil, nil, err
	}

	balance, err := h.ctrl.Balance(db, msg.Taker, msg.OfferTicker)
	if err != nil {
		return nil, nil, errors.Wrap(err, "taker source account")
	}
	if balance < msg.OfferAmount {
		return nil, nil, errors.Wrapf(errors.ErrInsufficientAmount, "taker holds %d %s, owes %d", balance, msg.OfferTicker, msg.OfferAmount)
	}
	if _, err := h.ctrl.Account(db, msg.Taker, msg.ExpectTicker); err != nil {
		return nil, nil, errors.Wrap(err, "taker destination account")
	}
	return &msg, &escrow, nil
}

func (h ExchangeHandler) checkDecimals(db weave.ReadOnlyKVStore, ticker string, decimals uint32) error {
	mint, err := h.ctrl.Mint(db, ticker)
	if err != nil {
		return err
	}
	if mint.Decimals != decimals {
		return errors.Wrapf(token.ErrDecimals, "%s has %d decimals, got %d", ticker, mint.Decimals, decimals)
	}
	return nil
}

func openIfMissing(ctrl token.Controller, db weave.KVStore, payer, owner weave.Address, ticker string) error {
	switch ok, err := ctrl.HasAccount(db, owner, ticker); {
	case err != nil:
		return err
	case ok:
		return nil
	}
	_, err := ctrl.OpenAccount(db, payer, owner, ticker)
	return err
}

func recordDeposit(db weave.ReadOnlyKVStore) (uint64, error) {
	var conf Configuration
	switch err := gconf.Load(db, optKey, &conf); {
	case err == nil:
		return conf.RecordDeposit, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, errors.Wrap(err, "escrow configuration")
	}
}
