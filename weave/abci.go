package weave

import (
	"github.com/iov-one/tokenescrow/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// DeliverResult is the outcome of a successfully delivered transaction.
// Failures are always reported with an error instead.
type DeliverResult struct {
	// Data is a machine-parseable return value, like the address of a
	// created escrow.
	Data []byte
	// Log is a human readable message.
	Log string
	// Tags are indexed by tendermint, so clients can search the history
	// by action or escrow address.
	Tags []common.KVPair
	// GasUsed is reported to tendermint as is.
	GasUsed int64
}

// ToABCI converts our internal type into an abci response
func (d DeliverResult) ToABCI() abci.ResponseDeliverTx {
	return abci.ResponseDeliverTx{
		Data:    d.Data,
		Log:     d.Log,
		Tags:    d.Tags,
		GasUsed: d.GasUsed,
	}
}

// CheckResult is the outcome of a successfully checked transaction.
type CheckResult struct {
	Data []byte
	Log  string
	// GasAllocated is the maximum units of work the transaction is
	// allowed to perform.
	GasAllocated int64
}

// ToABCI converts our internal type into an abci response
func (c CheckResult) ToABCI() abci.ResponseCheckTx {
	return abci.ResponseCheckTx{
		Data:      c.Data,
		Log:       c.Log,
		GasWanted: c.GasAllocated,
	}
}

// DeliverOrError returns the abci response for DeliverTx. An error always
// takes precedence over the result.
func DeliverOrError(result *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		return DeliverTxError(err, debug)
	}
	if result == nil {
		return abci.ResponseDeliverTx{}
	}
	return result.ToABCI()
}

// CheckOrError returns the abci response for CheckTx. An error always
// takes precedence over the result.
func CheckOrError(result *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		return CheckTxError(err, debug)
	}
	if result == nil {
		return abci.ResponseCheckTx{}
	}
	return result.ToABCI()
}

// DeliverTxError converts an error into an abci.ResponseDeliverTx. Outside
// of debug mode errors without an ABCI code are redacted.
func DeliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := abciError("cannot deliver tx", err, debug)
	return abci.ResponseDeliverTx{Code: code, Log: log}
}

// CheckTxError converts an error into an abci.ResponseCheckTx. Outside of
// debug mode errors without an ABCI code are redacted.
func CheckTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := abciError("cannot check tx", err, debug)
	return abci.ResponseCheckTx{Code: code, Log: log}
}

func abciError(prefix string, err error, debug bool) (uint32, string) {
	code, log := errors.ABCIInfo(err, debug)
	if code == errors.SuccessABCICode {
		return code, log
	}
	return code, prefix + ": " + log
}

// Tag builds a transaction tag indexed by tendermint.
func Tag(key, value string) common.KVPair {
	return common.KVPair{Key: []byte(key), Value: []byte(value)}
}
