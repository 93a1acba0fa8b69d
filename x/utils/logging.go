package utils

import (
	"time"

	"github.com/iov-one/tokenescrow/weave"
)

// Logging writes a log entry for every transaction that passes through it,
// with the message path, the processing time and the error if any.
type Logging struct{}

var _ weave.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs failures as errors and success as debug.
func (Logging) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	var msg string
	if err == nil {
		msg = res.Log
	}
	logDuration(ctx, tx, start, msg, err, true)
	return res, err
}

// Deliver logs failures as errors and success as info.
func (Logging) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	var msg string
	if err == nil {
		msg = res.Log
	}
	logDuration(ctx, tx, start, msg, err, false)
	return res, err
}

func logDuration(ctx weave.Context, tx weave.Tx, start time.Time, msg string, err error, lowPrio bool) {
	logger := weave.GetLogger(ctx).With("duration", time.Since(start)/time.Microsecond)
	if tx != nil {
		logger = logger.With("path", weave.GetPath(tx))
	}

	// An empty message is still logged, the other fields carry the
	// information.
	switch {
	case err != nil:
		logger.With("err", err).Error(msg)
	case lowPrio:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
