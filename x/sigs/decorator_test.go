package sigs

import (
	"context"
	"testing"

	"github.com/iov-one/tokenescrow/crypto"
	"github.com/iov-one/tokenescrow/errors"
	"github.com/iov-one/tokenescrow/store"
	"github.com/iov-one/tokenescrow/weave"
	"github.com/iov-one/tokenescrow/weavetest"
	"github.com/iov-one/tokenescrow/weavetest/assert"
)

// signerHandler records the conditions the context authenticates.
type signerHandler struct {
	weavetest.Handler
	signers []weave.Condition
}

func (s *signerHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	s.signers = Authenticate{}.GetConditions(ctx)
	return s.Handler.Check(ctx, db, tx)
}

func (s *signerHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	s.signers = Authenticate{}.GetConditions(ctx)
	return s.Handler.Deliver(ctx, db, tx)
}

func TestDecorator(t *testing.T) {
	chainID := "deco-rate"
	ctx := weave.WithChainID(context.Background(), chainID)
	kv := store.MemStore()

	priv := crypto.GenPrivKeyEd25519()
	perm := priv.PublicKey().Condition()

	tx := newSignedTx("escrow me")
	sig0, err := SignTx(priv, tx, chainID, 0)
	assert.Nil(t, err)
	sig1, err := SignTx(priv, tx, chainID, 1)
	assert.Nil(t, err)

	h := &signerHandler{}
	d := NewDecorator()

	// no signature is rejected unless allowed
	_, err = d.Check(ctx, kv, tx, h)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	_, err = d.AllowMissingSigs().Deliver(ctx, kv, tx, h)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(h.signers))

	tx.Signatures = []*StdSignature{sig0}
	res, err := d.Check(ctx, kv, tx, h)
	assert.Nil(t, err)
	assert.Equal(t, []weave.Condition{perm}, h.signers)
	assert.Equal(t, int64(signatureVerifyCost), res.GasAllocated)
	if !(Authenticate{}).HasAddress(withSigners(ctx, h.signers), perm.Address()) {
		t.Fatal("signer address not authenticated")
	}

	// replaying the same signature fails
	_, err = d.Deliver(ctx, kv, tx, h)
	assert.IsErr(t, ErrInvalidSequence, err)

	tx.Signatures = []*StdSignature{sig1}
	_, err = d.Deliver(ctx, kv, tx, h)
	assert.Nil(t, err)
	assert.Equal(t, []weave.Condition{perm}, h.signers)

	// a tx that cannot be signed passes through
	plain := &weavetest.Tx{}
	_, err = d.Deliver(ctx, kv, plain, h)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(h.signers))
	assert.Equal(t, 3, h.DeliverCallCount())
}
