package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/iov-one/tokenescrow/crypto"
	"github.com/iov-one/tokenescrow/errors"
	"github.com/iov-one/tokenescrow/weave"
)

// SignCodeV1 prefixes every signed payload.
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// VerifyTxSignatures verifies every signature of tx and returns the
// conditions of the signers in signature order. An unsigned tx has no
// signers. Any invalid signature fails the whole tx.
func VerifyTxSignatures(db weave.KVStore, tx SignedTx, chainID string) ([]weave.Condition, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, errors.Wrap(err, "sign bytes")
	}
	var signers []weave.Condition
	for i, sig := range tx.GetSignatures() {
		cond, err := VerifySignature(db, sig, payload, chainID)
		if err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		signers = append(signers, cond)
	}
	return signers, nil
}

// VerifySignature checks sig against the payload and the signer sequence.
// On success the signer sequence is incremented in db.
func VerifySignature(db weave.KVStore, sig *StdSignature, signBytes []byte, chainID string) (weave.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}

	users := NewBucket()
	user, err := users.GetOrCreate(db, sig.Pubkey)
	if err != nil {
		return nil, err
	}
	digest, err := BuildSignBytes(signBytes, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	if !user.Pubkey.Verify(digest, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "signature does not match")
	}
	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if err := users.Save(db, user); err != nil {
		return nil, err
	}
	return user.Pubkey.Condition(), nil
}

// BuildSignBytes returns the sha512 digest that is signed for a tx:
//
//   SignCodeV1 | uint8 len(chainID) | chainID | big endian int64 seq | signBytes
//
// Binding the chain id and the sequence prevents replays on another chain
// and within the same chain.
func BuildSignBytes(signBytes []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !weave.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}

	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], uint64(seq))

	h := sha512.New()
	h.Write(SignCodeV1)
	h.Write([]byte{uint8(len(chainID))})
	h.Write([]byte(chainID))
	h.Write(nonce[:])
	h.Write(signBytes)
	return h.Sum(nil), nil
}

// BuildSignBytesTx is BuildSignBytes for the sign bytes of tx.
func BuildSignBytesTx(tx SignedTx, chainID string, seq int64) ([]byte, error) {
	signBytes, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	return BuildSignBytes(signBytes, chainID, seq)
}

// SignTx signs tx with the given sequence.
func SignTx(signer crypto.Signer, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	signBytes, err := BuildSignBytesTx(tx, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(signBytes)
	if err != nil {
		return nil, err
	}
	return &StdSignature{
		Pubkey:    signer.PublicKey(),
		Signature: sig,
		Sequence:  seq,
	}, nil
}
