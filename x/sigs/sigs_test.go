package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/tokenescrow/weave"
	"github.com/iov-one/tokenescrow/weavetest"
)

// signedTx is a transaction that signs the bytes of its payload.
type signedTx struct {
	weavetest.Tx
	Payload    []byte
	Signatures []*StdSignature
}

var _ SignedTx = (*signedTx)(nil)
var _ weave.Tx = (*signedTx)(nil)

func newSignedTx(payload string) *signedTx {
	return &signedTx{
		Tx:      weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/signed"}},
		Payload: []byte(payload),
	}
}

func (tx *signedTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *signedTx) GetSignBytes() ([]byte, error) {
	return tx.Payload, nil
}

func (tx *signedTx) Reset()         { *tx = signedTx{} }
func (tx *signedTx) String() string { return "signedTx" }
func (*signedTx) ProtoMessage()     {}

var _ proto.Message = (*signedTx)(nil)
