package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/tokenescrow/errors"
	"github.com/iov-one/tokenescrow/weave"
	"github.com/iov-one/tokenescrow/x/escrow"
	"github.com/iov-one/tokenescrow/x/sigs"
	"github.com/iov-one/tokenescrow/x/token"
)

// Tx is the transaction type of the escrow chain. Exactly one of the
// message fields must be set.
type Tx struct {
	Signatures []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures" json:"signatures,omitempty"`

	OpenAccountMsg               *token.OpenAccountMsg          `protobuf:"bytes,20,opt,name=open_account_msg,json=openAccountMsg" json:"open_account_msg,omitempty"`
	TransferMsg                  *token.TransferMsg             `protobuf:"bytes,21,opt,name=transfer_msg,json=transferMsg" json:"transfer_msg,omitempty"`
	TokenUpdateConfigurationMsg  *token.UpdateConfigurationMsg  `protobuf:"bytes,22,opt,name=token_update_configuration_msg,json=tokenUpdateConfigurationMsg" json:"token_update_configuration_msg,omitempty"`
	CreateEscrowMsg              *escrow.CreateMsg              `protobuf:"bytes,30,opt,name=create_escrow_msg,json=createEscrowMsg" json:"create_escrow_msg,omitempty"`
	ExchangeMsg                  *escrow.ExchangeMsg            `protobuf:"bytes,31,opt,name=exchange_msg,json=exchangeMsg" json:"exchange_msg,omitempty"`
	EscrowUpdateConfigurationMsg *escrow.UpdateConfigurationMsg `protobuf:"bytes,32,opt,name=escrow_update_configuration_msg,json=escrowUpdateConfigurationMsg" json:"escrow_update_configuration_msg,omitempty"`
}

func (m *Tx) Reset()         { *m = Tx{} }
func (m *Tx) String() string { return proto.CompactTextString(m) }
func (*Tx) ProtoMessage()    {}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (weave.Tx, error) {
	tx := new(Tx)
	if err := proto.Unmarshal(bz, tx); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return tx, nil
}

// make sure tx fulfills all interfaces
var _ weave.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// GetMsg returns the single message carried by the transaction.
func (tx *Tx) GetMsg() (weave.Msg, error) {
	var msgs []weave.Msg
	if tx.OpenAccountMsg != nil {
		msgs = append(msgs, tx.OpenAccountMsg)
	}
	if tx.TransferMsg != nil {
		msgs = append(msgs, tx.TransferMsg)
	}
	if tx.TokenUpdateConfigurationMsg != nil {
		msgs = append(msgs, tx.TokenUpdateConfigurationMsg)
	}
	if tx.CreateEscrowMsg != nil {
		msgs = append(msgs, tx.CreateEscrowMsg)
	}
	if tx.ExchangeMsg != nil {
		msgs = append(msgs, tx.ExchangeMsg)
	}
	if tx.EscrowUpdateConfigurationMsg != nil {
		msgs = append(msgs, tx.EscrowUpdateConfigurationMsg)
	}

	switch len(msgs) {
	case 0:
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	case 1:
		return msgs[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrMsg, "%d messages in one transaction", len(msgs))
	}
}

// GetSignatures returns all signatures on the tx.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign. Signatures are never part of
// the signed content.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := *tx
	unsigned.Signatures = nil
	bz, err := proto.Marshal(&unsigned)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return bz, nil
}
