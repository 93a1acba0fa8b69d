package token

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/tokenescrow/weave"
)

// Mint registers a token type.
type Mint struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	Ticker   string          `protobuf:"bytes,2,opt,name=ticker,proto3" json:"ticker,omitempty"`
	// Decimals is the number of fractional digits of the smallest unit.
	Decimals uint32 `protobuf:"varint,3,opt,name=decimals,proto3" json:"decimals,omitempty"`
	Name     string `protobuf:"bytes,4,opt,name=name,proto3" json:"name,omitempty"`
}

func (m *Mint) Reset()         { *m = Mint{} }
func (m *Mint) String() string { return proto.CompactTextString(m) }
func (*Mint) ProtoMessage()    {}

// Account holds the balance of a single token type for an owner.
type Account struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	Owner    weave.Address   `protobuf:"bytes,2,opt,name=owner,proto3,casttype=github.com/iov-one/tokenescrow/weave.Address" json:"owner,omitempty"`
	Ticker   string          `protobuf:"bytes,3,opt,name=ticker,proto3" json:"ticker,omitempty"`
	Amount   uint64          `protobuf:"varint,4,opt,name=amount,proto3" json:"amount,omitempty"`
	// Deposit is the storage deposit paid when the account was opened. It is
	// refunded when the account is closed.
	Deposit uint64 `protobuf:"varint,5,opt,name=deposit,proto3" json:"deposit,omitempty"`
	// Custody accounts belong to an owner without a key. Only a context
	// authenticating the owner can credit them.
	Custody bool `protobuf:"varint,6,opt,name=custody,proto3" json:"custody,omitempty"`
}

func (m *Account) Reset()         { *m = Account{} }
func (m *Account) String() string { return proto.CompactTextString(m) }
func (*Account) ProtoMessage()    {}

// Reserve is the native balance storage deposits are paid from.
type Reserve struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	Amount   uint64          `protobuf:"varint,2,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *Reserve) Reset()         { *m = Reserve{} }
func (m *Reserve) String() string { return proto.CompactTextString(m) }
func (*Reserve) ProtoMessage()    {}

// Configuration is the token extension configuration, kept under _c:token.
type Configuration struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	// Owner can update the configuration.
	Owner weave.Address `protobuf:"bytes,2,opt,name=owner,proto3,casttype=github.com/iov-one/tokenescrow/weave.Address" json:"owner,omitempty"`
	// AccountDeposit is charged for every account opened.
	AccountDeposit uint64 `protobuf:"varint,3,opt,name=account_deposit,json=accountDeposit,proto3" json:"account_deposit,omitempty"`
}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()    {}

func (m *Configuration) GetOwner() weave.Address {
	if m != nil {
		return m.Owner
	}
	return nil
}

// OpenAccountMsg opens an account of the given token for the owner. The
// payer signs the message and pays the storage deposit.
type OpenAccountMsg struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	Payer    weave.Address   `protobuf:"bytes,2,opt,name=payer,proto3,casttype=github.com/iov-one/tokenescrow/weave.Address" json:"payer,omitempty"`
	Owner    weave.Address   `protobuf:"bytes,3,opt,name=owner,proto3,casttype=github.com/iov-one/tokenescrow/weave.Address" json:"owner,omitempty"`
	Ticker   string          `protobuf:"bytes,4,opt,name=ticker,proto3" json:"ticker,omitempty"`
}

func (m *OpenAccountMsg) Reset()         { *m = OpenAccountMsg{} }
func (m *OpenAccountMsg) String() string { return proto.CompactTextString(m) }
func (*OpenAccountMsg) ProtoMessage()    {}

// TransferMsg is a checked transfer between the accounts of two owners.
type TransferMsg struct {
	Metadata    *weave.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	Source      weave.Address   `protobuf:"bytes,2,opt,name=source,proto3,casttype=github.com/iov-one/tokenescrow/weave.Address" json:"source,omitempty"`
	Destination weave.Address   `protobuf:"bytes,3,opt,name=destination,proto3,casttype=github.com/iov-one/tokenescrow/weave.Address" json:"destination,omitempty"`
	Ticker      string          `protobuf:"bytes,4,opt,name=ticker,proto3" json:"ticker,omitempty"`
	Amount      uint64          `protobuf:"varint,5,opt,name=amount,proto3" json:"amount,omitempty"`
	Decimals    uint32          `protobuf:"varint,6,opt,name=decimals,proto3" json:"decimals,omitempty"`
}

func (m *TransferMsg) Reset()         { *m = TransferMsg{} }
func (m *TransferMsg) String() string { return proto.CompactTextString(m) }
func (*TransferMsg) ProtoMessage()    {}

// UpdateConfigurationMsg patches the configuration. Only non zero fields of
// the patch are applied.
type UpdateConfigurationMsg struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	Patch    *Configuration  `protobuf:"bytes,2,opt,name=patch" json:"patch,omitempty"`
}

func (m *UpdateConfigurationMsg) Reset()         { *m = UpdateConfigurationMsg{} }
func (m *UpdateConfigurationMsg) String() string { return proto.CompactTextString(m) }
func (*UpdateConfigurationMsg) ProtoMessage()    {}
