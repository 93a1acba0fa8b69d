package escrow

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/tokenescrow/weave"
)

// Escrow holds the terms of an open offer. The maker locked OfferedAmount
// of OfferedTicker in the vault and wants WantedAmount of WantedTicker.
type Escrow struct {
	Metadata      *weave.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	Maker         weave.Address   `protobuf:"bytes,2,opt,name=maker,proto3,casttype=github.com/iov-one/tokenescrow/weave.Address" json:"maker,omitempty"`
	OfferedTicker string          `protobuf:"bytes,3,opt,name=offered_ticker,json=offeredTicker,proto3" json:"offered_ticker,omitempty"`
	WantedTicker  string          `protobuf:"bytes,4,opt,name=wanted_ticker,json=wantedTicker,proto3" json:"wanted_ticker,omitempty"`
	OfferedAmount uint64          `protobuf:"varint,5,opt,name=offered_amount,json=offeredAmount,proto3" json:"offered_amount,omitempty"`
	WantedAmount  uint64          `protobuf:"varint,6,opt,name=wanted_amount,json=wantedAmount,proto3" json:"wanted_amount,omitempty"`
	// Vault is the token account holding the offered amount.
	Vault weave.Address `protobuf:"bytes,7,opt,name=vault,proto3,casttype=github.com/iov-one/tokenescrow/weave.Address" json:"vault,omitempty"`
	// Deposit is the storage deposit the maker paid for this record.
	Deposit uint64 `protobuf:"varint,8,opt,name=deposit,proto3" json:"deposit,omitempty"`
}

func (m *Escrow) Reset()         { *m = Escrow{} }
func (m *Escrow) String() string { return proto.CompactTextString(m) }
func (*Escrow) ProtoMessage()    {}

// CreateMsg opens an offer. All addresses are given explicitly and must
// match their derivation.
type CreateMsg struct {
	Metadata      *weave.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	Maker         weave.Address   `protobuf:"bytes,2,opt,name=maker,proto3,casttype=github.com/iov-one/tokenescrow/weave.Address" json:"maker,omitempty"`
	OfferedTicker string          `protobuf:"bytes,3,opt,name=offered_ticker,json=offeredTicker,proto3" json:"offered_ticker,omitempty"`
	WantedTicker  string          `protobuf:"bytes,4,opt,name=wanted_ticker,json=wantedTicker,proto3" json:"wanted_ticker,omitempty"`
	OfferedAmount uint64          `protobuf:"varint,5,opt,name=offered_amount,json=offeredAmount,proto3" json:"offered_amount,omitempty"`
	WantedAmount  uint64          `protobuf:"varint,6,opt,name=wanted_amount,json=wantedAmount,proto3" json:"wanted_amount,omitempty"`
	// OfferedDecimals is the precision the maker expects the offered
	// token to have.
	OfferedDecimals uint32        `protobuf:"varint,7,opt,name=offered_decimals,json=offeredDecimals,proto3" json:"offered_decimals,omitempty"`
	Escrow          weave.Address `protobuf:"bytes,8,opt,name=escrow,proto3,casttype=github.com/iov-one/tokenescrow/weave.Address" json:"escrow,omitempty"`
	Vault           weave.Address `protobuf:"bytes,9,opt,name=vault,proto3,casttype=github.com/iov-one/tokenescrow/weave.Address" json:"vault,omitempty"`
	// Source is the account of the maker holding the offered token.
	Source weave.Address `protobuf:"bytes,10,opt,name=source,proto3,casttype=github.com/iov-one/tokenescrow/weave.Address" json:"source,omitempty"`
}

func (m *CreateMsg) Reset()         { *m = CreateMsg{} }
func (m *CreateMsg) String() string { return proto.CompactTextString(m) }
func (*CreateMsg) ProtoMessage()    {}

// ExchangeMsg takes an offer. The taker pays OfferAmount of OfferTicker
// and receives ExpectAmount of ExpectTicker.
type ExchangeMsg struct {
	Metadata       *weave.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	Taker          weave.Address   `protobuf:"bytes,2,opt,name=taker,proto3,casttype=github.com/iov-one/tokenescrow/weave.Address" json:"taker,omitempty"`
	Maker          weave.Address   `protobuf:"bytes,3,opt,name=maker,proto3,casttype=github.com/iov-one/tokenescrow/weave.Address" json:"maker,omitempty"`
	OfferTicker    string          `protobuf:"bytes,4,opt,name=offer_ticker,json=offerTicker,proto3" json:"offer_ticker,omitempty"`
	ExpectTicker   string          `protobuf:"bytes,5,opt,name=expect_ticker,json=expectTicker,proto3" json:"expect_ticker,omitempty"`
	OfferAmount    uint64          `protobuf:"varint,6,opt,name=offer_amount,json=offerAmount,proto3" json:"offer_amount,omitempty"`
	ExpectAmount   uint64          `protobuf:"varint,7,opt,name=expect_amount,json=expectAmount,proto3" json:"expect_amount,omitempty"`
	OfferDecimals  uint32          `protobuf:"varint,8,opt,name=offer_decimals,json=offerDecimals,proto3" json:"offer_decimals,omitempty"`
	ExpectDecimals uint32          `protobuf:"varint,9,opt,name=expect_decimals,json=expectDecimals,proto3" json:"expect_decimals,omitempty"`
	Escrow         weave.Address   `protobuf:"bytes,10,opt,name=escrow,proto3,casttype=github.com/iov-one/tokenescrow/weave.Address" json:"escrow,omitempty"`
	Vault          weave.Address   `protobuf:"bytes,11,opt,name=vault,proto3,casttype=github.com/iov-one/tokenescrow/weave.Address" json:"vault,omitempty"`
	// TakerSource is the account of the taker holding the offer token.
	TakerSource weave.Address `protobuf:"bytes,12,opt,name=taker_source,json=takerSource,proto3,casttype=github.com/iov-one/tokenescrow/weave.Address" json:"taker_source,omitempty"`
	// TakerDestination is the account of the taker receiving the expected
	// token.
	TakerDestination weave.Address `protobuf:"bytes,13,opt,name=taker_destination,json=takerDestination,proto3,casttype=github.com/iov-one/tokenescrow/weave.Address" json:"taker_destination,omitempty"`
	// MakerDestination is the account of the maker receiving the offer
	// token.
	MakerDestination weave.Address `protobuf:"bytes,14,opt,name=maker_destination,json=makerDestination,proto3,casttype=github.com/iov-one/tokenescrow/weave.Address" json:"maker_destination,omitempty"`
}

func (m *ExchangeMsg) Reset()         { *m = ExchangeMsg{} }
func (m *ExchangeMsg) String() string { return proto.CompactTextString(m) }
func (*ExchangeMsg) ProtoMessage()    {}

// Configuration is the escrow extension configuration, kept under _c:escrow.
type Configuration struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	Owner    weave.Address   `protobuf:"bytes,2,opt,name=owner,proto3,casttype=github.com/iov-one/tokenescrow/weave.Address" json:"owner,omitempty"`
	// RecordDeposit is charged to the maker for every escrow record.
	RecordDeposit uint64 `protobuf:"varint,3,opt,name=record_deposit,json=recordDeposit,proto3" json:"record_deposit,omitempty"`
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

// UpdateConfigurationMsg patches the escrow configuration.
type UpdateConfigurationMsg struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	Patch    *Configuration  `protobuf:"bytes,2,opt,name=patch" json:"patch,omitempty"`
}

func (m *UpdateConfigurationMsg) Reset()         { *m = UpdateConfigurationMsg{} }
func (m *UpdateConfigurationMsg) String() string { return proto.CompactTextString(m) }
func (*UpdateConfigurationMsg) ProtoMessage()    {}
