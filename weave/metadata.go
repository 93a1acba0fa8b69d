package weave

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/tokenescrow/errors"
)

// Metadata is the header of every persisted entity and every message. It
// declares the schema version the value was written with.
type Metadata struct {
	Schema uint32 `protobuf:"varint,1,opt,name=schema,proto3" json:"schema,omitempty"`
}

func (m *Metadata) Reset()         { *m = Metadata{} }
func (m *Metadata) String() string { return proto.CompactTextString(m) }
func (*Metadata) ProtoMessage()    {}

// Validate returns an error if the metadata is missing or declares no
// schema.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrMetadata, "missing")
	}
	if m.Schema < 1 {
		return errors.Wrap(errors.ErrMetadata, "schema version")
	}
	return nil
}

// Copy returns a copy of this object.
func (m *Metadata) Copy() *Metadata {
	if m == nil {
		return nil
	}
	cpy := *m
	return &cpy
}
