package orm

import (
	"github.com/gogo/protobuf/proto"
)

// Model is implemented by any entity that can be stored in a Bucket.
//
// All protobuf messages are serialized with gogo/protobuf, Validate is
// called before any write.
type Model interface {
	proto.Message
	Validate() error
}

// Indexer calculates the secondary index key for a given model. A nil
// key means the model is not indexed.
type Indexer func(Model) ([]byte, error)
