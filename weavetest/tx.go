package weavetest

import "github.com/iov-one/tokenescrow/weave"

// Tx represents a weave transaction.
// Transaction represents a single message that is to be processed within this
// transaction.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg weave.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ weave.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (weave.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) Reset()         { *tx = Tx{} }
func (tx *Tx) String() string { return "weavetest.Tx" }
func (*Tx) ProtoMessage()     {}

// Msg represents a weave message.
// Message is a request processed by weave within a single transaction.
type Msg struct {
	// RoutePath returned by the path method, consumed by the router.
	RoutePath string
	// Err if set is returned by the validate method.
	Err error
}

var _ weave.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

func (m *Msg) Reset()         { *m = Msg{} }
func (m *Msg) String() string { return "weavetest.Msg " + m.RoutePath }
func (*Msg) ProtoMessage()    {}
