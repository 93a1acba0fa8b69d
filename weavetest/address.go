package weavetest

import (
	"crypto/rand"
	"encoding/binary"
	"sync/atomic"
	"testing"

	"github.com/iov-one/tokenescrow/weave"
)

var condSeq uint64

// NewCondition returns a new, unique condition. Conditions are generated
// from a sequence so they can never authenticate a real signer.
func NewCondition() weave.Condition {
	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], atomic.AddUint64(&condSeq, 1))
	return weave.NewCondition("test", "seq", raw[:])
}

// RandomAddr returns a valid random weave address generated on the fly.
func RandomAddr(t testing.TB) weave.Address {
	t.Helper()
	raw := make([]byte, weave.AddressLength)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("cannot generate a random address: %s", err)
	}
	return weave.Address(raw)
}
