package escrow

import (
	"github.com/iov-one/tokenescrow/errors"
	"github.com/iov-one/tokenescrow/gconf"
	"github.com/iov-one/tokenescrow/weave"
)

const optKey = "escrow"

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ weave.Initializer = Initializer{}

// FromGenesis stores the "escrow" configuration if the genesis declares
// one. Without it records are created free of deposit and the
// configuration cannot be updated.
func (Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	switch err := gconf.InitConfig(db, opts, optKey, &Configuration{}); {
	case err == nil, errors.ErrNotFound.Is(err):
		return nil
	default:
		return errors.Wrap(err, "configuration")
	}
}
