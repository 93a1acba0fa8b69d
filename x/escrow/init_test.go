package escrow

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/tokenescrow/errors"
	"github.com/iov-one/tokenescrow/store"
	"github.com/iov-one/tokenescrow/weave"
	"github.com/iov-one/tokenescrow/weavetest/assert"
)

func TestGenesis(t *testing.T) {
	cases := map[string]struct {
		genesis     string
		wantErr     *errors.Error
		wantDeposit uint64
	}{
		"configuration": {
			genesis:     `{"conf": {"escrow": {"metadata": {"schema": 1}, "record_deposit": 7}}}`,
			wantDeposit: 7,
		},
		"no configuration": {
			genesis: `{}`,
		},
		"invalid configuration": {
			genesis: `{"conf": {"escrow": {"record_deposit": 7}}}`,
			wantErr: errors.ErrMetadata,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts weave.Options
			assert.Nil(t, json.Unmarshal([]byte(tc.genesis), &opts))

			db := store.MemStore()
			err := Initializer{}.FromGenesis(opts, db)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				return
			}
			deposit, err := recordDeposit(db)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantDeposit, deposit)
		})
	}
}
