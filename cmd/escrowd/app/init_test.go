package app

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/tokenescrow/errors"
	"github.com/iov-one/tokenescrow/store"
	"github.com/iov-one/tokenescrow/weave"
	"github.com/iov-one/tokenescrow/weavetest"
	"github.com/iov-one/tokenescrow/x/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenInitOptions(t *testing.T) {
	owner := weavetest.NewCondition().Address()

	cases := map[string]struct {
		args      []string
		wantErr   *errors.Error
		wantMints []string
	}{
		"owner only": {
			args: []string{owner.String()},
		},
		"owner and mints": {
			args:      []string{owner.String(), "AAA:6", "BBB:2"},
			wantMints: []string{"AAA", "BBB"},
		},
		"missing owner": {
			args:    nil,
			wantErr: errors.ErrInput,
		},
		"bad mint": {
			args:    []string{owner.String(), "AAA"},
			wantErr: errors.ErrInput,
		},
		"bad decimals": {
			args:    []string{owner.String(), "AAA:x"},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			raw, err := GenInitOptions(tc.args)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr != nil {
				return
			}

			var opts weave.Options
			require.NoError(t, json.Unmarshal(raw, &opts))
			db := store.MemStore()
			require.NoError(t, Initializers().FromGenesis(opts, db))

			ctrl := Controller()
			for _, ticker := range tc.wantMints {
				_, err := ctrl.Mint(db, ticker)
				assert.NoError(t, err)
			}
			deposit, err := ctrl.AccountDeposit(db)
			require.NoError(t, err)
			assert.Equal(t, uint64(0), deposit)
		})
	}
}

func TestAddGenesisOptions(t *testing.T) {
	dir, err := ioutil.TempDir("", "escrowd")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	genFile := filepath.Join(dir, "genesis.json")
	require.NoError(t, ioutil.WriteFile(genFile, []byte(`{"chain_id": "escrow-test", "validators": []}`), 0600))

	owner := weavetest.NewCondition().Address()
	opts, err := GenInitOptions([]string{owner.String(), "AAA:6"})
	require.NoError(t, err)
	require.NoError(t, AddGenesisOptions(genFile, opts))

	bz, err := ioutil.ReadFile(genFile)
	require.NoError(t, err)
	var doc struct {
		ChainID  string        `json:"chain_id"`
		AppState weave.Options `json:"app_state"`
	}
	require.NoError(t, json.Unmarshal(bz, &doc))
	assert.Equal(t, "escrow-test", doc.ChainID)

	var gen token.Genesis
	require.NoError(t, doc.AppState.ReadOptions("token", &gen))
	require.Len(t, gen.Mints, 1)
	assert.Equal(t, "AAA", gen.Mints[0].Ticker)
	assert.Equal(t, uint32(6), gen.Mints[0].Decimals)

	assert.Error(t, AddGenesisOptions(filepath.Join(dir, "missing.json"), opts))
}
