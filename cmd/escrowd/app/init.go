package app

import (
	"encoding/json"
	"io/ioutil"
	"strconv"
	"strings"

	"github.com/iov-one/tokenescrow/errors"
	"github.com/iov-one/tokenescrow/weave"
	"github.com/iov-one/tokenescrow/x/escrow"
	"github.com/iov-one/tokenescrow/x/token"
)

// GenInitOptions builds the app_state of a new chain. The first argument
// is the address allowed to update the configuration, every following
// argument declares a mint as TICKER:DECIMALS. Deposits start at zero.
func GenInitOptions(args []string) (json.RawMessage, error) {
	if len(args) == 0 {
		return nil, errors.Wrap(errors.ErrInput, "configuration owner address required")
	}
	owner, err := weave.ParseAddress(args[0])
	if err != nil {
		return nil, errors.Wrap(err, "owner")
	}

	type mint struct {
		Ticker   string `json:"ticker"`
		Decimals uint32 `json:"decimals"`
	}
	mints := make([]mint, 0, len(args)-1)
	for _, raw := range args[1:] {
		chunks := strings.SplitN(raw, ":", 2)
		if len(chunks) != 2 {
			return nil, errors.Wrapf(errors.ErrInput, "mint %q, want TICKER:DECIMALS", raw)
		}
		decimals, err := strconv.ParseUint(chunks[1], 10, 32)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "mint %q decimals: %s", raw, err)
		}
		mints = append(mints, mint{Ticker: chunks[0], Decimals: uint32(decimals)})
	}

	tokenConf := &token.Configuration{Metadata: &weave.Metadata{Schema: 1}, Owner: owner}
	if err := tokenConf.Validate(); err != nil {
		return nil, err
	}
	escrowConf := &escrow.Configuration{Metadata: &weave.Metadata{Schema: 1}, Owner: owner}
	if err := escrowConf.Validate(); err != nil {
		return nil, err
	}

	state := map[string]interface{}{
		"conf": map[string]interface{}{
			"token":  tokenConf,
			"escrow": escrowConf,
		},
		"token": map[string]interface{}{
			"mints": mints,
		},
	}
	bz, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return bz, nil
}

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

// AddGenesisOptions sets the app_state of an existing tendermint genesis
// file.
func AddGenesisOptions(filename string, options json.RawMessage) error {
	bz, err := ioutil.ReadFile(filename)
	if err != nil {
		return err
	}

	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return errors.Wrapf(errors.ErrInput, "genesis file: %s", err)
	}

	doc["app_state"] = options
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return ioutil.WriteFile(filename, out, 0600)
}
