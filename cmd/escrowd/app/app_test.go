package app

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/gogo/protobuf/proto"
	weaveapp "github.com/iov-one/tokenescrow/app"
	"github.com/iov-one/tokenescrow/crypto"
	"github.com/iov-one/tokenescrow/errors"
	"github.com/iov-one/tokenescrow/weave"
	"github.com/iov-one/tokenescrow/x/escrow"
	"github.com/iov-one/tokenescrow/x/sigs"
	"github.com/iov-one/tokenescrow/x/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

const chainID = "escrow-test"

type chain struct {
	t      *testing.T
	app    weaveapp.BaseApp
	height int64
	maker  *crypto.PrivateKey
	taker  *crypto.PrivateKey
}

// newChain starts an application where the maker holds 500 AAA and the
// taker holds 300 BBB and an empty AAA account.
func newChain(t *testing.T) *chain {
	t.Helper()

	base, err := Application("escrowd-test", Stack(), TxDecoder, "", false)
	require.NoError(t, err)

	c := &chain{
		t:     t,
		app:   base,
		maker: crypto.GenPrivKeyEd25519(),
		taker: crypto.GenPrivKeyEd25519(),
	}

	type mint struct {
		Ticker   string `json:"ticker"`
		Decimals uint32 `json:"decimals"`
	}
	type reserve struct {
		Address weave.Address `json:"address"`
		Amount  uint64        `json:"amount"`
	}
	type account struct {
		Owner  weave.Address `json:"owner"`
		Ticker string        `json:"ticker"`
		Amount uint64        `json:"amount"`
	}
	makerAddr, takerAddr := c.maker.PublicKey().Address(), c.taker.PublicKey().Address()
	genesis := map[string]interface{}{
		"conf": map[string]interface{}{
			"token":  &token.Configuration{Metadata: &weave.Metadata{Schema: 1}, AccountDeposit: 10},
			"escrow": &escrow.Configuration{Metadata: &weave.Metadata{Schema: 1}, RecordDeposit: 20},
		},
		"token": map[string]interface{}{
			"mints": []mint{{"AAA", 6}, {"BBB", 2}},
			"reserves": []reserve{
				{makerAddr, 100},
				{takerAddr, 100},
			},
			"accounts": []account{
				{makerAddr, "AAA", 500},
				{takerAddr, "BBB", 300},
				{takerAddr, "AAA", 0},
			},
		},
	}
	state, err := json.Marshal(genesis)
	require.NoError(t, err)

	c.app.InitChain(abci.RequestInitChain{ChainId: chainID, AppStateBytes: state})
	c.commit()
	return c
}

func (c *chain) commit() {
	c.app.EndBlock(abci.RequestEndBlock{Height: c.height})
	c.app.Commit()
	c.height++
	c.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{ChainID: chainID, Height: c.height, Time: time.Now()},
	})
}

// sign wraps the message into a transaction signed with the next nonce of
// the key.
func (c *chain) sign(key *crypto.PrivateKey, tx *Tx) []byte {
	c.t.Helper()
	seq, err := sigs.NextNonce(c.app.DeliverStore(), key.PublicKey().Address())
	require.NoError(c.t, err)
	sig, err := sigs.SignTx(key, tx, chainID, seq)
	require.NoError(c.t, err)
	tx.Signatures = append(tx.Signatures, sig)
	bz, err := proto.Marshal(tx)
	require.NoError(c.t, err)
	return bz
}

// deliver runs the transaction through CheckTx and DeliverTx in one block.
func (c *chain) deliver(key *crypto.PrivateKey, tx *Tx) abci.ResponseDeliverTx {
	c.t.Helper()
	bz := c.sign(key, tx)
	check := c.app.CheckTx(bz)
	res := c.app.DeliverTx(bz)
	assert.Equal(c.t, check.Code, res.Code, "check and deliver disagree: %s / %s", check.Log, res.Log)
	c.commit()
	return res
}

func (c *chain) balance(key *crypto.PrivateKey, ticker string) uint64 {
	c.t.Helper()
	amount, err := Controller().Balance(c.app.DeliverStore(), key.PublicKey().Address(), ticker)
	require.NoError(c.t, err)
	return amount
}

func (c *chain) reserve(key *crypto.PrivateKey) uint64 {
	c.t.Helper()
	amount, err := Controller().Reserve(c.app.DeliverStore(), key.PublicKey().Address())
	require.NoError(c.t, err)
	return amount
}

func (c *chain) createMsg(offered, wanted uint64) *escrow.CreateMsg {
	maker := c.maker.PublicKey().Address()
	addr := escrow.Address(maker, "AAA")
	return &escrow.CreateMsg{
		Metadata:        &weave.Metadata{Schema: 1},
		Maker:           maker,
		OfferedTicker:   "AAA",
		WantedTicker:    "BBB",
		OfferedAmount:   offered,
		WantedAmount:    wanted,
		OfferedDecimals: 6,
		Escrow:          addr,
		Vault:           escrow.VaultAddress(addr, "AAA"),
		Source:          token.AccountAddress(maker, "AAA"),
	}
}

func (c *chain) exchangeMsg(pay, get uint64) *escrow.ExchangeMsg {
	maker, taker := c.maker.PublicKey().Address(), c.taker.PublicKey().Address()
	addr := escrow.Address(maker, "AAA")
	return &escrow.ExchangeMsg{
		Metadata:         &weave.Metadata{Schema: 1},
		Taker:            taker,
		Maker:            maker,
		OfferTicker:      "BBB",
		ExpectTicker:     "AAA",
		OfferAmount:      pay,
		ExpectAmount:     get,
		OfferDecimals:    2,
		ExpectDecimals:   6,
		Escrow:           addr,
		Vault:            escrow.VaultAddress(addr, "AAA"),
		TakerSource:      token.AccountAddress(taker, "BBB"),
		TakerDestination: token.AccountAddress(taker, "AAA"),
		MakerDestination: token.AccountAddress(maker, "BBB"),
	}
}

func TestEscrowScenario(t *testing.T) {
	c := newChain(t)

	res := c.deliver(c.maker, &Tx{CreateEscrowMsg: c.createMsg(500, 300)})
	require.Equal(t, uint32(errors.SuccessABCICode), res.Code, res.Log)
	escrowAddr := escrow.Address(c.maker.PublicKey().Address(), "AAA")
	assert.Equal(t, []byte(escrowAddr), res.Data)
	assert.Equal(t, uint64(0), c.balance(c.maker, "AAA"))
	// record deposit, vault and maker BBB account
	assert.Equal(t, uint64(100-20-10-10), c.reserve(c.maker))

	// the record is visible to queries once committed
	q := c.app.Query(abci.RequestQuery{Path: "/escrows", Data: escrowAddr})
	require.Equal(t, uint32(errors.SuccessABCICode), q.Code, q.Log)
	var record escrow.Escrow
	require.NoError(t, weaveapp.UnmarshalOneResult(q.Value, &record))
	assert.Equal(t, uint64(500), record.OfferedAmount)
	assert.Equal(t, uint64(300), record.WantedAmount)

	// a second offer of the same token collides
	res = c.deliver(c.maker, &Tx{CreateEscrowMsg: c.createMsg(1, 1)})
	assert.Equal(t, errors.ErrDuplicate.ABCICode(), res.Code)

	// exact match only
	res = c.deliver(c.taker, &Tx{ExchangeMsg: c.exchangeMsg(299, 500)})
	assert.Equal(t, escrow.ErrTermsMismatch.ABCICode(), res.Code)
	assert.Equal(t, uint64(300), c.balance(c.taker, "BBB"))

	res = c.deliver(c.taker, &Tx{ExchangeMsg: c.exchangeMsg(300, 500)})
	require.Equal(t, uint32(errors.SuccessABCICode), res.Code, res.Log)
	assert.Equal(t, uint64(500), c.balance(c.taker, "AAA"))
	assert.Equal(t, uint64(0), c.balance(c.taker, "BBB"))
	assert.Equal(t, uint64(300), c.balance(c.maker, "BBB"))
	assert.Equal(t, uint64(0), c.balance(c.maker, "AAA"))
	// vault and record deposits are back
	assert.Equal(t, uint64(100-10), c.reserve(c.maker))
	assert.Equal(t, uint64(100), c.reserve(c.taker))

	// replay of the settlement finds nothing
	res = c.deliver(c.taker, &Tx{ExchangeMsg: c.exchangeMsg(300, 500)})
	assert.Equal(t, errors.ErrNotFound.ABCICode(), res.Code)

	q = c.app.Query(abci.RequestQuery{Path: "/escrows", Data: escrowAddr})
	require.Equal(t, uint32(errors.SuccessABCICode), q.Code, q.Log)
	var keys weaveapp.ResultSet
	require.NoError(t, proto.Unmarshal(q.Key, &keys))
	assert.Len(t, keys.Results, 0)
}

func TestEscrowRejectsZeroAmount(t *testing.T) {
	c := newChain(t)

	res := c.deliver(c.maker, &Tx{CreateEscrowMsg: c.createMsg(0, 300)})
	assert.Equal(t, errors.ErrAmount.ABCICode(), res.Code)
	assert.Equal(t, uint64(500), c.balance(c.maker, "AAA"))
	assert.Equal(t, uint64(100), c.reserve(c.maker))
}

func TestTxRejectsForeignSignature(t *testing.T) {
	c := newChain(t)

	// the taker cannot open an offer in the name of the maker
	res := c.deliver(c.taker, &Tx{CreateEscrowMsg: c.createMsg(500, 300)})
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), res.Code)

	bz, err := proto.Marshal(&Tx{CreateEscrowMsg: c.createMsg(500, 300)})
	require.NoError(t, err)
	unsigned := c.app.DeliverTx(bz)
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), unsigned.Code)
}

func TestTxGetMsg(t *testing.T) {
	cases := map[string]struct {
		tx      *Tx
		wantErr *errors.Error
	}{
		"single message": {
			tx: &Tx{TransferMsg: &token.TransferMsg{}},
		},
		"no message": {
			tx:      &Tx{},
			wantErr: errors.ErrMsg,
		},
		"two messages": {
			tx:      &Tx{CreateEscrowMsg: &escrow.CreateMsg{}, ExchangeMsg: &escrow.ExchangeMsg{}},
			wantErr: errors.ErrMsg,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, err := tc.tx.GetMsg()
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestSignBytesIgnoreSignatures(t *testing.T) {
	tx := &Tx{TransferMsg: &token.TransferMsg{Ticker: "AAA", Amount: 1}}
	before, err := tx.GetSignBytes()
	require.NoError(t, err)

	tx.Signatures = []*sigs.StdSignature{{Sequence: 3, Signature: []byte("sig")}}
	after, err := tx.GetSignBytes()
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Len(t, tx.Signatures, 1)
}
