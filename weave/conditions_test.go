package weave_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/tokenescrow/errors"
	"github.com/iov-one/tokenescrow/weave"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressPrinting(t *testing.T) {
	Convey("test hexademical address printing", t, func() {
		addr := weave.NewAddress([]byte("ABCD123456LHB"))
		So(addr.String(), ShouldEqual, fmt.Sprintf("%X", []byte(addr)))
	})

	Convey("test hexademical condition printing", t, func() {
		cond := weave.NewCondition("ext", "typ", []byte{0xCA, 0xFE})
		So(cond.String(), ShouldEqual, "ext/typ/CAFE")
	})
}

func TestDeriveCondition(t *testing.T) {
	maker := weave.NewAddress([]byte("maker"))
	other := weave.NewAddress([]byte("other"))

	Convey("derivation is a pure function of its seeds", t, func() {
		a := weave.DeriveCondition("escrow", "offer", maker, []byte("GOLD"))
		b := weave.DeriveCondition("escrow", "offer", maker.Clone(), []byte("GOLD"))
		So(a.Equals(b), ShouldBeTrue)
		So(a.Address().Equals(b.Address()), ShouldBeTrue)
		So(a.Validate(), ShouldBeNil)

		ext, typ, _, err := a.Parse()
		So(err, ShouldBeNil)
		So(ext, ShouldEqual, "escrow")
		So(typ, ShouldEqual, "offer")
	})

	Convey("any change of seed changes the address", t, func() {
		base := weave.DeriveCondition("escrow", "offer", maker, []byte("GOLD")).Address()
		So(weave.DeriveCondition("escrow", "offer", other, []byte("GOLD")).Address().Equals(base), ShouldBeFalse)
		So(weave.DeriveCondition("escrow", "offer", maker, []byte("SILVER")).Address().Equals(base), ShouldBeFalse)
		So(weave.DeriveCondition("token", "offer", maker, []byte("GOLD")).Address().Equals(base), ShouldBeFalse)
	})

	Convey("seeds do not collide by concatenation", t, func() {
		a := weave.DeriveCondition("escrow", "offer", []byte("AB"), []byte("C"))
		b := weave.DeriveCondition("escrow", "offer", []byte("A"), []byte("BC"))
		So(a.Equals(b), ShouldBeFalse)
	})
}

func TestAddressUnmarshalJSON(t *testing.T) {
	raw := weave.NewAddress([]byte("some address"))
	bech, err := raw.Bech32("tok")
	require.NoError(t, err)

	cond := weave.NewCondition("foo", "bar", []byte("conditiondata"))

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr weave.Address
	}{
		"default decoding": {
			json:     fmt.Sprintf(`"%x"`, []byte(raw)),
			wantAddr: raw,
		},
		"hex decoding": {
			json:     fmt.Sprintf(`"hex:%x"`, []byte(raw)),
			wantAddr: raw,
		},
		"bech32 decoding": {
			json:     fmt.Sprintf(`"bech32:%s"`, bech),
			wantAddr: raw,
		},
		"cond decoding": {
			json:     `"cond:foo/bar/636f6e646974696f6e64617461"`,
			wantAddr: cond.Address(),
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"cond:foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"short address": {
			json:    `"6865782d61646472"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrType,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
		"zero hex address": {
			json:     `"hex:"`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a weave.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil {
				assert.Equal(t, tc.wantAddr, a)
			}
		})
	}
}

func TestAddressJSONRoundTrip(t *testing.T) {
	addr := weave.NewAddress([]byte("round trip"))
	raw, err := json.Marshal(addr)
	require.NoError(t, err)

	var got weave.Address
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, addr, got)
}

func TestConditionUnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantCond weave.Condition
	}{
		"default decoding": {
			json:     `"foo/bar/636f6e646974696f6e64617461"`,
			wantCond: weave.NewCondition("foo", "bar", []byte("conditiondata")),
		},
		"zero value": {
			json:     `""`,
			wantCond: nil,
		},
		"invalid condition format": {
			json:    `"foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got weave.Condition
			err := json.Unmarshal([]byte(tc.json), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil {
				assert.Equal(t, tc.wantCond, got)
			}
		})
	}
}

func TestValidateAddress(t *testing.T) {
	assert.NoError(t, weave.NewAddress([]byte("x")).Validate())
	assert.True(t, errors.ErrInput.Is(weave.Address(nil).Validate()))
	assert.True(t, errors.ErrInput.Is(weave.Address("short").Validate()))
}
