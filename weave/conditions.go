package weave

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/iov-one/tokenescrow/errors"
)

// (?s) lets the binary data section contain newlines.
var conditionFormat = regexp.MustCompile(`(?s)^([a-zA-Z0-9_\-]{3,8})/([a-zA-Z0-9_\-]{3,8})/(.+)$`)

// Condition names who may authorize an action, formatted as
//
//   <extension>/<type>/<data>
//
// Only the extension named in the condition places it in the context. An
// address derived from a condition has no private key, the extension code
// is its only authority.
type Condition []byte

func NewCondition(ext, typ string, data []byte) Condition {
	pre := fmt.Sprintf("%s/%s/", ext, typ)
	return append([]byte(pre), data...)
}

// DeriveCondition builds a condition whose data is the ordered list of
// seeds, each one prefixed with its length. The result is a pure function
// of the input: the same seeds always build the same condition, and two
// different seed lists never do.
func DeriveCondition(ext, typ string, seeds ...[]byte) Condition {
	var data []byte
	for _, s := range seeds {
		var n [binary.MaxVarintLen64]byte
		l := binary.PutUvarint(n[:], uint64(len(s)))
		data = append(data, n[:l]...)
		data = append(data, s...)
	}
	return NewCondition(ext, typ, data)
}

// Parse splits the condition into extension, type and data.
func (c Condition) Parse() (string, string, []byte, error) {
	m := conditionFormat.FindSubmatch(c)
	if m == nil {
		return "", "", nil, errors.Wrapf(errors.ErrInput, "condition %X", []byte(c))
	}
	return string(m[1]), string(m[2]), m[3], nil
}

// Address is the hash of the condition.
func (c Condition) Address() Address {
	return NewAddress(c)
}

func (c Condition) Equals(b Condition) bool {
	return bytes.Equal(c, b)
}

// String prints the data section in hex.
func (c Condition) String() string {
	ext, typ, data, err := c.Parse()
	if err != nil {
		return fmt.Sprintf("invalid condition %X", []byte(c))
	}
	return fmt.Sprintf("%s/%s/%X", ext, typ, data)
}

func (c Condition) Validate() error {
	if !conditionFormat.Match(c) {
		return errors.Wrapf(errors.ErrInput, "condition %X", []byte(c))
	}
	return nil
}

// MarshalJSON uses the String form. A nil condition is an empty string.
func (c Condition) MarshalJSON() ([]byte, error) {
	if c == nil {
		return json.Marshal("")
	}
	return json.Marshal(c.String())
}

func (c *Condition) UnmarshalJSON(raw []byte) error {
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return errors.Wrapf(errors.ErrInput, "condition json: %s", err)
	}
	cond, err := parseCondition(text)
	if err != nil {
		return err
	}
	*c = cond
	return nil
}

// parseCondition reads the String form. An empty text is a nil condition.
func parseCondition(text string) (Condition, error) {
	if text == "" {
		return nil, nil
	}
	parts := strings.SplitN(text, "/", 3)
	if len(parts) != 3 {
		return nil, errors.Wrapf(errors.ErrInput, "condition %q", text)
	}
	data, err := hex.DecodeString(parts[2])
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "condition data: %s", err)
	}
	return NewCondition(parts[0], parts[1], data), nil
}
