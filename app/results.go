package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/tokenescrow/errors"
	"github.com/iov-one/tokenescrow/weave"
)

// ResultSet is the wire form of a list of keys or of values returned by a
// query.
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results" json:"results,omitempty"`
}

func (m *ResultSet) Reset()         { *m = ResultSet{} }
func (m *ResultSet) String() string { return proto.CompactTextString(m) }
func (*ResultSet) ProtoMessage()    {}

// ResultsFromKeys returns a ResultSet of all keys
// given a set of models
func ResultsFromKeys(models []weave.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values
// given a set of models
func ResultsFromValues(models []weave.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues
// and makes then a consistent whole again
func JoinResults(keys, values *ResultSet) ([]weave.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrapf(errors.ErrState, "%d keys and %d values", len(kref), len(vref))
	}
	mods := make([]weave.Model, len(kref))
	for i := range mods {
		mods[i] = weave.Model{
			Key:   kref[i],
			Value: vref[i],
		}
	}
	return mods, nil
}

// UnmarshalOneResult will parse a resultset, and
// it if is not empty, unmarshal the first result into o
func UnmarshalOneResult(bz []byte, o proto.Message) error {
	var res ResultSet
	if err := proto.Unmarshal(bz, &res); err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	if len(res.Results) == 0 {
		return nil
	}
	if err := proto.Unmarshal(res.Results[0], o); err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	return nil
}
