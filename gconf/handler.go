package gconf

import (
	"reflect"

	"github.com/iov-one/tokenescrow/errors"
	"github.com/iov-one/tokenescrow/weave"
	"github.com/iov-one/tokenescrow/x"
	"github.com/tendermint/tendermint/libs/common"
)

const updateConfigurationCost = 50

// OwnedConfig is a configuration that only its owner may change.
type OwnedConfig interface {
	Configuration
	GetOwner() weave.Address
}

// UpdateConfigurationHandler applies a patch to the stored configuration of
// an extension. The message must carry the patch in a field named Patch, of
// the configuration type. Zero value fields of the patch are ignored.
type UpdateConfigurationHandler struct {
	pkg  string
	typ  reflect.Type
	auth x.Authenticator
}

var _ weave.Handler = UpdateConfigurationHandler{}

// NewUpdateConfigurationHandler returns a handler updating the
// configuration stored for pkg. config is only used to learn the type.
func NewUpdateConfigurationHandler(pkg string, config OwnedConfig, auth x.Authenticator) UpdateConfigurationHandler {
	return UpdateConfigurationHandler{
		pkg:  pkg,
		typ:  reflect.TypeOf(config).Elem(),
		auth: auth,
	}
}

func (h UpdateConfigurationHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if err := h.update(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: updateConfigurationCost}, nil
}

func (h UpdateConfigurationHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	if err := h.update(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Tags: []common.KVPair{
		weave.Tag("action", "update_configuration"),
		weave.Tag("extension", h.pkg),
	}}, nil
}

func (h UpdateConfigurationHandler) update(ctx weave.Context, db weave.KVStore, tx weave.Tx) error {
	current := reflect.New(h.typ).Interface().(OwnedConfig)
	if err := Load(db, h.pkg, current); err != nil {
		return errors.Wrap(err, "current configuration")
	}
	if owner := current.GetOwner(); owner == nil || !h.auth.HasAddress(ctx, owner) {
		return errors.Wrap(errors.ErrUnauthorized, "configuration owner signature required")
	}

	patch, err := h.patchOf(tx)
	if err != nil {
		return err
	}
	dst, src := reflect.ValueOf(current).Elem(), reflect.ValueOf(patch).Elem()
	for i := 0; i < dst.NumField(); i++ {
		if f := src.Field(i); !isZero(f) {
			dst.Field(i).Set(f)
		}
	}
	return Save(db, h.pkg, current)
}

// patchOf returns the validated Patch field of the transaction message.
func (h UpdateConfigurationHandler) patchOf(tx weave.Tx) (OwnedConfig, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "message")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, "message")
	}

	v := reflect.ValueOf(msg)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return nil, errors.Wrapf(errors.ErrType, "message %T is not a struct pointer", msg)
	}
	field := v.Elem().FieldByName("Patch")
	if !field.IsValid() || field.Type() != reflect.PtrTo(h.typ) {
		return nil, errors.Wrapf(errors.ErrType, "message %T has no Patch of type %s", msg, h.typ)
	}
	if field.IsNil() {
		return nil, errors.Wrap(errors.ErrEmpty, "patch")
	}
	return field.Interface().(OwnedConfig), nil
}

func isZero(v reflect.Value) bool {
	return reflect.DeepEqual(v.Interface(), reflect.Zero(v.Type()).Interface())
}
