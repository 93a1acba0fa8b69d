package app

import (
	"context"
	"testing"

	"github.com/iov-one/tokenescrow/errors"
	"github.com/iov-one/tokenescrow/weavetest"
	"github.com/iov-one/tokenescrow/weavetest/assert"
	"github.com/iov-one/tokenescrow/x/utils"
)

func TestChain(t *testing.T) {
	c1 := &weavetest.Decorator{}
	c2 := &weavetest.Decorator{}
	var skipped *weavetest.Decorator
	h := &weavetest.Handler{}

	stack := ChainDecorators(
		utils.NewRecovery(),
		c1,
		skipped,
		nil,
		utils.NewLogging(),
	).Chain(c2).WithHandler(h)

	ctx := context.Background()
	_, err := stack.Check(ctx, nil, &weavetest.Tx{})
	assert.Nil(t, err)
	_, err = stack.Deliver(ctx, nil, &weavetest.Tx{})
	assert.Nil(t, err)

	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 2, h.CallCount())

	// an error stops the chain
	c1.DeliverErr = errors.ErrUnauthorized
	_, err = stack.Deliver(ctx, nil, &weavetest.Tx{})
	assert.IsErr(t, errors.ErrUnauthorized, err)
	assert.Equal(t, 3, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestChainRecoversPanics(t *testing.T) {
	stack := ChainDecorators(utils.NewRecovery()).WithHandler(weavetest.PanicHandler{})

	_, err := stack.Check(context.Background(), nil, &weavetest.Tx{})
	assert.IsErr(t, errors.ErrPanic, err)
	_, err = stack.Deliver(context.Background(), nil, &weavetest.Tx{})
	assert.IsErr(t, errors.ErrPanic, err)
}
