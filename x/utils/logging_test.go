package utils

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/iov-one/tokenescrow/errors"
	"github.com/iov-one/tokenescrow/store"
	"github.com/iov-one/tokenescrow/weave"
	"github.com/iov-one/tokenescrow/weavetest"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	cases := map[string]struct {
		handler weave.Handler
		check   bool
		filter  log.Option
		want    []string
		notWant []string
	}{
		"deliver success is info": {
			handler: &weavetest.Handler{DeliverResult: weave.DeliverResult{Log: "swapped"}},
			filter:  log.AllowInfo(),
			want:    []string{"swapped", "duration", "path=escrow/exchange"},
		},
		"check success is debug": {
			handler: &weavetest.Handler{CheckResult: weave.CheckResult{Log: "checked"}},
			check:   true,
			filter:  log.AllowInfo(),
			notWant: []string{"checked"},
		},
		"failure is error": {
			handler: &weavetest.Handler{DeliverErr: errors.ErrInsufficientAmount.New("vault")},
			filter:  log.AllowError(),
			want:    []string{"err=", "insufficient amount"},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var buf bytes.Buffer
			logger := log.NewFilter(log.NewTMLogger(log.NewSyncWriter(&buf)), tc.filter)
			ctx := weave.WithLogger(context.Background(), logger)
			tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "escrow/exchange"}}

			if tc.check {
				_, _ = NewLogging().Check(ctx, store.MemStore(), tx, tc.handler)
			} else {
				_, _ = NewLogging().Deliver(ctx, store.MemStore(), tx, tc.handler)
			}

			out := buf.String()
			for _, w := range tc.want {
				if !strings.Contains(out, w) {
					t.Errorf("want %q in %q", w, out)
				}
			}
			for _, w := range tc.notWant {
				if strings.Contains(out, w) {
					t.Errorf("unexpected %q in %q", w, out)
				}
			}
		})
	}
}
