// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shiftnrg/shiftd/background"
)

type bg1 struct {
	count int
}

const (
	initialCount1 = 246
	finalCount1   = 987654321
	initialCount2 = 777
	finalCount2   = 897645312
)

func TestBackground(t *testing.T) {
	proc1 := &bg1{
		count: initialCount1,
	}
	proc2 := &bg1{
		count: initialCount2,
	}

	// list of background processes to start
	var processes = background.Processes{
		proc1,
		proc2,
	}

	p := background.Start(processes, t)
	time.Sleep(50 * time.Millisecond)
	p.Stop()

	assert.Equal(t, finalCount1, proc1.count, "process 1 not stopped")
	assert.Equal(t, finalCount2, proc2.count, "process 2 not stopped")

	// second stop is harmless
	p.Stop()
}

func (state *bg1) Run(args interface{}, shutdown <-chan struct{}) {
	t := args.(*testing.T)

	n := 0
	if initialCount1 == state.count {
		n = 1
	} else if initialCount2 == state.count {
		n = 2
	} else {
		t.Errorf("initialisation failed: unexpected initial count: %d", state.count)
	}

loop:
	for {
		select {
		case <-shutdown:
			break loop
		default:
		}
		state.count += 9
		time.Sleep(time.Millisecond)
	}

	switch n {
	case 1:
		state.count = finalCount1
	case 2:
		state.count = finalCount2
	default:
		t.Errorf("unexpected n: %d", n)
	}
}

func TestPeriodic(t *testing.T) {
	calls := int64(0)
	cancelled := int64(0)

	p := background.Periodic{
		Interval: 5 * time.Millisecond,
		F: func(ctx context.Context) {
			if nil != ctx.Err() {
				return
			}
			if 1 == atomic.AddInt64(&calls, 1) {
				// block until shutdown to show the context is cancelled
				<-ctx.Done()
				atomic.StoreInt64(&cancelled, 1)
			}
		},
	}

	h := background.Start(background.Processes{p}, nil)
	time.Sleep(30 * time.Millisecond)
	h.Stop()

	assert.Equal(t, int64(1), atomic.LoadInt64(&calls), "calls while blocked")
	assert.Equal(t, int64(1), atomic.LoadInt64(&cancelled), "context not cancelled")
}
