// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shiftnrg/shiftd/account"
	"github.com/shiftnrg/shiftd/fault"
	"github.com/shiftnrg/shiftd/ledger"
)

const (
	alice = account.Address("12345S")
	bob   = account.Address("67890S")
)

func TestMergeRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i += 1 {
		f := ledger.Fields{
			LockedBalance: uint64(r.Int63n(1 << 62)),
			LockedBytes:   uint64(r.Int63n(1 << 62)),
			PinnedBytes:   uint64(r.Int63n(1 << 62)),
		}
		d := ledger.Delta{
			LockedBalance: r.Int63n(int64(f.LockedBalance)+1) - int64(f.LockedBalance/2),
			LockedBytes:   -r.Int63n(int64(f.LockedBytes) + 1),
			PinnedBytes:   r.Int63n(1 << 40),
		}
		merged, err := f.Merge(d)
		assert.Nil(t, err, "%d: merge", i)
		restored, err := merged.Merge(d.Negate())
		assert.Nil(t, err, "%d: merge negated", i)
		assert.Equal(t, f, restored, "%d: not restored", i)
	}
}

func TestMergeLimits(t *testing.T) {
	f := ledger.Fields{LockedBalance: 10, LockedBytes: 5}

	result, err := f.Merge(ledger.Delta{LockedBytes: -6})
	assert.Equal(t, fault.NegativeBalance, err, "underflow")
	assert.Equal(t, f, result, "fields changed on failure")

	// an earlier field must not be applied if a later one fails
	result, err = f.Merge(ledger.Delta{LockedBalance: -10, PinnedBytes: -1})
	assert.Equal(t, fault.NegativeBalance, err, "partial merge")
	assert.Equal(t, f, result, "fields changed on failure")

	big := ledger.Fields{LockedBytes: math.MaxUint64 - 1}
	_, err = big.Merge(ledger.Delta{LockedBytes: 2})
	assert.Equal(t, fault.FieldOverflow, err, "overflow")

	_, err = big.Merge(ledger.Delta{LockedBytes: math.MinInt64})
	assert.Nil(t, err, "minimum int64")

	_, err = ledger.Fields{}.Merge(ledger.Delta{LockedBytes: math.MinInt64})
	assert.Equal(t, fault.NegativeBalance, err, "minimum int64 underflow")
}

func TestAccountRecord(t *testing.T) {
	s, l := setup(t)
	defer teardown(s)

	_, err := l.Account(alice)
	assert.Equal(t, fault.AccountNotFound, err, "missing account")

	a := &ledger.Account{
		Address:         alice,
		Balance:         5000,
		MultiMin:        2,
		MultiSignatures: [][]byte{make([]byte, 32), append(make([]byte, 31), 1)},
	}
	assert.Nil(t, l.PutAccount(a), "put")

	b, err := l.Account(alice)
	assert.Nil(t, err, "get")
	assert.Equal(t, a.Balance, b.Balance, "balance")
	assert.Equal(t, a.MultiMin, b.MultiMin, "multimin")
	assert.Equal(t, a.MultiSignatures, b.MultiSignatures, "keys")
	assert.True(t, b.IsMultisig(), "multisig")
}

func TestConfirmedMerge(t *testing.T) {
	s, l := setup(t)
	defer teardown(s)

	assert.Nil(t, l.PutAccount(&ledger.Account{Address: alice, Balance: 1000}), "put alice")
	assert.Nil(t, l.PutAccount(&ledger.Account{Address: bob, Balance: 1000}), "put bob")

	c := l.Confirmed()
	f, err := c.Merge(alice, ledger.Delta{LockedBalance: 400, LockedBytes: 30}, 99, 3)
	assert.Nil(t, err, "merge alice")
	assert.Equal(t, ledger.Fields{LockedBalance: 400, LockedBytes: 30}, f, "alice fields")

	_, err = c.Merge(bob, ledger.Delta{LockedBalance: 100, LockedBytes: 7}, 99, 3)
	assert.Nil(t, err, "merge bob")

	assert.Equal(t, ledger.Fields{LockedBalance: 500, LockedBytes: 37}, l.Totals(), "totals")

	a, err := l.Account(alice)
	assert.Nil(t, err, "account")
	assert.Equal(t, uint64(99), a.BlockId, "block id")
	assert.Equal(t, uint64(3), a.Round, "round")

	_, err = c.Merge(alice, ledger.Delta{LockedBalance: 601}, 100, 3)
	assert.Equal(t, fault.LockedExceedsBalance, err, "locked above balance")
	assert.Equal(t, ledger.Fields{LockedBalance: 400, LockedBytes: 30}, c.Fields(alice), "changed after failure")

	_, err = c.Merge(alice, ledger.Delta{LockedBalance: -400, LockedBytes: -30}, 101, 3)
	assert.Nil(t, err, "undo alice")
	assert.Equal(t, ledger.Fields{LockedBalance: 100, LockedBytes: 7}, l.Totals(), "totals after undo")
}

func TestConfirmedMergeInBatch(t *testing.T) {
	s, l := setup(t)
	defer teardown(s)

	assert.Nil(t, l.PutAccount(&ledger.Account{Address: alice, Balance: 1000}), "put")

	trx := s.Transaction()
	assert.Nil(t, trx.Begin(), "begin")
	_, err := l.Confirmed().Merge(alice, ledger.Delta{LockedBalance: 10}, 1, 1)
	assert.Nil(t, err, "merge")
	assert.Equal(t, uint64(10), l.Confirmed().Fields(alice).LockedBalance, "pending read")
	trx.Abort()

	assert.Equal(t, ledger.Fields{}, l.Confirmed().Fields(alice), "aborted merge visible")
	assert.Equal(t, ledger.Fields{}, l.Totals(), "aborted totals visible")
}

func TestUnconfirmedShadow(t *testing.T) {
	s, l := setup(t)
	defer teardown(s)

	assert.Nil(t, l.PutAccount(&ledger.Account{Address: alice, Balance: 1000}), "put")
	_, err := l.Confirmed().Merge(alice, ledger.Delta{LockedBalance: 100, LockedBytes: 9}, 1, 1)
	assert.Nil(t, err, "confirmed merge")

	u := l.Unconfirmed()
	assert.Equal(t, l.Confirmed().Fields(alice), u.Fields(alice), "shadow defaults to confirmed")

	f, err := u.Merge(alice, ledger.Delta{PinnedBytes: 3}, 0, 0)
	assert.Nil(t, err, "unconfirmed merge")
	assert.Equal(t, ledger.Fields{LockedBalance: 100, LockedBytes: 9, PinnedBytes: 3}, f, "shadow")
	assert.Equal(t, uint64(0), l.Confirmed().Fields(alice).PinnedBytes, "confirmed touched")

	assert.Nil(t, l.ResetUnconfirmed(alice), "reset")
	assert.Equal(t, l.Confirmed().Fields(alice), u.Fields(alice), "reset shadow")

	_, err = u.Merge(alice, ledger.Delta{PinnedBytes: 1}, 0, 0)
	assert.Nil(t, err, "alice merge")
	_, err = u.Merge(bob, ledger.Delta{PinnedBytes: 2}, 0, 0)
	assert.Nil(t, err, "bob merge")
	assert.Nil(t, l.ClearUnconfirmed(), "clear")
	assert.Equal(t, l.Confirmed().Fields(alice), u.Fields(alice), "alice cleared")
	assert.Equal(t, ledger.Fields{}, u.Fields(bob), "bob cleared")
}

func TestSerialize(t *testing.T) {
	s, l := setup(t)
	defer teardown(s)

	u := l.Unconfirmed()

	const workers = 20
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i += 1 {
		go func() {
			defer wg.Done()
			err := l.Serialize(alice, func() error {
				_, err := u.Merge(alice, ledger.Delta{LockedBytes: 1}, 0, 0)
				return err
			})
			assert.Nil(t, err, "serialized merge")
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(workers), u.Fields(alice).LockedBytes, "lost update")
}
