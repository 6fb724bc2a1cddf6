// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shiftnrg/shiftd/chain"
	"github.com/shiftnrg/shiftd/milestone"
)

func TestValid(t *testing.T) {
	assert.True(t, chain.Valid(chain.Shift), "shift")
	assert.True(t, chain.Valid(chain.Testing), "testing")
	assert.True(t, chain.Valid(chain.Local), "local")
	assert.False(t, chain.Valid("bitcoin"), "bitcoin")
}

func TestGetTablesAreUsable(t *testing.T) {
	for _, name := range []string{chain.Shift, chain.Testing, chain.Local} {
		p, err := chain.Get(name)
		assert.Nil(t, err, "chain %s", name)

		_, err = milestone.NewFeeSchedule(p.Fees)
		assert.Nil(t, err, "%s fees", name)
		_, err = milestone.NewBlockReward(p.Rewards, p.TotalAmount)
		assert.Nil(t, err, "%s rewards", name)
		_, err = milestone.NewLockSchedule(p.Locks)
		assert.Nil(t, err, "%s locks", name)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	a, _ := chain.Get(chain.Shift)
	a.Locks[0].Params.Replication = 99

	b, _ := chain.Get(chain.Shift)
	assert.Equal(t, uint64(3), b.Locks[0].Params.Replication, "defaults were modified")
}

func TestGetUnknown(t *testing.T) {
	_, err := chain.Get("nope")
	assert.NotNil(t, err, "unknown chain accepted")
}
