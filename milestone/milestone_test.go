// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package milestone_test

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shiftnrg/shiftd/fault"
	"github.com/shiftnrg/shiftd/milestone"
)

var rewards = []milestone.Entry[milestone.Reward]{
	{Height: 1, Params: milestone.Reward{Reward: 0}},
	{Height: 10, Params: milestone.Reward{Reward: 100000000}},
	{Height: 11, Params: milestone.Reward{Reward: 30000000}},
	{Height: 12, Params: milestone.Reward{Reward: 20000000}},
	{Height: 13, Params: milestone.Reward{Reward: 100000000}},
	{Height: 828000, Params: milestone.Reward{Reward: 110000000}},
	{Height: 1996000, Params: milestone.Reward{Reward: 90000000, Salary: 10000000}},
	{Height: 3164000, Params: milestone.Reward{Reward: 70000000, Salary: 8000000}},
	{Height: 4332000, Params: milestone.Reward{Reward: 50000000, Salary: 6000000}},
	{Height: 5500000, Params: milestone.Reward{Reward: 30000000, Salary: 4000000}},
}

const genesisSupply = 1009000000000000

func TestNewRejectsBadTables(t *testing.T) {
	_, err := milestone.New([]milestone.Entry[int]{})
	assert.Equal(t, fault.MilestoneTableEmpty, err, "empty table")

	_, err = milestone.New([]milestone.Entry[int]{{Height: 2, Params: 1}})
	assert.Equal(t, fault.MilestoneTableStart, err, "table not starting at 1")

	_, err = milestone.New([]milestone.Entry[int]{{Height: 1}, {Height: 5}, {Height: 5}})
	assert.Equal(t, fault.MilestoneTableNotOrdered, err, "duplicate height")
}

func TestIndex(t *testing.T) {
	table, err := milestone.New(rewards)
	assert.Nil(t, err, "table")

	items := []struct {
		height uint64
		index  int
	}{
		{1, 0},
		{9, 0},
		{10, 1},
		{11, 2},
		{12, 3},
		{13, 4},
		{827999, 4},
		{828000, 5},
		{1995999, 5},
		{1996000, 6},
		{5500000, 9},
		{99999999, 9},
	}

	for _, item := range items {
		i, err := table.Index(item.height)
		assert.Nil(t, err, "height %d", item.height)
		assert.Equal(t, item.index, i, "wrong index for height %d", item.height)
	}
}

func TestIndexInvalidHeight(t *testing.T) {
	table, _ := milestone.New(rewards)
	_, err := table.Index(0)
	assert.Equal(t, fault.InvalidHeight, err, "height zero accepted")

	_, err = table.Params(0)
	assert.Equal(t, fault.InvalidHeight, err, "height zero accepted by params")
}

func TestIndexMonotonic(t *testing.T) {
	table, _ := milestone.New(rewards)

	r := rand.New(rand.NewSource(1))
	heights := make([]uint64, 2000)
	for i := range heights {
		heights[i] = uint64(r.Int63n(6000000)) + 1
	}
	sort.Slice(heights, func(i, j int) bool { return heights[i] < heights[j] })

	last := 0
	for _, h := range heights {
		i, err := table.Index(h)
		assert.Nil(t, err, "height %d", h)
		assert.True(t, i >= last, "index decreased at height %d", h)
		last = i
	}
}

func TestSameAlgorithmForAllPayloads(t *testing.T) {
	fees, err := milestone.NewFeeSchedule([]milestone.Entry[milestone.Fees]{
		{Height: 1, Params: milestone.Fees{Lock: 10}},
		{Height: 10, Params: milestone.Fees{Lock: 20}},
	})
	assert.Nil(t, err, "fees")
	locks, err := milestone.NewLockSchedule([]milestone.Entry[milestone.LockSettings]{
		{Height: 1, Params: milestone.LockSettings{Replication: 3, RatioFactor: 100, Buffer: 10}},
		{Height: 10, Params: milestone.LockSettings{Replication: 2, RatioFactor: 100, Buffer: 10}},
	})
	assert.Nil(t, err, "locks")

	for h := uint64(1); h < 20; h += 1 {
		fi, _ := fees.Index(h)
		li, _ := locks.Index(h)
		assert.Equal(t, fi, li, "tables disagree at %d", h)
	}

	f, _ := fees.Params(10)
	assert.Equal(t, uint64(20), f.Lock, "wrong fee")
	r, _ := locks.Replication(9)
	assert.Equal(t, uint64(3), r, "wrong replication")
}

func TestCompensation(t *testing.T) {
	items := []struct {
		settings milestone.LockSettings
		expected float64
	}{
		{milestone.LockSettings{Replication: 3, Buffer: 10}, 0.3},
		{milestone.LockSettings{Replication: 2, Buffer: 10}, 0.5},
		{milestone.LockSettings{Replication: 3, Buffer: 100}, 0.33},
		{milestone.LockSettings{Replication: 0, Buffer: 10}, 0},
	}
	for _, item := range items {
		assert.InDelta(t, item.expected, item.settings.Compensation(), 1e-12, "settings: %+v", item.settings)
	}
}

func TestSupply(t *testing.T) {
	b, err := milestone.NewBlockReward(rewards, genesisSupply)
	assert.Nil(t, err, "reward table")

	items := []struct {
		height uint64
		supply uint64
	}{
		{1, genesisSupply},
		{9, genesisSupply},
		{10, genesisSupply},                         // boundary: new milestone adds nothing
		{11, genesisSupply + 100000000},             // one block at 1.0
		{12, genesisSupply + 100000000 + 30000000},  // boundary
		{15, genesisSupply + 150000000 + 200000000}, // two blocks into the 1.0 milestone
		{828000, genesisSupply + 150000000 + (828000-13)*100000000},
		{828001, genesisSupply + 150000000 + (828000-13)*100000000 + 110000000},
	}

	for _, item := range items {
		s, err := b.Supply(item.height)
		assert.Nil(t, err, "height %d", item.height)
		assert.Equal(t, item.supply, s, "wrong supply at %d", item.height)
	}
}

func TestSupplyAtEveryBoundary(t *testing.T) {
	b, _ := milestone.NewBlockReward(rewards, genesisSupply)

	completed := uint64(genesisSupply)
	for i := 1; i < len(rewards); i += 1 {
		completed += (rewards[i].Height - rewards[i-1].Height) * rewards[i-1].Params.Reward
		s, err := b.Supply(rewards[i].Height)
		assert.Nil(t, err, "boundary %d", rewards[i].Height)
		assert.Equal(t, completed, s, "boundary %d", rewards[i].Height)
	}
}

func TestRewardAndSalary(t *testing.T) {
	b, _ := milestone.NewBlockReward(rewards, genesisSupply)

	r, err := b.Reward(2000000)
	assert.Nil(t, err, "reward")
	assert.Equal(t, uint64(90000000), r, "wrong reward")

	s, err := b.Salary(2000000)
	assert.Nil(t, err, "salary")
	assert.Equal(t, uint64(10000000), s, "wrong salary")

	_, err = b.Supply(0)
	assert.Equal(t, fault.InvalidHeight, err, "height zero accepted")
}
