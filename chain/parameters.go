// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"fmt"
	"time"

	"github.com/shiftnrg/shiftd/milestone"
)

// Parameters - protocol constants and milestone tables of a chain
type Parameters struct {
	Name string

	BlockTime       time.Duration
	ActiveDelegates uint64
	BlockSlotWindow uint64 // blocks within which block stats may be referenced
	Epoch           time.Time
	TotalAmount     uint64 // genesis supply
	FixedPoint      uint64

	// storage oracle defaults
	BlockStatsInterval  uint64
	LookupPerIterations uint64
	MaxRemovalMarks     uint64

	Fees    []milestone.Entry[milestone.Fees]
	Rewards []milestone.Entry[milestone.Reward]
	Locks   []milestone.Entry[milestone.LockSettings]
}

var mainFees = []milestone.Entry[milestone.Fees]{
	{
		Height: 1,
		Params: milestone.Fees{
			Send:            10000000,   // 0.1
			Vote:            100000000,  // 1
			SecondSignature: 500000000,  // 5
			Delegate:        6000000000, // 60
			MultiSignature:  500000000,  // 5
			Dapp:            2500000000, // 25
			Lock:            10000000,   // 0.1
			Unlock:          10000000,
			Pin:             10000000,
			Unpin:           10000000,
		},
	},
	{
		Height: 828000,
		Params: milestone.Fees{
			Send:            1000000,    // 0.01
			Vote:            100000000,  // 1
			SecondSignature: 10000000,   // 0.1
			Delegate:        6000000000, // 60
			MultiSignature:  50000000,   // 0.5
			Dapp:            2500000000, // 25
			Lock:            1000000,    // 0.01
			Unlock:          1000000,
			Pin:             1000000,
			Unpin:           1000000,
		},
	},
}

var mainRewards = []milestone.Entry[milestone.Reward]{
	{Height: 1, Params: milestone.Reward{Reward: 0, Salary: 0}},
	{Height: 10, Params: milestone.Reward{Reward: 100000000, Salary: 0}},
	{Height: 11, Params: milestone.Reward{Reward: 30000000, Salary: 0}},
	{Height: 12, Params: milestone.Reward{Reward: 20000000, Salary: 0}},
	{Height: 13, Params: milestone.Reward{Reward: 100000000, Salary: 0}},
	{Height: 828000, Params: milestone.Reward{Reward: 110000000, Salary: 0}},
	{Height: 1996000, Params: milestone.Reward{Reward: 90000000, Salary: 10000000}},
	{Height: 3164000, Params: milestone.Reward{Reward: 70000000, Salary: 8000000}},
	{Height: 4332000, Params: milestone.Reward{Reward: 50000000, Salary: 6000000}},
	{Height: 5500000, Params: milestone.Reward{Reward: 30000000, Salary: 4000000}},
}

var defaultLocks = []milestone.Entry[milestone.LockSettings]{
	{Height: 1, Params: milestone.LockSettings{Replication: 3, RatioFactor: 100, Buffer: 10}},
}

var epoch = time.Date(2016, time.May, 24, 17, 0, 0, 0, time.UTC)

// Get - parameters for a named chain
//
// returns a fresh copy so callers may override tables from configuration
func Get(name string) (*Parameters, error) {
	p := &Parameters{
		Name:                name,
		BlockTime:           27 * time.Second,
		ActiveDelegates:     101,
		BlockSlotWindow:     5,
		Epoch:               epoch,
		TotalAmount:         1009000000000000,
		FixedPoint:          100000000,
		BlockStatsInterval:  10,
		LookupPerIterations: 3,
		MaxRemovalMarks:     3,
		Fees:                append([]milestone.Entry[milestone.Fees](nil), mainFees...),
		Rewards:             append([]milestone.Entry[milestone.Reward](nil), mainRewards...),
		Locks:               append([]milestone.Entry[milestone.LockSettings](nil), defaultLocks...),
	}

	switch name {
	case Shift:
	case Testing:
	case Local:
		// fast iteration on a single machine
		p.BlockTime = 3 * time.Second
		p.ActiveDelegates = 11
	default:
		return nil, fmt.Errorf("chain: %q is not supported", name)
	}
	return p, nil
}
