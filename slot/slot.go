// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package slot - forging slot and round arithmetic
//
// all times are whole seconds since the chain epoch
package slot

import (
	"time"
)

// number of slots after which snapshot slot ids wrap around
const snapshotCycle = 100

// Slots - slot calculator for one chain
type Slots struct {
	epoch         time.Time
	interval      uint64 // seconds per slot
	delegates     uint64
	statsInterval uint64
	now           func() time.Time
}

// New - create a slot calculator using the wall clock
func New(epoch time.Time, blockTime time.Duration, delegates uint64, statsInterval uint64) *Slots {
	return NewWithClock(epoch, blockTime, delegates, statsInterval, time.Now)
}

// NewWithClock - create a slot calculator with a specific time source
func NewWithClock(epoch time.Time, blockTime time.Duration, delegates uint64, statsInterval uint64, now func() time.Time) *Slots {
	interval := uint64(blockTime / time.Second)
	if 0 == interval {
		interval = 1
	}
	if 0 == statsInterval {
		statsInterval = 1
	}
	return &Slots{
		epoch:         epoch,
		interval:      interval,
		delegates:     delegates,
		statsInterval: statsInterval,
		now:           now,
	}
}

// EpochTime - seconds since epoch of a wall clock time, zero before epoch
func (s *Slots) EpochTime(t time.Time) uint64 {
	if t.Before(s.epoch) {
		return 0
	}
	return uint64(t.Sub(s.epoch) / time.Second)
}

// Now - current epoch time
func (s *Slots) Now() uint64 {
	return s.EpochTime(s.now())
}

// Number - slot containing an epoch time
func (s *Slots) Number(epochTime uint64) uint64 {
	return epochTime / s.interval
}

// Time - epoch time at the start of a slot
func (s *Slots) Time(slotNumber uint64) uint64 {
	return slotNumber * s.interval
}

// Round - delegate round of a block height
func (s *Slots) Round(height uint64) uint64 {
	if 0 == height {
		return 0
	}
	return (height + s.delegates - 1) / s.delegates
}

// SnapshotKey - identifies the snapshot bucket a slot belongs to
type SnapshotKey struct {
	Round uint64 // slotNumber / active delegates
	Slot  uint64 // snapshot slot id in [statsInterval, 100]
}

// Snapshot - the snapshot bucket for a slot number
//
// slot ids repeat every 100 slots, so only 100/statsInterval distinct
// rows exist and each is overwritten on the next cycle
func (s *Slots) Snapshot(slotNumber uint64) SnapshotKey {
	id := (slotNumber % snapshotCycle) / s.statsInterval * s.statsInterval
	if 0 == id {
		id = snapshotCycle
	}
	round := uint64(0)
	if 0 != s.delegates {
		round = slotNumber / s.delegates
	}
	return SnapshotKey{
		Round: round,
		Slot:  id,
	}
}

// RoundStart - oldest acceptable snapshot time for a read as of an epoch time
//
// one full delegate round before the slot preceding asOf
func (s *Slots) RoundStart(asOf uint64) uint64 {
	n := s.Number(asOf)
	if n > 0 {
		n -= 1
	}
	if n > s.delegates {
		return s.Time(n - s.delegates)
	}
	return s.Time(s.delegates)
}
