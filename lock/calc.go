// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lock

import (
	"math"
	"math/bits"

	"github.com/shiftnrg/shiftd/cluster"
	"github.com/shiftnrg/shiftd/fault"
	"github.com/shiftnrg/shiftd/ledger"
)

// CalcLockBytes - bytes granted for locking amount at a height
//
// stats are the block stats the transaction references; a zero
// cluster size means no capacity figure was available for that block
func (e *Engine) CalcLockBytes(height uint64, amount uint64, stats cluster.BlockStats) (uint64, error) {
	settings, err := e.schedule.Params(height)
	if nil != err {
		return 0, err
	}
	return calcLockBytes(settings.RatioFactor, settings.Buffer, settings.Compensation(), amount, stats)
}

func calcLockBytes(ratioFactor uint64, buffer uint64, compensation float64, amount uint64, stats cluster.BlockStats) (uint64, error) {
	if 0 == amount {
		return 0, fault.AmountIsZero
	}
	if 0 == ratioFactor || 0 == buffer || 0 == compensation {
		return 0, fault.InvalidLockSettings
	}
	if 0 == stats.ClusterSize {
		return 0, fault.InsufficientSamples
	}

	totalBytes := float64(stats.ClusterSize)
	lockedBytes := float64(stats.LockedBytes)

	freeBytes := totalBytes - totalBytes/float64(buffer) - lockedBytes
	if freeBytes < 0 {
		return 0, fault.InsufficientCapacity
	}

	divisor := compensation * float64(ratioFactor)
	if lockedBytes > 0 {
		divisor = compensation * (lockedBytes / freeBytes) * float64(ratioFactor)
	}
	lockBytes := math.Round(float64(amount) / divisor)

	available := freeBytes - lockBytes
	if available < 0 {
		return 0, fault.CapacityDeficit(uint64(math.Ceil(-available)))
	}
	if lockBytes >= math.MaxUint64 {
		return 0, fault.FieldOverflow
	}
	return uint64(lockBytes), nil
}

// CalcUnlockBytes - the pro-rata share of locked bytes released by
// unlocking amount
//
// rounds half up using exact integer arithmetic
func CalcUnlockBytes(fields ledger.Fields, amount uint64) (uint64, error) {
	if 0 == fields.LockedBytes {
		return 0, fault.LockedBytesIsZero
	}
	if 0 == fields.LockedBalance {
		return 0, fault.LockedBalanceIsZero
	}
	if amount > fields.LockedBalance {
		return 0, fault.UnlockExceedsLocked
	}

	// amount <= locked balance so the quotient fits in 64 bits
	hi, lo := bits.Mul64(fields.LockedBytes, amount)
	quotient, remainder := bits.Div64(hi, lo, fields.LockedBalance)
	if remainder >= fields.LockedBalance-remainder {
		quotient += 1
	}
	return quotient, nil
}
