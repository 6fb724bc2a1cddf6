// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"math"

	"github.com/shiftnrg/shiftd/fault"
)

// Fields - the storage accounting fields of an account
//
// both the confirmed and the unconfirmed projection carry one copy
type Fields struct {
	LockedBalance uint64 `json:"lockedBalance"`
	LockedBytes   uint64 `json:"lockedBytes"`
	PinnedBytes   uint64 `json:"pinnedBytes"`
}

// Delta - signed change to Fields
type Delta struct {
	LockedBalance int64 `json:"lockedBalance"`
	LockedBytes   int64 `json:"lockedBytes"`
	PinnedBytes   int64 `json:"pinnedBytes"`
}

// Negate - the inverse delta
func (d Delta) Negate() Delta {
	return Delta{
		LockedBalance: -d.LockedBalance,
		LockedBytes:   -d.LockedBytes,
		PinnedBytes:   -d.PinnedBytes,
	}
}

// IsZero - true if merging would change nothing
func (d Delta) IsZero() bool {
	return 0 == d.LockedBalance && 0 == d.LockedBytes && 0 == d.PinnedBytes
}

// Merge - apply a delta, failing rather than wrapping
//
// all or nothing: on error the receiver is returned unchanged
func (f Fields) Merge(d Delta) (Fields, error) {
	lockedBalance, err := add(f.LockedBalance, d.LockedBalance)
	if nil != err {
		return f, err
	}
	lockedBytes, err := add(f.LockedBytes, d.LockedBytes)
	if nil != err {
		return f, err
	}
	pinnedBytes, err := add(f.PinnedBytes, d.PinnedBytes)
	if nil != err {
		return f, err
	}
	return Fields{
		LockedBalance: lockedBalance,
		LockedBytes:   lockedBytes,
		PinnedBytes:   pinnedBytes,
	}, nil
}

func add(value uint64, delta int64) (uint64, error) {
	if delta >= 0 {
		if value > math.MaxUint64-uint64(delta) {
			return value, fault.FieldOverflow
		}
		return value + uint64(delta), nil
	}

	// -delta is not representable for MinInt64
	magnitude := uint64(-(delta + 1)) + 1
	if magnitude > value {
		return value, fault.NegativeBalance
	}
	return value - magnitude, nil
}
