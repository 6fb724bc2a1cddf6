// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package milestone

import (
	"math"
)

// LockSettings - storage pricing parameters
type LockSettings struct {
	Replication uint64 `gluamapper:"replication" json:"replication"`
	RatioFactor uint64 `gluamapper:"ratio_factor" json:"ratioFactor"`
	Buffer      uint64 `gluamapper:"buffer" json:"buffer"`
}

// Compensation - reciprocal replication quantised to 1/buffer steps
//
// replication 3, buffer 10 gives 0.3
func (s LockSettings) Compensation() float64 {
	if 0 == s.Replication || 0 == s.Buffer {
		return 0
	}
	buffer := float64(s.Buffer)
	return math.Round((1/float64(s.Replication))*buffer) / buffer
}

// LockSchedule - lock settings by height
type LockSchedule struct {
	*Table[LockSettings]
}

// NewLockSchedule - create from milestone entries
func NewLockSchedule(entries []Entry[LockSettings]) (*LockSchedule, error) {
	t, err := New(entries)
	if nil != err {
		return nil, err
	}
	return &LockSchedule{Table: t}, nil
}

// Replication - replication factor at a height
func (l *LockSchedule) Replication(height uint64) (uint64, error) {
	s, err := l.Params(height)
	return s.Replication, err
}
