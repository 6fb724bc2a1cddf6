// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package milestone

import (
	"github.com/shiftnrg/shiftd/fault"
)

// Entry - parameters that take effect from a block height onwards
type Entry[T any] struct {
	Height uint64 `gluamapper:"height" json:"height"`
	Params T      `gluamapper:"params" json:"params"`
}

// Table - immutable list of entries in ascending height order
type Table[T any] struct {
	entries []Entry[T]
}

// New - validate and copy a list of entries
//
// the first entry must be at height 1 so that every valid height
// resolves to some entry
func New[T any](entries []Entry[T]) (*Table[T], error) {
	if 0 == len(entries) {
		return nil, fault.MilestoneTableEmpty
	}
	if 1 != entries[0].Height {
		return nil, fault.MilestoneTableStart
	}
	for i := 1; i < len(entries); i += 1 {
		if entries[i].Height <= entries[i-1].Height {
			return nil, fault.MilestoneTableNotOrdered
		}
	}

	t := &Table[T]{
		entries: make([]Entry[T], len(entries)),
	}
	copy(t.entries, entries)
	return t, nil
}

// Index - position of the entry in force at a height
func (t *Table[T]) Index(height uint64) (int, error) {
	if height < 1 {
		return 0, fault.InvalidHeight
	}
	for i := len(t.entries) - 1; i >= 0; i -= 1 {
		if t.entries[i].Height <= height {
			return i, nil
		}
	}
	return 0, nil // not reached: entries[0].Height == 1
}

// Params - parameters in force at a height
func (t *Table[T]) Params(height uint64) (T, error) {
	i, err := t.Index(height)
	if nil != err {
		var zero T
		return zero, err
	}
	return t.entries[i].Params, nil
}

// Entry - the i'th entry
func (t *Table[T]) Entry(i int) Entry[T] {
	return t.entries[i]
}

// Len - number of milestones
func (t *Table[T]) Len() int {
	return len(t.entries)
}
