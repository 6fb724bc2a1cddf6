// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/shiftnrg/shiftd/fault"
)

// FetchCursor - cursor structure
type FetchCursor struct {
	pool     *PoolHandle
	maxRange util.Range
}

// NewFetchCursor - initialise a cursor to the start of a key range
func (p *PoolHandle) NewFetchCursor() *FetchCursor {
	return &FetchCursor{
		pool: p,
		maxRange: util.Range{
			Start: []byte{p.prefix}, // Start of key range, included in the range
			Limit: p.limit,          // Limit of key range, excluded from the range
		},
	}
}

// Seek - move cursor to specific key position
func (cursor *FetchCursor) Seek(key []byte) *FetchCursor {
	cursor.maxRange.Start = cursor.pool.prefixKey(key)
	return cursor
}

// Prefix - restrict the cursor to keys beginning with a prefix
func (cursor *FetchCursor) Prefix(prefix []byte) *FetchCursor {
	r := util.BytesPrefix(cursor.pool.prefixKey(prefix))
	cursor.maxRange = *r
	return cursor
}

// Fetch - return some elements starting from the cursor position
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if nil == cursor {
		return nil, fault.InvalidCursor
	}
	if count <= 0 {
		return nil, fault.InvalidCount
	}

	results := make([]Element, 0, count)
	err := cursor.each(false, func(e Element) bool {
		results = append(results, e)
		return len(results) < count
	})
	if nil != err {
		return nil, err
	}

	// continue after the last key on the next call
	if n := len(results); n > 0 {
		next := cursor.pool.prefixKey(results[n-1].Key)
		cursor.maxRange.Start = append(next, 0x00)
	}
	return results, nil
}

// FetchReverse - return up to count elements from the end of the range
// in descending key order
func (cursor *FetchCursor) FetchReverse(count int) ([]Element, error) {
	if nil == cursor {
		return nil, fault.InvalidCursor
	}
	if count <= 0 {
		return nil, fault.InvalidCount
	}

	results := make([]Element, 0, count)
	err := cursor.each(true, func(e Element) bool {
		results = append(results, e)
		return len(results) < count
	})
	return results, err
}

// Map - run a function on all elements in the range
func (cursor *FetchCursor) Map(f func(key []byte, value []byte) error) error {
	if nil == cursor {
		return fault.InvalidCursor
	}

	var err error
	iterErr := cursor.each(false, func(e Element) bool {
		err = f(e.Key, e.Value)
		return nil == err
	})
	if nil != err {
		return err
	}
	return iterErr
}

// iterate the range, stopping when f returns false
func (cursor *FetchCursor) each(reverse bool, f func(Element) bool) error {
	s := cursor.pool.store
	s.RLock()
	defer s.RUnlock()
	db, err := s.database()
	if nil != err {
		return err
	}

	iter := db.NewIterator(&cursor.maxRange, nil)
	defer iter.Release()

	step := iter.Next
	if reverse {
		if !iter.Last() {
			return iter.Error()
		}
		if !f(copyElement(iter.Key(), iter.Value())) {
			return iter.Error()
		}
		step = iter.Prev
	}

	for step() {
		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		if !f(copyElement(iter.Key(), iter.Value())) {
			break
		}
	}
	return iter.Error()
}
