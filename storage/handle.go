// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/shiftnrg/shiftd/fault"
)

// Handle - the access methods of a pool
type Handle interface {
	Put(key []byte, value []byte) error
	PutN(key []byte, value uint64) error
	Delete(key []byte) error
	Get(key []byte) []byte
	GetN(key []byte) (uint64, bool)
	Has(key []byte) bool
	LastElement() (Element, bool)
	NewFetchCursor() *FetchCursor
}

// PoolHandle - one prefixed table of the store
type PoolHandle struct {
	prefix byte
	limit  []byte
	store  *Store
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Put - store a key/value bytes pair immediately
//
// bypasses any open batch transaction
func (p *PoolHandle) Put(key []byte, value []byte) error {
	p.store.RLock()
	defer p.store.RUnlock()
	db, err := p.store.database()
	if nil != err {
		return err
	}
	return db.Put(p.prefixKey(key), value, nil)
}

// PutN - store a big endian uint64 immediately
func (p *PoolHandle) PutN(key []byte, value uint64) error {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	return p.Put(key, buffer)
}

// Delete - remove a key immediately
func (p *PoolHandle) Delete(key []byte) error {
	p.store.RLock()
	defer p.store.RUnlock()
	db, err := p.store.database()
	if nil != err {
		return err
	}
	return db.Delete(p.prefixKey(key), nil)
}

// Get - read a committed value for a given key
//
// result is nil if the key is not present
func (p *PoolHandle) Get(key []byte) []byte {
	p.store.RLock()
	defer p.store.RUnlock()
	db, err := p.store.database()
	if nil != err {
		return nil
	}
	value, err := db.Get(p.prefixKey(key), nil)
	if leveldb.ErrNotFound == err {
		return nil
	}
	fault.PanicIfError("pool.Get", err)
	return value
}

// GetN - read a record and decode first 8 bytes as big endian uint64
//
// second parameter is false if record was not found
func (p *PoolHandle) GetN(key []byte) (uint64, bool) {
	buffer := p.Get(key)
	if nil == buffer {
		return 0, false
	}
	if len(buffer) < 8 {
		fault.Panicf("pool.GetN truncated record for: %x", key)
	}
	return binary.BigEndian.Uint64(buffer[:8]), true
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) bool {
	p.store.RLock()
	defer p.store.RUnlock()
	db, err := p.store.database()
	if nil != err {
		return false
	}
	found, err := db.Has(p.prefixKey(key), nil)
	fault.PanicIfError("pool.Has", err)
	return found
}

// LastElement - the element with the highest key in the pool
func (p *PoolHandle) LastElement() (Element, bool) {
	return p.lastIn(ldb_util.Range{
		Start: []byte{p.prefix},
		Limit: p.limit,
	})
}

// LastBefore - the element with the highest key strictly below limit
func (p *PoolHandle) LastBefore(limit []byte) (Element, bool) {
	return p.lastIn(ldb_util.Range{
		Start: []byte{p.prefix},
		Limit: p.prefixKey(limit),
	})
}

func (p *PoolHandle) lastIn(maxRange ldb_util.Range) (Element, bool) {
	p.store.RLock()
	defer p.store.RUnlock()
	db, err := p.store.database()
	if nil != err {
		return Element{}, false
	}

	iter := db.NewIterator(&maxRange, nil)

	found := false
	result := Element{}
	if iter.Last() {
		result = copyElement(iter.Key(), iter.Value())
		found = true
	}
	iter.Release()
	fault.PanicIfError("pool.lastIn", iter.Error())
	return result, found
}

// strip the prefix and copy out of iterator owned memory
func copyElement(key []byte, value []byte) Element {
	dataKey := make([]byte, len(key)-1)
	copy(dataKey, key[1:])

	dataValue := make([]byte, len(value))
	copy(dataValue, value)

	return Element{
		Key:   dataKey,
		Value: dataValue,
	}
}
