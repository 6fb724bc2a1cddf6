// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"
	"encoding/binary"
	"strings"
	"sync"

	"github.com/patrickmn/go-cache"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/shiftnrg/shiftd/fault"
)

// Transaction - batch of writes committed atomically
//
// reads through the transaction see its own pending writes
type Transaction interface {
	Begin() error
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) []byte
	GetN(*PoolHandle, []byte) (uint64, bool)
	Has(*PoolHandle, []byte) bool
	LastInPrefix(*PoolHandle, []byte) (Element, bool)
	InUse() bool
	Commit() error
	Abort()
}

// ErrTransactionInUse - Begin called twice
var ErrTransactionInUse = fault.ProcessError("batch already in use")

type pendingOperation int

const (
	dbPut pendingOperation = iota
	dbDelete
)

type pending struct {
	op    pendingOperation
	value []byte
}

type batchTransaction struct {
	sync.Mutex
	inUse   bool
	store   *Store
	batch   *leveldb.Batch
	pending *cache.Cache
}

func newTransaction(s *Store) *batchTransaction {
	return &batchTransaction{
		store:   s,
		batch:   new(leveldb.Batch),
		pending: cache.New(cache.NoExpiration, 0),
	}
}

func (t *batchTransaction) Begin() error {
	t.Lock()
	defer t.Unlock()

	if t.inUse {
		return ErrTransactionInUse
	}
	t.inUse = true
	return nil
}

func (t *batchTransaction) InUse() bool {
	t.Lock()
	defer t.Unlock()
	return t.inUse
}

// Put - outside Begin/Commit the write is immediate
func (t *batchTransaction) Put(p *PoolHandle, key []byte, value []byte) {
	t.Lock()
	defer t.Unlock()

	if !t.inUse {
		fault.PanicIfError("transaction.Put", p.Put(key, value))
		return
	}
	k := p.prefixKey(key)
	v := make([]byte, len(value))
	copy(v, value)
	t.pending.Set(string(k), pending{op: dbPut, value: v}, cache.NoExpiration)
	t.batch.Put(k, v)
}

func (t *batchTransaction) PutN(p *PoolHandle, key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	t.Put(p, key, buffer)
}

func (t *batchTransaction) Delete(p *PoolHandle, key []byte) {
	t.Lock()
	defer t.Unlock()

	if !t.inUse {
		fault.PanicIfError("transaction.Delete", p.Delete(key))
		return
	}
	k := p.prefixKey(key)
	t.pending.Set(string(k), pending{op: dbDelete}, cache.NoExpiration)
	t.batch.Delete(k)
}

func (t *batchTransaction) Get(p *PoolHandle, key []byte) []byte {
	t.Lock()
	obj, found := t.pending.Get(string(p.prefixKey(key)))
	t.Unlock()

	if found {
		data := obj.(pending)
		if dbDelete == data.op {
			return nil
		}
		return data.value
	}
	return p.Get(key)
}

func (t *batchTransaction) GetN(p *PoolHandle, key []byte) (uint64, bool) {
	buffer := t.Get(p, key)
	if nil == buffer {
		return 0, false
	}
	if len(buffer) < 8 {
		fault.Panicf("transaction.GetN truncated record for: %x", key)
	}
	return binary.BigEndian.Uint64(buffer[:8]), true
}

func (t *batchTransaction) Has(p *PoolHandle, key []byte) bool {
	return nil != t.Get(p, key)
}

// LastInPrefix - the element with the highest key starting with
// prefix, as it would be after a commit
func (t *batchTransaction) LastInPrefix(p *PoolHandle, prefix []byte) (Element, bool) {
	t.Lock()
	items := t.pending.Items()
	t.Unlock()

	full := string(p.prefixKey(prefix))
	found := false
	result := Element{}
	for k, item := range items {
		data := item.Object.(pending)
		if dbPut != data.op || !strings.HasPrefix(k, full) {
			continue
		}
		if !found || k[1:] > string(result.Key) {
			result = Element{Key: []byte(k[1:]), Value: data.value}
			found = true
		}
	}

	var stored Element
	storedFound := false
	err := p.NewFetchCursor().Prefix(prefix).each(true, func(e Element) bool {
		if item, ok := items[string(p.prefixKey(e.Key))]; ok && dbDelete == item.Object.(pending).op {
			return true
		}
		stored = e
		storedFound = true
		return false
	})
	fault.PanicIfError("transaction.LastInPrefix", err)

	if storedFound && (!found || bytes.Compare(stored.Key, result.Key) > 0) {
		return stored, true
	}
	return result, found
}

func (t *batchTransaction) Commit() error {
	t.Lock()
	defer t.Unlock()

	if !t.inUse {
		return nil
	}

	t.store.RLock()
	db, err := t.store.database()
	if nil == err {
		err = db.Write(t.batch, nil)
	}
	t.store.RUnlock()

	t.reset()
	return err
}

func (t *batchTransaction) Abort() {
	t.Lock()
	defer t.Unlock()
	t.reset()
}

func (t *batchTransaction) reset() {
	t.batch.Reset()
	t.pending.Flush()
	t.inUse = false
}
