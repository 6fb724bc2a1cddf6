// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"encoding/binary"

	"github.com/shiftnrg/shiftd/account"
	"github.com/shiftnrg/shiftd/fault"
	"github.com/shiftnrg/shiftd/storage"
)

// Record - the confirmed summary of a transaction
type Record struct {
	Id          uint64          `json:"id"`
	Type        Type            `json:"type"`
	Timestamp   uint32          `json:"timestamp"`
	BlockHeight uint64          `json:"height"`
	Amount      uint64          `json:"amount"`
	SenderId    account.Address `json:"senderId"`
}

// Index - confirmed transactions by id
type Index struct {
	store *storage.Store
}

// NewIndex - create an index over an open store
func NewIndex(store *storage.Store) *Index {
	return &Index{store: store}
}

// type ++ timestamp ++ height ++ amount ++ sender
const recordFixed = 1 + 4 + 8 + 8

// IdKey - the big endian storage key of a transaction id
func IdKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}

// Put - record a transaction as part of the current block batch
func (x *Index) Put(id uint64, tx *Transaction, block Block) {
	buffer := make([]byte, recordFixed, recordFixed+len(tx.SenderId))
	buffer[0] = byte(tx.Type)
	binary.BigEndian.PutUint32(buffer[1:], tx.Timestamp)
	binary.BigEndian.PutUint64(buffer[5:], block.Height)
	binary.BigEndian.PutUint64(buffer[13:], tx.Amount)
	buffer = append(buffer, tx.SenderId.Bytes()...)

	x.store.Transaction().Put(x.store.Pool.Transactions, IdKey(id), buffer)
}

// Delete - remove a transaction when its block is undone
func (x *Index) Delete(id uint64) {
	x.store.Transaction().Delete(x.store.Pool.Transactions, IdKey(id))
}

// Has - true if the transaction is confirmed
func (x *Index) Has(id uint64) bool {
	return x.store.Transaction().Has(x.store.Pool.Transactions, IdKey(id))
}

// Get - fetch a confirmed transaction record
func (x *Index) Get(id uint64) (*Record, error) {
	buffer := x.store.Transaction().Get(x.store.Pool.Transactions, IdKey(id))
	if nil == buffer {
		return nil, fault.TransactionNotFound
	}
	if len(buffer) < recordFixed {
		fault.Panicf("transaction: truncated record: %d", id)
	}
	return &Record{
		Id:          id,
		Type:        Type(buffer[0]),
		Timestamp:   binary.BigEndian.Uint32(buffer[1:]),
		BlockHeight: binary.BigEndian.Uint64(buffer[5:]),
		Amount:      binary.BigEndian.Uint64(buffer[13:]),
		SenderId:    account.Address(buffer[recordFixed:]),
	}, nil
}
