// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pin

import (
	"encoding/binary"

	"github.com/shiftnrg/shiftd/account"
	"github.com/shiftnrg/shiftd/fault"
	"github.com/shiftnrg/shiftd/transaction"
)

// Record - one entry of the history of a (hash, sender) pair
type Record struct {
	Type          transaction.Type `json:"type"`
	Bytes         uint64           `json:"bytes"`
	Timestamp     uint32           `json:"timestamp"`
	TransactionId uint64           `json:"transactionId"`
}

// Row - a confirmed pin or unpin
type Row struct {
	TransactionId uint64 `json:"transactionId"`
	Hash          string `json:"hash"`
	Bytes         uint64 `json:"bytes"`
	Parent        uint64 `json:"parent,omitempty"`
}

// hash ++ 0x00 ++ address ++ 0x00
func historyPrefix(hash string, sender account.Address) []byte {
	prefix := make([]byte, 0, len(hash)+len(sender)+2)
	prefix = append(prefix, hash...)
	prefix = append(prefix, 0x00)
	prefix = append(prefix, sender...)
	return append(prefix, 0x00)
}

// prefix ++ timestamp ++ txId
func historyKey(hash string, sender account.Address, timestamp uint32, id uint64) []byte {
	prefix := historyPrefix(hash, sender)
	key := make([]byte, len(prefix)+16)
	copy(key, prefix)
	binary.BigEndian.PutUint64(key[len(prefix):], uint64(timestamp))
	binary.BigEndian.PutUint64(key[len(prefix)+8:], id)
	return key
}

func parentKey(parent uint64, id uint64) []byte {
	key := make([]byte, 16)
	binary.BigEndian.PutUint64(key, parent)
	binary.BigEndian.PutUint64(key[8:], id)
	return key
}

// MostRecentPin - the latest history record of a (hash, sender) pair
//
// sees the rows written earlier in the current block
func (r *Registry) MostRecentPin(hash string, sender account.Address) (Record, bool) {
	prefix := historyPrefix(hash, sender)
	e, found := r.store.Transaction().LastInPrefix(r.store.Pool.PinIndex, prefix)
	if !found {
		return Record{}, false
	}
	if len(e.Key) != len(prefix)+16 || len(e.Value) != 9 {
		fault.Panicf("pin: corrupt history record: %x", e.Key)
	}
	n := len(prefix)
	return Record{
		Type:          transaction.Type(e.Value[0]),
		Bytes:         binary.BigEndian.Uint64(e.Value[1:]),
		Timestamp:     uint32(binary.BigEndian.Uint64(e.Key[n:])),
		TransactionId: binary.BigEndian.Uint64(e.Key[n+8:]),
	}, true
}

// Get - a confirmed pin or unpin row
func (r *Registry) Get(id uint64) (*Row, error) {
	value := r.store.Transaction().Get(r.store.Pool.Pins, transaction.IdKey(id))
	if nil == value {
		return nil, fault.TransactionNotFound
	}
	if len(value) != 16+hashLength {
		fault.Panicf("pin: corrupt pin row: %d", id)
	}
	return &Row{
		TransactionId: id,
		Bytes:         binary.BigEndian.Uint64(value[0:]),
		Parent:        binary.BigEndian.Uint64(value[8:]),
		Hash:          string(value[16:]),
	}, nil
}

// PinsByParent - confirmed rows that name parent, in id order
func (r *Registry) PinsByParent(parent uint64) ([]*Row, error) {
	prefix := make([]byte, 8)
	binary.BigEndian.PutUint64(prefix, parent)

	ids := []uint64{}
	err := r.store.Pool.PinParent.NewFetchCursor().Prefix(prefix).Map(func(key []byte, _ []byte) error {
		if 16 != len(key) {
			fault.Panicf("pin: corrupt parent record: %x", key)
		}
		ids = append(ids, binary.BigEndian.Uint64(key[8:]))
		return nil
	})
	if nil != err {
		return nil, err
	}

	rows := make([]*Row, 0, len(ids))
	for _, id := range ids {
		row, err := r.Get(id)
		if nil != err {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Save - write the pin row, history and parent link in the current
// block batch
func (r *Registry) Save(id uint64, tx *transaction.Transaction) error {
	asset, err := assetOf(tx)
	if nil != err {
		return err
	}
	trx := r.store.Transaction()

	row := make([]byte, 16+len(asset.Hash))
	binary.BigEndian.PutUint64(row[0:], asset.Bytes)
	binary.BigEndian.PutUint64(row[8:], asset.Parent)
	copy(row[16:], asset.Hash)
	trx.Put(r.store.Pool.Pins, transaction.IdKey(id), row)

	history := make([]byte, 9)
	history[0] = byte(tx.Type)
	binary.BigEndian.PutUint64(history[1:], asset.Bytes)
	trx.Put(r.store.Pool.PinIndex, historyKey(asset.Hash, tx.SenderId, tx.Timestamp, id), history)

	if 0 != asset.Parent {
		trx.Put(r.store.Pool.PinParent, parentKey(asset.Parent, id), []byte{})
	}
	return nil
}

// Delete - remove everything Save wrote
func (r *Registry) Delete(id uint64, tx *transaction.Transaction) error {
	asset, err := assetOf(tx)
	if nil != err {
		return err
	}
	trx := r.store.Transaction()
	trx.Delete(r.store.Pool.Pins, transaction.IdKey(id))
	trx.Delete(r.store.Pool.PinIndex, historyKey(asset.Hash, tx.SenderId, tx.Timestamp, id))
	if 0 != asset.Parent {
		trx.Delete(r.store.Pool.PinParent, parentKey(asset.Parent, id))
	}
	return nil
}

