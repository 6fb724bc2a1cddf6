// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cluster

import (
	"encoding/binary"

	"github.com/shiftnrg/shiftd/fault"
	"github.com/shiftnrg/shiftd/storage"
)

// BlockStats - the capacity figures a block was applied with
//
// ClusterSize zero means no cluster size was available
type BlockStats struct {
	Height      uint64 `json:"height"`
	Timestamp   uint64 `json:"timestamp"`
	LockedBytes uint64 `json:"lockedBytes"`
	ClusterSize uint64 `json:"clusterSize"`
}

// BlockStatsStore - block stats by height and by time
type BlockStatsStore struct {
	store  *storage.Store
	window uint64
}

// NewBlockStatsStore - window is the number of blocks a referenced
// stats entry may lag the last block
func NewBlockStatsStore(store *storage.Store, window uint64) *BlockStatsStore {
	return &BlockStatsStore{
		store:  store,
		window: window,
	}
}

const blockStatsLength = 3 * 8

// Record - write the stats as part of the current block batch
func (b *BlockStatsStore) Record(stats BlockStats) {
	trx := b.store.Transaction()

	value := make([]byte, blockStatsLength)
	binary.BigEndian.PutUint64(value[0:], stats.Timestamp)
	binary.BigEndian.PutUint64(value[8:], stats.LockedBytes)
	binary.BigEndian.PutUint64(value[16:], stats.ClusterSize)

	trx.Put(b.store.Pool.BlockStats, heightKey(stats.Height), value)
	trx.Put(b.store.Pool.BlockTime, timeKey(stats.Timestamp, stats.Height), []byte{})
}

// Delete - remove the stats of an undone block
func (b *BlockStatsStore) Delete(height uint64) {
	trx := b.store.Transaction()
	stats, ok := b.Get(height)
	if !ok {
		return
	}
	trx.Delete(b.store.Pool.BlockStats, heightKey(height))
	trx.Delete(b.store.Pool.BlockTime, timeKey(stats.Timestamp, height))
}

// Get - stats of one block
func (b *BlockStatsStore) Get(height uint64) (BlockStats, bool) {
	value := b.store.Transaction().Get(b.store.Pool.BlockStats, heightKey(height))
	if nil == value {
		return BlockStats{}, false
	}
	if len(value) != blockStatsLength {
		fault.Panicf("cluster: corrupt block stats record: %d", height)
	}
	return BlockStats{
		Height:      height,
		Timestamp:   binary.BigEndian.Uint64(value[0:]),
		LockedBytes: binary.BigEndian.Uint64(value[8:]),
		ClusterSize: binary.BigEndian.Uint64(value[16:]),
	}, true
}

// Last - stats of the highest recorded block
func (b *BlockStatsStore) Last() (BlockStats, bool) {
	e, ok := b.store.Pool.BlockStats.LastElement()
	if !ok {
		return BlockStats{}, false
	}
	return b.Get(binary.BigEndian.Uint64(e.Key))
}

// At - stats of the latest block before a transaction timestamp
//
// fails if none exists or it lags lastHeight by more than the window
func (b *BlockStatsStore) At(timestamp uint64, lastHeight uint64) (BlockStats, error) {
	e, ok := b.store.Pool.BlockTime.LastBefore(timeKey(timestamp, 0))
	if !ok {
		return BlockStats{}, fault.StatsNotFound
	}
	if len(e.Key) != 16 {
		fault.Panicf("cluster: corrupt block time record: %x", e.Key)
	}
	height := binary.BigEndian.Uint64(e.Key[8:])

	stats, ok := b.Get(height)
	if !ok {
		return BlockStats{}, fault.StatsNotFound
	}
	if lastHeight > height && lastHeight-height > b.window {
		return BlockStats{}, fault.StatsTooOld
	}
	return stats, nil
}

func heightKey(height uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, height)
	return key
}

func timeKey(timestamp uint64, height uint64) []byte {
	key := make([]byte, 16)
	binary.BigEndian.PutUint64(key, timestamp)
	binary.BigEndian.PutUint64(key[8:], height)
	return key
}
