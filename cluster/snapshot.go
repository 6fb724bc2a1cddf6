// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cluster

import (
	"context"
	"encoding/binary"
	"sort"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/shiftnrg/shiftd/fault"
	"github.com/shiftnrg/shiftd/storage"
)

// Snapshot - one persisted capacity sample
type Snapshot struct {
	SlotId        uint64 `json:"slotId"`
	LockedBalance uint64 `json:"lockedBalance"`
	LockedBytes   uint64 `json:"lockedBytes"`
	TotalBytes    uint64 `json:"totalBytes"`
	UsedBytes     uint64 `json:"usedBytes"`
	Timestamp     uint64 `json:"timestamp"`
}

const (
	snapshotLength   = 5 * 8
	maximumSlotId    = 100
	saveAttempts     = 3
	saveRetryBackoff = 20 * time.Millisecond
)

// Validate - reject a row that must not be persisted
func (s *Snapshot) Validate() error {
	if 0 == s.SlotId || s.SlotId > maximumSlotId {
		return fault.InvalidSnapshot
	}
	if 0 == s.Timestamp || s.UsedBytes > s.TotalBytes {
		return fault.InvalidSnapshot
	}
	return nil
}

// SnapshotStore - snapshot rows keyed by slot id
//
// a slot id is reused every 100 slots, so saving replaces the row
// left by the previous cycle
type SnapshotStore struct {
	pool *storage.PoolHandle
}

// NewSnapshotStore - snapshots in the store's cluster pool
func NewSnapshotStore(store *storage.Store) *SnapshotStore {
	return &SnapshotStore{
		pool: store.Pool.ClusterStats,
	}
}

// Save - upsert a snapshot, retrying transient write failures
func (s *SnapshotStore) Save(ctx context.Context, snapshot Snapshot) error {
	if err := snapshot.Validate(); nil != err {
		return err
	}

	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, snapshot.SlotId)
	value := packSnapshot(snapshot)

	return retry.Do(
		func() error {
			return s.pool.Put(key, value)
		},
		retry.Context(ctx),
		retry.Attempts(saveAttempts),
		retry.Delay(saveRetryBackoff),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !fault.IsErrProcess(err) // closed store
		}),
	)
}

// Latest - up to count snapshots, newest first
func (s *SnapshotStore) Latest(count int) ([]Snapshot, error) {
	if count <= 0 {
		return nil, fault.InvalidCount
	}

	snapshots := make([]Snapshot, 0, maximumSlotId)
	err := s.pool.NewFetchCursor().Map(func(key []byte, value []byte) error {
		if len(key) != 8 || len(value) != snapshotLength {
			fault.Panicf("cluster: corrupt snapshot record: %x", key)
		}
		snapshots = append(snapshots, unpackSnapshot(binary.BigEndian.Uint64(key), value))
		return nil
	})
	if nil != err {
		return nil, err
	}

	sort.SliceStable(snapshots, func(i, j int) bool {
		return snapshots[i].Timestamp > snapshots[j].Timestamp
	})
	if len(snapshots) > count {
		snapshots = snapshots[:count]
	}
	return snapshots, nil
}

func packSnapshot(s Snapshot) []byte {
	buffer := make([]byte, snapshotLength)
	binary.BigEndian.PutUint64(buffer[0:], s.LockedBalance)
	binary.BigEndian.PutUint64(buffer[8:], s.LockedBytes)
	binary.BigEndian.PutUint64(buffer[16:], s.TotalBytes)
	binary.BigEndian.PutUint64(buffer[24:], s.UsedBytes)
	binary.BigEndian.PutUint64(buffer[32:], s.Timestamp)
	return buffer
}

func unpackSnapshot(slotId uint64, buffer []byte) Snapshot {
	return Snapshot{
		SlotId:        slotId,
		LockedBalance: binary.BigEndian.Uint64(buffer[0:]),
		LockedBytes:   binary.BigEndian.Uint64(buffer[8:]),
		TotalBytes:    binary.BigEndian.Uint64(buffer[16:]),
		UsedBytes:     binary.BigEndian.Uint64(buffer[24:]),
		Timestamp:     binary.BigEndian.Uint64(buffer[32:]),
	}
}
