// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cluster

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/patrickmn/go-cache"

	"github.com/shiftnrg/shiftd/background"
	"github.com/shiftnrg/shiftd/fault"
	"github.com/shiftnrg/shiftd/ledger"
	"github.com/shiftnrg/shiftd/metrics"
	"github.com/shiftnrg/shiftd/orderstat"
	"github.com/shiftnrg/shiftd/slot"
)

// Totals - the ledger aggregates sampled each cycle
type Totals interface {
	Totals() ledger.Fields
}

// Sizer - the read side of the oracle
type Sizer interface {
	ClusterSize(asOf uint64) (uint64, error)
}

// Options - collaborators and tuning of an oracle
type Options struct {
	Slots               *slot.Slots
	BlockStatsInterval  uint64
	LookupPerIterations uint64
	Client              Client
	Peers               *PeerList
	Ledger              Totals
	Snapshots           *SnapshotStore
	Random              *rand.Rand // nil: seeded from the clock
}

// Oracle - samples storage peers and serves the cluster size
type Oracle struct {
	sync.Mutex
	log *logger.L

	slots     *slot.Slots
	interval  uint64
	lookup    uint64
	client    Client
	peers     *PeerList
	ledger    Totals
	snapshots *SnapshotStore
	random    *rand.Rand

	// samples buffered while the snapshot key is unchanged
	samples []uint64
	lastKey slot.SnapshotKey
	saved   bool

	sizes *cache.Cache
}

// New - create an oracle
func New(log *logger.L, options Options) *Oracle {
	r := options.Random
	if nil == r {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	interval := options.BlockStatsInterval
	if 0 == interval {
		interval = 1
	}
	lookup := options.LookupPerIterations
	if 0 == lookup {
		lookup = 1
	}
	return &Oracle{
		log:       log,
		slots:     options.Slots,
		interval:  interval,
		lookup:    lookup,
		client:    options.Client,
		peers:     options.Peers,
		ledger:    options.Ledger,
		snapshots: options.Snapshots,
		random:    r,
		sizes:     cache.New(time.Minute, 5*time.Minute),
	}
}

// Process - run Cycle once per block time until shutdown
func (o *Oracle) Process(blockTime time.Duration) background.Process {
	return background.Periodic{
		Interval: blockTime,
		F: func(ctx context.Context) {
			if err := o.Cycle(ctx); nil != err {
				o.log.Warnf("cluster stats cycle: %s", err)
			}
		},
	}
}

// Cycle - poll one random peer and buffer or persist the sample
//
// errors are local to the cycle: the peer list is adjusted and the
// next cycle tries again
func (o *Oracle) Cycle(ctx context.Context) error {
	o.Lock()
	defer o.Unlock()

	now := o.slots.Now()
	key := o.slots.Snapshot(o.slots.Number(now))

	o.log.Debugf("cycle: slot: %d  round: %d", key.Slot, key.Round)

	peer, ok := o.peers.Random(o.random)
	if !ok {
		return fault.NoStoragePeers
	}

	// an occasional directory lookup keeps the peer list fresh
	if 0 == o.random.Int63n(int64(o.lookup)) {
		peer = o.refreshPeers(ctx, peer)
	}

	start := time.Now()
	stats, err := o.client.Stats(ctx, peer)
	metrics.RecordPeerPoll("stats", err, time.Since(start))
	if nil != err {
		o.peers.Remove(peer.Host, peer.Port)
		metrics.SetStoragePeers(o.peers.Count())
		return err
	}
	o.peers.Clear(peer.Host, peer.Port)

	totals := o.ledger.Totals()
	snapshot := Snapshot{
		SlotId:        key.Slot,
		LockedBalance: totals.LockedBalance,
		LockedBytes:   totals.LockedBytes,
		TotalBytes:    stats.TotalStorage,
		UsedBytes:     stats.UsedStorage,
		Timestamp:     now,
	}

	if o.saved && key == o.lastKey {
		o.samples = append(o.samples, stats.TotalStorage)
		o.log.Debugf("buffered total: %d  samples: %d", stats.TotalStorage, len(o.samples))
		return nil
	}

	if mode, ok := orderstat.Mode(o.samples); ok {
		snapshot.TotalBytes = mode
	}

	err = o.snapshots.Save(ctx, snapshot)
	metrics.RecordSnapshotSave(err, snapshot.TotalBytes)
	if nil != err {
		// keep the buffer: the next cycle retries this save
		o.log.Errorf("save snapshot: %+v  error: %s", snapshot, err)
		return err
	}

	o.lastKey = key
	o.saved = true
	o.samples = nil
	o.sizes.Flush()
	o.log.Infof("saved snapshot: %+v", snapshot)
	return nil
}

// query the directory of a peer, returning the peer to poll for
// stats
func (o *Oracle) refreshPeers(ctx context.Context, peer Peer) Peer {
	start := time.Now()
	statuses, err := o.client.Peers(ctx, peer)
	metrics.RecordPeerPoll("peers", err, time.Since(start))

	if nil != err {
		o.log.Warnf("peer directory: %s:%d  error: %s", peer.Host, peer.Port, err)
		o.peers.Remove(peer.Host, peer.Port)
		if p, ok := o.peers.Random(o.random); ok {
			peer = p
		}
	} else {
		for _, s := range statuses {
			if "" == s.Host {
				continue
			}
			port := s.Port
			if 0 == port {
				port = 80
			}
			if s.Online {
				o.peers.Add(s.Host, port)
			} else if o.peers.Mark(s.Host, port) {
				o.log.Infof("evicted offline peer: %s:%d", s.Host, port)
			}
		}
	}
	metrics.SetStoragePeers(o.peers.Count())
	return peer
}

// ClusterSize - median total bytes over the most recent snapshots
//
// asOf zero reads without a staleness bound
func (o *Oracle) ClusterSize(asOf uint64) (uint64, error) {
	cacheKey := strconv.FormatUint(asOf, 10)
	if size, ok := o.sizes.Get(cacheKey); ok {
		return size.(uint64), nil
	}

	snapshots, err := o.snapshots.Latest(int(o.interval))
	if nil != err {
		return 0, err
	}
	if uint64(len(snapshots)) < o.interval {
		return 0, fault.InsufficientSamples
	}

	if 0 != asOf {
		oldest := o.slots.RoundStart(asOf)
		for _, s := range snapshots {
			if s.Timestamp < oldest || s.Timestamp > asOf {
				return 0, fault.NotEnoughRecentStats
			}
		}
	}

	totals := make([]uint64, 0, len(snapshots))
	for _, s := range snapshots {
		totals = append(totals, s.TotalBytes)
	}

	// newest first: the newest slot may still be collecting samples
	if len(totals) > 1 && uint64(len(totals)) == o.interval {
		totals = totals[1:]
	}

	size, _ := orderstat.Median(totals)
	o.sizes.SetDefault(cacheKey, size)
	return size, nil
}
