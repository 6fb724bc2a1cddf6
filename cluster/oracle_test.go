// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cluster_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/shiftnrg/shiftd/cluster"
	"github.com/shiftnrg/shiftd/fault"
	"github.com/shiftnrg/shiftd/mocks"
	"github.com/shiftnrg/shiftd/orderstat"
	"github.com/shiftnrg/shiftd/slot"
	"github.com/shiftnrg/shiftd/storage"
)

const (
	testInterval  = 10
	testDelegates = 101
	testBlockTime = 10 * time.Second
)

var testEpoch = time.Date(2016, 5, 24, 17, 0, 0, 0, time.UTC)

// a controllable clock in epoch seconds
type clock struct {
	seconds uint64
}

func (c *clock) now() time.Time {
	return testEpoch.Add(time.Duration(c.seconds) * time.Second)
}

func newOracle(store *storage.Store, c *clock, client cluster.Client, peers []cluster.Peer, lookup uint64) (*cluster.Oracle, *cluster.SnapshotStore) {
	log := logger.New("test")
	snapshots := cluster.NewSnapshotStore(store)
	o := cluster.New(log, cluster.Options{
		Slots:               slot.NewWithClock(testEpoch, testBlockTime, testDelegates, testInterval, c.now),
		BlockStatsInterval:  testInterval,
		LookupPerIterations: lookup,
		Client:              client,
		Peers:               cluster.NewPeerList(log, peers, 3),
		Ledger:              fixedTotals{LockedBalance: 700, LockedBytes: 21},
		Snapshots:           snapshots,
		Random:              rand.New(rand.NewSource(1)),
	})
	return o, snapshots
}

// samples taken while the snapshot slot is unchanged are reduced to
// their most frequent value when the slot moves on
func TestCycleSavesModalSample(t *testing.T) {
	store := setupStore(t)
	defer teardownStore(store)

	total := uint64(0)
	server, peer := newPeerServer(t, &total, `[]`)
	defer server.Close()

	c := &clock{seconds: 1000} // slot 100: snapshot slot 100, round 0
	o, snapshots := newOracle(store, c, cluster.NewHTTPClient(time.Second, 0), []cluster.Peer{peer}, 1)

	total = 5000
	assert.Nil(t, o.Cycle(context.Background()), "first cycle")

	latest, err := snapshots.Latest(1)
	assert.Nil(t, err, "latest")
	assert.Equal(t, cluster.Snapshot{
		SlotId:        100,
		LockedBalance: 700,
		LockedBytes:   21,
		TotalBytes:    5000,
		UsedBytes:     1250,
		Timestamp:     1000,
	}, latest[0], "first snapshot")

	buffered := []uint64{8000, 9000, 9000, 7000, 9000, 8000, 8000, 9000, 6000, 1}
	for i, b := range buffered {
		c.seconds = 1001 + uint64(i)*9 // still slot 100..109
		total = b
		assert.Nil(t, o.Cycle(context.Background()), "cycle %d", i)
	}
	latest, _ = snapshots.Latest(1)
	assert.Equal(t, uint64(5000), latest[0].TotalBytes, "saved while buffering")

	c.seconds = 1100 // slot 110: snapshot slot 10, round 1
	total = 123
	assert.Nil(t, o.Cycle(context.Background()), "slot change cycle")

	mode, _ := orderstat.Mode(buffered)
	latest, _ = snapshots.Latest(2)
	assert.Equal(t, uint64(10), latest[0].SlotId, "slot id")
	assert.Equal(t, mode, latest[0].TotalBytes, "not the modal value")
	assert.Equal(t, uint64(9000), latest[0].TotalBytes, "modal value")
	assert.Equal(t, uint64(1100), latest[0].Timestamp, "timestamp")
	assert.Equal(t, uint64(100), latest[1].SlotId, "previous row")
}

func TestCycleDirectoryLookup(t *testing.T) {
	store := setupStore(t)
	defer teardownStore(store)

	total := uint64(5000)
	server, peer := newPeerServer(t, &total, `[{"Host":"10.9.9.9","Port":5001,"Online":true}]`)
	defer server.Close()

	c := &clock{seconds: 1000}
	log := logger.New("test")
	peers := cluster.NewPeerList(log, []cluster.Peer{peer}, 3)
	o := cluster.New(log, cluster.Options{
		Slots:               slot.NewWithClock(testEpoch, testBlockTime, testDelegates, testInterval, c.now),
		BlockStatsInterval:  testInterval,
		LookupPerIterations: 1,
		Client:              cluster.NewHTTPClient(time.Second, 0),
		Peers:               peers,
		Ledger:              fixedTotals{},
		Snapshots:           cluster.NewSnapshotStore(store),
		Random:              rand.New(rand.NewSource(1)),
	})

	// stats are still taken from the peer that answered the lookup
	assert.Nil(t, o.Cycle(context.Background()), "cycle")
	assert.Equal(t, []cluster.Peer{peer, {Host: "10.9.9.9", Port: 5001}}, peers.List(), "peer not learned")
}

func TestCycleStatsFailure(t *testing.T) {
	store := setupStore(t)
	defer teardownStore(store)

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	client := mocks.NewMockClient(ctl)
	client.EXPECT().Stats(gomock.Any(), gomock.Any()).Return(cluster.Stats{}, fault.PeerUnreachable).Times(1)

	c := &clock{seconds: 1000}
	o, snapshots := newOracle(store, c, client, bootstrap, 1<<40)

	err := o.Cycle(context.Background())
	assert.Equal(t, fault.PeerUnreachable, err, "cycle error")

	_, err = o.ClusterSize(0)
	assert.Equal(t, fault.InsufficientSamples, err, "snapshot written on failure")

	latest, err := snapshots.Latest(1)
	assert.Nil(t, err, "latest")
	assert.Equal(t, 0, len(latest), "snapshot written")
}

func TestCycleFailedPeerIsRemoved(t *testing.T) {
	store := setupStore(t)
	defer teardownStore(store)

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	var failed cluster.Peer
	client := mocks.NewMockClient(ctl)
	client.EXPECT().Stats(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p cluster.Peer) (cluster.Stats, error) {
			failed = p
			return cluster.Stats{}, fault.BadPeerResponse
		})
	client.EXPECT().Stats(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p cluster.Peer) (cluster.Stats, error) {
			assert.NotEqual(t, failed, p, "removed peer polled again")
			return cluster.Stats{TotalStorage: 100, UsedStorage: 10}, nil
		})

	c := &clock{seconds: 1000}
	o, _ := newOracle(store, c, client, bootstrap, 1<<40)

	assert.Equal(t, fault.BadPeerResponse, o.Cycle(context.Background()), "first cycle")
	assert.Nil(t, o.Cycle(context.Background()), "second cycle")
}

func saveSnapshots(t *testing.T, snapshots *cluster.SnapshotStore, totals []uint64, firstTimestamp uint64) {
	for i, total := range totals {
		err := snapshots.Save(context.Background(), cluster.Snapshot{
			SlotId:     uint64(i+1) * 10,
			TotalBytes: total,
			Timestamp:  firstTimestamp + uint64(i)*100,
		})
		assert.Nil(t, err, "save %d", i)
	}
}

func TestClusterSizeInsufficientSamples(t *testing.T) {
	store := setupStore(t)
	defer teardownStore(store)

	c := &clock{seconds: 100000}
	o, snapshots := newOracle(store, c, nil, bootstrap, 1)

	_, err := o.ClusterSize(0)
	assert.Equal(t, fault.InsufficientSamples, err, "empty")

	saveSnapshots(t, snapshots, []uint64{1, 2, 3, 4, 5, 6, 7, 8, 9}, 1000)
	_, err = o.ClusterSize(0)
	assert.Equal(t, fault.InsufficientSamples, err, "one short")
	assert.True(t, fault.IsErrSamples(err), "class")
}

func TestClusterSizeMedian(t *testing.T) {
	store := setupStore(t)
	defer teardownStore(store)

	c := &clock{seconds: 100000}
	o, snapshots := newOracle(store, c, nil, bootstrap, 1)

	// newest (last) is discarded: median of the first nine sorted
	totals := []uint64{900, 100, 800, 200, 700, 300, 600, 400, 500, 1000000}
	saveSnapshots(t, snapshots, totals, 1000)

	size, err := o.ClusterSize(0)
	assert.Nil(t, err, "cluster size")
	assert.Equal(t, uint64(500), size, "median")

	// only a save by the oracle itself clears the cached value
	saveSnapshots(t, snapshots, []uint64{5, 5, 5, 5, 5, 5, 5, 5, 5, 5}, 5000)
	size, _ = o.ClusterSize(0)
	assert.Equal(t, uint64(500), size, "cached value")
}

func TestClusterSizeStaleness(t *testing.T) {
	store := setupStore(t)
	defer teardownStore(store)

	c := &clock{}
	o, snapshots := newOracle(store, c, nil, bootstrap, 1)

	// snapshots at 3000..3900
	saveSnapshots(t, snapshots, []uint64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 3000)

	// round start of 4000: slot 399 - 101 = 298 -> 2980
	size, err := o.ClusterSize(4000)
	assert.Nil(t, err, "recent")
	assert.Equal(t, uint64(5), size, "median")

	// round start of 4100: slot 409 - 101 = 308 -> 3080
	_, err = o.ClusterSize(4100)
	assert.Equal(t, fault.NotEnoughRecentStats, err, "too old")

	// newer than the reference time
	_, err = o.ClusterSize(3850)
	assert.Equal(t, fault.NotEnoughRecentStats, err, "too new")
}
