// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cluster_test

import (
	"math/rand"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/shiftnrg/shiftd/cluster"
)

var bootstrap = []cluster.Peer{
	{Host: "10.0.0.1", Port: 5001},
	{Host: "10.0.0.2", Port: 5001},
}

func TestPeerListResetsToBootstrap(t *testing.T) {
	l := cluster.NewPeerList(logger.New("test"), bootstrap, 3)
	assert.Equal(t, 2, l.Count(), "bootstrap count")

	assert.True(t, l.Remove("10.0.0.1", 5001), "remove 1")
	assert.True(t, l.Remove("10.0.0.2", 5001), "remove 2")
	assert.False(t, l.Remove("10.0.0.2", 5001), "remove twice")
	assert.Equal(t, 0, l.Count(), "drained")

	p, ok := l.Random(rand.New(rand.NewSource(1)))
	assert.True(t, ok, "no peer after drain")
	assert.Contains(t, bootstrap, p, "not a bootstrap peer")
	assert.Equal(t, 2, l.Count(), "bootstrap not restored")
}

func TestPeerListMarks(t *testing.T) {
	l := cluster.NewPeerList(logger.New("test"), bootstrap, 3)
	assert.True(t, l.Add("10.0.0.3", 80), "add")
	assert.False(t, l.Add("10.0.0.3", 80), "duplicate add")

	for i := 0; i < 3; i += 1 {
		assert.False(t, l.Mark("10.0.0.3", 80), "evicted early at %d", i)
	}
	assert.Equal(t, uint32(3), l.List()[2].Marks, "marks")

	// an answer resets the run
	l.Clear("10.0.0.3", 80)
	assert.Equal(t, uint32(0), l.List()[2].Marks, "marks not cleared")

	for i := 0; i < 3; i += 1 {
		l.Mark("10.0.0.3", 80)
	}
	assert.True(t, l.Mark("10.0.0.3", 80), "not evicted")
	assert.Equal(t, 2, l.Count(), "count after eviction")

	// marks for an unknown peer are kept until it appears online
	assert.False(t, l.Mark("10.0.0.9", 80), "unknown peer evicted")
	assert.True(t, l.Add("10.0.0.9", 80), "add after mark")
	assert.Equal(t, uint32(0), l.List()[2].Marks, "online report did not clear marks")
}

func TestPeerFile(t *testing.T) {
	const peerFile = "peers.json"
	defer os.Remove(peerFile)

	assert.Nil(t, cluster.NewPeerList(logger.New("test"), nil, 3).RestorePeers("file_not_exist.json"), "missing file")

	l := cluster.NewPeerList(logger.New("test"), bootstrap, 3)
	l.Add("storage.example.com", 80)
	l.Mark("storage.example.com", 80)
	assert.Nil(t, l.BackupPeers(peerFile), "backup")

	r := cluster.NewPeerList(logger.New("test"), nil, 3)
	assert.Nil(t, r.RestorePeers(peerFile), "restore")
	assert.Equal(t, l.List(), r.List(), "restored list")
}

func TestParseBootstrap(t *testing.T) {
	peers := cluster.ParseBootstrap(logger.New("test"), []string{
		"/ip4/10.0.0.1/tcp/5001",
		"not-an-address",
		"/dns4/storage.example.com/tcp/80",
	})
	assert.Equal(t, []cluster.Peer{
		{Host: "10.0.0.1", Port: 5001},
		{Host: "storage.example.com", Port: 80},
	}, peers, "bootstrap peers")
}
