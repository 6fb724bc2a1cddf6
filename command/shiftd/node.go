// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/logger"

	"github.com/shiftnrg/shiftd/api"
	"github.com/shiftnrg/shiftd/background"
	"github.com/shiftnrg/shiftd/chain"
	"github.com/shiftnrg/shiftd/cluster"
	"github.com/shiftnrg/shiftd/configuration"
	"github.com/shiftnrg/shiftd/ledger"
	"github.com/shiftnrg/shiftd/lock"
	"github.com/shiftnrg/shiftd/milestone"
	"github.com/shiftnrg/shiftd/pin"
	"github.com/shiftnrg/shiftd/reservoir"
	"github.com/shiftnrg/shiftd/slot"
	"github.com/shiftnrg/shiftd/storage"
	"github.com/shiftnrg/shiftd/transaction"
)

// node - every long-lived component of the daemon
type node struct {
	log           *logger.L
	configuration *configuration.Configuration
	parameters    *chain.Parameters

	store     *storage.Store
	ledger    *ledger.Ledger
	index     *transaction.Index
	stats     *cluster.BlockStatsStore
	peers     *cluster.PeerList
	lookuper  cluster.Lookuper
	oracle    *cluster.Oracle
	engine    *lock.Engine
	registry  *pin.Registry
	reservoir *reservoir.Reservoir
	api       *api.Server

	background *background.T
}

func newNode(log *logger.L, c *configuration.Configuration, p *chain.Parameters, store *storage.Store) (*node, error) {
	locks, err := milestone.NewLockSchedule(p.Locks)
	if nil != err {
		return nil, err
	}
	fees, err := milestone.NewFeeSchedule(p.Fees)
	if nil != err {
		return nil, err
	}

	n := &node{
		log:           log,
		configuration: c,
		parameters:    p,
		store:         store,
		ledger:        ledger.New(store),
		index:         transaction.NewIndex(store),
		stats:         cluster.NewBlockStatsStore(store, p.BlockSlotWindow),
		lookuper:      cluster.NewLookuper(logger.New("lookup")),
	}

	n.peers = cluster.NewPeerList(logger.New("peers"), cluster.ParseBootstrap(log, c.Storage.Peers), uint32(p.MaxRemovalMarks))
	n.oracle = cluster.New(logger.New("oracle"), cluster.Options{
		Slots:               slot.New(p.Epoch, p.BlockTime, p.ActiveDelegates, p.BlockStatsInterval),
		BlockStatsInterval:  p.BlockStatsInterval,
		LookupPerIterations: p.LookupPerIterations,
		Client:              cluster.NewHTTPClient(c.Timeout(), c.Storage.RateLimit),
		Peers:               n.peers,
		Ledger:              n.ledger,
		Snapshots:           cluster.NewSnapshotStore(store),
	})

	n.engine = lock.New(logger.New("lock"), lock.Options{
		Store:  store,
		Ledger: n.ledger,
		Locks:  locks,
		Fees:   fees,
		Stats:  n.stats,
	})
	n.registry = pin.New(logger.New("pin"), pin.Options{
		Store:   store,
		Ledger:  n.ledger,
		Locks:   locks,
		Fees:    fees,
		Parents: n.index,
	})

	n.reservoir = reservoir.New(logger.New("reservoir"), reservoir.Options{
		Store:  store,
		Ledger: n.ledger,
		Index:  n.index,
		Handlers: map[transaction.Type]reservoir.Handler{
			transaction.Lock:   n.engine,
			transaction.Unlock: n.engine,
			transaction.Pin:    n.registry,
			transaction.Unpin:  n.registry,
		},
		Stats:     n.stats,
		Sizer:     n.oracle,
		CacheFile: c.ReservoirFile,
	})

	n.api = api.New(logger.New("api"), api.Options{
		Ledger:      n.ledger,
		Locks:       n.engine,
		Pins:        n.registry,
		Stats:       n.stats,
		Replication: locks,
		Metrics:     c.API.Metrics,
	})
	return n, nil
}

// Start - restore saved state then start the background work
func (n *node) Start() error {
	if err := n.peers.RestorePeers(n.configuration.PeerFile); nil != err {
		n.log.Warnf("restore peers from: %q  error: %s", n.configuration.PeerFile, err)
	}
	n.seedPeers(n.configuration.Storage.PeersDomain)

	if err := n.reservoir.Start(); nil != err {
		return err
	}

	n.background = background.Start(background.Processes{
		n.oracle.Process(n.parameters.BlockTime),
	}, nil)

	if "" != n.configuration.API.Listen {
		if err := n.api.Start(n.configuration.API.Listen); nil != err {
			return err
		}
	}
	return nil
}

// Stop - reverse of Start, saving peers and the pool
func (n *node) Stop() {
	n.api.Stop()
	if nil != n.background {
		n.background.Stop()
	}
	n.reservoir.Stop()
	if err := n.peers.BackupPeers(n.configuration.PeerFile); nil != err {
		n.log.Errorf("backup peers to: %q  error: %s", n.configuration.PeerFile, err)
	}
}

// Reload - replace the bootstrap peers from a re-read configuration
func (n *node) Reload(c *configuration.Configuration) {
	bootstrap := cluster.ParseBootstrap(n.log, c.Storage.Peers)
	n.peers.SetBootstrap(bootstrap)
	n.log.Infof("bootstrap peers: %d  active peers: %d", len(bootstrap), n.peers.Count())
	n.seedPeers(c.Storage.PeersDomain)
}

// add the peers advertised under a domain
func (n *node) seedPeers(domain string) {
	if "" == domain {
		return
	}
	peers, err := n.lookuper.Lookup(domain)
	if nil != err {
		n.log.Warnf("lookup: %q  error: %s", domain, err)
		return
	}
	for _, p := range peers {
		n.peers.Add(p.Host, p.Port)
	}
	n.log.Infof("lookup: %q  peers: %d", domain, len(peers))
}
