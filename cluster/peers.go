// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cluster

import (
	"math/rand"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/shiftnrg/shiftd/util"
)

// Peer - a storage peer and its consecutive offline reports
type Peer struct {
	Host  string `json:"host"`
	Port  uint16 `json:"port"`
	Marks uint32 `json:"marks"`
}

func (p Peer) key() string {
	k, err := util.CanonicalHostPort(p.Host, p.Port)
	if nil != err {
		return p.Host
	}
	return k
}

// PeerList - the storage peers known to one oracle
//
// never observed empty: draining it restores the bootstrap set
type PeerList struct {
	sync.Mutex
	log       *logger.L
	maxMarks  uint32
	bootstrap []Peer
	peers     []Peer
	marks     map[string]uint32
}

// NewPeerList - create a list holding the bootstrap peers
func NewPeerList(log *logger.L, bootstrap []Peer, maxRemovalMarks uint32) *PeerList {
	l := &PeerList{
		log:      log,
		maxMarks: maxRemovalMarks,
		marks:    make(map[string]uint32),
	}
	l.SetBootstrap(bootstrap)
	return l
}

// SetBootstrap - replace the bootstrap set, adding any new peers to
// the active list
func (l *PeerList) SetBootstrap(bootstrap []Peer) {
	l.Lock()
	defer l.Unlock()

	l.bootstrap = make([]Peer, len(bootstrap))
	copy(l.bootstrap, bootstrap)
	for _, p := range bootstrap {
		l.add(p.Host, p.Port)
	}
}

// Random - pick one peer uniformly at random
func (l *PeerList) Random(r *rand.Rand) (Peer, bool) {
	l.Lock()
	defer l.Unlock()

	l.resetIfEmpty()
	if 0 == len(l.peers) {
		return Peer{}, false
	}
	p := l.peers[r.Intn(len(l.peers))]
	p.Marks = l.marks[p.key()]
	return p, true
}

// Add - add a peer reported online
//
// an online report ends any run of offline marks
func (l *PeerList) Add(host string, port uint16) bool {
	l.Lock()
	defer l.Unlock()

	delete(l.marks, Peer{Host: host, Port: port}.key())
	return l.add(host, port)
}

func (l *PeerList) add(host string, port uint16) bool {
	p := Peer{Host: host, Port: port}
	k := p.key()
	for _, q := range l.peers {
		if q.key() == k {
			return false
		}
	}
	l.peers = append(l.peers, p)
	l.log.Infof("add storage peer: %s", k)
	return true
}

// Remove - drop a peer that failed a request
func (l *PeerList) Remove(host string, port uint16) bool {
	l.Lock()
	defer l.Unlock()
	return l.remove(Peer{Host: host, Port: port}.key())
}

func (l *PeerList) remove(k string) bool {
	for i, q := range l.peers {
		if q.key() == k {
			l.peers = append(l.peers[:i], l.peers[i+1:]...)
			l.log.Infof("remove storage peer: %s", k)
			return true
		}
	}
	return false
}

// Mark - record an offline report, evicting the peer once its marks
// exceed the limit
//
// returns true if the peer was evicted
func (l *PeerList) Mark(host string, port uint16) bool {
	l.Lock()
	defer l.Unlock()

	k := Peer{Host: host, Port: port}.key()
	l.marks[k] += 1
	if l.marks[k] <= l.maxMarks {
		return false
	}
	delete(l.marks, k)
	return l.remove(k)
}

// Clear - forget the offline marks of a peer that answered
func (l *PeerList) Clear(host string, port uint16) {
	l.Lock()
	defer l.Unlock()
	delete(l.marks, Peer{Host: host, Port: port}.key())
}

// List - copy of the active peers with their marks
func (l *PeerList) List() []Peer {
	l.Lock()
	defer l.Unlock()

	result := make([]Peer, len(l.peers))
	for i, p := range l.peers {
		p.Marks = l.marks[p.key()]
		result[i] = p
	}
	return result
}

// Count - number of active peers
func (l *PeerList) Count() int {
	l.Lock()
	defer l.Unlock()
	return len(l.peers)
}

func (l *PeerList) resetIfEmpty() {
	if 0 != len(l.peers) {
		return
	}
	l.log.Warn("storage peer list drained: restoring bootstrap peers")
	for _, p := range l.bootstrap {
		l.add(p.Host, p.Port)
	}
}
