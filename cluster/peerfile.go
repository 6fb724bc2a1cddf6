// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cluster

import (
	"encoding/json"
	"os"
)

// BackupPeers - write the active peers into a peer file
func (l *PeerList) BackupPeers(peerFile string) error {
	peers := l.List()
	if 0 == len(peers) {
		l.log.Info("no need to backup: peer list is empty")
		return nil
	}

	f, err := os.OpenFile(peerFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if nil != err {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(peers)
}

// RestorePeers - add the peers saved in a peer file
//
// a missing file is not an error, e.g. on first start
func (l *PeerList) RestorePeers(peerFile string) error {
	f, err := os.OpenFile(peerFile, os.O_RDONLY, 0600)
	if nil != err {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	var peers []Peer
	err = json.NewDecoder(f).Decode(&peers)
	if nil != err {
		return err
	}

	l.Lock()
	defer l.Unlock()
	for _, p := range peers {
		if "" == p.Host || 0 == p.Port {
			continue
		}
		l.add(p.Host, p.Port)
		if 0 != p.Marks {
			l.marks[p.key()] = p.Marks
		}
	}
	return nil
}
