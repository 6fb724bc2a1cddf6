// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"sync"

	"github.com/shiftnrg/shiftd/account"
)

// one mutex per sender with at least one admission in flight
type senders struct {
	sync.Mutex
	entries map[account.Address]*senderLock
}

type senderLock struct {
	sync.Mutex
	references int
}

func newSenders() *senders {
	return &senders{
		entries: make(map[account.Address]*senderLock),
	}
}

func (s *senders) lock(address account.Address) {
	s.Lock()
	entry, ok := s.entries[address]
	if !ok {
		entry = &senderLock{}
		s.entries[address] = entry
	}
	entry.references += 1
	s.Unlock()

	entry.Lock()
}

func (s *senders) unlock(address account.Address) {
	s.Lock()
	entry := s.entries[address]
	entry.references -= 1
	if 0 == entry.references {
		delete(s.entries, address)
	}
	s.Unlock()

	entry.Unlock()
}
