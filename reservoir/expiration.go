// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir

import (
	"sort"
	"time"

	"github.com/bitmark-inc/logger"
)

const expirationCheckInterval = 5 * time.Minute

type cleaner struct {
	log *logger.L
}

func (c *cleaner) Run(args interface{}, shutdown <-chan struct{}) {
	r := args.(*Reservoir)

	ticker := time.NewTicker(expirationCheckInterval)
	for {
		select {
		case <-ticker.C:
			if n := r.Expire(); n > 0 {
				c.log.Infof("expired: %d", n)
			}
		case <-shutdown:
			ticker.Stop()
			return
		}
	}
}

// Expire - drop pooled transactions past their expiry time and revert
// their unconfirmed merges
func (r *Reservoir) Expire() int {
	r.RLock()
	defer r.RUnlock()

	now := r.now()
	r.pool.Lock()
	expired := make([]*entry, 0)
	for id, e := range r.pool.entries {
		if !now.Before(e.expiresAt) {
			expired = append(expired, e)
			delete(r.pool.entries, id)
		}
	}
	r.pool.Unlock()

	// newest first so every intermediate value stays valid
	sort.Slice(expired, func(i, j int) bool {
		return expired[i].sequence > expired[j].sequence
	})
	for _, e := range expired {
		tx := e.tx
		err := r.ledger.Serialize(tx.SenderId, func() error {
			err := r.handlers[tx.Type].UndoUnconfirmed(tx)
			r.resetIdle(tx.SenderId)
			return err
		})
		if nil != err {
			r.log.Errorf("expire %s from: %s  error: %s", tx.Type, tx.SenderId, err)
		}
	}
	return len(expired)
}
