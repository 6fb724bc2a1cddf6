// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir

import (
	"github.com/shiftnrg/shiftd/account"
	"github.com/shiftnrg/shiftd/cluster"
	"github.com/shiftnrg/shiftd/fault"
	"github.com/shiftnrg/shiftd/ledger"
	"github.com/shiftnrg/shiftd/metrics"
	"github.com/shiftnrg/shiftd/transaction"
)

// ApplyBlock - verify and apply the storage transactions of a block
//
// the block's merges, rows, index entries and stats commit together;
// on any failure nothing is written and the error is returned for the
// caller to halt on
func (r *Reservoir) ApplyBlock(block transaction.Block, txs []*transaction.Transaction) error {
	err := r.applyBlock(block, txs)
	metrics.RecordBlock("apply", err)
	return err
}

func (r *Reservoir) applyBlock(block transaction.Block, txs []*transaction.Transaction) error {
	r.Lock()
	defer r.Unlock()

	last, found := r.stats.Last()
	if 0 == block.Height || (found && block.Height != last.Height+1) {
		return fault.InvalidHeight
	}
	lastHeight := r.lastHeight()

	trx := r.store.Transaction()
	if err := trx.Begin(); nil != err {
		return err
	}

	// transactions that never passed through the pool are merged into
	// the unconfirmed projection directly and must be reverted on failure
	shadowed := make([]*transaction.Transaction, 0, len(txs))
	fail := func(tx *transaction.Transaction, err error) error {
		trx.Abort()
		for i := len(shadowed) - 1; i >= 0; i -= 1 {
			s := shadowed[i]
			if e := r.handlers[s.Type].UndoUnconfirmed(s); nil != e {
				r.log.Errorf("revert unconfirmed %s from: %s  error: %s", s.Type, s.SenderId, e)
			}
		}
		if nil == tx {
			fault.Criticalf("reservoir: block: %d  commit failed: %s", block.Height, err)
		} else {
			fault.Criticalf("reservoir: block: %d  %s from: %s  failed: %s", block.Height, tx.Type, tx.SenderId, err)
		}
		return err
	}

	ids := make([]uint64, len(txs))
	for i, tx := range txs {
		h, ok := r.handlers[tx.Type]
		if !ok {
			return fail(tx, fault.InvalidTransactionType)
		}
		id, err := tx.Id()
		if nil != err {
			return fail(tx, err)
		}
		if r.index.Has(id) {
			return fail(tx, fault.TransactionAlreadyExists)
		}
		sender, err := r.ledger.Account(tx.SenderId)
		if nil != err {
			return fail(tx, err)
		}

		err = h.Verify(tx, sender, r.ledger.Confirmed().Fields(tx.SenderId), lastHeight)
		if nil != err {
			return fail(tx, err)
		}
		if !h.Ready(tx, sender) {
			return fail(tx, fault.NotReady)
		}

		if !r.pooled(id) {
			if err := h.ApplyUnconfirmed(tx); nil != err {
				return fail(tx, err)
			}
			shadowed = append(shadowed, tx)
		}
		if err := h.Apply(tx, block); nil != err {
			return fail(tx, err)
		}
		if err := h.Save(id, tx); nil != err {
			return fail(tx, err)
		}
		r.index.Put(id, tx, block)
		ids[i] = id
	}

	size, err := r.sizer.ClusterSize(uint64(block.Timestamp))
	if nil != err {
		r.log.Warnf("block: %d  no cluster size: %s", block.Height, err)
		size = 0
	}
	r.stats.Record(cluster.BlockStats{
		Height:      block.Height,
		Timestamp:   uint64(block.Timestamp),
		LockedBytes: r.ledger.Totals().LockedBytes,
		ClusterSize: size,
	})

	if err := trx.Commit(); nil != err {
		return fail(nil, err)
	}

	for _, id := range ids {
		r.remove(id)
	}
	for _, address := range senders(txs) {
		r.resetIdle(address)
	}

	r.log.Infof("applied block: %d  transactions: %d  cluster size: %d", block.Height, len(txs), size)
	return nil
}

// UndoBlock - revert the last applied block and return its
// transactions to the pool
func (r *Reservoir) UndoBlock(block transaction.Block, txs []*transaction.Transaction) error {
	err := r.undoBlock(block, txs)
	metrics.RecordBlock("undo", err)
	return err
}

func (r *Reservoir) undoBlock(block transaction.Block, txs []*transaction.Transaction) error {
	r.Lock()
	defer r.Unlock()

	last, found := r.stats.Last()
	if !found || last.Height != block.Height {
		return fault.InvalidHeight
	}

	// pin the current unconfirmed values so the returned transactions
	// stay counted once the confirmed values drop
	for _, address := range senders(txs) {
		if _, err := r.ledger.Unconfirmed().Merge(address, ledger.Delta{}, 0, 0); nil != err {
			return err
		}
	}

	trx := r.store.Transaction()
	if err := trx.Begin(); nil != err {
		return err
	}

	ids := make([]uint64, len(txs))
	for i := len(txs) - 1; i >= 0; i -= 1 {
		tx := txs[i]
		err := r.undo(tx, block, &ids[i])
		if nil != err {
			trx.Abort()
			fault.Criticalf("reservoir: undo block: %d  %s from: %s  failed: %s", block.Height, tx.Type, tx.SenderId, err)
			return err
		}
	}
	r.stats.Delete(block.Height)

	if err := trx.Commit(); nil != err {
		fault.Criticalf("reservoir: undo block: %d  commit failed: %s", block.Height, err)
		return err
	}

	// a returned transaction takes its key back from any pooled one
	for _, tx := range txs {
		key, ok := r.handlers[tx.Type].PoolKey(tx)
		if !ok {
			continue
		}
		if id, found := r.pooledKey(key); found {
			r.evict(id)
		}
	}

	for i, tx := range txs {
		ready := true
		if sender, err := r.ledger.Account(tx.SenderId); nil == err {
			ready = r.handlers[tx.Type].Ready(tx, sender)
		}
		r.add(ids[i], tx, ready)
	}

	r.log.Infof("undone block: %d  transactions: %d", block.Height, len(txs))
	return nil
}

// drop a pooled transaction and revert its unconfirmed merge
//
// caller must hold the exclusive lock
func (r *Reservoir) evict(id uint64) {
	tx, ok := r.Get(id)
	if !ok {
		return
	}
	r.remove(id)
	if err := r.handlers[tx.Type].UndoUnconfirmed(tx); nil != err {
		r.log.Errorf("evict %s from: %s  error: %s", tx.Type, tx.SenderId, err)
	}
	r.log.Infof("evicted %s from: %s", tx.Type, tx.SenderId)
}

func (r *Reservoir) undo(tx *transaction.Transaction, block transaction.Block, id *uint64) error {
	h, ok := r.handlers[tx.Type]
	if !ok {
		return fault.InvalidTransactionType
	}
	n, err := tx.Id()
	if nil != err {
		return err
	}
	if !r.index.Has(n) {
		return fault.TransactionNotFound
	}
	if err := h.Undo(tx, block); nil != err {
		return err
	}
	if err := h.Delete(n, tx); nil != err {
		return err
	}
	r.index.Delete(n)
	*id = n
	return nil
}

// distinct senders in block order
func senders(txs []*transaction.Transaction) []account.Address {
	seen := make(map[account.Address]struct{})
	result := make([]account.Address, 0, len(txs))
	for _, tx := range txs {
		if _, ok := seen[tx.SenderId]; ok {
			continue
		}
		seen[tx.SenderId] = struct{}{}
		result = append(result, tx.SenderId)
	}
	return result
}
