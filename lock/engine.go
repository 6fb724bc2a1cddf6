// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lock

import (
	"math"
	"math/bits"

	"github.com/bitmark-inc/logger"

	"github.com/shiftnrg/shiftd/cluster"
	"github.com/shiftnrg/shiftd/fault"
	"github.com/shiftnrg/shiftd/ledger"
	"github.com/shiftnrg/shiftd/milestone"
	"github.com/shiftnrg/shiftd/storage"
	"github.com/shiftnrg/shiftd/transaction"
)

// StatsReader - block stats lookup by transaction timestamp
type StatsReader interface {
	At(timestamp uint64, lastHeight uint64) (cluster.BlockStats, error)
}

// Options - collaborators of the engine
type Options struct {
	Store  *storage.Store
	Ledger *ledger.Ledger
	Locks  *milestone.LockSchedule
	Fees   *milestone.FeeSchedule
	Stats  StatsReader
}

// Engine - LOCK/UNLOCK verify, apply and undo
type Engine struct {
	log      *logger.L
	store    *storage.Store
	ledger   *ledger.Ledger
	schedule *milestone.LockSchedule
	fees     *milestone.FeeSchedule
	stats    StatsReader
}

// New - create a bonding engine
func New(log *logger.L, options Options) *Engine {
	return &Engine{
		log:      log,
		store:    options.Store,
		ledger:   options.Ledger,
		schedule: options.Locks,
		fees:     options.Fees,
		stats:    options.Stats,
	}
}

// Fee - fee of a lock or unlock at a height
func (e *Engine) Fee(height uint64, t transaction.Type) (uint64, error) {
	fees, err := e.fees.Params(height)
	if nil != err {
		return 0, err
	}
	switch t {
	case transaction.Lock:
		return fees.Lock, nil
	case transaction.Unlock:
		return fees.Unlock, nil
	default:
		return 0, fault.InvalidTransactionType
	}
}

// Verify - check a transaction against a view of the sender's fields
//
// fields come from the unconfirmed projection for pool admission and
// from the confirmed projection when a block is applied; nothing is
// mutated
func (e *Engine) Verify(tx *transaction.Transaction, sender *ledger.Account, fields ledger.Fields, lastHeight uint64) error {
	if nil == sender || "" == tx.SenderId {
		return fault.InvalidSender
	}
	if "" != tx.RecipientId {
		return fault.InvalidRecipient
	}
	if 0 == tx.Amount {
		return fault.AmountIsZero
	}
	asset, err := assetOf(tx)
	if nil != err {
		return err
	}
	fee, err := e.Fee(lastHeight, tx.Type)
	if nil != err {
		return err
	}
	if tx.Fee != fee {
		return fault.InvalidFee
	}

	required, ok := sum(tx.Amount, tx.Fee)
	if !ok {
		return fault.InsufficientFunds
	}

	switch tx.Type {
	case transaction.Lock:
		free := uint64(0)
		if sender.Balance > fields.LockedBalance {
			free = sender.Balance - fields.LockedBalance
		}
		if free < required {
			return fault.InsufficientFunds
		}

		stats, err := e.stats.At(uint64(tx.Timestamp), lastHeight)
		if nil != err {
			return err
		}
		bytes, err := e.CalcLockBytes(lastHeight, tx.Amount, stats)
		if nil != err {
			return err
		}
		if asset.Bytes > bytes {
			e.log.Debugf("lock: %d bytes requested, %d available for amount: %d", asset.Bytes, bytes, tx.Amount)
			return fault.LockBytesTooLarge
		}
		return nil

	case transaction.Unlock:
		if fields.LockedBalance < required {
			return fault.InsufficientFunds
		}
		if asset.Bytes > fields.LockedBytes {
			return fault.UnlockBytesExceedsLocked
		}
		unlockBytes, err := CalcUnlockBytes(fields, tx.Amount)
		if nil != err {
			return err
		}
		if asset.Bytes > unlockBytes {
			unlockBytes = asset.Bytes
		}

		replication, err := e.schedule.Replication(lastHeight)
		if nil != err {
			return err
		}
		hi, pinned := bits.Mul64(fields.PinnedBytes, replication)
		if 0 != hi || pinned > fields.LockedBytes || fields.LockedBytes-pinned < unlockBytes {
			return fault.UnlockWouldReleasePinned
		}
		return nil

	default:
		return fault.InvalidTransactionType
	}
}

// Ready - true once a multisignature sender has enough signatures
func (e *Engine) Ready(tx *transaction.Transaction, sender *ledger.Account) bool {
	return sender.Ready(len(tx.Signatures))
}

// PoolKey - locks of one sender accumulate so none is keyed
func (e *Engine) PoolKey(_ *transaction.Transaction) (string, bool) {
	return "", false
}

// Apply - merge the transaction into the confirmed projection
func (e *Engine) Apply(tx *transaction.Transaction, block transaction.Block) error {
	d, err := delta(tx)
	if nil != err {
		return err
	}
	_, err = e.ledger.Confirmed().Merge(tx.SenderId, d, block.Id, block.Round)
	return err
}

// Undo - exact inverse of Apply
func (e *Engine) Undo(tx *transaction.Transaction, block transaction.Block) error {
	d, err := delta(tx)
	if nil != err {
		return err
	}
	_, err = e.ledger.Confirmed().Merge(tx.SenderId, d.Negate(), block.Id, block.Round)
	return err
}

// ApplyUnconfirmed - merge the transaction into the unconfirmed projection
func (e *Engine) ApplyUnconfirmed(tx *transaction.Transaction) error {
	d, err := delta(tx)
	if nil != err {
		return err
	}
	_, err = e.ledger.Unconfirmed().Merge(tx.SenderId, d, 0, 0)
	return err
}

// UndoUnconfirmed - exact inverse of ApplyUnconfirmed
func (e *Engine) UndoUnconfirmed(tx *transaction.Transaction) error {
	d, err := delta(tx)
	if nil != err {
		return err
	}
	_, err = e.ledger.Unconfirmed().Merge(tx.SenderId, d.Negate(), 0, 0)
	return err
}

// Save - write the lock row in the current block batch
func (e *Engine) Save(id uint64, tx *transaction.Transaction) error {
	asset, err := assetOf(tx)
	if nil != err {
		return err
	}
	e.store.Transaction().PutN(e.store.Pool.Locks, transaction.IdKey(id), asset.Bytes)
	return nil
}

// Delete - remove the lock row of an undone transaction
func (e *Engine) Delete(id uint64, _ *transaction.Transaction) error {
	e.store.Transaction().Delete(e.store.Pool.Locks, transaction.IdKey(id))
	return nil
}

// Bytes - the bytes recorded by a confirmed lock or unlock
func (e *Engine) Bytes(id uint64) (uint64, error) {
	bytes, ok := e.store.Transaction().GetN(e.store.Pool.Locks, transaction.IdKey(id))
	if !ok {
		return 0, fault.TransactionNotFound
	}
	return bytes, nil
}

func delta(tx *transaction.Transaction) (ledger.Delta, error) {
	asset, err := assetOf(tx)
	if nil != err {
		return ledger.Delta{}, err
	}
	if tx.Amount > math.MaxInt64 || asset.Bytes > math.MaxInt64 {
		return ledger.Delta{}, fault.FieldOverflow
	}
	d := ledger.Delta{
		LockedBalance: int64(tx.Amount),
		LockedBytes:   int64(asset.Bytes),
	}
	switch tx.Type {
	case transaction.Lock:
		return d, nil
	case transaction.Unlock:
		return d.Negate(), nil
	default:
		return ledger.Delta{}, fault.InvalidTransactionType
	}
}

func sum(a uint64, b uint64) (uint64, bool) {
	s := a + b
	return s, s >= a
}
