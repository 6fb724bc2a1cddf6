// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pin

import (
	"math"
	"math/bits"

	"github.com/bitmark-inc/logger"

	"github.com/shiftnrg/shiftd/fault"
	"github.com/shiftnrg/shiftd/ledger"
	"github.com/shiftnrg/shiftd/milestone"
	"github.com/shiftnrg/shiftd/storage"
	"github.com/shiftnrg/shiftd/transaction"
)

// Parents - lookup of confirmed transactions
type Parents interface {
	Get(id uint64) (*transaction.Record, error)
}

// Options - collaborators of the registry
type Options struct {
	Store   *storage.Store
	Ledger  *ledger.Ledger
	Locks   *milestone.LockSchedule
	Fees    *milestone.FeeSchedule
	Parents Parents
}

// Registry - PIN/UNPIN verify, apply and undo
type Registry struct {
	log      *logger.L
	store    *storage.Store
	ledger   *ledger.Ledger
	schedule *milestone.LockSchedule
	fees     *milestone.FeeSchedule
	parents  Parents
}

// New - create a pin registry
func New(log *logger.L, options Options) *Registry {
	return &Registry{
		log:      log,
		store:    options.Store,
		ledger:   options.Ledger,
		schedule: options.Locks,
		fees:     options.Fees,
		parents:  options.Parents,
	}
}

// Fee - fee of a pin or unpin at a height
func (r *Registry) Fee(height uint64, t transaction.Type) (uint64, error) {
	fees, err := r.fees.Params(height)
	if nil != err {
		return 0, err
	}
	switch t {
	case transaction.Pin:
		return fees.Pin, nil
	case transaction.Unpin:
		return fees.Unpin, nil
	default:
		return 0, fault.InvalidTransactionType
	}
}

// Verify - check a transaction against a view of the sender's fields
func (r *Registry) Verify(tx *transaction.Transaction, sender *ledger.Account, fields ledger.Fields, lastHeight uint64) error {
	if nil == sender || "" == tx.SenderId {
		return fault.InvalidSender
	}
	if "" != tx.RecipientId {
		return fault.InvalidRecipient
	}
	if 0 != tx.Amount {
		return fault.AmountNotZero
	}
	asset, err := assetOf(tx)
	if nil != err {
		return err
	}
	if 0 == asset.Bytes {
		return fault.BytesIsZero
	}
	fee, err := r.Fee(lastHeight, tx.Type)
	if nil != err {
		return err
	}
	if tx.Fee != fee {
		return fault.InvalidFee
	}
	if sender.Balance < fields.LockedBalance || sender.Balance-fields.LockedBalance < tx.Fee {
		return fault.InsufficientFunds
	}

	latest, found := r.MostRecentPin(asset.Hash, tx.SenderId)
	if found && tx.Timestamp < latest.Timestamp {
		return fault.StaleTimestamp
	}

	switch tx.Type {
	case transaction.Pin:
		if found && transaction.Pin == latest.Type {
			return fault.AlreadyPinned
		}
		replication, err := r.schedule.Replication(lastHeight)
		if nil != err {
			return err
		}
		available := AvailableLockedBytes(fields, replication)
		hi, needed := bits.Mul64(asset.Bytes, replication)
		if 0 != hi || needed > available {
			r.log.Debugf("pin: %s needs %d locked bytes, %d available", asset.Hash, needed, available)
			return fault.InsufficientLockedBytes
		}
		if 0 != asset.Parent {
			parent, err := r.parents.Get(asset.Parent)
			if nil != err {
				return fault.ParentNotFound
			}
			if parent.SenderId != tx.SenderId {
				return fault.ParentMismatch
			}
		}
		return nil

	case transaction.Unpin:
		if !found || transaction.Pin != latest.Type {
			return fault.NotPinned
		}
		if asset.Bytes != latest.Bytes {
			return fault.UnpinBytesMismatch
		}
		return nil

	default:
		return fault.InvalidTransactionType
	}
}

// AvailableLockedBytes - locked bytes not yet covering replicated pins
func AvailableLockedBytes(fields ledger.Fields, replication uint64) uint64 {
	hi, pinned := bits.Mul64(fields.PinnedBytes, replication)
	if 0 != hi || pinned >= fields.LockedBytes {
		return 0
	}
	return fields.LockedBytes - pinned
}

// Ready - true once a multisignature sender has enough signatures
func (r *Registry) Ready(tx *transaction.Transaction, sender *ledger.Account) bool {
	return sender.Ready(len(tx.Signatures))
}

// PoolKey - a pin or unpin changes the history of its (hash, sender)
// pair
func (r *Registry) PoolKey(tx *transaction.Transaction) (string, bool) {
	asset, err := assetOf(tx)
	if nil != err {
		return "", false
	}
	return string(historyPrefix(asset.Hash, tx.SenderId)), true
}

// Apply - merge the pinned bytes into the confirmed projection
func (r *Registry) Apply(tx *transaction.Transaction, block transaction.Block) error {
	d, err := delta(tx)
	if nil != err {
		return err
	}
	_, err = r.ledger.Confirmed().Merge(tx.SenderId, d, block.Id, block.Round)
	return err
}

// Undo - exact inverse of Apply
func (r *Registry) Undo(tx *transaction.Transaction, block transaction.Block) error {
	d, err := delta(tx)
	if nil != err {
		return err
	}
	_, err = r.ledger.Confirmed().Merge(tx.SenderId, d.Negate(), block.Id, block.Round)
	return err
}

// ApplyUnconfirmed - merge the pinned bytes into the unconfirmed projection
func (r *Registry) ApplyUnconfirmed(tx *transaction.Transaction) error {
	d, err := delta(tx)
	if nil != err {
		return err
	}
	_, err = r.ledger.Unconfirmed().Merge(tx.SenderId, d, 0, 0)
	return err
}

// UndoUnconfirmed - exact inverse of ApplyUnconfirmed
func (r *Registry) UndoUnconfirmed(tx *transaction.Transaction) error {
	d, err := delta(tx)
	if nil != err {
		return err
	}
	_, err = r.ledger.Unconfirmed().Merge(tx.SenderId, d.Negate(), 0, 0)
	return err
}

// no currency moves, only pinned bytes
func delta(tx *transaction.Transaction) (ledger.Delta, error) {
	asset, err := assetOf(tx)
	if nil != err {
		return ledger.Delta{}, err
	}
	if asset.Bytes > math.MaxInt64 {
		return ledger.Delta{}, fault.FieldOverflow
	}
	d := ledger.Delta{PinnedBytes: int64(asset.Bytes)}
	switch tx.Type {
	case transaction.Pin:
		return d, nil
	case transaction.Unpin:
		return d.Negate(), nil
	default:
		return ledger.Delta{}, fault.InvalidTransactionType
	}
}
