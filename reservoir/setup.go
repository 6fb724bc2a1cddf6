// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir

import (
	"sort"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/shiftnrg/shiftd/account"
	"github.com/shiftnrg/shiftd/background"
	"github.com/shiftnrg/shiftd/cluster"
	"github.com/shiftnrg/shiftd/fault"
	"github.com/shiftnrg/shiftd/ledger"
	"github.com/shiftnrg/shiftd/metrics"
	"github.com/shiftnrg/shiftd/storage"
	"github.com/shiftnrg/shiftd/transaction"
)

const defaultExpiry = 3 * time.Hour

// Handler - verify, apply and undo for one family of transactions
type Handler interface {
	Verify(tx *transaction.Transaction, sender *ledger.Account, fields ledger.Fields, lastHeight uint64) error
	Ready(tx *transaction.Transaction, sender *ledger.Account) bool
	Apply(tx *transaction.Transaction, block transaction.Block) error
	Undo(tx *transaction.Transaction, block transaction.Block) error
	ApplyUnconfirmed(tx *transaction.Transaction) error
	UndoUnconfirmed(tx *transaction.Transaction) error
	Save(id uint64, tx *transaction.Transaction) error
	Delete(id uint64, tx *transaction.Transaction) error
	DecodeAsset(buffer []byte) (transaction.Asset, error)

	// PoolKey - the state a transaction changes; the pool holds at
	// most one transaction per key
	PoolKey(tx *transaction.Transaction) (string, bool)
}

// BlockStats - per block capacity figures
type BlockStats interface {
	Record(stats cluster.BlockStats)
	Delete(height uint64)
	Last() (cluster.BlockStats, bool)
}

// Options - collaborators and tuning of a reservoir
type Options struct {
	Store     *storage.Store
	Ledger    *ledger.Ledger
	Index     *transaction.Index
	Handlers  map[transaction.Type]Handler
	Stats     BlockStats
	Sizer     cluster.Sizer
	Expiry    time.Duration // zero selects the default
	CacheFile string        // empty disables load and save
}

type entry struct {
	tx        *transaction.Transaction
	ready     bool
	sequence  uint64
	expiresAt time.Time
}

// Reservoir - the pool of unconfirmed storage transactions
//
// the embedded lock is held exclusively while a block is applied or
// undone and shared by admission and expiry
type Reservoir struct {
	sync.RWMutex

	log      *logger.L
	store    *storage.Store
	ledger   *ledger.Ledger
	index    *transaction.Index
	handlers map[transaction.Type]Handler
	stats    BlockStats
	sizer    cluster.Sizer
	expiry   time.Duration
	filename string
	now      func() time.Time

	pool struct {
		sync.Mutex
		entries  map[uint64]*entry
		sequence uint64
	}

	background *background.T
}

// New - create an empty reservoir
func New(log *logger.L, options Options) *Reservoir {
	expiry := options.Expiry
	if 0 == expiry {
		expiry = defaultExpiry
	}
	r := &Reservoir{
		log:      log,
		store:    options.Store,
		ledger:   options.Ledger,
		index:    options.Index,
		handlers: options.Handlers,
		stats:    options.Stats,
		sizer:    options.Sizer,
		expiry:   expiry,
		filename: options.CacheFile,
		now:      time.Now,
	}
	r.pool.entries = make(map[uint64]*entry)
	return r
}

// Start - restore the cache file and start the expiry cleaner
func (r *Reservoir) Start() error {
	r.log.Info("starting…")

	if err := r.ledger.ClearUnconfirmed(); nil != err {
		return err
	}
	if "" != r.filename {
		if err := r.LoadFromFile(); nil != err {
			r.log.Warnf("restore from: %q  error: %s", r.filename, err)
		}
	}

	processes := background.Processes{
		&cleaner{log: r.log},
	}
	r.background = background.Start(processes, r)
	return nil
}

// Stop - stop the cleaner and write the pool to the cache file
func (r *Reservoir) Stop() {
	r.log.Info("shutting down…")

	if nil != r.background {
		r.background.Stop()
	}
	if "" != r.filename {
		if err := r.SaveToFile(); nil != err {
			r.log.Errorf("save to: %q  error: %s", r.filename, err)
		}
	}
	r.log.Info("finished")
	r.log.Flush()
}

// Admit - verify a transaction against the unconfirmed projection and
// add it to the pool
func (r *Reservoir) Admit(tx *transaction.Transaction) (uint64, error) {
	id, err := r.admit(tx)
	metrics.RecordAdmission(tx.Type.String(), err)
	if nil != err {
		r.log.Debugf("reject %s from: %s  error: %s", tx.Type, tx.SenderId, err)
	}
	return id, err
}

func (r *Reservoir) admit(tx *transaction.Transaction) (uint64, error) {
	h, ok := r.handlers[tx.Type]
	if !ok {
		return 0, fault.InvalidTransactionType
	}
	id, err := tx.Id()
	if nil != err {
		return 0, err
	}

	r.RLock()
	defer r.RUnlock()

	if r.pooled(id) || r.index.Has(id) {
		return 0, fault.TransactionAlreadyExists
	}
	sender, err := r.ledger.Account(tx.SenderId)
	if nil != err {
		return 0, err
	}
	lastHeight := r.lastHeight()

	err = r.ledger.Serialize(tx.SenderId, func() error {
		if r.pooled(id) {
			return fault.TransactionAlreadyExists
		}
		if key, ok := h.PoolKey(tx); ok {
			if _, found := r.pooledKey(key); found {
				return fault.PinPending
			}
		}
		fields := r.ledger.Unconfirmed().Fields(tx.SenderId)
		if err := h.Verify(tx, sender, fields, lastHeight); nil != err {
			return err
		}
		if err := h.ApplyUnconfirmed(tx); nil != err {
			return err
		}
		r.add(id, tx, h.Ready(tx, sender))
		return nil
	})
	if nil != err {
		return 0, err
	}
	return id, nil
}

// Get - a pooled transaction
func (r *Reservoir) Get(id uint64) (*transaction.Transaction, bool) {
	r.pool.Lock()
	defer r.pool.Unlock()
	e, ok := r.pool.entries[id]
	if !ok {
		return nil, false
	}
	return e.tx, true
}

// Pending - pooled transactions with all their signatures, in
// admission order
func (r *Reservoir) Pending() []*transaction.Transaction {
	r.pool.Lock()
	entries := make([]*entry, 0, len(r.pool.entries))
	for _, e := range r.pool.entries {
		if e.ready {
			entries = append(entries, e)
		}
	}
	r.pool.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].sequence < entries[j].sequence
	})
	txs := make([]*transaction.Transaction, len(entries))
	for i, e := range entries {
		txs[i] = e.tx
	}
	return txs
}

// Count - number of pooled transactions
func (r *Reservoir) Count() int {
	r.pool.Lock()
	defer r.pool.Unlock()
	return len(r.pool.entries)
}

func (r *Reservoir) pooled(id uint64) bool {
	r.pool.Lock()
	defer r.pool.Unlock()
	_, ok := r.pool.entries[id]
	return ok
}

// the pooled transaction holding a key
func (r *Reservoir) pooledKey(key string) (uint64, bool) {
	r.pool.Lock()
	defer r.pool.Unlock()
	for id, e := range r.pool.entries {
		if k, ok := r.handlers[e.tx.Type].PoolKey(e.tx); ok && k == key {
			return id, true
		}
	}
	return 0, false
}

func (r *Reservoir) add(id uint64, tx *transaction.Transaction, ready bool) {
	r.pool.Lock()
	defer r.pool.Unlock()
	r.pool.sequence += 1
	r.pool.entries[id] = &entry{
		tx:        tx,
		ready:     ready,
		sequence:  r.pool.sequence,
		expiresAt: r.now().Add(r.expiry),
	}
}

func (r *Reservoir) remove(id uint64) {
	r.pool.Lock()
	defer r.pool.Unlock()
	delete(r.pool.entries, id)
}

// true if any pooled transaction is from the sender
func (r *Reservoir) hasSender(address account.Address) bool {
	r.pool.Lock()
	defer r.pool.Unlock()
	for _, e := range r.pool.entries {
		if e.tx.SenderId == address {
			return true
		}
	}
	return false
}

// drop the unconfirmed shadow of senders with nothing left in the pool
//
// caller must hold the sender's serialization or the exclusive lock
func (r *Reservoir) resetIdle(address account.Address) {
	if r.hasSender(address) {
		return
	}
	if err := r.ledger.ResetUnconfirmed(address); nil != err {
		r.log.Errorf("reset unconfirmed: %s  error: %s", address, err)
	}
}

// the genesis height until a block is recorded
func (r *Reservoir) lastHeight() uint64 {
	last, ok := r.stats.Last()
	if !ok {
		return 1
	}
	return last.Height
}
