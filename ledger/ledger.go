// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/logger"

	"github.com/shiftnrg/shiftd/account"
	"github.com/shiftnrg/shiftd/fault"
	"github.com/shiftnrg/shiftd/storage"
)

var totalsKey = []byte("totals")

// Reader - the read side used by the engines and the API
type Reader interface {
	Account(address account.Address) (*Account, error)
	Totals() Fields
}

// Ledger - account records plus the two projections of their
// storage fields
type Ledger struct {
	log         *logger.L
	store       *storage.Store
	confirmed   *confirmed
	unconfirmed *unconfirmed
	senders     *senders
}

// New - create a ledger over an open store
func New(store *storage.Store) *Ledger {
	c := &confirmed{store: store}
	return &Ledger{
		log:       logger.New("ledger"),
		store:     store,
		confirmed: c,
		unconfirmed: &unconfirmed{
			store:     store,
			confirmed: c,
		},
		senders: newSenders(),
	}
}

// Confirmed - the projection changed by block apply/undo
func (l *Ledger) Confirmed() Projection {
	return l.confirmed
}

// Unconfirmed - the projection changed by pool admission
func (l *Ledger) Unconfirmed() Projection {
	return l.unconfirmed
}

// Account - read an account record with its confirmed fields
func (l *Ledger) Account(address account.Address) (*Account, error) {
	buffer := l.store.Transaction().Get(l.store.Pool.Accounts, address.Bytes())
	if nil == buffer {
		return nil, fault.AccountNotFound
	}
	return unpackAccount(address, buffer), nil
}

// PutAccount - create or replace the non-storage part of an account
//
// balances and signature groups belong to the base chain; the
// storage fields already recorded are preserved
func (l *Ledger) PutAccount(a *Account) error {
	trx := l.store.Transaction()

	record := *a
	if buffer := trx.Get(l.store.Pool.Accounts, a.Address.Bytes()); nil != buffer {
		record.Fields = unpackAccount(a.Address, buffer).Fields
	} else if record.Fields != (Fields{}) {
		// a new account's fields must also be reflected in totals
		totals, err := readTotals(trx, l.store).Merge(Delta{
			LockedBalance: int64(record.LockedBalance),
			LockedBytes:   int64(record.LockedBytes),
			PinnedBytes:   int64(record.PinnedBytes),
		})
		if nil != err {
			return err
		}
		trx.Put(l.store.Pool.Totals, totalsKey, packFields(totals))
	}

	if record.LockedBalance > record.Balance {
		return fault.LockedExceedsBalance
	}

	trx.Put(l.store.Pool.Accounts, a.Address.Bytes(), packAccount(&record))
	l.log.Debugf("account: %s  balance: %d", a.Address, a.Balance)
	return nil
}

// Totals - sum of the confirmed fields over all accounts
//
// a single record so the read is atomic with respect to block commits
func (l *Ledger) Totals() Fields {
	return readTotals(l.store.Transaction(), l.store)
}

// ResetUnconfirmed - drop the shadow of one account after it left
// the pool
func (l *Ledger) ResetUnconfirmed(address account.Address) error {
	return l.store.Pool.Unconfirmed.Delete(address.Bytes())
}

// ClearUnconfirmed - drop every shadow, used when the pool starts empty
func (l *Ledger) ClearUnconfirmed() error {
	keys := [][]byte{}
	err := l.store.Pool.Unconfirmed.NewFetchCursor().Map(func(key []byte, _ []byte) error {
		keys = append(keys, key)
		return nil
	})
	if nil != err {
		return err
	}
	for _, key := range keys {
		if err := l.store.Pool.Unconfirmed.Delete(key); nil != err {
			return err
		}
	}
	l.log.Infof("cleared unconfirmed accounts: %d", len(keys))
	return nil
}

// Serialize - run f with exclusive access to the sender's
// unconfirmed fields
func (l *Ledger) Serialize(address account.Address, f func() error) error {
	l.senders.lock(address)
	defer l.senders.unlock(address)
	return f()
}

func readTotals(trx storage.Transaction, store *storage.Store) Fields {
	buffer := trx.Get(store.Pool.Totals, totalsKey)
	if nil == buffer {
		return Fields{}
	}
	return unpackFields(buffer)
}
