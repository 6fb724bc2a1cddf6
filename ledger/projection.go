// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/shiftnrg/shiftd/account"
	"github.com/shiftnrg/shiftd/fault"
	"github.com/shiftnrg/shiftd/storage"
)

// Projection - one mergeable view of the storage fields of every account
type Projection interface {
	Fields(address account.Address) Fields
	Merge(address account.Address, delta Delta, blockId uint64, round uint64) (Fields, error)
}

// confirmed state: lives in the account record and the totals key
//
// all writes go through the store's batch so a block's merges commit
// or vanish together
type confirmed struct {
	store *storage.Store
}

func (c *confirmed) Fields(address account.Address) Fields {
	trx := c.store.Transaction()
	buffer := trx.Get(c.store.Pool.Accounts, address.Bytes())
	if nil == buffer {
		return Fields{}
	}
	return unpackAccount(address, buffer).Fields
}

func (c *confirmed) Merge(address account.Address, delta Delta, blockId uint64, round uint64) (Fields, error) {
	trx := c.store.Transaction()

	a := &Account{Address: address}
	if buffer := trx.Get(c.store.Pool.Accounts, address.Bytes()); nil != buffer {
		a = unpackAccount(address, buffer)
	}

	merged, err := a.Fields.Merge(delta)
	if nil != err {
		return a.Fields, err
	}
	if merged.LockedBalance > a.Balance {
		return a.Fields, fault.LockedExceedsBalance
	}

	totals, err := readTotals(trx, c.store).Merge(delta)
	if nil != err {
		return a.Fields, err
	}

	a.Fields = merged
	a.BlockId = blockId
	a.Round = round

	trx.Put(c.store.Pool.Accounts, address.Bytes(), packAccount(a))
	trx.Put(c.store.Pool.Totals, totalsKey, packFields(totals))

	return merged, nil
}

// unconfirmed shadow: absent entries read through to confirmed state
type unconfirmed struct {
	store     *storage.Store
	confirmed *confirmed
}

func (u *unconfirmed) Fields(address account.Address) Fields {
	buffer := u.store.Pool.Unconfirmed.Get(address.Bytes())
	if nil == buffer {
		return u.confirmed.Fields(address)
	}
	return unpackFields(buffer)
}

// blockId and round are not recorded for the shadow
func (u *unconfirmed) Merge(address account.Address, delta Delta, _ uint64, _ uint64) (Fields, error) {
	current := u.Fields(address)
	merged, err := current.Merge(delta)
	if nil != err {
		return current, err
	}
	err = u.store.Pool.Unconfirmed.Put(address.Bytes(), packFields(merged))
	if nil != err {
		return current, err
	}
	return merged, nil
}
