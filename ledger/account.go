// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"

	"github.com/shiftnrg/shiftd/account"
	"github.com/shiftnrg/shiftd/fault"
)

// Account - confirmed account state seen by the storage engines
type Account struct {
	Address         account.Address `json:"address"`
	Balance         uint64          `json:"balance"`
	Fields                          // confirmed locked/pinned values
	MultiMin        uint64          `json:"multimin"`
	MultiSignatures [][]byte        `json:"multisignatures"`
	BlockId         uint64          `json:"blockId"` // block of the last merge
	Round           uint64          `json:"round"`
}

// IsMultisig - true if the account has a registered signature group
func (a *Account) IsMultisig() bool {
	return len(a.MultiSignatures) > 0
}

// Ready - true if a transaction carrying this many group signatures
// may be confirmed for the account
func (a *Account) Ready(signatures int) bool {
	if !a.IsMultisig() {
		return true
	}
	return uint64(signatures) >= a.MultiMin
}

// record layout
const (
	fieldsLength  = 3 * 8
	accountFixed  = 8 + fieldsLength + 3*8 + 1
	publicKeySize = account.PublicKeyLength
)

func packFields(f Fields) []byte {
	buffer := make([]byte, fieldsLength)
	binary.BigEndian.PutUint64(buffer[0:], f.LockedBalance)
	binary.BigEndian.PutUint64(buffer[8:], f.LockedBytes)
	binary.BigEndian.PutUint64(buffer[16:], f.PinnedBytes)
	return buffer
}

func unpackFields(buffer []byte) Fields {
	if len(buffer) < fieldsLength {
		fault.Panicf("ledger: truncated fields record: %x", buffer)
	}
	return Fields{
		LockedBalance: binary.BigEndian.Uint64(buffer[0:]),
		LockedBytes:   binary.BigEndian.Uint64(buffer[8:]),
		PinnedBytes:   binary.BigEndian.Uint64(buffer[16:]),
	}
}

// balance ++ fields ++ multimin ++ blockId ++ round ++ count ++ keys
func packAccount(a *Account) []byte {
	buffer := make([]byte, accountFixed, accountFixed+len(a.MultiSignatures)*publicKeySize)
	binary.BigEndian.PutUint64(buffer[0:], a.Balance)
	copy(buffer[8:], packFields(a.Fields))
	n := 8 + fieldsLength
	binary.BigEndian.PutUint64(buffer[n:], a.MultiMin)
	binary.BigEndian.PutUint64(buffer[n+8:], a.BlockId)
	binary.BigEndian.PutUint64(buffer[n+16:], a.Round)
	buffer[n+24] = byte(len(a.MultiSignatures))
	for _, k := range a.MultiSignatures {
		buffer = append(buffer, k...)
	}
	return buffer
}

func unpackAccount(address account.Address, buffer []byte) *Account {
	if len(buffer) < accountFixed {
		fault.Panicf("ledger: truncated account record for: %s", address)
	}
	n := 8 + fieldsLength
	a := &Account{
		Address:  address,
		Balance:  binary.BigEndian.Uint64(buffer[0:]),
		Fields:   unpackFields(buffer[8:]),
		MultiMin: binary.BigEndian.Uint64(buffer[n:]),
		BlockId:  binary.BigEndian.Uint64(buffer[n+8:]),
		Round:    binary.BigEndian.Uint64(buffer[n+16:]),
	}
	count := int(buffer[n+24])
	keys := buffer[accountFixed:]
	if len(keys) != count*publicKeySize {
		fault.Panicf("ledger: corrupt signature group for: %s", address)
	}
	for i := 0; i < count; i += 1 {
		k := make([]byte, publicKeySize)
		copy(k, keys[i*publicKeySize:])
		a.MultiSignatures = append(a.MultiSignatures, k)
	}
	return a
}
