// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package milestone

// Fees - per transaction type fee, in fixed point units
type Fees struct {
	Send            uint64 `gluamapper:"send" json:"send"`
	Vote            uint64 `gluamapper:"vote" json:"vote"`
	SecondSignature uint64 `gluamapper:"second_signature" json:"secondsignature"`
	Delegate        uint64 `gluamapper:"delegate" json:"delegate"`
	MultiSignature  uint64 `gluamapper:"multisignature" json:"multisignature"`
	Dapp            uint64 `gluamapper:"dapp" json:"dapp"`
	Lock            uint64 `gluamapper:"lock" json:"lock"`
	Unlock          uint64 `gluamapper:"unlock" json:"unlock"`
	Pin             uint64 `gluamapper:"pin" json:"pin"`
	Unpin           uint64 `gluamapper:"unpin" json:"unpin"`
}

// FeeSchedule - fees by height
type FeeSchedule struct {
	*Table[Fees]
}

// NewFeeSchedule - create from milestone entries
func NewFeeSchedule(entries []Entry[Fees]) (*FeeSchedule, error) {
	t, err := New(entries)
	if nil != err {
		return nil, err
	}
	return &FeeSchedule{Table: t}, nil
}
