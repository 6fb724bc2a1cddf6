// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package api

import (
	"net/http"

	"github.com/shiftnrg/shiftd/fault"
	"github.com/shiftnrg/shiftd/lock"
	"github.com/shiftnrg/shiftd/transaction"
)

type lockFees struct {
	Lock   uint64 `json:"lock"`
	Unlock uint64 `json:"unlock"`
}

type bytesReply struct {
	Success bool   `json:"success"`
	Bytes   uint64 `json:"bytes"`
}

type balanceReply struct {
	Success bool   `json:"success"`
	Balance uint64 `json:"balance"`
}

func (s *Server) lockFee(w http.ResponseWriter, r *http.Request) {
	height, err := optionalUintParameter(r, "height", s.lastHeight())
	if nil != err {
		sendFault(w, err)
		return
	}

	var fees lockFees
	if fees.Lock, err = s.options.Locks.Fee(height, transaction.Lock); nil != err {
		sendFault(w, err)
		return
	}
	if fees.Unlock, err = s.options.Locks.Fee(height, transaction.Unlock); nil != err {
		sendFault(w, err)
		return
	}

	sendReply(w, struct {
		Success bool     `json:"success"`
		Fee     lockFees `json:"fee"`
		Height  uint64   `json:"height"`
	}{true, fees, height})
}

// bytes a lock of amount would be granted against the latest block
func (s *Server) calcLock(w http.ResponseWriter, r *http.Request) {
	amount, err := uintParameter(r, "amount")
	if nil != err {
		sendFault(w, err)
		return
	}
	last, ok := s.options.Stats.Last()
	if !ok {
		sendFault(w, fault.InsufficientSamples)
		return
	}
	bytes, err := s.options.Locks.CalcLockBytes(last.Height, amount, last)
	if nil != err {
		sendFault(w, err)
		return
	}
	sendReply(w, bytesReply{true, bytes})
}

func (s *Server) calcUnlock(w http.ResponseWriter, r *http.Request) {
	address, err := addressParameter(r)
	if nil != err {
		sendFault(w, err)
		return
	}
	amount, err := uintParameter(r, "amount")
	if nil != err {
		sendFault(w, err)
		return
	}
	bytes, err := lock.CalcUnlockBytes(s.options.Ledger.Confirmed().Fields(address), amount)
	if nil != err {
		sendFault(w, err)
		return
	}
	sendReply(w, bytesReply{true, bytes})
}

func (s *Server) lockedBalance(w http.ResponseWriter, r *http.Request) {
	address, err := addressParameter(r)
	if nil != err {
		sendFault(w, err)
		return
	}
	sendReply(w, balanceReply{true, s.options.Ledger.Confirmed().Fields(address).LockedBalance})
}

func (s *Server) lockedBytes(w http.ResponseWriter, r *http.Request) {
	address, err := addressParameter(r)
	if nil != err {
		sendFault(w, err)
		return
	}
	sendReply(w, bytesReply{true, s.options.Ledger.Confirmed().Fields(address).LockedBytes})
}

func (s *Server) totalLockedBytes(w http.ResponseWriter, _ *http.Request) {
	sendReply(w, bytesReply{true, s.options.Ledger.Totals().LockedBytes})
}

func (s *Server) totalLockedBalance(w http.ResponseWriter, _ *http.Request) {
	sendReply(w, balanceReply{true, s.options.Ledger.Totals().LockedBalance})
}

// the block stats a transaction with this timestamp would reference,
// or the latest without one
func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	timestamp, err := optionalUintParameter(r, "timestamp", 0)
	if nil != err {
		sendFault(w, err)
		return
	}

	last, ok := s.options.Stats.Last()
	if !ok {
		sendFault(w, fault.StatsNotFound)
		return
	}
	stats := last
	if 0 != timestamp {
		if stats, err = s.options.Stats.At(timestamp, last.Height); nil != err {
			sendFault(w, err)
			return
		}
	}

	sendReply(w, struct {
		Success bool   `json:"success"`
		Height  uint64 `json:"height"`
		Bytes   uint64 `json:"bytes"`
		Size    uint64 `json:"size"`
	}{true, stats.Height, stats.LockedBytes, stats.ClusterSize})
}
