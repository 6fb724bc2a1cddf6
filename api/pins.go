// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package api

import (
	"math/bits"
	"net/http"

	"github.com/shiftnrg/shiftd/cid"
	"github.com/shiftnrg/shiftd/fault"
	"github.com/shiftnrg/shiftd/pin"
	"github.com/shiftnrg/shiftd/transaction"
)

type pinFees struct {
	Pin   uint64 `json:"pin"`
	Unpin uint64 `json:"unpin"`
}

func (s *Server) pinFee(w http.ResponseWriter, r *http.Request) {
	height, err := optionalUintParameter(r, "height", s.lastHeight())
	if nil != err {
		sendFault(w, err)
		return
	}

	var fees pinFees
	if fees.Pin, err = s.options.Pins.Fee(height, transaction.Pin); nil != err {
		sendFault(w, err)
		return
	}
	if fees.Unpin, err = s.options.Pins.Fee(height, transaction.Unpin); nil != err {
		sendFault(w, err)
		return
	}

	sendReply(w, struct {
		Success bool    `json:"success"`
		Fee     pinFees `json:"fee"`
		Height  uint64  `json:"height"`
	}{true, fees, height})
}

// pinned bytes count once per replica
func (s *Server) replicated(pinned uint64) (uint64, error) {
	replication, err := s.options.Replication.Replication(s.lastHeight())
	if nil != err {
		return 0, err
	}
	hi, lo := bits.Mul64(pinned, replication)
	if 0 != hi {
		return 0, fault.FieldOverflow
	}
	return lo, nil
}

func (s *Server) pinnedBytes(w http.ResponseWriter, r *http.Request) {
	address, err := addressParameter(r)
	if nil != err {
		sendFault(w, err)
		return
	}
	bytes, err := s.replicated(s.options.Ledger.Confirmed().Fields(address).PinnedBytes)
	if nil != err {
		sendFault(w, err)
		return
	}
	sendReply(w, bytesReply{true, bytes})
}

func (s *Server) totalPinnedBytes(w http.ResponseWriter, _ *http.Request) {
	bytes, err := s.replicated(s.options.Ledger.Totals().PinnedBytes)
	if nil != err {
		sendFault(w, err)
		return
	}
	sendReply(w, bytesReply{true, bytes})
}

// whether the sender's latest record for a content id is a pin
func (s *Server) verifyPin(w http.ResponseWriter, r *http.Request) {
	address, err := addressParameter(r)
	if nil != err {
		sendFault(w, err)
		return
	}
	hash := r.URL.Query().Get("hash")
	if len(hash) < cid.MinimumLength || len(hash) > cid.MaximumLength {
		sendFault(w, fault.InvalidContentId)
		return
	}
	hash, err = cid.Canonical(hash)
	if nil != err {
		sendFault(w, err)
		return
	}

	reply := struct {
		Success       bool   `json:"success"`
		Pinned        bool   `json:"pinned"`
		Bytes         uint64 `json:"bytes"`
		TransactionId uint64 `json:"transactionId"`
	}{Success: true}

	if record, ok := s.options.Pins.MostRecentPin(hash, address); ok && transaction.Pin == record.Type {
		reply.Pinned = true
		reply.Bytes = record.Bytes
		reply.TransactionId = record.TransactionId
	}
	sendReply(w, reply)
}

func (s *Server) pinsByParent(w http.ResponseWriter, r *http.Request) {
	parent, err := uintParameter(r, "id")
	if nil != err {
		sendFault(w, err)
		return
	}
	rows, err := s.options.Pins.PinsByParent(parent)
	if nil != err {
		sendFault(w, err)
		return
	}
	if nil == rows {
		rows = []*pin.Row{}
	}
	sendReply(w, struct {
		Success bool       `json:"success"`
		Pins    []*pin.Row `json:"pins"`
	}{true, rows})
}
