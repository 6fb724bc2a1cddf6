// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"encoding/binary"
	"strconv"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/shiftnrg/shiftd/account"
	"github.com/shiftnrg/shiftd/fault"
)

// Type - the transaction type byte
type Type uint8

// enumerate the transaction types, the storage engines handle only
// the last four
const (
	Send            Type = 0
	SecondSignature Type = 1
	Delegate        Type = 2
	Vote            Type = 3
	MultiSignature  Type = 4
	Dapp            Type = 5
	InTransfer      Type = 6
	OutTransfer     Type = 7
	Lock            Type = 8
	Unlock          Type = 9
	Pin             Type = 10
	Unpin           Type = 11
)

var typeNames = map[Type]string{
	Send:            "send",
	SecondSignature: "signature",
	Delegate:        "delegate",
	Vote:            "vote",
	MultiSignature:  "multi",
	Dapp:            "dapp",
	InTransfer:      "in-transfer",
	OutTransfer:     "out-transfer",
	Lock:            "lock",
	Unlock:          "unlock",
	Pin:             "pin",
	Unpin:           "unpin",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "type-" + strconv.Itoa(int(t))
}

// IsStorage - true for the four storage transaction types
func (t Type) IsStorage() bool {
	return t >= Lock && t <= Unpin
}

// Asset - type specific payload
type Asset interface {
	Pack() []byte
}

// Transaction - a signed transaction
type Transaction struct {
	Type            Type            `json:"type"`
	Timestamp       uint32          `json:"timestamp"`
	SenderPublicKey []byte          `json:"senderPublicKey"`
	SenderId        account.Address `json:"senderId"`
	RecipientId     account.Address `json:"recipientId,omitempty"`
	Amount          uint64          `json:"amount"`
	Fee             uint64          `json:"fee"`
	Asset           Asset           `json:"asset"`
	Signature       []byte          `json:"signature,omitempty"`
	Signatures      [][]byte        `json:"signatures,omitempty"` // multisignature group members
}

// type ++ timestamp ++ sender key ++ recipient ++ amount
const fixedLength = 1 + 4 + account.PublicKeyLength + 8 + 8

// Block - the block context a transaction is applied in
type Block struct {
	Id        uint64
	Height    uint64
	Round     uint64
	Timestamp uint32
}

// Pack - the byte form that is hashed and signed
func (tx *Transaction) Pack() ([]byte, error) {
	if account.PublicKeyLength != len(tx.SenderPublicKey) {
		return nil, fault.InvalidSender
	}
	recipient, err := accountNumber(tx.RecipientId)
	if nil != err {
		return nil, err
	}

	asset := []byte(nil)
	if nil != tx.Asset {
		asset = tx.Asset.Pack()
	}

	buffer := make([]byte, fixedLength, fixedLength+len(asset)+len(tx.Signature))
	buffer[0] = byte(tx.Type)
	binary.LittleEndian.PutUint32(buffer[1:], tx.Timestamp)
	copy(buffer[5:], tx.SenderPublicKey)
	binary.BigEndian.PutUint64(buffer[37:], recipient)
	binary.LittleEndian.PutUint64(buffer[45:], tx.Amount)
	buffer = append(buffer, asset...)
	buffer = append(buffer, tx.Signature...)
	return buffer, nil
}

// Id - transaction identifier
func (tx *Transaction) Id() (uint64, error) {
	packed, err := tx.Pack()
	if nil != err {
		return 0, err
	}
	digest := sha3.Sum256(packed)
	return binary.LittleEndian.Uint64(digest[:8]), nil
}

// numeric part of an address, zero for none
func accountNumber(address account.Address) (uint64, error) {
	if "" == address {
		return 0, nil
	}
	if _, err := account.Parse(address.String()); nil != err {
		return 0, err
	}
	return strconv.ParseUint(strings.TrimSuffix(address.String(), "S"), 10, 64)
}
