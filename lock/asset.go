// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lock

import (
	"encoding/binary"

	"github.com/shiftnrg/shiftd/fault"
	"github.com/shiftnrg/shiftd/transaction"
)

// Asset - the payload of LOCK and UNLOCK
type Asset struct {
	Bytes uint64 `json:"bytes"`
}

const assetLength = 8

// Pack - bytes as little endian uint64
func (a *Asset) Pack() []byte {
	buffer := make([]byte, assetLength)
	binary.LittleEndian.PutUint64(buffer, a.Bytes)
	return buffer
}

// DecodeAsset - inverse of Pack
func DecodeAsset(buffer []byte) (*Asset, error) {
	if assetLength != len(buffer) {
		return nil, fault.InvalidAsset
	}
	return &Asset{Bytes: binary.LittleEndian.Uint64(buffer)}, nil
}

func assetOf(tx *transaction.Transaction) (*Asset, error) {
	a, ok := tx.Asset.(*Asset)
	if !ok || nil == a {
		return nil, fault.InvalidAsset
	}
	return a, nil
}

// DecodeAsset - the asset of a packed lock or unlock
func (e *Engine) DecodeAsset(buffer []byte) (transaction.Asset, error) {
	a, err := DecodeAsset(buffer)
	if nil != err {
		return nil, err
	}
	return a, nil
}
