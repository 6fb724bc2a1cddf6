// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pin

import (
	"encoding/binary"

	"github.com/shiftnrg/shiftd/cid"
	"github.com/shiftnrg/shiftd/fault"
	"github.com/shiftnrg/shiftd/transaction"
)

// Asset - the payload of PIN and UNPIN
//
// Hash is always held in canonical form; Parent zero means none
type Asset struct {
	Hash   string `json:"hash"`
	Bytes  uint64 `json:"bytes"`
	Parent uint64 `json:"parent,omitempty"`
}

// NewAsset - canonicalise the hash of a client supplied asset
func NewAsset(hash string, bytes uint64, parent uint64) (*Asset, error) {
	canonical, err := cid.Canonical(hash)
	if nil != err {
		return nil, err
	}
	return &Asset{
		Hash:   canonical,
		Bytes:  bytes,
		Parent: parent,
	}, nil
}

const hashLength = cid.MinimumLength

// Pack - hash ++ bytes ++ optional parent, integers little endian
func (a *Asset) Pack() []byte {
	n := len(a.Hash) + 8
	if 0 != a.Parent {
		n += 8
	}
	buffer := make([]byte, n)
	copy(buffer, a.Hash)
	binary.LittleEndian.PutUint64(buffer[len(a.Hash):], a.Bytes)
	if 0 != a.Parent {
		binary.LittleEndian.PutUint64(buffer[len(a.Hash)+8:], a.Parent)
	}
	return buffer
}

// DecodeAsset - inverse of Pack
func DecodeAsset(buffer []byte) (*Asset, error) {
	if len(buffer) != hashLength+8 && len(buffer) != hashLength+16 {
		return nil, fault.InvalidAsset
	}
	hash := string(buffer[:hashLength])
	if !cid.IsCanonical(hash) {
		return nil, fault.InvalidContentId
	}
	a := &Asset{
		Hash:  hash,
		Bytes: binary.LittleEndian.Uint64(buffer[hashLength:]),
	}
	if len(buffer) == hashLength+16 {
		a.Parent = binary.LittleEndian.Uint64(buffer[hashLength+8:])
		if 0 == a.Parent {
			return nil, fault.InvalidAsset
		}
	}
	return a, nil
}

func assetOf(tx *transaction.Transaction) (*Asset, error) {
	a, ok := tx.Asset.(*Asset)
	if !ok || nil == a {
		return nil, fault.InvalidAsset
	}
	if !cid.IsCanonical(a.Hash) {
		return nil, fault.InvalidContentId
	}
	return a, nil
}

// DecodeAsset - the asset of a packed pin or unpin
func (r *Registry) DecodeAsset(buffer []byte) (transaction.Asset, error) {
	a, err := DecodeAsset(buffer)
	if nil != err {
		return nil, err
	}
	return a, nil
}
