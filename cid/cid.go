// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package cid - content identifier canonicalisation
//
// identifiers are stored as version 0 (base58btc multihash, "Qm...")
// and exchanged as version 1 (multibase base32, dag-pb, "bafy...").
// Both forms carry the same sha2-256 multihash so conversion is
// lossless in either direction.
package cid

import (
	"strings"

	"github.com/mr-tron/base58"
	"github.com/multiformats/go-multibase"
	mh "github.com/multiformats/go-multihash"

	"github.com/shiftnrg/shiftd/fault"
)

// identifier limits accepted from clients
const (
	MinimumLength = 46 // version 0
	MaximumLength = 60

	versionZeroLength = 46
	versionOne        = 0x01
	dagProtobuf       = 0x70
	digestLength      = 32
)

// Canonical - the stored form of an identifier given in either encoding
func Canonical(id string) (string, error) {
	hash, err := multihashOf(id)
	if nil != err {
		return "", err
	}
	return base58.Encode(hash), nil
}

// External - the exchange form of an identifier given in either encoding
func External(id string) (string, error) {
	hash, err := multihashOf(id)
	if nil != err {
		return "", err
	}
	buffer := make([]byte, 0, 2+len(hash))
	buffer = append(buffer, versionOne, dagProtobuf)
	buffer = append(buffer, hash...)
	return multibase.Encode(multibase.Base32, buffer)
}

// IsCanonical - true if the identifier is already in stored form
func IsCanonical(id string) bool {
	return versionZeroLength == len(id) && strings.HasPrefix(id, "Qm")
}

// extract and validate the sha2-256 multihash
func multihashOf(id string) ([]byte, error) {
	if len(id) < MinimumLength || len(id) > MaximumLength {
		return nil, fault.InvalidContentId
	}

	var hash []byte
	if IsCanonical(id) {
		b, err := base58.Decode(id)
		if nil != err {
			return nil, fault.InvalidContentId
		}
		hash = b
	} else {
		encoding, b, err := multibase.Decode(id)
		if nil != err || multibase.Base32 != encoding {
			return nil, fault.InvalidContentId
		}
		if len(b) < 2 || versionOne != b[0] || dagProtobuf != b[1] {
			return nil, fault.InvalidContentId
		}
		hash = b[2:]
	}

	decoded, err := mh.Decode(hash)
	if nil != err {
		return nil, fault.InvalidContentId
	}
	if mh.SHA2_256 != decoded.Code || digestLength != decoded.Length {
		return nil, fault.InvalidContentId
	}
	return hash, nil
}
