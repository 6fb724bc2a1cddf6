// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"encoding/binary"
	"strconv"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/shiftnrg/shiftd/fault"
)

// miscellaneous constants
const (
	PublicKeyLength = 32
	suffix          = "S"
)

// errors
var (
	InvalidAddress   = fault.InvalidError("invalid address")
	InvalidPublicKey = fault.InvalidError("invalid public key")
)

// Address - decimal account number followed by the chain suffix
type Address string

// FromPublicKey - derive the address of an ed25519 public key
//
// the account number is the first 8 bytes of SHA3-256(publicKey)
// read as little endian
func FromPublicKey(publicKey []byte) (Address, error) {
	if PublicKeyLength != len(publicKey) {
		return "", InvalidPublicKey
	}
	digest := sha3.Sum256(publicKey)
	n := binary.LittleEndian.Uint64(digest[:8])
	return Address(strconv.FormatUint(n, 10) + suffix), nil
}

// Parse - validate an address string
func Parse(s string) (Address, error) {
	if !strings.HasSuffix(s, suffix) {
		return "", InvalidAddress
	}
	digits := strings.TrimSuffix(s, suffix)
	if "" == digits || (len(digits) > 1 && '0' == digits[0]) {
		return "", InvalidAddress
	}
	if _, err := strconv.ParseUint(digits, 10, 64); nil != err {
		return "", InvalidAddress
	}
	return Address(s), nil
}

// String - for fmt
func (a Address) String() string {
	return string(a)
}

// Bytes - storage key form
func (a Address) Bytes() []byte {
	return []byte(a)
}
