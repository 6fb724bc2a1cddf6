// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transaction - transaction records seen by the storage engines
//
// A packed transaction is:
//
//   type             1 byte
//   timestamp        4 bytes little endian, seconds since chain epoch
//   sender key      32 bytes
//   recipient        8 bytes big endian account number, zero if none
//   amount           8 bytes little endian
//   asset            type specific bytes
//   signature        remaining bytes (optional)
//
// the identifier is the first 8 bytes of SHA3-256(packed) read as a
// little endian integer.
package transaction
