// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package lock - storage bonding engine
//
// A LOCK bonds part of an account's balance and grants it a number of
// storage bytes; an UNLOCK releases balance and a pro-rata share of
// those bytes.  The price of a byte rises as the cluster fills:
//
//   free  = total - total/buffer - locked
//   bytes = amount / (compensation * (locked/free) * ratioFactor)
//
// where the (locked/free) term is dropped while nothing is locked.
// Prices are always computed from recorded block stats so every node
// validating a transaction at a height reaches the same result.
package lock
