// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix
// 2. ++           = concatenation of byte data
// 3. height       = big endian uint64 (8 bytes)
// 4. txId         = transaction id as big endian uint64 (8 bytes)
// 5. address      = account address string bytes
// 6. timestamp    = epoch seconds as big endian uint64 (8 bytes)
// 7. hash         = canonical content identifier string bytes (46 bytes)
//
// Accounts:
//
//   A ++ address               - confirmed account projection
//                                data: packed ledger.Account
//   U ++ address               - unconfirmed account projection
//                                data: packed ledger.Fields
//   Z ++ "totals"              - sums over all confirmed accounts
//                                data: locked balance ++ locked bytes ++ pinned bytes
//
// Transactions:
//
//   T ++ txId                  - confirmed transactions
//                                data: type ++ timestamp(4) ++ height ++ amount ++ address
//   L ++ txId                  - lock rows
//                                data: bytes
//   P ++ txId                  - pin rows
//                                data: bytes ++ parent ++ hash
//   I ++ hash ++ 0x00 ++ address ++ 0x00 ++ timestamp ++ txId
//                              - pin history per (hash, sender)
//                                data: type ++ bytes
//   R ++ parent txId ++ txId   - pins by parent
//                                data: empty
//
// Cluster:
//
//   C ++ slot id               - cluster snapshot ring
//                                data: packed cluster.Snapshot
//   S ++ height                - block stats
//                                data: timestamp ++ locked bytes ++ cluster size
//   W ++ timestamp ++ height   - block stats by time
//                                data: empty
//
// Testing:
//
//   X ++ key                   - testing data
package storage
