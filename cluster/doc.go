// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package cluster - storage cluster capacity oracle
//
// Once per block interval one storage peer is picked at random and
// asked for its view of the cluster's total and used capacity.  The
// reports are buffered per snapshot slot and the most frequent value
// is persisted once the slot moves on, so a single noisy peer cannot
// set the figure.  Readers take the median of the most recent
// snapshots.
//
// Verification never reads the snapshots directly: each applied block
// records the cluster size and locked byte total it saw (the block
// stats) and transactions are priced against those, so every node
// reaches the same result.
package cluster
