// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package pin - pin registry
//
// A PIN registers a content identifier against the sender's locked
// bytes and an UNPIN releases it.  The history of each (hash, sender)
// pair is kept in timestamp order; only its latest record decides
// whether the content is currently pinned.
package pin
