// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package reservoir - storage for:
// 1. pending lock, unlock, pin and unpin transactions admitted to the
//    unconfirmed projection and waiting for a block
// 2. the application and undo of confirmed blocks
//
// Admission verifies against the unconfirmed projection, one sender
// at a time.  A block is applied inside a single storage batch and
// either commits as a whole or leaves no trace.
package reservoir
