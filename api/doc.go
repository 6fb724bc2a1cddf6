// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package api - read-only HTTP queries over locks, pins and the
// cluster figures
//
//   GET /api/locks/{fee,calcLock,calcUnlock,balance,bytes,totalBytes,totalBalance,stats}
//   GET /api/pins/{fee,bytes,totalBytes,verify,parent}
//   GET /metrics
//
// every reply is a JSON object carrying "success"; failures add
// "error" with status 400 for rejected input, 404 for missing records
// and 409 when no capacity figure can be given
package api
