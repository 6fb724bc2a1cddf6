// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

// ScratchPool - a pool for tests, outside the production prefixes
func (s *Store) ScratchPool() *PoolHandle {
	return &PoolHandle{
		prefix: 'X',
		limit:  []byte{'Y'},
		store:  s,
	}
}

// Prefix - the key prefix of a pool
func (p *PoolHandle) Prefix() byte {
	return p.prefix
}
