// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package milestone

// Reward - forging reward and delegate salary per block
type Reward struct {
	Reward uint64 `gluamapper:"reward" json:"reward"`
	Salary uint64 `gluamapper:"salary" json:"salary"`
}

// BlockReward - reward schedule on top of a genesis supply
type BlockReward struct {
	table         *Table[Reward]
	genesisSupply uint64
}

// NewBlockReward - create a reward calculator
func NewBlockReward(entries []Entry[Reward], genesisSupply uint64) (*BlockReward, error) {
	t, err := New(entries)
	if nil != err {
		return nil, err
	}
	return &BlockReward{
		table:         t,
		genesisSupply: genesisSupply,
	}, nil
}

// Milestone - index of the reward entry in force at a height
func (b *BlockReward) Milestone(height uint64) (int, error) {
	return b.table.Index(height)
}

// Reward - block reward at a height
func (b *BlockReward) Reward(height uint64) (uint64, error) {
	r, err := b.table.Params(height)
	return r.Reward, err
}

// Salary - delegate salary at a height
func (b *BlockReward) Salary(height uint64) (uint64, error) {
	r, err := b.table.Params(height)
	return r.Salary, err
}

// Supply - total currency in existence at a height
//
// each completed milestone contributes its full span, the current
// one contributes the blocks after its start height; a height exactly
// on a boundary therefore adds nothing at the new reward
func (b *BlockReward) Supply(height uint64) (uint64, error) {
	m, err := b.table.Index(height)
	if nil != err {
		return 0, err
	}

	supply := b.genesisSupply
	for i := 0; i < m; i += 1 {
		span := b.table.entries[i+1].Height - b.table.entries[i].Height
		supply += span * b.table.entries[i].Params.Reward
	}

	current := b.table.entries[m]
	supply += (height - current.Height) * current.Params.Reward

	return supply, nil
}
