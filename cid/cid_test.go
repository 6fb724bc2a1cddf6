// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shiftnrg/shiftd/cid"
	"github.com/shiftnrg/shiftd/fault"
)

// well known pair: the empty unixfs directory
const (
	emptyDirV0 = "QmUNLLsPACCz1vLxQVkXqqLX5R1X345qqfHbsf67hvA3Nn"
	emptyDirV1 = "bafybeiczsscdsbs7ffqz55asqdf3smv6klcw3gofszvwlyarci47bgf354"
)

func TestCanonicalFromExternal(t *testing.T) {
	c, err := cid.Canonical(emptyDirV1)
	assert.Nil(t, err, "canonical")
	assert.Equal(t, emptyDirV0, c, "wrong canonical form")
}

func TestExternalFromCanonical(t *testing.T) {
	e, err := cid.External(emptyDirV0)
	assert.Nil(t, err, "external")
	assert.Equal(t, emptyDirV1, e, "wrong external form")
}

func TestRoundTrip(t *testing.T) {
	for _, id := range []string{emptyDirV0, emptyDirV1} {
		e, err := cid.External(id)
		assert.Nil(t, err, "external of %s", id)
		c, err := cid.Canonical(e)
		assert.Nil(t, err, "canonical of %s", e)
		assert.Equal(t, emptyDirV0, c, "round trip of %s", id)

		again, err := cid.External(c)
		assert.Nil(t, err, "external again")
		assert.Equal(t, e, again, "external not stable")
	}
}

func TestCanonicalIsIdempotent(t *testing.T) {
	c, err := cid.Canonical(emptyDirV0)
	assert.Nil(t, err, "canonical")
	assert.Equal(t, emptyDirV0, c, "canonical changed a canonical id")
	assert.True(t, cid.IsCanonical(c), "not recognised as canonical")
	assert.False(t, cid.IsCanonical(emptyDirV1), "external recognised as canonical")
}

func TestInvalid(t *testing.T) {
	items := []string{
		"",
		"Qm",
		"QmUNLLsPACCz1vLxQVkXqqLX5R1X345qqfHbsf67hvA3N0",   // '0' is not base58
		"zdj7WWeQ43G6JJvLWQWZpyHuAMq6uYWRjkBXFad11vE2LHhQ7", // base58 multibase version 1
		"bafybeiczsscdsbs7ffqz55asqdf3smv6klcw3gofszvwlyarci47bgf354bafybeic",
	}
	for _, id := range items {
		_, err := cid.Canonical(id)
		assert.Equal(t, fault.InvalidContentId, err, "accepted: %q", id)
	}
}
