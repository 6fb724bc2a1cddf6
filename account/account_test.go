// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shiftnrg/shiftd/account"
)

func TestFromPublicKey(t *testing.T) {
	pk := bytes.Repeat([]byte{0x5a}, account.PublicKeyLength)

	a, err := account.FromPublicKey(pk)
	assert.Nil(t, err, "derive")

	again, _ := account.FromPublicKey(pk)
	assert.Equal(t, a, again, "derivation not stable")

	parsed, err := account.Parse(a.String())
	assert.Nil(t, err, "derived address does not parse")
	assert.Equal(t, a, parsed, "wrong parse")

	other, _ := account.FromPublicKey(bytes.Repeat([]byte{0x5b}, account.PublicKeyLength))
	assert.NotEqual(t, a, other, "different keys share an address")

	_, err = account.FromPublicKey([]byte{1, 2, 3})
	assert.Equal(t, account.InvalidPublicKey, err, "short key accepted")
}

func TestParse(t *testing.T) {
	valid := []string{"0S", "1S", "18446744073709551615S", "12345S"}
	for _, s := range valid {
		_, err := account.Parse(s)
		assert.Nil(t, err, "rejected: %q", s)
	}

	invalid := []string{"", "S", "12345", "12345L", "012S", "18446744073709551616S", "12a5S"}
	for _, s := range invalid {
		_, err := account.Parse(s)
		assert.Equal(t, account.InvalidAddress, err, "accepted: %q", s)
	}
}
