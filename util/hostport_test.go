// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shiftnrg/shiftd/fault"
	"github.com/shiftnrg/shiftd/util"
)

func TestCanonicalHostPort(t *testing.T) {
	testData := []struct {
		host     string
		port     uint16
		expected string
	}{
		{"127.0.0.1", 1234, "127.0.0.1:1234"},
		{" 127.0.0.1 ", 1, "127.0.0.1:1"},
		{"::1", 5001, "[::1]:5001"},
		{"[0:0::0:1]", 5001, "[::1]:5001"},
		{"Storage.Example.COM", 80, "storage.example.com:80"},
	}

	for i, d := range testData {
		c, err := util.CanonicalHostPort(d.host, d.port)
		assert.Nil(t, err, "%d: error", i)
		assert.Equal(t, d.expected, c, "%d: canonical", i)
	}

	_, err := util.CanonicalHostPort("", 80)
	assert.Equal(t, fault.InvalidPeerAddress, err, "empty host")

	_, err = util.CanonicalHostPort("localhost", 0)
	assert.Equal(t, fault.InvalidPortNumber, err, "zero port")
}

func TestParseHostPort(t *testing.T) {
	host, port, err := util.ParseHostPort("10.1.2.3:5001")
	assert.Nil(t, err, "parse")
	assert.Equal(t, "10.1.2.3", host, "host")
	assert.Equal(t, uint16(5001), port, "port")

	for i, s := range []string{"10.1.2.3", "10.1.2.3:0", "10.1.2.3:65536", ":80", "x:y"} {
		_, _, err := util.ParseHostPort(s)
		assert.NotNil(t, err, "%d: %q accepted", i, s)
	}
}

func TestHostPortFromMultiaddr(t *testing.T) {
	testData := []struct {
		addr string
		host string
		port uint16
	}{
		{"/ip4/10.0.0.1/tcp/5001", "10.0.0.1", 5001},
		{"/ip6/::1/tcp/5001", "::1", 5001},
		{"/dns4/storage.example.com/tcp/80", "storage.example.com", 80},
	}
	for i, d := range testData {
		host, port, err := util.HostPortFromMultiaddr(d.addr)
		assert.Nil(t, err, "%d: error", i)
		assert.Equal(t, d.host, host, "%d: host", i)
		assert.Equal(t, d.port, port, "%d: port", i)
	}

	_, _, err := util.HostPortFromMultiaddr("10.0.0.1:5001")
	assert.Equal(t, fault.InvalidPeerAddress, err, "not a multiaddr")

	_, _, err = util.HostPortFromMultiaddr("/ip4/10.0.0.1/udp/5001")
	assert.Equal(t, fault.InvalidPortNumber, err, "no tcp port")
}
