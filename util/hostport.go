// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"net"
	"strconv"
	"strings"

	ma "github.com/multiformats/go-multiaddr"

	"github.com/shiftnrg/shiftd/fault"
)

// CanonicalHostPort - make the host:port canonical
//
// examples:
//   IPv4:  127.0.0.1:1234
//   IPv6:  [::1]:1234
//   name:  storage.example.com:5001
func CanonicalHostPort(host string, port uint16) (string, error) {
	host = strings.ToLower(strings.Trim(host, " []"))
	if "" == host {
		return "", fault.InvalidPeerAddress
	}
	if 0 == port {
		return "", fault.InvalidPortNumber
	}
	if ip := net.ParseIP(host); nil != ip {
		host = ip.String()
	}
	return net.JoinHostPort(host, strconv.Itoa(int(port))), nil
}

// ParseHostPort - split host:port and check the port range
func ParseHostPort(hostPort string) (string, uint16, error) {
	host, port, err := net.SplitHostPort(strings.Trim(hostPort, " "))
	if nil != err {
		return "", 0, fault.InvalidPeerAddress
	}
	numericPort, err := strconv.Atoi(strings.Trim(port, " "))
	if nil != err || numericPort < 1 || numericPort > 65535 {
		return "", 0, fault.InvalidPortNumber
	}
	if "" == strings.Trim(host, " ") {
		return "", 0, fault.InvalidPeerAddress
	}
	return host, uint16(numericPort), nil
}

// hosts may be given by address or by name
var hostProtocols = []int{
	ma.P_IP4,
	ma.P_IP6,
	ma.P_DNS4,
	ma.P_DNS6,
}

// HostPortFromMultiaddr - host and tcp port of a multiaddr such as
// /ip4/10.0.0.1/tcp/5001 or /dns4/storage.example.com/tcp/80
func HostPortFromMultiaddr(s string) (string, uint16, error) {
	addr, err := ma.NewMultiaddr(s)
	if nil != err {
		return "", 0, fault.InvalidPeerAddress
	}

	host := ""
	for _, code := range hostProtocols {
		if value, err := addr.ValueForProtocol(code); nil == err {
			host = value
			break
		}
	}
	if "" == host {
		return "", 0, fault.InvalidPeerAddress
	}

	port, err := addr.ValueForProtocol(ma.P_TCP)
	if nil != err {
		return "", 0, fault.InvalidPortNumber
	}
	numericPort, err := strconv.Atoi(port)
	if nil != err || numericPort < 1 || numericPort > 65535 {
		return "", 0, fault.InvalidPortNumber
	}
	return host, uint16(numericPort), nil
}
